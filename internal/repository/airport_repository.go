package repository

import (
	"context"
	"database/sql"
)

// AirportRepo reads the immutable airport reference data.
type AirportRepo struct{ DB *sql.DB }

func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{DB: db} }

// Cities returns every distinct city served by an airport, ordered
// alphabetically.  Feeds the search form's origin/destination lists.
func (r *AirportRepo) Cities(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT DISTINCT city FROM airport ORDER BY city")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
