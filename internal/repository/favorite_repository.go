package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/flyexpress/internal/model"
)

// FavoriteRepo manages the `hearts` table.  Both mutations are keyed
// by the full composite identity and are idempotent: INSERT IGNORE on
// add, plain DELETE on remove.  Concurrent add/remove of the same key
// is therefore safe without any in-process locking.
type FavoriteRepo struct{ DB *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{DB: db} }

// FavoriteRow is a saved ticket joined with its flight and endpoints,
// used by the favorites listing.
type FavoriteRow struct {
	Code          string  `json:"id"`
	FlightID      string  `json:"flight_id"`
	AirlineID     string  `json:"airline_id"`
	TimeDeparture string  `json:"time_departure"`
	TimeArrival   string  `json:"time_arrival"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Price         float64 `json:"price"`
}

// DestinationCount aggregates how often an arrival city appears among
// all users' favorites.
type DestinationCount struct {
	Name           string `json:"name"`
	FavoritesCount int64  `json:"favorites_count"`
}

// ListCodes returns the ticket codes the user has favorited, for
// annotating search results.  An unknown user simply gets an empty
// set.
func (r *FavoriteRepo) ListCodes(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT ticket_code FROM hearts WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// ListDetailed returns the user's favorites joined with flight and
// endpoint data for the favorites page.
func (r *FavoriteRepo) ListDetailed(ctx context.Context, userID string) ([]FavoriteRow, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT
			t.code,
			t.flight_id,
			t.airline_id,
			DATE_FORMAT(f.time_departure, '%Y-%m-%d %T') AS time_departure,
			DATE_FORMAT(f.time_arrival, '%Y-%m-%d %T') AS time_arrival,
			a1.city AS origin,
			a2.city AS destination,
			t.price
		FROM hearts h
		JOIN ticket t ON h.ticket_code = t.code AND h.flight_id = t.flight_id AND h.airline_id = t.airline_id
		JOIN flight f ON t.flight_id = f.id
		JOIN airport a1 ON f.airport_depart_id = a1.id
		JOIN airport a2 ON f.airport_arrive_id = a2.id
		WHERE h.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FavoriteRow, 0)
	for rows.Next() {
		var fr FavoriteRow
		if err := rows.Scan(&fr.Code, &fr.FlightID, &fr.AirlineID,
			&fr.TimeDeparture, &fr.TimeArrival, &fr.Origin, &fr.Destination, &fr.Price); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

// Add saves a favorite.  Re-adding an existing favorite is a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, f model.Favorite) error {
	if !complete(f) {
		return ErrIncompleteKey
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO hearts (ticket_code, flight_id, airline_id, user_id) VALUES (?,?,?,?)",
		f.TicketCode, f.FlightID, f.AirlineID, f.UserID)
	return err
}

// Remove deletes a favorite.  Removing an absent favorite is a no-op.
func (r *FavoriteRepo) Remove(ctx context.Context, f model.Favorite) error {
	if !complete(f) {
		return ErrIncompleteKey
	}
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM hearts WHERE user_id = ? AND ticket_code = ? AND flight_id = ? AND airline_id = ?",
		f.UserID, f.TicketCode, f.FlightID, f.AirlineID)
	return err
}

// TopDestinations ranks arrival cities by how many hearts point at
// tickets flying there, capped at the five most popular.
func (r *FavoriteRepo) TopDestinations(ctx context.Context) ([]DestinationCount, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT
			a2.city AS name, COUNT(*) AS favorites_count
		FROM hearts h
		JOIN ticket t ON h.ticket_code = t.code AND h.flight_id = t.flight_id AND h.airline_id = t.airline_id
		JOIN flight f ON t.flight_id = f.id
		JOIN airport a2 ON f.airport_arrive_id = a2.id
		GROUP BY a2.city
		ORDER BY favorites_count DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DestinationCount, 0, 5)
	for rows.Next() {
		var d DestinationCount
		if err := rows.Scan(&d.Name, &d.FavoritesCount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func complete(f model.Favorite) bool {
	return f.TicketCode != "" && f.FlightID != "" && f.AirlineID != "" && f.UserID != ""
}
