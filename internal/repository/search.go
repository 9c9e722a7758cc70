package repository

import (
	"context"
	"database/sql"
	"strings"
)

// defaultLimit is the per-direction page size applied when the caller
// supplies no limit or an unparseable one.
const defaultLimit = 5

// durationExpr computes a leg's duration in whole minutes.  The FLOOR
// on the seconds-to-minutes conversion is deliberate: filters and the
// reported duration_minutes column must agree bit-for-bit.
const durationExpr = "FLOOR(TIMESTAMPDIFF(SECOND, f.time_departure, f.time_arrival) / 60)"

// SearchQuery describes one directional leg search.  FromCity, ToCity
// and Class are required; the caller is expected to short-circuit to an
// empty result before building SQL when any of them is empty.  The
// optional filters are pointers so that "absent" and "zero" stay
// distinct.
type SearchQuery struct {
	FromCity      string
	ToCity        string
	Class         string
	DepartureDate string   // exact calendar date (YYYY-MM-DD); empty means no date filter
	SortBy        string   // price_asc | price_desc | duration_asc | duration_desc
	MaxPrice      *float64 // inclusive price cap per ticket
	MaxDuration   *float64 // inclusive cap on duration_minutes
	Limit         int      // rows per leg; <= 0 falls back to defaultLimit
}

// Mirrored returns the return-leg query for a round trip: endpoints
// swapped, the return date substituted for the departure date, and the
// return limit applied.  All other filters carry over and apply to the
// return leg's own price and duration.
func (q SearchQuery) Mirrored(returnDate string, limit int) SearchQuery {
	m := q
	m.FromCity, m.ToCity = q.ToCity, q.FromCity
	m.DepartureDate = returnDate
	m.Limit = limit
	return m
}

// FlightRow is one search result: a ticket joined with its flight,
// endpoints and airline.  Timestamps are formatted by the database so
// all rows render uniformly.
type FlightRow struct {
	FlightID        string  `json:"flight_id"`
	DepartureCity   string  `json:"departure_city"`
	ArrivalCity     string  `json:"arrival_city"`
	TimeDeparture   string  `json:"time_departure"`
	TimeArrival     string  `json:"time_arrival"`
	Class           string  `json:"class"`
	Price           float64 `json:"price"`
	Code            string  `json:"code"`
	Availability    int     `json:"availability"`
	AirlineName     string  `json:"airline_name"`
	AirlineID       string  `json:"airline_id"`
	DurationMinutes int64   `json:"duration_minutes"`
}

// clause pairs a SQL fragment with the values it binds.  Assembling the
// WHERE part from an ordered clause list keeps the statement text and
// the bind order in lockstep, which positional placeholders require.
type clause struct {
	frag string
	args []any
}

// BuildSearchSQL assembles the statement and bind arguments for one
// leg.  Clause order is fixed: from-city, to-city, class, exact date
// (when present), availability, price cap (when present), duration cap
// (when present); the limit is always the final argument.
func BuildSearchSQL(q SearchQuery) (string, []any) {
	clauses := []clause{
		{"LOWER(a1.city) = LOWER(?)", []any{q.FromCity}},
		{"LOWER(a2.city) = LOWER(?)", []any{q.ToCity}},
		{"LOWER(t.class) = LOWER(?)", []any{q.Class}},
	}
	if q.DepartureDate != "" {
		clauses = append(clauses, clause{"DATE(f.time_departure) = DATE(?)", []any{q.DepartureDate}})
	}
	clauses = append(clauses, clause{"t.availability > 0", nil})
	if q.MaxPrice != nil {
		clauses = append(clauses, clause{"t.price <= ?", []any{*q.MaxPrice}})
	}
	if q.MaxDuration != nil {
		clauses = append(clauses, clause{durationExpr + " <= ?", []any{*q.MaxDuration}})
	}

	conds := make([]string, 0, len(clauses))
	args := make([]any, 0, len(clauses)+1)
	for _, cl := range clauses {
		conds = append(conds, cl.frag)
		args = append(args, cl.args...)
	}

	query := `SELECT
			f.id AS flight_id,
			a1.city AS departure_city,
			a2.city AS arrival_city,
			DATE_FORMAT(f.time_departure, '%Y-%m-%d %T') AS time_departure,
			DATE_FORMAT(f.time_arrival, '%Y-%m-%d %T') AS time_arrival,
			t.class,
			t.price,
			t.code AS code,
			t.availability,
			al.name AS airline_name,
			al.id AS airline_id,
			` + durationExpr + ` AS duration_minutes
		FROM flight f
		JOIN airport a1 ON f.airport_depart_id = a1.id
		JOIN airport a2 ON f.airport_arrive_id = a2.id
		JOIN ticket t ON f.id = t.flight_id
		JOIN airline al ON f.airline_id = al.id
		WHERE ` + strings.Join(conds, "\n\t\t  AND ")

	switch q.SortBy {
	case "price_asc":
		query += "\n\t\tORDER BY t.price ASC"
	case "price_desc":
		query += "\n\t\tORDER BY t.price DESC"
	case "duration_asc":
		query += "\n\t\tORDER BY duration_minutes ASC"
	case "duration_desc":
		query += "\n\t\tORDER BY duration_minutes DESC"
	}
	// Unrecognized sort keys leave the engine's default order; callers
	// must not depend on ordering in that case.

	query += "\n\t\tLIMIT ?"
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	args = append(args, limit)

	return query, args
}

// SearchRepo executes leg searches against the relational store.
type SearchRepo struct{ DB *sql.DB }

func NewSearchRepo(db *sql.DB) *SearchRepo { return &SearchRepo{DB: db} }

// SearchLeg runs one directional search and scans the result rows.  It
// is read-only; an empty slice is a valid outcome.
func (r *SearchRepo) SearchLeg(ctx context.Context, q SearchQuery) ([]FlightRow, error) {
	query, args := BuildSearchSQL(q)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FlightRow, 0, q.Limit)
	for rows.Next() {
		var fr FlightRow
		if err := rows.Scan(
			&fr.FlightID,
			&fr.DepartureCity,
			&fr.ArrivalCity,
			&fr.TimeDeparture,
			&fr.TimeArrival,
			&fr.Class,
			&fr.Price,
			&fr.Code,
			&fr.Availability,
			&fr.AirlineName,
			&fr.AirlineID,
			&fr.DurationMinutes,
		); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}
