package repository

import (
	"context"
	"database/sql"
)

// Direction selects which axis of the date grid a single-day query
// refreshes.
type Direction string

const (
	DirOut Direction = "out" // origin -> destination
	DirRet Direction = "ret" // destination -> origin
)

// windowDays caps each axis of the full grid at a 7-day window.
const windowDays = 7

// OutboundDayPrice is the minimum outbound price for one calendar day.
// JSON keys follow the grid wire protocol the client reconciles with.
type OutboundDayPrice struct {
	Date  string  `json:"outDate"`
	Price float64 `json:"min_out_price"`
}

// ReturnDayPrice is the minimum return price for one calendar day.
type ReturnDayPrice struct {
	Date  string  `json:"retDate"`
	Price float64 `json:"min_ret_price"`
}

// ReturnTotal is a combined outbound+return total for one return day,
// produced by the single-column query.
type ReturnTotal struct {
	Date  string  `json:"retDate"`
	Total float64 `json:"totalPrice"`
}

// CalendarPrice feeds the date-picker overlay: the minimum one-way
// price for each day that has any flight between the pair of cities.
type CalendarPrice struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// GridRepo runs the per-day minimum price queries behind the date
// grid.  All queries are read-only and grouped by calendar date; an
// empty result means "no flights", never an error.
type GridRepo struct{ DB *sql.DB }

func NewGridRepo(db *sql.DB) *GridRepo { return &GridRepo{DB: db} }

const outboundWindowSQL = `SELECT
		DATE_FORMAT(f.time_departure, '%Y-%m-%d') AS out_date,
		MIN(t.price) AS min_out_price
	FROM flight f
	JOIN airport a1 ON f.airport_depart_id = a1.id
	JOIN airport a2 ON f.airport_arrive_id = a2.id
	JOIN ticket t ON f.id = t.flight_id
	WHERE LOWER(a1.city) = LOWER(?)
	  AND LOWER(a2.city) = LOWER(?)
	  AND DATE(f.time_departure) BETWEEN ? AND ?
	GROUP BY out_date
	ORDER BY out_date
	LIMIT ?`

const returnWindowSQL = `SELECT
		DATE_FORMAT(r.time_departure, '%Y-%m-%d') AS ret_date,
		MIN(t.price) AS min_ret_price
	FROM flight r
	JOIN airport a2 ON r.airport_depart_id = a2.id
	JOIN airport a1 ON r.airport_arrive_id = a1.id
	JOIN ticket t ON r.id = t.flight_id
	WHERE LOWER(a2.city) = LOWER(?)
	  AND LOWER(a1.city) = LOWER(?)
	  AND DATE(r.time_departure) BETWEEN ? AND ?
	GROUP BY ret_date
	ORDER BY ret_date
	LIMIT ?`

// WindowPrices computes both axes of the initial grid: per-day minimum
// outbound prices over [outStart, outEnd] and per-day minimum return
// prices over [retStart, retEnd], each capped at the 7-day window.
func (r *GridRepo) WindowPrices(ctx context.Context, from, to, outStart, outEnd, retStart, retEnd string) ([]OutboundDayPrice, []ReturnDayPrice, error) {
	out, err := r.outboundDays(ctx, outboundWindowSQL, from, to, outStart, outEnd, windowDays)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.DB.QueryContext(ctx, returnWindowSQL, to, from, retStart, retEnd, windowDays)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	ret := make([]ReturnDayPrice, 0, windowDays)
	for rows.Next() {
		var d ReturnDayPrice
		if err := rows.Scan(&d.Date, &d.Price); err != nil {
			return nil, nil, err
		}
		ret = append(ret, d)
	}
	return out, ret, rows.Err()
}

const outboundDaySQL = `SELECT
		DATE_FORMAT(f.time_departure, '%Y-%m-%d') AS out_date,
		MIN(t.price) AS min_out_price
	FROM flight f
	JOIN airport a1 ON f.airport_depart_id = a1.id
	JOIN airport a2 ON f.airport_arrive_id = a2.id
	JOIN ticket t ON f.id = t.flight_id
	WHERE LOWER(a1.city) = LOWER(?)
	  AND LOWER(a2.city) = LOWER(?)
	  AND DATE(f.time_departure) = ?
	GROUP BY out_date
	LIMIT 1`

const returnDaySQL = `SELECT
		DATE_FORMAT(r.time_departure, '%Y-%m-%d') AS ret_date,
		MIN(t.price) AS min_ret_price
	FROM flight r
	JOIN airport a2 ON r.airport_depart_id = a2.id
	JOIN airport a1 ON r.airport_arrive_id = a1.id
	JOIN ticket t ON r.id = t.flight_id
	WHERE LOWER(a2.city) = LOWER(?)
	  AND LOWER(a1.city) = LOWER(?)
	  AND DATE(r.time_departure) = ?
	GROUP BY ret_date
	LIMIT 1`

// OutboundDay returns the minimum outbound price for one calendar day;
// the slice is empty when no flight operates that day.
func (r *GridRepo) OutboundDay(ctx context.Context, from, to, date string) ([]OutboundDayPrice, error) {
	return r.outboundDays(ctx, outboundDaySQL, from, to, date)
}

// ReturnDay is OutboundDay for the opposite direction.
func (r *GridRepo) ReturnDay(ctx context.Context, from, to, date string) ([]ReturnDayPrice, error) {
	rows, err := r.DB.QueryContext(ctx, returnDaySQL, to, from, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReturnDayPrice, 0, 1)
	for rows.Next() {
		var d ReturnDayPrice
		if err := rows.Scan(&d.Date, &d.Price); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

const columnOutboundSQL = `SELECT MIN(t_out.price) AS min_out_price
	FROM flight f
	JOIN airport a1 ON f.airport_depart_id = a1.id
	JOIN airport a2 ON f.airport_arrive_id = a2.id
	JOIN ticket t_out ON f.id = t_out.flight_id
	WHERE LOWER(a1.city) = LOWER(?)
	  AND LOWER(a2.city) = LOWER(?)
	  AND DATE(f.time_departure) = ?`

const columnReturnSQL = `SELECT
		DATE_FORMAT(r.time_departure, '%Y-%m-%d') AS ret_date,
		(? + MIN(t_ret.price)) AS total_price
	FROM flight r
	JOIN airport a2 ON r.airport_depart_id = a2.id
	JOIN airport a1 ON r.airport_arrive_id = a1.id
	JOIN ticket t_ret ON r.id = t_ret.flight_id
	WHERE LOWER(a2.city) = LOWER(?)
	  AND LOWER(a1.city) = LOWER(?)
	  AND DATE(r.time_departure) >= DATE(?)
	GROUP BY ret_date
	ORDER BY ret_date ASC`

// ColumnPrices serves a horizontal grid scroll: the new departure
// date's own outbound minimum plus the combined total for every return
// date on or after it.  A zero outbound minimum short-circuits with an
// empty total list, which the client renders as "no data".
func (r *GridRepo) ColumnPrices(ctx context.Context, from, to, depDate string) (float64, []ReturnTotal, error) {
	var minOut sql.NullFloat64
	if err := r.DB.QueryRowContext(ctx, columnOutboundSQL, from, to, depDate).Scan(&minOut); err != nil {
		return 0, nil, err
	}
	if !minOut.Valid || minOut.Float64 == 0 {
		return 0, []ReturnTotal{}, nil
	}

	rows, err := r.DB.QueryContext(ctx, columnReturnSQL, minOut.Float64, to, from, depDate)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	totals := make([]ReturnTotal, 0, windowDays)
	for rows.Next() {
		var t ReturnTotal
		if err := rows.Scan(&t.Date, &t.Total); err != nil {
			return 0, nil, err
		}
		totals = append(totals, t)
	}
	return minOut.Float64, totals, rows.Err()
}

const calendarSQL = `SELECT
		DATE_FORMAT(f.time_departure, '%Y-%m-%d') AS day,
		MIN(t.price) AS price
	FROM flight f
	JOIN airport a1 ON f.airport_depart_id = a1.id
	JOIN airport a2 ON f.airport_arrive_id = a2.id
	JOIN ticket t ON f.id = t.flight_id
	WHERE LOWER(a1.city) = LOWER(?)
	  AND LOWER(a2.city) = LOWER(?)
	GROUP BY day
	ORDER BY day`

// CalendarPrices lists the per-day minimum one-way price for a city
// pair across all scheduled dates.
func (r *GridRepo) CalendarPrices(ctx context.Context, from, to string) ([]CalendarPrice, error) {
	rows, err := r.DB.QueryContext(ctx, calendarSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CalendarPrice, 0)
	for rows.Next() {
		var c CalendarPrice
		if err := rows.Scan(&c.Date, &c.Price); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// outboundDays runs any query that yields (out_date, min_out_price)
// rows.
func (r *GridRepo) outboundDays(ctx context.Context, query string, args ...any) ([]OutboundDayPrice, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OutboundDayPrice, 0, windowDays)
	for rows.Next() {
		var d OutboundDayPrice
		if err := rows.Scan(&d.Date, &d.Price); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
