package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flyexpress/internal/grid"
	"github.com/iliyamo/flyexpress/internal/repository"
)

func TestDateGridMissingIdentifiersReturnsEmptyObject(t *testing.T) {
	h := NewGridHandler(nil) // nil repo: storage must never be reached

	for _, target := range []string{
		"/api/date-grid",
		"/api/date-grid?fromInput=Paris",
		"/api/date-grid?fromInput=Paris&toInput=Rome&outStart=2026-09-01",
	} {
		rec := doGET(t, h.DateGrid, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, "{}", rec.Body.String(), target)
	}
}

func TestDateGridDayMissingParamsReturnsEmptyArray(t *testing.T) {
	h := NewGridHandler(nil) // nil repo: storage must never be reached

	for _, target := range []string{
		"/api/date-grid/day?dir=out",
		// The direction is an identifier too: without it there is no
		// axis to refresh.
		"/api/date-grid/day?fromInput=Paris&toInput=Rome&date=2026-09-05",
	} {
		rec := doGET(t, h.DateGridDay, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.JSONEq(t, "[]", rec.Body.String(), target)
	}
}

func TestDateGridDayDirectionRouting(t *testing.T) {
	cols := map[string]string{
		"out": "out_date",
		"ret": "ret_date",
		// Any value other than "out" refreshes the return axis.
		"in": "ret_date",
	}
	binds := map[string][]string{
		"out": {"Paris", "Rome"},
		"ret": {"Rome", "Paris"},
		"in":  {"Rome", "Paris"},
	}

	for dir, col := range cols {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)

		priceCol := "min_out_price"
		pattern := "SELECT(.|\n)+FROM flight f(.|\n)+= \\?"
		if col == "ret_date" {
			priceCol = "min_ret_price"
			pattern = "SELECT(.|\n)+FROM flight r(.|\n)+= \\?"
		}
		mock.ExpectQuery(pattern).
			WithArgs(binds[dir][0], binds[dir][1], "2026-09-05").
			WillReturnRows(sqlmock.NewRows([]string{col, priceCol}).
				AddRow("2026-09-05", 80.0))

		h := NewGridHandler(repository.NewGridRepo(db))
		rec := doGET(t, h.DateGridDay,
			"/api/date-grid/day?fromInput=Paris&toInput=Rome&date=2026-09-05&dir="+dir)
		assert.Equal(t, http.StatusOK, rec.Code, "dir=%s", dir)
		assert.Contains(t, rec.Body.String(), `"2026-09-05"`, "dir=%s", dir)

		require.NoError(t, mock.ExpectationsWereMet(), "dir=%s", dir)
		db.Close()
	}
}

func TestDateGridColumnRejectsScrollBeforeFloor(t *testing.T) {
	h := NewGridHandler(nil) // rejection happens before any query

	rec := doGET(t, h.DateGridColumn,
		"/api/date-grid/column?fromInput=Paris&toInput=Rome&depDate=2026-08-30&departureDate=2026-09-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDateGridFullWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)+FROM flight f(.|\n)+BETWEEN").
		WithArgs("Paris", "Rome", "2026-09-01", "2026-09-07", 7).
		WillReturnRows(sqlmock.NewRows([]string{"out_date", "min_out_price"}).
			AddRow("2026-09-01", 80.0))
	mock.ExpectQuery("SELECT(.|\n)+FROM flight r(.|\n)+BETWEEN").
		WithArgs("Rome", "Paris", "2026-09-08", "2026-09-14", 7).
		WillReturnRows(sqlmock.NewRows([]string{"ret_date", "min_ret_price"}).
			AddRow("2026-09-08", 60.0))

	h := NewGridHandler(repository.NewGridRepo(db))
	rec := doGET(t, h.DateGrid,
		"/api/date-grid?fromInput=Paris&toInput=Rome&outStart=2026-09-01&outEnd=2026-09-07&retStart=2026-09-08&retEnd=2026-09-14")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OutboundPrices []repository.OutboundDayPrice `json:"outboundPrices"`
		ReturnPrices   []repository.ReturnDayPrice   `json:"returnPrices"`
		Matrix         [][]grid.Cell                 `json:"matrix"`
		Cheapest       float64                       `json:"cheapest"`
		Version        uint64                        `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.OutboundPrices, 1)
	require.Len(t, body.ReturnPrices, 1)
	require.Len(t, body.Matrix, 1)
	assert.True(t, body.Matrix[0][0].Valid)
	assert.Equal(t, 140.0, body.Cheapest)
	assert.Equal(t, uint64(1), body.Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDateGridColumnZeroOutbound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT MIN").
		WithArgs("Paris", "Rome", "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"min_out_price"}).AddRow(nil))

	h := NewGridHandler(repository.NewGridRepo(db))
	rec := doGET(t, h.DateGridColumn,
		"/api/date-grid/column?fromInput=Paris&toInput=Rome&depDate=2026-09-05")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body columnResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-09-05", body.OutDate)
	assert.Zero(t, body.OutboundPrice)
	assert.Empty(t, body.Prices)

	require.NoError(t, mock.ExpectationsWereMet())
}
