package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flyexpress/internal/repository"
)

func doGET(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec
}

func TestSearchTicketsShortCircuitsWithoutRequiredFields(t *testing.T) {
	// Nil repos prove no storage is touched when a required field is
	// missing; any query would panic.
	h := NewSearchHandler(nil, nil)

	for _, target := range []string{
		"/tickets",
		"/tickets?fromInput=Paris&toInput=Rome",
		"/tickets?fromInput=Paris&flightClass=economy",
		"/tickets?toInput=Rome&flightClass=economy",
		"/tickets?fromInput=%20%20&toInput=Rome&flightClass=economy",
	} {
		rec := doGET(t, h.SearchTickets, target)
		assert.Equal(t, http.StatusOK, rec.Code, target)

		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), target)
		assert.JSONEq(t, "[]", string(body["outboundFlights"]), target)
		assert.JSONEq(t, "[]", string(body["returnFlights"]), target)
		assert.JSONEq(t, "[]", string(body["favoritesList"]), target)
		// The empty landing page still reports the effective page size.
		assert.JSONEq(t, "5", string(body["limit"]), target)
		assert.JSONEq(t, "5", string(body["rlimit"]), target)
	}
}

func TestSearchTicketsShortCircuitEchoesRequestedLimits(t *testing.T) {
	h := NewSearchHandler(nil, nil)

	rec := doGET(t, h.SearchTickets, "/tickets?fromInput=Paris&limit=12&rlimit=3")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Limit  int `json:"limit"`
		RLimit int `json:"rlimit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Limit)
	assert.Equal(t, 3, body.RLimit)
}

func TestSearchTicketsOneWay(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	q := repository.SearchQuery{
		FromCity: "Paris", ToCity: "Rome", Class: "economy", Limit: 2,
	}
	query, _ := repository.BuildSearchSQL(q)

	cols := []string{
		"flight_id", "departure_city", "arrival_city",
		"time_departure", "time_arrival", "class", "price",
		"code", "availability", "airline_name", "airline_id",
		"duration_minutes",
	}
	mock.ExpectQuery(query).
		WithArgs("Paris", "Rome", "economy", 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("FL1", "Paris", "Rome", "2026-09-01 08:00:00", "2026-09-01 10:05:00",
				"economy", 129.5, "TK100", 4, "AirDemo", "AD", 125).
			AddRow("FL2", "Paris", "Rome", "2026-09-01 14:30:00", "2026-09-01 16:30:00",
				"economy", 149.0, "TK200", 2, "SkyLine", "SL", 120))

	h := NewSearchHandler(repository.NewSearchRepo(db), repository.NewFavoriteRepo(db))
	rec := doGET(t, h.SearchTickets,
		"/tickets?fromInput=Paris&toInput=Rome&flightClass=economy&tripType=oneway&limit=2")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OutboundFlights []repository.FlightRow `json:"outboundFlights"`
		ReturnFlights   []repository.FlightRow `json:"returnFlights"`
		HasMore         bool                   `json:"hasMore"`
		HasMoreReturns  bool                   `json:"hasMoreReturns"`
		Limit           int                    `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.OutboundFlights, 2)
	assert.Equal(t, "TK100", body.OutboundFlights[0].Code)
	assert.Empty(t, body.ReturnFlights)
	// A full page means "probably more".
	assert.True(t, body.HasMore)
	assert.False(t, body.HasMoreReturns)
	assert.Equal(t, 2, body.Limit)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchTicketsRoundTripMirrorsReturnLeg(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	out := repository.SearchQuery{
		FromCity: "Paris", ToCity: "Rome", Class: "economy",
		DepartureDate: "2026-09-01", Limit: 5,
	}
	outSQL, _ := repository.BuildSearchSQL(out)
	retSQL, _ := repository.BuildSearchSQL(out.Mirrored("2026-09-08", 5))

	cols := []string{
		"flight_id", "departure_city", "arrival_city",
		"time_departure", "time_arrival", "class", "price",
		"code", "availability", "airline_name", "airline_id",
		"duration_minutes",
	}
	mock.ExpectQuery(outSQL).
		WithArgs("Paris", "Rome", "economy", "2026-09-01", 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("FL1", "Paris", "Rome", "2026-09-01 08:00:00", "2026-09-01 10:05:00",
				"economy", 129.5, "TK100", 4, "AirDemo", "AD", 125))
	mock.ExpectQuery(retSQL).
		WithArgs("Rome", "Paris", "economy", "2026-09-08", 5).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("FL9", "Rome", "Paris", "2026-09-08 18:00:00", "2026-09-08 20:10:00",
				"economy", 110.0, "TK900", 6, "AirDemo", "AD", 130))

	h := NewSearchHandler(repository.NewSearchRepo(db), repository.NewFavoriteRepo(db))
	rec := doGET(t, h.SearchTickets,
		"/tickets?fromInput=Paris&toInput=Rome&flightClass=economy&tripType=roundtrip&departureDate=2026-09-01&returnDate=2026-09-08")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OutboundFlights []repository.FlightRow `json:"outboundFlights"`
		ReturnFlights   []repository.FlightRow `json:"returnFlights"`
		HasMore         bool                   `json:"hasMore"`
		HasMoreReturns  bool                   `json:"hasMoreReturns"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.ReturnFlights, 1)
	assert.Equal(t, "Rome", body.ReturnFlights[0].DepartureCity)
	assert.False(t, body.HasMore)
	assert.False(t, body.HasMoreReturns)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchTicketsMalformedFiltersAreIgnored(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	// A query with no price/duration predicates: the junk filters must
	// degrade to "absent", not break the statement.
	plain := repository.SearchQuery{
		FromCity: "Paris", ToCity: "Rome", Class: "economy", Limit: 5,
	}
	query, _ := repository.BuildSearchSQL(plain)

	cols := []string{
		"flight_id", "departure_city", "arrival_city",
		"time_departure", "time_arrival", "class", "price",
		"code", "availability", "airline_name", "airline_id",
		"duration_minutes",
	}
	mock.ExpectQuery(query).
		WithArgs("Paris", "Rome", "economy", 5).
		WillReturnRows(sqlmock.NewRows(cols))

	h := NewSearchHandler(repository.NewSearchRepo(db), repository.NewFavoriteRepo(db))
	rec := doGET(t, h.SearchTickets,
		"/tickets?fromInput=Paris&toInput=Rome&flightClass=economy&maxPrice=cheap&maxDuration=fast&limit=abc")
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 5, parseLimit(""))
	assert.Equal(t, 5, parseLimit("abc"))
	assert.Equal(t, 5, parseLimit("0"))
	assert.Equal(t, 5, parseLimit("-1"))
	assert.Equal(t, 10, parseLimit("10"))
}

func TestParseFilter(t *testing.T) {
	assert.Nil(t, parseFilter(""))
	assert.Nil(t, parseFilter("not-a-number"))
	if v := parseFilter("120"); assert.NotNil(t, v) {
		assert.Equal(t, 120.0, *v)
	}
	if v := parseFilter("0"); assert.NotNil(t, v) {
		// Zero is a real cap, distinct from absent.
		assert.Equal(t, 0.0, *v)
	}
}
