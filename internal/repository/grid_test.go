package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGridMock(t *testing.T) (*GridRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewGridRepo(db), mock
}

func TestWindowPricesBothAxes(t *testing.T) {
	repo, mock := newGridMock(t)

	mock.ExpectQuery(outboundWindowSQL).
		WithArgs("Paris", "Rome", "2026-09-01", "2026-09-07", windowDays).
		WillReturnRows(sqlmock.NewRows([]string{"out_date", "min_out_price"}).
			AddRow("2026-09-01", 80.0).
			AddRow("2026-09-02", 95.0))

	mock.ExpectQuery(returnWindowSQL).
		WithArgs("Rome", "Paris", "2026-09-08", "2026-09-14", windowDays).
		WillReturnRows(sqlmock.NewRows([]string{"ret_date", "min_ret_price"}).
			AddRow("2026-09-08", 60.0))

	out, ret, err := repo.WindowPrices(context.Background(),
		"Paris", "Rome", "2026-09-01", "2026-09-07", "2026-09-08", "2026-09-14")
	require.NoError(t, err)

	assert.Equal(t, []OutboundDayPrice{
		{Date: "2026-09-01", Price: 80},
		{Date: "2026-09-02", Price: 95},
	}, out)
	assert.Equal(t, []ReturnDayPrice{{Date: "2026-09-08", Price: 60}}, ret)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboundDayNoFlightsIsEmpty(t *testing.T) {
	repo, mock := newGridMock(t)

	mock.ExpectQuery(outboundDaySQL).
		WithArgs("Paris", "Rome", "2026-09-03").
		WillReturnRows(sqlmock.NewRows([]string{"out_date", "min_out_price"}))

	days, err := repo.OutboundDay(context.Background(), "Paris", "Rome", "2026-09-03")
	require.NoError(t, err)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestReturnDaySwapsCityOrder(t *testing.T) {
	repo, mock := newGridMock(t)

	// The return axis flies to->from, so the bind order flips.
	mock.ExpectQuery(returnDaySQL).
		WithArgs("Rome", "Paris", "2026-09-09").
		WillReturnRows(sqlmock.NewRows([]string{"ret_date", "min_ret_price"}).
			AddRow("2026-09-09", 72.5))

	days, err := repo.ReturnDay(context.Background(), "Paris", "Rome", "2026-09-09")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, ReturnDayPrice{Date: "2026-09-09", Price: 72.5}, days[0])
}

func TestColumnPricesZeroOutboundShortCircuits(t *testing.T) {
	repo, mock := newGridMock(t)

	mock.ExpectQuery(columnOutboundSQL).
		WithArgs("Paris", "Rome", "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"min_out_price"}).AddRow(nil))

	outPrice, totals, err := repo.ColumnPrices(context.Background(), "Paris", "Rome", "2026-09-05")
	require.NoError(t, err)
	assert.Zero(t, outPrice)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)

	// The return query must not run when there is no outbound price.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestColumnPricesCombinesTotals(t *testing.T) {
	repo, mock := newGridMock(t)

	mock.ExpectQuery(columnOutboundSQL).
		WithArgs("Paris", "Rome", "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"min_out_price"}).AddRow(90.0))

	mock.ExpectQuery(columnReturnSQL).
		WithArgs(90.0, "Rome", "Paris", "2026-09-05").
		WillReturnRows(sqlmock.NewRows([]string{"ret_date", "total_price"}).
			AddRow("2026-09-05", 150.0).
			AddRow("2026-09-06", 165.0))

	outPrice, totals, err := repo.ColumnPrices(context.Background(), "Paris", "Rome", "2026-09-05")
	require.NoError(t, err)
	assert.Equal(t, 90.0, outPrice)
	assert.Equal(t, []ReturnTotal{
		{Date: "2026-09-05", Total: 150},
		{Date: "2026-09-06", Total: 165},
	}, totals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCalendarPrices(t *testing.T) {
	repo, mock := newGridMock(t)

	mock.ExpectQuery(calendarSQL).
		WithArgs("Paris", "Rome").
		WillReturnRows(sqlmock.NewRows([]string{"day", "price"}).
			AddRow("2026-09-01", 80.0).
			AddRow("2026-09-02", 95.0))

	prices, err := repo.CalendarPrices(context.Background(), "Paris", "Rome")
	require.NoError(t, err)
	assert.Equal(t, []CalendarPrice{
		{Date: "2026-09-01", Price: 80},
		{Date: "2026-09-02", Price: 95},
	}, prices)
}
