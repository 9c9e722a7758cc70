package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flyexpress/internal/grid"
	"github.com/iliyamo/flyexpress/internal/repository"
)

// GridHandler serves the date-grid pricing surface: the full 7x7
// window, single-day refreshes and single-column scrolls.
type GridHandler struct {
	Grid *repository.GridRepo
}

func NewGridHandler(g *repository.GridRepo) *GridHandler {
	return &GridHandler{Grid: g}
}

// gridResp is the full-window payload: both price axes, the rendered
// matrix, the cheapest valid total and the window version the client
// reconciles subsequent deltas against.
type gridResp struct {
	OutboundPrices []repository.OutboundDayPrice `json:"outboundPrices"`
	ReturnPrices   []repository.ReturnDayPrice   `json:"returnPrices"`
	Matrix         [][]grid.Cell                 `json:"matrix"`
	Cheapest       float64                       `json:"cheapest"`
	Version        uint64                        `json:"version"`
}

// columnResp is the single-column payload for a horizontal scroll.
type columnResp struct {
	OutDate       string                   `json:"outDate"`
	OutboundPrice float64                  `json:"outboundPrice"`
	Prices        []repository.ReturnTotal `json:"prices"`
}

// DateGrid handles GET /api/date-grid.  Missing identifiers produce an
// empty object without touching storage; a grid for a page that has no
// search yet is simply blank.
func (h *GridHandler) DateGrid(c echo.Context) error {
	from := c.QueryParam("fromInput")
	to := c.QueryParam("toInput")
	outStart := c.QueryParam("outStart")
	outEnd := c.QueryParam("outEnd")
	retStart := c.QueryParam("retStart")
	retEnd := c.QueryParam("retEnd")

	if from == "" || to == "" || outStart == "" || outEnd == "" || retStart == "" || retEnd == "" {
		return c.JSON(http.StatusOK, echo.Map{})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, ret, err := h.Grid.WindowPrices(ctx, from, to, outStart, outEnd, retStart, retEnd)
	if err != nil {
		c.Logger().Errorf("grid window query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	w := grid.NewWindow(from, to, outStart, out, ret)
	matrix, cheapest := w.Matrix()

	return c.JSON(http.StatusOK, gridResp{
		OutboundPrices: w.Out,
		ReturnPrices:   w.Ret,
		Matrix:         matrix,
		Cheapest:       cheapest,
		Version:        w.Version,
	})
}

// DateGridDay handles GET /api/date-grid/day: a one-day refresh on
// either axis.  The result is the raw day-price array — empty when no
// flight operates that day.  The direction is part of the identifier
// set: without it there is no axis to refresh, so the handler answers
// empty without touching storage.  Only "out" selects the outbound
// axis; any other value refreshes the return leg.
func (h *GridHandler) DateGridDay(c echo.Context) error {
	from := c.QueryParam("fromInput")
	to := c.QueryParam("toInput")
	dir := c.QueryParam("dir")
	date := c.QueryParam("date")

	if from == "" || to == "" || date == "" || dir == "" {
		return c.JSON(http.StatusOK, []struct{}{})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if repository.Direction(dir) == repository.DirOut {
		days, err := h.Grid.OutboundDay(ctx, from, to, date)
		if err != nil {
			c.Logger().Errorf("grid outbound-day query failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
		}
		return c.JSON(http.StatusOK, days)
	}

	days, err := h.Grid.ReturnDay(ctx, from, to, date)
	if err != nil {
		c.Logger().Errorf("grid return-day query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, days)
}

// DateGridColumn handles GET /api/date-grid/column: a horizontal
// scroll to a new departure date.  When the optional departureDate
// floor accompanies the request, a scroll earlier than it is rejected
// before any query runs.
func (h *GridHandler) DateGridColumn(c echo.Context) error {
	from := c.QueryParam("fromInput")
	to := c.QueryParam("toInput")
	depDate := c.QueryParam("depDate")
	floor := c.QueryParam("departureDate")

	if from == "" || to == "" || depDate == "" {
		return c.JSON(http.StatusOK, echo.Map{})
	}
	if grid.BeforeFloor(floor, depDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure date before original search date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	outPrice, totals, err := h.Grid.ColumnPrices(ctx, from, to, depDate)
	if err != nil {
		c.Logger().Errorf("grid column query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	return c.JSON(http.StatusOK, columnResp{
		OutDate:       depDate,
		OutboundPrice: outPrice,
		Prices:        totals,
	})
}
