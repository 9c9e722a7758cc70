package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flyexpress/internal/repository"
)

// MetaHandler serves the small read-only lookups around the search
// page: the city list for autocomplete, the price calendar overlay and
// the favorite-destination ranking.
type MetaHandler struct {
	Airports  *repository.AirportRepo
	Grid      *repository.GridRepo
	Favorites *repository.FavoriteRepo
}

func NewMetaHandler(a *repository.AirportRepo, g *repository.GridRepo, f *repository.FavoriteRepo) *MetaHandler {
	return &MetaHandler{Airports: a, Grid: g, Favorites: f}
}

// Cities handles GET /api/cities: every distinct airport city, sorted.
func (h *MetaHandler) Cities(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cities, err := h.Airports.Cities(ctx)
	if err != nil {
		c.Logger().Errorf("cities query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, cities)
}

// PriceCalendar handles GET /api/price-calendar: per-day minimum
// one-way prices for a city pair.  Without both endpoints there is
// nothing to look up, so the overlay just stays empty.
func (h *MetaHandler) PriceCalendar(c echo.Context) error {
	from := c.QueryParam("fromInput")
	to := c.QueryParam("toInput")
	if from == "" || to == "" {
		return c.JSON(http.StatusOK, []repository.CalendarPrice{})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prices, err := h.Grid.CalendarPrices(ctx, from, to)
	if err != nil {
		c.Logger().Errorf("price calendar query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, prices)
}

// TopDestinations handles GET /api/top-destinations: the five arrival
// cities with the most hearts across all users.
func (h *MetaHandler) TopDestinations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	top, err := h.Favorites.TopDestinations(ctx)
	if err != nil {
		c.Logger().Errorf("top destinations query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, top)
}
