package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flyexpress/internal/middleware"
	"github.com/iliyamo/flyexpress/internal/model"
	"github.com/iliyamo/flyexpress/internal/queue"
	"github.com/iliyamo/flyexpress/internal/repository"
	queue_publisher "github.com/iliyamo/flyexpress/internal/service"
)

// FavoritesHandler exposes the saved-tickets endpoints.  All of them
// require an authenticated caller; the identity comes from the bearer
// token, never from the request body.
type FavoritesHandler struct {
	Favorites *repository.FavoriteRepo
}

func NewFavoritesHandler(f *repository.FavoriteRepo) *FavoritesHandler {
	return &FavoritesHandler{Favorites: f}
}

// List handles GET /api/favorites: the caller's saved tickets joined
// with flight details.
func (h *FavoritesHandler) List(c echo.Context) error {
	uid := middleware.UserID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Favorites.ListDetailed(ctx, uid)
	if err != nil {
		c.Logger().Errorf("favorites list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	return c.JSON(http.StatusOK, rows)
}

// Add handles POST /api/favorites/add.
func (h *FavoritesHandler) Add(c echo.Context) error {
	return h.mutate(c, "added", h.Favorites.Add)
}

// Remove handles POST /api/favorites/remove.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	return h.mutate(c, "removed", h.Favorites.Remove)
}

// mutate is the shared body of Add and Remove: validate the composite
// key, run the idempotent mutation, then publish the activity event in
// the background.  A broker outage never fails the mutation.
func (h *FavoritesHandler) mutate(c echo.Context, action string, op func(context.Context, model.Favorite) error) error {
	fav := model.Favorite{
		TicketCode: param(c, "ticketId"),
		FlightID:   param(c, "flightId"),
		AirlineID:  param(c, "airlineId"),
		UserID:     middleware.UserID(c),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := op(ctx, fav); err != nil {
		if err == repository.ErrIncompleteKey {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticketId, flightId and airlineId are required"})
		}
		c.Logger().Errorf("favorite %s failed: %v", action, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}

	ev := queue.FavoriteActivityEvent{
		Action:     action,
		UserID:     fav.UserID,
		TicketCode: fav.TicketCode,
		FlightID:   fav.FlightID,
		AirlineID:  fav.AirlineID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pctx, pcancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pcancel()
		_ = queue_publisher.PublishFavoriteActivity(pctx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// param reads a request value from the query string first, then the
// form body, so both fetch styles the client uses work.
func param(c echo.Context, name string) string {
	if v := c.QueryParam(name); v != "" {
		return v
	}
	return c.FormValue(name)
}
