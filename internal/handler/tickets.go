package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flyexpress/internal/middleware"
	"github.com/iliyamo/flyexpress/internal/repository"
)

// SearchHandler serves the ticket search: one query per direction,
// with the return leg mirrored from the outbound one on round trips.
type SearchHandler struct {
	Search    *repository.SearchRepo
	Favorites *repository.FavoriteRepo
}

func NewSearchHandler(s *repository.SearchRepo, f *repository.FavoriteRepo) *SearchHandler {
	return &SearchHandler{Search: s, Favorites: f}
}

// searchResp echoes the filter parameters back alongside both result
// sets so the renderer can rebuild the form state.
type searchResp struct {
	OutboundFlights []repository.FlightRow `json:"outboundFlights"`
	ReturnFlights   []repository.FlightRow `json:"returnFlights"`
	FavoritesList   []string               `json:"favoritesList"`
	FromInput       string                 `json:"fromInput"`
	ToInput         string                 `json:"toInput"`
	FlightClass     string                 `json:"flightClass"`
	TripType        string                 `json:"tripType"`
	DepartureDate   string                 `json:"departureDate"`
	ReturnDate      string                 `json:"returnDate"`
	SortBy          string                 `json:"sortBy"`
	MaxPrice        string                 `json:"maxPrice"`
	MaxDuration     string                 `json:"maxDuration"`
	Limit           int                    `json:"limit"`
	RLimit          int                    `json:"rlimit"`
	HasMore         bool                   `json:"hasMore"`
	HasMoreReturns  bool                   `json:"hasMoreReturns"`
}

// SearchTickets handles GET /tickets.  Missing any of the three
// required fields is not an error: a user landing on the page without
// having searched yet gets an empty, well-formed result with no
// storage access.
func (h *SearchHandler) SearchTickets(c echo.Context) error {
	from := strings.TrimSpace(c.QueryParam("fromInput"))
	to := strings.TrimSpace(c.QueryParam("toInput"))
	class := strings.TrimSpace(c.QueryParam("flightClass"))
	tripType := c.QueryParam("tripType")
	departureDate := c.QueryParam("departureDate")
	returnDate := c.QueryParam("returnDate")
	sortBy := c.QueryParam("sortBy")
	maxPriceRaw := c.QueryParam("maxPrice")
	maxDurationRaw := c.QueryParam("maxDuration")

	limit := parseLimit(c.QueryParam("limit"))
	rlimit := parseLimit(c.QueryParam("rlimit"))

	resp := searchResp{
		OutboundFlights: []repository.FlightRow{},
		ReturnFlights:   []repository.FlightRow{},
		FavoritesList:   []string{},
		FromInput:       from,
		ToInput:         to,
		FlightClass:     class,
		TripType:        tripType,
		DepartureDate:   departureDate,
		ReturnDate:      returnDate,
		SortBy:          sortBy,
		MaxPrice:        maxPriceRaw,
		MaxDuration:     maxDurationRaw,
		Limit:           limit,
		RLimit:          rlimit,
	}

	if from == "" || to == "" || class == "" {
		return c.JSON(http.StatusOK, resp)
	}

	q := repository.SearchQuery{
		FromCity:      from,
		ToCity:        to,
		Class:         class,
		DepartureDate: departureDate,
		SortBy:        sortBy,
		MaxPrice:      parseFilter(maxPriceRaw),
		MaxDuration:   parseFilter(maxDurationRaw),
		Limit:         limit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	outbound, err := h.Search.SearchLeg(ctx, q)
	if err != nil {
		c.Logger().Errorf("ticket search failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
	}
	resp.OutboundFlights = outbound
	// hasMore is a heuristic: a full page means "probably more", even
	// when the last page happens to end exactly on the limit.
	resp.HasMore = len(outbound) >= limit

	if tripType == "roundtrip" {
		ret, err := h.Search.SearchLeg(ctx, q.Mirrored(returnDate, rlimit))
		if err != nil {
			c.Logger().Errorf("return leg search failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
		}
		resp.ReturnFlights = ret
		resp.HasMoreReturns = len(ret) >= rlimit
	}

	if uid := middleware.UserID(c); uid != "" {
		codes, err := h.Favorites.ListCodes(ctx, uid)
		if err != nil {
			c.Logger().Errorf("favorites lookup failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
		}
		resp.FavoritesList = codes
	}

	return c.JSON(http.StatusOK, resp)
}

// parseLimit coerces a raw limit to a positive integer, falling back
// to the default page size on absence, parse failure or nonsense.
func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 5
	}
	return n
}

// parseFilter turns a raw numeric filter into an optional value.
// Malformed input is treated the same as absent, so a bad maxPrice
// degrades to an unfiltered search instead of a storage-level error.
func parseFilter(raw string) *float64 {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
