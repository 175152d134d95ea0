package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/model"
	"github.com/iliyamo/rental-marketplace/internal/repository"
	"github.com/iliyamo/rental-marketplace/internal/validation"
)

// popularLimit is how many listings the popular endpoint returns.
const popularLimit = 3

// ListingHandler serves public browsing plus host-side CRUD for
// listings.
type ListingHandler struct {
	Listings *repository.ListingRepo
}

func NewListingHandler(l *repository.ListingRepo) *ListingHandler {
	return &ListingHandler{Listings: l}
}

// Search handles GET /api/listings.  All filters are optional and
// conjunctive; prices arrive as decimal amounts and are converted to
// cents before they hit the query.  Works for both anonymous and
// authenticated viewers.
func (h *ListingHandler) Search(c echo.Context) error {
	page, limit := parsePageQuery(c)

	q := repository.SearchQuery{
		Location:    strings.TrimSpace(c.QueryParam("location")),
		ListingType: strings.TrimSpace(c.QueryParam("listingType")),
		Page:        page,
		PageSize:    limit,
		ViewerID:    optionalUserID(c),
	}
	if v := c.QueryParam("minPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid minPrice"})
		}
		q.MinPriceCents = int64(math.Round(f * 100))
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid maxPrice"})
		}
		q.MaxPriceCents = int64(math.Round(f * 100))
	}
	if v := c.QueryParam("guests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guests"})
		}
		q.Guests = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Listings.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"listings":   items,
		"pagination": repository.NewPagination(page, limit, total),
	})
}

// Popular handles GET /api/listings/popular: the top listings by like
// count with rating as the tie-break.
func (h *ListingHandler) Popular(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Listings.Popular(ctx, optionalUserID(c), popularLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listings": items})
}

// GetByID handles GET /api/listings/:id.
func (h *ListingHandler) GetByID(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	det, err := h.Listings.GetByID(ctx, id, optionalUserID(c))
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"listing": det})
}

// Create handles POST /api/listings (HOST only).
func (h *ListingHandler) Create(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req validation.CreateListingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	l := listingFromRequest(&req)
	l.HostID = hostID

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Create(ctx, l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "listing created", "listing": l})
}

// Update handles PUT /api/listings/:id (owner only).
func (h *ListingHandler) Update(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	var req validation.UpdateListingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	l := listingFromRequest(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Listings.Update(ctx, id, hostID, l); err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{"message": "listing updated"})
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the listing owner"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update listing failed"})
	}
}

// Deactivate handles DELETE /api/listings/:id (owner only).  The row is
// soft-deleted so existing bookings keep a valid reference.
func (h *ListingHandler) Deactivate(c echo.Context) error {
	hostID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Listings.Deactivate(ctx, id, hostID); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not the listing owner"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate listing failed"})
	}
}

// listingFromRequest maps a validated request onto the model, converting
// the decimal nightly price into cents.
func listingFromRequest(req *validation.CreateListingRequest) *model.Listing {
	return &model.Listing{
		Title:              req.Title,
		Description:        req.Description,
		ListingType:        req.ListingType,
		PricePerNightCents: int64(math.Round(req.PricePerNight * 100)),
		Location:           req.Location,
		MaxGuests:          req.MaxGuests,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		Amenities:          req.Amenities,
		Images:             req.Images,
	}
}
