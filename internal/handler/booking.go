package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/booking"
	"github.com/iliyamo/rental-marketplace/internal/model"
	"github.com/iliyamo/rental-marketplace/internal/queue"
	"github.com/iliyamo/rental-marketplace/internal/repository"
	queue_publisher "github.com/iliyamo/rental-marketplace/internal/service"
	"github.com/iliyamo/rental-marketplace/internal/validation"
)

// BookingHandler serves guest-side booking creation and management.
// Creation runs as a single transaction: the listing row is locked
// first, then the date-conflict check and the insert execute under that
// lock, so two guests can never book overlapping ranges on the same
// listing.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Listings *repository.ListingRepo
}

func NewBookingHandler(b *repository.BookingRepo, l *repository.ListingRepo) *BookingHandler {
	return &BookingHandler{Bookings: b, Listings: l}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	guestID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req validation.CreateBookingRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	checkIn, checkOut, err := booking.ParseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check-out must be after check-in"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the listing row first; concurrent attempts on the same
	// listing serialize here.
	priceCents, maxGuests, err := h.Listings.GetForUpdateTx(ctx, tx, req.ListingID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found or not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load listing failed"})
	}
	if req.Guests > maxGuests {
		capErr := repository.CapacityError{MaxGuests: maxGuests}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": capErr.Error()})
	}

	conflict, err := h.Bookings.HasConflictTx(ctx, tx, req.ListingID, checkIn, checkOut)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "conflict check failed"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, echo.Map{"error": "listing is not available for the selected dates"})
	}

	nights := booking.Nights(checkIn, checkOut)
	rec := repository.BookingRecord{
		ListingID:       req.ListingID,
		GuestID:         guestID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		TotalPriceCents: booking.TotalCents(nights, priceCents),
		Status:          model.BookingPending,
	}
	if req.SpecialRequests != "" {
		sr := req.SpecialRequests
		rec.SpecialRequests = &sr
	}
	if err := h.Bookings.CreateTx(ctx, tx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create booking failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Best effort: the booking is already durable, so a publish failure
	// must not fail the request.
	event := queue.BookingCreatedEvent{
		BookingID:       rec.ID,
		ListingID:       rec.ListingID,
		GuestID:         rec.GuestID,
		CheckIn:         rec.CheckInDate,
		CheckOut:        rec.CheckOutDate,
		Guests:          rec.Guests,
		TotalPriceCents: rec.TotalPriceCents,
		Status:          rec.Status,
		CreatedAt:       rec.CreatedAt,
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishBookingCreated(pubCtx, event)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "booking created",
		"booking": rec,
		"nights":  nights,
	})
}

// List handles GET /api/bookings: the caller's own bookings, newest
// first, optionally filtered by status.
func (h *BookingHandler) List(c echo.Context) error {
	guestID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, limit := parsePageQuery(c)

	status := c.QueryParam("status")
	switch status {
	case "", model.BookingPending, model.BookingConfirmed, model.BookingCancelled, model.BookingCompleted:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Bookings.ListByGuest(ctx, guestID, status, page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings":   items,
		"pagination": repository.NewPagination(page, limit, total),
	})
}

// GetByID handles GET /api/bookings/:id.  Only the booking's own guest
// can see it; anything else reads as not found.
func (h *BookingHandler) GetByID(c echo.Context) error {
	guestID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	det, err := h.Bookings.GetByIDForGuest(ctx, id, guestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": det})
}

// UpdateStatus handles PATCH /api/bookings/:id/status.  The listing's
// host may confirm, cancel or complete; the guest may only cancel their
// own pending or confirmed booking.  The row is locked so concurrent
// transitions serialize.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req validation.UpdateBookingStatusRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	guestID, hostID, current, err := h.Bookings.GetTransitionInfoTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load booking failed"})
	}

	switch callerID {
	case hostID:
		if !hostTransitionAllowed(current, req.Status) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": fmt.Sprintf("cannot change status from %s to %s", current, req.Status),
			})
		}
	case guestID:
		// Guests may only back out of an upcoming stay.
		if req.Status != model.BookingCancelled ||
			(current != model.BookingPending && current != model.BookingConfirmed) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": fmt.Sprintf("cannot change status from %s to %s", current, req.Status),
			})
		}
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not a party to this booking"})
	}

	if err := h.Bookings.UpdateStatusTx(ctx, tx, id, req.Status); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"message": "booking status updated", "status": req.Status})
}

// hostTransitionAllowed encodes the host-side lifecycle: pending may be
// confirmed or cancelled, confirmed may be cancelled or completed.
// Cancelled and completed are terminal.
func hostTransitionAllowed(from, to string) bool {
	switch from {
	case model.BookingPending:
		return to == model.BookingConfirmed || to == model.BookingCancelled
	case model.BookingConfirmed:
		return to == model.BookingCancelled || to == model.BookingCompleted
	default:
		return false
	}
}
