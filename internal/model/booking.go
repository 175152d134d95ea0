package model

import "time"

// Booking statuses.  Only pending and confirmed bookings block a
// listing's date range for new reservations; cancelling frees the range.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking records a guest's reservation of a listing for a half-open
// date range [CheckIn, CheckOut): the checkout day itself is not
// occupied.  TotalPriceCents is computed at creation time as
// nights × the listing's nightly price and is not recomputed when the
// listing price later changes.
//
// Fields:
//
//	ID              – primary key identifier.
//	ListingID       – listing being booked.
//	GuestID         – user who made the booking.
//	CheckIn         – first occupied date (inclusive).
//	CheckOut        – departure date (exclusive).
//	Guests          – number of guests staying.
//	TotalPriceCents – total price in cents for the whole stay.
//	Status          – pending, confirmed, cancelled or completed.
//	SpecialRequests – optional free-text note to the host.
//	CreatedAt       – creation timestamp.
//	UpdatedAt       – last update timestamp.
type Booking struct {
	ID              uint64    // bookings.id
	ListingID       uint64    // bookings.listing_id
	GuestID         uint64    // bookings.guest_id
	CheckIn         time.Time // bookings.check_in (DATE)
	CheckOut        time.Time // bookings.check_out (DATE)
	Guests          int       // bookings.guests
	TotalPriceCents int64     // bookings.total_price_cents
	Status          string    // bookings.status
	SpecialRequests *string   // bookings.special_requests (nullable)
	CreatedAt       time.Time // bookings.created_at
	UpdatedAt       time.Time // bookings.updated_at
}
