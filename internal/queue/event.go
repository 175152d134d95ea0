// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// BookingCreatedEvent is published when a booking is successfully
// created.  It carries enough information for downstream consumers to
// log, notify the host, or feed analytics without querying the primary
// database.
type BookingCreatedEvent struct {
	BookingID       uint64    `json:"booking_id"`
	ListingID       uint64    `json:"listing_id"`
	GuestID         uint64    `json:"guest_id"`
	CheckIn         string    `json:"check_in"`
	CheckOut        string    `json:"check_out"`
	Guests          int       `json:"guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
