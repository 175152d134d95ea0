package model

import "time"

// Listing types accepted by the create/update schemas and stored in
// listings.listing_type.
const (
	ListingEntirePlace = "entire_place"
	ListingPrivateRoom = "private_room"
	ListingSharedRoom  = "shared_room"
)

// Listing represents a bookable property record as stored in the
// `listings` table.  Prices are stored in cents to avoid floating point
// drift; handlers expose both the cent value and a derived decimal.
// Amenities and Images are JSON-encoded string arrays in the database.
// A listing is never hard-deleted: deactivation flips IsActive.
//
// Fields:
//
//	ID                 – primary key identifier.
//	HostID             – user who owns and publishes the listing.
//	Title              – short display title.
//	Description        – long-form description.
//	ListingType        – entire_place, private_room or shared_room.
//	PricePerNightCents – nightly price in cents.
//	Location           – free-text location, searched by substring.
//	MaxGuests          – maximum guest capacity.
//	Bedrooms           – number of bedrooms.
//	Bathrooms          – number of bathrooms.
//	Amenities          – amenity labels.
//	Images             – image URLs.
//	Rating             – aggregate rating, used as popularity tie-break.
//	IsActive           – soft-delete flag.
//	CreatedAt          – creation timestamp.
//	UpdatedAt          – last update timestamp.
type Listing struct {
	ID                 uint64    // listings.id
	HostID             uint64    // listings.host_id
	Title              string    // listings.title
	Description        string    // listings.description
	ListingType        string    // listings.listing_type
	PricePerNightCents int64     // listings.price_per_night_cents
	Location           string    // listings.location
	MaxGuests          int       // listings.max_guests
	Bedrooms           int       // listings.bedrooms
	Bathrooms          int       // listings.bathrooms
	Amenities          []string  // listings.amenities (JSON)
	Images             []string  // listings.images (JSON)
	Rating             float64   // listings.rating
	IsActive           bool      // listings.is_active
	CreatedAt          time.Time // listings.created_at
	UpdatedAt          time.Time // listings.updated_at
}
