package validation

// RegisterRequest creates a new account.  Every account starts as a
// GUEST; host capability is enabled later via the host-status toggle.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest exchanges credentials for a token pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateBookingRequest reserves a listing for a half-open date range.
// The cross-field rule (check-out strictly after check-in) is enforced
// by a struct-level validation so it fails before any store access.
type CreateBookingRequest struct {
	ListingID       uint64 `json:"listingId" validate:"required"`
	CheckIn         string `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut        string `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	SpecialRequests string `json:"specialRequests" validate:"omitempty,max=1000"`
}

// CreateListingRequest publishes a new listing.  The thresholds mirror
// what the booking form expects: a meaningful title and description, a
// positive nightly price and at least one guest/bedroom/bathroom.
type CreateListingRequest struct {
	Title         string   `json:"title" validate:"required,min=10"`
	Description   string   `json:"description" validate:"required,min=50"`
	ListingType   string   `json:"listingType" validate:"required,oneof=entire_place private_room shared_room"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,gt=0"`
	Location      string   `json:"location" validate:"required,min=5"`
	MaxGuests     int      `json:"maxGuests" validate:"required,min=1"`
	Bedrooms      int      `json:"bedrooms" validate:"required,min=1"`
	Bathrooms     int      `json:"bathrooms" validate:"required,min=1"`
	Amenities     []string `json:"amenities" validate:"required"`
	Images        []string `json:"images" validate:"required"`
}

// UpdateListingRequest replaces a listing's mutable fields.  Same schema
// as creation; ownership is enforced by the repository.
type UpdateListingRequest = CreateListingRequest

// UpdateBookingStatusRequest moves a booking through its lifecycle.
// Which transitions are allowed for which party is decided by the
// handler, not the schema.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

// UpdateProfileRequest upserts the caller's profile.  All fields are
// optional; omitted fields keep their stored values.
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName" validate:"omitempty,min=2"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url"`
}
