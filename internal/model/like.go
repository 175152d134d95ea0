package model

import "time"

// Like marks a listing as a favorite of a user.  The pair
// (UserID, ListingID) is unique at the database level, which is what
// keeps concurrent toggles from producing duplicate rows.
type Like struct {
	ID        uint64    // listing_likes.id
	UserID    uint64    // listing_likes.user_id
	ListingID uint64    // listing_likes.listing_id
	CreatedAt time.Time // listing_likes.created_at
}
