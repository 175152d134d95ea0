package repository

import (
	"context"
	"database/sql"
	"time"
)

// LikeRepo manages the per-user like ledger.  The listing_likes table
// carries a UNIQUE (user_id, listing_id) key, so the toggle can attempt
// the insert first and treat a duplicate-key error as "already liked"
// instead of racing a separate existence check.  Concurrent toggles for
// the same pair therefore converge: at most one row can ever exist.
type LikeRepo struct {
	db *sql.DB
}

// NewLikeRepo returns a new LikeRepo bound to the given database.
func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{db: db} }

// Toggle flips the like status of (userID, listingID) and returns the
// resulting state.  An insert that hits the unique key falls through to
// a delete; a delete that removes nothing reports not-liked.  Neither
// path surfaces a duplicate-key error to the caller.  ErrNotFound is
// returned when the listing does not exist.
func (r *LikeRepo) Toggle(ctx context.Context, userID, listingID uint64) (liked bool, err error) {
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO listing_likes (user_id, listing_id) VALUES (?, ?)",
		userID, listingID)
	if err == nil {
		return true, nil
	}
	if isForeignKeyViolation(err) {
		return false, ErrNotFound
	}
	if !isDuplicateKey(err) {
		return false, err
	}
	// Row already exists: this toggle is an unlike.
	_, err = r.db.ExecContext(ctx,
		"DELETE FROM listing_likes WHERE user_id = ? AND listing_id = ?",
		userID, listingID)
	if err != nil {
		return false, err
	}
	return false, nil
}

// Status reports whether the user has liked the listing.
func (r *LikeRepo) Status(ctx context.Context, userID, listingID uint64) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM listing_likes WHERE user_id = ? AND listing_id = ?
	)`
	var liked bool
	err := r.db.QueryRowContext(ctx, q, userID, listingID).Scan(&liked)
	return liked, err
}

// LikedListing is a liked listing row with the time it was liked.
type LikedListing struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	ListingType   string    `json:"listing_type"`
	PriceCents    int64     `json:"price_per_night_cents"`
	PricePerNight float64   `json:"price_per_night"`
	Location      string    `json:"location"`
	MaxGuests     int       `json:"max_guests"`
	Rating        float64   `json:"rating"`
	LikedAt       time.Time `json:"liked_at"`
}

// ListByUser returns the user's liked listings newest like first,
// restricted to active listings, with the total count for pagination.
func (r *LikeRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]LikedListing, int64, error) {
	var total int64
	const countQ = `SELECT COUNT(*)
		FROM listing_likes ll
		JOIN listings l ON l.id = ll.listing_id
		WHERE ll.user_id = ? AND l.is_active = 1`
	if err := r.db.QueryRowContext(ctx, countQ, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT l.id, l.title, l.listing_type, l.price_per_night_cents,
			l.location, l.max_guests, l.rating, ll.created_at
		FROM listing_likes ll
		JOIN listings l ON l.id = ll.listing_id
		WHERE ll.user_id = ? AND l.is_active = 1
		ORDER BY ll.created_at DESC
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]LikedListing, 0, pageSize)
	for rows.Next() {
		var ll LikedListing
		if err := rows.Scan(&ll.ID, &ll.Title, &ll.ListingType, &ll.PriceCents,
			&ll.Location, &ll.MaxGuests, &ll.Rating, &ll.LikedAt); err != nil {
			return nil, 0, err
		}
		ll.PricePerNight = float64(ll.PriceCents) / 100.0
		out = append(out, ll)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
