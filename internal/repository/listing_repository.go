package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/iliyamo/rental-marketplace/internal/model"
)

// ListingRepo provides CRUD, search and popularity queries for listings.
// Listings are soft-deactivated via the is_active flag and never
// removed, so historical bookings keep a valid reference.  Like counts
// are always aggregated from listing_likes rather than stored, so the
// count cannot drift.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo returns a new ListingRepo bound to the given database.
func NewListingRepo(db *sql.DB) *ListingRepo { return &ListingRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions
// that span multiple repositories.
func (r *ListingRepo) DB() *sql.DB { return r.db }

// ListingSummary is the row shape returned by Search and Popular.  It
// carries the derived like count and whether the viewing user has liked
// the listing.  Price is exposed both in cents and as a decimal.
type ListingSummary struct {
	ID            uint64    `json:"id"`
	HostID        uint64    `json:"host_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ListingType   string    `json:"listing_type"`
	PriceCents    int64     `json:"price_per_night_cents"`
	PricePerNight float64   `json:"price_per_night"`
	Location      string    `json:"location"`
	MaxGuests     int       `json:"max_guests"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	Amenities     []string  `json:"amenities"`
	Images        []string  `json:"images"`
	Rating        float64   `json:"rating"`
	LikeCount     int64     `json:"like_count"`
	IsLikedByUser bool      `json:"is_liked_by_user"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListingDetail extends ListingSummary with host display information for
// the single-listing endpoint.
type ListingDetail struct {
	ListingSummary
	HostName   string  `json:"host_name"`
	HostAvatar *string `json:"host_avatar,omitempty"`
}

// SearchQuery defines the optional conjunctive filters and pagination
// for listing search.  Zero values mean "no restriction".  Prices are
// in cents.  ViewerID is 0 for anonymous requests.
type SearchQuery struct {
	Location      string
	MinPriceCents int64
	MaxPriceCents int64
	Guests        int
	ListingType   string
	Page          int
	PageSize      int
	ViewerID      uint64
}

// buildSearchWhere translates a SearchQuery into a WHERE clause and its
// arguments.  Unset filters are simply omitted from the predicate; the
// is_active restriction is always present.
func buildSearchWhere(q SearchQuery) (string, []any) {
	where := []string{"l.is_active = 1"}
	args := []any{}

	if q.Location != "" {
		where = append(where, "LOWER(l.location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if q.MinPriceCents > 0 {
		where = append(where, "l.price_per_night_cents >= ?")
		args = append(args, q.MinPriceCents)
	}
	if q.MaxPriceCents > 0 {
		where = append(where, "l.price_per_night_cents <= ?")
		args = append(args, q.MaxPriceCents)
	}
	if q.Guests > 0 {
		where = append(where, "l.max_guests >= ?")
		args = append(args, q.Guests)
	}
	if q.ListingType != "" {
		where = append(where, "l.listing_type = ?")
		args = append(args, q.ListingType)
	}
	return strings.Join(where, " AND "), args
}

// selectSummary is the shared projection for Search and Popular.  The
// like count comes from an aggregated subquery and the per-viewer flag
// from an EXISTS probe; viewer id 0 never matches a like row.
const selectSummary = `SELECT
		l.id, l.host_id, l.title, l.description, l.listing_type,
		l.price_per_night_cents, l.location, l.max_guests, l.bedrooms, l.bathrooms,
		l.amenities, l.images, l.rating, l.created_at,
		COALESCE(lc.like_count, 0) AS like_count,
		EXISTS(SELECT 1 FROM listing_likes ul WHERE ul.listing_id = l.id AND ul.user_id = ?) AS is_liked
	FROM listings l
	LEFT JOIN (
		SELECT listing_id, COUNT(*) AS like_count
		FROM listing_likes
		GROUP BY listing_id
	) lc ON lc.listing_id = l.id`

// Search returns active listings matching the query's filters along with
// the total match count for pagination.  Results are ordered newest
// first.
func (r *ListingRepo) Search(ctx context.Context, q SearchQuery) ([]ListingSummary, int64, error) {
	cond, args := buildSearchWhere(q)

	var total int64
	countSQL := `SELECT COUNT(*) FROM listings l WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := selectSummary + `
	WHERE ` + cond + `
	ORDER BY l.created_at DESC
	LIMIT ? OFFSET ?`

	argsData := append([]any{q.ViewerID}, args...)
	argsData = append(argsData, limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]ListingSummary, 0, limit)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Popular returns the top active listings ranked by like count, with
// rating as the tie-break.  The like count is derived at query time.
func (r *ListingRepo) Popular(ctx context.Context, viewerID uint64, limit int) ([]ListingSummary, error) {
	q := selectSummary + `
	WHERE l.is_active = 1
	ORDER BY like_count DESC, l.rating DESC
	LIMIT ?`

	rows, err := r.db.QueryContext(ctx, q, viewerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ListingSummary, 0, limit)
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single active listing with host display info and
// like metadata.  ErrNotFound is returned when the listing does not
// exist or has been deactivated.
func (r *ListingRepo) GetByID(ctx context.Context, id, viewerID uint64) (*ListingDetail, error) {
	const q = `SELECT
			l.id, l.host_id, l.title, l.description, l.listing_type,
			l.price_per_night_cents, l.location, l.max_guests, l.bedrooms, l.bathrooms,
			l.amenities, l.images, l.rating, l.created_at,
			COALESCE(lc.like_count, 0) AS like_count,
			EXISTS(SELECT 1 FROM listing_likes ul WHERE ul.listing_id = l.id AND ul.user_id = ?) AS is_liked,
			COALESCE(p.full_name, ''), p.avatar_url
		FROM listings l
		LEFT JOIN profiles p ON p.user_id = l.host_id
		LEFT JOIN (
			SELECT listing_id, COUNT(*) AS like_count
			FROM listing_likes
			GROUP BY listing_id
		) lc ON lc.listing_id = l.id
		WHERE l.id = ? AND l.is_active = 1`

	var det ListingDetail
	var amenities, images []byte
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx, q, viewerID, id).Scan(
		&det.ID, &det.HostID, &det.Title, &det.Description, &det.ListingType,
		&det.PriceCents, &det.Location, &det.MaxGuests, &det.Bedrooms, &det.Bathrooms,
		&amenities, &images, &det.Rating, &det.CreatedAt,
		&det.LikeCount, &det.IsLikedByUser,
		&det.HostName, &avatar,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	det.Amenities = decodeStringArray(amenities)
	det.Images = decodeStringArray(images)
	det.PricePerNight = float64(det.PriceCents) / 100.0
	if avatar.Valid {
		av := avatar.String
		det.HostAvatar = &av
	}
	return &det, nil
}

// Create inserts a new listing owned by the given host and populates
// the generated ID and timestamps on the model.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	amenities, err := json.Marshal(l.Amenities)
	if err != nil {
		return err
	}
	images, err := json.Marshal(l.Images)
	if err != nil {
		return err
	}
	const q = `INSERT INTO listings
		(host_id, title, description, listing_type, price_per_night_cents,
		 location, max_guests, bedrooms, bathrooms, amenities, images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		l.HostID, l.Title, l.Description, l.ListingType, l.PricePerNightCents,
		l.Location, l.MaxGuests, l.Bedrooms, l.Bathrooms, amenities, images)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	const sel = `SELECT rating, is_active, created_at, updated_at FROM listings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, l.ID).Scan(&l.Rating, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
}

// Update replaces the mutable fields of a listing.  Only the owning
// host may update; ErrNotFound is returned for a missing listing and
// ErrForbidden when the caller does not own it.
func (r *ListingRepo) Update(ctx context.Context, id, hostID uint64, l *model.Listing) error {
	if err := r.checkOwner(ctx, id, hostID); err != nil {
		return err
	}
	amenities, err := json.Marshal(l.Amenities)
	if err != nil {
		return err
	}
	images, err := json.Marshal(l.Images)
	if err != nil {
		return err
	}
	const q = `UPDATE listings SET
		title = ?, description = ?, listing_type = ?, price_per_night_cents = ?,
		location = ?, max_guests = ?, bedrooms = ?, bathrooms = ?,
		amenities = ?, images = ?, updated_at = NOW()
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q,
		l.Title, l.Description, l.ListingType, l.PricePerNightCents,
		l.Location, l.MaxGuests, l.Bedrooms, l.Bathrooms, amenities, images, id)
	return err
}

// Deactivate soft-deletes a listing by clearing is_active.  The row is
// kept so existing bookings remain resolvable.
func (r *ListingRepo) Deactivate(ctx context.Context, id, hostID uint64) error {
	if err := r.checkOwner(ctx, id, hostID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE listings SET is_active = 0, updated_at = NOW() WHERE id = ?", id)
	return err
}

// GetForUpdateTx loads the booking-relevant columns of an active listing
// and locks its row for the remainder of the transaction.  Concurrent
// booking attempts on the same listing serialize on this lock, which is
// what makes the conflict check plus insert atomic.  ErrNotFound is
// returned when the listing is missing or inactive.
func (r *ListingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (priceCents int64, maxGuests int, err error) {
	const q = `SELECT price_per_night_cents, max_guests
		FROM listings WHERE id = ? AND is_active = 1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, id).Scan(&priceCents, &maxGuests)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	return priceCents, maxGuests, err
}

func (r *ListingRepo) checkOwner(ctx context.Context, id, hostID uint64) error {
	var actual uint64
	err := r.db.QueryRowContext(ctx, "SELECT host_id FROM listings WHERE id = ?", id).Scan(&actual)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if actual != hostID {
		return ErrForbidden
	}
	return nil
}

// scanSummary scans one selectSummary row.
func scanSummary(rows *sql.Rows) (ListingSummary, error) {
	var s ListingSummary
	var amenities, images []byte
	if err := rows.Scan(
		&s.ID, &s.HostID, &s.Title, &s.Description, &s.ListingType,
		&s.PriceCents, &s.Location, &s.MaxGuests, &s.Bedrooms, &s.Bathrooms,
		&amenities, &images, &s.Rating, &s.CreatedAt,
		&s.LikeCount, &s.IsLikedByUser,
	); err != nil {
		return ListingSummary{}, err
	}
	s.Amenities = decodeStringArray(amenities)
	s.Images = decodeStringArray(images)
	s.PricePerNight = float64(s.PriceCents) / 100.0
	return s, nil
}

// decodeStringArray unmarshals a JSON array column, treating NULL or
// malformed data as empty so a bad row never breaks a whole page.
func decodeStringArray(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
