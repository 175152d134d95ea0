package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/rental-marketplace/internal/booking"
)

// BookingRepo provides persistence for bookings.  The conflict check and
// the insert are exposed as ...Tx methods so the handler can run
// existence check, conflict check and insert as one atomic unit: the
// caller locks the listing row first (ListingRepo.GetForUpdateTx), which
// serializes concurrent attempts on the same listing.  All dates are
// half-open calendar ranges [check_in, check_out) stored as DATE in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingRecord mirrors the schema of the bookings table.  It is used
// by the repository when constructing or scanning rows.
type BookingRecord struct {
	ID              uint64    `json:"id"`
	ListingID       uint64    `json:"listing_id"`
	GuestID         uint64    `json:"guest_id"`
	CheckIn         time.Time `json:"-"`
	CheckOut        time.Time `json:"-"`
	CheckInDate     string    `json:"check_in"`
	CheckOutDate    string    `json:"check_out"`
	Guests          int       `json:"guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// HasConflictTx reports whether any pending or confirmed booking on the
// listing overlaps the half-open range [checkIn, checkOut).  The overlap
// rule is a single predicate over all blocking rows:
//
//	existing.check_in < checkOut AND existing.check_out > checkIn
//
// so a checkout on day N and a new check-in on day N never conflict.
// Cancelled and completed bookings do not block.
func (r *BookingRepo) HasConflictTx(ctx context.Context, tx *sql.Tx, listingID uint64, checkIn, checkOut time.Time) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM bookings
		WHERE listing_id = ?
		  AND status IN ('pending','confirmed')
		  AND check_in < ? AND check_out > ?
	)`
	var conflict bool
	err := tx.QueryRowContext(ctx, q, listingID, checkOut, checkIn).Scan(&conflict)
	return conflict, err
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// record.  The caller must commit or rollback the transaction.  New
// bookings always start in the pending status.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
	const q = `INSERT INTO bookings
		(listing_id, guest_id, check_in, check_out, guests, total_price_cents, status, special_requests)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.ListingID, b.GuestID, b.CheckIn, b.CheckOut,
		b.Guests, b.TotalPriceCents, b.Status, b.SpecialRequests)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate timestamps and defaults.
	const sel = `SELECT check_in, check_out, created_at FROM bookings WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CheckIn, &b.CheckOut, &b.CreatedAt); err != nil {
		return err
	}
	b.CheckInDate = b.CheckIn.Format(booking.DateLayout)
	b.CheckOutDate = b.CheckOut.Format(booking.DateLayout)
	b.TotalPrice = float64(b.TotalPriceCents) / 100.0
	return nil
}

// BookingDetail is a booking joined with display fields from its
// listing, returned by the guest-facing list and detail endpoints.
type BookingDetail struct {
	ID              uint64    `json:"id"`
	ListingID       uint64    `json:"listing_id"`
	CheckIn         string    `json:"check_in"`
	CheckOut        string    `json:"check_out"`
	Guests          int       `json:"guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	TotalPrice      float64   `json:"total_price"`
	Status          string    `json:"status"`
	SpecialRequests *string   `json:"special_requests,omitempty"`
	ListingTitle    string    `json:"listing_title"`
	ListingLocation string    `json:"listing_location"`
	ListingImage    *string   `json:"listing_image,omitempty"`
	HostName        *string   `json:"host_name,omitempty"`
	HostPhone       *string   `json:"host_phone,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListByGuest returns the guest's own bookings newest first, optionally
// filtered by status, along with the total count for pagination.
func (r *BookingRepo) ListByGuest(ctx context.Context, guestID uint64, status string, page, pageSize int) ([]BookingDetail, int64, error) {
	cond := "b.guest_id = ?"
	args := []any{guestID}
	if status != "" {
		cond += " AND b.status = ?"
		args = append(args, status)
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM bookings b WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT b.id, b.listing_id, b.check_in, b.check_out, b.guests,
			b.total_price_cents, b.status, b.special_requests, b.created_at,
			l.title, l.location,
			JSON_UNQUOTE(JSON_EXTRACT(l.images, '$[0]'))
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE ` + cond + `
		ORDER BY b.created_at DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), pageSize, (page-1)*pageSize)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]BookingDetail, 0, pageSize)
	for rows.Next() {
		var d BookingDetail
		var in, outDate time.Time
		var img sql.NullString
		if err := rows.Scan(
			&d.ID, &d.ListingID, &in, &outDate, &d.Guests,
			&d.TotalPriceCents, &d.Status, &d.SpecialRequests, &d.CreatedAt,
			&d.ListingTitle, &d.ListingLocation, &img,
		); err != nil {
			return nil, 0, err
		}
		d.CheckIn = in.Format(booking.DateLayout)
		d.CheckOut = outDate.Format(booking.DateLayout)
		d.TotalPrice = float64(d.TotalPriceCents) / 100.0
		if img.Valid {
			v := img.String
			d.ListingImage = &v
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByIDForGuest returns a single booking owned by the guest, joined
// with listing and host contact details.  sql.ErrNoRows is returned when
// the booking does not exist or belongs to someone else, so a caller
// cannot probe for other users' bookings.
func (r *BookingRepo) GetByIDForGuest(ctx context.Context, bookingID, guestID uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, b.listing_id, b.check_in, b.check_out, b.guests,
			b.total_price_cents, b.status, b.special_requests, b.created_at,
			l.title, l.location,
			JSON_UNQUOTE(JSON_EXTRACT(l.images, '$[0]')),
			p.full_name, p.phone
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		LEFT JOIN profiles p ON p.user_id = l.host_id
		WHERE b.id = ? AND b.guest_id = ?`

	var d BookingDetail
	var in, out time.Time
	var img, hostName, hostPhone sql.NullString
	err := r.db.QueryRowContext(ctx, q, bookingID, guestID).Scan(
		&d.ID, &d.ListingID, &in, &out, &d.Guests,
		&d.TotalPriceCents, &d.Status, &d.SpecialRequests, &d.CreatedAt,
		&d.ListingTitle, &d.ListingLocation, &img, &hostName, &hostPhone,
	)
	if err != nil {
		return nil, err
	}
	d.CheckIn = in.Format(booking.DateLayout)
	d.CheckOut = out.Format(booking.DateLayout)
	d.TotalPrice = float64(d.TotalPriceCents) / 100.0
	if img.Valid {
		v := img.String
		d.ListingImage = &v
	}
	if hostName.Valid {
		v := hostName.String
		d.HostName = &v
	}
	if hostPhone.Valid {
		v := hostPhone.String
		d.HostPhone = &v
	}
	return &d, nil
}

// GetTransitionInfoTx loads the parties and current status of a booking
// inside a transaction, locking the row so concurrent status changes
// serialize.  It returns the booking's guest, the owning host of the
// listing and the current status.  sql.ErrNoRows is returned when the
// booking does not exist.
func (r *BookingRepo) GetTransitionInfoTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (guestID, hostID uint64, status string, err error) {
	const q = `SELECT b.guest_id, l.host_id, b.status
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE b.id = ? FOR UPDATE`
	err = tx.QueryRowContext(ctx, q, bookingID).Scan(&guestID, &hostID, &status)
	return guestID, hostID, status, err
}

// UpdateStatusTx sets a booking's status within a transaction.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status = ?, updated_at = NOW() WHERE id = ?",
		status, bookingID)
	return err
}
