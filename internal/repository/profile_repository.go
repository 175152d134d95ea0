package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/rental-marketplace/internal/model"
)

// ProfileRepo manages per-user profile rows.  A profile shares its
// primary key with the owning user and is only ever written by that
// user, so upserts need no ownership check beyond the key itself.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

// ProfileUpdate carries the optional fields of a profile upsert.  Nil
// pointers leave the stored value untouched.
type ProfileUpdate struct {
	FullName  *string
	Phone     *string
	Bio       *string
	AvatarURL *string
}

// Upsert creates or partially updates the user's profile and returns the
// resulting row.  COALESCE keeps existing values for omitted fields.
func (r *ProfileRepo) Upsert(ctx context.Context, userID uint64, u ProfileUpdate) (model.Profile, error) {
	const q = `INSERT INTO profiles (user_id, full_name, phone, bio, avatar_url)
		VALUES (?, COALESCE(?, ''), ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			full_name  = COALESCE(?, full_name),
			phone      = COALESCE(?, phone),
			bio        = COALESCE(?, bio),
			avatar_url = COALESCE(?, avatar_url),
			updated_at = NOW()`
	_, err := r.db.ExecContext(ctx, q,
		userID, u.FullName, u.Phone, u.Bio, u.AvatarURL,
		u.FullName, u.Phone, u.Bio, u.AvatarURL)
	if err != nil {
		return model.Profile{}, err
	}
	return r.Get(ctx, userID)
}

// Get fetches the user's profile.  ErrNotFound is returned when no
// profile row exists yet.
func (r *ProfileRepo) Get(ctx context.Context, userID uint64) (model.Profile, error) {
	const q = `SELECT user_id, full_name, phone, bio, avatar_url, is_host, created_at, updated_at
		FROM profiles WHERE user_id = ?`
	var p model.Profile
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.UserID, &p.FullName, &p.Phone, &p.Bio, &p.AvatarURL,
		&p.IsHost, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Profile{}, ErrNotFound
	}
	return p, err
}

// ToggleHost flips the user's host flag and keeps users.role in sync,
// all inside one transaction.  It returns the new host status.  A
// missing profile row is created with the flag enabled, matching the
// first-time "become a host" flow.
func (r *ProfileRepo) ToggleHost(ctx context.Context, users *UserRepo, userID uint64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const upsert = `INSERT INTO profiles (user_id, full_name, is_host) VALUES (?, '', 1)
		ON DUPLICATE KEY UPDATE is_host = NOT is_host, updated_at = NOW()`
	if _, err := tx.ExecContext(ctx, upsert, userID); err != nil {
		return false, err
	}

	var isHost bool
	if err := tx.QueryRowContext(ctx,
		"SELECT is_host FROM profiles WHERE user_id = ?", userID).Scan(&isHost); err != nil {
		return false, err
	}

	role := model.RoleGuest
	if isHost {
		role = model.RoleHost
	}
	if err := users.UpdateRoleTx(ctx, tx, userID, role); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return isHost, nil
}
