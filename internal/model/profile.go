package model

import "time"

// Profile holds per-user display metadata as stored in the `profiles`
// table.  A profile row shares its primary key with the owning user and
// is upserted by that user only.  IsHost mirrors the users.role column
// and is flipped by the host-status toggle.
type Profile struct {
	UserID    uint64    // profiles.user_id
	FullName  string    // profiles.full_name
	Phone     *string   // profiles.phone (nullable)
	Bio       *string   // profiles.bio (nullable)
	AvatarURL *string   // profiles.avatar_url (nullable)
	IsHost    bool      // profiles.is_host
	CreatedAt time.Time // profiles.created_at
	UpdatedAt time.Time // profiles.updated_at
}
