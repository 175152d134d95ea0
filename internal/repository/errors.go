// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a resource owned by someone else, while
// ErrDateConflict signals that a requested date range is already taken
// by another pending or confirmed booking.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a resource does not exist or has been
// deactivated.  Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDateConflict is returned when a booking's date range overlaps an
// existing pending or confirmed booking on the same listing.  Handlers
// translate this into HTTP 409.
var ErrDateConflict = errors.New("dates not available")

// ErrEmailExists is returned when registering with an email address
// that is already taken.
var ErrEmailExists = errors.New("email already exists")

// CapacityError is returned when a booking requests more guests than
// the listing allows.  It carries the allowed maximum so the handler
// can report it to the client.
type CapacityError struct {
	MaxGuests int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("maximum guests allowed: %d", e.MaxGuests)
}

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).  The driver does not expose a typed error for this, so
// the code is matched in the message, the same way the unique email
// check works.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isForeignKeyViolation reports whether err is a MySQL foreign key
// failure (error 1452), which surfaces when inserting a row that
// references a missing parent, e.g. liking a listing that was deleted.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1452")
}
