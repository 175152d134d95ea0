// Package booking holds the pure domain logic of the booking engine:
// date-range parsing, the half-open overlap predicate and price
// computation.  Keeping these free of SQL lets the conflict rules be
// tested without a database; the repository layer mirrors the overlap
// predicate in its conflict query.
package booking

import (
	"errors"
	"time"
)

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// ErrInvalidRange is returned when check-out is not strictly after
// check-in.
var ErrInvalidRange = errors.New("check-out must be after check-in")

// ParseDate parses an ISO calendar date ("2006-01-02") in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// ParseRange parses and validates a check-in/check-out pair.  The range
// is half-open: [checkIn, checkOut).  checkOut must be strictly after
// checkIn, which also guarantees at least one night.
func ParseRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return in, out, nil
}

// Overlaps reports whether the half-open ranges [aIn, aOut) and
// [bIn, bOut) share at least one occupied night.  A checkout on day N
// and a check-in on day N do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Nights returns the number of nights in [checkIn, checkOut), rounding
// any fractional day up: a partial day counts as a full night.  The
// caller is expected to have validated the range, so the result is
// always >= 1 for valid input.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	n := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		n++
	}
	return n
}

// TotalCents computes the stay price: nights × nightly price in cents.
func TotalCents(nights int, pricePerNightCents int64) int64 {
	return int64(nights) * pricePerNightCents
}
