package repository

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestBuildSearchWhereDefault(t *testing.T) {
	cond, args := buildSearchWhere(SearchQuery{})
	if cond != "l.is_active = 1" {
		t.Fatalf("empty query: got %q", cond)
	}
	if len(args) != 0 {
		t.Fatalf("empty query: got args %v", args)
	}
}

func TestBuildSearchWhereAllFilters(t *testing.T) {
	q := SearchQuery{
		Location:      "Lisbon",
		MinPriceCents: 5000,
		MaxPriceCents: 20000,
		Guests:        3,
		ListingType:   "entire_place",
	}
	cond, args := buildSearchWhere(q)

	for _, frag := range []string{
		"l.is_active = 1",
		"LOWER(l.location) LIKE ?",
		"l.price_per_night_cents >= ?",
		"l.price_per_night_cents <= ?",
		"l.max_guests >= ?",
		"l.listing_type = ?",
	} {
		if !strings.Contains(cond, frag) {
			t.Errorf("missing predicate %q in %q", frag, cond)
		}
	}
	// Filters are conjunctive.
	if strings.Contains(cond, " OR ") {
		t.Errorf("predicates must be ANDed: %q", cond)
	}
	want := []any{"%lisbon%", int64(5000), int64(20000), 3, "entire_place"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestBuildSearchWhereSingleFilter(t *testing.T) {
	cond, args := buildSearchWhere(SearchQuery{Guests: 2})
	if cond != "l.is_active = 1 AND l.max_guests >= ?" {
		t.Fatalf("got %q", cond)
	}
	if !reflect.DeepEqual(args, []any{2}) {
		t.Fatalf("got args %v", args)
	}
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		want        Pagination
	}{
		{"first of many", 1, 10, 35, Pagination{1, 4, 35, true, false}},
		{"middle", 2, 10, 35, Pagination{2, 4, 35, true, true}},
		{"last partial", 4, 10, 35, Pagination{4, 4, 35, false, true}},
		{"exact fit", 2, 10, 20, Pagination{2, 2, 20, false, true}},
		{"empty", 1, 10, 0, Pagination{1, 0, 0, false, false}},
		{"past the end", 9, 10, 35, Pagination{9, 4, 35, false, true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewPagination(tc.page, tc.limit, tc.total)
			if got != tc.want {
				t.Fatalf("NewPagination(%d,%d,%d) = %+v, want %+v",
					tc.page, tc.limit, tc.total, got, tc.want)
			}
		})
	}
}

func TestMySQLErrorMatching(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry '1-2' for key 'uq_listing_likes_pair'")
	fk := errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails")

	if !isDuplicateKey(dup) {
		t.Error("duplicate key error not detected")
	}
	if isDuplicateKey(fk) || isDuplicateKey(nil) || isDuplicateKey(errors.New("timeout")) {
		t.Error("false positive in isDuplicateKey")
	}
	if !isForeignKeyViolation(fk) {
		t.Error("foreign key error not detected")
	}
	if isForeignKeyViolation(dup) || isForeignKeyViolation(nil) {
		t.Error("false positive in isForeignKeyViolation")
	}
}

func TestCapacityErrorMessage(t *testing.T) {
	err := &CapacityError{MaxGuests: 4}
	if err.Error() != "maximum guests allowed: 4" {
		t.Fatalf("got %q", err.Error())
	}
}
