package validation

import "testing"

func fieldsOf(errs []FieldError) map[string]string {
	m := make(map[string]string, len(errs))
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}

func TestRegisterRequest(t *testing.T) {
	if errs := Struct(&RegisterRequest{Email: "a@example.com", Password: "longenough"}); errs != nil {
		t.Fatalf("valid register rejected: %v", errs)
	}

	errs := Struct(&RegisterRequest{Email: "not-an-email", Password: "short"})
	f := fieldsOf(errs)
	if _, ok := f["email"]; !ok {
		t.Errorf("expected email error, got %v", errs)
	}
	if _, ok := f["password"]; !ok {
		t.Errorf("expected password error, got %v", errs)
	}
}

func TestCreateBookingRequest(t *testing.T) {
	valid := CreateBookingRequest{
		ListingID: 1,
		CheckIn:   "2026-07-01",
		CheckOut:  "2026-07-04",
		Guests:    2,
	}
	if errs := Struct(&valid); errs != nil {
		t.Fatalf("valid booking rejected: %v", errs)
	}

	t.Run("reversed range", func(t *testing.T) {
		req := valid
		req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn
		errs := Struct(&req)
		f := fieldsOf(errs)
		if msg, ok := f["checkOut"]; !ok || msg != "check-out date must be after check-in date" {
			t.Fatalf("expected cross-field checkOut error, got %v", errs)
		}
	})

	t.Run("same day", func(t *testing.T) {
		req := valid
		req.CheckOut = req.CheckIn
		if f := fieldsOf(Struct(&req)); f["checkOut"] == "" {
			t.Fatal("same-day range passed validation")
		}
	})

	t.Run("bad date format", func(t *testing.T) {
		req := valid
		req.CheckIn = "07/01/2026"
		f := fieldsOf(Struct(&req))
		if f["checkIn"] != "must be a valid date (YYYY-MM-DD)" {
			t.Fatalf("expected datetime error on checkIn, got %v", f)
		}
	})

	t.Run("zero guests", func(t *testing.T) {
		req := valid
		req.Guests = 0
		if f := fieldsOf(Struct(&req)); f["guests"] == "" {
			t.Fatal("zero guests passed validation")
		}
	})
}

func TestCreateListingRequest(t *testing.T) {
	valid := CreateListingRequest{
		Title:         "Cozy loft in the old town",
		Description:   "A bright and quiet loft close to everything, with a full kitchen and fast wifi.",
		ListingType:   "entire_place",
		PricePerNight: 120.50,
		Location:      "Lisbon, Portugal",
		MaxGuests:     4,
		Bedrooms:      2,
		Bathrooms:     1,
		Amenities:     []string{"wifi"},
		Images:        []string{"https://example.com/1.jpg"},
	}
	if errs := Struct(&valid); errs != nil {
		t.Fatalf("valid listing rejected: %v", errs)
	}

	cases := []struct {
		name  string
		mut   func(*CreateListingRequest)
		field string
	}{
		{"short title", func(r *CreateListingRequest) { r.Title = "Loft" }, "title"},
		{"short description", func(r *CreateListingRequest) { r.Description = "nice" }, "description"},
		{"bad type", func(r *CreateListingRequest) { r.ListingType = "castle" }, "listingType"},
		{"free listing", func(r *CreateListingRequest) { r.PricePerNight = 0 }, "pricePerNight"},
		{"short location", func(r *CreateListingRequest) { r.Location = "LX" }, "location"},
		{"no guests", func(r *CreateListingRequest) { r.MaxGuests = 0 }, "maxGuests"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mut(&req)
			if f := fieldsOf(Struct(&req)); f[tc.field] == "" {
				t.Fatalf("expected error on %s, got %v", tc.field, f)
			}
		})
	}
}

func TestUpdateBookingStatusRequest(t *testing.T) {
	for _, s := range []string{"confirmed", "cancelled", "completed"} {
		if errs := Struct(&UpdateBookingStatusRequest{Status: s}); errs != nil {
			t.Errorf("status %q rejected: %v", s, errs)
		}
	}
	if errs := Struct(&UpdateBookingStatusRequest{Status: "pending"}); errs == nil {
		t.Error("transition back to pending should be rejected")
	}
	if errs := Struct(&UpdateBookingStatusRequest{}); errs == nil {
		t.Error("missing status should be rejected")
	}
}

func TestUpdateProfileRequestOptional(t *testing.T) {
	// All fields omitted is a valid no-op update.
	if errs := Struct(&UpdateProfileRequest{}); errs != nil {
		t.Fatalf("empty update rejected: %v", errs)
	}
	bad := "nope"
	if f := fieldsOf(Struct(&UpdateProfileRequest{AvatarURL: &bad})); f["avatarUrl"] == "" {
		t.Fatal("invalid avatar URL passed validation")
	}
}
