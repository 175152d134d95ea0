// Package validation defines one declarative schema per mutating
// operation.  Request bodies are bound into these structs and validated
// before any store access, producing a uniform field-level error list
// that handlers return as a 400 response.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/rental-marketplace/internal/booking"
)

// FieldError is a single validation failure surfaced to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json tag names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(bookingRange, CreateBookingRequest{})
	return v
}

// bookingRange enforces the cross-field rule that check-out is strictly
// after check-in.  Format errors on the individual dates are reported by
// their datetime tags, so malformed input is skipped here.
func bookingRange(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateBookingRequest)
	in, errIn := booking.ParseDate(req.CheckIn)
	out, errOut := booking.ParseDate(req.CheckOut)
	if errIn != nil || errOut != nil {
		return
	}
	if !out.After(in) {
		sl.ReportError(req.CheckOut, "checkOut", "CheckOut", "aftercheckin", "")
	}
}

// Struct validates v against its schema tags and returns the list of
// field errors, or nil when the value is valid.
func Struct(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "invalid request"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return "must be a valid date (YYYY-MM-DD)"
	case "url":
		return "must be a valid URL"
	case "aftercheckin":
		return "check-out date must be after check-in date"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
