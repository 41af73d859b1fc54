package validation

import (
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// now is swapped in tests that need a fixed clock.
var now = time.Now

// New returns a validator with the custom tags registered and field names reported by
// their json tag, so errors line up with request payloads.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("not_past_date", NotPastDate)
	_ = v.RegisterValidation("future_time", FutureTime)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// NotPastDate accepts a date whose UTC calendar day is today or later.
func NotPastDate(fl validator.FieldLevel) bool {
	t, ok := timeValue(fl)
	if !ok {
		return false
	}
	if t.IsZero() {
		return true
	}
	return !StartOfDay(t).Before(StartOfDay(now()))
}

// FutureTime accepts an instant strictly after the current time.
func FutureTime(fl validator.FieldLevel) bool {
	t, ok := timeValue(fl)
	if !ok {
		return false
	}
	return t.After(now())
}

// StartOfDay truncates t to midnight UTC of its UTC calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timeValue(fl validator.FieldLevel) (time.Time, bool) {
	t, ok := fl.Field().Interface().(time.Time)
	return t, ok
}
