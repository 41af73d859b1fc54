package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"job-board-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// FieldErrors collects field-level messages for one operation. Struct tag failures and
// hand written rules land in the same map so callers see every problem at once.
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Merge adds the messages of a validator error. Any other non-nil error is recorded under "_".
func (f FieldErrors) Merge(err error) {
	if err == nil {
		return
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		f.Add("_", err.Error())
		return
	}
	for _, e := range validationErrors {
		f.Add(fieldPath(e), formatSingleError(e))
	}
}

// Err returns an apperror validation error, or nil when nothing was recorded.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return apperror.Validation(map[string]string(f))
}

// String renders the messages in field order; useful for logs.
func (f FieldErrors) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// fieldPath drops the top level struct name from the namespace, keeping nested paths.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("cannot exceed %s characters", param)
		}
		return fmt.Sprintf("must be at most %s", param)
	case "gt":
		return fmt.Sprintf("must be greater than %s", param)
	case "gte":
		return fmt.Sprintf("must be %s or more", param)
	case "lte":
		return fmt.Sprintf("must be %s or less", param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(param), ", "))
	case "no_emoji":
		return "must not contain emoji or symbols"
	case "not_past_date":
		return "cannot be in the past"
	case "future_time":
		return "must be in the future"
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}
