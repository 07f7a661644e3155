package validation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/meharaz2020/fair-dashboard/internal/core/domain"
	apperrors "github.com/meharaz2020/fair-dashboard/internal/core/errors"
)

// Validator validates request data
type Validator struct {
	errors *apperrors.ValidationErrors
}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{
		errors: apperrors.NewValidationErrors(),
	}
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return v.errors.HasErrors()
}

// Errors returns the validation errors
func (v *Validator) Errors() *apperrors.ValidationErrors {
	return v.errors
}

// OneOf validates value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}

	for _, a := range allowed {
		if value == a {
			return v
		}
	}

	v.errors.Add(field, "Must be one of: "+strings.Join(allowed, ", "))
	return v
}

// ParseMode reads the time-series mode from the "mode" query parameter.
// An absent parameter selects def.
func ParseMode(r *http.Request, def domain.Mode) (domain.Mode, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("mode"))
	if raw == "" {
		return def, nil
	}

	allowed := make([]string, 0, len(domain.Modes))
	for _, m := range domain.Modes {
		allowed = append(allowed, string(m))
	}

	v := NewValidator().OneOf("mode", raw, allowed)
	if v.HasErrors() {
		return "", fmt.Errorf("%w %q: %w", apperrors.ErrInvalidMode, raw, v.Errors())
	}
	return domain.Mode(raw), nil
}
