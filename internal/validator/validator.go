package validator

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// IsImageURL validates an optional profile image URL. Empty is allowed;
// the service substitutes the configured placeholder.
func IsImageURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
