package validator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WebhookPlaceholder is the value shipped in sample environments before a real webhook is configured.
const WebhookPlaceholder = "YOUR_FALLBACK_DISCORD_WEBHOOK_URL_HERE"

// Validator is a wrapper around the validator library.
type Validator struct {
	validate *validator.Validate
}

// New creates a new Validator instance with the bot's custom tags registered.
func New() *Validator {
	v := validator.New()
	// Registration only fails for empty tag names or nil funcs.
	_ = v.RegisterValidation("webhookurl", validateWebhookURL)
	return &Validator{validate: v}
}

// ValidateStruct validates a struct based on its tags.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		return fmt.Errorf("validation failed: %s: %w", strings.Join(msgs, "; "), err)
	}
	return fmt.Errorf("validation failed: %w", err)
}

// ValidateVar validates a single value against a tag expression.
func (v *Validator) ValidateVar(field any, tag string) error {
	if err := v.validate.Var(field, tag); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// validateWebhookURL accepts an unset webhook, the placeholder, or an absolute http(s) URL.
func validateWebhookURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" || raw == WebhookPlaceholder {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
