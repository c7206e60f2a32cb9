package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasttemplate"
)

// Placeholders available in the classify output template.
const (
	TMPL_ROW   = "row"
	TMPL_IP    = "ip"
	TMPL_RELAY = "relay"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", e.Param())
	case "url":
		return "must be a valid URL"
	case "row_template":
		return fmt.Sprintf("must be a valid row template (placeholders: {{%s}}, {{%s}}, {{%s}})", TMPL_ROW, TMPL_IP, TMPL_RELAY)
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "ranges.output_dir")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):\n", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.FieldPath, err.Message))
	}
	return sb.String()
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("row_template", validateRowTemplate); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: classify output template with known placeholders only
func validateRowTemplate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return ValidateRowTemplate(value) == nil
}

// ValidateRowTemplate checks that a classify output template parses and uses
// only the supported placeholders.
func ValidateRowTemplate(template string) error {
	t, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		return fmt.Errorf("invalid template: %v", err)
	}

	var badTag string
	t.ExecuteFuncString(func(_ io.Writer, tag string) (int, error) {
		switch strings.TrimSpace(tag) {
		case TMPL_ROW, TMPL_IP, TMPL_RELAY:
		default:
			badTag = tag
		}
		return 0, nil
	})

	if badTag != "" {
		return fmt.Errorf("unknown template placeholder: {{%s}}", badTag)
	}
	return nil
}
