package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.Ranges == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "ranges",
			Message:   "configuration must contain 'ranges' section",
		})
		return validationErrors
	}

	if err := validate.Struct(c.Ranges); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "ranges")...)
	}

	if c.Classify != nil {
		if err := validate.Struct(c.Classify); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "classify")...)
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				if fieldPrefix != "" {
					fieldPath = fieldPrefix + "." + e.Field()
				} else {
					fieldPath = e.Field()
				}
			}

			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
