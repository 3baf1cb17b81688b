package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/alexisbeaulieu97/rankview/pkg/errors"
)

// Validate checks the configuration and reports the first violation as a
// ValidationError naming the offending key.
func (c *Config) Validate() error {
	if c == nil {
		return apperrors.NewValidationError("", "configuration is nil", nil)
	}

	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperrors.NewValidationError("", err.Error(), err)
	}

	fe := fieldErrs[0]
	return apperrors.NewValidationError(fieldPath(fe), describe(fe), err)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	// Drop the root struct name.
	for i := 0; i < len(ns); i++ {
		if ns[i] == '.' {
			return ns[i+1:]
		}
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "endpoint_url":
		return fmt.Sprintf("must be an http(s) URL, got %q", fe.Value())
	case "log_level":
		return fmt.Sprintf("unknown log level %q", fe.Value())
	case "listen_addr":
		return fmt.Sprintf("must be host:port, got %q", fe.Value())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be > %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
