package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"buildmark/internal/diagnostic"
	"buildmark/internal/kotlin"
)

var validate = sync.OnceValues(func() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	err := errors.Join(
		v.RegisterValidation("kotlin_ident", func(fl validator.FieldLevel) bool {
			return kotlin.IsIdentifier(fl.Field().String())
		}),
		v.RegisterValidation("kotlin_package", func(fl validator.FieldLevel) bool {
			_, err := kotlin.ParsePackage(fl.Field().String())
			return err == nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("registering validations: %w", err)
	}

	return v, nil
})

// Validate checks cfg and records every problem in diags. The returned error
// wraps ErrInvalidConfig.
func Validate(cfg *Config, diags *diagnostic.Diagnostics) error {
	v, err := validate()
	if err != nil {
		return err
	}

	err = v.Struct(cfg)

	var fieldErrs validator.ValidationErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for _, fe := range fieldErrs {
		source, subject := locate(cfg, fe)
		diags.AddError(fe.Tag(), describe(fe), source, subject)
	}

	for _, opt := range cfg.Options {
		if kotlin.IsHardKeyword(opt.Name) {
			diags.AddWarning("keyword", "hard keyword, declared with back-ticks", opt.Source, opt.Name)
		}
	}

	if kotlin.IsHardKeyword(cfg.Object) {
		diags.AddWarning("keyword", "hard keyword, declared with back-ticks", cfg.Path, "object")
	}

	return diags.Err(ErrInvalidConfig)
}

// locate maps a field error back to the option it is about.
func locate(cfg *Config, fe validator.FieldError) (string, string) {
	ns := fe.StructNamespace() // Config.Options[3].Name

	var idx int
	if _, err := fmt.Sscanf(strings.TrimPrefix(ns, "Config."), "Options[%d].Name", &idx); err == nil &&
		idx >= 0 && idx < len(cfg.Options) {
		return cfg.Options[idx].Source, fmt.Sprintf("option %q", cfg.Options[idx].Name)
	}

	return cfg.Path, strings.ToLower(fe.StructField())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "kotlin_ident":
		if err := kotlin.CheckIdentifier(fe.Value().(string)); err != nil {
			return "not a Kotlin identifier: " + err.Error()
		}

		return "not a Kotlin identifier"
	case "kotlin_package":
		if _, err := kotlin.ParsePackage(fe.Value().(string)); err != nil {
			return err.Error()
		}

		return "not a Kotlin package name"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
