package utils

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// ValidateStruct runs struct-tag validation over an inbound HTTP DTO. It
// checks only wire-level shape (required fields, string formats) — business
// invariants (amount math, state transitions) are enforced by the core
// packages, never here.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
