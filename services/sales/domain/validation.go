package domain

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the aggregated result of structural validation.
// All violations are collected before the mutation is rejected; callers never
// see only the first problem. Implements error so it flows through the usual
// error paths and can be recovered with errors.As.
type ValidationErrors []FieldError

// Error returns all violations joined as "field: message; field: message".
func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
