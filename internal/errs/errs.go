package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors covering the non-validation failure kinds. Handlers map
// them onto HTTP statuses: 401, 403 and 404 respectively. ErrNotFound is
// deliberately used both for records that do not exist and for orders the
// caller may not access, so the two cases are indistinguishable on the wire.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// ValidationError carries a field name to message mapping and maps to a
// structured 400 response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation builds a ValidationError for a single field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
