package monopay

import "fmt"

// ValidationError reports a required invoice field missing. It is returned
// before any network call is attempted.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
