package accumulator

import (
	"fmt"
	"time"
)

// DateFormat is the layout of every date handled by the accumulator.
const DateFormat = "2006-01-02"

// InputError reports a malformed external record, rejected before it
// reaches the position arithmetic.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ValidateDate checks that s is a YYYY-MM-DD calendar date.
func ValidateDate(s string) error {
	if s == "" {
		return &InputError{Field: "date", Reason: "date is required"}
	}
	if _, err := time.Parse(DateFormat, s); err != nil {
		return &InputError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return nil
}
