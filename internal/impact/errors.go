package impact

import "fmt"

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error taxonomy for the impact core.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrInvalidUnit indicates an unrecognized measurement unit.
	// Returned by the unit canonicalizers for unknown unit strings.
	ErrInvalidUnit = constError("invalid measurement unit")

	// ErrNegativeValue indicates a negative measurement value.
	// Environmental measurements cannot be negative.
	ErrNegativeValue = constError("negative measurement value")

	// ErrCalculationOverflow indicates a value too large to calculate safely.
	// This is a safety check to prevent floating point overflow.
	ErrCalculationOverflow = constError("calculation overflow")

	// ErrDataUnavailable indicates the purchase-history collaborator could
	// not be reached or timed out. Retryable; reports are never partially
	// filled with guessed defaults when this is returned.
	ErrDataUnavailable = constError("impact data unavailable")

	// ErrNotFound indicates a record that does not exist. It is reserved
	// for missing records; a user with no purchase history is a valid
	// zero-valued report, not ErrNotFound.
	ErrNotFound = constError("record not found")
)

// ValidationError reports a malformed or out-of-range ImpactRecord field.
// It always names the offending field so callers can surface it directly.
type ValidationError struct {
	// Field is the dotted path of the offending field, e.g.
	// "recycledMaterials.percentage".
	Field string

	// Reason describes why the field was rejected.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid impact record: %s: %s", e.Field, e.Reason)
}

// invalidField constructs a ValidationError for the given field.
func invalidField(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
