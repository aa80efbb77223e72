package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Reward & geo errors
var (
	ErrInvalidCoordinate = errors.New("coordinate missing or out of range")
	ErrUnknownWasteType  = errors.New("unknown waste type")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
)

// Workflow & credit errors
var (
	ErrUnknownUser              = errors.New("user token did not resolve to a known user")
	ErrWasteTypeNotAccepted     = errors.New("booth does not accept this waste type")
	ErrPersistenceFailure       = errors.New("persistence failure")
	ErrConcurrentCreditConflict = errors.New("concurrent credit conflict, retry the operation")
	ErrSubmitInFlight           = errors.New("a submit is already in flight for this workflow")
)

// ValidationError carries the per-field error mapping produced by the
// submission validator. An empty Fields map never becomes an error.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation failed: %s", strings.Join(keys, ", "))
}

// IsValidationError unwraps err into a *ValidationError if it is one.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
