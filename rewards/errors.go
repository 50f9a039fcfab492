/*
errors.go - Centralized error types for the rewards engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  Every domain-rule violation maps to exactly one sentinel; richer
  errors wrap a sentinel with context and unwrap to it.

ERROR CATEGORIES:
  1. Validation errors - Malformed input, caught before any mutation
  2. State errors      - Entity exists but forbids the operation
  3. Funds/stock       - Balance or inventory shortage
  4. Conflict errors   - Optimistic-lock mismatch, uniqueness violation

USAGE:
  Callers classify with errors.Is():

    if errors.Is(err, rewards.ErrInsufficientFunds) {
        // surface as 422 to the client
    }

SEE ALSO:
  - balance.go: Raises funds/overflow errors
  - request.go: Raises transition errors
  - store.go:   Stores surface ErrNotFound / ErrConflict
*/
package rewards

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned for malformed input: non-positive amounts,
	// blank names, negative stock, default timestamps, empty identifiers.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity doesn't exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidState is returned when an entity exists but its current
	// status forbids the requested operation (inactive account or product,
	// wrong redemption status, release/capture exceeding locked balance).
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrInsufficientFunds is returned when a reservation exceeds the
	// user's available balance.
	ErrInsufficientFunds = errors.New("insufficient points")

	// ErrInsufficientStock is returned when delivery exceeds tracked stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnauthorized is returned when the acting admin is missing,
	// inactive, or not registered as an admin.
	ErrUnauthorized = errors.New("admin authorization required")

	// ErrConflict is returned when a concurrent modification is detected at
	// commit (version mismatch) or a uniqueness constraint is violated
	// (duplicate email or employee id). Retryable by the caller.
	ErrConflict = errors.New("concurrent modification or uniqueness conflict")

	// ErrOverflow is returned when integer accumulation would exceed the
	// representable range.
	ErrOverflow = errors.New("point accumulation overflow")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError reports a specific malformed field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError identifies the missing entity.
type NotFoundError struct {
	Kind string // "user", "product", "event", "redemption request"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientFundsError provides details about a balance shortage.
type InsufficientFundsError struct {
	UserID    UserID
	Available int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient points for user %s: available %d, requested %d",
		e.UserID, e.Available, e.Requested)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// InsufficientStockError provides details about a stock shortage.
type InsufficientStockError struct {
	ProductID ProductID
	Stock     int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: have %d, need %d",
		e.ProductID, e.Stock, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError reports a redemption status precondition failure.
type InvalidTransitionError struct {
	RequestID RequestID
	From      RequestStatus
	To        RequestStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("redemption %s: cannot transition %s -> %s",
		e.RequestID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidState }

// ConflictError reports a commit-time concurrency or uniqueness violation.
type ConflictError struct {
	Kind    string
	ID      string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s %s: %s", e.Kind, e.ID, e.Message)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// invalidState wraps ErrInvalidState with a formatted message.
func invalidState(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidState)...)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsClientError returns true if the error is due to invalid client input
// or a domain-rule violation, as opposed to a storage failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrOverflow)
}

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
