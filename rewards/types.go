/*
Package rewards provides the core points-accounting and redemption engine.

PURPOSE:
  This package contains the domain entities and algorithms for an
  employee-rewards platform: users earn points from events, accrue an
  append-only ledger, and redeem points for catalog products through an
  admin-gated approval workflow.

KEY CONCEPTS IN THIS FILE (types.go):
  - Typed identifiers: UserID, ProductID, EventID, RequestID, EntryID
  - Version: opaque optimistic-concurrency token on User and Product
  - touch: strict-monotonic UpdatedAt advancement

DESIGN PRINCIPLES:
  1. Integer points: balances are checked int64 arithmetic, never floats
  2. Ownership: only the User mutates its own balance fields
  3. Identifiers, not object graphs: entities reference each other by ID
     and are resolved through stores per use case
  4. Type safety: strong ID types prevent mixing user/product/event IDs

SEE ALSO:
  - balance.go: User aggregate and balance primitives
  - product.go: Product and the stock model
  - request.go: Redemption request state machine
  - ledger.go:  Append-only ledger entries
*/
package rewards

import (
	"strings"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string
type ProductID string
type EventID string
type RequestID string
type EntryID string

// Version is an opaque optimistic-concurrency token. Stores compare it on
// update and bump it on success; a mismatch surfaces as ConflictError.
type Version int64

// =============================================================================
// TOUCH - Strict-monotonic UpdatedAt
// =============================================================================

// touch returns the new UpdatedAt for a mutation happening at now.
// UpdatedAt must advance strictly on every mutation, even when the wall
// clock has not moved past the previous value (coarse clocks, same-instant
// mutations): in that case the previous value is bumped by one nanosecond.
func touch(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}

// =============================================================================
// TEXT HELPERS
// =============================================================================

// optionalText trims free text and maps empty to nil.
func optionalText(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
