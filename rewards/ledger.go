/*
ledger.go - Append-only ledger of point movements

PURPOSE:
  The ledger is the immutable audit record of completed point movements.
  Every Earn and every Redeem is recorded here and never modified.

CRITICAL INVARIANTS:
  1. APPEND-ONLY: the store interface has no update or delete
  2. points > 0, always
  3. Exactly one causing reference is set, matching the entry type:
     EventID for Earn, RequestID for Redeem - never both, never neither

SEE ALSO:
  - store.go:   LedgerEntryStore (append + paginated history)
  - service.go: AwardPoints appends Earn, Deliver appends Redeem
*/
package rewards

import "time"

// =============================================================================
// ENTRY TYPE
// =============================================================================

type EntryType string

const (
	EntryEarn   EntryType = "earn"
	EntryRedeem EntryType = "redeem"
)

// =============================================================================
// LEDGER ENTRY
// =============================================================================

type LedgerEntry struct {
	ID        EntryID
	UserID    UserID
	Type      EntryType
	Points    int64
	Timestamp time.Time

	// Exactly one causing reference, matching Type.
	EventID   *EventID
	RequestID *RequestID
}

// NewEarnEntry records points earned from an event.
func NewEarnEntry(id EntryID, userID UserID, eventID EventID, points int64, at time.Time) (LedgerEntry, error) {
	if eventID == "" {
		return LedgerEntry{}, &ValidationError{Field: "eventID", Message: "must not be empty"}
	}
	e := LedgerEntry{
		ID:        id,
		UserID:    userID,
		Type:      EntryEarn,
		Points:    points,
		Timestamp: at,
		EventID:   &eventID,
	}
	if err := e.Validate(); err != nil {
		return LedgerEntry{}, err
	}
	return e, nil
}

// NewRedeemEntry records points spent on a delivered redemption.
func NewRedeemEntry(id EntryID, userID UserID, requestID RequestID, points int64, at time.Time) (LedgerEntry, error) {
	if requestID == "" {
		return LedgerEntry{}, &ValidationError{Field: "requestID", Message: "must not be empty"}
	}
	e := LedgerEntry{
		ID:        id,
		UserID:    userID,
		Type:      EntryRedeem,
		Points:    points,
		Timestamp: at,
		RequestID: &requestID,
	}
	if err := e.Validate(); err != nil {
		return LedgerEntry{}, err
	}
	return e, nil
}

// Validate enforces the entry invariants. Stores call this before append.
func (e LedgerEntry) Validate() error {
	if e.ID == "" {
		return &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if e.UserID == "" {
		return &ValidationError{Field: "userID", Message: "must not be empty"}
	}
	if e.Points <= 0 {
		return &ValidationError{Field: "points", Message: "must be positive"}
	}
	if e.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Message: "must be set"}
	}
	switch e.Type {
	case EntryEarn:
		if e.EventID == nil || e.RequestID != nil {
			return &ValidationError{Field: "eventID", Message: "earn entries reference exactly one event"}
		}
	case EntryRedeem:
		if e.RequestID == nil || e.EventID != nil {
			return &ValidationError{Field: "requestID", Message: "redeem entries reference exactly one redemption request"}
		}
	default:
		return &ValidationError{Field: "type", Message: "unknown entry type"}
	}
	return nil
}

// =============================================================================
// PAGINATED HISTORY
// =============================================================================

// LedgerPage is one page of a user's history, ordered by recency then
// entry id descending (stable tiebreak for identical timestamps).
type LedgerPage struct {
	Entries []LedgerEntry
	Total   int64
	Offset  int
	Limit   int
}
