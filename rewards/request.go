/*
request.go - Redemption request state machine

PURPOSE:
  A RedemptionRequest moves through a fixed lifecycle:

      Pending ──▶ Approved ──▶ Delivered
         │
         ├──▶ Rejected
         └──▶ Canceled

  Pending and Approved are the only non-terminal states. Every transition
  requires the CURRENT status to match its precondition exactly; any
  mismatch fails with InvalidTransitionError and mutates nothing.

COORDINATION:
  The entity only moves its own status and timestamps. Reserving,
  releasing, and capturing the user's points, decrementing stock, and
  appending the Redeem ledger entry are sequenced by the service layer
  inside one unit of work (see service.go) so that either all of it
  becomes visible or none of it does.

SEE ALSO:
  - balance.go: The reserve/release/capture primitives this drives
  - service.go: Request / Approve / Deliver / Reject / Cancel use cases
*/
package rewards

import "time"

// =============================================================================
// STATUS
// =============================================================================

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusDelivered RequestStatus = "delivered"
	StatusRejected  RequestStatus = "rejected"
	StatusCanceled  RequestStatus = "canceled"
)

// Terminal reports whether no further transition is permitted.
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// =============================================================================
// REDEMPTION REQUEST
// =============================================================================

// RedemptionRequest references its user and product by identifier only;
// aggregates are loaded, mutated, and persisted independently per use case.
type RedemptionRequest struct {
	ID        RequestID
	UserID    UserID
	ProductID ProductID
	Status    RequestStatus

	RequestedAt time.Time
	ApprovedAt  *time.Time
	DeliveredAt *time.Time
}

// NewRedemptionRequest creates a request in Pending.
func NewRedemptionRequest(id RequestID, userID UserID, productID ProductID, now time.Time) (*RedemptionRequest, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if userID == "" {
		return nil, &ValidationError{Field: "userID", Message: "must not be empty"}
	}
	if productID == "" {
		return nil, &ValidationError{Field: "productID", Message: "must not be empty"}
	}
	return &RedemptionRequest{
		ID:          id,
		UserID:      userID,
		ProductID:   productID,
		Status:      StatusPending,
		RequestedAt: now,
	}, nil
}

// Approve moves Pending -> Approved.
func (r *RedemptionRequest) Approve(now time.Time) error {
	if r.Status != StatusPending {
		return &InvalidTransitionError{RequestID: r.ID, From: r.Status, To: StatusApproved}
	}
	r.Status = StatusApproved
	at := now
	r.ApprovedAt = &at
	return nil
}

// MarkDelivered moves Approved -> Delivered.
func (r *RedemptionRequest) MarkDelivered(now time.Time) error {
	if r.Status != StatusApproved {
		return &InvalidTransitionError{RequestID: r.ID, From: r.Status, To: StatusDelivered}
	}
	r.Status = StatusDelivered
	at := now
	r.DeliveredAt = &at
	return nil
}

// Reject moves Pending -> Rejected.
func (r *RedemptionRequest) Reject(now time.Time) error {
	if r.Status != StatusPending {
		return &InvalidTransitionError{RequestID: r.ID, From: r.Status, To: StatusRejected}
	}
	r.Status = StatusRejected
	return nil
}

// Cancel moves Pending -> Canceled. Same effect as Reject with a distinct
// terminal state: cancellation frames a user-initiated withdrawal, while
// rejection is an admin decision.
func (r *RedemptionRequest) Cancel(now time.Time) error {
	if r.Status != StatusPending {
		return &InvalidTransitionError{RequestID: r.ID, From: r.Status, To: StatusCanceled}
	}
	r.Status = StatusCanceled
	return nil
}
