/*
balance.go - User aggregate and balance primitives

PURPOSE:
  The User owns its total and locked point balances exclusively. No other
  entity mutates them; every change goes through the credit/reserve/
  release/capture primitives defined here.

CRITICAL INVARIANTS:
  1. 0 <= LockedPoints <= TotalPoints, always
  2. Available = Total - Locked (derived, never stored)
  3. Points are non-negative integers; overflow is detected, not wrapped
  4. Every mutation strictly advances UpdatedAt

RESERVE / CAPTURE / RELEASE:
  Reserve moves points from available into a held-but-still-owned state.
  Release reverses a reservation without spending. Capture permanently
  spends previously reserved points: it subtracts from BOTH total and
  locked, it does not merely unlock.

  Reserving at request time prevents a user from over-committing points
  across concurrent redemption attempts; capturing only at delivery time
  means points are not spent until the reward is actually fulfilled.

SEE ALSO:
  - request.go: The state machine that drives reserve/release/capture
  - service.go: Use cases that persist the mutated User atomically
*/
package rewards

import (
	"math"
	"strings"
	"time"
)

// =============================================================================
// USER - Aggregate root for point balances
// =============================================================================

// User is the balance aggregate. Admin capability is NOT stored here; it is
// determined by the AdminRegistry from email/employee id (see admin.go).
type User struct {
	ID         UserID
	Name       string
	Email      string // globally unique
	EmployeeID string // globally unique
	Active     bool

	TotalPoints  int64
	LockedPoints int64

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   Version
}

// NewUser creates an active user with a zero balance.
func NewUser(id UserID, name, email, employeeID string, now time.Time) (*User, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be blank"}
	}
	if strings.TrimSpace(email) == "" {
		return nil, &ValidationError{Field: "email", Message: "must not be blank"}
	}
	if strings.TrimSpace(employeeID) == "" {
		return nil, &ValidationError{Field: "employeeID", Message: "must not be blank"}
	}
	return &User{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Email:      strings.TrimSpace(email),
		EmployeeID: strings.TrimSpace(employeeID),
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// BalanceView is the read-only (total, locked, available) triple.
type BalanceView struct {
	Total     int64
	Locked    int64
	Available int64
}

// Balance returns the current balance. Read-only, no active guard:
// inactive users can still see their balance.
func (u *User) Balance() BalanceView {
	return BalanceView{
		Total:     u.TotalPoints,
		Locked:    u.LockedPoints,
		Available: u.AvailablePoints(),
	}
}

// AvailablePoints is derived, never stored.
func (u *User) AvailablePoints() int64 {
	return u.TotalPoints - u.LockedPoints
}

// =============================================================================
// BALANCE PRIMITIVES
// =============================================================================

// CreditPoints adds earned points to the total balance.
func (u *User) CreditPoints(amount int64, now time.Time) error {
	if err := u.mutationGuard(amount); err != nil {
		return err
	}
	if u.TotalPoints > math.MaxInt64-amount {
		return ErrOverflow
	}
	u.TotalPoints += amount
	u.UpdatedAt = touch(u.UpdatedAt, now)
	return nil
}

// ReservePoints moves points from available to locked. The points remain
// owned; a later Release or Capture resolves the reservation.
func (u *User) ReservePoints(amount int64, now time.Time) error {
	if err := u.mutationGuard(amount); err != nil {
		return err
	}
	if u.AvailablePoints() < amount {
		return &InsufficientFundsError{
			UserID:    u.ID,
			Available: u.AvailablePoints(),
			Requested: amount,
		}
	}
	u.LockedPoints += amount
	u.UpdatedAt = touch(u.UpdatedAt, now)
	return nil
}

// ReleaseReservedPoints reverses a reservation: locked points return to
// available, total is untouched.
func (u *User) ReleaseReservedPoints(amount int64, now time.Time) error {
	if err := u.mutationGuard(amount); err != nil {
		return err
	}
	if u.LockedPoints < amount {
		return invalidState("release of %d exceeds locked balance %d for user %s", amount, u.LockedPoints, u.ID)
	}
	u.LockedPoints -= amount
	u.UpdatedAt = touch(u.UpdatedAt, now)
	return nil
}

// CaptureReservedPoints permanently spends previously reserved points:
// amount is subtracted from both total and locked.
func (u *User) CaptureReservedPoints(amount int64, now time.Time) error {
	if err := u.mutationGuard(amount); err != nil {
		return err
	}
	if u.LockedPoints < amount {
		return invalidState("capture of %d exceeds locked balance %d for user %s", amount, u.LockedPoints, u.ID)
	}
	u.TotalPoints -= amount
	u.LockedPoints -= amount
	u.UpdatedAt = touch(u.UpdatedAt, now)
	return nil
}

// mutationGuard enforces the shared preconditions of all balance mutators.
func (u *User) mutationGuard(amount int64) error {
	if !u.Active {
		return invalidState("user %s is inactive", u.ID)
	}
	if amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	return nil
}

// =============================================================================
// ACCOUNT LIFECYCLE
// =============================================================================

func (u *User) Activate(now time.Time) {
	u.Active = true
	u.UpdatedAt = touch(u.UpdatedAt, now)
}

func (u *User) Deactivate(now time.Time) {
	u.Active = false
	u.UpdatedAt = touch(u.UpdatedAt, now)
}
