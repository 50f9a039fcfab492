/*
store.go - Persistence interfaces for the rewards engine

PURPOSE:
  Defines the boundary between the domain logic and storage. The service
  layer is implementable purely against these contracts; sqlite and
  in-memory implementations live under store/.

UNIT OF WORK:
  WithTx is the atomicity boundary. A use case runs entirely inside fn:
  load aggregates (ForUpdate variants on write paths), mutate in memory,
  persist via Add/Update. Returning nil commits everything; returning an
  error rolls back with no partial effect observable by concurrent use
  cases.

CONCURRENCY:
  User and Product carry a Version token. Update compares it against the
  stored value and bumps it on success; a mismatch surfaces as
  ConflictError. Implementations may additionally serialize whole units
  of work (the memory store does; sqlite uses immediate transactions).
  Either way, concurrent redemption requests against one user must never
  jointly over-reserve, and concurrent deliveries against one product
  must never oversell.

ERROR CONTRACT:
  Missing rows surface as NotFoundError; version mismatches and
  uniqueness violations (email, employee id, one-pending-per-user-product)
  surface as ConflictError - never raw storage errors.

SEE ALSO:
  - store/memory: In-memory implementation (tests, dev server)
  - store/sqlite: Durable implementation
*/
package rewards

import "context"

// =============================================================================
// PER-AGGREGATE STORES
// =============================================================================

type UserStore interface {
	// Get returns the user or NotFoundError.
	Get(ctx context.Context, id UserID) (*User, error)

	// GetForUpdate is the exclusive variant used on write paths.
	GetForUpdate(ctx context.Context, id UserID) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*User, error)
	List(ctx context.Context) ([]*User, error)

	// Add inserts a new user. Duplicate email or employee id surfaces
	// as ConflictError.
	Add(ctx context.Context, u *User) error

	// Update persists a tracked aggregate, comparing-and-swapping the
	// version token. Mismatch surfaces as ConflictError.
	Update(ctx context.Context, u *User) error
}

type ProductStore interface {
	Get(ctx context.Context, id ProductID) (*Product, error)
	GetForUpdate(ctx context.Context, id ProductID) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Add(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error

	// Delete removes a product. The service refuses deletion while any
	// pending redemption references the product.
	Delete(ctx context.Context, id ProductID) error
}

type RedemptionRequestStore interface {
	Get(ctx context.Context, id RequestID) (*RedemptionRequest, error)
	GetForUpdate(ctx context.Context, id RequestID) (*RedemptionRequest, error)
	ListByUser(ctx context.Context, userID UserID) ([]*RedemptionRequest, error)

	// HasPendingForUserProduct reports whether a Pending request exists
	// for the exact (user, product) pair.
	HasPendingForUserProduct(ctx context.Context, userID UserID, productID ProductID) (bool, error)

	// HasPendingForProduct backs the product delete guard.
	HasPendingForProduct(ctx context.Context, productID ProductID) (bool, error)

	Add(ctx context.Context, r *RedemptionRequest) error
	Update(ctx context.Context, r *RedemptionRequest) error
}

// LedgerEntryStore is APPEND-ONLY. No Update, No Delete. Ever.
type LedgerEntryStore interface {
	Add(ctx context.Context, e LedgerEntry) error

	// ListByUser returns a page ordered by recency, then id descending
	// as a stable tiebreak for identical timestamps.
	ListByUser(ctx context.Context, userID UserID, offset, limit int) ([]LedgerEntry, error)

	CountByUser(ctx context.Context, userID UserID) (int64, error)
}

type EventStore interface {
	Get(ctx context.Context, id EventID) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Add(ctx context.Context, e *Event) error
	Update(ctx context.Context, e *Event) error
}

// =============================================================================
// UNIT OF WORK
// =============================================================================

// Stores bundles the per-aggregate stores visible inside one unit of work.
type Stores struct {
	Users    UserStore
	Products ProductStore
	Requests RedemptionRequestStore
	Ledger   LedgerEntryStore
	Events   EventStore
}

// UnitOfWork executes fn as one logical transaction.
type UnitOfWork interface {
	// WithTx runs fn against transactional stores. If fn returns nil the
	// pending changes commit atomically; otherwise everything rolls back.
	// Commit-time conflicts surface as ConflictError.
	WithTx(ctx context.Context, fn func(Stores) error) error
}
