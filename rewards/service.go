/*
service.go - Use-case orchestration for the redemption lifecycle

PURPOSE:
  Sequences repository reads, entity mutations, and the unit-of-work
  commit as a single logical transaction per use case, and applies the
  admin-authorization guard.

USE-CASE SHAPE:
  Every use case runs inside UnitOfWork.WithTx:
    1. Load aggregates (ForUpdate on anything mutated)
    2. Check guards - any failure aborts before mutation
    3. Mutate entities in a fixed order
    4. Persist all mutated aggregates
  Returning nil commits atomically; any error rolls everything back, so
  a failed use case is indistinguishable from one never attempted.

DELIVER ORDER:
  capture reserved points -> decrement stock -> append Redeem ledger
  entry -> status Delivered. The stock check happens before any of it;
  a stock failure leaves the request Approved.

ERROR POLICY:
  Domain violations propagate uncaught to the caller. No retry lives
  here; retry-on-conflict, if any, is a unit-of-work concern.

SEE ALSO:
  - housekeeping.go: Catalog, event, and account use cases
  - store.go:        UnitOfWork and store contracts
*/
package rewards

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	uow    UnitOfWork
	admins AdminRegistry
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

// WithClock overrides the wall clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides ID minting (tests).
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(uow UnitOfWork, admins AdminRegistry, opts ...Option) *Service {
	s := &Service{
		uow:    uow,
		admins: admins,
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// requireAdmin loads the acting admin and checks the authorization guard.
func (s *Service) requireAdmin(ctx context.Context, st Stores, adminID UserID) (*User, error) {
	admin, err := st.Users.Get(ctx, adminID)
	if err != nil {
		if IsNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !admin.Active {
		return nil, ErrUnauthorized
	}
	ok, err := s.admins.IsAdmin(ctx, admin.Email, admin.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	return admin, nil
}

// =============================================================================
// REDEMPTION LIFECYCLE
// =============================================================================

// RequestRedemption reserves the product's cost on the user and creates a
// Pending request. At most one Pending request may exist per
// (user, product) pair.
func (s *Service) RequestRedemption(ctx context.Context, userID UserID, productID ProductID) (*RedemptionRequest, error) {
	var req *RedemptionRequest
	err := s.uow.WithTx(ctx, func(st Stores) error {
		user, err := st.Users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if !user.Active {
			return invalidState("user %s is inactive", userID)
		}

		product, err := st.Products.Get(ctx, productID)
		if err != nil {
			return err
		}
		if !product.Active {
			return invalidState("product %s is inactive", productID)
		}

		pending, err := st.Requests.HasPendingForUserProduct(ctx, userID, productID)
		if err != nil {
			return err
		}
		if pending {
			return invalidState("user %s already has a pending request for product %s", userID, productID)
		}

		now := s.now()
		if err := user.ReservePoints(product.PointsCost, now); err != nil {
			return err
		}
		req, err = NewRedemptionRequest(RequestID(s.newID()), userID, productID, now)
		if err != nil {
			return err
		}

		if err := st.Users.Update(ctx, user); err != nil {
			return err
		}
		return st.Requests.Add(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveRedemption moves a Pending request to Approved. No balance or
// stock change.
func (s *Service) ApproveRedemption(ctx context.Context, adminID UserID, requestID RequestID) (*RedemptionRequest, error) {
	var req *RedemptionRequest
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		req, err = st.Requests.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if err := req.Approve(s.now()); err != nil {
			return err
		}
		return st.Requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// DeliverRedemption fulfills an Approved request: captures the reserved
// points, decrements stock by one, appends a Redeem ledger entry, and
// marks the request Delivered. A stock shortage aborts before any
// mutation and the request stays Approved.
func (s *Service) DeliverRedemption(ctx context.Context, adminID UserID, requestID RequestID) (*RedemptionRequest, error) {
	var req *RedemptionRequest
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		req, err = st.Requests.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != StatusApproved {
			return &InvalidTransitionError{RequestID: req.ID, From: req.Status, To: StatusDelivered}
		}

		user, err := st.Users.GetForUpdate(ctx, req.UserID)
		if err != nil {
			return err
		}
		product, err := st.Products.GetForUpdate(ctx, req.ProductID)
		if err != nil {
			return err
		}

		available, err := product.StockAvailable(1)
		if err != nil {
			return err
		}
		if !available {
			var have int64
			if product.Stock != nil {
				have = *product.Stock
			}
			return &InsufficientStockError{ProductID: product.ID, Stock: have, Requested: 1}
		}

		now := s.now()
		if err := user.CaptureReservedPoints(product.PointsCost, now); err != nil {
			return err
		}
		if err := product.DecrementStock(1, now); err != nil {
			return err
		}
		entry, err := NewRedeemEntry(EntryID(s.newID()), user.ID, req.ID, product.PointsCost, now)
		if err != nil {
			return err
		}
		if err := req.MarkDelivered(now); err != nil {
			return err
		}

		if err := st.Users.Update(ctx, user); err != nil {
			return err
		}
		if err := st.Products.Update(ctx, product); err != nil {
			return err
		}
		if err := st.Ledger.Add(ctx, entry); err != nil {
			return err
		}
		return st.Requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// RejectRedemption releases the reservation back to the user and moves a
// Pending request to Rejected. Total points are untouched.
func (s *Service) RejectRedemption(ctx context.Context, adminID UserID, requestID RequestID) (*RedemptionRequest, error) {
	return s.resolvePending(ctx, adminID, requestID, (*RedemptionRequest).Reject)
}

// CancelRedemption is Reject with a distinct terminal state, framing a
// user-initiated withdrawal rather than an admin decision.
func (s *Service) CancelRedemption(ctx context.Context, adminID UserID, requestID RequestID) (*RedemptionRequest, error) {
	return s.resolvePending(ctx, adminID, requestID, (*RedemptionRequest).Cancel)
}

// resolvePending is the shared release path for Reject and Cancel.
func (s *Service) resolvePending(
	ctx context.Context,
	adminID UserID,
	requestID RequestID,
	transition func(*RedemptionRequest, time.Time) error,
) (*RedemptionRequest, error) {
	var req *RedemptionRequest
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		req, err = st.Requests.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != StatusPending {
			// Run the transition anyway for its precise error.
			return transition(req, s.now())
		}

		user, err := st.Users.GetForUpdate(ctx, req.UserID)
		if err != nil {
			return err
		}
		product, err := st.Products.Get(ctx, req.ProductID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := user.ReleaseReservedPoints(product.PointsCost, now); err != nil {
			return err
		}
		if err := transition(req, now); err != nil {
			return err
		}

		if err := st.Users.Update(ctx, user); err != nil {
			return err
		}
		return st.Requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// GetRedemption returns a request by id.
func (s *Service) GetRedemption(ctx context.Context, requestID RequestID) (*RedemptionRequest, error) {
	var req *RedemptionRequest
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		req, err = st.Requests.Get(ctx, requestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListRedemptionsByUser returns a user's requests.
func (s *Service) ListRedemptionsByUser(ctx context.Context, userID UserID) ([]*RedemptionRequest, error) {
	var reqs []*RedemptionRequest
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := st.Users.Get(ctx, userID); err != nil {
			return err
		}
		var err error
		reqs, err = st.Requests.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// =============================================================================
// EARNING
// =============================================================================

// AwardPoints credits a user for attending an event and appends the
// matching Earn ledger entry atomically.
func (s *Service) AwardPoints(ctx context.Context, adminID, userID UserID, eventID EventID, points int64) (*LedgerEntry, error) {
	var entry LedgerEntry
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		event, err := st.Events.Get(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.Active {
			return invalidState("event %s is inactive", eventID)
		}
		user, err := st.Users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now()
		if err := user.CreditPoints(points, now); err != nil {
			return err
		}
		entry, err = NewEarnEntry(EntryID(s.newID()), user.ID, event.ID, points, now)
		if err != nil {
			return err
		}

		if err := st.Users.Update(ctx, user); err != nil {
			return err
		}
		return st.Ledger.Add(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
