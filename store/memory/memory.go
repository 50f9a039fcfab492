/*
Package memory provides an in-memory implementation of the rewards stores.

PURPOSE:
  Used by tests and the dev server. One mutex serializes whole units of
  work, so every use case observes the load -> mutate -> persist -> commit
  sequence of every other use case as atomic. Rollback is snapshot-based:
  WithTx copies the state up front and restores it if fn fails.

CONCURRENCY:
  Serializing commits makes the version tokens on User and Product
  redundant here, but they are still checked and bumped so code exercised
  against this store behaves identically against sqlite.

SEE ALSO:
  - rewards/store.go: Interface contracts
  - store/sqlite:     Durable implementation
*/
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/warp/rewards-engine/rewards"
)

// =============================================================================
// STORE
// =============================================================================

type Store struct {
	mu sync.Mutex

	users    map[rewards.UserID]*rewards.User
	products map[rewards.ProductID]*rewards.Product
	requests map[rewards.RequestID]*rewards.RedemptionRequest
	events   map[rewards.EventID]*rewards.Event
	entries  []rewards.LedgerEntry
}

func New() *Store {
	return &Store{
		users:    make(map[rewards.UserID]*rewards.User),
		products: make(map[rewards.ProductID]*rewards.Product),
		requests: make(map[rewards.RequestID]*rewards.RedemptionRequest),
		events:   make(map[rewards.EventID]*rewards.Event),
	}
}

// WithTx serializes the unit of work under the store mutex. On error the
// pre-tx snapshot is restored, so no partial effect is ever visible.
func (s *Store) WithTx(_ context.Context, fn func(rewards.Stores) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	st := rewards.Stores{
		Users:    &userStore{s: s},
		Products: &productStore{s: s},
		Requests: &requestStore{s: s},
		Ledger:   &ledgerStore{s: s},
		Events:   &eventStore{s: s},
	}
	if err := fn(st); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type stateSnapshot struct {
	users    map[rewards.UserID]*rewards.User
	products map[rewards.ProductID]*rewards.Product
	requests map[rewards.RequestID]*rewards.RedemptionRequest
	events   map[rewards.EventID]*rewards.Event
	entries  []rewards.LedgerEntry
}

func (s *Store) snapshot() stateSnapshot {
	snap := stateSnapshot{
		users:    make(map[rewards.UserID]*rewards.User, len(s.users)),
		products: make(map[rewards.ProductID]*rewards.Product, len(s.products)),
		requests: make(map[rewards.RequestID]*rewards.RedemptionRequest, len(s.requests)),
		events:   make(map[rewards.EventID]*rewards.Event, len(s.events)),
		entries:  append([]rewards.LedgerEntry(nil), s.entries...),
	}
	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, r := range s.requests {
		snap.requests[id] = cloneRequest(r)
	}
	for id, e := range s.events {
		snap.events[id] = cloneEvent(e)
	}
	return snap
}

func (s *Store) restore(snap stateSnapshot) {
	s.users = snap.users
	s.products = snap.products
	s.requests = snap.requests
	s.events = snap.events
	s.entries = snap.entries
}

// =============================================================================
// USERS
// =============================================================================

type userStore struct{ s *Store }

func (us *userStore) Get(_ context.Context, id rewards.UserID) (*rewards.User, error) {
	u, ok := us.s.users[id]
	if !ok {
		return nil, &rewards.NotFoundError{Kind: "user", ID: string(id)}
	}
	return cloneUser(u), nil
}

// GetForUpdate is identical to Get here: the store mutex already grants
// the unit of work exclusive access.
func (us *userStore) GetForUpdate(ctx context.Context, id rewards.UserID) (*rewards.User, error) {
	return us.Get(ctx, id)
}

func (us *userStore) GetByEmail(_ context.Context, email string) (*rewards.User, error) {
	for _, u := range us.s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, &rewards.NotFoundError{Kind: "user", ID: email}
}

func (us *userStore) GetByEmployeeID(_ context.Context, employeeID string) (*rewards.User, error) {
	for _, u := range us.s.users {
		if u.EmployeeID == employeeID {
			return cloneUser(u), nil
		}
	}
	return nil, &rewards.NotFoundError{Kind: "user", ID: employeeID}
}

func (us *userStore) List(_ context.Context) ([]*rewards.User, error) {
	users := make([]*rewards.User, 0, len(us.s.users))
	for _, u := range us.s.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (us *userStore) Add(_ context.Context, u *rewards.User) error {
	if _, ok := us.s.users[u.ID]; ok {
		return &rewards.ConflictError{Kind: "user", ID: string(u.ID), Message: "id already exists"}
	}
	for _, existing := range us.s.users {
		if existing.Email == u.Email {
			return &rewards.ConflictError{Kind: "user", ID: u.Email, Message: "email already registered"}
		}
		if existing.EmployeeID == u.EmployeeID {
			return &rewards.ConflictError{Kind: "user", ID: u.EmployeeID, Message: "employee id already registered"}
		}
	}
	us.s.users[u.ID] = cloneUser(u)
	return nil
}

func (us *userStore) Update(_ context.Context, u *rewards.User) error {
	stored, ok := us.s.users[u.ID]
	if !ok {
		return &rewards.NotFoundError{Kind: "user", ID: string(u.ID)}
	}
	if stored.Version != u.Version {
		return &rewards.ConflictError{Kind: "user", ID: string(u.ID), Message: "version mismatch"}
	}
	u.Version++
	us.s.users[u.ID] = cloneUser(u)
	return nil
}

// =============================================================================
// PRODUCTS
// =============================================================================

type productStore struct{ s *Store }

func (ps *productStore) Get(_ context.Context, id rewards.ProductID) (*rewards.Product, error) {
	p, ok := ps.s.products[id]
	if !ok {
		return nil, &rewards.NotFoundError{Kind: "product", ID: string(id)}
	}
	return cloneProduct(p), nil
}

func (ps *productStore) GetForUpdate(ctx context.Context, id rewards.ProductID) (*rewards.Product, error) {
	return ps.Get(ctx, id)
}

func (ps *productStore) List(_ context.Context) ([]*rewards.Product, error) {
	products := make([]*rewards.Product, 0, len(ps.s.products))
	for _, p := range ps.s.products {
		products = append(products, cloneProduct(p))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (ps *productStore) Add(_ context.Context, p *rewards.Product) error {
	if _, ok := ps.s.products[p.ID]; ok {
		return &rewards.ConflictError{Kind: "product", ID: string(p.ID), Message: "id already exists"}
	}
	ps.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (ps *productStore) Update(_ context.Context, p *rewards.Product) error {
	stored, ok := ps.s.products[p.ID]
	if !ok {
		return &rewards.NotFoundError{Kind: "product", ID: string(p.ID)}
	}
	if stored.Version != p.Version {
		return &rewards.ConflictError{Kind: "product", ID: string(p.ID), Message: "version mismatch"}
	}
	p.Version++
	ps.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (ps *productStore) Delete(_ context.Context, id rewards.ProductID) error {
	if _, ok := ps.s.products[id]; !ok {
		return &rewards.NotFoundError{Kind: "product", ID: string(id)}
	}
	delete(ps.s.products, id)
	return nil
}

// =============================================================================
// REDEMPTION REQUESTS
// =============================================================================

type requestStore struct{ s *Store }

func (rs *requestStore) Get(_ context.Context, id rewards.RequestID) (*rewards.RedemptionRequest, error) {
	r, ok := rs.s.requests[id]
	if !ok {
		return nil, &rewards.NotFoundError{Kind: "redemption request", ID: string(id)}
	}
	return cloneRequest(r), nil
}

func (rs *requestStore) GetForUpdate(ctx context.Context, id rewards.RequestID) (*rewards.RedemptionRequest, error) {
	return rs.Get(ctx, id)
}

func (rs *requestStore) ListByUser(_ context.Context, userID rewards.UserID) ([]*rewards.RedemptionRequest, error) {
	var reqs []*rewards.RedemptionRequest
	for _, r := range rs.s.requests {
		if r.UserID == userID {
			reqs = append(reqs, cloneRequest(r))
		}
	}
	sort.Slice(reqs, func(i, j int) bool {
		if !reqs[i].RequestedAt.Equal(reqs[j].RequestedAt) {
			return reqs[i].RequestedAt.After(reqs[j].RequestedAt)
		}
		return reqs[i].ID > reqs[j].ID
	})
	return reqs, nil
}

func (rs *requestStore) HasPendingForUserProduct(_ context.Context, userID rewards.UserID, productID rewards.ProductID) (bool, error) {
	for _, r := range rs.s.requests {
		if r.UserID == userID && r.ProductID == productID && r.Status == rewards.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (rs *requestStore) HasPendingForProduct(_ context.Context, productID rewards.ProductID) (bool, error) {
	for _, r := range rs.s.requests {
		if r.ProductID == productID && r.Status == rewards.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (rs *requestStore) Add(_ context.Context, r *rewards.RedemptionRequest) error {
	if _, ok := rs.s.requests[r.ID]; ok {
		return &rewards.ConflictError{Kind: "redemption request", ID: string(r.ID), Message: "id already exists"}
	}
	// Mirror sqlite's partial unique index on pending (user, product).
	if r.Status == rewards.StatusPending {
		for _, existing := range rs.s.requests {
			if existing.UserID == r.UserID && existing.ProductID == r.ProductID && existing.Status == rewards.StatusPending {
				return &rewards.ConflictError{Kind: "redemption request", ID: string(r.ID), Message: "pending request already exists for user and product"}
			}
		}
	}
	rs.s.requests[r.ID] = cloneRequest(r)
	return nil
}

func (rs *requestStore) Update(_ context.Context, r *rewards.RedemptionRequest) error {
	if _, ok := rs.s.requests[r.ID]; !ok {
		return &rewards.NotFoundError{Kind: "redemption request", ID: string(r.ID)}
	}
	rs.s.requests[r.ID] = cloneRequest(r)
	return nil
}

// =============================================================================
// LEDGER
// =============================================================================

type ledgerStore struct{ s *Store }

func (ls *ledgerStore) Add(_ context.Context, e rewards.LedgerEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	for _, existing := range ls.s.entries {
		if existing.ID == e.ID {
			return &rewards.ConflictError{Kind: "ledger entry", ID: string(e.ID), Message: "id already exists"}
		}
	}
	ls.s.entries = append(ls.s.entries, cloneEntry(e))
	return nil
}

func (ls *ledgerStore) ListByUser(_ context.Context, userID rewards.UserID, offset, limit int) ([]rewards.LedgerEntry, error) {
	var result []rewards.LedgerEntry
	for _, e := range ls.s.entries {
		if e.UserID == userID {
			result = append(result, cloneEntry(e))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return strings.Compare(string(result[i].ID), string(result[j].ID)) > 0
	})
	if offset >= len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (ls *ledgerStore) CountByUser(_ context.Context, userID rewards.UserID) (int64, error) {
	var n int64
	for _, e := range ls.s.entries {
		if e.UserID == userID {
			n++
		}
	}
	return n, nil
}

// =============================================================================
// EVENTS
// =============================================================================

type eventStore struct{ s *Store }

func (es *eventStore) Get(_ context.Context, id rewards.EventID) (*rewards.Event, error) {
	e, ok := es.s.events[id]
	if !ok {
		return nil, &rewards.NotFoundError{Kind: "event", ID: string(id)}
	}
	return cloneEvent(e), nil
}

func (es *eventStore) List(_ context.Context) ([]*rewards.Event, error) {
	events := make([]*rewards.Event, 0, len(es.s.events))
	for _, e := range es.s.events {
		events = append(events, cloneEvent(e))
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events, nil
}

func (es *eventStore) Add(_ context.Context, e *rewards.Event) error {
	if _, ok := es.s.events[e.ID]; ok {
		return &rewards.ConflictError{Kind: "event", ID: string(e.ID), Message: "id already exists"}
	}
	es.s.events[e.ID] = cloneEvent(e)
	return nil
}

func (es *eventStore) Update(_ context.Context, e *rewards.Event) error {
	if _, ok := es.s.events[e.ID]; !ok {
		return &rewards.NotFoundError{Kind: "event", ID: string(e.ID)}
	}
	es.s.events[e.ID] = cloneEvent(e)
	return nil
}

// =============================================================================
// CLONES - Aggregates never escape by reference
// =============================================================================

func cloneUser(u *rewards.User) *rewards.User {
	c := *u
	return &c
}

func cloneProduct(p *rewards.Product) *rewards.Product {
	c := *p
	c.Description = cloneString(p.Description)
	c.ImageURL = cloneString(p.ImageURL)
	if p.Stock != nil {
		v := *p.Stock
		c.Stock = &v
	}
	return &c
}

func cloneRequest(r *rewards.RedemptionRequest) *rewards.RedemptionRequest {
	c := *r
	c.ApprovedAt = cloneTime(r.ApprovedAt)
	c.DeliveredAt = cloneTime(r.DeliveredAt)
	return &c
}

func cloneEvent(e *rewards.Event) *rewards.Event {
	c := *e
	return &c
}

func cloneEntry(e rewards.LedgerEntry) rewards.LedgerEntry {
	if e.EventID != nil {
		v := *e.EventID
		e.EventID = &v
	}
	if e.RequestID != nil {
		v := *e.RequestID
		e.RequestID = &v
	}
	return e
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
