/*
admin.go - Admin identity registry

PURPOSE:
  Admin is not a User subtype. A user is an admin when the registry knows
  one of their identifiers (email or employee id); balance semantics are
  identical for everyone. This keeps authorization out of the balance
  aggregate entirely.

SHARED-RESOURCE POLICY:
  The registry is process-wide, read-mostly shared state. Add/Remove are
  rare administrative operations. Removing the last identifier is a hard
  failure: the registry must always name at least one admin.
*/
package rewards

import (
	"context"
	"strings"
	"sync"
)

// AdminRegistry answers "is this user an admin?" from their identifiers.
type AdminRegistry interface {
	// IsAdmin reports whether either identifier is registered.
	IsAdmin(ctx context.Context, email, employeeID string) (bool, error)

	// Add registers an identifier (email or employee id).
	Add(ctx context.Context, identifier string) error

	// Remove unregisters an identifier. Removing the last one fails with
	// ErrInvalidState and leaves the registry unchanged.
	Remove(ctx context.Context, identifier string) error
}

// =============================================================================
// STATIC REGISTRY - In-process implementation
// =============================================================================

// StaticRegistry is a mutex-guarded identifier set.
type StaticRegistry struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewStaticRegistry seeds the registry. At least one identifier is required.
func NewStaticRegistry(identifiers ...string) (*StaticRegistry, error) {
	r := &StaticRegistry{ids: make(map[string]struct{})}
	for _, id := range identifiers {
		if strings.TrimSpace(id) == "" {
			return nil, &ValidationError{Field: "identifier", Message: "must not be blank"}
		}
		r.ids[strings.TrimSpace(id)] = struct{}{}
	}
	if len(r.ids) == 0 {
		return nil, &ValidationError{Field: "identifiers", Message: "at least one admin identifier is required"}
	}
	return r, nil
}

func (r *StaticRegistry) IsAdmin(_ context.Context, email, employeeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.ids[email]; ok {
		return true, nil
	}
	_, ok := r.ids[employeeID]
	return ok, nil
}

func (r *StaticRegistry) Add(_ context.Context, identifier string) error {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return &ValidationError{Field: "identifier", Message: "must not be blank"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[identifier] = struct{}{}
	return nil
}

func (r *StaticRegistry) Remove(_ context.Context, identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[identifier]; !ok {
		return &NotFoundError{Kind: "admin identifier", ID: identifier}
	}
	if len(r.ids) == 1 {
		return invalidState("cannot remove the last admin identifier %q", identifier)
	}
	delete(r.ids, identifier)
	return nil
}
