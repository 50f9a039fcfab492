// event.go - Events that drive Earn ledger entries.
//
// Thin housekeeping entity: no state machine, no balance arithmetic.
// Awarding points against an event is the service layer's job.
package rewards

import (
	"strings"
	"time"
)

type Event struct {
	ID       EventID
	Name     string
	OccursAt time.Time // required, never the zero value
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEvent creates an active event.
func NewEvent(id EventID, name string, occursAt, now time.Time) (*Event, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be blank"}
	}
	if occursAt.IsZero() {
		return nil, &ValidationError{Field: "occursAt", Message: "must be set"}
	}
	return &Event{
		ID:        id,
		Name:      strings.TrimSpace(name),
		OccursAt:  occursAt,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (e *Event) Rename(name string, now time.Time) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "must not be blank"}
	}
	e.Name = strings.TrimSpace(name)
	e.UpdatedAt = touch(e.UpdatedAt, now)
	return nil
}

func (e *Event) Reschedule(occursAt time.Time, now time.Time) error {
	if occursAt.IsZero() {
		return &ValidationError{Field: "occursAt", Message: "must be set"}
	}
	e.OccursAt = occursAt
	e.UpdatedAt = touch(e.UpdatedAt, now)
	return nil
}

func (e *Event) Activate(now time.Time) {
	e.Active = true
	e.UpdatedAt = touch(e.UpdatedAt, now)
}

func (e *Event) Deactivate(now time.Time) {
	e.Active = false
	e.UpdatedAt = touch(e.UpdatedAt, now)
}
