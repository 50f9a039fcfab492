/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the domain model
  from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Handlers do shape validation only (parseable JSON, present fields);
  domain validation lives on the entities and services.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/rewards-engine/rewards"
)

// =============================================================================
// USERS & BALANCES
// =============================================================================

type UserDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
	Active     bool   `json:"active"`
	Total      int64  `json:"total_points"`
	Locked     int64  `json:"locked_points"`
	Available  int64  `json:"available_points"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func toUserDTO(u *rewards.User) UserDTO {
	return UserDTO{
		ID:         string(u.ID),
		Name:       u.Name,
		Email:      u.Email,
		EmployeeID: u.EmployeeID,
		Active:     u.Active,
		Total:      u.TotalPoints,
		Locked:     u.LockedPoints,
		Available:  u.AvailablePoints(),
		CreatedAt:  u.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339Nano),
	}
}

type RegisterUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
}

type BalanceDTO struct {
	Total     int64 `json:"total"`
	Locked    int64 `json:"locked"`
	Available int64 `json:"available"`
}

// =============================================================================
// PRODUCTS
// =============================================================================

type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	PointsCost  int64   `json:"points_cost"`
	Stock       *int64  `json:"stock,omitempty"` // absent = unlimited
	Active      bool    `json:"active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toProductDTO(p *rewards.Product) ProductDTO {
	return ProductDTO{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		PointsCost:  p.PointsCost,
		Stock:       p.Stock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	PointsCost  int64  `json:"points_cost"`
	Stock       *int64 `json:"stock"` // null/absent = unlimited
}

// =============================================================================
// EVENTS
// =============================================================================

type EventDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	OccursAt string `json:"occurs_at"`
	Active   bool   `json:"active"`
}

func toEventDTO(e *rewards.Event) EventDTO {
	return EventDTO{
		ID:       string(e.ID),
		Name:     e.Name,
		OccursAt: e.OccursAt.Format(time.RFC3339Nano),
		Active:   e.Active,
	}
}

type CreateEventRequest struct {
	Name     string `json:"name"`
	OccursAt string `json:"occurs_at"`
}

type UpdateEventRequest struct {
	Name     *string `json:"name"`
	OccursAt *string `json:"occurs_at"`
}

// =============================================================================
// REDEMPTIONS
// =============================================================================

type RedemptionDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	ProductID   string  `json:"product_id"`
	Status      string  `json:"status"`
	RequestedAt string  `json:"requested_at"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	DeliveredAt *string `json:"delivered_at,omitempty"`
}

func toRedemptionDTO(r *rewards.RedemptionRequest) RedemptionDTO {
	dto := RedemptionDTO{
		ID:          string(r.ID),
		UserID:      string(r.UserID),
		ProductID:   string(r.ProductID),
		Status:      string(r.Status),
		RequestedAt: r.RequestedAt.Format(time.RFC3339Nano),
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339Nano)
		dto.ApprovedAt = &v
	}
	if r.DeliveredAt != nil {
		v := r.DeliveredAt.Format(time.RFC3339Nano)
		dto.DeliveredAt = &v
	}
	return dto
}

type RequestRedemptionRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// =============================================================================
// LEDGER
// =============================================================================

type LedgerEntryDTO struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Type      string  `json:"type"`
	Points    int64   `json:"points"`
	Timestamp string  `json:"timestamp"`
	EventID   *string `json:"event_id,omitempty"`
	RequestID *string `json:"request_id,omitempty"`
}

func toLedgerEntryDTO(e rewards.LedgerEntry) LedgerEntryDTO {
	dto := LedgerEntryDTO{
		ID:        string(e.ID),
		UserID:    string(e.UserID),
		Type:      string(e.Type),
		Points:    e.Points,
		Timestamp: e.Timestamp.Format(time.RFC3339Nano),
	}
	if e.EventID != nil {
		v := string(*e.EventID)
		dto.EventID = &v
	}
	if e.RequestID != nil {
		v := string(*e.RequestID)
		dto.RequestID = &v
	}
	return dto
}

type LedgerPageDTO struct {
	Entries []LedgerEntryDTO `json:"entries"`
	Total   int64            `json:"total"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

type AwardPointsRequest struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
	Points  int64  `json:"points"`
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorDTO struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
