/*
product.go - Catalog product and the stock model

PURPOSE:
  Products are what points buy. The interesting part is the stock model:
  stock is an optional integer where nil means untracked/unlimited
  inventory. Availability checks on unlimited stock pass trivially and
  increment/decrement are no-ops.

STOCK INVARIANT:
  For tracked stock: stock >= 0, always. Decrement is guarded; it never
  drives stock negative.

SEE ALSO:
  - service.go: Deliver decrements stock in lockstep with point capture
*/
package rewards

import (
	"math"
	"strings"
	"time"
)

// =============================================================================
// PRODUCT
// =============================================================================

type Product struct {
	ID          ProductID
	Name        string
	Description *string // trimmed free text, empty maps to nil
	ImageURL    *string
	PointsCost  int64
	Stock       *int64 // nil = unlimited
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   Version
}

// NewProduct creates an active catalog product.
func NewProduct(id ProductID, name, description, imageURL string, pointsCost int64, stock *int64, now time.Time) (*Product, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be blank"}
	}
	if pointsCost <= 0 {
		return nil, &ValidationError{Field: "pointsCost", Message: "must be positive"}
	}
	if stock != nil && *stock < 0 {
		return nil, &ValidationError{Field: "stock", Message: "must not be negative"}
	}
	p := &Product{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: optionalText(description),
		ImageURL:    optionalText(imageURL),
		PointsCost:  pointsCost,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if stock != nil {
		v := *stock
		p.Stock = &v
	}
	return p, nil
}

// =============================================================================
// STOCK MODEL
// =============================================================================

// StockAvailable reports whether qty units can be taken from stock.
// Unlimited (nil) stock is always available.
func (p *Product) StockAvailable(qty int64) (bool, error) {
	if qty <= 0 {
		return false, &ValidationError{Field: "qty", Message: "must be positive"}
	}
	if p.Stock == nil {
		return true, nil
	}
	return *p.Stock >= qty, nil
}

// DecrementStock takes qty units from tracked stock. No-op when unlimited.
func (p *Product) DecrementStock(qty int64, now time.Time) error {
	if qty <= 0 {
		return &ValidationError{Field: "qty", Message: "must be positive"}
	}
	if p.Stock == nil {
		return nil
	}
	if *p.Stock < qty {
		return &InsufficientStockError{ProductID: p.ID, Stock: *p.Stock, Requested: qty}
	}
	*p.Stock -= qty
	p.UpdatedAt = touch(p.UpdatedAt, now)
	return nil
}

// IncrementStock returns qty units to tracked stock. No-op when unlimited.
func (p *Product) IncrementStock(qty int64, now time.Time) error {
	if qty <= 0 {
		return &ValidationError{Field: "qty", Message: "must be positive"}
	}
	if p.Stock == nil {
		return nil
	}
	if *p.Stock > math.MaxInt64-qty {
		return ErrOverflow
	}
	*p.Stock += qty
	p.UpdatedAt = touch(p.UpdatedAt, now)
	return nil
}

// =============================================================================
// CATALOG HOUSEKEEPING
// =============================================================================

func (p *Product) Rename(name string, now time.Time) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "must not be blank"}
	}
	p.Name = strings.TrimSpace(name)
	p.UpdatedAt = touch(p.UpdatedAt, now)
	return nil
}

func (p *Product) SetDescription(description string, now time.Time) {
	p.Description = optionalText(description)
	p.UpdatedAt = touch(p.UpdatedAt, now)
}

func (p *Product) SetImageURL(imageURL string, now time.Time) {
	p.ImageURL = optionalText(imageURL)
	p.UpdatedAt = touch(p.UpdatedAt, now)
}

func (p *Product) SetPointsCost(pointsCost int64, now time.Time) error {
	if pointsCost <= 0 {
		return &ValidationError{Field: "pointsCost", Message: "must be positive"}
	}
	p.PointsCost = pointsCost
	p.UpdatedAt = touch(p.UpdatedAt, now)
	return nil
}

// SetStock replaces the stock level. nil switches to unlimited.
func (p *Product) SetStock(stock *int64, now time.Time) error {
	if stock != nil && *stock < 0 {
		return &ValidationError{Field: "stock", Message: "must not be negative"}
	}
	if stock == nil {
		p.Stock = nil
	} else {
		v := *stock
		p.Stock = &v
	}
	p.UpdatedAt = touch(p.UpdatedAt, now)
	return nil
}

func (p *Product) Activate(now time.Time) {
	p.Active = true
	p.UpdatedAt = touch(p.UpdatedAt, now)
}

func (p *Product) Deactivate(now time.Time) {
	p.Active = false
	p.UpdatedAt = touch(p.UpdatedAt, now)
}
