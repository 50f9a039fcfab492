/*
housekeeping.go - Account, catalog, and event use cases

PURPOSE:
  The thin contract surface around the core: user registration and
  account lifecycle, product CRUD with the pending-redemption delete
  guard, and event CRUD. No state machine, no concurrency-sensitive
  arithmetic - field validation lives on the entities.

  All mutating operations except user registration are admin-gated.
*/
package rewards

import (
	"context"
	"time"
)

// =============================================================================
// ACCOUNTS
// =============================================================================

// RegisterUser creates an active user with a zero balance. Email and
// employee id are globally unique; duplicates surface as ConflictError.
func (s *Service) RegisterUser(ctx context.Context, name, email, employeeID string) (*User, error) {
	var user *User
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		user, err = NewUser(UserID(s.newID()), name, email, employeeID, s.now())
		if err != nil {
			return err
		}
		return st.Users.Add(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, userID UserID) (*User, error) {
	var user *User
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		user, err = st.Users.Get(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		users, err = st.Users.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) SetUserActive(ctx context.Context, adminID, userID UserID, active bool) (*User, error) {
	var user *User
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		user, err = st.Users.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if active {
			user.Activate(s.now())
		} else {
			user.Deactivate(s.now())
		}
		return st.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetBalance reads the (total, locked, available) triple. Read-only;
// works for inactive users.
func (s *Service) GetBalance(ctx context.Context, userID UserID) (BalanceView, error) {
	var balance BalanceView
	err := s.uow.WithTx(ctx, func(st Stores) error {
		user, err := st.Users.Get(ctx, userID)
		if err != nil {
			return err
		}
		balance = user.Balance()
		return nil
	})
	if err != nil {
		return BalanceView{}, err
	}
	return balance, nil
}

// LedgerHistory returns one page of a user's point movements, most
// recent first.
func (s *Service) LedgerHistory(ctx context.Context, userID UserID, offset, limit int) (*LedgerPage, error) {
	if offset < 0 {
		return nil, &ValidationError{Field: "offset", Message: "must not be negative"}
	}
	if limit <= 0 {
		return nil, &ValidationError{Field: "limit", Message: "must be positive"}
	}
	var page LedgerPage
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := st.Users.Get(ctx, userID); err != nil {
			return err
		}
		entries, err := st.Ledger.ListByUser(ctx, userID, offset, limit)
		if err != nil {
			return err
		}
		total, err := st.Ledger.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		page = LedgerPage{Entries: entries, Total: total, Offset: offset, Limit: limit}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// =============================================================================
// CATALOG
// =============================================================================

// ProductInput carries the caller-supplied product fields. Description
// and image URL are free text: trimmed, empty maps to null.
type ProductInput struct {
	Name        string
	Description string
	ImageURL    string
	PointsCost  int64
	Stock       *int64 // nil = unlimited
}

func (s *Service) CreateProduct(ctx context.Context, adminID UserID, in ProductInput) (*Product, error) {
	var product *Product
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		product, err = NewProduct(ProductID(s.newID()), in.Name, in.Description, in.ImageURL, in.PointsCost, in.Stock, s.now())
		if err != nil {
			return err
		}
		return st.Products.Add(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, adminID UserID, productID ProductID, in ProductInput) (*Product, error) {
	var product *Product
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		product, err = st.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		now := s.now()
		if err := product.Rename(in.Name, now); err != nil {
			return err
		}
		if err := product.SetPointsCost(in.PointsCost, now); err != nil {
			return err
		}
		if err := product.SetStock(in.Stock, now); err != nil {
			return err
		}
		product.SetDescription(in.Description, now)
		product.SetImageURL(in.ImageURL, now)
		return st.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) SetProductActive(ctx context.Context, adminID UserID, productID ProductID, active bool) (*Product, error) {
	var product *Product
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		product, err = st.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if active {
			product.Activate(s.now())
		} else {
			product.Deactivate(s.now())
		}
		return st.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog. Deletion is refused
// while any pending redemption references the product.
func (s *Service) DeleteProduct(ctx context.Context, adminID UserID, productID ProductID) error {
	return s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		if _, err := st.Products.GetForUpdate(ctx, productID); err != nil {
			return err
		}
		pending, err := st.Requests.HasPendingForProduct(ctx, productID)
		if err != nil {
			return err
		}
		if pending {
			return invalidState("product %s has pending redemption requests", productID)
		}
		return st.Products.Delete(ctx, productID)
	})
}

func (s *Service) GetProduct(ctx context.Context, productID ProductID) (*Product, error) {
	var product *Product
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		product, err = st.Products.Get(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*Product, error) {
	var products []*Product
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		products, err = st.Products.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// =============================================================================
// EVENTS
// =============================================================================

func (s *Service) CreateEvent(ctx context.Context, adminID UserID, name string, occursAt time.Time) (*Event, error) {
	var event *Event
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		event, err = NewEvent(EventID(s.newID()), name, occursAt, s.now())
		if err != nil {
			return err
		}
		return st.Events.Add(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) RenameEvent(ctx context.Context, adminID UserID, eventID EventID, name string) (*Event, error) {
	return s.updateEvent(ctx, adminID, eventID, func(e *Event, now time.Time) error {
		return e.Rename(name, now)
	})
}

func (s *Service) RescheduleEvent(ctx context.Context, adminID UserID, eventID EventID, occursAt time.Time) (*Event, error) {
	return s.updateEvent(ctx, adminID, eventID, func(e *Event, now time.Time) error {
		return e.Reschedule(occursAt, now)
	})
}

func (s *Service) SetEventActive(ctx context.Context, adminID UserID, eventID EventID, active bool) (*Event, error) {
	return s.updateEvent(ctx, adminID, eventID, func(e *Event, now time.Time) error {
		if active {
			e.Activate(now)
		} else {
			e.Deactivate(now)
		}
		return nil
	})
}

func (s *Service) updateEvent(ctx context.Context, adminID UserID, eventID EventID, mutate func(*Event, time.Time) error) (*Event, error) {
	var event *Event
	err := s.uow.WithTx(ctx, func(st Stores) error {
		if _, err := s.requireAdmin(ctx, st, adminID); err != nil {
			return err
		}
		var err error
		event, err = st.Events.Get(ctx, eventID)
		if err != nil {
			return err
		}
		if err := mutate(event, s.now()); err != nil {
			return err
		}
		return st.Events.Update(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]*Event, error) {
	var events []*Event
	err := s.uow.WithTx(ctx, func(st Stores) error {
		var err error
		events, err = st.Events.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
