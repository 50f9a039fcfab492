/*
sqlite_test.go - Unit tests for the SQLite store

Tests for:
- Round-trips of every aggregate, including nullable columns
- Transaction rollback on error
- The compare-and-swap version check
- Schema-enforced uniqueness: email, employee id, pending (user, product)
- Ledger ordering and pagination
*/
package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rewards-engine/rewards"
	"github.com/warp/rewards-engine/store/sqlite"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 123456789, time.UTC)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedUser(t *testing.T, s *sqlite.Store, id rewards.UserID, email, employeeID string) *rewards.User {
	t.Helper()
	u, err := rewards.NewUser(id, "Test User", email, employeeID, testNow)
	require.NoError(t, err)
	require.NoError(t, s.WithTx(context.Background(), func(st rewards.Stores) error {
		return st.Users.Add(context.Background(), u)
	}))
	return u
}

// =============================================================================
// ROUND-TRIPS
// =============================================================================

func TestUser_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "user-1", "alice@example.com", "EMP-001")
	require.NoError(t, u.CreditPoints(500, testNow))
	require.NoError(t, u.ReservePoints(200, testNow))
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Users.Update(ctx, u)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		got, err := st.Users.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Test User", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.True(t, got.Active)
		assert.Equal(t, int64(500), got.TotalPoints)
		assert.Equal(t, int64(200), got.LockedPoints)
		assert.Equal(t, rewards.Version(1), got.Version)
		assert.True(t, got.CreatedAt.Equal(testNow), "nanosecond precision survives the round-trip")

		byEmail, err := st.Users.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, got.ID, byEmail.ID)

		byEmployee, err := st.Users.GetByEmployeeID(ctx, "EMP-001")
		require.NoError(t, err)
		assert.Equal(t, got.ID, byEmployee.ID)
		return nil
	}))
}

func TestProduct_RoundTrip_NullableColumns(t *testing.T) {
	// GIVEN: One product with unlimited stock and bare text, one fully set
	// WHEN: Reading them back
	// THEN: nil stays nil and values stay values

	s := newTestStore(t)
	ctx := context.Background()

	bare, err := rewards.NewProduct("prod-bare", "Sticker", "", "", 10, nil, testNow)
	require.NoError(t, err)
	stock := int64(7)
	full, err := rewards.NewProduct("prod-full", "Mug", "A nice mug", "https://img.example.com/mug.png", 100, &stock, testNow)
	require.NoError(t, err)

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		if err := st.Products.Add(ctx, bare); err != nil {
			return err
		}
		return st.Products.Add(ctx, full)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		got, err := st.Products.Get(ctx, "prod-bare")
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.ImageURL)
		assert.Nil(t, got.Stock)

		got, err = st.Products.Get(ctx, "prod-full")
		require.NoError(t, err)
		require.NotNil(t, got.Description)
		assert.Equal(t, "A nice mug", *got.Description)
		require.NotNil(t, got.Stock)
		assert.Equal(t, int64(7), *got.Stock)
		return nil
	}))
}

func TestRequest_RoundTrip_Timestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	req, err := rewards.NewRedemptionRequest("req-1", "user-1", "prod-1", testNow)
	require.NoError(t, err)
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Requests.Add(ctx, req)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		got, err := st.Requests.Get(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, rewards.StatusPending, got.Status)
		assert.Nil(t, got.ApprovedAt)
		assert.Nil(t, got.DeliveredAt)
		return nil
	}))

	approvedAt := testNow.Add(time.Hour)
	require.NoError(t, req.Approve(approvedAt))
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Requests.Update(ctx, req)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		got, err := st.Requests.Get(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, rewards.StatusApproved, got.Status)
		require.NotNil(t, got.ApprovedAt)
		assert.True(t, got.ApprovedAt.Equal(approvedAt))
		return nil
	}))
}

func TestEvent_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e, err := rewards.NewEvent("event-1", "Hackathon", testNow.Add(24*time.Hour), testNow)
	require.NoError(t, err)

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Events.Add(ctx, e)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		got, err := st.Events.Get(ctx, "event-1")
		require.NoError(t, err)
		assert.Equal(t, "Hackathon", got.Name)
		assert.True(t, got.OccursAt.Equal(testNow.Add(24*time.Hour)))
		assert.True(t, got.Active)
		return nil
	}))
}

// =============================================================================
// ROLLBACK
// =============================================================================

func TestWithTx_ErrorRollsBackEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "user-1", "alice@example.com", "EMP-001")
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(st rewards.Stores) error {
		u, err := st.Users.GetForUpdate(ctx, "user-1")
		require.NoError(t, err)
		require.NoError(t, u.CreditPoints(100, testNow))
		require.NoError(t, st.Users.Update(ctx, u))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		u, err := st.Users.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), u.TotalPoints)
		assert.Equal(t, rewards.Version(0), u.Version)
		return nil
	}))
}

// =============================================================================
// OPTIMISTIC VERSIONS
// =============================================================================

func TestUserUpdate_StaleVersion_Conflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := seedUser(t, s, "user-1", "alice@example.com", "EMP-001")

	stale := *u
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Users.Update(ctx, u)
	}))
	require.Equal(t, rewards.Version(1), u.Version)

	err := s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Users.Update(ctx, &stale)
	})
	assert.ErrorIs(t, err, rewards.ErrConflict)
}

func TestUserUpdate_Missing_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ghost, err := rewards.NewUser("ghost", "Ghost", "ghost@example.com", "EMP-404", testNow)
	require.NoError(t, err)

	err = s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Users.Update(ctx, ghost)
	})
	assert.ErrorIs(t, err, rewards.ErrNotFound)
}

// =============================================================================
// SCHEMA CONSTRAINTS
// =============================================================================

func TestUserAdd_DuplicateEmail_Conflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "user-1", "alice@example.com", "EMP-001")

	dup, err := rewards.NewUser("user-2", "Bob", "alice@example.com", "EMP-002", testNow)
	require.NoError(t, err)
	err = s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Users.Add(ctx, dup)
	})
	assert.ErrorIs(t, err, rewards.ErrConflict)
}

func TestRequestAdd_SecondPendingForPair_Conflict(t *testing.T) {
	// The partial unique index: at most one pending row per (user, product).
	s := newTestStore(t)
	ctx := context.Background()

	first, err := rewards.NewRedemptionRequest("req-1", "user-1", "prod-1", testNow)
	require.NoError(t, err)
	second, err := rewards.NewRedemptionRequest("req-2", "user-1", "prod-1", testNow)
	require.NoError(t, err)

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Requests.Add(ctx, first)
	}))
	err = s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Requests.Add(ctx, second)
	})
	assert.ErrorIs(t, err, rewards.ErrConflict)

	// Resolving the first request frees the pair for a new pending one.
	require.NoError(t, first.Reject(testNow))
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		if err := st.Requests.Update(ctx, first); err != nil {
			return err
		}
		return st.Requests.Add(ctx, second)
	}))
}

func TestHasPending_Queries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	req, err := rewards.NewRedemptionRequest("req-1", "user-1", "prod-1", testNow)
	require.NoError(t, err)
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Requests.Add(ctx, req)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		pending, err := st.Requests.HasPendingForUserProduct(ctx, "user-1", "prod-1")
		require.NoError(t, err)
		assert.True(t, pending)

		pending, err = st.Requests.HasPendingForUserProduct(ctx, "user-2", "prod-1")
		require.NoError(t, err)
		assert.False(t, pending)

		pending, err = st.Requests.HasPendingForProduct(ctx, "prod-1")
		require.NoError(t, err)
		assert.True(t, pending)
		return nil
	}))
}

// =============================================================================
// LEDGER
// =============================================================================

func TestLedgerListByUser_NewestFirstWithPaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		for i, id := range []rewards.EntryID{"entry-a", "entry-b", "entry-c"} {
			e, err := rewards.NewEarnEntry(id, "user-1", "event-1", 10,
				testNow.Add(time.Duration(i)*time.Minute))
			if err != nil {
				return err
			}
			if err := st.Ledger.Add(ctx, e); err != nil {
				return err
			}
		}
		redeem, err := rewards.NewRedeemEntry("entry-d", "user-1", "req-1", 20,
			testNow.Add(3*time.Minute))
		if err != nil {
			return err
		}
		return st.Ledger.Add(ctx, redeem)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		entries, err := st.Ledger.ListByUser(ctx, "user-1", 0, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, rewards.EntryID("entry-d"), entries[0].ID)
		require.NotNil(t, entries[0].RequestID, "redeem reference survives the round-trip")
		assert.Nil(t, entries[0].EventID)
		assert.Equal(t, rewards.EntryID("entry-c"), entries[1].ID)

		entries, err = st.Ledger.ListByUser(ctx, "user-1", 2, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, rewards.EntryID("entry-b"), entries[0].ID)
		assert.Equal(t, rewards.EntryID("entry-a"), entries[1].ID)

		n, err := st.Ledger.CountByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
		return nil
	}))
}

func TestLedgerAdd_DuplicateID_Conflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	e, err := rewards.NewEarnEntry("entry-1", "user-1", "event-1", 10, testNow)
	require.NoError(t, err)

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Ledger.Add(ctx, e)
	}))
	err = s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Ledger.Add(ctx, e)
	})
	assert.ErrorIs(t, err, rewards.ErrConflict)
}

// =============================================================================
// DELETE
// =============================================================================

func TestProductDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p, err := rewards.NewProduct("prod-1", "Mug", "", "", 100, nil, testNow)
	require.NoError(t, err)
	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Products.Add(ctx, p)
	}))

	require.NoError(t, s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Products.Delete(ctx, "prod-1")
	}))

	err = s.WithTx(ctx, func(st rewards.Stores) error {
		_, err := st.Products.Get(ctx, "prod-1")
		return err
	})
	assert.ErrorIs(t, err, rewards.ErrNotFound)

	err = s.WithTx(ctx, func(st rewards.Stores) error {
		return st.Products.Delete(ctx, "prod-1")
	})
	assert.ErrorIs(t, err, rewards.ErrNotFound)
}
