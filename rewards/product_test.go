/*
product_test.go - Unit tests for the product stock model

Tests for:
- Unlimited (nil) stock: availability always true, increment/decrement no-ops
- Tracked stock: decrement guard, stock >= 0 invariant
- Stock replacement and validation
*/
package rewards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rewards-engine/rewards"
)

func stockOf(n int64) *int64 { return &n }

func newTestProduct(t *testing.T, cost int64, stock *int64) *rewards.Product {
	t.Helper()
	p, err := rewards.NewProduct("prod-1", "Coffee Mug", "", "", cost, stock, testNow)
	require.NoError(t, err)
	return p
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewProduct_Validation(t *testing.T) {
	_, err := rewards.NewProduct("prod-1", "  ", "", "", 100, nil, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation, "blank name")

	_, err = rewards.NewProduct("prod-1", "Mug", "", "", 0, nil, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation, "zero cost")

	_, err = rewards.NewProduct("prod-1", "Mug", "", "", -5, nil, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation, "negative cost")

	_, err = rewards.NewProduct("prod-1", "Mug", "", "", 100, stockOf(-1), testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation, "negative stock")
}

func TestNewProduct_EmptyTextMapsToNil(t *testing.T) {
	p, err := rewards.NewProduct("prod-1", "Mug", "   ", "", 100, nil, testNow)
	require.NoError(t, err)

	assert.Nil(t, p.Description)
	assert.Nil(t, p.ImageURL)
}

// =============================================================================
// UNLIMITED STOCK
// =============================================================================

func TestUnlimitedStock_AlwaysAvailable(t *testing.T) {
	// GIVEN: A product with untracked inventory
	// WHEN: Checking availability for any quantity
	// THEN: Always available

	p := newTestProduct(t, 100, nil)

	ok, err := p.StockAvailable(1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.StockAvailable(1_000_000)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnlimitedStock_DecrementIsNoOp(t *testing.T) {
	p := newTestProduct(t, 100, nil)

	require.NoError(t, p.DecrementStock(1, testNow))
	require.NoError(t, p.IncrementStock(5, testNow))

	assert.Nil(t, p.Stock, "unlimited stock stays unlimited")
}

// =============================================================================
// TRACKED STOCK
// =============================================================================

func TestTrackedStock_DecrementToZero(t *testing.T) {
	// GIVEN: 2 units in stock
	// WHEN: Decrementing twice
	// THEN: Stock reaches 0 and a third decrement fails

	p := newTestProduct(t, 100, stockOf(2))

	require.NoError(t, p.DecrementStock(1, testNow))
	require.NoError(t, p.DecrementStock(1, testNow))
	require.Equal(t, int64(0), *p.Stock)

	err := p.DecrementStock(1, testNow)

	require.ErrorIs(t, err, rewards.ErrInsufficientStock)
	var stockErr *rewards.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(0), stockErr.Stock)
	assert.Equal(t, int64(1), stockErr.Requested)
	assert.Equal(t, int64(0), *p.Stock, "failed decrement must not mutate")
}

func TestTrackedStock_ZeroStock_NotAvailable(t *testing.T) {
	p := newTestProduct(t, 100, stockOf(0))

	ok, err := p.StockAvailable(1)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStock_NonPositiveQuantity_Rejected(t *testing.T) {
	p := newTestProduct(t, 100, stockOf(5))

	_, err := p.StockAvailable(0)
	assert.ErrorIs(t, err, rewards.ErrValidation)

	assert.ErrorIs(t, p.DecrementStock(0, testNow), rewards.ErrValidation)
	assert.ErrorIs(t, p.DecrementStock(-1, testNow), rewards.ErrValidation)
	assert.ErrorIs(t, p.IncrementStock(0, testNow), rewards.ErrValidation)
	assert.Equal(t, int64(5), *p.Stock)
}

func TestIncrementStock_RestocksTrackedInventory(t *testing.T) {
	p := newTestProduct(t, 100, stockOf(1))

	require.NoError(t, p.IncrementStock(9, testNow))

	assert.Equal(t, int64(10), *p.Stock)
}

// =============================================================================
// HOUSEKEEPING
// =============================================================================

func TestSetStock_SwitchesTrackingModes(t *testing.T) {
	p := newTestProduct(t, 100, stockOf(5))

	// Tracked -> unlimited
	require.NoError(t, p.SetStock(nil, testNow))
	assert.Nil(t, p.Stock)

	// Unlimited -> tracked
	require.NoError(t, p.SetStock(stockOf(3), testNow))
	require.NotNil(t, p.Stock)
	assert.Equal(t, int64(3), *p.Stock)

	// Negative rejected
	assert.ErrorIs(t, p.SetStock(stockOf(-1), testNow), rewards.ErrValidation)
}

func TestProduct_SetPointsCost_Validation(t *testing.T) {
	p := newTestProduct(t, 100, nil)

	assert.ErrorIs(t, p.SetPointsCost(0, testNow), rewards.ErrValidation)
	require.NoError(t, p.SetPointsCost(250, testNow))
	assert.Equal(t, int64(250), p.PointsCost)
}
