/*
ledger_test.go - Unit tests for ledger entry invariants

Tests for:
- Earn entries referencing exactly one event
- Redeem entries referencing exactly one redemption request
- Validate rejecting malformed entries
*/
package rewards_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rewards-engine/rewards"
)

func TestNewEarnEntry_ReferencesEvent(t *testing.T) {
	e, err := rewards.NewEarnEntry("entry-1", "user-1", "event-1", 100, testNow)

	require.NoError(t, err)
	assert.Equal(t, rewards.EntryEarn, e.Type)
	require.NotNil(t, e.EventID)
	assert.Equal(t, rewards.EventID("event-1"), *e.EventID)
	assert.Nil(t, e.RequestID)
}

func TestNewRedeemEntry_ReferencesRequest(t *testing.T) {
	e, err := rewards.NewRedeemEntry("entry-1", "user-1", "req-1", 200, testNow)

	require.NoError(t, err)
	assert.Equal(t, rewards.EntryRedeem, e.Type)
	require.NotNil(t, e.RequestID)
	assert.Equal(t, rewards.RequestID("req-1"), *e.RequestID)
	assert.Nil(t, e.EventID)
}

func TestNewEntry_NonPositivePoints_Rejected(t *testing.T) {
	_, err := rewards.NewEarnEntry("entry-1", "user-1", "event-1", 0, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation)

	_, err = rewards.NewRedeemEntry("entry-1", "user-1", "req-1", -50, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation)
}

func TestNewEntry_MissingReference_Rejected(t *testing.T) {
	_, err := rewards.NewEarnEntry("entry-1", "user-1", "", 100, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation)

	_, err = rewards.NewRedeemEntry("entry-1", "user-1", "", 100, testNow)
	assert.ErrorIs(t, err, rewards.ErrValidation)
}

func TestLedgerEntryValidate_ExactlyOneReference(t *testing.T) {
	// The exactly-one-reference rule: an entry carrying both an event and a
	// request reference is malformed regardless of its type.
	eventID := rewards.EventID("event-1")
	requestID := rewards.RequestID("req-1")

	e := rewards.LedgerEntry{
		ID:        "entry-1",
		UserID:    "user-1",
		Type:      rewards.EntryEarn,
		Points:    100,
		Timestamp: testNow,
		EventID:   &eventID,
		RequestID: &requestID,
	}
	assert.ErrorIs(t, e.Validate(), rewards.ErrValidation, "both references")

	e = rewards.LedgerEntry{
		ID:        "entry-1",
		UserID:    "user-1",
		Type:      rewards.EntryRedeem,
		Points:    100,
		Timestamp: testNow,
	}
	assert.ErrorIs(t, e.Validate(), rewards.ErrValidation, "no reference")
}

func TestLedgerEntryValidate_UnknownTypeAndZeroTimestamp(t *testing.T) {
	eventID := rewards.EventID("event-1")

	e := rewards.LedgerEntry{
		ID:      "entry-1",
		UserID:  "user-1",
		Type:    "transfer",
		Points:  100,
		EventID: &eventID,
	}
	assert.ErrorIs(t, e.Validate(), rewards.ErrValidation, "zero timestamp rejected first")

	e.Timestamp = testNow
	assert.ErrorIs(t, e.Validate(), rewards.ErrValidation, "unknown type")
}
