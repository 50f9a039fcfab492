/*
admin_test.go - Unit tests for the static admin registry

Tests for:
- Seeding validation (at least one identifier)
- Matching on either email or employee id
- The last-admin removal guard
*/
package rewards_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rewards-engine/rewards"
)

func TestNewStaticRegistry_RequiresAtLeastOneIdentifier(t *testing.T) {
	_, err := rewards.NewStaticRegistry()
	assert.ErrorIs(t, err, rewards.ErrValidation)

	_, err = rewards.NewStaticRegistry("  ")
	assert.ErrorIs(t, err, rewards.ErrValidation)

	_, err = rewards.NewStaticRegistry("admin@example.com")
	assert.NoError(t, err)
}

func TestStaticRegistry_MatchesEitherIdentifier(t *testing.T) {
	// GIVEN: A registry knowing one email and one employee id
	// WHEN: Checking users by their identifier pairs
	// THEN: A match on either identifier grants admin

	ctx := context.Background()
	reg, err := rewards.NewStaticRegistry("admin@example.com", "EMP-042")
	require.NoError(t, err)

	ok, err := reg.IsAdmin(ctx, "admin@example.com", "EMP-999")
	require.NoError(t, err)
	assert.True(t, ok, "email match")

	ok, err = reg.IsAdmin(ctx, "other@example.com", "EMP-042")
	require.NoError(t, err)
	assert.True(t, ok, "employee id match")

	ok, err = reg.IsAdmin(ctx, "other@example.com", "EMP-999")
	require.NoError(t, err)
	assert.False(t, ok, "no match")
}

func TestStaticRegistry_AddAndRemove(t *testing.T) {
	ctx := context.Background()
	reg, err := rewards.NewStaticRegistry("admin@example.com")
	require.NoError(t, err)

	require.NoError(t, reg.Add(ctx, "second@example.com"))
	ok, err := reg.IsAdmin(ctx, "second@example.com", "")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, reg.Remove(ctx, "second@example.com"))
	ok, err = reg.IsAdmin(ctx, "second@example.com", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaticRegistry_RemoveLastAdmin_Refused(t *testing.T) {
	// GIVEN: A registry with a single admin
	// WHEN: Removing that identifier
	// THEN: ErrInvalidState and the admin is still registered

	ctx := context.Background()
	reg, err := rewards.NewStaticRegistry("admin@example.com")
	require.NoError(t, err)

	err = reg.Remove(ctx, "admin@example.com")

	assert.ErrorIs(t, err, rewards.ErrInvalidState)
	ok, err := reg.IsAdmin(ctx, "admin@example.com", "")
	require.NoError(t, err)
	assert.True(t, ok, "registry must be unchanged after the refused removal")
}

func TestStaticRegistry_RemoveUnknown_NotFound(t *testing.T) {
	ctx := context.Background()
	reg, err := rewards.NewStaticRegistry("admin@example.com")
	require.NoError(t, err)

	err = reg.Remove(ctx, "nobody@example.com")

	assert.ErrorIs(t, err, rewards.ErrNotFound)
}

func TestStaticRegistry_AddBlank_Rejected(t *testing.T) {
	ctx := context.Background()
	reg, err := rewards.NewStaticRegistry("admin@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Add(ctx, "   "), rewards.ErrValidation)
}
