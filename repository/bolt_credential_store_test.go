// ABOUTME: Tests for the bbolt-backed credential override store
// ABOUTME: Durable roundtrip against a temporary database file

package repository

import (
	"context"
	"path/filepath"
	"testing"

	"parking-gateway/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoltStore(t *testing.T) *BoltCredentialStore {
	t.Helper()

	store, err := NewBoltCredentialStore(filepath.Join(t.TempDir(), "overrides.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBoltCredentialStore_SaveAndGet(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	creds := models.ClientCredentials{ClientID: "id-1", ClientSecret: "sec-1"}
	require.NoError(t, store.Save(ctx, models.EnvironmentStaging, creds))

	got, err := store.Get(ctx, models.EnvironmentStaging)
	require.NoError(t, err)
	assert.Equal(t, creds, *got)
}

func TestBoltCredentialStore_GetMissing(t *testing.T) {
	store := newTestBoltStore(t)

	_, err := store.Get(context.Background(), models.EnvironmentProduction)
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestBoltCredentialStore_SaveRejectsIncomplete(t *testing.T) {
	store := newTestBoltStore(t)

	err := store.Save(context.Background(), models.EnvironmentProduction,
		models.ClientCredentials{ClientID: "only-id"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBoltCredentialStore_Delete(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.EnvironmentDevelopment,
		models.ClientCredentials{ClientID: "a", ClientSecret: "b"}))

	require.NoError(t, store.Delete(ctx, models.EnvironmentDevelopment))

	_, err := store.Get(ctx, models.EnvironmentDevelopment)
	assert.ErrorIs(t, err, ErrCredentialsNotFound)

	// Second delete finds nothing.
	assert.ErrorIs(t, store.Delete(ctx, models.EnvironmentDevelopment), ErrCredentialsNotFound)
}

func TestBoltCredentialStore_EnvironmentsIsolated(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, models.EnvironmentProduction,
		models.ClientCredentials{ClientID: "prod", ClientSecret: "p"}))
	require.NoError(t, store.Save(ctx, models.EnvironmentStaging,
		models.ClientCredentials{ClientID: "stg", ClientSecret: "s"}))

	require.NoError(t, store.Delete(ctx, models.EnvironmentProduction))

	got, err := store.Get(ctx, models.EnvironmentStaging)
	require.NoError(t, err)
	assert.Equal(t, "stg", got.ClientID)
}
