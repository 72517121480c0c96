package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	kv, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	require.NoError(t, kv.Migrate(context.Background()))
	return kv
}

func TestNewSQLiteStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	kv, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Migrate(context.Background()))
}

func TestNewSQLiteStoreEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestGetSetRemove(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	_, ok, err := kv.Get(ctx, "finance_app_theme")
	require.NoError(t, err)
	assert.False(t, ok, "absent key reads as not found, not as an error")

	require.NoError(t, kv.Set(ctx, "finance_app_theme", "dark"))
	value, ok, err := kv.Get(ctx, "finance_app_theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", value)

	require.NoError(t, kv.Set(ctx, "finance_app_theme", "light"))
	value, _, err = kv.Get(ctx, "finance_app_theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	require.NoError(t, kv.Remove(ctx, "finance_app_theme"))
	_, ok, err = kv.Get(ctx, "finance_app_theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Remove(ctx, "finance_app_theme"), "removing an absent key is fine")
}

func TestSetLargeBlob(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	big := make([]byte, 1<<20)
	for i := range big {
		big[i] = 'a'
	}

	require.NoError(t, kv.Set(ctx, "finance_app_profile_image", string(big)))
	value, ok, err := kv.Get(ctx, "finance_app_profile_image")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, value, 1<<20)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	_, _, err := kv.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyString)

	err = kv.Set(ctx, "  ", "value")
	assert.ErrorIs(t, err, ErrEmptyString)

	//nolint:staticcheck // exercising the nil-context guard
	_, _, err = kv.Get(nil, "key")
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)

	require.NoError(t, kv.Migrate(ctx))

	version, err := kv.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	kv, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, kv.Migrate(ctx))
	require.NoError(t, kv.Set(ctx, "finance_app_account_name", "My Finances"))
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer kv.Close()
	require.NoError(t, kv.Migrate(ctx))

	value, ok, err := kv.Get(ctx, "finance_app_account_name")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "My Finances", value)
}
