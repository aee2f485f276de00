package sqlitestore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/starose-admin/session"
	"github.com/jrsteele09/starose-admin/session/sessiontest"
	"github.com/jrsteele09/starose-admin/session/storage/sqlitestore"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *sqlitestore.Store {
	t.Helper()
	store, err := sqlitestore.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetSetRemove(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), sqlitestore.FileName))

	_, ok, err := store.Get(session.StorageKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(session.StorageKey, "one"))
	require.NoError(t, store.Set(session.StorageKey, "two"))
	value, ok, err := store.Get(session.StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "two", value)

	require.NoError(t, store.Remove(session.StorageKey))
	require.NoError(t, store.Remove(session.StorageKey))
	_, ok, err = store.Get(session.StorageKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_BacksSessionStoreAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), sqlitestore.FileName)
	s := sessiontest.Session(t, time.Now().Add(time.Hour))

	first, err := sqlitestore.Open(path)
	require.NoError(t, err)
	sessions, err := session.NewStore(first)
	require.NoError(t, err)
	require.NoError(t, sessions.Login(s))
	require.NoError(t, first.Close())

	reopened := openStore(t, path)
	restored, err := session.NewStore(reopened)
	require.NoError(t, err)
	current, ok := restored.CurrentUser()
	require.True(t, ok)
	require.Equal(t, s, current)
}
