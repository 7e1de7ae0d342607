package storage

import (
	"context"
	"kinstore/internal/testutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "kinstore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return NewStore(backend, &testutil.MockLogger{}, testutil.NewMockMetrics(), testutil.NoopTracing{})
}

func TestSQLiteBackend_LoadMissing(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "kinstore.db"))
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Load(Offers)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestSQLiteStore_ReadMissingCreatesEmptyDocument(t *testing.T) {
	s := newSQLiteStore(t)

	raw, err := s.ReadRaw(context.Background(), Chat)
	require.NoError(t, err)
	assert.JSONEq(t, `{"conversations":[],"messages":[]}`, string(raw))
	assert.Equal(t, "sqlite", s.Driver())
}

func TestSQLiteStore_WriteOverwritesDocument(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, WriteList(ctx, s, Users, []item{{ID: "1"}}))
	require.NoError(t, WriteList(ctx, s, Users, []item{{ID: "2"}, {ID: "3"}}))

	out, err := ReadList[item](ctx, s, Users)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "2"}, {ID: "3"}}, out)
}

func TestSQLiteBackend_UnknownResource(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "kinstore.db"))
	require.NoError(t, err)
	defer backend.Close()

	assert.ErrorIs(t, backend.Save(Resource("orders"), []byte("[]")), ErrUnknownResource)
}
