package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "irview.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "irview.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSaveAndGetDump(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveDump(ctx, "compute shader", "let %1 : Int = load(%0)")
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	got, err := s.GetDump(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "compute shader", got.Title)
	assert.Equal(t, "let %1 : Int = load(%0)", got.Content)
	assert.Equal(t, saved.CreatedAt, got.CreatedAt)
}

func TestSaveDumpDefaultsTitle(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveDump(context.Background(), "", "content")
	require.NoError(t, err)
	assert.Equal(t, "Untitled dump", saved.Title)
}

func TestGetDumpNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetDump(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListDumps(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.SaveDump(ctx, "first", "a")
	require.NoError(t, err)
	_, err = s.SaveDump(ctx, "second", "b")
	require.NoError(t, err)

	summaries, err := s.ListDumps(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, sum := range summaries {
		assert.NotEmpty(t, sum.ID)
		assert.NotEmpty(t, sum.Title)
	}
}

func TestListDumpsEmpty(t *testing.T) {
	s := openTestStore(t)

	summaries, err := s.ListDumps(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NotNil(t, summaries)
}

func TestDeleteDump(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.SaveDump(ctx, "t", "c")
	require.NoError(t, err)

	require.NoError(t, s.DeleteDump(ctx, saved.ID))
	_, err = s.GetDump(ctx, saved.ID)
	require.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteDump(ctx, saved.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
