package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/toybox/pkg/types"
)

// openSlot opens a Slot in a fresh temp dir and closes it on cleanup.
func openSlot(t *testing.T, dir string) *Slot {
	t.Helper()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	openSlot(t, dir)

	_, err := os.Stat(filepath.Join(dir, DBFileName))
	assert.NoError(t, err)
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := openSlot(t, t.TempDir())

	_, err := s.Load(types.KindToys)
	assert.ErrorIs(t, err, types.ErrSlotEmpty)
}

func TestSaveLoadOverwrite(t *testing.T) {
	s := openSlot(t, t.TempDir())

	require.NoError(t, s.Save(types.KindToys, []byte(`[{"id":"a"}]`)))
	got, err := s.Load(types.KindToys)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, s.Save(types.KindToys, []byte(`[]`)))
	got, err = s.Load(types.KindToys)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	_, err = s.Load(types.KindOrders)
	assert.ErrorIs(t, err, types.ErrSlotEmpty)
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, first.Save(types.KindCustomers, []byte(`[{"id":"c1"}]`)))
	require.NoError(t, first.Close())

	second := openSlot(t, dir)
	got, err := second.Load(types.KindCustomers)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"c1"}]`, string(got))
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Save(types.KindToys, []byte(`[]`)), types.ErrSlotClosed)
	_, err = s.Load(types.KindToys)
	assert.ErrorIs(t, err, types.ErrSlotClosed)
}
