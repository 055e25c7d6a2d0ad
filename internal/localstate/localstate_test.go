package localstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadClear(t *testing.T) {
	dir := t.TempDir()

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := Session{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, Save(dir, want))

	got, err = Load(dir)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)

	require.NoError(t, Clear(dir))
	got, err = Load(dir)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClearAbsentIsNotAnError(t *testing.T) {
	assert.NoError(t, Clear(t.TempDir()))
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	require.NoError(t, Save(dir, Session{ID: "user-1"}))

	got, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.ID)
}
