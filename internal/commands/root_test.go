package commands

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmate-app/taskmate/internal/config"
	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/localstate"
)

func TestSurfaceErrorExpiredSessionClearsSignIn(t *testing.T) {
	dir := t.TempDir()
	record := localstate.Session{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, localstate.Save(dir, record))

	app := &App{Config: config.Config{DataDir: dir}}
	app.surfaceError(fmt.Errorf("failed to load tasks: %w", gateway.ErrSessionExpired))

	// The next run must ask for login again
	got, err := localstate.Load(dir)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSurfaceErrorOtherFailuresKeepSignIn(t *testing.T) {
	dir := t.TempDir()
	record := localstate.Session{ID: "user-1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, localstate.Save(dir, record))

	app := &App{Config: config.Config{DataDir: dir}}
	app.surfaceError(fmt.Errorf("database is locked"))

	got, err := localstate.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, *got)
}
