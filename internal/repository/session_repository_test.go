package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/pkg/api"
)

func TestSessionRepositoryRoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	repo, err := OpenSessionRepository(path)
	require.NoError(t, err)

	_, err = repo.Get()
	assert.ErrorIs(t, err, ErrNoSession)

	want := &models.Session{
		Token: "jwt-token",
		User:  api.User{ID: "u1", Email: "ada@example.com", FullName: "Ada Lovelace"},
	}
	require.NoError(t, repo.Save(want))

	repo, err = OpenSessionRepository(path)
	require.NoError(t, err)

	got, err := repo.Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Delete())
	_, err = repo.Get()
	assert.ErrorIs(t, err, ErrNoSession)

	// deleting twice is fine
	assert.NoError(t, repo.Delete())
}

func TestSessionRepositorySharedBetweenProcesses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	// One repository per command, as when "serve" runs next to "login".
	server, err := OpenSessionRepository(path)
	require.NoError(t, err)
	cli, err := OpenSessionRepository(path)
	require.NoError(t, err)

	want := &models.Session{Token: "jwt-token", User: api.User{ID: "u1", Email: "ada@example.com"}}
	require.NoError(t, cli.Save(want))

	got, err := server.Get()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, server.Delete())
	_, err = cli.Get()
	assert.ErrorIs(t, err, ErrNoSession)
}
