package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/repository"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/utils"
)

func openRepo(t *testing.T, path string) *repository.SessionRepository {
	t.Helper()
	repo, err := repository.OpenSessionRepository(path)
	require.NoError(t, err)
	return repo
}

func TestSessionStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	repo := openRepo(t, path)

	store := NewSessionStore(repo, zap.NewNop())
	require.NoError(t, store.Load())
	assert.False(t, store.IsLoggedIn())
	assert.Empty(t, store.Token())

	user := api.User{ID: "u1", Email: "ada@example.com", FullName: "Ada"}
	require.NoError(t, store.Set("tok-1", user))
	assert.True(t, store.IsLoggedIn())
	assert.Equal(t, "tok-1", store.Token())

	// a fresh store over the same storage hydrates the session
	other := NewSessionStore(repo, zap.NewNop())
	require.NoError(t, other.Load())
	got, ok := other.User()
	require.True(t, ok)
	assert.Equal(t, user, got)
	assert.Equal(t, "tok-1", other.Token())

	require.NoError(t, store.Clear())
	assert.False(t, store.IsLoggedIn())

	require.NoError(t, other.Load())
	assert.False(t, other.IsLoggedIn())
	_, ok = other.User()
	assert.False(t, ok)
}

type brokenRepo struct{}

func (brokenRepo) Get() (*models.Session, error) { return nil, errors.New("disk on fire") }
func (brokenRepo) Save(*models.Session) error { return errors.New("disk on fire") }
func (brokenRepo) Delete() error { return errors.New("disk on fire") }

func TestSessionStoreStorageErrors(t *testing.T) {
	store := NewSessionStore(brokenRepo{}, nil)

	assert.Error(t, store.Load())
	assert.Error(t, store.Set("tok", api.User{}))
	assert.False(t, store.IsLoggedIn())

	// in-memory state is gone even if storage could not be cleared
	assert.Error(t, store.Clear())
	assert.False(t, store.IsLoggedIn())
}

type fakeAuthBackend struct {
	loginErr error
	logins   []api.LoginRequest
}

func (b *fakeAuthBackend) Login(_ context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	b.logins = append(b.logins, req)
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	return &api.TokenResponse{AccessToken: "jwt", User: api.User{ID: "u1", Email: req.Email}}, nil
}

func (b *fakeAuthBackend) Register(_ context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	return &api.TokenResponse{AccessToken: "jwt-new", User: api.User{ID: "u2", Email: req.Email, FullName: req.FullName}}, nil
}

func TestAuthServiceLoginLogout(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "session.db"))
	store := NewSessionStore(repo, zap.NewNop())
	backend := &fakeAuthBackend{}
	svc := NewAuthService(backend, store, utils.NewValidator(models.PlanIDs()...), zap.NewNop())

	user, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "jwt", store.Token())

	require.NoError(t, svc.Logout())
	assert.False(t, store.IsLoggedIn())
}

func TestAuthServiceRejectsInvalidForm(t *testing.T) {
	store := NewSessionStore(brokenRepo{}, nil)
	backend := &fakeAuthBackend{}
	svc := NewAuthService(backend, store, utils.NewValidator(models.PlanIDs()...), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nope"})

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Empty(t, backend.logins)
}

func TestAuthServiceBackendRejects(t *testing.T) {
	store := NewSessionStore(brokenRepo{}, nil)
	backend := &fakeAuthBackend{loginErr: &api.Error{StatusCode: 401, Detail: "Invalid credentials"}}
	svc := NewAuthService(backend, store, utils.NewValidator(models.PlanIDs()...), zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", UserMessage(err))
	assert.False(t, store.IsLoggedIn())
}

func TestAuthServiceRegister(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "session.db"))
	store := NewSessionStore(repo, zap.NewNop())
	svc := NewAuthService(&fakeAuthBackend{}, store, utils.NewValidator(models.PlanIDs()...), zap.NewNop())

	user, err := svc.Register(context.Background(), models.RegisterRequest{FullName: "Grace", Email: "grace@example.com", Password: "hopper1"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.FullName)
	assert.Equal(t, "jwt-new", store.Token())
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "bad", UserMessage(&InputError{Message: "bad"}))
	assert.Contains(t, UserMessage(ErrMissingRedirectURL), "did not return a checkout page")
	assert.Contains(t, UserMessage(context.DeadlineExceeded), "too long")
	assert.Equal(t, "Not Found", UserMessage(&api.Error{StatusCode: 404}))
}
