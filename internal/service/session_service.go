package service

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/repository"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/jwt"
)

type SessionRepository interface {
	Get() (*models.Session, error)
	Save(session *models.Session) error
	Delete() error
}

// SessionStore holds the process-wide auth session and mirrors it into
// persistent storage. Load hydrates it on startup, Set records a login and
// Clear a logout. Tokens are never refreshed or expired client side.
type SessionStore struct {
	repo   SessionRepository
	logger *zap.Logger

	mu      sync.RWMutex
	current *models.Session
}

func NewSessionStore(repo SessionRepository, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		repo:   repo,
		logger: logger,
	}
}

func (s *SessionStore) Load() error {
	session, err := s.repo.Get()
	if errors.Is(err, repository.ErrNoSession) {
		s.mu.Lock()
		s.current = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.logger.Info("session restored", s.userField(session))
	return nil
}

func (s *SessionStore) Set(token string, user api.User) error {
	session := &models.Session{Token: token, User: user}
	if err := s.repo.Save(session); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.logger.Info("session stored", s.userField(session))
	return nil
}

// Clear drops the in-memory session even when the storage delete fails.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.repo.Delete(); err != nil {
		return err
	}
	s.logger.Info("session cleared")
	return nil
}

func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *SessionStore) User() (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.LoggedIn() {
		return api.User{}, false
	}
	return s.current.User, true
}

func (s *SessionStore) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.LoggedIn()
}

func (s *SessionStore) userField(session *models.Session) zap.Field {
	if claims, err := jwt.ParseUnverified(session.Token); err == nil && claims.UserID != "" {
		return zap.String("user_id", claims.UserID)
	}
	return zap.String("user_id", session.User.ID)
}
