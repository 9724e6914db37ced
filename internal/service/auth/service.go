package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	jwtauth "github.com/jwalitptl/hospiflow/pkg/auth"
	apperrors "github.com/jwalitptl/hospiflow/pkg/errors"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
	"github.com/jwalitptl/hospiflow/pkg/security"
)

// SessionKeyPrefix prefixes every durable session record.
const SessionKeyPrefix = "hospiflow_user"

var (
	// ErrInvalidCredentials is deliberately identical for an unknown user and
	// a wrong password.
	ErrInvalidCredentials = apperrors.Unauthorized("Invalid username or password", nil)
	ErrNoSession          = apperrors.Unauthorized("No active session", nil)
)

type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	SessionTTL time.Duration
	BcryptCost int
}

type account struct {
	hash  string
	actor model.Actor
}

// Service is the session store. Create it with NewService and release it with
// Close.
type Service struct {
	sessions  repository.SessionRepository
	jwt       jwtauth.JWTService
	hasher    security.PasswordHasher
	accounts  map[string]account
	dummyHash string
	ttl       time.Duration
	events    event.Emitter
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewService hashes the credential table once so sign-in never compares
// plaintext.
func NewService(cfg Config, sessions repository.SessionRepository, events event.Emitter, m *metrics.Metrics, log *logger.Logger) (*Service, error) {
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	accounts := make(map[string]account, len(credentials))
	for _, c := range credentials {
		hash, err := hasher.Hash(c.password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", c.actor.Username, err)
		}
		accounts[c.actor.Username] = account{hash: hash, actor: c.actor}
	}

	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to hash dummy password: %w", err)
	}

	return &Service{
		sessions:  sessions,
		jwt:       jwtauth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		hasher:    hasher,
		accounts:  accounts,
		dummyHash: dummy,
		ttl:       cfg.SessionTTL,
		events:    events,
		metrics:   m,
		logger:    log.With("auth"),
	}, nil
}

func sessionKey(sessionID string) string {
	return SessionKeyPrefix + ":" + sessionID
}

func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	acct, ok := s.accounts[username]
	if !ok {
		// Same bcrypt cost as a real mismatch.
		_ = s.hasher.Compare(s.dummyHash, password)
		s.recordLogin("failure")
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(acct.hash, password); err != nil {
		s.recordLogin("failure")
		return nil, ErrInvalidCredentials
	}

	actor := acct.actor
	record, err := json.Marshal(&actor)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	sessionID := uuid.NewString()
	token, err := s.jwt.GenerateSessionToken(sessionID, &actor)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.sessions.Save(ctx, sessionKey(sessionID), record, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.recordLogin("success")
	if s.metrics != nil {
		s.metrics.ActiveSessions.Inc()
	}
	s.logger.Info("session started", "user", actor.Username, "role", string(actor.Role))
	s.events.Emit(ctx, model.EventSessionStarted, actor.ID, map[string]string{
		"username": actor.Username,
		"role":     string(actor.Role),
	})

	return &model.Session{Token: token, Actor: &actor}, nil
}

// Logout removes the durable record behind token. It never fails: an unknown
// or expired token is already logged out.
func (s *Service) Logout(ctx context.Context, token string) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		s.logger.Debug("logout with invalid token", "error", err.Error())
		return
	}

	removed, err := s.sessions.Delete(ctx, sessionKey(claims.SessionID))
	if err != nil {
		s.logger.Error(err, "failed to delete session", "session", claims.SessionID)
		return
	}
	if !removed {
		return
	}

	if s.metrics != nil {
		s.metrics.ActiveSessions.Dec()
	}
	s.events.Emit(ctx, model.EventSessionEnded, claims.Subject, map[string]string{"session": claims.SessionID})
}

// CurrentActor restores the actor from the durable record. The stored actor is
// adopted as-is; credentials are not checked again.
func (s *Service) CurrentActor(ctx context.Context, token string) (*model.Actor, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	record, err := s.sessions.Load(ctx, sessionKey(claims.SessionID))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var actor model.Actor
	if err := json.Unmarshal(record, &actor); err != nil {
		return nil, fmt.Errorf("%w: corrupt session record: %v", ErrNoSession, err)
	}
	return &actor, nil
}

// Ready reports whether the session backend is reachable.
func (s *Service) Ready(ctx context.Context) error {
	return s.sessions.Ping(ctx)
}

func (s *Service) Close() error {
	return s.sessions.Close()
}

func (s *Service) recordLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(outcome).Inc()
	}
}
