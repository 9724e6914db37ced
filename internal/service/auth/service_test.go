package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository"
	"github.com/jwalitptl/hospiflow/internal/repository/memory"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

type fixture struct {
	svc      *Service
	sessions *memory.SessionRepository
	events   *event.Recorder
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sessions := memory.NewSessionRepository(time.Hour)
	events := &event.Recorder{}
	m := metrics.NewNop()

	svc, err := NewService(Config{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, sessions, events, m, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	return &fixture{svc: svc, sessions: sessions, events: events, metrics: m}
}

func TestLoginEveryAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		username, password string
		role               model.Role
		fullName           string
	}{
		{"admin", "admin123", model.RoleAdmin, "Admin User"},
		{"doctor", "doctor123", model.RoleDoctor, "Dr. Sarah Johnson"},
		{"nurse", "nurse123", model.RoleNurse, "Emily Davis"},
		{"pharmacist", "pharma123", model.RolePharmacist, "Michael Chen"},
		{"lab", "lab123", model.RoleLabTech, "Robert Martinez"},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			session, err := f.svc.Login(ctx, tt.username, tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, tt.role, session.Actor.Role)
			assert.Equal(t, tt.fullName, session.Actor.FullName)
			assert.Equal(t, tt.username, session.Actor.Username)
		})
	}
}

func TestLoginStoresActorWithoutPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	claims, err := f.svc.jwt.ValidateToken(session.Token)
	require.NoError(t, err)

	raw, err := f.sessions.Load(ctx, "hospiflow_user:"+claims.SessionID)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "admin123")
	assert.NotContains(t, string(raw), "password")

	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, map[string]interface{}{
		"id":         "1",
		"username":   "admin",
		"email":      "admin@hospiflow.com",
		"role":       "admin",
		"fullName":   "Admin User",
		"department": "Administration",
	}, stored)

	assert.Equal(t, []model.EventType{model.EventSessionStarted}, f.events.Types())
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, wrongPassword := f.svc.Login(ctx, "admin", "wrong")
	_, unknownUser := f.svc.Login(ctx, "nobody", "x")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Equal(t, "Invalid username or password", wrongPassword.Error())

	assert.Empty(t, f.events.Events)
	assert.Equal(t, 0, f.sessions.Len())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.Logins.WithLabelValues("failure")))
}

func TestLoginIsExactMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, c := range []struct{ u, p string }{
		{"Admin", "admin123"},
		{"admin ", "admin123"},
		{"admin", "ADMIN123"},
		{"admin", ""},
		{"", ""},
	} {
		_, err := f.svc.Login(ctx, c.u, c.p)
		assert.ErrorIs(t, err, ErrInvalidCredentials, "%q/%q", c.u, c.p)
	}
}

func TestCurrentActorAfterLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "nurse", "nurse123")
	require.NoError(t, err)

	actor, err := f.svc.CurrentActor(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Actor, actor)
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "doctor", "doctor123")
	require.NoError(t, err)
	claims, err := f.svc.jwt.ValidateToken(session.Token)
	require.NoError(t, err)

	f.svc.Logout(ctx, session.Token)

	_, err = f.sessions.Load(ctx, "hospiflow_user:"+claims.SessionID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	actor, err := f.svc.CurrentActor(ctx, session.Token)
	assert.Nil(t, actor)
	assert.ErrorIs(t, err, ErrNoSession)

	assert.Equal(t, []model.EventType{model.EventSessionStarted, model.EventSessionEnded}, f.events.Types())
}

func TestRepeatedLogoutCountsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "nurse", "nurse123")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.ActiveSessions))

	f.svc.Logout(ctx, session.Token)
	f.svc.Logout(ctx, session.Token)

	assert.Equal(t, 0.0, testutil.ToFloat64(f.metrics.ActiveSessions))
	assert.Equal(t, []model.EventType{model.EventSessionStarted, model.EventSessionEnded}, f.events.Types())
}

func TestLogoutToleratesGarbage(t *testing.T) {
	f := newFixture(t)
	assert.NotPanics(t, func() {
		f.svc.Logout(context.Background(), "garbage")
		f.svc.Logout(context.Background(), "")
	})
}

func TestCurrentActorTrustsStoredRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	session, err := f.svc.Login(ctx, "lab", "lab123")
	require.NoError(t, err)
	claims, err := f.svc.jwt.ValidateToken(session.Token)
	require.NoError(t, err)

	// Whatever the durable record says is adopted on restore.
	edited := `{"id":"5","username":"lab","email":"lab@hospiflow.com","role":"lab_tech","fullName":"Renamed","department":"Laboratory"}`
	require.NoError(t, f.sessions.Save(ctx, "hospiflow_user:"+claims.SessionID, []byte(edited), time.Hour))

	actor, err := f.svc.CurrentActor(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", actor.FullName)
}

func TestCurrentActorWithoutToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CurrentActor(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)
}
