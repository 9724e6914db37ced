package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospiflow/internal/handler"
	authhandler "github.com/jwalitptl/hospiflow/internal/handler/auth"
	chathandler "github.com/jwalitptl/hospiflow/internal/handler/chat"
	"github.com/jwalitptl/hospiflow/internal/handler/dashboard"
	hospitalhandler "github.com/jwalitptl/hospiflow/internal/handler/hospital"
	inpatienthandler "github.com/jwalitptl/hospiflow/internal/handler/inpatient"
	labhandler "github.com/jwalitptl/hospiflow/internal/handler/laboratory"
	"github.com/jwalitptl/hospiflow/internal/handler/outpatient"
	overviewhandler "github.com/jwalitptl/hospiflow/internal/handler/overview"
	pharmacyhandler "github.com/jwalitptl/hospiflow/internal/handler/pharmacy"
	staffhandler "github.com/jwalitptl/hospiflow/internal/handler/staff"
	"github.com/jwalitptl/hospiflow/internal/middleware"
	"github.com/jwalitptl/hospiflow/internal/model"
	"github.com/jwalitptl/hospiflow/internal/repository/memory"
	"github.com/jwalitptl/hospiflow/internal/service/auth"
	"github.com/jwalitptl/hospiflow/internal/service/chat"
	"github.com/jwalitptl/hospiflow/internal/service/event"
	"github.com/jwalitptl/hospiflow/internal/service/hospital"
	"github.com/jwalitptl/hospiflow/internal/service/inpatient"
	"github.com/jwalitptl/hospiflow/internal/service/laboratory"
	"github.com/jwalitptl/hospiflow/internal/service/overview"
	"github.com/jwalitptl/hospiflow/internal/service/patient"
	"github.com/jwalitptl/hospiflow/internal/service/pharmacy"
	"github.com/jwalitptl/hospiflow/internal/service/rbac"
	"github.com/jwalitptl/hospiflow/internal/service/staff"
	"github.com/jwalitptl/hospiflow/pkg/logger"
	"github.com/jwalitptl/hospiflow/pkg/metrics"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T, loginBurst int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg, "hospiflow")
	log := logger.Nop()
	events := &event.Recorder{}
	store := memory.NewSeededStore(time.Now())

	authSvc, err := auth.NewService(auth.Config{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		SessionTTL: time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, memory.NewSessionRepository(time.Hour), events, m, log)
	require.NoError(t, err)

	rbacSvc := rbac.NewService(m)
	patientSvc := patient.NewService(store, store, store)
	staffSvc := staff.NewService(store, events, m, log)

	modules := ModuleHandlers{
		model.ModuleOverview:   overviewhandler.NewHandler(overview.NewService(store)),
		model.ModuleHospital:   hospitalhandler.NewHandler(hospital.NewService(store, events)),
		model.ModuleStaff:      staffhandler.NewHandler(staffSvc),
		model.ModuleOutpatient: outpatient.NewHandler(patientSvc),
		model.ModuleInpatient:  inpatienthandler.NewHandler(inpatient.NewService(store, patientSvc, events)),
		model.ModulePharmacy:   pharmacyhandler.NewHandler(pharmacy.NewService(store, store, patientSvc, staffSvc, events)),
		model.ModuleLaboratory: labhandler.NewHandler(laboratory.NewService(store, patientSvc, events)),
		model.ModuleChat:       chathandler.NewHandler(chat.NewService(store, events)),
	}

	r := NewRouter(
		middleware.NewAuthMiddleware(rbacSvc, authSvc),
		authhandler.NewHandler(authSvc),
		dashboard.NewHandler(rbacSvc),
		modules,
		handler.NewHandler(authSvc, rbacSvc, reg),
		RouterConfig{
			LoginRate:     middleware.PerMinute(1),
			LoginBurst:    loginBurst,
			CORSOrigins:   []string{"http://localhost:5173"},
			MetricsPrefix: "hospiflow_http",
			Registerer:    reg,
		},
	)
	r.Setup()

	return &testServer{engine: r.Engine()}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" &&
		bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	code, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, code, env.Message)

	var session model.Session
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestLoginFailureIsGeneric(t *testing.T) {
	s := newTestServer(t, 10)

	code, wrong := s.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, unknown := s.do(t, http.MethodPost, "/api/v1/auth/login", "", model.LoginRequest{Username: "nobody", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, code)

	assert.Equal(t, "Invalid username or password", wrong.Message)
	assert.Equal(t, wrong, unknown)
}

func TestLoginRateLimited(t *testing.T) {
	s := newTestServer(t, 2)
	body := model.LoginRequest{Username: "admin", Password: "wrong"}

	for i := 0; i < 2; i++ {
		code, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, code)
	}
	code, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, "error", env.Status)
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, 10)

	code, _ := s.do(t, http.MethodGet, "/api/v1/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := s.login(t, "doctor", "doctor123")

	code, env := s.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	require.Equal(t, http.StatusOK, code)
	var actor model.Actor
	require.NoError(t, json.Unmarshal(env.Data, &actor))
	assert.Equal(t, model.RoleDoctor, actor.Role)
	assert.Equal(t, "Dr. Sarah Johnson", actor.FullName)

	code, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/api/v1/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No active session", env.Message)

	// Logging out again is harmless.
	code, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestDashboardModules(t *testing.T) {
	s := newTestServer(t, 10)

	tests := []struct {
		username, password string
		want               []model.Module
	}{
		{"admin", "admin123", model.Modules},
		{"pharmacist", "pharma123", []model.Module{model.ModuleOverview, model.ModulePharmacy, model.ModuleChat}},
		{"lab", "lab123", []model.Module{model.ModuleOverview, model.ModuleLaboratory, model.ModuleChat}},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			token := s.login(t, tt.username, tt.password)

			code, env := s.do(t, http.MethodGet, "/api/v1/dashboard", token, nil)
			require.Equal(t, http.StatusOK, code)

			var d model.Dashboard
			require.NoError(t, json.Unmarshal(env.Data, &d))
			assert.Equal(t, tt.want, d.Modules)
			assert.Equal(t, tt.username, d.Actor.Username)
		})
	}
}

func TestModuleGating(t *testing.T) {
	s := newTestServer(t, 10)

	tokens := map[string]string{
		"admin":      s.login(t, "admin", "admin123"),
		"doctor":     s.login(t, "doctor", "doctor123"),
		"nurse":      s.login(t, "nurse", "nurse123"),
		"pharmacist": s.login(t, "pharmacist", "pharma123"),
		"lab":        s.login(t, "lab", "lab123"),
	}

	tests := []struct {
		user string
		path string
		want int
	}{
		{"admin", "/api/v1/staff", http.StatusOK},
		{"doctor", "/api/v1/staff", http.StatusForbidden},
		{"doctor", "/api/v1/outpatient/patients", http.StatusOK},
		{"nurse", "/api/v1/inpatient/admissions", http.StatusOK},
		{"nurse", "/api/v1/pharmacy/medicines", http.StatusForbidden},
		{"pharmacist", "/api/v1/pharmacy/medicines", http.StatusOK},
		{"pharmacist", "/api/v1/laboratory/tests", http.StatusForbidden},
		{"lab", "/api/v1/laboratory/tests", http.StatusOK},
		{"lab", "/api/v1/hospital", http.StatusForbidden},
		{"lab", "/api/v1/overview", http.StatusOK},
		{"lab", "/api/v1/chat/messages", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.user+tt.path, func(t *testing.T) {
			code, env := s.do(t, http.MethodGet, tt.path, tokens[tt.user], nil)
			assert.Equal(t, tt.want, code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "Access denied", env.Message)
			}
		})
	}
}

func TestStaffCreateThroughAPI(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.login(t, "admin", "admin123")

	req := model.StaffRequest{
		FirstName:     "Ana",
		LastName:      "Lopez",
		Role:          model.RoleReceptionist,
		Department:    "Front Desk",
		Email:         "ana@hospiflow.com",
		Phone:         "+1 (555) 999-0000",
		Qualification: "BA",
	}

	code, env := s.do(t, http.MethodPost, "/api/v1/staff", token, req)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created model.Staff
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "S005", created.ID)
	assert.Equal(t, model.StaffStatusActive, created.Status)

	req.Email = "no-at-sign"
	code, env = s.do(t, http.MethodPost, "/api/v1/staff", token, req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "A valid email is required", env.Message)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/staff/S404", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestTransitionsAndCounts(t *testing.T) {
	s := newTestServer(t, 10)
	admin := s.login(t, "admin", "admin123")

	code, _ := s.do(t, http.MethodPost, "/api/v1/laboratory/tests/L001/start", admin, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(t, http.MethodPost, "/api/v1/pharmacy/prescriptions/RX002/dispense", admin, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodPost, "/api/v1/pharmacy/prescriptions/RX002/dispense", admin, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, env := s.do(t, http.MethodGet, "/api/v1/overview", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var sum model.Summary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, 0, sum.PendingPrescriptions)
	assert.Equal(t, 1, sum.ActiveAdmissions)
}

func TestChatPostUsesActor(t *testing.T) {
	s := newTestServer(t, 10)
	token := s.login(t, "nurse", "nurse123")

	code, env := s.do(t, http.MethodPost, "/api/v1/chat/messages", token, model.PostMessageRequest{Message: "Ready"})
	require.Equal(t, http.StatusCreated, code)
	var msg model.ChatMessage
	require.NoError(t, json.Unmarshal(env.Data, &msg))
	assert.Equal(t, "Emily Davis", msg.SenderName)
	assert.Equal(t, "5", msg.ID)

	code, env = s.do(t, http.MethodPost, "/api/v1/chat/messages", token, model.PostMessageRequest{Message: " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Message is required", env.Message)
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t, 10)

	code, _ := s.do(t, http.MethodGet, "/api/v1/health/live", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env := s.do(t, http.MethodGet, "/api/v1/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", env.Status)

	code, env = s.do(t, http.MethodGet, "/api/v1/policy", "", nil)
	require.Equal(t, http.StatusOK, code)
	var policy map[model.Module][]model.Role
	require.NoError(t, json.Unmarshal(env.Data, &policy))
	assert.Equal(t, []model.Role{model.RoleAdmin}, policy[model.ModuleStaff])

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hospiflow_http_requests_total")
}
