package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediconnect/config"
	"mediconnect/infras/jwt"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel/mocks"
	"mediconnect/internal/handlers/appointment"
	"mediconnect/internal/handlers/doctor"
	"mediconnect/internal/handlers/schedule"
	"mediconnect/internal/handlers/sweep"
	"mediconnect/permissions"
	"mediconnect/shared/account"
	"mediconnect/shared/cache/cachetest"
	"mediconnect/shared/constant"
	"mediconnect/transport/http/middleware"
	"mediconnect/transport/http/router"
)

// Handlers get nil services: every request below is answered by middleware or
// request validation before a service would be called.
func newServer(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "MediConnect"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.Metrics.Enable = true
	cfg.Metrics.Path = "/metrics"

	ot := mocks.NewOtel()
	redisCache, _ := cachetest.New(t)
	m := metrics.New()
	tokens := jwt.New(cfg)

	perms := permissions.Get()
	require.NotNil(t, perms)

	r := router.New(
		router.DomainHandlers{
			Doctor:      doctor.New(nil, nil, ot),
			Schedule:    schedule.New(nil, ot),
			Appointment: appointment.New(nil, nil, ot),
			Sweep:       sweep.New(nil, ot),
		},
		router.Middlewares{
			App:      middleware.NewAppMiddleware(ot, cfg, redisCache, m),
			AuthRole: middleware.NewAuthRoleMiddleware(tokens, ot, perms, cfg),
		},
		m,
		cfg,
	)

	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	return mux, tokens
}

func TestRoutes(t *testing.T) {
	server, tokens := newServer(t)

	token := func(role account.Role) string {
		signed, err := tokens.GenerateToken(account.Account{UserID: "u-1", Email: "user@clinic.test", Role: role, ProfileID: "p-1"})
		require.NoError(t, err)

		return "Bearer " + signed
	}

	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		body       string
		wantStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "unauthenticated", method: http.MethodGet, path: "/v1/appointments", wantStatus: http.StatusUnauthorized},
		{name: "patient on doctor route", method: http.MethodGet, path: "/v1/schedule", auth: token(account.RolePatient), wantStatus: http.StatusForbidden},
		{name: "pharmacy cannot book", method: http.MethodPost, path: "/v1/appointments", auth: token(account.RolePharmacy), body: "{}", wantStatus: http.StatusForbidden},
		{name: "patient reaches booking", method: http.MethodPost, path: "/v1/appointments", auth: token(account.RolePatient), body: "{}", wantStatus: http.StatusBadRequest},
		{name: "staff cannot complete", method: http.MethodPost, path: "/v1/appointments/apt-1/complete", auth: token(account.RoleStaff), wantStatus: http.StatusForbidden},
		{name: "sweep without key", method: http.MethodPost, path: "/v1/internal/sweeps/missed", wantStatus: http.StatusForbidden},
		{name: "unknown sweep with key", method: http.MethodPost, path: "/v1/internal/sweeps/everything", auth: "key", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))

			switch tt.auth {
			case "":
			case "key":
				req.Header.Set(constant.RequestHeaderAPIKey, "internal-key")
			default:
				req.Header.Set(constant.RequestHeaderAuthorization, tt.auth)
			}

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
