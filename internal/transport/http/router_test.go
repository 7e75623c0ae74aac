package httptransport

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bicns/internal/platform/metrics"
	dErrors "bicns/pkg/domain-errors"
	authmw "bicns/pkg/platform/middleware/auth"
	"bicns/pkg/platform/middleware/request"
	"bicns/pkg/requestcontext"
	"bicns/pkg/testutil"
)

var caller = common.HexToAddress("0x00000000000000000000000000000000000000a1")

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*authmw.JWTClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &authmw.JWTClaims{Caller: caller}, nil
}

type stubRoutes struct{}

func (stubRoutes) RegisterPublic(r chi.Router) {
	r.Get("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "id")))
	})
}

func (stubRoutes) Register(r chi.Router) {
	r.Put("/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(requestcontext.Caller(r.Context()).Hex()))
	})
}

func (stubRoutes) RegisterAdmin(r chi.Router) {
	r.Post("/admin/things", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
}

func newTestRouter(health map[string]HealthCheck) http.Handler {
	routes := stubRoutes{}
	return NewRouter(Config{
		Validator:  stubValidator{},
		AdminToken: "admin-secret",
		Metrics:    metrics.New(),
		Health:     health,
		Public:     []PublicRoutes{routes},
		Caller:     []CallerRoutes{routes},
		Admin:      []AdminRoutes{routes},
	})
}

func TestRouter(t *testing.T) {
	router := newTestRouter(nil)

	testutil.Given(t, "a public route", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/things/42"))
		testutil.Then(t, "it is served without a token", func(t *testing.T) {
			testutil.AssertStatusOK(t, rr)
			assert.Equal(t, "42", rr.Body.String())
			assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
		})
	})

	testutil.Given(t, "a caller route", func(t *testing.T) {
		testutil.When(t, "no token is sent", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPut, "/things/42"))
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, dErrors.CodeUnauthorized)
		})
		testutil.When(t, "a valid token is sent", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodPut, "/things/42")
			req.Header.Set("Authorization", "Bearer good")
			rr := testutil.DoRequest(router, req)
			testutil.AssertStatusOK(t, rr)
			assert.Equal(t, caller.Hex(), rr.Body.String())
		})
	})

	testutil.Given(t, "an admin route", func(t *testing.T) {
		testutil.When(t, "the caller token is used", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodPost, "/admin/things")
			req.Header.Set("Authorization", "Bearer good")
			testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusUnauthorized)
		})
		testutil.When(t, "the admin token is used", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodPost, "/admin/things")
			req.Header.Set("X-Admin-Token", "admin-secret")
			testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusCreated)
		})
	})

	testutil.Given(t, "the metrics endpoint", func(t *testing.T) {
		testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/things/1"))
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), "bicns_http_request_duration_seconds")
	})
}

func TestHealth(t *testing.T) {
	testutil.Given(t, "healthy dependencies", func(t *testing.T) {
		router := newTestRouter(map[string]HealthCheck{
			"store": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[HealthResponse](t, rr)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Checks["store"])
	})

	testutil.Given(t, "a failing dependency", func(t *testing.T) {
		router := newTestRouter(map[string]HealthCheck{
			"store": func(context.Context) error { return nil },
			"redis": func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		resp := testutil.UnmarshalResponse[HealthResponse](t, rr)
		require.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "connection refused", resp.Checks["redis"])
	})
}
