package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/openlodge/clubadmin/internal/config"
	"github.com/openlodge/clubadmin/internal/domain/model"
	pkgAuth "github.com/openlodge/clubadmin/internal/pkg/auth"
	"github.com/openlodge/clubadmin/internal/pkg/metrics"
	"github.com/openlodge/clubadmin/internal/server/http/handlers"
	testhelpers "github.com/openlodge/clubadmin/internal/test"
)

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newEngine(t *testing.T, facade testhelpers.ConsoleFacadeStub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{RateLimitPerSecond: 0}
	return Setup(facade, healthStub{}, cfg, metrics.New(), logger)
}

func TestSetupPublicRoutes(t *testing.T) {
	engine := newEngine(t, testhelpers.ConsoleFacadeStub{})

	body, _ := json.Marshal(map[string]string{"email": "board@example.org", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for login, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for healthz, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics, got %d", resp.Code)
	}
}

func TestSetupHealthzDegraded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	engine := Setup(testhelpers.ConsoleFacadeStub{}, healthStub{err: context.DeadlineExceeded}, &config.Config{}, metrics.New(), logger)

	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when storage is down, got %d", resp.Code)
	}
}

func TestSetupRequiresAuth(t *testing.T) {
	engine := newEngine(t, testhelpers.ConsoleFacadeStub{})

	paths := []string{"/api/admin/users", "/api/admin/money", "/api/admin/posts", "/api/admin/media", "/api/expensereport"}
	for _, path := range paths {
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token, got %d", path, resp.Code)
		}
	}
}

func TestSetupStaffGate(t *testing.T) {
	facade := testhelpers.ConsoleFacadeStub{ParseTokenFn: func(string) (pkgAuth.Claims, error) {
		return pkgAuth.Claims{MemberID: 9, Role: model.RoleMember}, nil
	}}
	engine := newEngine(t, facade)

	// plain members may use the reimbursement endpoints
	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/expensereport", nil)
	req.Header.Set("Authorization", "Bearer token")
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for own expenses, got %d", resp.Code)
	}

	// but not the admin console
	resp = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member on admin route, got %d", resp.Code)
	}
}

func TestSetupAdminGateOnMemberCreate(t *testing.T) {
	facade := testhelpers.ConsoleFacadeStub{ParseTokenFn: func(string) (pkgAuth.Claims, error) {
		return pkgAuth.Claims{MemberID: 2, Role: model.RoleStaff}, nil
	}}
	engine := newEngine(t, facade)

	body, _ := json.Marshal(map[string]string{"email": "n@example.org", "name": "N", "password": "pw"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff creating members, got %d", resp.Code)
	}

	// staff may still read the roster
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff listing members, got %d", resp.Code)
	}
}

func TestSetupAdminRoutes(t *testing.T) {
	engine := newEngine(t, testhelpers.ConsoleFacadeStub{})

	routes := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/admin/money", http.StatusOK},
		{http.MethodGet, "/api/admin/money/summary?member_id=1", http.StatusOK},
		{http.MethodGet, "/api/admin/posts", http.StatusOK},
		{http.MethodGet, "/api/admin/media", http.StatusOK},
		{http.MethodPost, "/api/admin/posts/1/publish", http.StatusOK},
	}
	for _, tt := range routes {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		req.Header.Set("Authorization", "Bearer token")
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		if resp.Code != tt.status {
			t.Fatalf("expected %d for %s %s, got %d", tt.status, tt.method, tt.path, resp.Code)
		}
	}
}

var _ handlers.ConsoleFacade = testhelpers.ConsoleFacadeStub{}
