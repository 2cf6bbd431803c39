package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ftth-net.id/dashboard/internal/handlers"
	"ftth-net.id/dashboard/internal/middleware"
	"ftth-net.id/dashboard/internal/session"
	"ftth-net.id/dashboard/internal/topology"
	"ftth-net.id/dashboard/internal/traffic"
	"ftth-net.id/dashboard/pkg/backend"
	"ftth-net.id/dashboard/pkg/logger"
)

func testRouter() http.Handler {
	api := backend.New("http://127.0.0.1:1", time.Second)
	sessions := session.NewStore("0123456789abcdef0123456789abcdef", false)
	h := handlers.New(api, sessions, traffic.NewPoller(api, time.Minute, logger.Nop()),
		topology.NewMemoryStore(topology.DraftTTL), logger.Nop())
	return newRouter(h, middleware.NewSessionGate(sessions, logger.Nop()), middleware.NewRateLimiter(nil, 5, time.Minute))
}

func TestHealthIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestAdminRoutesNeedSession(t *testing.T) {
	router := testRouter()
	for _, path := range []string{"/admin/layout", "/admin/routers", "/admin/traffic", "/admin/topology"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"redirect":"/login"`, path)
	}
}

func TestSessionWithoutCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
}
