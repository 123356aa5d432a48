package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	dbadapter "cmms/internal/adapter/db"
	"cmms/internal/adapter/http/handlers"
	"cmms/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthRouter(db *sqlx.DB, info handlers.HealthInfo) *gin.Engine {
	handler := handlers.NewHealthHandler(db, info)

	router := gin.New()
	api := router.Group("/api", middleware.LanguageMiddleware())
	api.GET("/health", handler.CheckHealth)
	api.GET("/health/report", handler.CheckHealthReport)
	return router
}

func TestHealthHandler_CheckHealth(t *testing.T) {
	db, err := dbadapter.ConnectSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tests := []struct {
		name       string
		db         *sqlx.DB
		wantCode   int
		wantStatus string
	}{
		{name: "database reachable", db: db, wantCode: http.StatusOK, wantStatus: handlers.StatusOk},
		{name: "no database", db: nil, wantCode: http.StatusServiceUnavailable, wantStatus: handlers.StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newHealthRouter(tt.db, handlers.HealthInfo{Version: "1.2.0"})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			require.Equal(t, tt.wantCode, rec.Code)
			var body handlers.HealthSummary
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "1.2.0", body.Version)
			assert.NotEmpty(t, body.ServerTime)
		})
	}
}

func TestHealthHandler_CheckHealthReport(t *testing.T) {
	db, err := dbadapter.ConnectSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	router := newHealthRouter(db, handlers.HealthInfo{MailBackend: "console", MediaRoot: t.TempDir()})

	req := httptest.NewRequest(http.MethodGet, "/api/health/report", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handlers.HealthReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dev", body.Version)
	assert.Equal(t, "en", body.Language)
	assert.Equal(t, handlers.HealthComponents{
		Database: handlers.StatusOk,
		Driver:   dbadapter.DriverSQLite,
		Media:    handlers.StatusOk,
		Mail:     "console",
	}, body.Components)
}

func TestHealthHandler_ReportsMissingMediaRoot(t *testing.T) {
	router := newHealthRouter(nil, handlers.HealthInfo{MediaRoot: "/nonexistent/cmms-media"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health/report", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body handlers.HealthReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, handlers.StatusDown, body.Status)
	assert.Equal(t, handlers.StatusDown, body.Components.Database)
	assert.Equal(t, handlers.StatusDown, body.Components.Media)
	assert.Empty(t, body.Components.Driver)
}
