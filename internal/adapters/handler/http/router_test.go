package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/core/workers"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	router, _ := newTestRouterWithDB(t)
	return router
}

func newTestRouterWithDB(t *testing.T) (*gin.Engine, *sqlx.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	db, err := repository.OpenDatabase(ctx, repository.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(ctx, db))

	users := repository.NewSQLUserRepository(db)
	snapshots := repository.NewSQLSnapshotRepository(db)
	worker := workers.NewPersistWorker(snapshots, 10*time.Millisecond)
	t.Cleanup(func() { _ = worker.Stop(context.Background()) })

	store := services.NewStateStore(snapshots, worker, services.SystemClock(time.UTC))
	tokens := services.NewTokenService("router-secret", "kanso-test", time.Hour, users)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(services.NewAuthService(users), tokens),
		HabitHandler:   adapterHTTP.NewHabitHandler(services.NewHabitService(store)),
		StatsHandler:   adapterHTTP.NewStatsHandler(services.NewStatsService(store)),
		DataHandler:    adapterHTTP.NewDataHandler(store),
		ProfileHandler: adapterHTTP.NewProfileHandler(services.NewProfileService(store)),
		TokenService:   tokens,
		DB:             db,
		StartTime:      time.Now(),
	})
	return router, db
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"database":"connected"`)
	assert.Contains(t, w.Body.String(), `"redis":"disabled"`)
}

func TestRouter_HealthReportsDegradedDatabase(t *testing.T) {
	router, db := newTestRouterWithDB(t)
	require.NoError(t, db.Close())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	assert.NotContains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"database":"unreachable"`)
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/habits", "/api/v1/stats", "/api/v1/achievements", "/api/v1/achievements/first_step", "/api/v1/data", "/api/v1/profile"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/habits", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
