package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/core/workers"
)

const testUserHeader = "X-Test-User"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type harness struct {
	router *gin.Engine
	repo   *repository.InMemorySnapshotRepository
	worker *workers.PersistWorker
	clock  *fakeClock
}

// newHarness wires the protected handlers over in-memory storage. The user id
// comes from a test header instead of a bearer token.
func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &fakeClock{now: time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)}
	repo := repository.NewInMemorySnapshotRepository()
	worker := workers.NewPersistWorker(repo, 10*time.Millisecond)
	t.Cleanup(func() { _ = worker.Stop(context.Background()) })

	store := services.NewStateStore(repo, worker, clock.Now)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if id := c.GetHeader(testUserHeader); id != "" {
			c.Set(middleware.ContextUserIDKey, id)
		}
		c.Next()
	})

	adapterHTTP.NewHabitHandler(services.NewHabitService(store)).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(services.NewStatsService(store)).RegisterRoutes(api)
	adapterHTTP.NewDataHandler(store).RegisterRoutes(api)
	adapterHTTP.NewProfileHandler(services.NewProfileService(store)).RegisterRoutes(api)

	return &harness{router: router, repo: repo, worker: worker, clock: clock}
}

func (h *harness) do(method, path, userID string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, "/api/v1"+path, body)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
