package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func staticChecker(name string, status Status) Checker {
	return NewCustomChecker(name, func(context.Context) (Status, string, interface{}) {
		return status, string(status), nil
	})
}

func TestHealthCheck_Check_AggregatesStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no checkers", nil, StatusHealthy},
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("1.0.0", zap.NewNop())
			for i, status := range tt.statuses {
				name := string(rune('a' + i))
				hc.Register(name, staticChecker(name, status))
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.want, response.Status)
			assert.Len(t, response.Checks, len(tt.statuses))
			assert.Equal(t, "1.0.0", response.Version)
		})
	}
}

func TestHealthCheck_Check_UsesCache(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	calls := 0
	hc.Register("counter", NewCustomChecker("counter", func(context.Context) (Status, string, interface{}) {
		calls++
		return StatusHealthy, "", nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())
	assert.Equal(t, 1, calls)

	hc.SetCacheTTL(0)
	hc.Check(context.Background())
	assert.Equal(t, 2, calls)
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(status Status) *gin.Engine {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("store", staticChecker("store", status))
		r := gin.New()
		r.GET("/health", hc.Handler())
		r.GET("/health/live", hc.LivenessHandler())
		r.GET("/health/ready", hc.ReadinessHandler())
		return r
	}

	get := func(r *gin.Engine, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	t.Run("healthy", func(t *testing.T) {
		r := newRouter(StatusHealthy)

		w := get(r, "/health")
		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Contains(t, body, "total_duration_ms")

		assert.Equal(t, http.StatusOK, get(r, "/health/ready").Code)
	})

	t.Run("degraded is not ready", func(t *testing.T) {
		r := newRouter(StatusDegraded)

		assert.Equal(t, http.StatusOK, get(r, "/health").Code)
		assert.Equal(t, http.StatusServiceUnavailable, get(r, "/health/ready").Code)
	})

	t.Run("unhealthy", func(t *testing.T) {
		r := newRouter(StatusUnhealthy)

		assert.Equal(t, http.StatusServiceUnavailable, get(r, "/health").Code)
		assert.Equal(t, http.StatusOK, get(r, "/health/live").Code)
	})
}

func TestPingChecker(t *testing.T) {
	ok := NewPingChecker("store", pingFunc(func(context.Context) error { return nil }))
	failing := NewPingChecker("store", pingFunc(func(context.Context) error { return errors.New("connection refused") }))

	assert.Equal(t, StatusHealthy, ok.Check(context.Background()).Status)

	check := failing.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.Equal(t, "connection refused", check.Message)
}

func TestDirectoryChecker(t *testing.T) {
	dir := t.TempDir()

	t.Run("writable directory", func(t *testing.T) {
		check := NewDirectoryChecker("exports", dir).Check(context.Background())

		assert.Equal(t, StatusHealthy, check.Status)
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries, "probe file must be removed")
	})

	t.Run("missing directory", func(t *testing.T) {
		check := NewDirectoryChecker("exports", filepath.Join(dir, "later")).Check(context.Background())

		assert.Equal(t, StatusDegraded, check.Status)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		file := filepath.Join(dir, "plain")
		require.NoError(t, os.WriteFile(file, nil, 0o600))

		check := NewDirectoryChecker("exports", file).Check(context.Background())

		assert.Equal(t, StatusUnhealthy, check.Status)
	})
}

func TestCheck_MarshalJSON_DurationInMilliseconds(t *testing.T) {
	data, err := json.Marshal(Check{Name: "x", Status: StatusHealthy, Duration: 1500 * time.Millisecond})

	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration_ms":1500`)
}

func TestSQLChecker(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	check := NewSQLChecker(sqlDB).Check(context.Background())
	assert.Equal(t, StatusHealthy, check.Status)

	require.NoError(t, sqlDB.Close())
	check = NewSQLChecker(sqlDB).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
}
