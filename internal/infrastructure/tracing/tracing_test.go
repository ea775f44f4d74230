package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-profile-api/config"
)

func TestNew_Disabled(t *testing.T) {
	tp, err := New(context.Background(), config.Tracing{Enabled: false}, "svc")
	require.ErrorIs(t, err, ErrDisabled)
	assert.Nil(t, tp)
}

func TestNew_MissingEndpoint(t *testing.T) {
	tp, err := New(context.Background(), config.Tracing{Enabled: true}, "svc")
	require.Error(t, err)
	assert.Nil(t, tp)
}

func TestShouldTrace(t *testing.T) {
	assert.True(t, shouldTrace("/api/v1/users"))
	assert.False(t, shouldTrace("/api/v1/healthz"))
	assert.False(t, shouldTrace("/api/v1/metrics"))
}

func TestMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware("svc"))
	r.GET("/api/v1/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/users", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for path, want := range map[string]int{"/api/v1/healthz": http.StatusOK, "/api/v1/users": http.StatusNoContent} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
	}
}
