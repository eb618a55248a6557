package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"revenda-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func withIdentity(id int64, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity_id", id)
		c.Set("roles", roles)
		c.Next()
	}
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.New(core)), withIdentity(9, jwt.RoleAdmin))
	r.GET("/boom", func(c *gin.Context) { panic("ledger offline") })

	w := serve(r, http.MethodGet, "/boom")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal_error", body["code"])
	assert.NotContains(t, w.Body.String(), "ledger offline")

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/boom", fields["route"])
	assert.Equal(t, int64(9), fields["identity_id"])
}

func TestRecoveryMiddleware_AfterWrite(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.New(core)))
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusAccepted, "partial")
		panic("after write")
	})

	w := serve(r, http.MethodGet, "/late")

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "partial", w.Body.String())
	assert.Equal(t, 1, logs.Len())
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(LoggingMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusUnprocessableEntity) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(r, http.MethodGet, "/ok")
	serve(r, http.MethodGet, "/bad")
	serve(r, http.MethodGet, "/fail")

	require.Equal(t, 3, logs.Len())
	all := logs.All()
	assert.Equal(t, "request handled", all[0].Message)
	assert.Equal(t, zap.InfoLevel, all[0].Level)
	assert.Equal(t, "request rejected", all[1].Message)
	assert.Equal(t, zap.WarnLevel, all[1].Level)
	assert.Equal(t, "request failed", all[2].Message)
	assert.Equal(t, zap.ErrorLevel, all[2].Level)
}

func TestRequireRole(t *testing.T) {
	m := NewAuthMiddleware(nil)

	tests := []struct {
		name   string
		roles  []string
		status int
	}{
		{"admin passes", []string{jwt.RoleAdmin}, http.StatusOK},
		{"reseller passes", []string{jwt.RoleReseller}, http.StatusOK},
		{"other role rejected", []string{"customer"}, http.StatusForbidden},
		{"no roles rejected", nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(withIdentity(3, tt.roles...))
			r.GET("/p", m.RequireRole(jwt.RoleAdmin, jwt.RoleReseller), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			assert.Equal(t, tt.status, serve(r, http.MethodGet, "/p").Code)
		})
	}
}

func TestIsAdmin(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("roles", []string{jwt.RoleSuperAdmin})
	assert.True(t, IsAdmin(c))

	c.Set("roles", []string{jwt.RoleReseller})
	assert.False(t, IsAdmin(c))
	assert.True(t, HasRole(c, jwt.RoleReseller))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodOptions, "/x")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
