package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pricingHandler "revenda-service/internal/handlers/pricing"
	settlementHandler "revenda-service/internal/handlers/settlement"
	"revenda-service/internal/middleware"
	"revenda-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupRouter_RequiresToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRouter(r, &Handlers{
		SettlementHandler: settlementHandler.NewSettlementHandler(nil),
		PricingHandler:    pricingHandler.NewPricingHandler(nil, nil),
		AuthMiddleware:    middleware.NewAuthMiddleware(jwt.NewVerifier(nil, "auth", "revenda")),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/settlements/recharges"},
		{http.MethodPost, "/api/v1/settlements/commission-redemptions"},
		{http.MethodPost, "/api/v1/settlements/reseller-purchases"},
		{http.MethodGet, "/api/v1/settlements/runs"},
		{http.MethodPost, "/api/v1/pricing/panels/P2BRAS/bands/validate"},
		{http.MethodGet, "/api/v1/pricing/panels/P2BRAS/quote?quantity=10"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/settlements/runs", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
