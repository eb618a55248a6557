package pricing

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"revenda-service/internal/domain/pricing"
	commissionsvc "revenda-service/internal/service/commission"
	pricingsvc "revenda-service/internal/service/pricing"
	settlementsvc "revenda-service/internal/service/settlement"
	"revenda-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	bands := testutil.NewInMemoryPricingBandStore(nil)
	bands.Add(pricing.Band{Panel: "P2BRAS", MinQuantity: 10, MaxQuantity: lo.ToPtr[int64](50), PricePerCredit: decimal.NewFromInt(1)})

	resolver := pricingsvc.NewResolver(bands, logger)
	coordinator := settlementsvc.NewCoordinator(
		testutil.NewInMemorySubscriptionStore(nil),
		testutil.NewInMemoryRechargeOptionStore(nil),
		testutil.NewInMemoryLedgerStore(nil),
		testutil.NewInMemoryResellerStore(nil),
		testutil.NewInMemoryRunStore(nil),
		resolver,
		commissionsvc.NewLedger(testutil.NewInMemoryCommissionStore(nil), logger),
		logger,
	)
	h := NewPricingHandler(resolver, coordinator)

	r := gin.New()
	r.POST("/pricing/panels/:panel/bands/validate", h.ValidateBand)
	r.GET("/pricing/panels/:panel/quote", h.Quote)
	r.GET("/pricing/panels/:panel/minimum", h.MinimumQuantity)
	r.GET("/pricing/panels/:panel/gaps", h.CoverageGaps)
	return r
}

func serve(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestValidateBand(t *testing.T) {
	r := newRouter(t)

	w := serve(r, http.MethodPost, "/pricing/panels/P2BRAS/bands/validate", gin.H{
		"min_quantity": 40, "max_quantity": 100, "price_per_credit": "0.90",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(r, http.MethodPost, "/pricing/panels/P2BRAS/bands/validate", gin.H{
		"min_quantity": 51, "price_per_credit": "0.90",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/pricing/panels/P2BRAS/bands/validate", gin.H{
		"min_quantity": 60, "max_quantity": 55, "price_per_credit": "0.90",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodPost, "/pricing/panels/P2BRAS/bands/validate", gin.H{
		"min_quantity": 0, "price_per_credit": "0.90",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"invalid_band"`)
}

func TestQuote(t *testing.T) {
	r := newRouter(t)

	w := serve(r, http.MethodGet, "/pricing/panels/P2BRAS/quote?quantity=20", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data pricing.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Data.Total.Equal(decimal.NewFromInt(20)))

	w = serve(r, http.MethodGet, "/pricing/panels/P2BRAS/quote?quantity=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodGet, "/pricing/panels/P2BRAS/quote?quantity=51", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodGet, "/pricing/panels/%20P2BRAS%20/quote?quantity=20", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"panel":"P2BRAS"`)
}

func TestMinimumAndGaps(t *testing.T) {
	r := newRouter(t)

	w := serve(r, http.MethodGet, "/pricing/panels/P2BRAS/minimum", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"minimum_quantity":10`)

	w = serve(r, http.MethodGet, "/pricing/panels/P2BRAS/gaps", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"complete":false`)
	assert.Contains(t, w.Body.String(), `"from":51`)

	w = serve(r, http.MethodGet, "/pricing/panels/NONE/minimum", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
