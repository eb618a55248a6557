// internal/app/router.go
package app

import (
	pricingHandler "revenda-service/internal/handlers/pricing"
	settlementHandler "revenda-service/internal/handlers/settlement"
	"revenda-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	SettlementHandler *settlementHandler.SettlementHandler
	PricingHandler    *pricingHandler.PricingHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// ==================== Settlements ====================
	settlements := api.Group("/settlements")
	{
		admin := settlements.Group("")
		admin.Use(h.AuthMiddleware.AdminOnly()...)
		admin.POST("/recharges", h.SettlementHandler.SettleRecharge)
		admin.POST("/commission-redemptions", h.SettlementHandler.SettleCommissionRedemption)
		admin.GET("/runs", h.SettlementHandler.ListRuns)
		admin.GET("/runs/:id", h.SettlementHandler.GetRun)

		resellers := settlements.Group("")
		resellers.Use(h.AuthMiddleware.AdminOrReseller()...)
		resellers.POST("/reseller-purchases", h.SettlementHandler.SettleResellerPurchase)
	}

	// ==================== Pricing ====================
	panels := api.Group("/pricing/panels/:panel")
	{
		admin := panels.Group("")
		admin.Use(h.AuthMiddleware.AdminOnly()...)
		admin.POST("/bands/validate", h.PricingHandler.ValidateBand)
		admin.GET("/gaps", h.PricingHandler.CoverageGaps)

		shared := panels.Group("")
		shared.Use(h.AuthMiddleware.AdminOrReseller()...)
		shared.GET("/quote", h.PricingHandler.Quote)
		shared.GET("/minimum", h.PricingHandler.MinimumQuantity)
	}
}
