// internal/handlers/pricing/pricing_handler.go
package pricing

import (
	"net/http"
	"strconv"

	"revenda-service/internal/domain/pricing"
	"revenda-service/internal/handlers/errmap"
	"revenda-service/internal/pkg/response"
	pricingsvc "revenda-service/internal/service/pricing"
	settlementsvc "revenda-service/internal/service/settlement"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	resolver    *pricingsvc.Resolver
	coordinator *settlementsvc.Coordinator
}

func NewPricingHandler(resolver *pricingsvc.Resolver, coordinator *settlementsvc.Coordinator) *PricingHandler {
	return &PricingHandler{
		resolver:    resolver,
		coordinator: coordinator,
	}
}

// ValidateBand checks a new or edited band without saving it
func (h *PricingHandler) ValidateBand(c *gin.Context) {
	var candidate pricing.BandCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	panel := c.Param("panel")
	if err := h.coordinator.ValidatePricingBand(c.Request.Context(), panel, candidate); err != nil {
		errmap.Respond(c, "failed to validate pricing band", err)
		return
	}

	response.Success(c, http.StatusOK, "pricing band is valid", candidate.Band(panel))
}

// Quote prices a reseller purchase without settling it
func (h *PricingHandler) Quote(c *gin.Context) {
	quantity, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid quantity", err)
		return
	}

	quote, err := h.resolver.Quote(c.Request.Context(), c.Param("panel"), quantity)
	if err != nil {
		errmap.Respond(c, "failed to quote purchase", err)
		return
	}

	response.Success(c, http.StatusOK, "quote computed", quote)
}

// MinimumQuantity returns the smallest purchase a panel accepts
func (h *PricingHandler) MinimumQuantity(c *gin.Context) {
	panel := c.Param("panel")
	minimum, err := h.resolver.MinimumQuantity(c.Request.Context(), panel)
	if err != nil {
		errmap.Respond(c, "failed to get minimum quantity", err)
		return
	}

	response.Success(c, http.StatusOK, "minimum quantity retrieved", gin.H{
		"panel":            panel,
		"minimum_quantity": minimum,
	})
}

// CoverageGaps lists quantities no active band prices
func (h *PricingHandler) CoverageGaps(c *gin.Context) {
	panel := c.Param("panel")
	gaps, err := h.resolver.CoverageGaps(c.Request.Context(), panel)
	if err != nil {
		errmap.Respond(c, "failed to check band coverage", err)
		return
	}

	response.Success(c, http.StatusOK, "band coverage checked", gin.H{
		"panel":    panel,
		"gaps":     gaps,
		"complete": len(gaps) == 0,
	})
}
