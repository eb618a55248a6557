// internal/handlers/settlement/settlement_handler.go
package settlement

import (
	"errors"
	"net/http"

	"revenda-service/internal/domain/settlement"
	"revenda-service/internal/handlers/errmap"
	"revenda-service/internal/middleware"
	"revenda-service/internal/pkg/response"
	service "revenda-service/internal/service/settlement"

	"github.com/gin-gonic/gin"
)

type SettlementHandler struct {
	coordinator *service.Coordinator
}

func NewSettlementHandler(coordinator *service.Coordinator) *SettlementHandler {
	return &SettlementHandler{
		coordinator: coordinator,
	}
}

// SettleRecharge applies a paid recharge to every active point of a customer
func (h *SettlementHandler) SettleRecharge(c *gin.Context) {
	var req settlement.RechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	result, err := h.coordinator.SettleRecharge(c.Request.Context(), req)
	if err != nil {
		errmap.Respond(c, "failed to settle recharge", err)
		return
	}

	response.Success(c, http.StatusOK, "recharge settled", result)
}

// SettleCommissionRedemption converts commission into months or a payout
func (h *SettlementHandler) SettleCommissionRedemption(c *gin.Context) {
	var req settlement.RedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	result, err := h.coordinator.SettleCommissionRedemption(c.Request.Context(), req)
	if err != nil {
		errmap.Respond(c, "failed to settle commission redemption", err)
		return
	}

	response.Success(c, http.StatusOK, "commission redemption settled", result)
}

// SettleResellerPurchase sells credits to a reseller. Resellers may only buy
// for their own account.
func (h *SettlementHandler) SettleResellerPurchase(c *gin.Context) {
	var req settlement.ResellerPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if id, ok := middleware.GetIdentityID(c); ok && !middleware.IsAdmin(c) && id != req.ResellerID {
		response.Error(c, http.StatusForbidden, "insufficient permissions",
			errors.New("resellers can only purchase for their own account"))
		return
	}

	result, err := h.coordinator.SettleResellerPurchase(c.Request.Context(), req)
	if err != nil {
		errmap.Respond(c, "failed to settle reseller purchase", err)
		return
	}

	response.Success(c, http.StatusOK, "reseller purchase settled", result)
}

// ListRuns lists journaled settlement runs, failed ones by default
func (h *SettlementHandler) ListRuns(c *gin.Context) {
	var filters settlement.RunListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	runs, err := h.coordinator.Runs(c.Request.Context(), filters)
	if err != nil {
		errmap.Respond(c, "failed to list settlement runs", err)
		return
	}

	response.Success(c, http.StatusOK, "settlement runs retrieved", gin.H{
		"runs":  runs,
		"count": len(runs),
	})
}

// GetRun retrieves one settlement run
func (h *SettlementHandler) GetRun(c *gin.Context) {
	run, err := h.coordinator.Run(c.Request.Context(), c.Param("id"))
	if err != nil {
		errmap.Respond(c, "failed to get settlement run", err)
		return
	}

	response.Success(c, http.StatusOK, "settlement run retrieved", run)
}
