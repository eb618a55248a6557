// internal/handlers/errmap/errmap.go
package errmap

import (
	"errors"
	"net/http"

	"revenda-service/internal/domain/pricing"
	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"
	"revenda-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Respond writes err using the status its kind maps to. message is used for
// unexpected errors only.
func Respond(c *gin.Context, message string, err error) {
	var (
		failure    *settlement.StepFailure
		overlap    *pricing.OverlapError
		validation *xerrors.ValidationError
	)

	switch {
	case errors.As(err, &failure):
		response.Error(c, http.StatusInternalServerError, "settlement step failed", err, failure)
	case errors.As(err, &overlap):
		response.Error(c, http.StatusConflict, "pricing band overlaps an existing band", err, overlap)
	case errors.As(err, &validation):
		response.Fail(c, http.StatusUnprocessableEntity, validation.Code, validation.Message, err, gin.H{"code": validation.Code})
	case errors.Is(err, xerrors.ErrNotFound):
		response.Error(c, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, xerrors.ErrConflict):
		response.Error(c, http.StatusConflict, "request conflicts with one in progress", err)
	case errors.Is(err, xerrors.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, "invalid request", err)
	default:
		response.Error(c, http.StatusInternalServerError, message, err)
	}
}
