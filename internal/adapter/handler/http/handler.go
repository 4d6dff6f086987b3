package http

import (
	"errors"
	"net/http"

	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidReceipt = "The receipt is invalid"
	msgNotFound       = "Receipt not found"
	msgInternal       = "Internal server error"
)

type errorStatus struct {
	err     error
	status  int
	message string
}

// errorStatusMap is checked in order with errors.Is.
var errorStatusMap = []errorStatus{
	{domain.ErrDataNotFound, http.StatusNotFound, msgNotFound},

	{domain.ErrBadRequest, http.StatusBadRequest, msgInvalidReceipt},
	{domain.ErrMalformedInput, http.StatusBadRequest, msgInvalidReceipt},
	{domain.ErrInvalidReceipt, http.StatusBadRequest, msgInvalidReceipt},
	{domain.ErrConflictingData, http.StatusBadRequest, msgInvalidReceipt},

	{domain.ErrStoreUnavailable, http.StatusInternalServerError, msgInternal},
	{domain.ErrInternal, http.StatusInternalServerError, msgInternal},
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

func lookupStatus(err error) (int, string, bool) {
	for _, es := range errorStatusMap {
		if errors.Is(err, es.err) {
			return es.status, es.message, true
		}
	}
	return http.StatusInternalServerError, msgInternal, false
}

// handleValidationError rejects a request body that could not be bound
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	h.logger.Debug("request validation failed", zap.Error(err))
	ctx.String(http.StatusBadRequest, msgInvalidReceipt)
}

// handleError answers with the plain text message mapped to err
func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, message, ok := lookupStatus(err)
	if !ok {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.String(statusCode, message)
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, data)
}
