package http

import (
	"errors"
	"net/http"

	"github.com/MikeRez0/receiptprocessor/internal/adapter/metrics"
	"github.com/MikeRez0/receiptprocessor/internal/core/domain"
	"github.com/MikeRez0/receiptprocessor/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	Handler
	service port.Service
	metrics *metrics.Metrics
}

func NewReceiptHandler(service port.Service, m *metrics.Metrics, logger *zap.Logger) (*ReceiptHandler, error) {
	return &ReceiptHandler{
		Handler: *NewHandler(logger),
		service: service,
		metrics: m,
	}, nil
}

type itemRequest struct {
	ShortDescription string `json:"shortDescription" binding:"required,notblank,shortdesc"`
	Price            string `json:"price" binding:"required,amount"`
}

type receiptRequest struct {
	ID           string        `json:"id"`
	Retailer     string        `json:"retailer" binding:"required,notblank"`
	PurchaseDate string        `json:"purchaseDate" binding:"required,isodate"`
	PurchaseTime string        `json:"purchaseTime" binding:"required,clock"`
	Total        string        `json:"total" binding:"required,amount"`
	Items        []itemRequest `json:"items" binding:"required,dive"`
}

func (r receiptRequest) toDomain() *domain.Receipt {
	receipt := &domain.Receipt{
		ID:           r.ID,
		Retailer:     r.Retailer,
		PurchaseDate: r.PurchaseDate,
		PurchaseTime: r.PurchaseTime,
		Total:        r.Total,
		Items:        make([]domain.Item, 0, len(r.Items)),
	}
	for _, i := range r.Items {
		receipt.Items = append(receipt.Items, domain.Item{
			ShortDescription: i.ShortDescription,
			Price:            i.Price,
		})
	}
	return receipt
}

type processResponse struct {
	ID string `json:"id"`
}

type pointsResponse struct {
	Points int64 `json:"points"`
}

// ProcessReceipt godoc
//
//	@Summary	Score and store a receipt
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	processResponse
//	@Failure	400	{string}	string
//	@Router		/receipts/process [post]
func (rh *ReceiptHandler) ProcessReceipt(ctx *gin.Context) {
	req := receiptRequest{}
	err := ctx.ShouldBindJSON(&req)
	if err != nil {
		rh.metrics.ObserveReceipt(metrics.ResultRejected, 0)
		rh.handleValidationError(ctx, err)
		return
	}

	receipt, err := rh.service.ProcessReceipt(ctx, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			rh.metrics.ObserveReceipt(metrics.ResultFailed, 0)
		} else {
			rh.metrics.ObserveReceipt(metrics.ResultRejected, 0)
		}
		rh.logger.Debug("receipt rejected", zap.Error(err))
		// every submission failure is reported the same way
		ctx.String(http.StatusBadRequest, msgInvalidReceipt)
		return
	}

	rh.metrics.ObserveReceipt(metrics.ResultStored, receipt.Points)
	rh.handleSuccess(ctx, processResponse{ID: receipt.ID})
}

// GetPoints godoc
//
//	@Summary	Points awarded to a stored receipt
//	@Produce	json
//	@Param		id	path		string	true	"Receipt ID"
//	@Success	200	{object}	pointsResponse
//	@Failure	404	{string}	string
//	@Router		/receipts/{id}/points [get]
func (rh *ReceiptHandler) GetPoints(ctx *gin.Context) {
	points, err := rh.service.GetPoints(ctx, ctx.Param("id"))
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, pointsResponse{Points: points})
}

// GetReceipt godoc
//
//	@Summary	Stored receipt with its points
//	@Produce	json
//	@Param		id	path		string	true	"Receipt ID"
//	@Success	200	{object}	domain.Receipt
//	@Failure	404	{string}	string
//	@Router		/receipts/{id} [get]
func (rh *ReceiptHandler) GetReceipt(ctx *gin.Context) {
	receipt, err := rh.service.GetReceipt(ctx, ctx.Param("id"))
	if err != nil {
		rh.handleError(ctx, err)
		return
	}

	rh.handleSuccess(ctx, receipt)
}
