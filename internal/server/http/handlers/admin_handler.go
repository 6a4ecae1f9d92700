package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/server/http/dto"
)

// AdminHandler exposes order import and order management.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Import handles PUT /admin/orders/:id.
func (h *AdminHandler) Import(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed order"})
		return
	}
	order.ID = orderID

	created, err := h.facade.ImportOrder(c.Request.Context(), &order)
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ImportOrderResponse{ID: order.ID, UUID: order.UUID, Created: created})
}

// Capture handles POST /admin/orders/:id/capture.
func (h *AdminHandler) Capture(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	var req dto.CaptureRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed capture request"})
			return
		}
	}

	var amount *model.Price
	if req.Amount != "" {
		p, err := model.NewPrice(req.Amount, "")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
			return
		}
		amount = &p
	}

	capture, err := h.facade.Capture(c.Request.Context(), orderID, amount, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CaptureResponse{CaptureID: capture.CaptureID, CapturedAmount: capture.CapturedAmount})
}

// Refund handles POST /admin/orders/:id/refund.
func (h *AdminHandler) Refund(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if key == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: IdempotencyKeyHeader + " header is required"})
		return
	}
	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "amount is required"})
		return
	}
	amount, err := model.NewPrice(req.Amount, "")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.facade.Refund(c.Request.Context(), orderID, amount, key); err != nil {
		writeError(c, err)
		return
	}
	c.Header(IdempotencyKeyHeader, key)
	c.Status(http.StatusCreated)
}

// Void handles POST /admin/orders/:id/void.
func (h *AdminHandler) Void(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.Void(c.Request.Context(), orderID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Release handles POST /admin/orders/:id/release.
func (h *AdminHandler) Release(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	if err := h.facade.Release(c.Request.Context(), orderID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remote handles GET /admin/orders/:id/remote.
func (h *AdminHandler) Remote(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	remote, err := h.facade.RemoteOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, remote)
}

// Payments handles GET /admin/orders/:id/payments.
func (h *AdminHandler) Payments(c *gin.Context) {
	orderID, ok := pathOrderID(c, "id")
	if !ok {
		return
	}
	payments, err := h.facade.Payments(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(payments) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		resp = append(resp, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:             p.ID,
		RemoteID:       p.RemoteID,
		Gateway:        p.Gateway,
		State:          string(p.State),
		Amount:         p.Amount.Number.String(),
		RefundedAmount: p.RefundedAmount.Number.String(),
		Currency:       p.Amount.Currency,
		CreatedAt:      p.CreatedAt,
	}
}
