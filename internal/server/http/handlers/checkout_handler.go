package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/server/http/dto"
)

// CheckoutHandler serves session creation and checkout completion.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Session handles POST /checkout/:order/payment/session.
func (h *CheckoutHandler) Session(c *gin.Context) {
	orderID, ok := pathOrderID(c, "order")
	if !ok {
		return
	}

	session, err := h.facade.StartSession(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(session))
}

// Return handles POST /checkout/:order/payment/return.
func (h *CheckoutHandler) Return(c *gin.Context) {
	orderID, ok := pathOrderID(c, "order")
	if !ok {
		return
	}
	var req dto.CompleteCheckoutRequest
	if err := c.ShouldBind(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "authorization_token is required"})
		return
	}

	payment, err := h.facade.CompleteCheckout(c.Request.Context(), orderID, req.AuthorizationToken)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*payment))
}

func toSessionResponse(s *klarna.Session) dto.SessionResponse {
	resp := dto.SessionResponse{
		SessionID:               s.SessionID,
		ClientToken:             s.ClientToken,
		PaymentMethodCategories: make([]dto.PaymentMethodCategory, 0, len(s.PaymentMethodCategories)),
	}
	for _, pmc := range s.PaymentMethodCategories {
		resp.PaymentMethodCategories = append(resp.PaymentMethodCategories, dto.PaymentMethodCategory{
			Identifier: pmc.Identifier,
			Name:       pmc.Name,
			Asset:      pmc.AssetURLs.Standard,
		})
	}
	return resp
}
