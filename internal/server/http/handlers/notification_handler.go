package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/klarnapay/internal/app"
	"github.com/polkiloo/klarnapay/internal/server/http/dto"
)

// NotificationHandler receives Klarna push and fraud notifications.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// Notify handles POST /payment/notify/:gateway.
// Push notifications carry only the query string; fraud decisions add a JSON body.
func (h *NotificationHandler) Notify(c *gin.Context) {
	var query dto.NotificationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "commerce_order is required"})
		return
	}

	var body dto.NotificationRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed notification body"})
			return
		}
	}

	remoteID := query.KlarnaOrderID
	if remoteID == "" {
		remoteID = body.OrderID
	}

	result, err := h.facade.Notify(c.Request.Context(), app.Notification{
		GatewayID:     c.Param("gateway"),
		OrderID:       query.Order,
		Signature:     query.Signature,
		RemoteOrderID: remoteID,
		EventType:     body.EventType,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.String(http.StatusOK, string(result))
}
