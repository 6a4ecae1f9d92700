package dto

// NotificationRequest is the optional body Klarna sends for fraud decisions.
type NotificationRequest struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
	OrderID   string `json:"order_id"`
}

// NotificationQuery holds the signed callback parameters.
type NotificationQuery struct {
	Order         int64  `form:"commerce_order" binding:"required"`
	Signature     string `form:"signature"`
	KlarnaOrderID string `form:"klarna_order_id"`
}
