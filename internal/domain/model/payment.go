package model

import "time"

// PaymentState describes local payment lifecycle.
type PaymentState string

const (
	PaymentStateAuthorization       PaymentState = "authorization"
	PaymentStateAuthorizationVoided PaymentState = "authorization_voided"
	PaymentStateCompleted           PaymentState = "completed"
	PaymentStatePartiallyRefunded   PaymentState = "partially_refunded"
	PaymentStateRefunded            PaymentState = "refunded"
)

// Payment is the local record mirroring a remote Klarna order.
type Payment struct {
	ID             int64
	OrderID        int64
	Gateway        string
	RemoteID       string
	State          PaymentState
	Amount         Price
	RefundedAmount Price
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
