package dto

import "time"

// ImportOrderResponse reports the outcome of an order snapshot import.
type ImportOrderResponse struct {
	ID      int64  `json:"id"`
	UUID    string `json:"uuid"`
	Created bool   `json:"created"`
}

// CaptureRequest captures the outstanding balance when Amount is empty.
type CaptureRequest struct {
	Amount string `json:"amount"`
}

// CaptureResponse describes the capture Klarna registered.
type CaptureResponse struct {
	CaptureID      string `json:"capture_id"`
	CapturedAmount int64  `json:"captured_amount"`
}

// RefundRequest refunds Amount in order currency.
type RefundRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// PaymentResponse is a local payment record.
type PaymentResponse struct {
	ID             int64     `json:"id"`
	RemoteID       string    `json:"remote_id"`
	Gateway        string    `json:"gateway"`
	State          string    `json:"state"`
	Amount         string    `json:"amount"`
	RefundedAmount string    `json:"refunded_amount"`
	Currency       string    `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
}

// ErrorResponse is returned for client errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
