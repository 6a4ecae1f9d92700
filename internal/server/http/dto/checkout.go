package dto

// PaymentMethodCategory is a payment option offered by the widget.
type PaymentMethodCategory struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Asset      string `json:"asset,omitempty"`
}

// SessionResponse carries what the widget needs to load.
type SessionResponse struct {
	SessionID               string                  `json:"session_id,omitempty"`
	ClientToken             string                  `json:"client_token"`
	PaymentMethodCategories []PaymentMethodCategory `json:"payment_method_categories"`
}

// CompleteCheckoutRequest is posted after the widget authorized the purchase.
type CompleteCheckoutRequest struct {
	AuthorizationToken string `json:"authorization_token" form:"authorization_token" binding:"required"`
}
