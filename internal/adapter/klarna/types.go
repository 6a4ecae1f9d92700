package klarna

import "time"

// OrderStatus is the remote order lifecycle state.
type OrderStatus string

const (
	OrderStatusAuthorized   OrderStatus = "AUTHORIZED"
	OrderStatusPartCaptured OrderStatus = "PART_CAPTURED"
	OrderStatusCaptured     OrderStatus = "CAPTURED"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
	OrderStatusExpired      OrderStatus = "EXPIRED"
	OrderStatusClosed       OrderStatus = "CLOSED"
)

// FraudStatus is Klarna risk assessment attached to an authorization.
type FraudStatus string

const (
	FraudStatusAccepted FraudStatus = "ACCEPTED"
	FraudStatusPending  FraudStatus = "PENDING"
	FraudStatusRejected FraudStatus = "REJECTED"
)

// OrderLineTypeShippingFee tags order lines derived from shipments.
const OrderLineTypeShippingFee = "shipping_fee"

// OrderLine is a single line of session, order or capture payloads.
type OrderLine struct {
	Type           string `json:"type,omitempty"`
	Reference      string `json:"reference,omitempty"`
	Name           string `json:"name"`
	Quantity       int64  `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	TaxRate        int64  `json:"tax_rate,omitempty"`
	TotalAmount    int64  `json:"total_amount"`
	TotalTaxAmount int64  `json:"total_tax_amount,omitempty"`
}

// Address is billing or shipping address in Klarna format.
type Address struct {
	Email            string `json:"email,omitempty"`
	GivenName        string `json:"given_name,omitempty"`
	FamilyName       string `json:"family_name,omitempty"`
	OrganizationName string `json:"organization_name,omitempty"`
	StreetAddress    string `json:"street_address,omitempty"`
	StreetAddress2   string `json:"street_address2,omitempty"`
	City             string `json:"city,omitempty"`
	PostalCode       string `json:"postal_code,omitempty"`
	Region           string `json:"region,omitempty"`
	Country          string `json:"country,omitempty"`
}

// MerchantURLs are callbacks Klarna uses after authorization.
type MerchantURLs struct {
	Confirmation string `json:"confirmation,omitempty"`
	Notification string `json:"notification,omitempty"`
}

// Options customise the payment widget appearance.
type Options struct {
	ColorButton     string `json:"color_button,omitempty"`
	ColorButtonText string `json:"color_button_text,omitempty"`
	ColorBorder     string `json:"color_border,omitempty"`
	ColorText       string `json:"color_text,omitempty"`
}

// OrderPayload is the body accepted by the authorize-with-token endpoint:
// either *SessionRequest or *OrderRequest.
type OrderPayload interface {
	orderPayload()
}

// SessionRequest is the payload for creating and updating payment sessions.
type SessionRequest struct {
	PurchaseCountry  string        `json:"purchase_country,omitempty"`
	PurchaseCurrency string        `json:"purchase_currency"`
	Locale           string        `json:"locale,omitempty"`
	OrderAmount      int64         `json:"order_amount"`
	OrderTaxAmount   int64         `json:"order_tax_amount"`
	OrderLines       []OrderLine   `json:"order_lines"`
	MerchantURLs     *MerchantURLs `json:"merchant_urls,omitempty"`
	BillingAddress   *Address      `json:"billing_address,omitempty"`
	ShippingAddress  *Address      `json:"shipping_address,omitempty"`
	Options          *Options      `json:"options,omitempty"`
}

func (*SessionRequest) orderPayload() {}

// OrderRequest is a full order-create payload with merchant references.
type OrderRequest struct {
	SessionRequest
	MerchantReference1 string `json:"merchant_reference1,omitempty"`
	MerchantReference2 string `json:"merchant_reference2,omitempty"`
	AutoCapture        bool   `json:"auto_capture,omitempty"`
}

// AssetURLs point at payment method category artwork.
type AssetURLs struct {
	Descriptive string `json:"descriptive,omitempty"`
	Standard    string `json:"standard,omitempty"`
}

// PaymentMethodCategory is offered to the customer in the widget.
type PaymentMethodCategory struct {
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	AssetURLs  AssetURLs `json:"asset_urls"`
}

// SessionCreated is returned by session creation.
type SessionCreated struct {
	SessionID               string                  `json:"session_id"`
	ClientToken             string                  `json:"client_token"`
	PaymentMethodCategories []PaymentMethodCategory `json:"payment_method_categories,omitempty"`
}

// Session is the canonical session read shape.
type Session struct {
	SessionRequest
	SessionID               string                  `json:"session_id,omitempty"`
	ClientToken             string                  `json:"client_token,omitempty"`
	Status                  string                  `json:"status,omitempty"`
	ExpiresAt               *time.Time              `json:"expires_at,omitempty"`
	PaymentMethodCategories []PaymentMethodCategory `json:"payment_method_categories,omitempty"`
}

// AuthorizedPaymentMethod describes what the customer picked.
type AuthorizedPaymentMethod struct {
	Type                 string `json:"type"`
	NumberOfDays         int    `json:"number_of_days,omitempty"`
	NumberOfInstallments int    `json:"number_of_installments,omitempty"`
}

// AuthorizedOrder is returned by order authorization.
type AuthorizedOrder struct {
	OrderID                 string                   `json:"order_id"`
	RedirectURL             string                   `json:"redirect_url,omitempty"`
	FraudStatus             FraudStatus              `json:"fraud_status"`
	AuthorizedPaymentMethod *AuthorizedPaymentMethod `json:"authorized_payment_method,omitempty"`
}

// CaptureRequest is the payload for capturing authorized funds.
type CaptureRequest struct {
	CapturedAmount int64       `json:"captured_amount"`
	Description    string      `json:"description,omitempty"`
	OrderLines     []OrderLine `json:"order_lines,omitempty"`
}

// Capture is a capture record listed on the remote order.
type Capture struct {
	CaptureID       string      `json:"capture_id"`
	KlarnaReference string      `json:"klarna_reference,omitempty"`
	CapturedAmount  int64       `json:"captured_amount"`
	CapturedAt      *time.Time  `json:"captured_at,omitempty"`
	Description     string      `json:"description,omitempty"`
	OrderLines      []OrderLine `json:"order_lines,omitempty"`
}

// RefundRequest is the payload for refunding captured funds.
type RefundRequest struct {
	RefundedAmount int64       `json:"refunded_amount"`
	Description    string      `json:"description,omitempty"`
	OrderLines     []OrderLine `json:"order_lines,omitempty"`
}

// Refund is a refund record listed on the remote order.
type Refund struct {
	RefundID       string     `json:"refund_id"`
	RefundedAmount int64      `json:"refunded_amount"`
	RefundedAt     *time.Time `json:"refunded_at,omitempty"`
	Description    string     `json:"description,omitempty"`
}

// Order is the remote order snapshot from order management.
type Order struct {
	OrderID                   string      `json:"order_id"`
	Status                    OrderStatus `json:"status"`
	FraudStatus               FraudStatus `json:"fraud_status,omitempty"`
	PurchaseCurrency          string      `json:"purchase_currency,omitempty"`
	OrderAmount               int64       `json:"order_amount"`
	OriginalOrderAmount       int64       `json:"original_order_amount,omitempty"`
	CapturedAmount            int64       `json:"captured_amount"`
	RefundedAmount            int64       `json:"refunded_amount"`
	RemainingAuthorizedAmount int64       `json:"remaining_authorized_amount"`
	MerchantReference1        string      `json:"merchant_reference1,omitempty"`
	Captures                  []Capture   `json:"captures,omitempty"`
	Refunds                   []Refund    `json:"refunds,omitempty"`
}
