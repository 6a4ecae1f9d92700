package hook

import "github.com/polkiloo/klarnapay/internal/adapter/klarna"

// Events dispatched around Klarna calls.
var (
	SessionCreate                 = NewEvent[*klarna.SessionRequest]("klarna_payments.session_create")
	OrderCreate                   = NewEvent[klarna.OrderPayload]("klarna_payments.order_create")
	CaptureCreate                 = NewEvent[*klarna.CaptureRequest]("klarna_payments.capture_create")
	RefundCreate                  = NewEvent[*klarna.RefundRequest]("klarna_payments.refund_create")
	AcknowledgeOrder              = NewEvent[*klarna.Order]("klarna_payments.acknowledge_order")
	VoidPayment                   = NewEvent[*klarna.Order]("klarna_payments.void_payment")
	ReleaseRemainingAuthorization = NewEvent[*klarna.Order]("klarna_payments.release_remaining_authorization")
	FraudAccepted                 = NewEvent[*klarna.Order]("klarna_payments.fraud_accepted")
	FraudRejected                 = NewEvent[*klarna.Order]("klarna_payments.fraud_rejected")
	FraudStopped                  = NewEvent[*klarna.Order]("klarna_payments.fraud_stopped")
	PushEndpointCalled            = NewEvent[*klarna.Order]("klarna_payments.push_endpoint_called")
)
