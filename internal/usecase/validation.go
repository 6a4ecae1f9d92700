package usecase

import (
	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/pkg/validate"
)

func normalizeColor(value string) (string, error) {
	color, err := validate.Color(value)
	if err != nil {
		return "", invalidArgument("%v", err)
	}
	return color, nil
}

// fraudEvents maps notification event types to outcomes.
var fraudEvents = map[string]fraudOutcome{
	"FRAUD_RISK_ACCEPTED": fraudAccepted,
	"FRAUD_RISK_REJECTED": fraudRejected,
	"FRAUD_RISK_STOPPED":  fraudStopped,
}

type fraudOutcome int

const (
	fraudAccepted fraudOutcome = iota
	fraudRejected
	fraudStopped
)

// pushableStatuses are remote statuses a push notification may finalize.
var pushableStatuses = map[klarna.OrderStatus]bool{
	klarna.OrderStatusAuthorized:   true,
	klarna.OrderStatusPartCaptured: true,
	klarna.OrderStatusCaptured:     true,
}
