package usecase

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/govalues/decimal"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/config"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/pkg/auth"
	"github.com/polkiloo/klarnapay/internal/pkg/locale"
	"github.com/polkiloo/klarnapay/internal/pkg/money"
)

// RequestBuilder maps orders to Klarna payloads. It performs no I/O.
type RequestBuilder struct {
	publicURL       string
	defaultLanguage string
	signer          auth.Signer
}

// NewRequestBuilder constructs RequestBuilder.
func NewRequestBuilder(cfg *config.Config, signer auth.Signer) *RequestBuilder {
	return &RequestBuilder{
		publicURL:       cfg.PublicURL,
		defaultLanguage: cfg.DefaultLanguage,
		signer:          signer,
	}
}

// CreateSessionRequest builds the session create/update payload.
func (b *RequestBuilder) CreateSessionRequest(order *model.Order, gw *model.Gateway) (*klarna.SessionRequest, error) {
	options, err := buildOptions(gw.Options)
	if err != nil {
		return nil, err
	}

	country := order.StoreCountry
	billing := order.Profile(model.ProfileBilling)
	if billing != nil && billing.CountryCode != "" {
		country = billing.CountryCode
	}
	language := b.language(order)

	req := &klarna.SessionRequest{
		PurchaseCountry:  country,
		PurchaseCurrency: order.Total.Currency,
		Locale:           b.locale(gw, country, language),
		OrderAmount:      money.ToAmount(order.Total, false),
		MerchantURLs:     b.merchantURLs(order, gw),
		BillingAddress:   buildAddress(billing, order.Email),
		ShippingAddress:  buildAddress(order.Profile(model.ProfileShipping), order.Email),
		Options:          options,
	}

	req.OrderLines = buildOrderLines(order, language)
	for _, line := range req.OrderLines {
		req.OrderTaxAmount += line.TotalTaxAmount
	}
	if req.OrderLines == nil {
		req.OrderLines = []klarna.OrderLine{}
	}
	return req, nil
}

// CreateOrderRequest builds the authorize payload: session data plus merchant references.
func (b *RequestBuilder) CreateOrderRequest(order *model.Order, gw *model.Gateway) (*klarna.OrderRequest, error) {
	session, err := b.CreateSessionRequest(order, gw)
	if err != nil {
		return nil, err
	}
	return &klarna.OrderRequest{
		SessionRequest:     *session,
		MerchantReference1: strconv.FormatInt(order.ID, 10),
		MerchantReference2: order.UUID,
	}, nil
}

// CreateCaptureRequest builds capture payload for the outstanding balance.
func (b *RequestBuilder) CreateCaptureRequest(order *model.Order) (*klarna.CaptureRequest, error) {
	balance, err := order.Balance()
	if err != nil {
		return nil, fmt.Errorf("order %d balance: %w", order.ID, err)
	}
	return &klarna.CaptureRequest{
		CapturedAmount: money.ToAmount(balance, false),
		OrderLines:     buildItemLines(order),
	}, nil
}

func (b *RequestBuilder) language(order *model.Order) string {
	if order.Langcode != "" {
		return order.Langcode
	}
	return b.defaultLanguage
}

func (b *RequestBuilder) locale(gw *model.Gateway, country, language string) string {
	if !gw.AutomaticLocale() {
		return gw.Locale
	}
	return locale.Build(country, language)
}

func (b *RequestBuilder) merchantURLs(order *model.Order, gw *model.Gateway) *klarna.MerchantURLs {
	orderID := strconv.FormatInt(order.ID, 10)

	confirmation := url.Values{}
	confirmation.Set("commerce_order", orderID)
	confirmation.Set("commerce_payment_gateway", gw.ID)
	confirmation.Set("step", "payment")

	notification := url.Values{}
	notification.Set("commerce_order", orderID)
	notification.Set("step", "complete")
	if b.signer != nil {
		notification.Set("signature", b.signer.Sign(order.ID, gw.ID))
	}

	return &klarna.MerchantURLs{
		Confirmation: fmt.Sprintf("%s/checkout/%s/payment/return?%s", b.publicURL, orderID, confirmation.Encode()),
		// {order.id} is substituted by Klarna and must stay unescaped.
		Notification: fmt.Sprintf("%s/payment/notify/%s?%s&klarna_order_id={order.id}",
			b.publicURL, url.PathEscape(gw.ID), notification.Encode()),
	}
}

func buildOptions(o model.GatewayOptions) (*klarna.Options, error) {
	if o.IsEmpty() {
		return nil, nil
	}
	var (
		out klarna.Options
		err error
	)
	fields := []struct {
		in  string
		out *string
	}{
		{o.ColorButton, &out.ColorButton},
		{o.ColorButtonText, &out.ColorButtonText},
		{o.ColorBorder, &out.ColorBorder},
		{o.ColorText, &out.ColorText},
	}
	for _, f := range fields {
		if f.in == "" {
			continue
		}
		if *f.out, err = normalizeColor(f.in); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

func buildAddress(addr *model.Address, email string) *klarna.Address {
	if addr == nil {
		return nil
	}
	return &klarna.Address{
		Email:            email,
		GivenName:        addr.GivenName,
		FamilyName:       addr.FamilyName,
		OrganizationName: addr.Organization,
		StreetAddress:    addr.AddressLine1,
		StreetAddress2:   addr.AddressLine2,
		City:             addr.Locality,
		PostalCode:       addr.PostalCode,
		Region:           addr.Region,
		Country:          addr.CountryCode,
	}
}

func buildOrderLines(order *model.Order, language string) []klarna.OrderLine {
	return append(buildItemLines(order), buildShippingLines(order, language)...)
}

// buildItemLines returns one line per order item.
func buildItemLines(order *model.Order) []klarna.OrderLine {
	var lines []klarna.OrderLine
	for _, item := range order.Items {
		unit := item.AdjustedUnitPrice
		if unit.Currency == "" {
			unit = item.UnitPrice
		}
		line := klarna.OrderLine{
			Name:        item.Title,
			Quantity:    item.Quantity,
			UnitPrice:   money.ToAmount(unit, false),
			TotalAmount: money.ToAmount(item.AdjustedTotalPrice, false),
		}
		if item.AdjustedTotalPrice.Currency == "" {
			line.TotalAmount = line.UnitPrice * item.Quantity
		}
		if item.PurchasedEntity != nil {
			line.Reference = item.PurchasedEntity.Type + ":" + item.PurchasedEntity.ID
		}
		line.TaxRate, line.TotalTaxAmount = taxes(item.Adjustments)
		lines = append(lines, line)
	}
	return lines
}

func buildShippingLines(order *model.Order, language string) []klarna.OrderLine {
	var lines []klarna.OrderLine
	label := locale.ShippingLabel(language)
	for _, shipment := range order.Shipments {
		amount := money.ToAmount(shipment.Amount, false)
		line := klarna.OrderLine{
			Type:        klarna.OrderLineTypeShippingFee,
			Name:        label,
			Quantity:    1,
			UnitPrice:   amount,
			TotalAmount: amount,
		}
		line.TaxRate, line.TotalTaxAmount = taxes(shipment.Adjustments)
		lines = append(lines, line)
	}
	return lines
}

// taxes sums rate and amount over tax adjustments; other types are ignored.
func taxes(adjustments []model.Adjustment) (rate, amount int64) {
	for _, adj := range adjustments {
		if adj.Type != model.AdjustmentTax {
			continue
		}
		if adj.Percentage != nil {
			if percent, err := adj.Percentage.Mul(decimal.Hundred); err == nil {
				rate += money.TaxRate(percent)
			}
		}
		amount += money.ToAmount(adj.Amount, false)
	}
	return rate, amount
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domainErrors.ErrInvalidArgument, fmt.Sprintf(format, args...))
}
