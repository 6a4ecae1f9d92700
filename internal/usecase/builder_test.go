package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/klarnapay/internal/adapter/klarna"
	"github.com/polkiloo/klarnapay/internal/config"
	domainErrors "github.com/polkiloo/klarnapay/internal/domain/errors"
	"github.com/polkiloo/klarnapay/internal/domain/model"
	"github.com/polkiloo/klarnapay/internal/test"
)

func newTestBuilder() *RequestBuilder {
	return NewRequestBuilder(&config.Config{PublicURL: "https://shop.example", DefaultLanguage: "en"}, test.SignerStub{})
}

func simpleOrder() *model.Order {
	return &model.Order{
		ID:             42,
		UUID:           "7e0f9d1a-8d38-4c58-9d0b-1f4a3c2e5b6d",
		Email:          "buyer@example.com",
		StoreCountry:   "US",
		PaymentGateway: "klarna",
		Total:          model.MustPrice("2.00", "USD"),
		Items: []model.LineItem{{
			ID:                 1,
			Title:              "Sticker",
			Quantity:           1,
			UnitPrice:          model.MustPrice("2.00", "USD"),
			AdjustedUnitPrice:  model.MustPrice("2.00", "USD"),
			AdjustedTotalPrice: model.MustPrice("2.00", "USD"),
			PurchasedEntity:    &model.EntityRef{Type: "product_variation", ID: "7"},
		}},
	}
}

func TestCreateSessionRequestSimpleOrder(t *testing.T) {
	req, err := newTestBuilder().CreateSessionRequest(simpleOrder(), test.TestGateway("klarna"))
	require.NoError(t, err)

	assert.Equal(t, "US", req.PurchaseCountry)
	assert.Equal(t, "USD", req.PurchaseCurrency)
	assert.Equal(t, "en-US", req.Locale)
	assert.Equal(t, int64(200), req.OrderAmount)
	assert.Equal(t, int64(0), req.OrderTaxAmount)
	require.Len(t, req.OrderLines, 1)
	assert.Equal(t, klarna.OrderLine{
		Reference:   "product_variation:7",
		Name:        "Sticker",
		Quantity:    1,
		UnitPrice:   200,
		TotalAmount: 200,
	}, req.OrderLines[0])
	assert.Nil(t, req.Options)
	assert.Nil(t, req.BillingAddress)
}

func TestCreateSessionRequestShippingLine(t *testing.T) {
	order := simpleOrder()
	order.StoreCountry = "DE"
	order.Langcode = "de"
	order.Total = model.MustPrice("10.00", "EUR")
	order.Items = nil
	rate := decimal.MustParse("0.24")
	order.Shipments = []model.Shipment{{
		ID:     3,
		Title:  "DHL",
		Amount: model.MustPrice("10.00", "EUR"),
		Adjustments: []model.Adjustment{
			{Type: model.AdjustmentTax, Label: "VAT", Amount: model.MustPrice("2.40", "EUR"), Percentage: &rate},
			{Type: model.AdjustmentPromotion, Label: "Promo", Amount: model.MustPrice("-1.00", "EUR")},
		},
	}}

	req, err := newTestBuilder().CreateSessionRequest(order, test.TestGateway("klarna"))
	require.NoError(t, err)

	require.Len(t, req.OrderLines, 1)
	line := req.OrderLines[0]
	assert.Equal(t, klarna.OrderLineTypeShippingFee, line.Type)
	assert.Equal(t, "Versand", line.Name)
	assert.Equal(t, int64(1), line.Quantity)
	assert.Equal(t, int64(1000), line.UnitPrice)
	assert.Equal(t, int64(1000), line.TotalAmount)
	assert.Equal(t, int64(240000), line.TaxRate)
	assert.Equal(t, int64(240), line.TotalTaxAmount)
	assert.Equal(t, int64(240), req.OrderTaxAmount)
	assert.Equal(t, "de-DE", req.Locale)
}

func TestCreateSessionRequestEmptyOrderSendsEmptyLines(t *testing.T) {
	order := simpleOrder()
	order.Items = nil

	req, err := newTestBuilder().CreateSessionRequest(order, test.TestGateway("klarna"))
	require.NoError(t, err)
	assert.NotNil(t, req.OrderLines)
	assert.Empty(t, req.OrderLines)
}

func TestCreateSessionRequestFallsBackToUnitPrice(t *testing.T) {
	order := simpleOrder()
	order.Items[0].Quantity = 3
	order.Items[0].AdjustedUnitPrice = model.Price{}
	order.Items[0].AdjustedTotalPrice = model.Price{}

	req, err := newTestBuilder().CreateSessionRequest(order, test.TestGateway("klarna"))
	require.NoError(t, err)
	assert.Equal(t, int64(200), req.OrderLines[0].UnitPrice)
	assert.Equal(t, int64(600), req.OrderLines[0].TotalAmount)
}

func TestCreateSessionRequestBillingAddressAndLocale(t *testing.T) {
	order := simpleOrder()
	order.Langcode = "sv"
	order.Profiles = map[model.ProfileType]*model.Address{
		model.ProfileBilling:  {GivenName: "Anna", FamilyName: "Berg", AddressLine1: "Storgatan 1", Locality: "Stockholm", PostalCode: "11122", CountryCode: "SE"},
		model.ProfileShipping: {GivenName: "Anna", CountryCode: "SE"},
	}

	req, err := newTestBuilder().CreateSessionRequest(order, test.TestGateway("klarna"))
	require.NoError(t, err)

	assert.Equal(t, "SE", req.PurchaseCountry)
	assert.Equal(t, "sv-SE", req.Locale)
	require.NotNil(t, req.BillingAddress)
	assert.Equal(t, "buyer@example.com", req.BillingAddress.Email)
	assert.Equal(t, "Storgatan 1", req.BillingAddress.StreetAddress)
	assert.Equal(t, "Stockholm", req.BillingAddress.City)
	require.NotNil(t, req.ShippingAddress)
	assert.Equal(t, "buyer@example.com", req.ShippingAddress.Email)
}

func TestCreateSessionRequestFixedGatewayLocale(t *testing.T) {
	gw := test.TestGateway("klarna")
	gw.Locale = "en-GB"

	req, err := newTestBuilder().CreateSessionRequest(simpleOrder(), gw)
	require.NoError(t, err)
	assert.Equal(t, "en-GB", req.Locale)
}

func TestCreateSessionRequestMerchantURLs(t *testing.T) {
	req, err := newTestBuilder().CreateSessionRequest(simpleOrder(), test.TestGateway("klarna"))
	require.NoError(t, err)
	require.NotNil(t, req.MerchantURLs)

	assert.Equal(t,
		"https://shop.example/checkout/42/payment/return?commerce_order=42&commerce_payment_gateway=klarna&step=payment",
		req.MerchantURLs.Confirmation)
	assert.True(t, strings.HasPrefix(req.MerchantURLs.Notification, "https://shop.example/payment/notify/klarna?"))
	assert.Contains(t, req.MerchantURLs.Notification, "signature=sig-42-klarna")
	assert.True(t, strings.HasSuffix(req.MerchantURLs.Notification, "&klarna_order_id={order.id}"))
}

func TestCreateSessionRequestColorOptions(t *testing.T) {
	gw := test.TestGateway("klarna")
	gw.Options = model.GatewayOptions{ColorButton: "FF00aa", ColorText: "#000000"}

	req, err := newTestBuilder().CreateSessionRequest(simpleOrder(), gw)
	require.NoError(t, err)
	require.NotNil(t, req.Options)
	assert.Equal(t, "#FF00aa", req.Options.ColorButton)
	assert.Equal(t, "#000000", req.Options.ColorText)
	assert.Empty(t, req.Options.ColorBorder)

	gw.Options = model.GatewayOptions{ColorBorder: "zzzzzz"}
	_, err = newTestBuilder().CreateSessionRequest(simpleOrder(), gw)
	assert.True(t, errors.Is(err, domainErrors.ErrInvalidArgument))
}

func TestCreateOrderRequestAddsMerchantReferences(t *testing.T) {
	order := simpleOrder()
	req, err := newTestBuilder().CreateOrderRequest(order, test.TestGateway("klarna"))
	require.NoError(t, err)

	assert.Equal(t, "42", req.MerchantReference1)
	assert.Equal(t, order.UUID, req.MerchantReference2)
	assert.Equal(t, int64(200), req.OrderAmount)
}

func TestCreateCaptureRequestUsesBalance(t *testing.T) {
	order := simpleOrder()
	order.Total = model.MustPrice("10.00", "USD")
	order.TotalPaid = model.MustPrice("2.50", "USD")

	req, err := newTestBuilder().CreateCaptureRequest(order)
	require.NoError(t, err)
	assert.Equal(t, int64(750), req.CapturedAmount)
	assert.Len(t, req.OrderLines, 1)

	order.TotalPaid = model.MustPrice("1.00", "EUR")
	_, err = newTestBuilder().CreateCaptureRequest(order)
	assert.Error(t, err)
}

func TestCreateCaptureRequestSkipsShippingLines(t *testing.T) {
	order := simpleOrder()
	order.Total = model.MustPrice("7.00", "USD")
	order.Shipments = []model.Shipment{{ID: 1, Title: "UPS", Amount: model.MustPrice("5.00", "USD")}}

	session, err := newTestBuilder().CreateSessionRequest(order, test.TestGateway("klarna"))
	require.NoError(t, err)
	require.Len(t, session.OrderLines, 2)

	req, err := newTestBuilder().CreateCaptureRequest(order)
	require.NoError(t, err)
	assert.Equal(t, int64(700), req.CapturedAmount)
	require.Len(t, req.OrderLines, 1)
	assert.Empty(t, req.OrderLines[0].Type)
	assert.Equal(t, "Sticker", req.OrderLines[0].Name)
}
