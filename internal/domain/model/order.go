package model

import (
	"maps"
	"slices"
	"time"

	"github.com/govalues/decimal"
)

// Metadata keys persisted in the order data bag.
const (
	DataRemoteOrderID   = "klarna_order_id"
	DataRemoteSessionID = "klarna_session_id"
)

// AdjustmentType classifies order adjustments.
type AdjustmentType string

const (
	AdjustmentTax       AdjustmentType = "tax"
	AdjustmentPromotion AdjustmentType = "promotion"
	AdjustmentFee       AdjustmentType = "fee"
)

// ProfileType identifies collected customer profiles.
type ProfileType string

const (
	ProfileBilling  ProfileType = "billing"
	ProfileShipping ProfileType = "shipping"
)

// Adjustment describes tax, promotion or fee applied to an item or shipment.
// Percentage is a fraction, i.e. 0.24 for 24%.
type Adjustment struct {
	Type       AdjustmentType   `json:"type"`
	Label      string           `json:"label"`
	Amount     Price            `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// EntityRef points at the purchasable entity behind a line item.
type EntityRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// LineItem is a single order item with its pricing after adjustments.
type LineItem struct {
	ID                 int64        `json:"id"`
	Title              string       `json:"title"`
	Quantity           int64        `json:"quantity"`
	UnitPrice          Price        `json:"unit_price"`
	AdjustedUnitPrice  Price        `json:"adjusted_unit_price"`
	AdjustedTotalPrice Price        `json:"adjusted_total_price"`
	Adjustments        []Adjustment `json:"adjustments,omitempty"`
	PurchasedEntity    *EntityRef   `json:"purchased_entity,omitempty"`
}

// Shipment is a shipping charge attached to the order.
type Shipment struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Amount      Price        `json:"amount"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
}

// Address holds a collected customer profile address.
type Address struct {
	GivenName    string `json:"given_name,omitempty"`
	FamilyName   string `json:"family_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	Locality     string `json:"locality,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Region       string `json:"administrative_area,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

// Order is the commerce order the payment integration works on.
type Order struct {
	ID             int64                    `json:"id"`
	UUID           string                   `json:"uuid"`
	Email          string                   `json:"email,omitempty"`
	StoreCountry   string                   `json:"store_country"`
	Langcode       string                   `json:"langcode,omitempty"`
	PaymentGateway string                   `json:"payment_gateway,omitempty"`
	Total          Price                    `json:"total_price"`
	TotalPaid      Price                    `json:"total_paid"`
	Items          []LineItem               `json:"items,omitempty"`
	Shipments      []Shipment               `json:"shipments,omitempty"`
	Profiles       map[ProfileType]*Address `json:"profiles,omitempty"`
	Data           map[string]string        `json:"-"`
	UpdatedAt      time.Time                `json:"-"`
}

// GetData returns metadata value stored under key.
func (o *Order) GetData(key string) (string, bool) {
	v, ok := o.Data[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SetData stores metadata value. Empty value removes the key.
func (o *Order) SetData(key, value string) {
	if o.Data == nil {
		o.Data = make(map[string]string)
	}
	if value == "" {
		delete(o.Data, key)
		return
	}
	o.Data[key] = value
}

// Profile returns collected profile address of requested type.
func (o *Order) Profile(t ProfileType) *Address {
	if o.Profiles == nil {
		return nil
	}
	return o.Profiles[t]
}

// Balance returns amount left to pay.
func (o *Order) Balance() (Price, error) {
	return o.Total.Sub(o.TotalPaid)
}

// IsPaid reports whether total paid covers the order total.
func (o *Order) IsPaid() bool {
	balance, err := o.Balance()
	if err != nil {
		return false
	}
	return balance.Number.Sign() <= 0 && !o.Total.IsZero()
}

// Clone returns a deep copy so listeners can't mutate the original.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = make([]LineItem, len(o.Items))
	for i, item := range o.Items {
		item.Adjustments = slices.Clone(item.Adjustments)
		if item.PurchasedEntity != nil {
			ref := *item.PurchasedEntity
			item.PurchasedEntity = &ref
		}
		c.Items[i] = item
	}
	c.Shipments = make([]Shipment, len(o.Shipments))
	for i, s := range o.Shipments {
		s.Adjustments = slices.Clone(s.Adjustments)
		c.Shipments[i] = s
	}
	if o.Profiles != nil {
		c.Profiles = make(map[ProfileType]*Address, len(o.Profiles))
		for k, v := range o.Profiles {
			if v != nil {
				addr := *v
				v = &addr
			}
			c.Profiles[k] = v
		}
	}
	c.Data = maps.Clone(o.Data)
	return &c
}
