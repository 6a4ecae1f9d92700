package model

// PluginKlarnaPayments identifies gateways handled by this service.
const PluginKlarnaPayments = "klarna_payments"

// LocaleAutomatic derives the locale from purchase country and order language.
const LocaleAutomatic = "automatic"

// GatewayOptions are widget colours; each is 6 hex digits with or without leading '#'.
type GatewayOptions struct {
	ColorButton     string `yaml:"color_button" validate:"omitempty,klarna_color"`
	ColorButtonText string `yaml:"color_button_text" validate:"omitempty,klarna_color"`
	ColorBorder     string `yaml:"color_border" validate:"omitempty,klarna_color"`
	ColorText       string `yaml:"color_text" validate:"omitempty,klarna_color"`
}

// IsEmpty reports whether no colour option is configured.
func (o GatewayOptions) IsEmpty() bool {
	return o.ColorButton == "" && o.ColorButtonText == "" && o.ColorBorder == "" && o.ColorText == ""
}

// Gateway is a configured payment gateway with Klarna credentials.
type Gateway struct {
	ID       string         `yaml:"id" validate:"required"`
	Plugin   string         `yaml:"plugin" validate:"required"`
	Username string         `yaml:"username" validate:"required"`
	Password string         `yaml:"password" validate:"required"`
	Region   string         `yaml:"region" validate:"required,oneof=eu na oc"`
	Mode     string         `yaml:"mode" validate:"required,oneof=live test"`
	Locale   string         `yaml:"locale"`
	Options  GatewayOptions `yaml:"options"`
}

// AutomaticLocale reports whether locale should be derived per order.
func (g *Gateway) AutomaticLocale() bool {
	return g.Locale == "" || g.Locale == LocaleAutomatic
}
