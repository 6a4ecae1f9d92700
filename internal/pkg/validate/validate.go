// Package validate holds the shared validator instance with Klarna specific tags.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ColorTag validates widget colours: 6 hex digits with optional leading '#'.
const ColorTag = "klarna_color"

var std = New()

// New returns validator with custom tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(ColorTag, func(fl validator.FieldLevel) bool {
		return isColor(fl.Field().String())
	})
	return v
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return std.Struct(s)
}

// Color normalises a colour to "#rrggbb" form.
func Color(value string) (string, error) {
	if !isColor(value) {
		return "", fmt.Errorf("color %q must be 6 hex digits", value)
	}
	return "#" + strings.TrimPrefix(value, "#"), nil
}

func isColor(value string) bool {
	return builtin.Var(strings.TrimPrefix(value, "#"), "len=6,hexadecimal,excludesall=xX") == nil
}

var builtin = validator.New()
