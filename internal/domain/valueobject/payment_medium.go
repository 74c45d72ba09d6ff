package valueobject

import (
	"fmt"
	"strings"
)

// PaymentMedium is how an installment was paid.
type PaymentMedium struct {
	value string
}

const (
	paymentMediumCash    = "CASH"
	paymentMediumDeposit = "DEPOSIT"
)

var (
	PaymentMediumCash    = PaymentMedium{value: paymentMediumCash}
	PaymentMediumDeposit = PaymentMedium{value: paymentMediumDeposit}
)

var validPaymentMediums = map[string]PaymentMedium{
	paymentMediumCash:    PaymentMediumCash,
	paymentMediumDeposit: PaymentMediumDeposit,
	"EFC":                PaymentMediumCash,
	"DEP":                PaymentMediumDeposit,
}

// NewPaymentMedium parses a medium code. Matching is case-insensitive and
// accepts the legacy EFC/DEP codes.
func NewPaymentMedium(s string) (PaymentMedium, error) {
	v, ok := validPaymentMediums[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return PaymentMedium{}, fmt.Errorf("invalid payment medium: %q", s)
	}
	return v, nil
}

func (m PaymentMedium) String() string { return m.value }

func (m PaymentMedium) IsZero() bool { return m.value == "" }

func (m PaymentMedium) Equal(other PaymentMedium) bool { return m.value == other.value }

// Label is the display name used by the web UI.
func (m PaymentMedium) Label() string {
	switch m.value {
	case paymentMediumCash:
		return "Cash"
	case paymentMediumDeposit:
		return "Deposit"
	default:
		return ""
	}
}
