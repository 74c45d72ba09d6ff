package valueobject

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nationalIDRe  = regexp.MustCompile(`^\d{8}$`)
	phoneNumberRe = regexp.MustCompile(`^\d{9}$`)
)

// NationalID is an 8-digit national identity document number (DNI).
type NationalID struct {
	value string
}

// NewNationalID validates and wraps a DNI.
func NewNationalID(s string) (NationalID, error) {
	s = strings.TrimSpace(s)
	if !nationalIDRe.MatchString(s) {
		return NationalID{}, fmt.Errorf("DNI must have exactly 8 digits: %q", s)
	}
	return NationalID{value: s}, nil
}

func (n NationalID) String() string { return n.value }

func (n NationalID) IsZero() bool { return n.value == "" }

// PhoneNumber is a 9-digit local phone number.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates and wraps a phone number.
func NewPhoneNumber(s string) (PhoneNumber, error) {
	s = strings.TrimSpace(s)
	if !phoneNumberRe.MatchString(s) {
		return PhoneNumber{}, fmt.Errorf("phone must have exactly 9 digits: %q", s)
	}
	return PhoneNumber{value: s}, nil
}

func (p PhoneNumber) String() string { return p.value }

func (p PhoneNumber) IsZero() bool { return p.value == "" }
