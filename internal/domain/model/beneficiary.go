package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

const (
	maxNameLength    = 50
	maxAddressLength = 90
)

// ---------------------------------------------------------------------------
// Beneficiary aggregate root
// ---------------------------------------------------------------------------

// Beneficiary is a borrower. It is immutable; mutations return a new copy.
type Beneficiary struct {
	id           string
	surnames     string
	givenNames   string
	nationalID   valueobject.NationalID
	phone        valueobject.PhoneNumber
	address      string
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// BeneficiaryDetails is the raw input for registering or updating a
// beneficiary.
type BeneficiaryDetails struct {
	Surnames   string
	GivenNames string
	NationalID string
	Phone      string
	Address    string
}

type validatedDetails struct {
	surnames   string
	givenNames string
	nationalID valueobject.NationalID
	phone      valueobject.PhoneNumber
	address    string
}

func (d BeneficiaryDetails) validate() (validatedDetails, error) {
	var v violations
	out := validatedDetails{
		surnames:   strings.TrimSpace(d.Surnames),
		givenNames: strings.TrimSpace(d.GivenNames),
		address:    strings.TrimSpace(d.Address),
	}

	v.check(out.surnames != "", "surnames are required")
	v.check(utf8.RuneCountInString(out.surnames) <= maxNameLength, "surnames must be at most 50 characters")
	v.check(out.givenNames != "", "given names are required")
	v.check(utf8.RuneCountInString(out.givenNames) <= maxNameLength, "given names must be at most 50 characters")
	v.check(utf8.RuneCountInString(out.address) <= maxAddressLength, "address must be at most 90 characters")

	dni, err := valueobject.NewNationalID(d.NationalID)
	v.check(err == nil, "DNI must have exactly 8 digits")
	out.nationalID = dni

	phone, err := valueobject.NewPhoneNumber(d.Phone)
	v.check(err == nil, "phone must have exactly 9 digits")
	out.phone = phone

	return out, v.err()
}

// NewBeneficiary validates the details and registers a new beneficiary.
func NewBeneficiary(details BeneficiaryDetails, now time.Time) (Beneficiary, error) {
	d, err := details.validate()
	if err != nil {
		return Beneficiary{}, err
	}

	b := Beneficiary{
		id:         uuid.New().String(),
		surnames:   d.surnames,
		givenNames: d.givenNames,
		nationalID: d.nationalID,
		phone:      d.phone,
		address:    d.address,
		createdAt:  now,
		updatedAt:  now,
	}
	b.domainEvents = append(b.domainEvents, event.NewBeneficiaryRegistered(
		b.id, b.nationalID.String(), b.FullName(), now,
	))
	return b, nil
}

// ReconstructBeneficiary rebuilds a Beneficiary from persistence.
func ReconstructBeneficiary(
	id, surnames, givenNames string,
	nationalID valueobject.NationalID,
	phone valueobject.PhoneNumber,
	address string,
	createdAt, updatedAt time.Time,
) Beneficiary {
	return Beneficiary{
		id:         id,
		surnames:   surnames,
		givenNames: givenNames,
		nationalID: nationalID,
		phone:      phone,
		address:    address,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Update replaces the editable fields after re-validating them.
func (b Beneficiary) Update(details BeneficiaryDetails, now time.Time) (Beneficiary, error) {
	d, err := details.validate()
	if err != nil {
		return b, err
	}
	next := b
	next.surnames = d.surnames
	next.givenNames = d.givenNames
	next.nationalID = d.nationalID
	next.phone = d.phone
	next.address = d.address
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (b Beneficiary) ID() string                         { return b.id }
func (b Beneficiary) Surnames() string                   { return b.surnames }
func (b Beneficiary) GivenNames() string                 { return b.givenNames }
func (b Beneficiary) NationalID() valueobject.NationalID { return b.nationalID }
func (b Beneficiary) Phone() valueobject.PhoneNumber     { return b.phone }
func (b Beneficiary) Address() string                    { return b.address }
func (b Beneficiary) CreatedAt() time.Time               { return b.createdAt }
func (b Beneficiary) UpdatedAt() time.Time               { return b.updatedAt }
func (b Beneficiary) DomainEvents() []event.DomainEvent  { return b.domainEvents }

// FullName renders "surnames, given names".
func (b Beneficiary) FullName() string {
	return DisplayName(b.surnames, b.givenNames)
}

// DisplayName joins surnames and given names the way listings show them.
func DisplayName(surnames, givenNames string) string {
	return surnames + ", " + givenNames
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type violations []string

// check records msg when ok is false and passes ok through.
func (v *violations) check(ok bool, msg string) bool {
	if !ok {
		*v = append(*v, msg)
	}
	return ok
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return apperror.Validation("%s", strings.Join(v, "; "))
}

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if src == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(src))
	copy(out, src)
	return out
}
