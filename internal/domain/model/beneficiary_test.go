package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestamos/loan-service/internal/domain/apperror"
	"github.com/prestamos/loan-service/internal/domain/event"
	"github.com/prestamos/loan-service/internal/domain/model"
)

func validDetails() model.BeneficiaryDetails {
	return model.BeneficiaryDetails{
		Surnames:   "Quispe Mamani",
		GivenNames: "Rosa Elena",
		NationalID: "45678912",
		Phone:      "987654321",
		Address:    "Av. Los Incas 123",
	}
}

func TestNewBeneficiary_Valid(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, lima)

	b, err := model.NewBeneficiary(validDetails(), now)

	require.NoError(t, err)
	assert.NotEmpty(t, b.ID())
	assert.Equal(t, "Quispe Mamani, Rosa Elena", b.FullName())
	assert.Equal(t, "45678912", b.NationalID().String())
	assert.Equal(t, "987654321", b.Phone().String())
	assert.Equal(t, now, b.CreatedAt())
	require.Len(t, b.DomainEvents(), 1)
	assert.Equal(t, event.TypeBeneficiaryRegistered, b.DomainEvents()[0].EventType())
}

func TestNewBeneficiary_TrimsFields(t *testing.T) {
	d := validDetails()
	d.Surnames = "  Quispe  "
	d.NationalID = " 45678912 "

	b, err := model.NewBeneficiary(d, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Quispe", b.Surnames())
	assert.Equal(t, "45678912", b.NationalID().String())
}

func TestNewBeneficiary_CollectsViolations(t *testing.T) {
	d := model.BeneficiaryDetails{
		Surnames:   "",
		GivenNames: strings.Repeat("a", 51),
		NationalID: "1234567",
		Phone:      "12345678a",
		Address:    strings.Repeat("x", 91),
	}

	_, err := model.NewBeneficiary(d, time.Now())

	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	for _, msg := range []string{
		"surnames are required",
		"given names must be at most 50 characters",
		"address must be at most 90 characters",
		"DNI must have exactly 8 digits",
		"phone must have exactly 9 digits",
	} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestNewBeneficiary_NameLengthCountsRunes(t *testing.T) {
	d := validDetails()
	d.Surnames = strings.Repeat("ñ", 50)

	_, err := model.NewBeneficiary(d, time.Now())

	require.NoError(t, err)
}

func TestBeneficiary_Update(t *testing.T) {
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, lima)
	b, err := model.NewBeneficiary(validDetails(), created)
	require.NoError(t, err)

	d := validDetails()
	d.Phone = "912345678"
	later := created.Add(time.Hour)

	updated, err := b.Update(d, later)

	require.NoError(t, err)
	assert.Equal(t, b.ID(), updated.ID())
	assert.Equal(t, "912345678", updated.Phone().String())
	assert.Equal(t, created, updated.CreatedAt())
	assert.Equal(t, later, updated.UpdatedAt())
	assert.Equal(t, "987654321", b.Phone().String(), "original must be unchanged")
}

func TestBeneficiary_UpdateRejectsInvalid(t *testing.T) {
	b, err := model.NewBeneficiary(validDetails(), time.Now())
	require.NoError(t, err)

	d := validDetails()
	d.NationalID = "abc"

	_, err = b.Update(d, time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DNI must have exactly 8 digits")
}
