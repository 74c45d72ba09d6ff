package usecase_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/valueobject"
)

var lima = time.FixedZone("PET", -5*60*60)

func testClock() fixedClock {
	return fixedClock{now: time.Date(2024, 1, 10, 9, 30, 0, 0, lima)}
}

func existingBeneficiary() model.Beneficiary {
	dni, _ := valueobject.NewNationalID("45678912")
	phone, _ := valueobject.NewPhoneNumber("987654321")
	created := time.Date(2023, 12, 1, 8, 0, 0, 0, lima)
	return model.ReconstructBeneficiary("ben-001", "Quispe", "Rosa", dni, phone, "Av. Los Incas 123", created, created)
}

func validBeneficiaryRequest() dto.BeneficiaryRequest {
	return dto.BeneficiaryRequest{
		Surnames:   "Quispe",
		GivenNames: "Rosa",
		NationalID: "45678912",
		Phone:      "987654321",
		Address:    "Av. Los Incas 123",
	}
}

func validContractRequest() dto.ContractRequest {
	return dto.ContractRequest{
		BeneficiaryID:      "ben-001",
		Principal:          "1200",
		MonthlyRatePercent: "0",
		StartDate:          "2024-01-15",
		PayDay:             31,
		TermCount:          12,
	}
}

func activeContract() model.Contract {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, lima)
	return model.ReconstructContract(
		"con-001", "ben-001", decimal.NewFromInt(1200), decimal.Zero,
		start, 31, 12, valueobject.ContractStatusActive, start, start,
	)
}

func finishedContract() model.Contract {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, lima)
	return model.ReconstructContract(
		"con-001", "ben-001", decimal.NewFromInt(1200), decimal.Zero,
		start, 31, 12, valueobject.ContractStatusFinished, start, start,
	)
}

func contractView(c model.Contract) model.ContractView {
	return model.ContractView{Contract: c, BeneficiaryName: "Quispe, Rosa", BeneficiaryDNI: "45678912"}
}

func pendingInstallment(seq int) model.Installment {
	return model.ReconstructInstallment(
		fmt.Sprintf("inst-%03d", seq), "con-001", seq, decimal.NewFromInt(100),
		nil, decimal.Zero, valueobject.PaymentMedium{}, time.Date(2024, 1, 10, 0, 0, 0, 0, lima),
	)
}

func paidInstallment(seq int, at time.Time, penalty decimal.Decimal) model.Installment {
	return model.ReconstructInstallment(
		fmt.Sprintf("inst-%03d", seq), "con-001", seq, decimal.NewFromInt(100),
		&at, penalty, valueobject.PaymentMediumCash, time.Date(2024, 1, 10, 0, 0, 0, 0, lima),
	)
}
