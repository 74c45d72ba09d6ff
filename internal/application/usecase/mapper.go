package usecase

import (
	"time"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
)

const (
	installmentStatusPending = "PENDING"
	installmentStatusPaid    = "PAID"
)

func toBeneficiaryResponse(b model.Beneficiary) dto.BeneficiaryResponse {
	return dto.BeneficiaryResponse{
		ID:         b.ID(),
		Surnames:   b.Surnames(),
		GivenNames: b.GivenNames(),
		FullName:   b.FullName(),
		NationalID: b.NationalID().String(),
		Phone:      b.Phone().String(),
		Address:    b.Address(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
}

func toBeneficiaryResponses(list []model.Beneficiary) []dto.BeneficiaryResponse {
	out := make([]dto.BeneficiaryResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBeneficiaryResponse(b))
	}
	return out
}

func toContractResponse(c model.Contract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:                 c.ID(),
		BeneficiaryID:      c.BeneficiaryID(),
		Principal:          c.Principal(),
		MonthlyRatePercent: c.MonthlyRatePercent(),
		Installment:        c.InstallmentAmount(),
		StartDate:          formatDate(c.StartDate()),
		PayDay:             c.PayDay(),
		TermCount:          c.TermCount(),
		Status:             c.Status().String(),
		CreatedAt:          c.CreatedAt(),
		UpdatedAt:          c.UpdatedAt(),
	}
}

func toContractViewResponse(v model.ContractView) dto.ContractResponse {
	resp := toContractResponse(v.Contract)
	resp.BeneficiaryName = v.BeneficiaryName
	resp.BeneficiaryDNI = v.BeneficiaryDNI
	return resp
}

func toContractViewResponses(list []model.ContractView) []dto.ContractResponse {
	out := make([]dto.ContractResponse, 0, len(list))
	for _, v := range list {
		out = append(out, toContractViewResponse(v))
	}
	return out
}

func toSummaryResponse(s model.ContractSummary) dto.ContractSummaryResponse {
	return dto.ContractSummaryResponse{
		Contract:            toContractViewResponse(s.ContractView),
		TotalInstallments:   s.TotalInstallments,
		PaidInstallments:    s.PaidInstallments,
		PendingInstallments: s.PendingInstallments,
		TotalPaid:           s.TotalPaid,
		TotalPending:        s.TotalPending,
		TotalPenalties:      s.TotalPenalties,
	}
}

func toInstallmentResponse(i model.Installment, dueDate time.Time) dto.InstallmentResponse {
	resp := dto.InstallmentResponse{
		ID:         i.ID(),
		ContractID: i.ContractID(),
		Sequence:   i.Sequence(),
		Amount:     i.Amount(),
		DueDate:    formatDate(dueDate),
		Status:     installmentStatusPending,
		PaidAt:     i.PaidAt(),
		Penalty:    i.Penalty(),
		Medium:     i.Medium().String(),
		Total:      i.Total(),
	}
	if i.IsPaid() {
		resp.Status = installmentStatusPaid
	}
	return resp
}

func toInstallmentResponses(c model.Contract, list []model.Installment) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(list))
	for _, line := range model.BuildScheduleLines(c, list) {
		out = append(out, toInstallmentResponse(line.Installment, line.DueDate))
	}
	return out
}

func toPaymentResponse(
	inst model.Installment, c model.Contract, dueDate time.Time, name, dni string,
) dto.PaymentResponse {
	return dto.PaymentResponse{
		InstallmentResponse: toInstallmentResponse(inst, dueDate),
		BeneficiaryName:     name,
		BeneficiaryDNI:      dni,
		ContractPrincipal:   c.Principal(),
		ContractTermCount:   c.TermCount(),
		ContractPayDay:      c.PayDay(),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
