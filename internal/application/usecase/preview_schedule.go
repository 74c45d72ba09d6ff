package usecase

import (
	"strings"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
	"github.com/prestamos/loan-service/internal/domain/port"
)

// PreviewScheduleUseCase computes an installment table for prospective
// terms without storing anything.
type PreviewScheduleUseCase struct {
	clock port.Clock
}

// NewPreviewScheduleUseCase wires dependencies.
func NewPreviewScheduleUseCase(clock port.Clock) *PreviewScheduleUseCase {
	return &PreviewScheduleUseCase{clock: clock}
}

// Execute validates the financial fields and returns the schedule. When a
// start date and pay day are given each line carries its due date. The
// start date is not required to be in the future here.
func (uc *PreviewScheduleUseCase) Execute(req dto.SchedulePreviewRequest) (dto.SchedulePreviewResponse, error) {
	now := uc.clock.Now()
	terms := parseTerms(dto.ContractRequest{
		BeneficiaryID:      "preview",
		Principal:          req.Principal,
		MonthlyRatePercent: req.MonthlyRatePercent,
		StartDate:          req.StartDate,
		PayDay:             req.PayDay,
		TermCount:          req.TermCount,
	}, now.Location())

	dated := strings.TrimSpace(req.StartDate) != ""
	if !dated {
		terms.StartDate = now
		if terms.PayDay == 0 {
			terms.PayDay = model.MinPayDay
		}
	}
	// Validate against the start date itself so past dates preview fine.
	today := now
	if !terms.StartDate.IsZero() {
		today = model.CalendarDate(terms.StartDate, now.Location())
	}
	if err := terms.Validate(today); err != nil {
		return dto.SchedulePreviewResponse{}, err
	}

	installment := terms.Installment()
	lines := make([]dto.SchedulePreviewLine, 0, terms.TermCount)
	for n := 1; n <= terms.TermCount; n++ {
		line := dto.SchedulePreviewLine{Sequence: n, Amount: installment}
		if dated {
			line.DueDate = formatDate(model.ComputeDueDate(terms.StartDate, terms.PayDay, n))
		}
		lines = append(lines, line)
	}

	return dto.SchedulePreviewResponse{
		Installment:   installment,
		TotalPayable:  model.TotalPayable(installment, terms.TermCount),
		TotalInterest: model.TotalInterest(terms.Principal, installment, terms.TermCount),
		Lines:         lines,
	}, nil
}
