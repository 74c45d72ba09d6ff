package usecase

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/domain/model"
)

// invalidRate is outside [0,100] so that an unparsable rate is reported by
// ContractTerms.Validate with the usual range message.
var invalidRate = decimal.NewFromInt(-1)

// parseTerms converts textual contract input into domain terms. Parse
// failures leave the affected field out of range so that Validate reports
// every problem in one message.
func parseTerms(req dto.ContractRequest, loc *time.Location) model.ContractTerms {
	return model.ContractTerms{
		BeneficiaryID:      strings.TrimSpace(req.BeneficiaryID),
		Principal:          parseDecimal(req.Principal, decimal.Zero),
		MonthlyRatePercent: parseDecimal(req.MonthlyRatePercent, invalidRate),
		StartDate:          parseDate(req.StartDate, loc),
		PayDay:             req.PayDay,
		TermCount:          req.TermCount,
	}
}

func parseDecimal(s string, fallback decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fallback
	}
	return d
}

// parseDate reads a YYYY-MM-DD date in loc. It returns the zero time when
// the input is not a valid calendar date.
func parseDate(s string, loc *time.Location) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
