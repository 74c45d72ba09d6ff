// Package export renders report files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/prestamos/loan-service/internal/domain/model"
)

const paymentsSheet = "Payments"

var paymentHeaders = []string{
	"Beneficiary", "DNI", "Contract", "Installment", "Due date",
	"Amount", "Penalty", "Total", "Medium", "Paid at",
}

// XLSXPaymentWriter implements port.PaymentReportWriter as an Excel workbook.
type XLSXPaymentWriter struct{}

// NewXLSXPaymentWriter creates the writer.
func NewXLSXPaymentWriter() XLSXPaymentWriter {
	return XLSXPaymentWriter{}
}

// ContentType of the produced file.
func (XLSXPaymentWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// WritePayments writes one header row and one row per paid installment.
// Money columns are numeric cells with two decimals.
func (XLSXPaymentWriter) WritePayments(w io.Writer, payments []model.PaymentView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", paymentsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range paymentHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(paymentsSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	if err != nil {
		return fmt.Errorf("create money style: %w", err)
	}

	for i, p := range payments {
		row := i + 2
		inst := p.Installment
		paidAt := ""
		if inst.PaidAt() != nil {
			paidAt = inst.PaidAt().Format("2006-01-02 15:04")
		}
		values := []any{
			p.BeneficiaryName,
			p.BeneficiaryDNI,
			p.Contract.ID(),
			inst.Sequence(),
			p.DueDate().Format("2006-01-02"),
			inst.Amount().InexactFloat64(),
			inst.Penalty().InexactFloat64(),
			inst.Total().InexactFloat64(),
			inst.Medium().Label(),
			paidAt,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(paymentsSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if len(payments) > 0 {
		last := len(payments) + 1
		if err := f.SetCellStyle(paymentsSheet, "F2", fmt.Sprintf("H%d", last), moneyStyle); err != nil {
			return fmt.Errorf("style money columns: %w", err)
		}
	}
	if err := f.SetColWidth(paymentsSheet, "A", "A", 32); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
