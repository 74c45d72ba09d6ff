package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/prestamos/loan-service/internal/application/dto"
	"github.com/prestamos/loan-service/internal/application/usecase"
	"github.com/prestamos/loan-service/internal/infrastructure/adapter"
	"github.com/prestamos/loan-service/pkg/money"
)

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:      "schedule",
		Usage:     "Print the installment table for prospective loan terms",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "principal", Usage: "amount lent", Required: true},
			&cli.StringFlag{Name: "rate", Usage: "monthly interest rate in percent", Value: "0"},
			&cli.IntFlag{Name: "terms", Usage: "number of monthly installments", Required: true},
			&cli.StringFlag{Name: "start", Usage: "contract start date (YYYY-MM-DD)"},
			&cli.IntFlag{Name: "pay-day", Usage: "day of month installments fall due"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			preview := usecase.NewPreviewScheduleUseCase(adapter.NewSystemClock(cfg.Location()))
			resp, err := preview.Execute(dto.SchedulePreviewRequest{
				Principal:          c.String("principal"),
				MonthlyRatePercent: c.String("rate"),
				StartDate:          c.String("start"),
				PayDay:             c.Int("pay-day"),
				TermCount:          c.Int("terms"),
			})
			if err != nil {
				return err
			}
			return printSchedule(c, resp)
		},
	}
}

func printSchedule(c *cli.Context, resp dto.SchedulePreviewResponse) error {
	f := money.Default
	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "#\tDUE DATE\tAMOUNT")
	for _, line := range resp.Lines {
		due := line.DueDate
		if due == "" {
			due = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", line.Sequence, due, f.Format(line.Amount))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Installment\t\t%s\n", f.Format(resp.Installment))
	fmt.Fprintf(w, "Total payable\t\t%s\n", f.Format(resp.TotalPayable))
	fmt.Fprintf(w, "Total interest\t\t%s\n", f.Format(resp.TotalInterest))
	return w.Flush()
}
