package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/VS237/momshop/internal/adapter/export"
	"github.com/VS237/momshop/internal/service"
)

const dateLayout = "2006-01-02"

func (c *cli) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate and export daily sales reports",
	}

	var date string
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Roll up a day's completed sales into its report",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if date != "" {
				var err error
				if day, err = time.ParseInLocation(dateLayout, date, time.Local); err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}

			svc, err := c.reportService(cmd)
			if err != nil {
				return err
			}
			report, err := svc.GenerateDaily(cmd.Context(), day, systemActor)
			if err != nil {
				return err
			}
			return c.printJSON(report)
		},
	}
	daily.Flags().StringVar(&date, "date", "", "day to roll up (YYYY-MM-DD), today by default")
	cmd.AddCommand(daily)

	var from, to, output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the reports of a date range to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDay, err := parseOptionalDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			toDay, err := parseOptionalDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}
			if !toDay.IsZero() {
				toDay = toDay.AddDate(0, 0, 1)
			}

			svc, err := c.reportService(cmd)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("error creating %s: %w", output, err)
			}
			if err := svc.ExportReports(cmd.Context(), f, fromDay, toDay); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			c.log.Info("reports exported", "file", output)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&from, "from", "", "first day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&to, "to", "", "last day (YYYY-MM-DD)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "daily-reports.xlsx", "spreadsheet to write")
	cmd.AddCommand(exportCmd)

	return cmd
}

func (c *cli) reportService(cmd *cobra.Command) (*service.ReportService, error) {
	st, err := c.openStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	return service.NewReportService(st, export.NewExcelReportWriter(), c.openPublisher(), c.log), nil
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, time.Local)
}
