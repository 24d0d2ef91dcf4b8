// Package export renders sales data as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/VS237/momshop/internal/domain/sale"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// ExcelReportWriter writes reports and seller performance to XLSX.
type ExcelReportWriter struct{}

func NewExcelReportWriter() *ExcelReportWriter {
	return &ExcelReportWriter{}
}

// ContentType is the MIME type of the produced files.
func (ExcelReportWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// WriteReports writes one row per daily report followed by a totals row.
func (w *ExcelReportWriter) WriteReports(out io.Writer, reports []*sale.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Reports"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	header := []any{"Date", "Total sales", "Transactions", "Products sold", "Cash", "Mobile money", "Card"}
	if err := writeHeader(f, sheet, header); err != nil {
		return err
	}

	var (
		total, cash, momo, card decimal.Decimal
		txs, units              int
	)
	row := 2
	for _, r := range reports {
		values := []any{
			r.ReportDate.Format(dateLayout),
			r.TotalSales.InexactFloat64(),
			r.TotalCustomers,
			r.TotalProductsSold,
			r.CashSales.InexactFloat64(),
			r.MobileMoneySales.InexactFloat64(),
			r.CardSales.InexactFloat64(),
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		total = total.Add(r.TotalSales)
		cash = cash.Add(r.CashSales)
		momo = momo.Add(r.MobileMoneySales)
		card = card.Add(r.CardSales)
		txs += r.TotalCustomers
		units += r.TotalProductsSold
		row++
	}

	totals := []any{"TOTAL", total.InexactFloat64(), txs, units, cash.InexactFloat64(), momo.InexactFloat64(), card.InexactFloat64()}
	if err := setRow(f, sheet, row, totals); err != nil {
		return err
	}
	if err := boldRow(f, sheet, row, len(totals)); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "G", 16); err != nil {
		return fmt.Errorf("error sizing columns: %w", err)
	}
	return write(f, out)
}

// WritePerformance writes a summary sheet, the daily trend and every sale
// of the period.
func (w *ExcelReportWriter) WritePerformance(out io.Writer, p *sale.Performance) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}

	lines := [][]any{
		{"Seller", p.SellerName},
		{"From", p.From.Format(dateLayout)},
		{"To", p.To.Format(dateLayout)},
		{"Total revenue", p.Summary.Total.InexactFloat64()},
		{"Transactions", p.Summary.Count},
		{"Units sold", p.Summary.Units},
		{"Average sale", p.Average.InexactFloat64()},
	}
	for i, l := range lines {
		if err := setRow(f, summary, i+1, l); err != nil {
			return err
		}
	}

	const daily = "Daily"
	if _, err := f.NewSheet(daily); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	if err := writeHeader(f, daily, []any{"Date", "Total", "Transactions"}); err != nil {
		return err
	}
	for i, d := range p.Daily {
		if err := setRow(f, daily, i+2, []any{d.Date.Format(dateLayout), d.Total.InexactFloat64(), d.Count}); err != nil {
			return err
		}
	}

	const sales = "Sales"
	if _, err := f.NewSheet(sales); err != nil {
		return fmt.Errorf("error creating sheet: %w", err)
	}
	if err := writeHeader(f, sales, []any{"Number", "Date", "Product", "Quantity", "Amount", "Payment", "Completed"}); err != nil {
		return err
	}
	for i, s := range p.Sales {
		values := []any{
			s.Number,
			s.SaleDate.Format(dateTimeLayout),
			s.ProductName,
			s.Quantity,
			s.SaleAmount.InexactFloat64(),
			string(s.PaymentMethod),
			s.IsCompleted,
		}
		if err := setRow(f, sales, i+2, values); err != nil {
			return err
		}
	}

	for _, sheet := range []string{summary, daily, sales} {
		if err := f.SetColWidth(sheet, "A", "G", 18); err != nil {
			return fmt.Errorf("error sizing columns: %w", err)
		}
	}
	return write(f, out)
}

func writeHeader(f *excelize.File, sheet string, header []any) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	return boldRow(f, sheet, 1, len(header))
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("error writing row %d: %w", row, err)
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("error creating style: %w", err)
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func write(f *excelize.File, out io.Writer) error {
	if err := f.Write(out); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}
