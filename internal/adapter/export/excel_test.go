package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/VS237/momshop/internal/domain/sale"
)

func TestWriteReports(t *testing.T) {
	reports := []*sale.Report{
		{
			ReportDate:        time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			TotalSales:        decimal.NewFromInt(3600),
			TotalCustomers:    3,
			TotalProductsSold: 6,
			CashSales:         decimal.NewFromInt(2000),
			MobileMoneySales:  decimal.NewFromInt(1000),
			CardSales:         decimal.NewFromInt(600),
		},
		{
			ReportDate:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			TotalSales:        decimal.NewFromInt(1500),
			TotalCustomers:    1,
			TotalProductsSold: 3,
			CashSales:         decimal.NewFromInt(1500),
			MobileMoneySales:  decimal.Zero,
			CardSales:         decimal.Zero,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewExcelReportWriter().WriteReports(&buf, reports))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reports")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "2024-05-02", rows[1][0])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "Card", rows[0][6])
	assert.Equal(t, "5100", rows[3][1])
	assert.Equal(t, "4", rows[3][2])
	assert.Equal(t, "9", rows[3][3])
	assert.Equal(t, "3500", rows[3][4])
	assert.Equal(t, "1000", rows[3][5])
	assert.Equal(t, "600", rows[3][6])
}

func TestWriteReports_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelReportWriter().WriteReports(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Reports")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TOTAL", rows[1][0])
	assert.Equal(t, "0", rows[1][1])
}

func TestWritePerformance(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	p := &sale.Performance{
		SellerName: "Jane Doe",
		From:       day.AddDate(0, 0, -30),
		To:         day,
		Summary:    sale.Summary{Total: decimal.NewFromInt(1500), Count: 1, Units: 3},
		Average:    decimal.NewFromInt(1500),
		Daily:      []sale.DailyPoint{{Date: day, Total: decimal.NewFromInt(1500), Count: 1}},
		Sales: []*sale.Sale{{
			Number:        "s-1",
			ProductName:   "Rice 5kg",
			Quantity:      3,
			SaleAmount:    decimal.NewFromInt(1500),
			PaymentMethod: sale.PaymentCash,
			IsCompleted:   true,
			SaleDate:      day.Add(10 * time.Hour),
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, NewExcelReportWriter().WritePerformance(&buf, p))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Daily", "Sales"}, f.GetSheetList())

	name, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", name)

	rows, err := f.GetRows("Sales")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rice 5kg", rows[1][2])
	assert.Equal(t, "cash", rows[1][5])
}
