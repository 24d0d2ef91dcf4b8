package service

import (
	"context"
	"io"
	"time"

	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/domain/sale"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

// DefaultPerformanceWindow is the period of a seller report without explicit bounds.
const DefaultPerformanceWindow = 30 * 24 * time.Hour

// ReportWriter renders reports to a file format.
type ReportWriter interface {
	ContentType() string
	WriteReports(w io.Writer, reports []*sale.Report) error
	WritePerformance(w io.Writer, p *sale.Performance) error
}

// ReportService builds daily sales reports and seller performance reviews.
type ReportService struct {
	store     store.Store
	writer    ReportWriter
	publisher messaging.Publisher
	logger    logger.Logger
}

func NewReportService(st store.Store, writer ReportWriter, publisher messaging.Publisher, log logger.Logger) *ReportService {
	return &ReportService{store: st, writer: writer, publisher: publisher, logger: log}
}

// GenerateDaily rolls up the completed sales of day into its report,
// replacing any earlier report for that day. A day without completed sales
// yields ErrNoSales and writes nothing.
func (s *ReportService) GenerateDaily(ctx context.Context, day time.Time, actor Actor) (*sale.Report, error) {
	from, to := sale.DayBounds(day)

	var report *sale.Report
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		sel, err := resolveSeller(ctx, repos, actor)
		if err != nil {
			return err
		}

		summary, err := repos.Sales.Summarize(ctx, sale.Filter{From: from, To: to, OnlyCompleted: true})
		if err != nil {
			return err
		}
		if summary.Count == 0 {
			return ErrNoSales
		}

		report = sale.NewReport(from, summary, sel.ID)
		return repos.Reports.Upsert(ctx, report)
	})
	if err != nil {
		return nil, txError("generate report", err)
	}

	s.logger.Info("daily report generated",
		"report_date", report.ReportDate.Format("2006-01-02"),
		"total_sales", report.TotalSales.String(),
		"transactions", report.TotalCustomers)

	evt := map[string]any{
		"report_id":   report.ID,
		"report_date": report.ReportDate.Format("2006-01-02"),
		"total_sales": report.TotalSales,
	}
	if err := s.publisher.Publish(ctx, messaging.EventReportGenerated, evt); err != nil {
		s.logger.Error("failed to publish event", "event", messaging.EventReportGenerated, "error", err)
	}
	return report, nil
}

// List returns reports newest first. Sellers only see the reports they generated.
func (s *ReportService) List(ctx context.Context, actor Actor, from, to time.Time) ([]*sale.Report, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	generatedBy := ""
	if actor.IsSeller() {
		generatedBy = actor.SellerID
	}
	reports, err := s.store.Repos().Reports.List(ctx, generatedBy, from, to)
	if err != nil {
		s.logger.Error("error listing reports", "error", err)
		return []*sale.Report{}, nil
	}
	return reports, nil
}

// Get returns one report.
func (s *ReportService) Get(ctx context.Context, id string, actor Actor) (*sale.Report, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	r, err := s.store.Repos().Reports.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsSeller() && r.GeneratedBy != actor.SellerID {
		return nil, ErrForbidden
	}
	return r, nil
}

// DeleteAll removes every report.
func (s *ReportService) DeleteAll(ctx context.Context, actor Actor) (int, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}
	var n int
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		n, err = repos.Reports.DeleteAll(ctx)
		return err
	})
	if err != nil {
		return 0, txError("delete reports", err)
	}
	s.logger.Warn("all reports deleted", "count", n, "by", actor.UserID)
	return n, nil
}

// ContentType of the exported files.
func (s *ReportService) ContentType() string {
	return s.writer.ContentType()
}

// ExportReports writes the reports dated in [from, to) to w.
func (s *ReportService) ExportReports(ctx context.Context, w io.Writer, from, to time.Time) error {
	reports, err := s.store.Repos().Reports.List(ctx, "", from, to)
	if err != nil {
		return err
	}
	return s.writer.WriteReports(w, reports)
}

// SellerPerformance summarizes a seller's sales in [from, to). Zero bounds
// default to the last 30 days.
func (s *ReportService) SellerPerformance(ctx context.Context, sellerID string, from, to time.Time) (*sale.Performance, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.Add(-DefaultPerformanceWindow)
	}

	repos := s.store.Repos()
	sel, err := repos.Sellers.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	f := sale.Filter{SellerID: sellerID, From: from, To: to}
	summary, err := repos.Sales.Summarize(ctx, f)
	if err != nil {
		return nil, err
	}
	daily, err := repos.Sales.DailyTotals(ctx, f)
	if err != nil {
		return nil, err
	}
	sales, err := repos.Sales.List(ctx, f)
	if err != nil {
		return nil, err
	}

	name := sel.FirstName + " " + sel.LastName
	if sel.FirstName == "" && sel.LastName == "" {
		name = sel.Username
	}
	return &sale.Performance{
		SellerID:   sel.ID,
		SellerName: name,
		From:       from,
		To:         to,
		Summary:    summary,
		Average:    summary.Average(),
		Daily:      daily,
		Sales:      sales,
	}, nil
}

// ExportSellerPerformance writes SellerPerformance to w.
func (s *ReportService) ExportSellerPerformance(ctx context.Context, w io.Writer, sellerID string, from, to time.Time) error {
	p, err := s.SellerPerformance(ctx, sellerID, from, to)
	if err != nil {
		return err
	}
	return s.writer.WritePerformance(w, p)
}
