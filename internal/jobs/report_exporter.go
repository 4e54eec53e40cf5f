package jobs

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/reports"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/repositories"
	"github.com/prabhjotsinghchadha/renttrackr-sub001/internal/services"

	"github.com/google/uuid"
)

// ReportExporter renders a property financial report as a spreadsheet
// (CSV) and stores it in object storage.
type ReportExporter struct {
	reportSvc   *reports.ReportService
	paymentRepo repositories.PaymentRepository
	expenseRepo repositories.ExpenseRepository
	storage     services.StorageService
	bucket      string
}

type ExportResult struct {
	FileName        string `json:"file_name"`
	DownloadURL     string `json:"download_url"`
	RecordsExported int    `json:"records_exported"`
}

func NewReportExporter(
	reportSvc *reports.ReportService,
	paymentRepo repositories.PaymentRepository,
	expenseRepo repositories.ExpenseRepository,
	storage services.StorageService,
	bucket string,
) *ReportExporter {
	return &ReportExporter{
		reportSvc:   reportSvc,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
		storage:     storage,
		bucket:      bucket,
	}
}

// ExportPropertyReport builds the CSV, uploads it and returns a
// presigned download link valid for 24 hours.
func (e *ReportExporter) ExportPropertyReport(ctx context.Context, userID, propertyID uuid.UUID) (*ExportResult, error) {
	content, records, err := e.BuildCSV(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("property-report-%s-%s.csv", propertyID.String(), time.Now().Format("20060102-150405"))
	if err := e.storage.UploadReport(ctx, e.bucket, fileName, bytes.NewReader(content), int64(len(content))); err != nil {
		return nil, fmt.Errorf("failed to upload report: %v", err)
	}

	url, err := e.storage.GetPresignedURL(ctx, e.bucket, fileName, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to presign report: %v", err)
	}

	return &ExportResult{
		FileName:        fileName,
		DownloadURL:     url,
		RecordsExported: records,
	}, nil
}

// BuildCSV assembles the report: a summary block followed by payment and
// expense line items. The record count covers line items only.
func (e *ReportExporter) BuildCSV(ctx context.Context, userID, propertyID uuid.UUID) ([]byte, int, error) {
	report, err := e.reportSvc.PropertyFinancials(ctx, userID, propertyID)
	if err != nil {
		return nil, 0, err
	}
	payments, err := e.paymentRepo.ListByProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %v", err)
	}
	expenses, err := e.expenseRepo.ListByProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %v", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	summary := [][]string{
		{"Property Financial Report"},
		{"Address", report.Address},
		{"Total Income", formatAmount(report.TotalIncome)},
		{"Total Expenses", formatAmount(report.TotalExpenses)},
		{"Renovation Costs", formatAmount(report.RenovationCosts)},
		{"Net Cash Flow", formatAmount(report.NetCashFlow)},
		{"Return On Investment %", formatAmount(report.ReturnOnInvestment)},
		{"Annualized ROI %", formatAmount(report.AnnualizedROI)},
		{},
		{"Payments"},
		{"Paid On", "Period", "Method", "Amount"},
	}
	for _, row := range summary {
		if err := w.Write(row); err != nil {
			return nil, 0, err
		}
	}

	records := 0
	for _, p := range payments {
		row := []string{p.PaidOn.Format("2006-01-02"), p.Period, p.Method, formatAmount(p.Amount)}
		if err := w.Write(row); err != nil {
			return nil, 0, err
		}
		records++
	}

	expenseHeader := [][]string{
		{},
		{"Expenses"},
		{"Incurred On", "Category", "Amount"},
	}
	for _, row := range expenseHeader {
		if err := w.Write(row); err != nil {
			return nil, 0, err
		}
	}
	for _, ex := range expenses {
		row := []string{ex.IncurredOn.Format("2006-01-02"), ex.Category, formatAmount(ex.Amount)}
		if err := w.Write(row); err != nil {
			return nil, 0, err
		}
		records++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), records, nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
