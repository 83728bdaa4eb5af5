package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/invoiceme/backend/internal/domain/shared"
)

// recentLimit is the number of recent invoices and payments returned
// with the dashboard figures.
const recentLimit = 5

// StatsService aggregates billing figures for the dashboard
type StatsService struct {
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	customerRepo partner.CustomerRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	customerRepo partner.CustomerRepository,
) *StatsService {
	return &StatsService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// DashboardStats summarises the billing position
type DashboardStats struct {
	CustomerCount    int64             `json:"customer_count"`
	InvoiceCount     int64             `json:"invoice_count"`
	DraftCount       int64             `json:"draft_count"`
	SentCount        int64             `json:"sent_count"`
	PaidCount        int64             `json:"paid_count"`
	OverdueCount     int64             `json:"overdue_count"`
	TotalOutstanding decimal.Decimal   `json:"total_outstanding"`
	TotalCollected   decimal.Decimal   `json:"total_collected"`
	RecentInvoices   []InvoiceResponse `json:"recent_invoices"`
	RecentPayments   []PaymentResponse `json:"recent_payments"`
}

// GetDashboardStats computes the current dashboard figures
func (s *StatsService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	customerCount, err := s.customerRepo.Count(ctx, partner.CustomerFilter{Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, err
	}

	invoiceCount, err := s.invoiceRepo.Count(ctx, billing.InvoiceFilter{Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, err
	}

	draftCount, err := s.invoiceRepo.CountByStatus(ctx, billing.InvoiceStatusDraft)
	if err != nil {
		return nil, err
	}
	sentCount, err := s.invoiceRepo.CountByStatus(ctx, billing.InvoiceStatusSent)
	if err != nil {
		return nil, err
	}
	paidCount, err := s.invoiceRepo.CountByStatus(ctx, billing.InvoiceStatusPaid)
	if err != nil {
		return nil, err
	}

	overdue := true
	overdueFilter := billing.InvoiceFilter{Filter: shared.DefaultFilter(), Overdue: &overdue}
	overdueCount, err := s.invoiceRepo.Count(ctx, overdueFilter)
	if err != nil {
		return nil, err
	}

	totalOutstanding, err := s.invoiceRepo.SumOutstanding(ctx)
	if err != nil {
		return nil, err
	}

	totalCollected, err := s.invoiceRepo.SumPaid(ctx)
	if err != nil {
		return nil, err
	}

	recentInvoiceFilter := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	recentInvoiceFilter.PageSize = recentLimit
	recentInvoices, err := s.invoiceRepo.FindAll(ctx, recentInvoiceFilter)
	if err != nil {
		return nil, err
	}

	recentPaymentFilter := billing.PaymentFilter{Filter: shared.DefaultFilter()}
	recentPaymentFilter.PageSize = recentLimit
	recentPayments, err := s.paymentRepo.FindAll(ctx, recentPaymentFilter)
	if err != nil {
		return nil, err
	}

	invoiceResponses := make([]InvoiceResponse, len(recentInvoices))
	for i := range recentInvoices {
		invoiceResponses[i] = *toInvoiceResponse(&recentInvoices[i])
	}
	paymentResponses := make([]PaymentResponse, len(recentPayments))
	for i := range recentPayments {
		paymentResponses[i] = *toPaymentResponse(&recentPayments[i])
	}

	return &DashboardStats{
		CustomerCount:    customerCount,
		InvoiceCount:     invoiceCount,
		DraftCount:       draftCount,
		SentCount:        sentCount,
		PaidCount:        paidCount,
		OverdueCount:     overdueCount,
		TotalOutstanding: totalOutstanding,
		TotalCollected:   totalCollected,
		RecentInvoices:   invoiceResponses,
		RecentPayments:   paymentResponses,
	}, nil
}
