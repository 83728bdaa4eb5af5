package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
)

// PaymentService provides application-level payment operations
type PaymentService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	validator   *billing.PaymentValidator
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	validator *billing.PaymentValidator,
) *PaymentService {
	if validator == nil {
		validator = billing.NewPaymentValidator()
	}
	return &PaymentService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		validator:   validator,
	}
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate *time.Time      `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   string          `json:"reference,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordPaymentResult bundles the recorded payment with the updated invoice
type RecordPaymentResult struct {
	Payment PaymentResponse  `json:"payment"`
	Invoice *InvoiceResponse `json:"invoice"`
}

// PaymentListFilter defines filtering options for payment list queries
type PaymentListFilter struct {
	InvoiceID *uuid.UUID `form:"invoice_id"`
	Method    string     `form:"method"`
	FromDate  *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate    *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
}

// RecordPayment validates and records a payment against an invoice,
// reducing the invoice balance and marking it PAID when fully covered.
func (s *PaymentService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResult, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	amount := valueobject.NewMoneyUSD(req.Amount)
	if err := s.validator.Validate(inv, amount, paymentDate); err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(inv.ID, amount, paymentDate, billing.PaymentMethod(req.Method), req.Reference, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := inv.ApplyPayment(amount, payment.ID); err != nil {
		return nil, err
	}

	// One transaction covers the payment row and the invoice balance. A
	// concurrent payment that loses the version race persists nothing.
	if err := s.invoiceRepo.SaveWithLockAndPayment(ctx, inv, payment); err != nil {
		return nil, err
	}

	return &RecordPaymentResult{
		Payment: *toPaymentResponse(payment),
		Invoice: toInvoiceResponse(inv),
	}, nil
}

// GetPayment gets a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListPaymentsForInvoice lists all payments recorded against an invoice
func (s *PaymentService) ListPaymentsForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *toPaymentResponse(&payments[i])
	}
	return responses, nil
}

// ListPayments lists payments with filtering and pagination
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := billing.PaymentFilter{
		InvoiceID: filter.InvoiceID,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
	}
	domainFilter.Filter = shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	if filter.Method != "" {
		method := billing.PaymentMethod(filter.Method)
		if !method.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown payment method filter")
		}
		domainFilter.Method = &method
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = *toPaymentResponse(&payments[i])
	}
	return responses, total, nil
}

// VerifyInvoiceBalance recomputes the invoice balance from its payment
// history and reconciles the stored snapshot. A history that overshoots
// the invoice total surfaces as an INCONSISTENCY error.
func (s *PaymentService) VerifyInvoiceBalance(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.SumByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	previous := inv.Balance
	if err := inv.RecalculateBalance(paid); err != nil {
		return nil, err
	}

	if !previous.Equal(inv.Balance) {
		if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
			return nil, err
		}
	}

	return toInvoiceResponse(inv), nil
}

func toPaymentResponse(p *billing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method.String(),
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
