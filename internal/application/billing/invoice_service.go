package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/partner"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
)

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	paymentRepo  billing.PaymentRepository
	customerRepo partner.CustomerRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	customerRepo partner.CustomerRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// LineItemRequest represents a line item in create/update requests
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	IssueDate  *time.Time        `json:"issue_date"`
	DueDate    *time.Time        `json:"due_date"`
	Notes      string            `json:"notes"`
	Items      []LineItemRequest `json:"items" binding:"dive"`
}

// UpdateInvoiceRequest represents a request to update a draft invoice
type UpdateInvoiceRequest struct {
	DueDate *time.Time `json:"due_date"`
	Notes   *string    `json:"notes"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID          `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    uuid.UUID          `json:"customer_id"`
	CustomerName  string             `json:"customer_name"`
	Status        string             `json:"status"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Balance       decimal.Decimal    `json:"balance"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	IssueDate     time.Time          `json:"issue_date"`
	DueDate       *time.Time         `json:"due_date,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	Items         []LineItemResponse `json:"items"`
	Overdue       bool               `json:"overdue"`
	SentAt        *time.Time         `json:"sent_at,omitempty"`
	PaidAt        *time.Time         `json:"paid_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Version       int                `json:"version"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Overdue    *bool      `form:"overdue"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// invoiceNumberAttempts bounds retries when a concurrently created
// invoice claims the generated number first.
const invoiceNumberAttempts = 3

// CreateInvoice creates a new draft invoice, optionally with initial line items
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	for attempt := 1; ; attempt++ {
		number, err := s.invoiceRepo.NextInvoiceNumber(ctx)
		if err != nil {
			return nil, err
		}

		inv, err := billing.NewInvoice(number, customer.ID, customer.Name, issueDate, req.DueDate)
		if err != nil {
			return nil, err
		}
		if req.Notes != "" {
			inv.SetNotes(req.Notes)
		}

		for _, item := range req.Items {
			if _, err := inv.AddItem(item.Description, item.Quantity, valueobject.NewMoneyUSD(item.UnitPrice)); err != nil {
				return nil, err
			}
		}

		err = s.invoiceRepo.Save(ctx, inv)
		if err == nil {
			return toInvoiceResponse(inv), nil
		}
		if !isDomainCode(err, "ALREADY_EXISTS") || attempt == invoiceNumberAttempts {
			return nil, err
		}
	}
}

// GetInvoice gets an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// GetInvoiceByNumber gets an invoice by its number
func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByInvoiceNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lists invoices with filtering and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := billing.InvoiceFilter{
		CustomerID: filter.CustomerID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		Overdue:    filter.Overdue,
	}
	domainFilter.Filter = shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Unknown invoice status filter")
		}
		domainFilter.Status = &status
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = *toInvoiceResponse(&invoices[i])
	}

	return responses, total, nil
}

// UpdateInvoice updates mutable invoice fields (due date, notes)
func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DueDate != nil {
		if err := inv.SetDueDate(req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		inv.SetNotes(*req.Notes)
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// AddLineItem adds a line item to a draft invoice
func (s *InvoiceService) AddLineItem(ctx context.Context, invoiceID uuid.UUID, req LineItemRequest) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if _, err := inv.AddItem(req.Description, req.Quantity, valueobject.NewMoneyUSD(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// UpdateLineItem updates an existing line item on a draft invoice
func (s *InvoiceService) UpdateLineItem(ctx context.Context, invoiceID, itemID uuid.UUID, req LineItemRequest) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.UpdateItemDescription(itemID, req.Description); err != nil {
		return nil, err
	}
	if err := inv.UpdateItemQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}
	if err := inv.UpdateItemPrice(itemID, valueobject.NewMoneyUSD(req.UnitPrice)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// RemoveLineItem removes a line item from a draft invoice
func (s *InvoiceService) RemoveLineItem(ctx context.Context, invoiceID, itemID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := inv.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// SendInvoice issues a draft invoice to the customer
func (s *InvoiceService) SendInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := inv.Send(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, inv); err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv), nil
}

// DeleteInvoice deletes an invoice. Only drafts can be deleted; issued
// invoices are part of the billing record.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.findInvoice(ctx, id)
	if err != nil {
		return err
	}

	if !inv.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft invoices can be deleted")
	}

	return s.invoiceRepo.Delete(ctx, id)
}

func (s *InvoiceService) findInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

func isDomainCode(err error, code string) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

func toInvoiceResponse(inv *billing.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = LineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		}
	}

	return &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Status:        inv.Status.String(),
		TotalAmount:   inv.TotalAmount,
		Balance:       inv.Balance,
		PaidAmount:    inv.PaidAmount(),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		Items:         items,
		Overdue:       inv.IsOverdue(),
		SentAt:        inv.SentAt,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Version:       inv.GetVersion(),
	}
}
