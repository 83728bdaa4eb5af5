package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/shared"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID     // Filter by customer
	Status     *InvoiceStatus // Filter by status
	FromDate   *time.Time     // Filter by issue date range start
	ToDate     *time.Time     // Filter by issue date range end
	Overdue    *bool          // Filter only overdue invoices
}

// InvoiceRepository defines the interface for invoice persistence.
// Lookups return shared.ErrNotFound when no invoice matches; they never
// return a nil invoice with a nil error.
type InvoiceRepository interface {
	// FindByID finds an invoice by ID, including its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByInvoiceNumber finds an invoice by its number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices with filtering and pagination
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// FindByCustomer finds invoices for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// Save creates or updates an invoice and its line items
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// SaveWithLockAndPayment saves the invoice with optimistic locking and
	// persists the payment record in the same transaction, so a lost
	// version race leaves no payment behind
	SaveWithLockAndPayment(ctx context.Context, invoice *Invoice, payment *Payment) error

	// Delete deletes an invoice and its line items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// CountByStatus counts invoices in a given status
	CountByStatus(ctx context.Context, status InvoiceStatus) (int64, error)

	// CountByCustomer counts invoices belonging to a customer
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// SumOutstanding returns the total outstanding balance across sent invoices
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)

	// SumPaid returns the total collected amount across all invoices
	SumPaid(ctx context.Context) (decimal.Decimal, error)

	// ExistsByInvoiceNumber checks if an invoice number is already taken
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error)

	// NextInvoiceNumber generates the next unique invoice number
	NextInvoiceNumber(ctx context.Context) (string, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	InvoiceID *uuid.UUID     // Filter by invoice
	Method    *PaymentMethod // Filter by payment method
	FromDate  *time.Time     // Filter by payment date range start
	ToDate    *time.Time     // Filter by payment date range end
}

// PaymentRepository defines the interface for payment persistence.
// Lookups return shared.ErrNotFound when no payment matches; they never
// return a nil payment with a nil error.
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByInvoice finds all payments recorded against an invoice,
	// ordered by payment date
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// FindAll finds payments with filtering and pagination
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	// Save creates a payment record
	Save(ctx context.Context, payment *Payment) error

	// Delete deletes a payment record
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// SumByInvoice returns the total amount paid against an invoice
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)
}
