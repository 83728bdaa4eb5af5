package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT" // Editable, not yet issued to the customer
	InvoiceStatusSent  InvoiceStatus = "SENT"  // Issued, awaiting payment
	InvoiceStatusPaid  InvoiceStatus = "PAID"  // Fully paid, terminal
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions only move forward: DRAFT -> SENT -> PAID.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusSent
	case InvoiceStatusSent:
		return target == InvoiceStatusPaid
	case InvoiceStatusPaid:
		return false // Terminal state
	}
	return false
}

// CanModifyItems returns true if line items can be changed in this status
func (s InvoiceStatus) CanModifyItems() bool {
	return s == InvoiceStatusDraft
}

// Invoice represents an invoice aggregate root.
// It owns its line items and tracks the outstanding balance as payments
// are applied.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	CustomerID    uuid.UUID
	CustomerName  string
	Items         []LineItem
	TotalAmount   decimal.Decimal // Sum of line item subtotals
	Balance       decimal.Decimal // TotalAmount minus applied payments
	Status        InvoiceStatus
	IssueDate     time.Time
	DueDate       *time.Time
	Notes         string
	SentAt        *time.Time
	PaidAt        *time.Time
}

// NewInvoice creates a new invoice in DRAFT status
func NewInvoice(invoiceNumber string, customerID uuid.UUID, customerName string, issueDate time.Time, dueDate *time.Time) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if dueDate != nil && dueDate.Before(issueDate) {
		return nil, shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             make([]LineItem, 0),
		TotalAmount:       decimal.Zero,
		Balance:           decimal.Zero,
		Status:            InvoiceStatusDraft,
		IssueDate:         issueDate,
		DueDate:           dueDate,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem adds a new line item to the invoice.
// Only allowed in DRAFT status.
func (inv *Invoice) AddItem(description string, quantity int64, unitPrice valueobject.Money) (*LineItem, error) {
	if !inv.Status.CanModifyItems() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items to invoice in %s status", inv.Status))
	}

	item, err := NewLineItem(inv.ID, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemDescription updates the description of an existing line item.
// Only allowed in DRAFT status.
func (inv *Invoice) UpdateItemDescription(itemID uuid.UUID, description string) error {
	if !inv.Status.CanModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update items on invoice in %s status", inv.Status))
	}

	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			if err := inv.Items[idx].UpdateDescription(description); err != nil {
				return err
			}
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice line item not found")
}

// UpdateItemQuantity updates the quantity of an existing line item.
// Only allowed in DRAFT status.
func (inv *Invoice) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if !inv.Status.CanModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update items on invoice in %s status", inv.Status))
	}

	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			if err := inv.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice line item not found")
}

// UpdateItemPrice updates the unit price of an existing line item.
// Only allowed in DRAFT status.
func (inv *Invoice) UpdateItemPrice(itemID uuid.UUID, unitPrice valueobject.Money) error {
	if !inv.Status.CanModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot update items on invoice in %s status", inv.Status))
	}

	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			if err := inv.Items[idx].UpdateUnitPrice(unitPrice); err != nil {
				return err
			}
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice line item not found")
}

// RemoveItem removes a line item from the invoice.
// Only allowed in DRAFT status.
func (inv *Invoice) RemoveItem(itemID uuid.UUID) error {
	if !inv.Status.CanModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot remove items from invoice in %s status", inv.Status))
	}

	for idx, item := range inv.Items {
		if item.ID == itemID {
			inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)
			inv.recalculateTotals()
			inv.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Invoice line item not found")
}

// SetNotes sets the invoice notes
func (inv *Invoice) SetNotes(notes string) {
	inv.Notes = notes
	inv.UpdatedAt = time.Now()
}

// SetDueDate updates the due date.
// Only allowed in DRAFT status.
func (inv *Invoice) SetDueDate(dueDate *time.Time) error {
	if !inv.Status.CanModifyItems() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change due date on invoice in %s status", inv.Status))
	}
	if dueDate != nil && dueDate.Before(inv.IssueDate) {
		return shared.NewDomainError("INVALID_DATE", "Due date cannot be before issue date")
	}

	inv.DueDate = dueDate
	inv.UpdatedAt = time.Now()

	return nil
}

// Send marks the invoice as sent, transitioning from DRAFT to SENT.
// Requires at least one line item and a positive total.
func (inv *Invoice) Send() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot send invoice in %s status", inv.Status))
	}
	if len(inv.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot send invoice without line items")
	}
	if inv.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoice total must be positive")
	}

	now := time.Now()
	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.UpdatedAt = now

	inv.AddDomainEvent(NewInvoiceSentEvent(inv))

	return nil
}

// ApplyPayment applies a payment to the invoice balance.
// The invoice must have been sent and the amount must be positive and
// no greater than the outstanding balance. Drives the invoice to PAID
// when the balance reaches zero.
func (inv *Invoice) ApplyPayment(amount valueobject.Money, paymentID uuid.UUID) error {
	if inv.Status == InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_INVOICE_STATE", "Cannot record payment against a draft invoice")
	}
	if !inv.CanRecordPayment() {
		return shared.NewDomainError("INVALID_INVOICE_STATE", fmt.Sprintf("Cannot record payment against invoice in %s status", inv.Status))
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(inv.Balance) {
		return shared.NewDomainError("EXCEEDS_BALANCE", fmt.Sprintf("Payment amount %s exceeds outstanding balance %s", amount.StringFixed(2), inv.Balance.StringFixed(2)))
	}
	if paymentID == uuid.Nil {
		return shared.NewDomainError("INVALID_PAYMENT", "Payment ID cannot be empty")
	}

	inv.Balance = inv.Balance.Sub(amount.Amount())

	now := time.Now()
	if inv.Balance.IsZero() {
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &now
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	} else {
		inv.AddDomainEvent(NewInvoicePaymentAppliedEvent(inv, paymentID, amount))
	}

	inv.UpdatedAt = now

	return nil
}

// RecalculateBalance rebuilds the balance from the sum of recorded payments.
// A computed balance below zero means the stored snapshot disagrees with the
// payment history and is surfaced as an INCONSISTENCY error rather than
// clamped.
func (inv *Invoice) RecalculateBalance(paymentsTotal decimal.Decimal) error {
	balance := inv.TotalAmount.Sub(paymentsTotal)
	if balance.IsNegative() {
		return shared.NewDomainError("INCONSISTENCY", fmt.Sprintf("Payments total %s exceeds invoice total %s", paymentsTotal.StringFixed(2), inv.TotalAmount.StringFixed(2)))
	}

	inv.Balance = balance
	if inv.Status == InvoiceStatusSent && balance.IsZero() {
		now := time.Now()
		inv.Status = InvoiceStatusPaid
		inv.PaidAt = &now
	}
	inv.UpdatedAt = time.Now()

	return nil
}

// CanRecordPayment returns true if the invoice can accept a payment:
// it has been issued and still carries an outstanding balance.
func (inv *Invoice) CanRecordPayment() bool {
	return inv.Status != InvoiceStatusDraft && inv.Balance.GreaterThan(decimal.Zero)
}

// recalculateTotals recomputes the invoice total from its line items.
// Line items are only mutable in DRAFT where no payments exist yet, so
// the balance always equals the total here.
func (inv *Invoice) recalculateTotals() {
	total := decimal.Zero
	for _, item := range inv.Items {
		total = total.Add(item.Subtotal)
	}
	inv.TotalAmount = total.Round(2)
	inv.Balance = inv.TotalAmount
}

// GetTotalAmountMoney returns the invoice total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.TotalAmount)
}

// GetBalanceMoney returns the outstanding balance as Money
func (inv *Invoice) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.Balance)
}

// PaidAmount returns the portion of the total already paid
func (inv *Invoice) PaidAmount() decimal.Decimal {
	return inv.TotalAmount.Sub(inv.Balance)
}

// ItemCount returns the number of line items on the invoice
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// GetItem returns a line item by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *LineItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// IsDraft returns true if the invoice is in draft status
func (inv *Invoice) IsDraft() bool {
	return inv.Status == InvoiceStatusDraft
}

// IsSent returns true if the invoice has been sent
func (inv *Invoice) IsSent() bool {
	return inv.Status == InvoiceStatusSent
}

// IsPaid returns true if the invoice is fully paid
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsOverdue returns true if the invoice is past its due date and unpaid
func (inv *Invoice) IsOverdue() bool {
	if inv.Status != InvoiceStatusSent {
		return false
	}
	if inv.DueDate == nil {
		return false
	}
	return time.Now().After(*inv.DueDate)
}
