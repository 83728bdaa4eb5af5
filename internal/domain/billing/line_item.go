package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
)

// LineItem represents a single billable line on an invoice
type LineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // round2(Quantity * UnitPrice)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLineItem creates a new line item.
// Quantity must be at least 1 and unit price must not be negative.
func NewLineItem(invoiceID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money) (*LineItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line item description cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line item quantity must be at least 1")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Line item unit price cannot be negative")
	}

	now := time.Now()
	item := &LineItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item.recalculateSubtotal()

	return item, nil
}

// UpdateDescription updates the item description
func (i *LineItem) UpdateDescription(description string) error {
	if description == "" {
		return shared.NewDomainError("INVALID_INPUT", "Line item description cannot be empty")
	}

	i.Description = description
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateQuantity updates the quantity and recalculates the subtotal
func (i *LineItem) UpdateQuantity(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Line item quantity must be at least 1")
	}

	i.Quantity = quantity
	i.recalculateSubtotal()
	i.UpdatedAt = time.Now()

	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the subtotal
func (i *LineItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Line item unit price cannot be negative")
	}

	i.UnitPrice = unitPrice.Amount()
	i.recalculateSubtotal()
	i.UpdatedAt = time.Now()

	return nil
}

// recalculateSubtotal recomputes quantity * unitPrice rounded half-up
// to two decimal places
func (i *LineItem) recalculateSubtotal() {
	i.Subtotal = i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity)).Round(2)
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *LineItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.UnitPrice)
}

// GetSubtotalMoney returns the subtotal as Money value object
func (i *LineItem) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Subtotal)
}
