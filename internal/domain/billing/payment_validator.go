package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
)

// PaymentValidator checks whether a prospective payment is acceptable
// for an invoice before it is recorded. All outcomes are recoverable
// validation errors returned to the caller.
type PaymentValidator struct {
	now func() time.Time
}

// NewPaymentValidator creates a payment validator using the system clock
func NewPaymentValidator() *PaymentValidator {
	return &PaymentValidator{now: time.Now}
}

// NewPaymentValidatorWithClock creates a payment validator with a custom
// clock, used in tests
func NewPaymentValidatorWithClock(now func() time.Time) *PaymentValidator {
	return &PaymentValidator{now: now}
}

// Validate checks a prospective payment against the invoice and its
// current balance. Returns the first violation found:
//   - INVALID_AMOUNT if the amount is not positive
//   - INVALID_INVOICE_STATE if the invoice is still a draft
//   - EXCEEDS_BALANCE if the amount is greater than the outstanding balance
//   - INVALID_DATE if the payment date is after today
func (v *PaymentValidator) Validate(inv *Invoice, amount valueobject.Money, paymentDate time.Time) error {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if inv.Status == InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_INVOICE_STATE", "Cannot record payment against a draft invoice")
	}
	if amount.Amount().GreaterThan(inv.Balance) {
		return shared.NewDomainError("EXCEEDS_BALANCE", fmt.Sprintf("Payment amount %s exceeds outstanding balance %s", amount.StringFixed(2), inv.Balance.StringFixed(2)))
	}
	if isAfterToday(paymentDate, v.now()) {
		return shared.NewDomainError("INVALID_DATE", "Payment date cannot be in the future")
	}

	return nil
}

// isAfterToday compares calendar dates, ignoring the time of day.
// A payment made later today is valid; one dated tomorrow is not.
func isAfterToday(t, now time.Time) bool {
	if t.Year() != now.Year() {
		return t.Year() > now.Year()
	}
	return t.YearDay() > now.YearDay()
}
