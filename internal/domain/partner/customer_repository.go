package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoiceme/backend/internal/domain/shared"
)

// CustomerFilter defines filtering options for customer queries
type CustomerFilter struct {
	shared.Filter
	Email *string // Filter by exact email
}

// CustomerRepository defines the interface for customer persistence.
// Lookups return shared.ErrNotFound when no customer matches; they never
// return a nil customer with a nil error.
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by email
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// FindAll finds customers with filtering and pagination.
	// The filter's Search term matches against name and email.
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// ExistsByEmail checks if a customer with the email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
