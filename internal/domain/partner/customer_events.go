package partner

import (
	"github.com/google/uuid"

	"github.com/invoiceme/backend/internal/domain/shared"
)

// CustomerCreatedEvent is raised when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
}

// EventType returns the event type name
func (e *CustomerCreatedEvent) EventType() string {
	return "CustomerCreated"
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerCreated", "Customer", c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
		Email:           c.Email,
	}
}

// CustomerUpdatedEvent is raised when customer details change
type CustomerUpdatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
}

// EventType returns the event type name
func (e *CustomerUpdatedEvent) EventType() string {
	return "CustomerUpdated"
}

// NewCustomerUpdatedEvent creates a new CustomerUpdatedEvent
func NewCustomerUpdatedEvent(c *Customer) *CustomerUpdatedEvent {
	return &CustomerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerUpdated", "Customer", c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
		Email:           c.Email,
	}
}

// CustomerDeletedEvent is raised when a customer is removed
type CustomerDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
}

// EventType returns the event type name
func (e *CustomerDeletedEvent) EventType() string {
	return "CustomerDeleted"
}

// NewCustomerDeletedEvent creates a new CustomerDeletedEvent
func NewCustomerDeletedEvent(c *Customer) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerDeleted", "Customer", c.ID),
		CustomerID:      c.ID,
		Name:            c.Name,
	}
}
