package partner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid fields", func(t *testing.T) {
		c, err := NewCustomer("Acme Corp", "billing@acme.com")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", c.Name)
		assert.Equal(t, "billing@acme.com", c.Email)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("rejects name shorter than two characters", func(t *testing.T) {
		_, err := NewCustomer("A", "billing@acme.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2 characters")

		_, err = NewCustomer("", "billing@acme.com")
		require.Error(t, err)
	})

	t.Run("rejects overly long name", func(t *testing.T) {
		_, err := NewCustomer(strings.Repeat("a", 201), "billing@acme.com")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		invalid := []string{"", "plainaddress", "missing@tld", "@no-local.com", "spaces in@mail.com"}
		for _, email := range invalid {
			_, err := NewCustomer("Acme Corp", email)
			assert.Error(t, err, "email %q should be rejected", email)
		}
	})

	t.Run("accepts common email formats", func(t *testing.T) {
		valid := []string{"a@b.co", "first.last@example.com", "user+tag@sub.domain.org"}
		for _, email := range valid {
			_, err := NewCustomer("Acme Corp", email)
			assert.NoError(t, err, "email %q should be accepted", email)
		}
	})
}

func TestCustomer_Update(t *testing.T) {
	c, err := NewCustomer("Acme Corp", "billing@acme.com")
	require.NoError(t, err)
	initialVersion := c.GetVersion()

	t.Run("updates name and email", func(t *testing.T) {
		require.NoError(t, c.Update("Acme Corporation", "accounts@acme.com"))
		assert.Equal(t, "Acme Corporation", c.Name)
		assert.Equal(t, "accounts@acme.com", c.Email)
		assert.Equal(t, initialVersion+1, c.GetVersion())
	})

	t.Run("rejects invalid updates without mutation", func(t *testing.T) {
		err := c.Update("X", "accounts@acme.com")
		require.Error(t, err)
		assert.Equal(t, "Acme Corporation", c.Name)

		err = c.Update("Acme Corporation", "not-an-email")
		require.Error(t, err)
		assert.Equal(t, "accounts@acme.com", c.Email)
	})
}

func TestCustomer_SetContact(t *testing.T) {
	c, err := NewCustomer("Acme Corp", "billing@acme.com")
	require.NoError(t, err)

	t.Run("sets phone and address", func(t *testing.T) {
		require.NoError(t, c.SetContact("+1 (555) 123-4567", "100 Main St, Springfield"))
		assert.Equal(t, "+1 (555) 123-4567", c.Phone)
		assert.Equal(t, "100 Main St, Springfield", c.Address)
	})

	t.Run("allows clearing optional fields", func(t *testing.T) {
		require.NoError(t, c.SetContact("", ""))
		assert.Empty(t, c.Phone)
		assert.Empty(t, c.Address)
	})

	t.Run("rejects malformed phone", func(t *testing.T) {
		err := c.SetContact("call me maybe", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid phone number format")
	})

	t.Run("rejects overly long address", func(t *testing.T) {
		err := c.SetContact("", strings.Repeat("a", 501))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 500 characters")
	})
}
