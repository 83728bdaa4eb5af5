package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	billingapp "github.com/invoiceme/backend/internal/application/billing"
	"github.com/invoiceme/backend/internal/domain/billing"
	"github.com/invoiceme/backend/internal/domain/shared"
	"github.com/invoiceme/backend/internal/domain/shared/valueobject"
	"github.com/invoiceme/backend/internal/interfaces/http/dto"
)

func newPaymentTestRouter(invoiceRepo *MockInvoiceRepository, paymentRepo *MockPaymentRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := billingapp.NewPaymentService(invoiceRepo, paymentRepo, nil)
	h := NewPaymentHandler(service)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestPaymentHandler_Record(t *testing.T) {
	t.Run("records partial payment", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

		inv := newSentTestInvoice(t)
		invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
		invoiceRepo.On("SaveWithLockAndPayment", mock.Anything, inv, mock.AnythingOfType("*billing.Payment")).Return(nil)

		body, _ := json.Marshal(map[string]any{
			"amount": "100.00",
			"method": "BANK_TRANSFER",
		})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		payment := data["payment"].(map[string]interface{})
		invoice := data["invoice"].(map[string]interface{})
		assert.Equal(t, "100", payment["amount"])
		assert.Equal(t, "BANK_TRANSFER", payment["method"])
		assert.Equal(t, "200", invoice["balance"])
		assert.Equal(t, "SENT", invoice["status"])
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("marks invoice paid when balance reaches zero", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

		inv := newSentTestInvoice(t)
		invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
		invoiceRepo.On("SaveWithLockAndPayment", mock.Anything, inv, mock.AnythingOfType("*billing.Payment")).Return(nil)

		body, _ := json.Marshal(map[string]any{"amount": "300.00"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		invoice := data["invoice"].(map[string]interface{})
		assert.Equal(t, "PAID", invoice["status"])
		assert.Equal(t, "0", invoice["balance"])
	})

	t.Run("rejects payment exceeding balance", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

		inv := newSentTestInvoice(t)
		invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

		body, _ := json.Marshal(map[string]any{"amount": "500.00"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "EXCEEDS_BALANCE", resp.Error.Code)
		invoiceRepo.AssertNotCalled(t, "SaveWithLockAndPayment", mock.Anything, mock.Anything, mock.Anything)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects payment on draft invoice", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

		inv := newTestInvoice(t)
		_, err := inv.AddItem("Consulting", 1, valueobject.NewMoneyUSDFromFloat(100))
		require.NoError(t, err)
		invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)

		body, _ := json.Marshal(map[string]any{"amount": "50.00"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		invoiceRepo.AssertNotCalled(t, "SaveWithLockAndPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns 404 for unknown invoice", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		engine := newPaymentTestRouter(invoiceRepo, new(MockPaymentRepository))

		invoiceRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		body, _ := json.Marshal(map[string]any{"amount": "50.00"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+uuid.New().String()+"/payments", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPaymentHandler_ListForInvoice(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

	inv := newSentTestInvoice(t)
	payment, err := billing.NewPayment(inv.ID, valueobject.NewMoneyUSDFromFloat(100), time.Now(), billing.PaymentMethodCheck, "CHK-100", "")
	require.NoError(t, err)

	invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
	paymentRepo.On("FindByInvoice", mock.Anything, inv.ID).Return([]billing.Payment{*payment}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/invoices/"+inv.ID.String()+"/payments", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp.Data.([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "CHK-100", items[0].(map[string]interface{})["reference"])
}

func TestPaymentHandler_List(t *testing.T) {
	t.Run("lists with pagination meta", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		paymentRepo := new(MockPaymentRepository)
		engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

		paymentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]billing.Payment{}, nil)
		paymentRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/payments?method=CASH", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(0), resp.Meta.Total)
	})

	t.Run("rejects unknown method filter", func(t *testing.T) {
		engine := newPaymentTestRouter(new(MockInvoiceRepository), new(MockPaymentRepository))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/payments?method=BARTER", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentHandler_Recalculate(t *testing.T) {
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	engine := newPaymentTestRouter(invoiceRepo, paymentRepo)

	inv := newSentTestInvoice(t)
	require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyUSDFromFloat(100), uuid.New()))

	invoiceRepo.On("FindByID", mock.Anything, inv.ID).Return(inv, nil)
	paymentRepo.On("SumByInvoice", mock.Anything, inv.ID).Return(decimal.RequireFromString("250.00"), nil)
	invoiceRepo.On("SaveWithLock", mock.Anything, inv).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/recalculate", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "50", data["balance"])
	invoiceRepo.AssertExpectations(t)
}
