package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
)

func sampleSubmission() *entity.BillingSubmission {
	return &entity.BillingSubmission{
		InvoiceNo:     "INV-AB12CD34",
		BillingDate:   time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		BillerName:    "Jamie",
		ReceiptHTML:   "<div class=\"receipt\"></div>",
		TotalAmount:   482,
		PaymentAmount: 500,
		Status:        enum.BillingStatusCompleted,
		CompanyID:     1,
		StoreID:       1,
		Items: []entity.BillingItem{
			{ProductID: "p1", CategoryID: "c1", Quantity: 2, UnitPrice: 250, CompanyID: 1, StoreID: 1},
		},
	}
}

func TestCreateBilling(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Billing/AddBilling", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "INV-AB12CD34", payload["InvoiceNo"])
		assert.Equal(t, 4.82, payload["TotalAmount"])
		assert.Equal(t, 5.00, payload["PaymentAmount"])
		items, ok := payload["Items"].([]any)
		require.True(t, ok)
		require.Len(t, items, 1)
		item := items[0].(map[string]any)
		assert.Equal(t, "p1", item["ProductId"])
		assert.Equal(t, 2.5, item["UnitPrice"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"b-1","invoiceNo":"INV-AB12CD34","receiptHtml":"<div/>","status":"Completed"}`))
	}))
	defer srv.Close()

	client := NewBillingClient(srv.URL, 5*time.Second)
	result, err := client.CreateBilling(context.Background(), sampleSubmission())
	require.NoError(t, err)

	assert.Equal(t, "b-1", result.ID)
	assert.Equal(t, "INV-AB12CD34", result.InvoiceNo)
	assert.Equal(t, "<div/>", result.ReceiptHTML)
	assert.Equal(t, "Completed", result.Status)
}

func TestCreateBillingUnwrapsDataEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"b-2","invoiceNo":"INV-XYZ","status":"Completed"}}`))
	}))
	defer srv.Close()

	client := NewBillingClient(srv.URL, 5*time.Second)
	result, err := client.CreateBilling(context.Background(), sampleSubmission())
	require.NoError(t, err)

	assert.Equal(t, "b-2", result.ID)
	assert.Equal(t, "INV-XYZ", result.InvoiceNo)
}

func TestCreateBillingRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid submission"}`))
	}))
	defer srv.Close()

	client := NewBillingClient(srv.URL, 5*time.Second)
	_, err := client.CreateBilling(context.Background(), sampleSubmission())
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 400")
}

func TestCreateBillingUnreachable(t *testing.T) {
	t.Parallel()

	client := NewBillingClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.CreateBilling(context.Background(), sampleSubmission())
	assert.Error(t, err)
}
