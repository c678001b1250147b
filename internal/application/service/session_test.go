package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/terminal-api/pkg/apperror"
)

func TestSessionAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	err := session.AddItem(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, apperror.ErrProductNotInCatalog)
}

func TestSessionAddItemClearsQuery(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.SetQuery(context.Background(), "esp"))
	require.Equal(t, "esp", session.Snapshot().Query)

	require.NoError(t, session.AddItem(context.Background(), "1001", 1))
	assert.Empty(t, session.Snapshot().Query)
}

func TestSessionSetPriceUsesCatalogPrice(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))

	// Espresso's catalog price is 2.50; 2.00 marks the line discounted.
	require.NoError(t, session.SetPrice("1001", 2.00))
	line := session.Snapshot().Cart[0]
	assert.True(t, line.HasDiscount())
	require.NotNil(t, line.OriginalPrice)
	assert.Equal(t, int64(250), *line.OriginalPrice)

	// Back to the catalog price clears the discount.
	require.NoError(t, session.SetPrice("1001", 2.50))
	line = session.Snapshot().Cart[0]
	assert.False(t, line.HasDiscount())
	assert.Nil(t, line.OriginalPrice)
}

func TestSessionResetPrice(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))
	require.NoError(t, session.SetPrice("1001", 1.00))

	require.NoError(t, session.ResetPrice("1001"))
	line := session.Snapshot().Cart[0]
	assert.Equal(t, int64(250), line.Price)
	assert.Nil(t, line.OriginalPrice)
}

func TestSessionSetPriceUnknownLine(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	assert.ErrorIs(t, session.SetPrice("1001", 2.00), apperror.ErrLineNotFound)
}

func TestSessionSelectValidation(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))

	assert.ErrorIs(t, session.Select("nope"), apperror.ErrLineNotFound)

	require.NoError(t, session.Select("1001"))
	assert.Equal(t, "1001", session.Snapshot().SelectedID)

	// Empty id deselects.
	require.NoError(t, session.Select(""))
	assert.Empty(t, session.Snapshot().SelectedID)
}

func TestSessionRemoveItemClearsSelection(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))
	require.NoError(t, session.Select("1001"))

	require.NoError(t, session.RemoveItem("1001"))
	view := session.Snapshot()
	assert.Empty(t, view.Cart)
	assert.Empty(t, view.SelectedID)
}

func TestSessionSearchResults(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})

	results := session.SearchResults("espresso")
	require.Len(t, results, 1)
	assert.Equal(t, "1001", results[0].ID)

	assert.Empty(t, session.SearchResults(""))
}

func TestSessionTotals(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 2))

	totals := session.Totals()
	assert.Equal(t, int64(500), totals.Subtotal)
	assert.Equal(t, int64(35), totals.Tax)
	assert.Equal(t, int64(535), totals.FinalAmount)
}

func TestSnapshotDetachedFromLaterEdits(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))
	require.NoError(t, session.SetPrice("1001", 2.00))

	view := session.Snapshot()
	require.Len(t, view.Cart, 1)

	// Edits after the snapshot must not show through it.
	require.NoError(t, session.ChangeQuantity("1001", 4))
	require.NoError(t, session.ResetPrice("1001"))

	line := view.Cart[0]
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, int64(200), line.Price)
	require.NotNil(t, line.OriginalPrice)
	assert.Equal(t, int64(250), *line.OriginalPrice)
}

func TestSnapshotMarshalsSafelyDuringEdits(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_ = session.ChangeQuantity("1001", 1)
			_ = session.SetPrice("1001", 2.00)
			_ = session.ResetPrice("1001")
		}
	}()

	for i := 0; i < 200; i++ {
		_, err := json.Marshal(session.Snapshot())
		require.NoError(t, err)
	}
	<-done
}

func TestSessionBillerNameFallsBackToConfig(t *testing.T) {
	t.Parallel()

	catalogGW := &stubCatalogGateway{categories: testCategories(), products: testProducts()}
	catalog := NewCatalogService(catalogGW, fallbackData)
	session := NewPosSession(catalog, &spyBillingGateway{}, &spyReceiptSink{}, testSessionConfig(), "")

	assert.Equal(t, "System User", session.billerName)
}
