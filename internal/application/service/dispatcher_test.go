package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftpos/terminal-api/internal/domain/enum"
)

func TestDispatchIgnoredWhileInputFocused(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})

	result := session.Dispatch("F3", true)
	assert.Equal(t, enum.CommandNone, result.Command)
	assert.False(t, result.Applied)
	assert.False(t, session.Snapshot().SearchOpen)
}

func TestDispatchUnboundKey(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})

	result := session.Dispatch("F1", false)
	assert.Equal(t, enum.CommandNone, result.Command)
	assert.False(t, result.Applied)
}

func TestDispatchOpenSearch(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})

	result := session.Dispatch("F3", false)
	assert.Equal(t, enum.CommandOpenSearch, result.Command)
	assert.True(t, result.Applied)
	assert.True(t, session.Snapshot().SearchOpen)

	session.CloseSearch()
	assert.False(t, session.Snapshot().SearchOpen)
}

func TestDispatchOpenQuantityNeedsSelection(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))

	result := session.Dispatch("F4", false)
	assert.Equal(t, enum.CommandOpenQuantity, result.Command)
	assert.False(t, result.Applied)

	require.NoError(t, session.Select("1001"))
	result = session.Dispatch("F4", false)
	assert.True(t, result.Applied)
	assert.True(t, session.Snapshot().QtyDialogOpen)

	session.CloseQuantityDialog()
	assert.False(t, session.Snapshot().QtyDialogOpen)
}

func TestDispatchNewSaleClearsCart(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))
	require.NoError(t, session.Select("1001"))

	result := session.Dispatch("F8", false)
	assert.Equal(t, enum.CommandNewSale, result.Command)
	assert.True(t, result.Applied)

	view := session.Snapshot()
	assert.Empty(t, view.Cart)
	assert.Empty(t, view.SelectedID)
	assert.Empty(t, view.Query)
}

func TestDispatchSaveSale(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})

	result := session.Dispatch("F9", false)
	assert.Equal(t, enum.CommandSaveSale, result.Command)
	assert.True(t, result.Applied)
	assert.Equal(t, "Sale saved (mock)", result.Message)
}

func TestDispatchOpenPaymentEmptyCartNoOp(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})

	result := session.Dispatch("F10", false)
	assert.Equal(t, enum.CommandOpenPayment, result.Command)
	assert.False(t, result.Applied)
	assert.False(t, session.Snapshot().PaymentOpen)
}

func TestDispatchOpenPayment(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))

	result := session.Dispatch("F10", false)
	assert.True(t, result.Applied)
	assert.True(t, session.Snapshot().PaymentOpen)
}

func TestDispatchRemoveSelected(t *testing.T) {
	t.Parallel()

	session := newTestSession(&spyBillingGateway{}, &spyReceiptSink{})
	require.NoError(t, session.AddItem(context.Background(), "1001", 1))

	// Nothing selected: no-op.
	result := session.Dispatch("Delete", false)
	assert.Equal(t, enum.CommandRemoveSelected, result.Command)
	assert.False(t, result.Applied)
	assert.Len(t, session.Snapshot().Cart, 1)

	require.NoError(t, session.Select("1001"))
	result = session.Dispatch("Delete", false)
	assert.True(t, result.Applied)

	view := session.Snapshot()
	assert.Empty(t, view.Cart)
	assert.Empty(t, view.SelectedID)
}
