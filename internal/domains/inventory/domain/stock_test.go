package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStockRecord_DeductLeavesRecordOnFailure(t *testing.T) {
	rec, err := NewStockRecord(7, 3)
	require.NoError(t, err)

	err = rec.Deduct(5)
	require.ErrorIs(t, err, ErrInsufficientStock)
	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Equal(t, int64(3), insufficient.Available)
	require.Equal(t, int64(5), insufficient.Requested)
	require.True(t, insufficient.Tracked)
	require.Equal(t, int64(3), rec.Quantity)

	require.NoError(t, rec.Deduct(3))
	require.Equal(t, int64(0), rec.Quantity)
}

func TestStockRecord_RestockAndSet(t *testing.T) {
	rec, err := NewStockRecord(1, 0)
	require.NoError(t, err)

	require.ErrorIs(t, rec.Restock(0), ErrInvalidAmount)
	require.NoError(t, rec.Restock(12))
	require.Equal(t, int64(12), rec.Quantity)

	require.ErrorIs(t, rec.SetQuantity(-1), ErrNegativeQuantity)
	require.NoError(t, rec.SetQuantity(4))
	require.Equal(t, int64(4), rec.Quantity)
}

func TestStockRecord_RestockRejectsOverflow(t *testing.T) {
	rec, err := NewStockRecord(1, math.MaxInt64-2)
	require.NoError(t, err)

	require.ErrorIs(t, rec.Restock(3), ErrQuantityOverflow)
	require.Equal(t, int64(math.MaxInt64-2), rec.Quantity)

	require.NoError(t, rec.Restock(2))
	require.Equal(t, int64(math.MaxInt64), rec.Quantity)
}

func TestNewStockRecord_Validation(t *testing.T) {
	_, err := NewStockRecord(0, 1)
	require.ErrorIs(t, err, ErrInvalidProductID)
	_, err = NewStockRecord(1, -1)
	require.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestUntrackedStockMessageDiffers(t *testing.T) {
	untracked := UntrackedStock(9, 2)
	empty := &InsufficientStockError{ProductID: 9, Requested: 2, Available: 0, Tracked: true}

	require.ErrorIs(t, untracked, ErrInsufficientStock)
	require.NotEqual(t, untracked.Error(), empty.Error())
	require.Contains(t, untracked.Error(), "no stock record")
}

func TestNewMovement(t *testing.T) {
	rec := &StockRecord{ProductID: 4, Quantity: 6}
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	m := NewMovement(rec, 10, ForOrder(ReasonOrderPlaced, 55, 2), at)
	require.Equal(t, int64(-4), m.Delta)
	require.Equal(t, int64(10), m.Before)
	require.Equal(t, int64(6), m.After)
	require.Equal(t, int64(55), *m.OrderID)
	require.Equal(t, ReasonOrderPlaced, m.Reason)
}
