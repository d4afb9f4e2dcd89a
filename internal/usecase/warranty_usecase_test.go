package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/adapter/repository/memory"
	"telemart/internal/domain/entity"
	"telemart/pkg/errors"
)

func newWarrantyUseCase(now time.Time) *WarrantyUseCase {
	uc := NewWarrantyUseCase(memory.NewWarrantyRepository(memory.NewStore()))
	uc.now = func() time.Time { return now }
	return uc
}

func warrantyInput(imei string, purchased time.Time) RegisterWarrantyInput {
	return RegisterWarrantyInput{
		IMEI:           imei,
		SerialNumber:   "SN-" + imei,
		ProductName:    "X1 128GB",
		CustomerName:   "Rahim",
		CustomerPhone:  "01700000000",
		PurchaseDate:   purchased,
		WarrantyMonths: 12,
	}
}

func TestRegisterWarranty(t *testing.T) {
	uc := newWarrantyUseCase(fixedNow)
	ctx := context.Background()
	purchased := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	record, err := uc.Register(ctx, warrantyInput("356938035643809", purchased))
	require.NoError(t, err)
	assert.Equal(t, entity.WarrantyStatusActive, record.Status)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), record.ExpiresAt)

	_, err = uc.Register(ctx, warrantyInput("356938035643809", purchased))
	assert.True(t, errors.Is(err, errors.CodeConflict))
}

func TestLookupWarranty(t *testing.T) {
	ctx := context.Background()
	purchased := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	uc := newWarrantyUseCase(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))
	record, err := uc.Register(ctx, warrantyInput("356938035643809", purchased))
	require.NoError(t, err)

	byIMEI, err := uc.Lookup(ctx, "356938035643809")
	require.NoError(t, err)
	assert.Equal(t, record.ID, byIMEI.ID)
	assert.Equal(t, entity.WarrantyStatusActive, byIMEI.Status)

	bySerial, err := uc.Lookup(ctx, "SN-356938035643809")
	require.NoError(t, err)
	assert.Equal(t, record.ID, bySerial.ID)

	_, err = uc.Lookup(ctx, "")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = uc.Lookup(ctx, "000")
	assert.True(t, errors.IsNotFound(err))

	uc.now = func() time.Time { return time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC) }
	expired, err := uc.Lookup(ctx, "356938035643809")
	require.NoError(t, err)
	assert.Equal(t, entity.WarrantyStatusExpired, expired.Status)
}

func TestUpdateWarrantyStatus(t *testing.T) {
	uc := newWarrantyUseCase(fixedNow)
	ctx := context.Background()
	record, err := uc.Register(ctx, warrantyInput("356938035643809", fixedNow))
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, record.ID, UpdateWarrantyStatusInput{Status: "lost"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	updated, err := uc.UpdateStatus(ctx, record.ID, UpdateWarrantyStatusInput{Status: entity.WarrantyStatusClaimed, Notes: "Screen replaced"})
	require.NoError(t, err)
	assert.Equal(t, entity.WarrantyStatusClaimed, updated.Status)
	assert.Equal(t, "Screen replaced", updated.Notes)

	claimed, total, err := uc.ListWarranties(ctx, entity.WarrantyStatusClaimed, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, claimed, 1)

	require.NoError(t, uc.DeleteWarranty(ctx, record.ID))
	_, err = uc.GetWarranty(ctx, record.ID)
	assert.True(t, errors.IsNotFound(err))
}
