package usecase

import (
	"context"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type WarrantyUseCase struct {
	warrantyRepo repository.WarrantyRepository
	now          func() time.Time
}

func NewWarrantyUseCase(warrantyRepo repository.WarrantyRepository) *WarrantyUseCase {
	return &WarrantyUseCase{
		warrantyRepo: warrantyRepo,
		now:          time.Now,
	}
}

type RegisterWarrantyInput struct {
	IMEI           string    `json:"imei" validate:"required,min=14,max=17"`
	SerialNumber   string    `json:"serial_number"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name" validate:"required"`
	CustomerName   string    `json:"customer_name" validate:"required"`
	CustomerPhone  string    `json:"customer_phone" validate:"required"`
	UserID         string    `json:"user_id"`
	OrderID        string    `json:"order_id"`
	CarePlanID     string    `json:"care_plan_id"`
	PurchaseDate   time.Time `json:"purchase_date" validate:"required"`
	WarrantyMonths int       `json:"warranty_months" validate:"required,min=1"`
	Notes          string    `json:"notes"`
}

func (uc *WarrantyUseCase) Register(ctx context.Context, input RegisterWarrantyInput) (*entity.WarrantyRecord, error) {
	_, err := uc.warrantyRepo.GetByIMEI(ctx, input.IMEI)
	switch {
	case err == nil:
		return nil, errors.Conflict("Warranty already registered for this IMEI")
	case !errors.IsNotFound(err):
		return nil, err
	}

	record := &entity.WarrantyRecord{
		IMEI:           input.IMEI,
		SerialNumber:   input.SerialNumber,
		ProductID:      input.ProductID,
		ProductName:    input.ProductName,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		UserID:         input.UserID,
		OrderID:        input.OrderID,
		CarePlanID:     input.CarePlanID,
		PurchaseDate:   input.PurchaseDate,
		WarrantyMonths: input.WarrantyMonths,
		ExpiresAt:      input.PurchaseDate.AddDate(0, input.WarrantyMonths, 0),
		Status:         entity.WarrantyStatusActive,
		Notes:          input.Notes,
	}
	if err := uc.warrantyRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Lookup finds a record by IMEI, then by serial number. Active records past
// their term are reported as expired.
func (uc *WarrantyUseCase) Lookup(ctx context.Context, identifier string) (*entity.WarrantyRecord, error) {
	if identifier == "" {
		return nil, errors.BadRequest("IMEI or serial number is required", nil)
	}
	record, err := uc.warrantyRepo.GetByIMEI(ctx, identifier)
	if errors.IsNotFound(err) {
		record, err = uc.warrantyRepo.GetBySerial(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}
	record.Status = record.EffectiveStatus(uc.now())
	return record, nil
}

func (uc *WarrantyUseCase) GetWarranty(ctx context.Context, id string) (*entity.WarrantyRecord, error) {
	record, err := uc.warrantyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Status = record.EffectiveStatus(uc.now())
	return record, nil
}

func (uc *WarrantyUseCase) ListWarranties(ctx context.Context, status string, limit, offset int) ([]*entity.WarrantyRecord, int64, error) {
	records, total, err := uc.warrantyRepo.List(ctx, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	now := uc.now()
	for _, r := range records {
		r.Status = r.EffectiveStatus(now)
	}
	return records, total, nil
}

type UpdateWarrantyStatusInput struct {
	Status string `json:"status" validate:"required,oneof=active claimed expired void"`
	Notes  string `json:"notes"`
}

func (uc *WarrantyUseCase) UpdateStatus(ctx context.Context, id string, input UpdateWarrantyStatusInput) (*entity.WarrantyRecord, error) {
	switch input.Status {
	case entity.WarrantyStatusActive, entity.WarrantyStatusClaimed, entity.WarrantyStatusExpired, entity.WarrantyStatusVoid:
	default:
		return nil, errors.BadRequest("Invalid warranty status", nil)
	}

	record, err := uc.warrantyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Status = input.Status
	if input.Notes != "" {
		record.Notes = input.Notes
	}
	if err := uc.warrantyRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (uc *WarrantyUseCase) DeleteWarranty(ctx context.Context, id string) error {
	return uc.warrantyRepo.Delete(ctx, id)
}
