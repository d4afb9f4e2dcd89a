package usecase

import (
	"context"
	"math"
	"time"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/pkg/errors"
)

type LoyaltyUseCase struct {
	loyaltyRepo repository.LoyaltyRepository
	// Order total per point earned.
	pointsDivisor float64
}

func NewLoyaltyUseCase(loyaltyRepo repository.LoyaltyRepository, pointsDivisor float64) *LoyaltyUseCase {
	if pointsDivisor <= 0 {
		pointsDivisor = 100
	}
	return &LoyaltyUseCase{
		loyaltyRepo:   loyaltyRepo,
		pointsDivisor: pointsDivisor,
	}
}

// GetBalance returns a zero bronze account for users who never earned points.
func (uc *LoyaltyUseCase) GetBalance(ctx context.Context, userID string) (*entity.LoyaltyPoints, error) {
	acct, err := uc.loyaltyRepo.Get(ctx, userID)
	if errors.IsNotFound(err) {
		return &entity.LoyaltyPoints{
			UserID:  userID,
			Tier:    entity.LoyaltyTierBronze,
			History: []entity.LoyaltyTransaction{},
		}, nil
	}
	return acct, err
}

type LoyaltyAdjustInput struct {
	Points  int    `json:"points" validate:"required,min=1"`
	Reason  string `json:"reason" validate:"required"`
	OrderID string `json:"order_id"`
}

func (uc *LoyaltyUseCase) Award(ctx context.Context, userID string, input LoyaltyAdjustInput) (*entity.LoyaltyPoints, error) {
	if input.Points <= 0 {
		return nil, errors.BadRequest("Points must be positive", nil)
	}
	return uc.loyaltyRepo.Apply(ctx, userID, func(acct *entity.LoyaltyPoints) error {
		acct.Points += input.Points
		acct.LifetimePoints += input.Points
		acct.Tier = entity.TierFor(acct.LifetimePoints)
		acct.History = append(acct.History, entity.LoyaltyTransaction{
			Type:      entity.LoyaltyEarn,
			Points:    input.Points,
			Reason:    input.Reason,
			OrderID:   input.OrderID,
			CreatedAt: time.Now(),
		})
		return nil
	})
}

// Redeem spends points; the tier stays tied to lifetime points.
func (uc *LoyaltyUseCase) Redeem(ctx context.Context, userID string, input LoyaltyAdjustInput) (*entity.LoyaltyPoints, error) {
	if input.Points <= 0 {
		return nil, errors.BadRequest("Points must be positive", nil)
	}
	return uc.loyaltyRepo.Apply(ctx, userID, func(acct *entity.LoyaltyPoints) error {
		if acct.Points < input.Points {
			return errors.BadRequest("Insufficient loyalty points", nil)
		}
		acct.Points -= input.Points
		acct.History = append(acct.History, entity.LoyaltyTransaction{
			Type:      entity.LoyaltyRedeem,
			Points:    input.Points,
			Reason:    input.Reason,
			OrderID:   input.OrderID,
			CreatedAt: time.Now(),
		})
		return nil
	})
}

// AwardForOrder grants floor(total / divisor) points. Orders too small to
// earn a point return the current balance unchanged.
func (uc *LoyaltyUseCase) AwardForOrder(ctx context.Context, order *entity.Order) (*entity.LoyaltyPoints, error) {
	points := int(math.Floor(order.TotalAmount / uc.pointsDivisor))
	if points <= 0 {
		return uc.GetBalance(ctx, order.UserID)
	}
	return uc.Award(ctx, order.UserID, LoyaltyAdjustInput{
		Points:  points,
		Reason:  "Order " + order.OrderNumber + " delivered",
		OrderID: order.ID,
	})
}
