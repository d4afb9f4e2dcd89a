package usecase

import (
	"context"
	"strings"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/repository"
	"telemart/internal/domain/service"
	"telemart/pkg/errors"
	"telemart/pkg/logger"
)

type PaymentUseCase struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	gateway       service.PaymentGateway
}

func NewPaymentUseCase(
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	gateway service.PaymentGateway,
) *PaymentUseCase {
	return &PaymentUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		gateway:       gateway,
	}
}

// InitiatePayment opens a gateway session for the order and returns the
// gateway's response as-is.
func (uc *PaymentUseCase) InitiatePayment(ctx context.Context, orderID string) (map[string]interface{}, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return nil, errors.BadRequest("Order is already paid", nil)
	}
	if order.Status == entity.OrderStatusCancelled {
		return nil, errors.BadRequest("Order is cancelled", nil)
	}

	items, err := uc.orderItemRepo.ListByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	count := 0
	for _, it := range items {
		names = append(names, it.ProductName)
		count += it.Quantity
	}

	resp, err := uc.gateway.InitiatePayment(ctx, service.PaymentRequest{
		OrderNumber:  order.OrderNumber,
		Amount:       order.TotalAmount,
		Currency:     "BDT",
		ProductNames: names,
		ItemCount:    count,
		Customer: service.PaymentCustomer{
			Name:    order.Customer.Name,
			Email:   order.Customer.Email,
			Phone:   order.Customer.Phone,
			Address: order.Customer.Address,
			City:    order.Customer.City,
		},
	})
	if err != nil {
		return nil, errors.Internal("Failed to initiate payment", err)
	}

	logger.Info("Payment initiated for order %s", order.OrderNumber)
	return resp, nil
}

type PaymentCallbackInput struct {
	TranID string `json:"tran_id" form:"tran_id" validate:"required"`
	Status string `json:"status" form:"status" validate:"required"`
	ValID  string `json:"val_id" form:"val_id"`
	Amount string `json:"amount" form:"amount"`
}

// gatewayPaymentStatus maps gateway status codes onto payment statuses.
func gatewayPaymentStatus(status string) (string, bool) {
	switch strings.ToUpper(status) {
	case "VALID", "VALIDATED":
		return entity.PaymentStatusPaid, true
	case "FAILED", "CANCELLED":
		return entity.PaymentStatusFailed, true
	default:
		return "", false
	}
}

// HandleCallback applies the gateway's verdict to the order named by
// tran_id. A success is only recorded after the gateway confirms the val_id
// for this transaction. Paid orders are never moved back to another status.
func (uc *PaymentUseCase) HandleCallback(ctx context.Context, input PaymentCallbackInput) (*entity.Order, error) {
	paymentStatus, ok := gatewayPaymentStatus(input.Status)
	if !ok {
		return nil, errors.BadRequest("Unknown payment status: "+input.Status, nil)
	}
	if paymentStatus == entity.PaymentStatusPaid && input.ValID == "" {
		return nil, errors.BadRequest("val_id is required for a successful payment", nil)
	}

	order, err := uc.orderRepo.GetByOrderNumber(ctx, input.TranID)
	if err != nil {
		return nil, err
	}

	if order.PaymentStatus == entity.PaymentStatusPaid {
		if paymentStatus == entity.PaymentStatusPaid {
			return order, nil
		}
		logger.Warn("Ignoring %s callback for paid order %s", input.Status, order.OrderNumber)
		return nil, errors.Conflict("Order is already paid")
	}

	if paymentStatus == entity.PaymentStatusPaid {
		resp, err := uc.gateway.ValidatePayment(ctx, input.ValID)
		if err != nil {
			return nil, errors.Internal("Failed to validate payment", err)
		}
		if !confirmsTransaction(resp, order.OrderNumber) {
			paymentStatus = entity.PaymentStatusFailed
		}
	}

	order.PaymentStatus = paymentStatus
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	logger.Info("Payment callback for order %s: %s -> %s", order.OrderNumber, input.Status, paymentStatus)
	return order, nil
}

// confirmsTransaction reports whether a validation response marks the
// payment valid. A tran_id in the response must match the order.
func confirmsTransaction(resp map[string]interface{}, orderNumber string) bool {
	validated, _ := resp["status"].(string)
	if s, ok := gatewayPaymentStatus(validated); !ok || s != entity.PaymentStatusPaid {
		return false
	}
	tranID, _ := resp["tran_id"].(string)
	return tranID == "" || tranID == orderNumber
}
