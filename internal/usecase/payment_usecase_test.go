package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/domain/entity"
	"telemart/internal/domain/service"
	"telemart/pkg/errors"
)

type fakeGateway struct {
	initiated   []service.PaymentRequest
	validations []string
	validStatus string
	validTranID string
	err         error
}

func (g *fakeGateway) InitiatePayment(ctx context.Context, req service.PaymentRequest) (map[string]interface{}, error) {
	g.initiated = append(g.initiated, req)
	if g.err != nil {
		return nil, g.err
	}
	return map[string]interface{}{"status": "SUCCESS", "GatewayPageURL": "https://pay.test/" + req.OrderNumber}, nil
}

func (g *fakeGateway) ValidatePayment(ctx context.Context, validationID string) (map[string]interface{}, error) {
	g.validations = append(g.validations, validationID)
	if g.err != nil {
		return nil, g.err
	}
	resp := map[string]interface{}{"status": g.validStatus}
	if g.validTranID != "" {
		resp["tran_id"] = g.validTranID
	}
	return resp, nil
}

func newPaymentEnv(t *testing.T) (*testEnv, *PaymentUseCase, *fakeGateway, *OrderDetail) {
	t.Helper()
	e := newTestEnv(t)
	cat := e.seedPhone(t, 10)
	order, err := e.orders.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Customer:     testCustomer(),
		Items:        []OrderItemInput{cat.storageItem(2)},
		ShippingCost: 60,
	})
	require.NoError(t, err)
	gw := &fakeGateway{validStatus: "VALID"}
	return e, NewPaymentUseCase(e.orderRepo, e.orderItemRepo, gw), gw, order
}

func TestInitiatePayment(t *testing.T) {
	_, uc, gw, order := newPaymentEnv(t)

	resp, err := uc.InitiatePayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/"+order.OrderNumber, resp["GatewayPageURL"])

	require.Len(t, gw.initiated, 1)
	req := gw.initiated[0]
	assert.Equal(t, 1060.0, req.Amount)
	assert.Equal(t, "BDT", req.Currency)
	assert.Equal(t, 2, req.ItemCount)
	assert.Equal(t, []string{"X1"}, req.ProductNames)
	assert.Equal(t, "Rahim Uddin", req.Customer.Name)
}

func TestInitiatePaymentRejectsPaidOrders(t *testing.T) {
	e, uc, gw, order := newPaymentEnv(t)
	_, err := e.orders.UpdatePaymentStatus(context.Background(), order.ID, entity.PaymentStatusPaid)
	require.NoError(t, err)

	_, err = uc.InitiatePayment(context.Background(), order.ID)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	assert.Empty(t, gw.initiated)
}

func TestInitiatePaymentGatewayError(t *testing.T) {
	_, uc, gw, order := newPaymentEnv(t)
	gw.err = stderrors.New("timeout")

	_, err := uc.InitiatePayment(context.Background(), order.ID)
	assert.True(t, errors.Is(err, errors.CodeInternal))
}

func TestHandleCallback(t *testing.T) {
	tests := []struct {
		name        string
		input       func(orderNumber string) PaymentCallbackInput
		paidBefore  bool
		validStatus string
		validTranID string
		wantErr     string
		want        string
		validations int
	}{
		{
			name:        "validated success",
			input:       func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "VALID", ValID: "v1"} },
			validStatus: "VALIDATED",
			want:        entity.PaymentStatusPaid,
			validations: 1,
		},
		{
			name:        "success rejected by validation",
			input:       func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "VALID", ValID: "v1"} },
			validStatus: "INVALID_TRANSACTION",
			want:        entity.PaymentStatusFailed,
			validations: 1,
		},
		{
			name:        "validation for another transaction",
			input:       func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "VALID", ValID: "v1"} },
			validStatus: "VALID",
			validTranID: "ORD-0-other",
			want:        entity.PaymentStatusFailed,
			validations: 1,
		},
		{
			name:    "success without val_id",
			input:   func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "VALID"} },
			wantErr: errors.CodeBadRequest,
			want:    entity.PaymentStatusPending,
		},
		{
			name:  "failure",
			input: func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "FAILED"} },
			want:  entity.PaymentStatusFailed,
		},
		{
			name:  "cancelled",
			input: func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "cancelled", ValID: "v2"} },
			want:  entity.PaymentStatusFailed,
		},
		{
			name:       "failure after payment",
			input:      func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "FAILED"} },
			paidBefore: true,
			wantErr:    errors.CodeConflict,
			want:       entity.PaymentStatusPaid,
		},
		{
			name:       "repeated success",
			input:      func(n string) PaymentCallbackInput { return PaymentCallbackInput{TranID: n, Status: "VALID", ValID: "v1"} },
			paidBefore: true,
			want:       entity.PaymentStatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, uc, gw, order := newPaymentEnv(t)
			ctx := context.Background()
			gw.validStatus = tt.validStatus
			gw.validTranID = tt.validTranID
			if tt.paidBefore {
				_, err := e.orders.UpdatePaymentStatus(ctx, order.ID, entity.PaymentStatusPaid)
				require.NoError(t, err)
			}

			updated, err := uc.HandleCallback(ctx, tt.input(order.OrderNumber))
			if tt.wantErr != "" {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, updated.PaymentStatus)
			}
			assert.Len(t, gw.validations, tt.validations)

			stored, err := e.orderRepo.GetByID(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.PaymentStatus)
		})
	}
}

func TestHandleCallbackErrors(t *testing.T) {
	_, uc, _, order := newPaymentEnv(t)
	ctx := context.Background()

	_, err := uc.HandleCallback(ctx, PaymentCallbackInput{TranID: order.OrderNumber, Status: "PENDING"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	_, err = uc.HandleCallback(ctx, PaymentCallbackInput{TranID: "ORD-0-000000", Status: "FAILED"})
	assert.True(t, errors.IsNotFound(err))
}
