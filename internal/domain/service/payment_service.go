package service

import "context"

type PaymentCustomer struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
}

type PaymentRequest struct {
	OrderNumber  string
	Amount       float64
	Currency     string
	ProductNames []string
	ItemCount    int
	Customer     PaymentCustomer
}

// PaymentGateway proxies to the third-party gateway. Responses are the
// gateway's raw JSON decoded into a map.
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (map[string]interface{}, error)
	ValidatePayment(ctx context.Context, validationID string) (map[string]interface{}, error)
}
