package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"telemart/internal/domain/service"
	"telemart/pkg/config"
	"telemart/pkg/logger"
)

const (
	initiatePath = "/gwprocess/v4/api.php"
	validatePath = "/validator/api/validationserverAPI.php"
)

// GatewayClient talks to an SSLCommerz-compatible hosted checkout. Requests
// are form posts and responses are returned as decoded JSON.
type GatewayClient struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
}

func NewGatewayClient(cfg config.PaymentConfig) *GatewayClient {
	return &GatewayClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *GatewayClient) InitiatePayment(ctx context.Context, req service.PaymentRequest) (map[string]interface{}, error) {
	form := url.Values{}
	form.Set("store_id", g.cfg.StoreID)
	form.Set("store_passwd", g.cfg.StorePassword)
	form.Set("total_amount", strconv.FormatFloat(req.Amount, 'f', 2, 64))
	form.Set("currency", req.Currency)
	form.Set("tran_id", req.OrderNumber)
	form.Set("success_url", g.cfg.SuccessURL)
	form.Set("fail_url", g.cfg.FailURL)
	form.Set("cancel_url", g.cfg.CancelURL)
	if g.cfg.IPNURL != "" {
		form.Set("ipn_url", g.cfg.IPNURL)
	}
	form.Set("cus_name", req.Customer.Name)
	form.Set("cus_email", req.Customer.Email)
	form.Set("cus_phone", req.Customer.Phone)
	form.Set("cus_add1", req.Customer.Address)
	form.Set("cus_city", req.Customer.City)
	form.Set("cus_country", "Bangladesh")
	form.Set("shipping_method", "Courier")
	form.Set("num_of_item", strconv.Itoa(req.ItemCount))
	form.Set("product_name", strings.Join(req.ProductNames, ", "))
	form.Set("product_category", "Electronics")
	form.Set("product_profile", "physical-goods")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+initiatePath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	logger.Info("Initiating gateway payment for %s, amount %.2f %s", req.OrderNumber, req.Amount, req.Currency)
	return g.do(httpReq)
}

func (g *GatewayClient) ValidatePayment(ctx context.Context, validationID string) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("val_id", validationID)
	q.Set("store_id", g.cfg.StoreID)
	q.Set("store_passwd", g.cfg.StorePassword)
	q.Set("format", "json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+validatePath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	return g.do(httpReq)
}

func (g *GatewayClient) do(httpReq *http.Request) (map[string]interface{}, error) {
	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("Payment gateway error (%d): %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("payment gateway error: status %d", resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}
	return out, nil
}
