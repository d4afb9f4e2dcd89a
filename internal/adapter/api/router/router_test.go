package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telemart/internal/adapter/api"
	"telemart/internal/adapter/api/handler"
	"telemart/internal/adapter/api/middleware"
	"telemart/internal/adapter/repository/memory"
	"telemart/internal/domain/entity"
	"telemart/internal/domain/service"
	"telemart/internal/infrastructure/firebase"
	"telemart/internal/infrastructure/messaging"
	"telemart/internal/infrastructure/websocket"
	"telemart/internal/usecase"
)

type fakeGateway struct{}

func (fakeGateway) InitiatePayment(ctx context.Context, req service.PaymentRequest) (map[string]interface{}, error) {
	return map[string]interface{}{"status": "SUCCESS", "GatewayPageURL": "https://pay.test/" + req.OrderNumber}, nil
}

func (fakeGateway) ValidatePayment(ctx context.Context, validationID string) (map[string]interface{}, error) {
	return map[string]interface{}{"status": "VALID"}, nil
}

var adminToken = firebase.DevToken("admin-1")

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	s := memory.NewStore()
	users := memory.NewUserRepository(s)
	products := memory.NewProductRepository(s)
	variants := memory.NewVariantRepository(s)
	orders := memory.NewOrderRepository(s)
	orderItems := memory.NewOrderItemRepository(s)

	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "admin-1", Role: entity.RoleAdmin}))

	wsManager := websocket.NewManager()
	notifications := usecase.NewNotificationUseCase(memory.NewNotificationRepository(s), wsManager)
	loyalty := usecase.NewLoyaltyUseCase(memory.NewLoyaltyRepository(s), 100)
	userUseCase := usecase.NewUserUseCase(users)

	handler.Setup(
		usecase.NewCatalogUseCase(memory.NewCategoryRepository(s), memory.NewBrandRepository(s), memory.NewCarePlanRepository(s), products, variants),
		usecase.NewVariantUseCase(products, variants),
		usecase.NewOrderUseCase(orders, orderItems, products, usecase.NewStockAdjuster(variants, memory.NewInventoryRepository(s)), notifications, loyalty, messaging.NoopPublisher{}),
		notifications,
		usecase.NewWarrantyUseCase(memory.NewWarrantyRepository(s)),
		loyalty,
		usecase.NewLeadUseCase(memory.NewCorporateDealRepository(s), memory.NewGiveawayRepository(s), memory.NewStockRequestRepository(s), products, notifications),
		usecase.NewPaymentUseCase(orders, orderItems, fakeGateway{}),
		userUseCase,
	)
	handler.SetupHealthHandler("test", "memory")
	handler.SetupDevTokenHandler(users)

	e := echo.New()
	e.Validator = api.NewValidator()
	authMiddleware := middleware.NewAuthMiddleware(firebase.NewDevTokenVerifier())
	Setup(e, authMiddleware, middleware.NewAdminMiddleware(users), middleware.NewRateLimiter(1000))
	SetupDevRouter(e, true)
	return e
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func call(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec.Code, env
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func createID(t *testing.T, e *echo.Echo, path string, body interface{}) string {
	t.Helper()
	code, env := call(t, e, http.MethodPost, path, adminToken, body)
	require.Equal(t, http.StatusCreated, code, "%s: %+v", path, env.Error)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, env, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

type seededCatalog struct {
	productID, regionID, colorID, storageID string
}

func seedCatalog(t *testing.T, e *echo.Echo) seededCatalog {
	t.Helper()
	categoryID := createID(t, e, "/v1/admin/categories", map[string]interface{}{"name": "Phones"})
	productID := createID(t, e, "/v1/admin/products", map[string]interface{}{
		"name":         "Pixel 9",
		"category_id":  categoryID,
		"product_type": "variant",
		"base_price":   800,
	})
	regionID := createID(t, e, "/v1/admin/regions", map[string]interface{}{"product_id": productID, "name": "Global", "is_default": true})
	colorID := createID(t, e, "/v1/admin/colors", map[string]interface{}{"product_id": productID, "region_id": regionID, "name": "Obsidian", "stock_quantity": 5})
	storageID := createID(t, e, "/v1/admin/storages", map[string]interface{}{"color_id": colorID, "size": "256GB"})
	createID(t, e, "/v1/admin/prices", map[string]interface{}{"storage_id": storageID, "regular_price": 800, "stock_quantity": 4})
	return seededCatalog{productID: productID, regionID: regionID, colorID: colorID, storageID: storageID}
}

func orderBody(cat seededCatalog, qty int) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{
			"name":            "Nusrat Jahan",
			"phone":           "01700000000",
			"address":         "House 7, Road 3, Dhanmondi",
			"payment_method":  "cod",
			"delivery_method": "home",
		},
		"items": []map[string]interface{}{{
			"product_id": cat.productID,
			"region_id":  cat.regionID,
			"color_id":   cat.colorID,
			"storage_id": cat.storageID,
			"unit_price": 800,
			"quantity":   qty,
		}},
		"shipping_cost": 60,
	}
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
}

func TestGuestCheckoutFlow(t *testing.T) {
	e := newTestServer(t)
	cat := seedCatalog(t, e)

	code, env := call(t, e, http.MethodPost, "/v1/orders", "", orderBody(cat, 3))
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)
	var order struct {
		ID          string  `json:"id"`
		OrderNumber string  `json:"order_number"`
		TotalAmount float64 `json:"total_amount"`
		Items       []struct {
			LineTotal float64 `json:"line_total"`
		} `json:"items"`
	}
	decode(t, env, &order)
	assert.Equal(t, 2460.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2400.0, order.Items[0].LineTotal)

	code, env = call(t, e, http.MethodGet, "/v1/products/"+cat.productID+"/prices", "", nil)
	require.Equal(t, http.StatusOK, code)
	var prices []entity.Price
	decode(t, env, &prices)
	require.Len(t, prices, 1)
	assert.Equal(t, 1, prices[0].StockQuantity)

	code, env = call(t, e, http.MethodGet, "/v1/track/"+order.OrderNumber, "", nil)
	require.Equal(t, http.StatusOK, code)
	var tracking usecase.OrderTracking
	decode(t, env, &tracking)
	assert.Equal(t, entity.OrderStatusPending, tracking.Status)

	code, env = call(t, e, http.MethodGet, "/v1/admin/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Total int64 `json:"total"`
	}
	decode(t, env, &page)
	assert.Equal(t, int64(1), page.Total)

	code, _ = call(t, e, http.MethodPatch, "/v1/admin/orders/"+order.ID+"/status", adminToken, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, code)

	code, env = call(t, e, http.MethodPut, "/v1/admin/orders/"+order.ID+"/status", adminToken, map[string]string{"status": "processing"})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"processing"`)

	code, env = call(t, e, http.MethodPost, "/v1/payments/"+order.ID+"/initiate", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "https://pay.test/"+order.OrderNumber)
}

func TestSignedInOrderAppearsInMyOrders(t *testing.T) {
	e := newTestServer(t)
	cat := seedCatalog(t, e)
	token := firebase.DevToken("cust-1")

	code, _ := call(t, e, http.MethodGet, "/v1/me", token, nil)
	require.Equal(t, http.StatusOK, code)

	code, env := call(t, e, http.MethodPost, "/v1/orders", token, orderBody(cat, 1))
	require.Equal(t, http.StatusCreated, code, "%+v", env.Error)
	var order struct {
		ID string `json:"id"`
	}
	decode(t, env, &order)

	code, env = call(t, e, http.MethodGet, "/v1/my-orders", token, nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		Total int64 `json:"total"`
	}
	decode(t, env, &page)
	assert.Equal(t, int64(1), page.Total)

	code, _ = call(t, e, http.MethodGet, "/v1/my-orders/"+order.ID, firebase.DevToken("cust-2"), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = call(t, e, http.MethodGet, "/v1/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"unread":1}`, string(env.Data))
}

func TestOrderValidation(t *testing.T) {
	e := newTestServer(t)
	cat := seedCatalog(t, e)

	body := orderBody(cat, 0)
	code, env := call(t, e, http.MethodPost, "/v1/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	body = orderBody(cat, 1)
	body["items"] = []map[string]interface{}{}
	code, _ = call(t, e, http.MethodPost, "/v1/orders", "", body)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	e := newTestServer(t)

	code, _ := call(t, e, http.MethodGet, "/v1/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = call(t, e, http.MethodGet, "/v1/admin/orders", firebase.DevToken("cust-1"), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = call(t, e, http.MethodGet, "/v1/admin/orders", adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestLeadForms(t *testing.T) {
	e := newTestServer(t)

	deal := map[string]interface{}{
		"company_name": "Acme Telecom",
		"contact_name": "Tanvir",
		"email":        "tanvir@acme.test",
		"phone":        "01800000000",
		"quantity":     25,
	}
	code, _ := call(t, e, http.MethodPost, "/v1/corporate-deals", "", deal)
	assert.Equal(t, http.StatusCreated, code)

	deal["company_name"] = "ACME TELECOM"
	code, _ = call(t, e, http.MethodPost, "/v1/corporate-deals", "", deal)
	assert.Equal(t, http.StatusConflict, code)

	entry := map[string]interface{}{"campaign": "eid-2024", "name": "Rafi", "phone": "01900000000"}
	code, _ = call(t, e, http.MethodPost, "/v1/giveaways", "", entry)
	assert.Equal(t, http.StatusCreated, code)
	code, _ = call(t, e, http.MethodPost, "/v1/giveaways", "", entry)
	assert.Equal(t, http.StatusConflict, code)
}

func TestWarrantyLookup(t *testing.T) {
	e := newTestServer(t)

	code, _ := call(t, e, http.MethodPost, "/v1/admin/warranties", adminToken, map[string]interface{}{
		"imei":            "356938035643809",
		"product_name":    "Pixel 9",
		"customer_name":   "Mim",
		"customer_phone":  "01600000000",
		"purchase_date":   "2024-01-10T00:00:00Z",
		"warranty_months": 12,
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := call(t, e, http.MethodGet, "/v1/warranty/356938035643809", "", nil)
	require.Equal(t, http.StatusOK, code)
	var record entity.WarrantyRecord
	decode(t, env, &record)
	assert.Equal(t, "Pixel 9", record.ProductName)

	code, _ = call(t, e, http.MethodGet, "/v1/warranty/000000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestPaymentCallbackIsFormEncoded(t *testing.T) {
	e := newTestServer(t)
	cat := seedCatalog(t, e)

	code, env := call(t, e, http.MethodPost, "/v1/orders", "", orderBody(cat, 1))
	require.Equal(t, http.StatusCreated, code)
	var order struct {
		OrderNumber string `json:"order_number"`
	}
	decode(t, env, &order)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/payments/callback", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := post(url.Values{"tran_id": {order.OrderNumber}, "status": {"VALID"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = post(url.Values{"tran_id": {order.OrderNumber}, "status": {"VALID"}, "val_id": {"v-1"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"payment_status":"paid"`)

	rec = post(url.Values{"tran_id": {order.OrderNumber}, "status": {"FAILED"}})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestDevTokenPromotesAdmin(t *testing.T) {
	e := newTestServer(t)

	code, env := call(t, e, http.MethodPost, "/_dev/token", "", map[string]string{"uid": "ops-1", "role": "admin"})
	require.Equal(t, http.StatusOK, code)
	var issued struct {
		Token string `json:"token"`
	}
	decode(t, env, &issued)
	assert.Equal(t, firebase.DevToken("ops-1"), issued.Token)

	code, _ = call(t, e, http.MethodGet, "/v1/admin/warranties", issued.Token, nil)
	assert.Equal(t, http.StatusOK, code)
}
