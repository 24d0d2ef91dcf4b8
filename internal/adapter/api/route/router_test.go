package route

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VS237/momshop/internal/adapter/api/dto"
	"github.com/VS237/momshop/internal/adapter/cartstore"
	"github.com/VS237/momshop/internal/adapter/memory"
	"github.com/VS237/momshop/internal/adapter/messaging"
	"github.com/VS237/momshop/internal/bootstrap"
	"github.com/VS237/momshop/internal/config"
	"github.com/VS237/momshop/internal/domain/seller"
	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/auth"
	"github.com/VS237/momshop/pkg/logger"
	"github.com/VS237/momshop/pkg/session"
)

const adminPassword = "admin-pass-1"

type apiTest struct {
	t        *testing.T
	router   *gin.Engine
	services *bootstrap.Services
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := config.NewViper()
	v.Set("STORE_DRIVER", "memory")
	v.Set("DEEPSEEK_API_KEY", "")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	log := logger.NewNop()
	jwtService, err := auth.NewJWTService("router-test-secret", time.Hour)
	require.NoError(t, err)

	st := memory.NewStore()
	svc := bootstrap.NewServices(*cfg, st, cartstore.NewMemoryStore(time.Hour), messaging.NewLogPublisher(log), jwtService, log)

	_, err = svc.Auth.BootstrapAdmin(context.Background(), "admin", "admin@momshop.cm", adminPassword)
	require.NoError(t, err)

	return &apiTest{
		t:        t,
		services: svc,
		router: NewRouter(Dependencies{
			Services:    svc,
			JWT:         jwtService,
			Health:      st,
			Version:     "test",
			CORSOrigins: []string{"*"},
			Logger:      log,
		}),
	}
}

type call struct {
	method  string
	path    string
	token   string
	session string
	body    any
}

func (a *apiTest) do(c call) *httptest.ResponseRecorder {
	a.t.Helper()

	var body bytes.Buffer
	if c.body != nil {
		require.NoError(a.t, json.NewEncoder(&body).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, BasePath+c.path, &body)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.session != "" {
		req.Header.Set(session.HeaderName, c.session)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *apiTest) login(identifier, password string) dto.LoginResponse {
	w := a.do(call{method: http.MethodPost, path: "/auth/login", body: dto.LoginRequest{Identifier: identifier, Password: password}})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[dto.LoginResponse](a.t, w)
}

func (a *apiTest) register(username, phone string) dto.LoginResponse {
	w := a.do(call{method: http.MethodPost, path: "/auth/register", body: dto.RegisterRequest{
		Username:  username,
		Email:     username + "@mail.cm",
		Password:  "customer-pass",
		FirstName: "Awa",
		LastName:  "Ngono",
		Phone:     phone,
		City:      "Douala",
	}})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.LoginResponse](a.t, w)
}

type productJSON struct {
	ID           string          `json:"id"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
}

func (a *apiTest) createProduct(token, name string, buying, selling int64, qty int) productJSON {
	w := a.do(call{method: http.MethodPost, path: "/admin/products", token: token, body: dto.ProductRequest{
		Name:         name,
		BuyingPrice:  decimal.NewFromInt(buying),
		SellingPrice: decimal.NewFromInt(selling),
		Unit:         "unit",
		Quantity:     qty,
		Category:     "Groceries",
		Supplier:     "Central",
	}})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[productJSON](a.t, w)
}

type orderJSON struct {
	ID          string          `json:"id"`
	Number      string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	IsProcessed bool            `json:"is_processed"`
	Items       []struct {
		Quantity          int `json:"quantity"`
		RequestedQuantity int `json:"requested_quantity"`
	} `json:"items"`
}

func TestHealth(t *testing.T) {
	a := newAPITest(t)

	w := a.do(call{method: http.MethodGet, path: "/health"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]string](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestOrderLifecycle(t *testing.T) {
	a := newAPITest(t)
	admin := a.login("admin", adminPassword)

	rice := a.createProduct(admin.AccessToken, "Rice 5kg", 300, 500, 3)

	w := a.do(call{method: http.MethodPost, path: "/admin/sellers", token: admin.AccessToken, body: dto.SellerRequest{
		Username:  "clerk",
		Password:  "clerk-pass-1",
		Email:     "clerk@momshop.cm",
		FirstName: "Paul",
		LastName:  "Biya",
		Phone:     "677000001",
		Salary:    decimal.NewFromInt(80000),
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	customer := a.register("awa", "699000001")
	require.NotEmpty(t, customer.CustomerID)
	cartSession := uuid.New().String()

	w = a.do(call{method: http.MethodPost, path: "/cart/items", session: cartSession, body: dto.CartItemRequest{ProductID: rice.ID, Quantity: 5}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, cartSession, w.Header().Get(session.HeaderName))

	w = a.do(call{method: http.MethodGet, path: "/cart/count", session: cartSession})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decode[dto.CartCountResponse](t, w).Count)

	w = a.do(call{method: http.MethodPost, path: "/orders", token: customer.AccessToken, session: cartSession, body: dto.CheckoutRequest{Town: "Makepe"}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	placed := decode[orderJSON](t, w)
	assert.Equal(t, "3500", placed.TotalAmount.String())
	require.Len(t, placed.Items, 1)
	assert.Equal(t, 5, placed.Items[0].Quantity)

	w = a.do(call{method: http.MethodGet, path: "/cart/count", session: cartSession})
	assert.Equal(t, 0, decode[dto.CartCountResponse](t, w).Count)

	clerk := a.login("clerk@momshop.cm", "clerk-pass-1")
	require.NotEmpty(t, clerk.SellerID)

	w = a.do(call{method: http.MethodGet, path: "/orders/latest", token: clerk.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[dto.OrderListResponse](t, w).Count)

	w = a.do(call{method: http.MethodPost, path: "/orders/" + placed.ID + "/process", token: clerk.AccessToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[struct {
		AlreadyProcessed bool `json:"already_processed"`
		Result           struct {
			Total        decimal.Decimal `json:"total"`
			SalesCreated int             `json:"sales_created"`
		} `json:"result"`
	}](t, w)
	assert.False(t, first.AlreadyProcessed)
	assert.Equal(t, "1500", first.Result.Total.String())
	assert.Equal(t, 1, first.Result.SalesCreated)

	w = a.do(call{method: http.MethodPost, path: "/orders/" + placed.ID + "/process", token: clerk.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.ProcessOrderResponse](t, w).AlreadyProcessed)

	w = a.do(call{method: http.MethodGet, path: "/receipts/" + placed.Number, token: customer.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	receipt := decode[orderJSON](t, w)
	assert.True(t, receipt.IsProcessed)
	assert.Equal(t, "1500", receipt.TotalAmount.String())
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, 3, receipt.Items[0].Quantity)
	assert.Equal(t, 5, receipt.Items[0].RequestedQuantity)

	w = a.do(call{method: http.MethodGet, path: "/shop/products/" + rice.ID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[productJSON](t, w).Quantity)

	w = a.do(call{method: http.MethodPost, path: "/reports/daily", token: clerk.AccessToken})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(call{method: http.MethodGet, path: "/admin/reports/export.xlsx", token: admin.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "daily-reports.xlsx")
}

func TestAccessControl(t *testing.T) {
	a := newAPITest(t)
	customer := a.register("bella", "699000002")
	admin := a.login("admin", adminPassword)

	tests := []struct {
		name       string
		call       call
		wantStatus int
	}{
		{
			name:       "admin route without token",
			call:       call{method: http.MethodGet, path: "/admin/products"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin route as customer",
			call:       call{method: http.MethodGet, path: "/admin/products", token: customer.AccessToken},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "staff route as customer",
			call:       call{method: http.MethodPost, path: "/sales", token: customer.AccessToken, body: dto.SaleRequest{Lines: []dto.SaleLineRequest{{ProductID: "p", Quantity: 1}}}},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "checkout as admin",
			call:       call{method: http.MethodPost, path: "/orders", token: admin.AccessToken},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "tampered token",
			call:       call{method: http.MethodGet, path: "/auth/me", token: customer.AccessToken + "x"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "own account",
			call:       call{method: http.MethodGet, path: "/auth/me", token: customer.AccessToken},
			wantStatus: http.StatusOK,
		},
		{
			name:       "storefront is public",
			call:       call{method: http.MethodGet, path: "/shop/products"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.call)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestErrorMapping(t *testing.T) {
	a := newAPITest(t)
	admin := a.login("admin", adminPassword)
	customer := a.register("carine", "699000003")
	tea := a.createProduct(admin.AccessToken, "Tea", 100, 200, 1)

	// counter sales and reports by an admin are attributed to the first active seller
	_, err := a.services.Sellers.Create(context.Background(), service.SellerInput{
		Username:  "desk",
		Password:  "desk-pass-1",
		Email:     "desk@momshop.cm",
		FirstName: "Desk",
		LastName:  "Clerk",
		Profile:   seller.Profile{Phone: "677000002"},
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		call       call
		wantStatus int
	}{
		{
			name:       "checkout with an empty cart",
			call:       call{method: http.MethodPost, path: "/orders", token: customer.AccessToken, session: uuid.New().String()},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown product in cart",
			call:       call{method: http.MethodPost, path: "/cart/items", body: dto.CartItemRequest{ProductID: uuid.New().String(), Quantity: 1}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			call:       call{method: http.MethodPost, path: "/auth/login", body: map[string]int{"identifier": 1}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "wrong password",
			call:       call{method: http.MethodPost, path: "/auth/login", body: dto.LoginRequest{Identifier: "admin", Password: "nope-nope"}},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "duplicate username",
			call:       call{method: http.MethodPost, path: "/auth/register", body: dto.RegisterRequest{Username: "carine", Email: "other@mail.cm", Password: "customer-pass", FirstName: "C", LastName: "D", Phone: "699000099"}},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "selling below buying price",
			call:       call{method: http.MethodPost, path: "/admin/products", token: admin.AccessToken, body: dto.ProductRequest{Name: "Salt", BuyingPrice: decimal.NewFromInt(200), SellingPrice: decimal.NewFromInt(100)}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "counter sale beyond stock",
			call:       call{method: http.MethodPost, path: "/sales", token: admin.AccessToken, body: dto.SaleRequest{Lines: []dto.SaleLineRequest{{ProductID: tea.ID, Quantity: 2}}}},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "daily report without sales",
			call:       call{method: http.MethodPost, path: "/reports/daily", token: admin.AccessToken, body: dto.DailyReportRequest{Date: "2020-01-01"}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "chat without an API key",
			call:       call{method: http.MethodPost, path: "/chat", token: admin.AccessToken, body: dto.ChatRequest{Message: "hello"}},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unknown receipt",
			call:       call{method: http.MethodGet, path: "/receipts/ORD-NOPE", token: customer.AccessToken},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(tt.call)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if w.Code >= http.StatusBadRequest {
				assert.Equal(t, w.Code, decode[dto.ErrorResponse](t, w).Code)
			}
		})
	}
}
