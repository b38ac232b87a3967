package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/http/handlers"
	"github.com/sanchey92/storefront/internal/http/middlewares"
	"github.com/sanchey92/storefront/internal/service/customer"
	"github.com/sanchey92/storefront/internal/service/order"
	"github.com/sanchey92/storefront/internal/service/tenant"
)

const testSecret = "test-secret"

type fakeTenants struct{}

func (fakeTenants) Resolve(_ context.Context, handle string) (*model.Tenant, *model.Store, error) {
	if handle != "acme" {
		return nil, nil, tenant.ErrTenantNotFound
	}
	return &model.Tenant{ID: 1, Handle: "acme", StoreID: 10},
		&model.Store{ID: 10, Name: "Acme"}, nil
}

type fakeCustomers struct{}

func (fakeCustomers) Resolve(_ context.Context, storeID int64, auth *customer.AuthIdentity, guest *model.GuestInfo) (*model.Customer, error) {
	if auth != nil {
		if auth.StoreID != storeID {
			return nil, customer.ErrUnauthenticated
		}
		return &model.Customer{ID: auth.CustomerID, StoreID: storeID}, nil
	}
	if guest == nil {
		return nil, customer.ErrUnauthenticated
	}
	if guest.Email == "" {
		return nil, customer.ErrGuestInfoInvalid
	}
	return &model.Customer{ID: 77, StoreID: storeID, Email: guest.Email}, nil
}

type fakeOrders struct {
	createErr error
	getErr    error
}

func (f *fakeOrders) Create(_ context.Context, store *model.Store, cust *model.Customer, cmd *order.CreateCommand) (*model.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	items := make([]model.OrderItem, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		items = append(items, model.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	o := model.NewOrder(store.ID, cust.ID, items, cmd.ShippingCost, cmd.Tax)
	o.OrderID = "ORD-2026-000123"
	o.PaymentMethod = cmd.PaymentMethod
	return o, nil
}

func (f *fakeOrders) List(_ context.Context, storeID, customerID int64) ([]*model.Order, error) {
	return []*model.Order{{OrderID: "ORD-2026-000124", StoreID: storeID, CustomerID: customerID}}, nil
}

func (f *fakeOrders) Get(_ context.Context, storeID, customerID int64, orderID string) (*model.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &model.Order{OrderID: orderID, StoreID: storeID, CustomerID: customerID}, nil
}

type fakePinger struct{}

func (fakePinger) Ping(context.Context) error { return nil }

func newTestServer(t *testing.T, orders *fakeOrders) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := handlers.NewRouter(logger, testSecret,
		handlers.NewOrders(fakeTenants{}, fakeCustomers{}, orders), fakePinger{})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, customerID, storeID int64) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &middlewares.CustomerClaims{
		CustomerID: customerID,
		StoreID:    storeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func postOrder(t *testing.T, srv *httptest.Server, handle, token string, body map[string]any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/storefront/"+handle+"/orders", bytes.NewReader(raw))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func guestOrderBody() map[string]any {
	return map[string]any{
		"guest_customer":   map[string]any{"name": "Sam", "email": "sam@example.com", "phone": "555-0101"},
		"payment_method":   "cash",
		"delivery_address": "12 Harbor St",
		"items":            []map[string]any{{"product_id": 10, "quantity": 2, "price": 10.0}},
		"delivery_fee":     2.0,
	}
}

func TestCreateOrderGuest(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	resp := postOrder(t, srv, "acme", "", guestOrderBody())
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		OrderID  string          `json:"order_id"`
		Status   string          `json:"status"`
		Subtotal decimal.Decimal `json:"subtotal"`
		Total    decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "ORD-2026-000123", created.OrderID)
	assert.Equal(t, "pending", created.Status)
	assert.True(t, created.Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, created.Total.Equal(decimal.NewFromInt(22)))
}

func TestCreateOrderUnknownTenant(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	resp := postOrder(t, srv, "ghost", "", guestOrderBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateOrderClaimedCustomerWithoutToken(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	body := guestOrderBody()
	body["customer_id"] = 42
	delete(body, "guest_customer")

	resp := postOrder(t, srv, "acme", "", body)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateOrderAuthenticated(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	resp := postOrder(t, srv, "acme", signToken(t, 42, 10), guestOrderBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateOrderValidationErrors(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{createErr: order.ValidationErrors{
		{Field: "items", Index: 1, Message: "product does not belong to this store"},
	}})

	resp := postOrder(t, srv, "acme", "", guestOrderBody())
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var payload struct {
		Kind   string `json:"kind"`
		Errors []struct {
			Field string `json:"field"`
			Index int    `json:"index"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "validation_error", payload.Kind)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "items", payload.Errors[0].Field)
	assert.Equal(t, 1, payload.Errors[0].Index)
}

func TestCreateOrderSequenceExhausted(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{createErr: order.ErrSequenceExhausted})

	resp := postOrder(t, srv, "acme", "", guestOrderBody())
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestListOrdersRequiresAuth(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	resp, err := srv.Client().Get(srv.URL + "/storefront/acme/orders")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListOrdersWrongStoreToken(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/storefront/acme/orders", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, 999))

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListOrders(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/storefront/acme/orders", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, 10))

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []struct {
		OrderID string `json:"order_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-2026-000124", orders[0].OrderID)
}

func TestGetOrderNotFound(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{getErr: order.ErrOrderNotFound})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/storefront/acme/orders/ORD-2026-999999", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signToken(t, 42, 10))

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeOrders{})

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
