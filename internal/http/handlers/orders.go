package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sanchey92/storefront/internal/domain/model"
	"github.com/sanchey92/storefront/internal/http/lib/api/decode"
	"github.com/sanchey92/storefront/internal/http/lib/api/response"
	"github.com/sanchey92/storefront/internal/http/middlewares"
	"github.com/sanchey92/storefront/internal/service/customer"
	"github.com/sanchey92/storefront/internal/service/order"
	"github.com/sanchey92/storefront/internal/service/tenant"
)

type TenantResolver interface {
	Resolve(ctx context.Context, handle string) (*model.Tenant, *model.Store, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, storeID int64, auth *customer.AuthIdentity, guest *model.GuestInfo) (*model.Customer, error)
}

type OrderService interface {
	Create(ctx context.Context, store *model.Store, cust *model.Customer, cmd *order.CreateCommand) (*model.Order, error)
	List(ctx context.Context, storeID, customerID int64) ([]*model.Order, error)
	Get(ctx context.Context, storeID, customerID int64, orderID string) (*model.Order, error)
}

type Orders struct {
	tenants   TenantResolver
	customers IdentityResolver
	orders    OrderService
}

func NewOrders(tenants TenantResolver, customers IdentityResolver, orders OrderService) *Orders {
	return &Orders{
		tenants:   tenants,
		customers: customers,
		orders:    orders,
	}
}

type createOrderRequest struct {
	CustomerID      *int64           `json:"customer_id"`
	GuestCustomer   *model.GuestInfo `json:"guest_customer"`
	PaymentMethod   string           `json:"payment_method"`
	DeliveryTime    string           `json:"delivery_time"`
	DeliveryAddress string           `json:"delivery_address"`
	Notes           string           `json:"notes"`
	Items           []itemRequest    `json:"items"`
	Subtotal        *decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal  `json:"delivery_fee"`
	Tax             decimal.Decimal  `json:"tax"`
	Total           *decimal.Decimal `json:"total"`
}

type itemRequest struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderItemResponse struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

type orderResponse struct {
	OrderID         string              `json:"order_id"`
	Status          model.OrderStatus   `json:"status"`
	PaymentStatus   model.PaymentStatus `json:"payment_status"`
	PaymentMethod   model.PaymentMethod `json:"payment_method"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	Tax             decimal.Decimal     `json:"tax"`
	Total           decimal.Decimal     `json:"total"`
	DeliveryTime    string              `json:"delivery_time,omitempty"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	CreatedAt       string              `json:"created_at"`
	Items           []orderItemResponse `json:"items,omitempty"`
}

func newOrderResponse(o *model.Order) orderResponse {
	resp := orderResponse{
		OrderID:         o.OrderID,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		PaymentMethod:   o.PaymentMethod,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Tax:             o.Tax,
		Total:           o.Total,
		DeliveryTime:    o.DeliveryTime,
		DeliveryAddress: o.DeliveryAddress,
		CreatedAt:       o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Total:     it.Total,
		})
	}
	return resp
}

// Create handles POST /storefront/{tenantHandle}/orders.
func (h *Orders) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, store, err := h.tenants.Resolve(ctx, chi.URLParam(r, "tenantHandle"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req createOrderRequest
	if err = decode.JSON(w, r, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	claims, authed := middlewares.CustomerFromContext(ctx)
	if req.CustomerID != nil && !authed {
		response.Unauthorized(w, "authentication required to order as a registered customer")
		return
	}

	var auth *customer.AuthIdentity
	if authed {
		auth = &customer.AuthIdentity{CustomerID: claims.CustomerID, StoreID: claims.StoreID}
	}

	cust, err := h.customers.Resolve(ctx, store.ID, auth, req.GuestCustomer)
	if err != nil {
		writeError(w, err)
		return
	}

	o, err := h.orders.Create(ctx, store, cust, &order.CreateCommand{
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		DeliveryTime:    req.DeliveryTime,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		Items:           toItemInputs(req.Items),
		ShippingCost:    req.DeliveryFee,
		Tax:             req.Tax,
		ClientSubtotal:  req.Subtotal,
		ClientTotal:     req.Total,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, newOrderResponse(o))
}

// List handles GET /storefront/{tenantHandle}/orders; authenticated customers only.
func (h *Orders) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, store, err := h.tenants.Resolve(ctx, chi.URLParam(r, "tenantHandle"))
	if err != nil {
		writeError(w, err)
		return
	}

	claims, ok := h.requireCustomer(w, ctx, store.ID)
	if !ok {
		return
	}

	orders, err := h.orders.List(ctx, store.ID, claims.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, newOrderResponse(o))
	}
	response.OK(w, resp)
}

// Get handles GET /storefront/{tenantHandle}/orders/{orderID}.
func (h *Orders) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, store, err := h.tenants.Resolve(ctx, chi.URLParam(r, "tenantHandle"))
	if err != nil {
		writeError(w, err)
		return
	}

	claims, ok := h.requireCustomer(w, ctx, store.ID)
	if !ok {
		return
	}

	o, err := h.orders.Get(ctx, store.ID, claims.CustomerID, chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}

	response.OK(w, newOrderResponse(o))
}

func (h *Orders) requireCustomer(w http.ResponseWriter, ctx context.Context, storeID int64) (*middlewares.CustomerClaims, bool) {
	claims, ok := middlewares.CustomerFromContext(ctx)
	if !ok {
		response.Unauthorized(w, "authentication required")
		return nil, false
	}
	if claims.StoreID != storeID {
		response.Unauthorized(w, "token not valid for this store")
		return nil, false
	}
	return claims, true
}

func toItemInputs(items []itemRequest) []order.ItemInput {
	inputs := make([]order.ItemInput, 0, len(items))
	for _, it := range items {
		inputs = append(inputs, order.ItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return inputs
}

// writeError maps service errors onto the storefront error envelope without
// leaking internals.
func writeError(w http.ResponseWriter, err error) {
	var verrs order.ValidationErrors

	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		response.NotFound(w, "store not found")
	case errors.Is(err, order.ErrOrderNotFound):
		response.NotFound(w, "order not found")
	case errors.Is(err, customer.ErrCustomerNotFound):
		response.NotFound(w, "customer not found")
	case errors.Is(err, customer.ErrUnauthenticated):
		response.Unauthorized(w, "authentication required")
	case errors.Is(err, customer.ErrGuestInfoInvalid):
		response.UnprocessableEntity(w, []order.FieldError{
			{Field: "guest_customer", Index: -1, Message: "name and a valid email are required"},
		})
	case errors.As(err, &verrs):
		response.UnprocessableEntity(w, verrs)
	case errors.Is(err, order.ErrSequenceExhausted):
		response.Conflict(w, "could not allocate an order id, retry the request")
	default:
		response.InternalError(w)
	}
}
