package storefront

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"storefront_back_end/internal/models"
)

const DefaultTimeout = 15 * time.Second

type Config struct {
	BaseURL string
	Token   string
	// Timeout par requête, DefaultTimeout si nul
	Timeout time.Duration
}

// RestClient implémente API sur l'API REST du serveur
type RestClient struct {
	client *resty.Client
}

var _ API = (*RestClient)(nil)

func NewRestClient(cfg Config) *RestClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &RestClient{client: client}
}

// SetToken remplace le jeton porteur (après login)
func (c *RestClient) SetToken(token string) {
	c.client.SetAuthToken(token)
}

type apiError struct {
	Error string `json:"error"`
}

// do exécute la requête et traduit tout échec en *RemoteError
func (c *RestClient) do(ctx context.Context, method, path string, body, result any) error {
	req := c.client.R().SetContext(ctx).SetError(&apiError{})
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return &RemoteError{Err: err}
	}
	if resp.IsError() {
		rerr := &RemoteError{Status: resp.StatusCode()}
		if e, ok := resp.Error().(*apiError); ok && e.Error != "" {
			rerr.Message = e.Error
		} else {
			rerr.Message = http.StatusText(resp.StatusCode())
		}
		return rerr
	}
	return nil
}

func (c *RestClient) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &user)
	return user, err
}

func (c *RestClient) FetchCart(ctx context.Context) ([]models.CartItem, error) {
	var out struct {
		Items []models.CartItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *RestClient) AddCartItem(ctx context.Context, req AddItemRequest) (models.CartItem, error) {
	var item models.CartItem
	err := c.do(ctx, http.MethodPost, "/api/cart", req, &item)
	return item, err
}

func (c *RestClient) ChangeQuantity(ctx context.Context, itemID string, change int) (models.CartItem, error) {
	var item models.CartItem
	err := c.do(ctx, http.MethodPatch, "/api/cart/"+url.PathEscape(itemID), map[string]int{"change": change}, &item)
	return item, err
}

func (c *RestClient) RemoveCartItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(itemID), nil, nil)
}

type orderIDResponse struct {
	OrderID string `json:"orderId"`
}

func (c *RestClient) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (string, error) {
	var out orderIDResponse
	err := c.do(ctx, http.MethodPost, "/api/orders", req, &out)
	return out.OrderID, err
}

func (c *RestClient) CreatePaymentOrder(ctx context.Context, amount decimal.Decimal) (PaymentOrder, error) {
	var out PaymentOrder
	err := c.do(ctx, http.MethodPost, "/api/payments/orders", map[string]decimal.Decimal{"amount": amount}, &out)
	return out, err
}

func (c *RestClient) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (string, error) {
	var out orderIDResponse
	err := c.do(ctx, http.MethodPost, "/api/payments/verify", req, &out)
	return out.OrderID, err
}

func (c *RestClient) ListAllOrders(ctx context.Context, q OrderQuery) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	params := url.Values{}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	path := "/api/admin/orders"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *RestClient) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *RestClient) ApproveOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, adminOrderPath(orderID, "/approve"), nil, nil)
}

func (c *RestClient) ShipOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, adminOrderPath(orderID, "/ship"), nil, nil)
}

func (c *RestClient) DeliverOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, adminOrderPath(orderID, "/deliver"), nil, nil)
}

func (c *RestClient) RequestReturn(ctx context.Context, orderID, reason string) error {
	body := map[string]string{"orderId": orderID, "reason": reason}
	return c.do(ctx, http.MethodPost, "/api/orders/returns", body, nil)
}

func (c *RestClient) ApproveReturn(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, adminOrderPath(orderID, "/return/approve"), nil, nil)
}

func (c *RestClient) DenyReturn(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, adminOrderPath(orderID, "/return/deny"), nil, nil)
}

func (c *RestClient) CancelReturn(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID)+"/return/cancel", nil, nil)
}

func (c *RestClient) DeleteOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, adminOrderPath(orderID, ""), nil, nil)
}

func adminOrderPath(orderID, suffix string) string {
	return "/api/admin/orders/" + url.PathEscape(orderID) + suffix
}
