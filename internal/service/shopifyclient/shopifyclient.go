package shopifyclient

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BillyBonaros/mcp-luxmii/internal/model"
	"github.com/BillyBonaros/mcp-luxmii/internal/service/shopifyclient/config"
)

// API version families, consistently per endpoint.
const (
	orderAPIVersion  = "2024-10"
	lookupAPIVersion = "2024-04"
)

const defaultMaxRetries = 3

var (
	ErrRemoteUnavailable = errors.New("shopify unavailable")
	ErrOrderNotFound     = errors.New("couldn't fetch order details")
)

type Client interface {
	GetOrder(ctx context.Context, orderID string) (model.Order, error)
	GetFulfillmentStatuses(ctx context.Context, orderID string) (map[int64]string, error)
	GetCustomerOrderCount(ctx context.Context, customerID int64) (int, error)
	GetVariantPrices(ctx context.Context, variantID int64) (price, compareAt decimal.Decimal, ok bool)
	FindOrderByName(ctx context.Context, name string) (model.Order, error)
	FindOrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
}

type client struct {
	cfg    config.Config
	rest   *resty.Client
	zaplog *zap.Logger
	sleep  func(time.Duration)
}

func NewClient(cfg config.Config, zaplog *zap.Logger) Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}

	rest := resty.New()
	// Certificate verification is disabled on purpose: the shop fronted
	// by this deployment terminates TLS with a certificate the platform
	// rejects. Known operational weakening, do not "fix" silently.
	rest.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	rest.SetHeader("Content-Type", "application/json")
	rest.SetHeader("X-Shopify-Access-Token", cfg.AccessToken)

	return &client{
		cfg:    cfg,
		rest:   rest,
		zaplog: zaplog,
		sleep:  time.Sleep,
	}
}

// JSON response envelopes

type orderResponse struct {
	Order model.Order `json:"order"`
}

type ordersResponse struct {
	Orders []model.Order `json:"orders"`
}

type fulfillmentOrdersResponse struct {
	FulfillmentOrders []model.FulfillmentOrder `json:"fulfillment_orders"`
}

type customerResponse struct {
	Customer model.Customer `json:"customer"`
}

type variantResponse struct {
	Variant model.Variant `json:"variant"`
}

// get performs one GET with bounded exponential backoff. Every
// transport error and every non-2xx status is retried identically;
// before attempt n+1 the client sleeps 2^n seconds. After MaxRetries
// additional attempts the last failure is wrapped in
// ErrRemoteUnavailable together with the attempt count.
func (c *client) get(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; ; attempt++ {
		resp, err := c.rest.R().SetContext(ctx).Get(requestURL)
		switch {
		case err != nil:
			lastErr = err
		case resp.IsSuccess():
			return resp.Body(), nil
		default:
			lastErr = fmt.Errorf("shopify request status: %d", resp.StatusCode())
		}

		if attempt > c.cfg.MaxRetries {
			return nil, fmt.Errorf("%w after %d attempts: %v", ErrRemoteUnavailable, attempt, lastErr)
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		c.zaplog.Warn("shopify request failed, retrying",
			zap.String("url", requestURL),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(lastErr),
		)
		c.sleep(backoff)
	}
}

func (c *client) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	requestURL := fmt.Sprintf("%s/admin/api/%s/orders/%s.json", c.cfg.BaseURL, orderAPIVersion, orderID)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return model.Order{}, err
	}

	var answer orderResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return model.Order{}, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return answer.Order, nil
}

// GetFulfillmentStatuses maps line-item IDs to their fulfillment order
// status. Line items missing from the map have no fulfillment order.
func (c *client) GetFulfillmentStatuses(ctx context.Context, orderID string) (map[int64]string, error) {
	requestURL := fmt.Sprintf("%s/admin/api/%s/orders/%s/fulfillment_orders.json", c.cfg.BaseURL, lookupAPIVersion, orderID)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var answer fulfillmentOrdersResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("decode fulfillment orders for %s: %w", orderID, err)
	}

	statuses := make(map[int64]string)
	for _, fo := range answer.FulfillmentOrders {
		for _, item := range fo.LineItems {
			statuses[item.LineItemID] = fo.Status
		}
	}
	return statuses, nil
}

func (c *client) GetCustomerOrderCount(ctx context.Context, customerID int64) (int, error) {
	requestURL := fmt.Sprintf("%s/admin/api/%s/customers/%d.json", c.cfg.BaseURL, lookupAPIVersion, customerID)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return 0, err
	}

	var answer customerResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return 0, fmt.Errorf("decode customer %d: %w", customerID, err)
	}
	return answer.Customer.OrdersCount, nil
}

// GetVariantPrices is the one degrade-on-failure call site: a missing
// or unreachable variant must never abort a whole evaluation, so any
// failure is logged and reported as ok=false instead of an error.
func (c *client) GetVariantPrices(ctx context.Context, variantID int64) (price, compareAt decimal.Decimal, ok bool) {
	if variantID == 0 {
		return decimal.Zero, decimal.Zero, false
	}

	requestURL := fmt.Sprintf("%s/admin/api/%s/variants/%d.json", c.cfg.BaseURL, lookupAPIVersion, variantID)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		c.zaplog.Warn("variant lookup failed", zap.Int64("variant_id", variantID), zap.Error(err))
		return decimal.Zero, decimal.Zero, false
	}

	var answer variantResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		c.zaplog.Warn("variant lookup failed", zap.Int64("variant_id", variantID), zap.Error(err))
		return decimal.Zero, decimal.Zero, false
	}

	compareAt = decimal.Zero
	if answer.Variant.CompareAtPrice.Valid {
		compareAt = answer.Variant.CompareAtPrice.Decimal
	}
	return answer.Variant.Price, compareAt, true
}

// FindOrderByName resolves a customer-facing order name, adding the
// platform's "#" prefix when the caller omitted it.
func (c *client) FindOrderByName(ctx context.Context, name string) (model.Order, error) {
	if !strings.HasPrefix(name, "#") {
		name = "#" + name
	}

	orders, err := c.searchOrders(ctx, "name", name)
	if err != nil {
		return model.Order{}, err
	}
	if len(orders) == 0 {
		return model.Order{}, ErrOrderNotFound
	}
	return orders[0], nil
}

func (c *client) FindOrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	return c.searchOrders(ctx, "email", email)
}

func (c *client) searchOrders(ctx context.Context, field, value string) ([]model.Order, error) {
	query := url.Values{}
	query.Set("status", "any")
	query.Set(field, value)
	requestURL := fmt.Sprintf("%s/admin/api/%s/orders.json?%s", c.cfg.BaseURL, lookupAPIVersion, query.Encode())

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var answer ordersResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("decode order search by %s: %w", field, err)
	}
	return answer.Orders, nil
}
