package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shopify REST entities, limited to the fields the eligibility
// pipeline reads. The platform serializes monetary amounts as JSON
// strings; decimal.Decimal accepts both strings and numbers.

// Order snapshot, fetched once per evaluation

type Order struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Customer       CustomerRef    `json:"customer"`
	BillingAddress Address        `json:"billing_address"`
	TotalPriceSet  PriceSet       `json:"total_price_set"`
	DiscountCodes  []DiscountCode `json:"discount_codes"`
	LineItems      []LineItem     `json:"line_items"`
	Fulfillments   []Fulfillment  `json:"fulfillments"`
	Refunds        []Refund       `json:"refunds"`
}

type CustomerRef struct {
	ID int64 `json:"id"`
}

type Address struct {
	Name string `json:"name"`
}

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

type PriceSet struct {
	ShopMoney        Money `json:"shop_money"`
	PresentmentMoney Money `json:"presentment_money"`
}

type DiscountCode struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

type LineItem struct {
	ID                  int64                `json:"id"`
	VariantID           int64                `json:"variant_id"`
	SKU                 string               `json:"sku"`
	Name                string               `json:"name"`
	Quantity            int                  `json:"quantity"`
	CurrentQuantity     int                  `json:"current_quantity"`
	Price               decimal.Decimal      `json:"price"`
	PriceSet            PriceSet             `json:"price_set"`
	Properties          []Property           `json:"properties"`
	DiscountAllocations []DiscountAllocation `json:"discount_allocations"`
}

// Property carries item-level metadata such as the "Final Sale"
// marker and checkout-computed discount figures.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type DiscountAllocation struct {
	Amount    decimal.Decimal `json:"amount"`
	AmountSet PriceSet        `json:"amount_set"`
}

// Shipments

type Fulfillment struct {
	ID             int64                 `json:"id"`
	ShipmentStatus string                `json:"shipment_status"`
	UpdatedAt      time.Time             `json:"updated_at"`
	LineItems      []FulfillmentLineItem `json:"line_items"`
}

type FulfillmentLineItem struct {
	ID int64 `json:"id"`
}

const ShipmentStatusDelivered = "delivered"

// FulfillmentOrder comes from the fulfillment_orders endpoint and
// references line items by line_item_id, unlike Fulfillment above.
type FulfillmentOrder struct {
	ID        int64                      `json:"id"`
	Status    string                     `json:"status"`
	LineItems []FulfillmentOrderLineItem `json:"line_items"`
}

type FulfillmentOrderLineItem struct {
	LineItemID int64 `json:"line_item_id"`
}

// Refunds

type Refund struct {
	ID              int64            `json:"id"`
	RefundLineItems []RefundLineItem `json:"refund_line_items"`
}

type RefundLineItem struct {
	LineItemID int64 `json:"line_item_id"`
}

// Customer record, fetched for the lifetime order count

type Customer struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	OrdersCount int    `json:"orders_count"`
}

// Variant pricing, used only for the price-drop signal

type Variant struct {
	ID             int64               `json:"id"`
	Price          decimal.Decimal     `json:"price"`
	CompareAtPrice decimal.NullDecimal `json:"compare_at_price"`
}
