package service

// Report is the evaluation envelope handed back to the caller. It is
// always well formed: either order_info/items on success, or an error
// message plus the echoed order id. Partial item lists never happen.
type Report struct {
	Success   bool              `json:"success"`
	OrderInfo *OrderInfo        `json:"order_info,omitempty"`
	Items     []ItemEligibility `json:"items,omitempty"`
	Error     string            `json:"error,omitempty"`
	OrderID   string            `json:"order_id,omitempty"`
}

type OrderInfo struct {
	OrderID       string   `json:"order_id"`
	OrderName     string   `json:"order_name"`
	CustomerEmail string   `json:"customer_email"`
	CustomerName  string   `json:"customer_name"`
	OrderCount    int      `json:"order_count"`
	TotalAmount   string   `json:"total_amount"`
	DiscountCodes []string `json:"discount_codes"`
}

type ItemEligibility struct {
	ItemName           string   `json:"item_name"`
	SKU                string   `json:"sku"`
	LineItemID         int64    `json:"line_item_id"`
	Quantity           int      `json:"quantity"`
	PaidPrice          string   `json:"paid_price"`
	LineGrossAmount    string   `json:"line_gross_amount"`
	LineNetAmount      string   `json:"line_net_amount"`
	DiscountPercentage float64  `json:"discount_percentage"`
	DiscountSource     string   `json:"discount_source"`
	HasVariantDiscount bool     `json:"has_variant_discount"`
	DaysHeld           *int     `json:"days_held"`
	FulfillmentStatus  string   `json:"fulfillment_status"`
	WasReturned        bool     `json:"was_returned"`
	IsFinalSale        bool     `json:"is_final_sale"`
	EligibilityStatus  string   `json:"eligibility_status"`
	Label              string   `json:"label"`
	ReturnCode         string   `json:"return_code"`
	ReturnOptions      []string `json:"return_options"`
}
