package eligibility

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BillyBonaros/mcp-luxmii/internal/model"
)

// Item properties the checkout writes when it precomputes a discount.
const (
	propDiscountAmount     = "_discount_amount"
	propDiscountPercentage = "_discount_percentage"
	propFinalSaleValue     = "Final Sale"
)

// Discount source labels.
const (
	sourceItemAllocation = "Item Discount Allocation"
	sourceOrderCode      = "Order Discount Code"
	sourceNone           = "None"
)

// Facts are the per-line-item inputs the classifier and the response
// assembler need, derived once per evaluation and never persisted.
type Facts struct {
	DiscountPct    float64
	DiscountAmount decimal.Decimal
	DiscountSource string
	HasDiscount    bool
	DaysHeld       *int
	DeliveredAt    *time.Time
	IsFinalSale    bool
	WasReturned    bool
	UnitPaid       string
	LineGross      string
	LineNet        string
}

type Normalizer struct {
	// Now is swapped in tests; days-held depends on it.
	Now func() time.Time
}

func NewNormalizer() Normalizer {
	return Normalizer{Now: time.Now}
}

// Normalize derives Facts for one line item with current_quantity > 0.
func (n Normalizer) Normalize(order model.Order, item model.LineItem) Facts {
	facts := Facts{
		HasDiscount: len(order.DiscountCodes) > 0,
		IsFinalSale: isFinalSale(item),
		WasReturned: wasReturned(order, item),
	}

	facts.DiscountAmount, facts.DiscountPct = resolveDiscount(item)
	facts.DiscountSource = discountSource(facts.DiscountAmount, order)

	if delivered := deliveredAt(order, item); delivered != nil {
		facts.DeliveredAt = delivered
		// "Now" in the delivered timestamp's own zone, so the day floor
		// doesn't drift across a UTC/local boundary. Floor, not
		// truncate: a delivered timestamp ahead of the clock counts
		// as day -1, matching calendar-day arithmetic.
		now := n.Now().In(delivered.Location())
		days := int(math.Floor(now.Sub(*delivered).Hours() / 24))
		facts.DaysHeld = &days
	}

	pm := item.PriceSet.PresentmentMoney
	quantity := decimal.NewFromInt(int64(item.Quantity))
	gross := pm.Amount.Mul(quantity)

	lineDiscount := decimal.Zero
	for _, alloc := range item.DiscountAllocations {
		lineDiscount = lineDiscount.Add(alloc.AmountSet.PresentmentMoney.Amount)
	}

	facts.UnitPaid = displayAmount(pm.Amount, pm.CurrencyCode)
	facts.LineGross = displayAmount(gross, pm.CurrencyCode)
	facts.LineNet = displayAmount(gross.Sub(lineDiscount), pm.CurrencyCode)

	return facts
}

// resolveDiscount prefers the checkout-computed discount properties;
// when those are absent or zero it falls back to summing the item's
// discount allocations. The two paths are not reconciled: metadata,
// when present and nonzero, is authoritative.
func resolveDiscount(item model.LineItem) (decimal.Decimal, float64) {
	if amount, pct, ok := discountFromProperties(item); ok {
		return amount, pct
	}

	total := decimal.Zero
	for _, alloc := range item.DiscountAllocations {
		total = total.Add(alloc.Amount)
	}
	if item.Quantity == 0 || !total.IsPositive() || !item.Price.IsPositive() {
		return total, 0
	}

	quantity := decimal.NewFromInt(int64(item.Quantity))
	pct := total.Div(quantity).Div(item.Price).Mul(decimal.NewFromInt(100)).Round(2)
	return total, pct.InexactFloat64()
}

func discountFromProperties(item model.LineItem) (decimal.Decimal, float64, bool) {
	var (
		amount decimal.Decimal
		pct    float64
		found  bool
	)
	for _, prop := range item.Properties {
		switch prop.Name {
		case propDiscountAmount:
			parsed, err := decimal.NewFromString(prop.Value)
			if err == nil {
				amount = parsed
				found = true
			}
		case propDiscountPercentage:
			parsed, err := strconv.ParseFloat(strings.TrimSuffix(prop.Value, "%"), 64)
			if err == nil {
				pct = parsed
			}
		}
	}
	if !found || !amount.IsPositive() {
		return decimal.Zero, 0, false
	}
	return amount, pct, true
}

func discountSource(itemDiscount decimal.Decimal, order model.Order) string {
	var sources []string
	if !itemDiscount.IsZero() {
		sources = append(sources, sourceItemAllocation)
	}
	if len(order.DiscountCodes) > 0 {
		sources = append(sources, sourceOrderCode)
	}
	if len(sources) == 0 {
		return sourceNone
	}
	return strings.Join(sources, ", ")
}

// deliveredAt scans the order's fulfillments for a delivered shipment
// covering this item; other shipment statuses don't count.
func deliveredAt(order model.Order, item model.LineItem) *time.Time {
	var delivered *time.Time
	for _, fulfillment := range order.Fulfillments {
		if fulfillment.ShipmentStatus != model.ShipmentStatusDelivered {
			continue
		}
		for _, fi := range fulfillment.LineItems {
			if fi.ID == item.ID {
				updatedAt := fulfillment.UpdatedAt
				delivered = &updatedAt
			}
		}
	}
	return delivered
}

func isFinalSale(item model.LineItem) bool {
	for _, prop := range item.Properties {
		if prop.Value == propFinalSaleValue {
			return true
		}
	}
	return false
}

func wasReturned(order model.Order, item model.LineItem) bool {
	for _, refund := range order.Refunds {
		for _, ri := range refund.RefundLineItems {
			if ri.LineItemID == item.ID {
				return true
			}
		}
	}
	return false
}

func displayAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}
