package service

import (
	"fmt"
	"strings"
)

// Format renders the evaluation as the agent-facing text report. The
// layout is consumed verbatim by response drafting, so wording and
// ordering here are part of the contract.
func (r Report) Format() string {
	if !r.Success {
		return fmt.Sprintf("Error processing order %s: %s", r.OrderID, r.Error)
	}

	var b strings.Builder

	info := r.OrderInfo
	customerStatus := fmt.Sprintf("Returning customer - %d orders", info.OrderCount)
	if info.OrderCount == 1 {
		customerStatus = "First-time customer"
	}
	discountCodes := "None"
	if len(info.DiscountCodes) > 0 {
		discountCodes = strings.Join(info.DiscountCodes, ", ")
	}

	b.WriteString("ORDER ELIGIBILITY REPORT\n\n")
	fmt.Fprintf(&b, "Order: %s\n", info.OrderName)
	fmt.Fprintf(&b, "Customer: %s (%s)\n", info.CustomerName, info.CustomerEmail)
	fmt.Fprintf(&b, "Customer Status: %s\n", customerStatus)
	fmt.Fprintf(&b, "Total: %s\n", info.TotalAmount)
	fmt.Fprintf(&b, "Discount Codes: %s\n", discountCodes)
	b.WriteString("\nITEM ELIGIBILITY:\n")

	for i, item := range r.Items {
		fmt.Fprintf(&b, "\n%d. %s (SKU: %s)\n", i+1, item.ItemName, item.SKU)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Net Amount: %s\n", item.LineNetAmount)
		fmt.Fprintf(&b, "   Status: %s\n", item.EligibilityStatus)

		if item.HasVariantDiscount {
			b.WriteString("   ⚠️  VARIANT DISCOUNT DETECTED - MANUAL REVIEW REQUIRED\n")
		}
		if item.DaysHeld != nil && *item.DaysHeld != 0 {
			fmt.Fprintf(&b, "   Days Held: %d\n", *item.DaysHeld)
		}
		if item.WasReturned {
			b.WriteString("   Status: ALREADY RETURNED\n")
		}

		b.WriteString("   Return Options:\n")
		for _, option := range item.ReturnOptions {
			fmt.Fprintf(&b, "   • %s\n", option)
		}
	}

	return b.String()
}
