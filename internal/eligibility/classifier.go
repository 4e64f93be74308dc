package eligibility

// Eligibility statuses, closed set.
const (
	StatusFinalSale = "FINAL SALE"
	StatusExpired   = "EXPIRED"
	StatusDiscount  = "More than 20% off"
	StatusEligible  = "ELIGIBLE"
)

// Return codes for downstream systems.
const (
	CodeFinalSale = "RS-FINAL"
	CodeExpired   = "RS-30"
	CodeDiscount  = "RS-DISCOUNT"
	CodeEligible  = "RS-OK"
	CodeUnknown   = "RS-UNK"
)

// LabelReturned overrides the customer-facing label when the item was
// already refunded; status and return code stay as computed.
const LabelReturned = "RETURNED"

// Remedy wording is customer-facing and fixed by the returns policy.
const (
	RemedyNoReturn      = "Cannot be returned"
	RemedyStoreCredit   = "Store credit (-$20 USD label)"
	RemedyExchange      = "Item exchange (-$20 USD label)"
	RemedyAlteration    = "Alteration subsidy: 10% refund + $20 USD gift voucher"
	RemedyBonusCredit   = "120% store credit + free returns"
	RemedyRefund        = "Refund (-$30 USD label)"
	RemedyDiscretionary = "Discretionary Refunds: We reserve the right to approve a refund outside of our standard policy if, in our judgment, it is appropriate to do so."
)

// Classify maps per-item facts to a status and an ordered,
// retention-first remedy list. Pure function, first matching rule
// wins. daysHeld is nil until the item has a delivered shipment.
func Classify(isFinalSale bool, daysHeld *int, discountPct float64, hasDiscount bool, orderCount int) (string, []string) {
	switch {
	case isFinalSale:
		return StatusFinalSale, []string{RemedyNoReturn}

	case daysHeld != nil && *daysHeld > 30:
		// Past the return window: credit only, label cost on the customer.
		return StatusExpired, []string{RemedyStoreCredit}

	case discountPct > 20:
		// Deep-discounted items never qualify for a refund.
		return StatusDiscount, []string{
			RemedyStoreCredit,
			RemedyExchange,
			RemedyAlteration,
		}

	case orderCount == 1:
		return StatusEligible, []string{
			RemedyBonusCredit,
			RemedyExchange,
			RemedyRefund,
			RemedyAlteration,
		}

	case hasDiscount:
		// Lightly discounted (≤20%): refund only at our discretion.
		return StatusEligible, []string{
			RemedyStoreCredit,
			RemedyExchange,
			RemedyAlteration,
			RemedyDiscretionary,
		}

	default:
		return StatusEligible, []string{
			RemedyBonusCredit,
			RemedyExchange,
			RemedyRefund,
			RemedyAlteration,
		}
	}
}

// ReturnCode resolves the fixed status→code table. The fallback is
// defensive: Classify only emits the four known statuses.
func ReturnCode(status string) string {
	switch status {
	case StatusFinalSale:
		return CodeFinalSale
	case StatusExpired:
		return CodeExpired
	case StatusDiscount:
		return CodeDiscount
	case StatusEligible:
		return CodeEligible
	default:
		return CodeUnknown
	}
}

// Label is what the customer sees; already-returned items read
// "RETURNED" regardless of the computed status.
func Label(status string, wasReturned bool) string {
	if wasReturned {
		return LabelReturned
	}
	return status
}
