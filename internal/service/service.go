package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BillyBonaros/mcp-luxmii/internal/eligibility"
	"github.com/BillyBonaros/mcp-luxmii/internal/guidelines"
	"github.com/BillyBonaros/mcp-luxmii/internal/model"
	"github.com/BillyBonaros/mcp-luxmii/internal/service/shopifyclient"
)

// FulfillmentStatusUnknown is reported for line items absent from the
// fulfillment-orders mapping.
const FulfillmentStatusUnknown = "Unknown"

type Service interface {
	EvaluateOrder(ctx context.Context, orderID string) Report
	LookupOrderByName(ctx context.Context, name string) (model.Order, error)
	SearchOrdersByEmail(ctx context.Context, email string) ([]model.Order, error)
	Guidelines() string
}

var ErrInsufficientData = errors.New("insufficient data")

type service struct {
	shopify    shopifyclient.Client
	normalizer eligibility.Normalizer
	zaplog     *zap.Logger
}

func NewService(shopify shopifyclient.Client, zaplog *zap.Logger) Service {
	return &service{
		shopify:    shopify,
		normalizer: eligibility.NewNormalizer(),
		zaplog:     zaplog,
	}
}

// EvaluateOrder runs the whole pipeline for one order. Every failure,
// wherever it happened, becomes a structured failure envelope; no
// error escapes to the caller unformatted.
func (s *service) EvaluateOrder(ctx context.Context, orderID string) Report {
	report, err := s.evaluate(ctx, orderID)
	if err != nil {
		s.zaplog.Error("order evaluation failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		return Report{Success: false, Error: err.Error(), OrderID: orderID}
	}
	return report
}

func (s *service) evaluate(ctx context.Context, orderID string) (Report, error) {
	if orderID == "" {
		return Report{}, ErrInsufficientData
	}

	// Four sequential fetches: order, fulfillment statuses, customer
	// order count, then per-item variant lookups below. The first
	// three are fatal on failure; order count participates directly
	// in eligibility.
	order, err := s.shopify.GetOrder(ctx, orderID)
	if err != nil {
		return Report{}, err
	}

	statuses, err := s.shopify.GetFulfillmentStatuses(ctx, orderID)
	if err != nil {
		return Report{}, err
	}

	orderCount, err := s.shopify.GetCustomerOrderCount(ctx, order.Customer.ID)
	if err != nil {
		return Report{}, fmt.Errorf("customer %d: %w", order.Customer.ID, err)
	}

	items := make([]ItemEligibility, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		// Fully refunded items are out of scope for evaluation.
		if item.CurrentQuantity <= 0 {
			continue
		}
		items = append(items, s.evaluateItem(ctx, order, item, statuses, orderCount))
	}

	codes := make([]string, 0, len(order.DiscountCodes))
	for _, dc := range order.DiscountCodes {
		codes = append(codes, dc.Code)
	}

	total := order.TotalPriceSet.PresentmentMoney
	info := OrderInfo{
		OrderID:       orderID,
		OrderName:     order.Name,
		CustomerEmail: order.Email,
		CustomerName:  order.BillingAddress.Name,
		OrderCount:    orderCount,
		TotalAmount:   total.Amount.StringFixed(2) + " " + total.CurrencyCode,
		DiscountCodes: codes,
	}

	return Report{Success: true, OrderInfo: &info, Items: items}, nil
}

func (s *service) evaluateItem(ctx context.Context, order model.Order, item model.LineItem, statuses map[int64]string, orderCount int) ItemEligibility {
	facts := s.normalizer.Normalize(order, item)

	status, remedies := eligibility.Classify(
		facts.IsFinalSale,
		facts.DaysHeld,
		facts.DiscountPct,
		facts.HasDiscount,
		orderCount,
	)

	// A price drop since purchase flags the item for manual review;
	// a failed lookup resolves to false rather than aborting.
	price, compareAt, ok := s.shopify.GetVariantPrices(ctx, item.VariantID)
	hasVariantDiscount := ok && compareAt.GreaterThan(price)

	fulfillmentStatus, found := statuses[item.ID]
	if !found {
		fulfillmentStatus = FulfillmentStatusUnknown
	}

	return ItemEligibility{
		ItemName:           item.Name,
		SKU:                item.SKU,
		LineItemID:         item.ID,
		Quantity:           item.Quantity,
		PaidPrice:          facts.UnitPaid,
		LineGrossAmount:    facts.LineGross,
		LineNetAmount:      facts.LineNet,
		DiscountPercentage: facts.DiscountPct,
		DiscountSource:     facts.DiscountSource,
		HasVariantDiscount: hasVariantDiscount,
		DaysHeld:           facts.DaysHeld,
		FulfillmentStatus:  fulfillmentStatus,
		WasReturned:        facts.WasReturned,
		IsFinalSale:        facts.IsFinalSale,
		EligibilityStatus:  status,
		Label:              eligibility.Label(status, facts.WasReturned),
		ReturnCode:         eligibility.ReturnCode(status),
		ReturnOptions:      remedies,
	}
}

func (s *service) LookupOrderByName(ctx context.Context, name string) (model.Order, error) {
	if name == "" {
		return model.Order{}, ErrInsufficientData
	}
	return s.shopify.FindOrderByName(ctx, name)
}

func (s *service) SearchOrdersByEmail(ctx context.Context, email string) ([]model.Order, error) {
	if email == "" {
		return nil, ErrInsufficientData
	}
	return s.shopify.FindOrdersByEmail(ctx, email)
}

func (s *service) Guidelines() string {
	return guidelines.Text()
}
