package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BillyBonaros/mcp-luxmii/internal/model"
	"github.com/BillyBonaros/mcp-luxmii/internal/service"
	"github.com/BillyBonaros/mcp-luxmii/internal/service/shopifyclient"
)

type fakeService struct {
	report    service.Report
	order     model.Order
	orders    []model.Order
	lookupErr error
	searchErr error
}

func (f *fakeService) EvaluateOrder(_ context.Context, _ string) service.Report {
	return f.report
}

func (f *fakeService) LookupOrderByName(_ context.Context, _ string) (model.Order, error) {
	return f.order, f.lookupErr
}

func (f *fakeService) SearchOrdersByEmail(_ context.Context, _ string) ([]model.Order, error) {
	return f.orders, f.searchErr
}

func (f *fakeService) Guidelines() string {
	return "RESPONSE GUIDELINES"
}

func newTestServer(svc service.Service) *httptest.Server {
	h := newHandler(svc, zap.NewNop())
	return httptest.NewServer(h.newRouter())
}

func TestPing(t *testing.T) {
	srv := newTestServer(&fakeService{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(body))
}

func TestGetGuidelines(t *testing.T) {
	srv := newTestServer(&fakeService{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/guidelines")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, "RESPONSE GUIDELINES", string(body))
}

func TestEvaluateOrderEnvelopeAlways200(t *testing.T) {
	srv := newTestServer(&fakeService{
		report: service.Report{Success: false, Error: "shopify unavailable after 4 attempts", OrderID: "42"},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/42/eligibility")
	require.NoError(t, err)
	defer resp.Body.Close()

	// Failures ride inside the envelope, never as a bare HTTP error.
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report service.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.False(t, report.Success)
	require.Equal(t, "42", report.OrderID)
	require.Contains(t, report.Error, "after 4 attempts")
}

func TestEvaluateOrderTextReport(t *testing.T) {
	srv := newTestServer(&fakeService{
		report: service.Report{
			Success: true,
			OrderInfo: &service.OrderInfo{
				OrderName:     "#1001",
				CustomerName:  "Bob Norman",
				CustomerEmail: "bob@customer.example",
				OrderCount:    2,
				TotalAmount:   "228.00 USD",
			},
			Items: []service.ItemEligibility{
				{
					ItemName:           "Belted Linen Dress",
					SKU:                "LIN-DRESS-M",
					Quantity:           1,
					LineNetAmount:      "108.00 USD",
					HasVariantDiscount: true,
					WasReturned:        true,
					EligibilityStatus:  "ELIGIBLE",
					ReturnOptions:      []string{"Store credit (-$20 USD label)"},
				},
			},
		},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/42/eligibility/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	text := string(body)
	require.Contains(t, text, "ORDER ELIGIBILITY REPORT")
	require.Contains(t, text, "⚠️  VARIANT DISCOUNT DETECTED - MANUAL REVIEW REQUIRED")
	require.Contains(t, text, "Status: ALREADY RETURNED")
}

func TestLookupOrderNotFound(t *testing.T) {
	srv := newTestServer(&fakeService{lookupErr: shopifyclient.ErrOrderNotFound})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/lookup?name=9999")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var answer errorJSONResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answer))
	require.Equal(t, "couldn't fetch order details", answer.Error)
}

func TestLookupOrderMissingName(t *testing.T) {
	srv := newTestServer(&fakeService{lookupErr: service.ErrInsufficientData})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/lookup")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchOrders(t *testing.T) {
	srv := newTestServer(&fakeService{
		orders: []model.Order{{ID: 1, Name: "#1001"}, {ID: 2, Name: "#1002"}},
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/search?email=bob%40customer.example")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var orders []model.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 2)
}

func TestSearchOrdersUpstreamFailure(t *testing.T) {
	srv := newTestServer(&fakeService{searchErr: shopifyclient.ErrRemoteUnavailable})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/orders/search?email=bob%40customer.example")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
