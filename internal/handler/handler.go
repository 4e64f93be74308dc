package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BillyBonaros/mcp-luxmii/internal/handler/config"
	"github.com/BillyBonaros/mcp-luxmii/internal/logger"
	"github.com/BillyBonaros/mcp-luxmii/internal/service"
	"github.com/BillyBonaros/mcp-luxmii/internal/service/shopifyclient"
)

func Serve(cfg config.Config, service service.Service, zaplog *zap.Logger) error {
	h := newHandler(service, zaplog)
	router := h.newRouter()

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	return srv.ListenAndServe()
}

type handler struct {
	service service.Service
	zaplog  *zap.Logger
}

func newHandler(service service.Service, zaplog *zap.Logger) *handler {
	return &handler{
		service: service,
		zaplog:  zaplog,
	}
}

func (h *handler) newRouter() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ping", logger.RequestLogMdlw(h.Ping, h.zaplog))
	mux.HandleFunc("GET /api/guidelines", logger.RequestLogMdlw(h.GetGuidelines, h.zaplog))
	mux.HandleFunc("GET /api/orders/lookup", logger.RequestLogMdlw(h.LookupOrder, h.zaplog))
	mux.HandleFunc("GET /api/orders/search", logger.RequestLogMdlw(h.SearchOrders, h.zaplog))
	mux.HandleFunc("GET /api/orders/{orderID}/eligibility", logger.RequestLogMdlw(h.EvaluateOrder, h.zaplog))
	mux.HandleFunc("GET /api/orders/{orderID}/eligibility/report", logger.RequestLogMdlw(h.EvaluateOrderReport, h.zaplog))

	return mux
}

func (h *handler) Ping(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("pong"))
}

func (h *handler) GetGuidelines(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.service.Guidelines()))
}

// EvaluateOrder always answers 200 with a well-formed envelope; the
// success flag inside it carries the outcome.
func (h *handler) EvaluateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderID")

	report := h.service.EvaluateOrder(r.Context(), orderID)
	writeJSON(w, http.StatusOK, report)
}

// EvaluateOrderReport serves the same evaluation rendered as the
// agent-facing text report.
func (h *handler) EvaluateOrderReport(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("orderID")

	report := h.service.EvaluateOrder(r.Context(), orderID)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report.Format()))
}

type errorJSONResponse struct {
	Error string `json:"error"`
}

func (h *handler) LookupOrder(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	order, err := h.service.LookupOrderByName(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientData):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, shopifyclient.ErrOrderNotFound):
			writeJSON(w, http.StatusNotFound, errorJSONResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusBadGateway, errorJSONResponse{Error: err.Error()})
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *handler) SearchOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	orders, err := h.service.SearchOrdersByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientData):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			// Retry exhaustion arrives here with the attempt count in
			// the message.
			writeJSON(w, http.StatusBadGateway, errorJSONResponse{Error: err.Error()})
		}
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	responseJSON, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(responseJSON)
}
