package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trexivo/tinova-pos/internal/application/service"
	"github.com/trexivo/tinova-pos/internal/config"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
	infra "github.com/trexivo/tinova-pos/internal/infrastructure/repository"
	"github.com/trexivo/tinova-pos/internal/presentation/http/handler"
	"github.com/trexivo/tinova-pos/internal/presentation/http/routes"
	"github.com/trexivo/tinova-pos/pkg/printer"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type orderView struct {
	ID          string  `json:"id"`
	InvoiceCode string  `json:"invoice_code"`
	ClientName  string  `json:"client_name"`
	WorkStatus  string  `json:"work_status"`
	Paid        float64 `json:"paid"`
	Due         float64 `json:"due"`
	Total       float64 `json:"total"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := infra.NewOrderRepository()
	if err := infra.SeedDemoOrders(context.Background(), repo); err != nil {
		t.Fatalf("SeedDemoOrders: %v", err)
	}

	ledgerService := service.NewLedgerService(repo)
	dashboardService := service.NewDashboardService(ledgerService)
	insightService := service.NewInsightService(nil, time.Second)
	printerService := service.NewPrinterService(printer.NewNullPrinter(), ledgerService, entity.ReceiptHeader{
		StoreName: "TI NOVA POS",
	})

	handlers := &routes.Handlers{
		Order:     handler.NewOrderHandler(ledgerService, printerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Insight:   handler.NewInsightHandler(insightService, ledgerService),
	}

	cfg := &config.Config{
		App:       config.AppConfig{Name: "tinova-pos-test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
	return routes.Setup(handlers, cfg)
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, env.Data)
	}
	return out
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	w := do(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success {
		t.Error("unknown route reported success")
	}
}

func TestZeroRateLimitWindowFallsBackToDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := infra.NewOrderRepository()
	ledgerService := service.NewLedgerService(repo)
	handlers := &routes.Handlers{
		Order:     handler.NewOrderHandler(ledgerService, service.NewPrinterService(printer.NewNullPrinter(), ledgerService, entity.ReceiptHeader{})),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(ledgerService)),
		Insight:   handler.NewInsightHandler(service.NewInsightService(nil, time.Second), ledgerService),
	}
	router := routes.Setup(handlers, &config.Config{
		RateLimit: config.RateLimitConfig{Requests: 0, Duration: 0},
	})

	w := do(t, router, http.MethodGet, "/api/v1/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	// Default burst, not a limit derived from dividing by zero.
	if got := w.Header().Get("X-RateLimit-Limit"); got != "20" {
		t.Errorf("X-RateLimit-Limit = %q, want 20", got)
	}
}

func TestListOrdersSearch(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/orders?search=SoPhIa", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	orders := decodeData[[]orderView](t, w)
	if len(orders) != 1 || orders[0].ClientName != "Sophia Chen" {
		t.Fatalf("search returned %+v, want exactly Sophia Chen", orders)
	}
}

func TestCreateOrderFlow(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"client_name": "Ava Torres",
		"service":     "Brand Refresh",
		"paid":        750,
		"due":         250,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	created := decodeData[orderView](t, w)
	if created.Total != 1000 {
		t.Errorf("total = %v, want 1000", created.Total)
	}
	if created.WorkStatus != "Pending" {
		t.Errorf("work_status = %s, want Pending", created.WorkStatus)
	}

	// New order is the head of the ledger.
	list := do(t, router, http.MethodGet, "/api/v1/orders", nil)
	orders := decodeData[[]orderView](t, list)
	if len(orders) != 4 || orders[0].ID != created.ID {
		t.Errorf("new order is not the head of the listing")
	}
}

func TestCreateOrderValidation(t *testing.T) {
	router := newTestRouter(t)

	// Missing required field is caught by binding.
	w := do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"client_name": "Ava Torres",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing service: status = %d, want 400", w.Code)
	}

	// Whitespace-only field is caught by the service.
	w = do(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"client_name": "Ava Torres",
		"service":     "   ",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank service: status = %d, want 422", w.Code)
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	router := newTestRouter(t)

	list := do(t, router, http.MethodGet, "/api/v1/orders?search=marcus", nil)
	orders := decodeData[[]orderView](t, list)
	if len(orders) != 1 {
		t.Fatalf("seed order not found")
	}
	id := orders[0].ID

	w := do(t, router, http.MethodPost, "/api/v1/orders/"+id+"/advance", nil)
	if advanced := decodeData[orderView](t, w); advanced.WorkStatus != "Confirmed" {
		t.Errorf("advance: status = %s, want Confirmed", advanced.WorkStatus)
	}

	w = do(t, router, http.MethodPost, "/api/v1/orders/"+id+"/settle", nil)
	if settled := decodeData[orderView](t, w); settled.Due != 0 || settled.Paid != 1000 {
		t.Errorf("settle: paid %v due %v, want 1000/0", settled.Paid, settled.Due)
	}

	w = do(t, router, http.MethodPost, "/api/v1/orders/"+id+"/cancel", nil)
	if cancelled := decodeData[orderView](t, w); cancelled.WorkStatus != "Cancelled" {
		t.Errorf("cancel: status = %s, want Cancelled", cancelled.WorkStatus)
	}

	w = do(t, router, http.MethodDelete, "/api/v1/orders/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", w.Code)
	}

	w = do(t, router, http.MethodGet, "/api/v1/orders/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", w.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	stats := decodeData[struct {
		TotalIncome  float64 `json:"total_income"`
		TotalDue     float64 `json:"total_due"`
		SuccessCount int     `json:"success_count"`
		PendingCount int     `json:"pending_count"`
		Weekly       []struct {
			Day    string `json:"day"`
			Orders int    `json:"orders"`
		} `json:"weekly_activity"`
	}](t, w)

	if stats.TotalIncome != 4200 || stats.TotalDue != 800 {
		t.Errorf("stats = %+v, want income 4200 due 800", stats)
	}
	if len(stats.Weekly) != 7 {
		t.Errorf("weekly trend has %d points, want 7", len(stats.Weekly))
	}
}

func TestInsightGenerateFallsBack(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/insights/generate", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	data := decodeData[struct {
		Insight string `json:"insight"`
	}](t, w)
	if !strings.Contains(data.Insight, "$800") {
		t.Errorf("insight %q missing outstanding due", data.Insight)
	}

	// The generated insight is retained.
	w = do(t, router, http.MethodGet, "/api/v1/insights", nil)
	got := decodeData[struct {
		Insight string `json:"insight"`
	}](t, w)
	if got.Insight != data.Insight {
		t.Errorf("retained insight = %q, want %q", got.Insight, data.Insight)
	}
}

func TestReceiptEndpoint(t *testing.T) {
	router := newTestRouter(t)

	list := do(t, router, http.MethodGet, "/api/v1/orders?search=james", nil)
	orders := decodeData[[]orderView](t, list)
	if len(orders) != 1 {
		t.Fatalf("seed order not found")
	}

	w := do(t, router, http.MethodGet, "/api/v1/orders/"+orders[0].ID+"/receipt", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	receipt := decodeData[struct {
		InvoiceCode string  `json:"invoice_code"`
		Total       float64 `json:"total"`
		Due         float64 `json:"due"`
	}](t, w)
	if receipt.InvoiceCode != "NV-8291" || receipt.Total != 1500 || receipt.Due != 300 {
		t.Errorf("receipt = %+v, want NV-8291 / 1500 / 300", receipt)
	}
}
