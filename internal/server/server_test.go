package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/cache"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/tools"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		MaxAmountCents:  10_000_000_000,
		MaxMonths:       360,
		MaxRate:         0.5,
		MaxGrowthRate:   0.3,
		MaxHorizonYears: 50,
		MaxDebts:        20,
		MaxOptions:      10,
		CORSOrigins:     []string{"http://localhost:3000"},
	}
	registry := tools.NewRegistry(cfg, noop.NewTracerProvider().Tracer("test")).
		WithCache(cache.NewMemoryCache(0), time.Minute)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(cfg, registry, logger)
}

func post(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestListTools(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Tools, 4)
	assert.Equal(t, tools.DebtConsolidationTool, body.Tools[0].Name)
}

func TestCallTool(t *testing.T) {
	router := newTestRouter()
	payload := `{"principal": 100000, "annual_rate": 0.12, "months": 12}`

	for i := 0; i < 2; i++ {
		w := post(t, router, "/api/v1/tools/amortization_schedule", payload)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body struct {
			Tool   string `json:"tool"`
			Result struct {
				Summary struct {
					MonthlyPayment int64 `json:"monthly_payment"`
				} `json:"summary"`
				Schedule []json.RawMessage `json:"schedule"`
			} `json:"result"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tools.AmortizationScheduleTool, body.Tool)
		assert.Equal(t, int64(8885), body.Result.Summary.MonthlyPayment)
		assert.Len(t, body.Result.Schedule, 12)
	}
}

func TestCallToolErrors(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown tool", "/api/v1/tools/loan_schedule_annuity", `{}`, http.StatusNotFound},
		{"malformed json", "/api/v1/tools/rent_vs_buy", `{"property_price":`, http.StatusBadRequest},
		{"array body", "/api/v1/tools/rent_vs_buy", `[1, 2]`, http.StatusBadRequest},
		{"invalid params", "/api/v1/tools/amortization_schedule", `{"principal": -5, "annual_rate": 0.1, "months": 12}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, router, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestCallToolBodyLimit(t *testing.T) {
	router := newTestRouter()

	body := `{"note": "` + strings.Repeat("x", maxBodyBytes) + `"}`
	w := post(t, router, "/api/v1/tools/rent_vs_buy", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tools/rent_vs_buy", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()
	post(t, router, "/api/v1/tools/amortization_schedule", `{"principal": 100000, "annual_rate": 0.12, "months": 12}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tool_calls_total")
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{tools.ErrUnknownTool, http.StatusNotFound},
		{fmt.Errorf("%w: balance", tools.ErrInvalidParams), http.StatusBadRequest},
		{fmt.Errorf("%w: boom", tools.ErrCalculation), http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
