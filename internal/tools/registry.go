package tools

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/cache"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/metrics"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnknownTool инструмент с таким именем не зарегистрирован
var ErrUnknownTool = errors.New("неизвестный инструмент")

// Tool описание зарегистрированного инструмента
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     ToolHandler `json:"-"`
}

// Registry набор инструментов, доступных по имени
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry регистрирует все расчетные инструменты
func NewRegistry(cfg *config.Config, tracer trace.Tracer) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.Register(Tool{
		Name:        DebtConsolidationTool,
		Description: "Сравнение текущих долгов с предложениями по консолидации",
		Handler:     DebtConsolidationHandler(cfg, tracer),
	})
	r.Register(Tool{
		Name:        DebtPayoffStrategyTool,
		Description: "Сравнение стратегий погашения: текущий план, лавина, снежный ком",
		Handler:     DebtPayoffStrategyHandler(cfg, tracer),
	})
	r.Register(Tool{
		Name:        RentVsBuyTool,
		Description: "Сравнение аренды жилья и покупки в ипотеку",
		Handler:     RentVsBuyHandler(cfg, tracer),
	})
	r.Register(Tool{
		Name:        AmortizationScheduleTool,
		Description: "График аннуитетных платежей по кредиту",
		Handler:     AmortizationScheduleHandler(cfg, tracer),
	})
	return r
}

// Register добавляет или заменяет инструмент
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// List возвращает инструменты в порядке регистрации
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Call выполняет инструмент по имени
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, ErrUnknownTool
	}
	return t.Handler(ctx, params)
}

// WithCache оборачивает все инструменты кэшем результатов
func (r *Registry) WithCache(c cache.Cache, ttl time.Duration) *Registry {
	for name, t := range r.tools {
		t.Handler = Cached(name, c, ttl, t.Handler)
		r.tools[name] = t
	}
	return r
}

// Cached возвращает обработчик, который сохраняет успешные результаты в кэше.
// Недоступность кэша не мешает расчету.
func Cached(toolName string, c cache.Cache, ttl time.Duration, next ToolHandler) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		key, err := cache.Key(toolName, params)
		if err != nil {
			return next(ctx, params)
		}

		if raw, ok, err := c.Get(ctx, key); err != nil {
			metrics.CacheLookups.WithLabelValues(toolName, "error").Inc()
			slog.WarnContext(ctx, "cache lookup failed", "tool", toolName, "error", err)
		} else if ok {
			metrics.CacheLookups.WithLabelValues(toolName, "hit").Inc()
			return json.RawMessage(raw), nil
		} else {
			metrics.CacheLookups.WithLabelValues(toolName, "miss").Inc()
		}

		result, err := next(ctx, params)
		if err != nil {
			return nil, err
		}

		raw, err := json.Marshal(result)
		if err != nil {
			slog.WarnContext(ctx, "failed to encode result for cache", "tool", toolName, "error", err)
			return result, nil
		}
		if err := c.Set(ctx, key, raw, ttl); err != nil {
			slog.WarnContext(ctx, "cache store failed", "tool", toolName, "error", err)
		}
		return result, nil
	}
}
