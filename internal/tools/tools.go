package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/calculations"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/metrics"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/validators"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DebtConsolidationTool    = "debt_consolidation"
	DebtPayoffStrategyTool   = "debt_payoff_strategy"
	RentVsBuyTool            = "rent_vs_buy"
	AmortizationScheduleTool = "amortization_schedule"
)

var (
	// ErrInvalidParams ошибка входных параметров инструмента
	ErrInvalidParams = errors.New("неверные параметры")
	// ErrCalculation ошибка самого расчета
	ErrCalculation = errors.New("ошибка при выполнении расчета")
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// AmortizationRequest параметры графика платежей по кредиту
type AmortizationRequest struct {
	Principal  int64   `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	Months     int     `json:"months"`
}

// decodeParams перекладывает произвольные параметры в типизированную структуру
func decodeParams(params map[string]interface{}, dst interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// assignDebtIDs выдает идентификаторы долгам, пришедшим без id
func assignDebtIDs(debts []calculations.Debt) {
	for i := range debts {
		if debts[i].ID == "" {
			debts[i].ID = uuid.NewString()
		}
	}
}

func totalBalance(debts []calculations.Debt) int64 {
	var total int64
	for _, d := range debts {
		total += d.Balance
	}
	return total
}

// invocation общее состояние одного вызова инструмента: спан и метрики
type invocation struct {
	toolName string
	span     trace.Span
}

func start(ctx context.Context, tracer trace.Tracer, toolName string) (context.Context, *invocation) {
	ctx, span := tracer.Start(ctx, toolName)
	metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()
	return ctx, &invocation{toolName: toolName, span: span}
}

func (c *invocation) invalid(err error) error {
	c.span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.ToolCalls.WithLabelValues(c.toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.toolName, "error").Inc()
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}

func (c *invocation) failed(err error) error {
	c.span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.ToolCalls.WithLabelValues(c.toolName, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.toolName, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.toolName, "error").Inc()
	return fmt.Errorf("%w: %w", ErrCalculation, err)
}

func (c *invocation) succeeded(attrs ...attribute.KeyValue) {
	c.span.SetAttributes(append(attrs, attribute.Bool("success", true))...)
	metrics.ToolCalls.WithLabelValues(c.toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.toolName, "success").Inc()
}

func (c *invocation) end() {
	c.span.End()
}

// DebtConsolidationHandler сравнивает текущие долги с предложениями по консолидации.
// Если предложения не переданы, используются типовые.
func DebtConsolidationHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, DebtConsolidationTool)
		defer call.end()

		var in calculations.DebtConsolidationInputs
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}
		assignDebtIDs(in.Debts)
		if len(in.ConsolidationOptions) == 0 {
			in.ConsolidationOptions = calculations.DefaultConsolidationOptions(totalBalance(in.Debts))
		}

		call.span.SetAttributes(
			attribute.Int("debts", len(in.Debts)),
			attribute.Int("options", len(in.ConsolidationOptions)),
			attribute.Int64("monthly_income", in.MonthlyIncome),
		)

		if err := validators.CheckConsolidationInputs(cfg, in); err != nil {
			return nil, call.invalid(err)
		}

		result := calculations.CalculateDebtConsolidation(in)

		call.succeeded(
			attribute.Int64("total_current_debt", result.TotalCurrentDebt),
			attribute.Bool("current_plan_pays_off", result.CurrentPlanPaysOff),
		)
		return &result, nil
	}
}

// DebtPayoffStrategyHandler сравнивает текущий план с методами лавины и снежного кома
func DebtPayoffStrategyHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, DebtPayoffStrategyTool)
		defer call.end()

		var in calculations.PayoffInputs
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}
		assignDebtIDs(in.Debts)

		call.span.SetAttributes(
			attribute.Int("debts", len(in.Debts)),
			attribute.Int64("extra_monthly_payment", in.ExtraMonthlyPayment),
		)

		if err := validators.CheckPayoffInputs(cfg, in); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.CalculatePayoffStrategies(in)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.Int("avalanche_months", result.Avalanche.TotalMonths),
			attribute.Int64("avalanche_interest", result.Avalanche.TotalInterest),
		)
		return result, nil
	}
}

// RentVsBuyHandler сравнивает аренду жилья с покупкой в ипотеку
func RentVsBuyHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, RentVsBuyTool)
		defer call.end()

		var in calculations.RentVsBuyInputs
		if err := decodeParams(params, &in); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Int64("property_price", in.PropertyPrice),
			attribute.Int64("monthly_rent", in.MonthlyRent),
			attribute.Int("time_horizon_years", in.TimeHorizonYears),
		)

		if err := validators.CheckRentVsBuy(cfg, in); err != nil {
			return nil, call.invalid(err)
		}

		result := calculations.CalculateRentVsBuy(in)

		call.succeeded(attribute.Bool("buying_is_better", result.Comparison.BuyingIsBetter))
		return &result, nil
	}
}

// AmortizationScheduleHandler строит график аннуитетных платежей
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		_, call := start(ctx, tracer, AmortizationScheduleTool)
		defer call.end()

		var req AmortizationRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, call.invalid(err)
		}

		call.span.SetAttributes(
			attribute.Int64("principal", req.Principal),
			attribute.Float64("annual_rate", req.AnnualRate),
			attribute.Int("months", req.Months),
		)

		if err := validators.CheckAmount(cfg, "principal", req.Principal); err != nil {
			return nil, call.invalid(err)
		}
		if err := validators.CheckRate(cfg, "annual_rate", req.AnnualRate); err != nil {
			return nil, call.invalid(err)
		}
		if err := validators.CheckTerm(cfg, "months", req.Months); err != nil {
			return nil, call.invalid(err)
		}

		result, err := calculations.AmortizationSchedule(req.Principal, req.AnnualRate, req.Months)
		if err != nil {
			return nil, call.failed(err)
		}

		call.succeeded(
			attribute.Int64("monthly_payment", result.Summary.MonthlyPayment),
			attribute.Int64("total_paid", result.Summary.TotalPaid),
		)
		return result, nil
	}
}
