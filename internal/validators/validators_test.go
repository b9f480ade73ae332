package validators

import (
	"math"
	"testing"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/calculations"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()
	score := 720
	lowScore := 250

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid amount",
			validator: func(cfg *config.Config, v interface{}) error { return CheckAmount(cfg, "balance", v.(int64)) },
			value:     int64(1000000),
			wantError: false,
		},
		{
			name:      "invalid amount zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckAmount(cfg, "balance", v.(int64)) },
			value:     int64(0),
			wantError: true,
		},
		{
			name:      "invalid amount negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckAmount(cfg, "balance", v.(int64)) },
			value:     int64(-1000),
			wantError: true,
		},
		{
			name:      "optional amount zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckOptionalAmount(cfg, "fees", v.(int64)) },
			value:     int64(0),
			wantError: false,
		},
		{
			name:      "valid rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     0.12,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     -0.01,
			wantError: true,
		},
		{
			name:      "invalid rate above cap",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     0.6,
			wantError: true,
		},
		{
			name:      "invalid rate NaN",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, "rate", v.(float64)) },
			value:     math.NaN(),
			wantError: true,
		},
		{
			name:      "valid term",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTerm(cfg, "term", v.(int)) },
			value:     360,
			wantError: false,
		},
		{
			name:      "invalid term zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTerm(cfg, "term", v.(int)) },
			value:     0,
			wantError: true,
		},
		{
			name:      "invalid term too long",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTerm(cfg, "term", v.(int)) },
			value:     361,
			wantError: true,
		},
		{
			name:      "valid credit score",
			validator: func(cfg *config.Config, v interface{}) error { return CheckCreditScore(v.(*int)) },
			value:     &score,
			wantError: false,
		},
		{
			name:      "missing credit score",
			validator: func(cfg *config.Config, v interface{}) error { return CheckCreditScore(v.(*int)) },
			value:     (*int)(nil),
			wantError: false,
		},
		{
			name:      "invalid credit score",
			validator: func(cfg *config.Config, v interface{}) error { return CheckCreditScore(v.(*int)) },
			value:     &lowScore,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestCheckDebts(t *testing.T) {
	cfg, _ := config.LoadConfig()
	valid := calculations.Debt{Name: "Карта", Balance: 100000, MonthlyPayment: 5000, InterestRate: 0.2}

	if err := CheckDebts(cfg, []calculations.Debt{valid}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CheckDebts(cfg, nil); err == nil {
		t.Error("expected error for empty debt list")
	}

	noPayment := valid
	noPayment.MonthlyPayment = 0
	if err := CheckDebts(cfg, []calculations.Debt{valid, noPayment}); err == nil {
		t.Error("expected error for zero monthly payment")
	}

	unnamed := valid
	unnamed.Name = ""
	if err := CheckDebt(cfg, unnamed); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestCheckConsolidationInputs(t *testing.T) {
	cfg, _ := config.LoadConfig()
	in := calculations.DebtConsolidationInputs{
		Debts:                []calculations.Debt{{Name: "Карта", Balance: 300000, MonthlyPayment: 15000, InterestRate: 0.22}},
		ConsolidationOptions: calculations.DefaultConsolidationOptions(300000),
		MonthlyIncome:        500000,
	}
	if err := CheckConsolidationInputs(cfg, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := in
	bad.ConsolidationOptions = []calculations.ConsolidationOption{{Type: "payday", Rate: 0.1, Term: 12}}
	if err := CheckConsolidationInputs(cfg, bad); err == nil {
		t.Error("expected error for unknown option type")
	}

	bad = in
	bad.MonthlyIncome = 0
	if err := CheckConsolidationInputs(cfg, bad); err == nil {
		t.Error("expected error for zero income")
	}
}

func TestCheckRentVsBuy(t *testing.T) {
	cfg, _ := config.LoadConfig()
	in := calculations.RentVsBuyInputs{
		PropertyPrice:        30_000_000,
		DownPaymentPercent:   0.2,
		MortgageRate:         0.06,
		MortgageTermYears:    30,
		MonthlyRent:          150000,
		RentIncreaseRate:     0.03,
		PropertyTaxRate:      0.012,
		HomeInsurance:        150000,
		MaintenanceRate:      0.01,
		HomeAppreciationRate: 0.03,
		InvestmentReturnRate: 0.07,
		TimeHorizonYears:     5,
	}
	if err := CheckRentVsBuy(cfg, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := in
	bad.DownPaymentPercent = 1.5
	if err := CheckRentVsBuy(cfg, bad); err == nil {
		t.Error("expected error for down payment above 100%")
	}

	bad = in
	bad.TimeHorizonYears = 0
	if err := CheckRentVsBuy(cfg, bad); err == nil {
		t.Error("expected error for zero horizon")
	}

	bad = in
	negative := int64(-1)
	bad.ClosingCosts = &negative
	if err := CheckRentVsBuy(cfg, bad); err == nil {
		t.Error("expected error for negative closing costs")
	}
}
