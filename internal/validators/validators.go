package validators

import (
	"fmt"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/calculations"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

const (
	minCreditScore = 300
	maxCreditScore = 850
)

// ValidateFloatRange проверяет, что число конечное и в допустимом диапазоне
func ValidateFloatRange(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %g", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%g)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// ValidateAmount проверяет сумму в центах
func ValidateAmount(name string, value int64, minInclusive, maxInclusive int64) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: сумма должна быть в диапазоне [%d; %d] центов", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckAmount проверяет положительную сумму
func CheckAmount(cfg *config.Config, name string, cents int64) error {
	return ValidateAmount(name, cents, 1, cfg.MaxAmountCents)
}

// CheckOptionalAmount проверяет неотрицательную сумму
func CheckOptionalAmount(cfg *config.Config, name string, cents int64) error {
	return ValidateAmount(name, cents, 0, cfg.MaxAmountCents)
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, name string, rate float64) error {
	return ValidateFloatRange(name, rate, 0.0, cfg.MaxRate)
}

// CheckGrowthRate проверяет темп роста (цены жилья, аренды, доходности)
func CheckGrowthRate(cfg *config.Config, name string, rate float64) error {
	return ValidateFloatRange(name, rate, 0.0, cfg.MaxGrowthRate)
}

// CheckTerm проверяет срок в месяцах
func CheckTerm(cfg *config.Config, name string, months int) error {
	return ValidateIntRange(name, months, 1, cfg.MaxMonths)
}

// CheckCreditScore проверяет кредитный рейтинг, если он указан
func CheckCreditScore(score *int) error {
	if score == nil {
		return nil
	}
	return ValidateIntRange("credit_score", *score, minCreditScore, maxCreditScore)
}

// CheckDebt проверяет одно долговое обязательство
func CheckDebt(cfg *config.Config, d calculations.Debt) error {
	if d.Name == "" {
		return fmt.Errorf("name: название долга не может быть пустым")
	}
	if err := CheckOptionalAmount(cfg, "balance", d.Balance); err != nil {
		return err
	}
	if err := CheckAmount(cfg, "monthly_payment", d.MonthlyPayment); err != nil {
		return err
	}
	return CheckRate(cfg, "interest_rate", d.InterestRate)
}

// CheckDebts проверяет список долгов
func CheckDebts(cfg *config.Config, debts []calculations.Debt) error {
	if err := ValidateIntRange("debts", len(debts), 1, cfg.MaxDebts); err != nil {
		return err
	}
	for i, d := range debts {
		if err := CheckDebt(cfg, d); err != nil {
			return fmt.Errorf("debts[%d]: %w", i, err)
		}
	}
	return nil
}

// CheckConsolidationOption проверяет предложение по консолидации
func CheckConsolidationOption(cfg *config.Config, opt calculations.ConsolidationOption) error {
	if !opt.Type.Valid() {
		return fmt.Errorf("type: неизвестный тип предложения %q", opt.Type)
	}
	if err := CheckRate(cfg, "rate", opt.Rate); err != nil {
		return err
	}
	if err := CheckTerm(cfg, "term", opt.Term); err != nil {
		return err
	}
	if err := CheckOptionalAmount(cfg, "fees", opt.Fees); err != nil {
		return err
	}
	if opt.MaxAmount != nil {
		return CheckAmount(cfg, "max_amount", *opt.MaxAmount)
	}
	return nil
}

// CheckConsolidationInputs проверяет входные данные калькулятора консолидации
func CheckConsolidationInputs(cfg *config.Config, in calculations.DebtConsolidationInputs) error {
	if err := CheckDebts(cfg, in.Debts); err != nil {
		return err
	}
	if err := ValidateIntRange("consolidation_options", len(in.ConsolidationOptions), 1, cfg.MaxOptions); err != nil {
		return err
	}
	for i, opt := range in.ConsolidationOptions {
		if err := CheckConsolidationOption(cfg, opt); err != nil {
			return fmt.Errorf("consolidation_options[%d]: %w", i, err)
		}
	}
	if err := CheckAmount(cfg, "monthly_income", in.MonthlyIncome); err != nil {
		return err
	}
	return CheckCreditScore(in.CreditScore)
}

// CheckPayoffInputs проверяет входные данные калькулятора стратегий погашения
func CheckPayoffInputs(cfg *config.Config, in calculations.PayoffInputs) error {
	if err := CheckDebts(cfg, in.Debts); err != nil {
		return err
	}
	if err := CheckOptionalAmount(cfg, "extra_monthly_payment", in.ExtraMonthlyPayment); err != nil {
		return err
	}
	return CheckOptionalAmount(cfg, "monthly_income", in.MonthlyIncome)
}

// CheckRentVsBuy проверяет входные данные сравнения аренды и покупки
func CheckRentVsBuy(cfg *config.Config, in calculations.RentVsBuyInputs) error {
	checks := []error{
		CheckAmount(cfg, "property_price", in.PropertyPrice),
		ValidateFloatRange("down_payment_percent", in.DownPaymentPercent, 0.0, 1.0),
		CheckRate(cfg, "mortgage_rate", in.MortgageRate),
		ValidateIntRange("mortgage_term_years", in.MortgageTermYears, 1, cfg.MaxMonths/12),
		CheckAmount(cfg, "monthly_rent", in.MonthlyRent),
		CheckGrowthRate(cfg, "rent_increase_rate", in.RentIncreaseRate),
		CheckRate(cfg, "property_tax_rate", in.PropertyTaxRate),
		CheckOptionalAmount(cfg, "home_insurance", in.HomeInsurance),
		CheckRate(cfg, "maintenance_rate", in.MaintenanceRate),
		CheckOptionalAmount(cfg, "hoa_fees", in.HOAFees),
		CheckGrowthRate(cfg, "home_appreciation_rate", in.HomeAppreciationRate),
		CheckGrowthRate(cfg, "investment_return_rate", in.InvestmentReturnRate),
		ValidateIntRange("time_horizon_years", in.TimeHorizonYears, 1, cfg.MaxHorizonYears),
		CheckOptionalAmount(cfg, "monthly_income", in.MonthlyIncome),
	}
	if in.ClosingCosts != nil {
		checks = append(checks, CheckOptionalAmount(cfg, "closing_costs", *in.ClosingCosts))
	}

	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
