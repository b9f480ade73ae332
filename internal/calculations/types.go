package calculations

// Все денежные суммы в целых центах, ставки годовые в долях (0.05 = 5%), сроки в месяцах.

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Month               int   `json:"month"`
	Payment             int64 `json:"payment,omitempty"`
	Interest            int64 `json:"interest,omitempty"`
	PrincipalComponent  int64 `json:"principal_component,omitempty"`
	RemainingPrincipal  int64 `json:"remaining_principal"`
	CumulativeInterest  int64 `json:"cumulative_interest,omitempty"`
	CumulativePrincipal int64 `json:"cumulative_principal,omitempty"`
}

// LoanSummary представляет сводку по кредиту
type LoanSummary struct {
	Principal      int64   `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	Months         int     `json:"months"`
	MonthlyPayment int64   `json:"monthly_payment"`
	TotalPaid      int64   `json:"total_paid"`
	TotalInterest  int64   `json:"total_interest"`
}

// CalculationResult представляет график кредита со сводкой
type CalculationResult struct {
	Summary  LoanSummary     `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// Debt существующее долговое обязательство
type Debt struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Balance        int64   `json:"balance"`
	MonthlyPayment int64   `json:"monthly_payment"`
	InterestRate   float64 `json:"interest_rate"`
}

// OptionType тип предложения по консолидации
type OptionType string

const (
	PersonalLoan    OptionType = "personal_loan"
	BalanceTransfer OptionType = "balance_transfer"
	HELOC           OptionType = "heloc"
)

// Valid сообщает, известен ли тип предложения
func (t OptionType) Valid() bool {
	switch t {
	case PersonalLoan, BalanceTransfer, HELOC:
		return true
	}
	return false
}

// ConsolidationOption предложение по консолидации долгов
type ConsolidationOption struct {
	Type      OptionType `json:"type"`
	Rate      float64    `json:"rate"`
	Term      int        `json:"term"`
	Fees      int64      `json:"fees"`
	MaxAmount *int64     `json:"max_amount,omitempty"`
}

// DebtConsolidationInputs входные данные калькулятора консолидации
type DebtConsolidationInputs struct {
	Debts                []Debt                `json:"debts"`
	ConsolidationOptions []ConsolidationOption `json:"consolidation_options"`
	MonthlyIncome        int64                 `json:"monthly_income"`
	CreditScore          *int                  `json:"credit_score,omitempty"`
}

// OptionComparison результат сравнения одного предложения с текущими долгами
type OptionComparison struct {
	Option            ConsolidationOption `json:"option"`
	Eligible          bool                `json:"eligible"`
	IneligibleReasons []string            `json:"ineligible_reasons,omitempty"`
	NewMonthlyPayment int64               `json:"new_monthly_payment"`
	NewTotalInterest  int64               `json:"new_total_interest"`
	MonthsSaved       int                 `json:"months_saved"`
	TotalSavings      int64               `json:"total_savings"`
}

// DebtConsolidationResults результат калькулятора консолидации
type DebtConsolidationResults struct {
	TotalCurrentDebt     int64              `json:"total_current_debt"`
	TotalCurrentPayment  int64              `json:"total_current_payment"`
	TotalCurrentInterest int64              `json:"total_current_interest"`
	CurrentPayoffMonths  int                `json:"current_payoff_months"`
	CurrentPlanPaysOff   bool               `json:"current_plan_pays_off"`
	Options              []OptionComparison `json:"options"`
	Recommendation       string             `json:"recommendation"`
	NextSteps            []string           `json:"next_steps"`
	Warnings             []string           `json:"warnings"`
}

// StrategyName название стратегии погашения
type StrategyName string

const (
	StrategyCurrent   StrategyName = "current"
	StrategyAvalanche StrategyName = "avalanche"
	StrategySnowball  StrategyName = "snowball"
)

// PayoffStep одна позиция в очередности погашения
type PayoffStep struct {
	DebtID       string `json:"debt_id"`
	DebtName     string `json:"debt_name"`
	Months       int    `json:"months"`
	InterestPaid int64  `json:"interest_paid"`
	PaysOff      bool   `json:"pays_off"`
}

// PayoffStrategy план погашения по одной стратегии
type PayoffStrategy struct {
	Name           StrategyName `json:"name"`
	Description    string       `json:"description"`
	TotalMonths    int          `json:"total_months"`
	TotalInterest  int64        `json:"total_interest"`
	TotalPrincipal int64        `json:"total_principal"`
	PayoffOrder    []PayoffStep `json:"payoff_order"`
	MonthlyPayment int64        `json:"monthly_payment"`
	InterestSaved  int64        `json:"interest_saved"`
	PaysOff        bool         `json:"pays_off"`
}

// PayoffInputs входные данные калькулятора стратегий погашения
type PayoffInputs struct {
	Debts               []Debt `json:"debts"`
	ExtraMonthlyPayment int64  `json:"extra_monthly_payment"`
	MonthlyIncome       int64  `json:"monthly_income,omitempty"`
}

// PayoffResults результат калькулятора стратегий погашения
type PayoffResults struct {
	Current        PayoffStrategy `json:"current"`
	Avalanche      PayoffStrategy `json:"avalanche"`
	Snowball       PayoffStrategy `json:"snowball"`
	Recommendation string         `json:"recommendation"`
	Warnings       []string       `json:"warnings"`
}

// RentVsBuyInputs входные данные сравнения аренды и покупки
type RentVsBuyInputs struct {
	PropertyPrice        int64   `json:"property_price"`
	DownPaymentPercent   float64 `json:"down_payment_percent"`
	MortgageRate         float64 `json:"mortgage_rate"`
	MortgageTermYears    int     `json:"mortgage_term_years"`
	MonthlyRent          int64   `json:"monthly_rent"`
	RentIncreaseRate     float64 `json:"rent_increase_rate"`
	PropertyTaxRate      float64 `json:"property_tax_rate"`
	HomeInsurance        int64   `json:"home_insurance"`
	MaintenanceRate      float64 `json:"maintenance_rate"`
	HOAFees              int64   `json:"hoa_fees,omitempty"`
	ClosingCosts         *int64  `json:"closing_costs,omitempty"`
	HomeAppreciationRate float64 `json:"home_appreciation_rate"`
	InvestmentReturnRate float64 `json:"investment_return_rate"`
	TimeHorizonYears     int     `json:"time_horizon_years"`
	MonthlyIncome        int64   `json:"monthly_income,omitempty"`
}

// MonthlyCosts ежемесячные расходы владельца на момент покупки
type MonthlyCosts struct {
	Mortgage    int64 `json:"mortgage"`
	PropertyTax int64 `json:"property_tax"`
	Insurance   int64 `json:"insurance"`
	Maintenance int64 `json:"maintenance"`
	HOA         int64 `json:"hoa"`
	Total       int64 `json:"total"`
}

// BuyScenario расходы сценария покупки за горизонт анализа
type BuyScenario struct {
	DownPayment      int64        `json:"down_payment"`
	LoanAmount       int64        `json:"loan_amount"`
	ClosingCosts     int64        `json:"closing_costs"`
	Monthly          MonthlyCosts `json:"monthly"`
	InterestPaid     int64        `json:"interest_paid"`
	PrincipalPaid    int64        `json:"principal_paid"`
	PropertyTax      int64        `json:"property_tax"`
	Insurance        int64        `json:"insurance"`
	Maintenance      int64        `json:"maintenance"`
	HOA              int64        `json:"hoa"`
	TotalCost        int64        `json:"total_cost"`
	RemainingBalance int64        `json:"remaining_balance"`
	FinalHomeValue   int64        `json:"final_home_value"`
	FinalEquity      int64        `json:"final_equity"`
	NetCost          int64        `json:"net_cost"`
}

// RentScenario расходы сценария аренды за горизонт анализа
type RentScenario struct {
	TotalRent        int64 `json:"total_rent"`
	FinalMonthlyRent int64 `json:"final_monthly_rent"`
	InvestedAmount   int64 `json:"invested_amount"`
	InvestmentValue  int64 `json:"investment_value"`
	InvestmentGain   int64 `json:"investment_gain"`
	NetCost          int64 `json:"net_cost"`
}

// RentVsBuyComparison итог сравнения сценариев
type RentVsBuyComparison struct {
	BuyingIsBetter bool  `json:"buying_is_better"`
	CostDifference int64 `json:"cost_difference"`
	// BreakEvenYear приблизительный: первый целый год, в котором покупка обходится дешевле
	BreakEvenYear *int `json:"break_even_year,omitempty"`
}

// RentVsBuyResults результат сравнения аренды и покупки
type RentVsBuyResults struct {
	Buy            BuyScenario         `json:"buy_scenario"`
	Rent           RentScenario        `json:"rent_scenario"`
	Comparison     RentVsBuyComparison `json:"comparison"`
	Recommendation string              `json:"recommendation"`
	Warnings       []string            `json:"warnings"`
	Assumptions    []string            `json:"assumptions"`
}
