package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

const (
	// defaultClosingCostRate доля цены, если расходы на сделку не указаны
	defaultClosingCostRate = 0.03
	// maxHousingRatio предельная доля дохода на платеж за жилье (правило 28%)
	maxHousingRatio = 0.28
	// pmiDownPaymentShare взнос, ниже которого обычно требуется страхование ипотеки (PMI)
	pmiDownPaymentShare = 0.2
	// optimisticAppreciation годовой рост цены жилья, выше которого прогноз оптимистичен
	optimisticAppreciation = 0.05
	// rentGapRatio во сколько раз расходы владельца должны превышать аренду для предупреждения
	rentGapRatio = 1.5
	// breakEvenSearchYears минимальный горизонт поиска года окупаемости
	breakEvenSearchYears = 30
)

// CalculateRentVsBuy сравнивает стоимость покупки и аренды жилья за горизонт анализа
func CalculateRentVsBuy(in RentVsBuyInputs) RentVsBuyResults {
	p := newBuyProjector(in)

	buy := p.project(in.TimeHorizonYears)
	rent := projectRent(in, in.TimeHorizonYears, buy.DownPayment+buy.ClosingCosts)

	diff := rent.NetCost - buy.NetCost
	if diff < 0 {
		diff = -diff
	}
	cmp := RentVsBuyComparison{
		BuyingIsBetter: buy.NetCost < rent.NetCost,
		CostDifference: diff,
		BreakEvenYear:  p.breakEvenYear(),
	}

	return RentVsBuyResults{
		Buy:            buy,
		Rent:           rent,
		Comparison:     cmp,
		Recommendation: rentVsBuyRecommendation(in, cmp),
		Warnings:       rentVsBuyWarnings(in, buy),
		Assumptions:    rentVsBuyAssumptions(in, buy),
	}
}

// buyProjector считает сценарий покупки для разных горизонтов на одном графике ипотеки
type buyProjector struct {
	in             RentVsBuyInputs
	downPayment    int64
	loanAmount     int64
	closingCosts   int64
	mortgageMonths int
	monthly        MonthlyCosts
	schedule       *CalculationResult
}

func newBuyProjector(in RentVsBuyInputs) *buyProjector {
	price := float64(in.PropertyPrice)
	p := &buyProjector{
		in:             in,
		downPayment:    utils.RoundCents(price * in.DownPaymentPercent),
		mortgageMonths: in.MortgageTermYears * 12,
	}
	p.loanAmount = utils.MaxInt64(0, in.PropertyPrice-p.downPayment)

	if in.ClosingCosts != nil {
		p.closingCosts = *in.ClosingCosts
	} else {
		p.closingCosts = utils.RoundCents(price * defaultClosingCostRate)
	}

	if p.loanAmount > 0 && p.mortgageMonths > 0 {
		// Ошибка возможна только для пустого кредита, он исключен проверкой выше
		p.schedule, _ = AmortizationSchedule(p.loanAmount, in.MortgageRate, p.mortgageMonths)
	}

	p.monthly = MonthlyCosts{
		Mortgage:    MonthlyPayment(p.loanAmount, in.MortgageRate, p.mortgageMonths),
		PropertyTax: utils.RoundCents(price * in.PropertyTaxRate / 12.0),
		Insurance:   utils.RoundCents(float64(in.HomeInsurance) / 12.0),
		Maintenance: utils.RoundCents(price * in.MaintenanceRate / 12.0),
		HOA:         in.HOAFees,
	}
	p.monthly.Total = p.monthly.Mortgage + p.monthly.PropertyTax + p.monthly.Insurance +
		p.monthly.Maintenance + p.monthly.HOA
	return p
}

// project считает расходы владельца за years лет
func (p *buyProjector) project(years int) BuyScenario {
	in := p.in
	horizonMonths := years * 12

	s := BuyScenario{
		DownPayment:  p.downPayment,
		LoanAmount:   p.loanAmount,
		ClosingCosts: p.closingCosts,
		Monthly:      p.monthly,
	}

	if p.schedule != nil {
		paidMonths := horizonMonths
		if paidMonths > p.mortgageMonths {
			paidMonths = p.mortgageMonths
		}
		s.InterestPaid, s.PrincipalPaid = p.schedule.PaidWithin(paidMonths)
	}

	// Налог и обслуживание считаются от растущей стоимости жилья
	value := float64(in.PropertyPrice)
	for y := 0; y < years; y++ {
		s.PropertyTax += utils.RoundCents(value * in.PropertyTaxRate)
		s.Maintenance += utils.RoundCents(value * in.MaintenanceRate)
		value *= 1.0 + in.HomeAppreciationRate
	}
	s.Insurance = in.HomeInsurance * int64(years)
	s.HOA = in.HOAFees * int64(horizonMonths)

	s.FinalHomeValue = utils.RoundCents(float64(in.PropertyPrice) * math.Pow(1.0+in.HomeAppreciationRate, float64(years)))
	s.RemainingBalance = RemainingBalance(p.loanAmount, in.MortgageRate, p.mortgageMonths, horizonMonths)
	s.FinalEquity = s.FinalHomeValue - s.RemainingBalance

	s.TotalCost = s.InterestPaid + s.PrincipalPaid + s.PropertyTax + s.Insurance + s.Maintenance + s.HOA +
		s.DownPayment + s.ClosingCosts
	s.NetCost = s.TotalCost - s.FinalEquity
	return s
}

// breakEvenYear ищет первый целый год, в котором покупка обходится дешевле аренды.
// Это приближение с точностью до года, а не точный корень разницы стоимостей.
func (p *buyProjector) breakEvenYear() *int {
	limit := p.in.TimeHorizonYears
	if limit < breakEvenSearchYears {
		limit = breakEvenSearchYears
	}

	for y := 1; y <= limit; y++ {
		buy := p.project(y)
		rent := projectRent(p.in, y, buy.DownPayment+buy.ClosingCosts)
		if buy.NetCost < rent.NetCost {
			year := y
			return &year
		}
	}
	return nil
}

// projectRent считает аренду за years лет с ежегодной индексацией и доход от вложения
// суммы invested, которая при аренде не тратится на покупку
func projectRent(in RentVsBuyInputs, years int, invested int64) RentScenario {
	horizonMonths := years * 12

	var s RentScenario
	rent := in.MonthlyRent
	for m := 1; m <= horizonMonths; m++ {
		s.TotalRent += rent
		s.FinalMonthlyRent = rent
		if m%12 == 0 {
			rent = utils.RoundCents(float64(rent) * (1.0 + in.RentIncreaseRate))
		}
	}

	growth := GrowInvestment(invested, in.InvestmentReturnRate, horizonMonths)
	s.InvestedAmount = invested
	s.InvestmentValue = growth.FinalBalance
	s.InvestmentGain = growth.TotalInterest
	s.NetCost = s.TotalRent - s.InvestmentGain
	return s
}

func rentVsBuyRecommendation(in RentVsBuyInputs, cmp RentVsBuyComparison) string {
	var msg string
	if cmp.BuyingIsBetter {
		msg = fmt.Sprintf("За %d лет покупка выгоднее аренды на %s.",
			in.TimeHorizonYears, utils.FormatCents(cmp.CostDifference))
	} else {
		msg = fmt.Sprintf("За %d лет аренда выгоднее покупки на %s: свободные средства лучше инвестировать.",
			in.TimeHorizonYears, utils.FormatCents(cmp.CostDifference))
	}

	if cmp.BreakEvenYear != nil {
		msg += fmt.Sprintf(" Покупка начинает окупаться примерно на %d-й год.", *cmp.BreakEvenYear)
	} else {
		msg += " При заданных условиях покупка не окупается в разумный срок."
	}
	return msg
}

func rentVsBuyWarnings(in RentVsBuyInputs, buy BuyScenario) []string {
	warnings := []string{}

	housing := buy.Monthly.Mortgage + buy.Monthly.PropertyTax + buy.Monthly.Insurance + buy.Monthly.HOA
	if in.MonthlyIncome > 0 && float64(housing) > float64(in.MonthlyIncome)*maxHousingRatio {
		warnings = append(warnings, fmt.Sprintf(
			"Платеж за жилье %s превышает %s дохода.",
			utils.FormatCents(housing), utils.FormatPercent(maxHousingRatio)))
	}
	if in.DownPaymentPercent < pmiDownPaymentShare {
		warnings = append(warnings, fmt.Sprintf(
			"Первоначальный взнос меньше %s: скорее всего потребуется страхование ипотеки (PMI).",
			utils.FormatPercent(pmiDownPaymentShare)))
	}
	if float64(buy.Monthly.Total) > float64(in.MonthlyRent)*rentGapRatio {
		warnings = append(warnings, fmt.Sprintf(
			"Ежемесячные расходы владельца %s значительно выше аренды %s.",
			utils.FormatCents(buy.Monthly.Total), utils.FormatCents(in.MonthlyRent)))
	}
	if in.HomeAppreciationRate > optimisticAppreciation {
		warnings = append(warnings, fmt.Sprintf(
			"Рост цены жилья %s в год оптимистичен, результат может быть завышен.",
			utils.FormatPercent(in.HomeAppreciationRate)))
	}

	return warnings
}

func rentVsBuyAssumptions(in RentVsBuyInputs, buy BuyScenario) []string {
	return []string{
		fmt.Sprintf("Цена жилья растет на %s в год", utils.FormatPercent(in.HomeAppreciationRate)),
		fmt.Sprintf("Аренда индексируется на %s раз в 12 месяцев", utils.FormatPercent(in.RentIncreaseRate)),
		fmt.Sprintf("Взнос и расходы на сделку (%s) при аренде инвестируются под %s годовых с ежемесячной капитализацией",
			utils.FormatCents(buy.DownPayment+buy.ClosingCosts), utils.FormatPercent(in.InvestmentReturnRate)),
		"Налог на недвижимость и обслуживание считаются от текущей стоимости жилья каждый год",
		"Страховка и взносы ТСЖ (HOA) не индексируются",
		"Налоговые вычеты и расходы на продажу жилья не учитываются",
		"Год окупаемости определяется с точностью до целого года",
	}
}
