package calculations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

const (
	// dtiCeiling стандартный потолок отношения долга к доходу
	dtiCeiling = 0.36
	// highBurdenRatio доля дохода, выше которой нагрузка считается высокой
	highBurdenRatio = 0.4
)

var minCreditScore = map[OptionType]int{
	PersonalLoan:    600,
	BalanceTransfer: 650,
	HELOC:           680,
}

// Label возвращает название типа предложения для текста рекомендаций
func (t OptionType) Label() string {
	switch t {
	case PersonalLoan:
		return "потребительский кредит"
	case BalanceTransfer:
		return "перевод баланса"
	case HELOC:
		return "кредит под залог жилья (HELOC)"
	}
	return string(t)
}

// DefaultConsolidationOptions возвращает примерные предложения для консолидации totalDebt.
// Ставки, сроки и комиссии условные и не отражают рыночных условий.
func DefaultConsolidationOptions(totalDebt int64) []ConsolidationOption {
	origination := utils.RoundCents(float64(totalDebt) * 0.03)
	return []ConsolidationOption{
		{Type: PersonalLoan, Rate: 0.12, Term: 60, Fees: origination},
		{Type: BalanceTransfer, Rate: 0.18, Term: 36, Fees: origination},
		{Type: HELOC, Rate: 0.08, Term: 120, Fees: 50000},
	}
}

// CalculateDebtConsolidation сравнивает текущие долги с предложениями по консолидации
func CalculateDebtConsolidation(in DebtConsolidationInputs) DebtConsolidationResults {
	res := DebtConsolidationResults{
		CurrentPlanPaysOff: true,
		Options:            make([]OptionComparison, 0, len(in.ConsolidationOptions)),
	}

	var neverPaidOff []string
	for _, d := range in.Debts {
		res.TotalCurrentDebt += d.Balance
		res.TotalCurrentPayment += d.MonthlyPayment

		months, ok := PayoffMonths(d.Balance, d.MonthlyPayment, d.InterestRate)
		if !ok {
			neverPaidOff = append(neverPaidOff, d.Name)
			continue
		}
		res.TotalCurrentInterest += utils.MaxInt64(0, TotalInterest(d.MonthlyPayment, months, d.Balance))
		if months > res.CurrentPayoffMonths {
			res.CurrentPayoffMonths = months
		}
	}
	if len(neverPaidOff) > 0 {
		res.CurrentPlanPaysOff = false
		res.TotalCurrentInterest = 0
		res.CurrentPayoffMonths = 0
	}

	for _, opt := range in.ConsolidationOptions {
		res.Options = append(res.Options, compareOption(opt, in, &res))
	}
	rankOptions(res.Options)

	res.Recommendation, res.NextSteps = consolidationRecommendation(&res)
	res.Warnings = consolidationWarnings(in, &res, neverPaidOff)
	return res
}

// IsEligible проверяет, доступно ли предложение при данном долге, доходе и рейтинге.
// Возвращает причины отказа; пустой список означает, что предложение доступно.
func IsEligible(opt ConsolidationOption, totalDebt, monthlyIncome int64, creditScore *int) []string {
	var reasons []string

	if float64(totalDebt) > float64(monthlyIncome)*dtiCeiling*12 {
		reasons = append(reasons, fmt.Sprintf("долг превышает %s годового дохода", utils.FormatPercent(dtiCeiling)))
	}
	if creditScore != nil {
		if minScore, ok := minCreditScore[opt.Type]; ok && *creditScore < minScore {
			reasons = append(reasons, fmt.Sprintf("кредитный рейтинг ниже %d", minScore))
		}
	}
	if opt.MaxAmount != nil && totalDebt > *opt.MaxAmount {
		reasons = append(reasons, fmt.Sprintf("долг превышает лимит предложения %s", utils.FormatCents(*opt.MaxAmount)))
	}

	return reasons
}

func compareOption(opt ConsolidationOption, in DebtConsolidationInputs, current *DebtConsolidationResults) OptionComparison {
	reasons := IsEligible(opt, current.TotalCurrentDebt, in.MonthlyIncome, in.CreditScore)
	if len(reasons) > 0 {
		return OptionComparison{Option: opt, Eligible: false, IneligibleReasons: reasons}
	}

	payment := MonthlyPayment(current.TotalCurrentDebt, opt.Rate, opt.Term)
	interest := utils.MaxInt64(0, TotalInterest(payment, opt.Term, current.TotalCurrentDebt))

	cmp := OptionComparison{
		Option:            opt,
		Eligible:          true,
		NewMonthlyPayment: payment,
		NewTotalInterest:  interest,
	}
	// Если текущий план не сходится, экономию оценить нельзя: остаются нули
	if current.CurrentPlanPaysOff {
		if saved := current.CurrentPayoffMonths - opt.Term; saved > 0 {
			cmp.MonthsSaved = saved
		}
		cmp.TotalSavings = utils.MaxInt64(0, current.TotalCurrentInterest-interest-opt.Fees)
	}
	return cmp
}

// rankOptions ставит доступные предложения первыми, по убыванию экономии
func rankOptions(options []OptionComparison) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Eligible != options[j].Eligible {
			return options[i].Eligible
		}
		return options[i].TotalSavings > options[j].TotalSavings
	})
}

func consolidationRecommendation(res *DebtConsolidationResults) (string, []string) {
	if len(res.Options) == 0 || !res.Options[0].Eligible {
		steps := []string{
			fmt.Sprintf("Снизьте общий долг до уровня не выше %s годового дохода", utils.FormatPercent(dtiCeiling)),
			"Проверьте кредитную историю и исправьте ошибки в ней",
		}
		if !res.CurrentPlanPaysOff {
			return "Ни одно из предложений по консолидации сейчас недоступно, а текущие платежи не покрывают проценты: без изменений долг не будет погашен. Увеличьте ежемесячные платежи.",
				append([]string{"Сначала " + raisePaymentStep}, steps...)
		}
		return "Ни одно из предложений по консолидации сейчас недоступно. Сначала снизьте долговую нагрузку или улучшите кредитный рейтинг.",
			append(steps, "Пока погашайте текущие долги методом лавины: сначала самые дорогие")
	}

	if !res.CurrentPlanPaysOff {
		return stuckDebtRecommendation(res)
	}

	best := res.Options[0]
	if best.TotalSavings <= 0 {
		return "Экономия от консолидации минимальна. Выгоднее погашать текущие долги методом лавины, направляя свободные средства на долг с самой высокой ставкой.",
			[]string{
				"Составьте план погашения методом лавины",
				"Направляйте любые дополнительные средства на самый дорогой долг",
				"Вернитесь к консолидации, если появятся предложения с более низкой ставкой",
			}
	}

	recommendation := fmt.Sprintf(
		"Лучшее предложение: %s под %s на %d мес. Экономия с учетом комиссий составит %s, новый ежемесячный платеж %s.",
		best.Option.Type.Label(), utils.FormatPercent(best.Option.Rate), best.Option.Term,
		utils.FormatCents(best.TotalSavings), utils.FormatCents(best.NewMonthlyPayment),
	)
	steps := []string{
		fmt.Sprintf("Запросите предварительное одобрение: %s", best.Option.Type.Label()),
		"Сравните итоговые условия с расчетом, включая все комиссии",
		"После консолидации закройте или не используйте погашенные кредитные карты",
	}
	if best.MonthsSaved > 0 {
		steps = append(steps, fmt.Sprintf("Долг будет погашен на %d мес. раньше текущего плана", best.MonthsSaved))
	}
	return recommendation, steps
}

const raisePaymentStep = "увеличьте ежемесячные платежи так, чтобы они превышали начисляемые проценты"

// stuckDebtRecommendation для случая, когда текущий план никогда не погасит долг:
// экономию посчитать нельзя, поэтому предлагается самое дешевое доступное предложение
func stuckDebtRecommendation(res *DebtConsolidationResults) (string, []string) {
	var best *OptionComparison
	for i := range res.Options {
		o := &res.Options[i]
		if !o.Eligible {
			continue
		}
		if best == nil || o.NewTotalInterest+o.Option.Fees < best.NewTotalInterest+best.Option.Fees {
			best = o
		}
	}

	recommendation := fmt.Sprintf(
		"Текущие платежи не покрывают проценты: без изменений долг не будет погашен. Нужна консолидация или более высокий платеж. "+
			"Например, %s под %s на %d мес. полностью погасит долг при платеже %s, переплата с учетом комиссий %s.",
		best.Option.Type.Label(), utils.FormatPercent(best.Option.Rate), best.Option.Term,
		utils.FormatCents(best.NewMonthlyPayment), utils.FormatCents(best.NewTotalInterest+best.Option.Fees),
	)
	return recommendation, []string{
		fmt.Sprintf("Запросите предварительное одобрение: %s", best.Option.Type.Label()),
		"Если консолидация не подходит: " + raisePaymentStep,
		"Не берите новых долгов, пока платежи не начнут сокращать остаток",
	}
}

func consolidationWarnings(in DebtConsolidationInputs, res *DebtConsolidationResults, neverPaidOff []string) []string {
	warnings := []string{}

	if in.MonthlyIncome > 0 && float64(res.TotalCurrentPayment)/float64(in.MonthlyIncome) > highBurdenRatio {
		warnings = append(warnings, fmt.Sprintf(
			"Платежи по долгам превышают %s дохода: долговая нагрузка высокая.",
			utils.FormatPercent(highBurdenRatio)))
	}
	if len(neverPaidOff) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Текущий платеж не покрывает проценты и долг никогда не будет погашен: %s.",
			strings.Join(neverPaidOff, ", ")))
	}
	for _, opt := range res.Options {
		if opt.Eligible && opt.NewMonthlyPayment > res.TotalCurrentPayment {
			warnings = append(warnings, fmt.Sprintf(
				"Ежемесячный платеж вырастет до %s (%s).",
				utils.FormatCents(opt.NewMonthlyPayment), opt.Option.Type.Label()))
		}
	}

	return warnings
}
