package calculations

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

// ErrNoDebts возвращается, если стратегию погашения запросили без долгов
var ErrNoDebts = errors.New("для расчета стратегии погашения нужен хотя бы один долг")

const (
	// maxSimulationMonths ограничивает моделирование 100 годами
	maxSimulationMonths = 1200
	// highRateThreshold ставка, при которой стоит рассмотреть консолидацию
	highRateThreshold = 0.2
	// closeGapRatio доля переплаты, при которой стратегии считаются близкими
	closeGapRatio = 0.05
	// balanceCap верхняя граница остатка: растущий долг дальше не моделируется
	balanceCap int64 = 1e15
)

// debtBalance состояние одного долга в моделировании
type debtBalance struct {
	debt     Debt
	balance  int64
	interest int64
	cleared  bool
	month    int
}

// priority возвращает true, если долг a погашается раньше долга b
type priority func(a, b debtBalance) bool

func byHighestRate(a, b debtBalance) bool {
	if a.debt.InterestRate != b.debt.InterestRate {
		return a.debt.InterestRate > b.debt.InterestRate
	}
	return a.balance < b.balance
}

func bySmallestBalance(a, b debtBalance) bool {
	if a.balance != b.balance {
		return a.balance < b.balance
	}
	return a.debt.InterestRate > b.debt.InterestRate
}

// CalculatePayoffStrategies рассчитывает текущий план, лавину и снежный ком
func CalculatePayoffStrategies(in PayoffInputs) (*PayoffResults, error) {
	if len(in.Debts) == 0 {
		return nil, ErrNoDebts
	}

	current := currentPlan(in.Debts)

	avalanche := simulatePayoff(in.Debts, in.ExtraMonthlyPayment, byHighestRate)
	avalanche.Name = StrategyAvalanche
	avalanche.Description = "Сначала гасится долг с самой высокой ставкой, освободившиеся платежи переходят на следующий."

	snowball := simulatePayoff(in.Debts, in.ExtraMonthlyPayment, bySmallestBalance)
	snowball.Name = StrategySnowball
	snowball.Description = "Сначала гасится самый маленький долг, освободившиеся платежи переходят на следующий."

	for _, s := range []*PayoffStrategy{&avalanche, &snowball} {
		if current.PaysOff && s.PaysOff {
			s.InterestSaved = utils.MaxInt64(0, current.TotalInterest-s.TotalInterest)
		}
	}

	res := &PayoffResults{
		Current:   current,
		Avalanche: avalanche,
		Snowball:  snowball,
	}
	res.Recommendation = payoffRecommendation(in, res)
	res.Warnings = payoffWarnings(in, res)
	return res, nil
}

// currentPlan гасит каждый долг отдельно его собственным платежом
func currentPlan(debts []Debt) PayoffStrategy {
	plan := PayoffStrategy{
		Name:        StrategyCurrent,
		Description: "Каждый долг гасится отдельно текущим платежом, без перераспределения.",
		PaysOff:     true,
		PayoffOrder: make([]PayoffStep, 0, len(debts)),
	}

	for _, d := range debts {
		plan.TotalPrincipal += d.Balance
		plan.MonthlyPayment += d.MonthlyPayment

		step := PayoffStep{DebtID: d.ID, DebtName: d.Name}
		months, ok := PayoffMonths(d.Balance, d.MonthlyPayment, d.InterestRate)
		if ok {
			step.Months = months
			step.PaysOff = true
			step.InterestPaid = utils.MaxInt64(0, TotalInterest(d.MonthlyPayment, months, d.Balance))
			plan.TotalInterest += step.InterestPaid
			if months > plan.TotalMonths {
				plan.TotalMonths = months
			}
		} else {
			plan.PaysOff = false
		}
		plan.PayoffOrder = append(plan.PayoffOrder, step)
	}

	if !plan.PaysOff {
		plan.TotalMonths = 0
	}
	sortSteps(plan.PayoffOrder)
	return plan
}

// simulatePayoff моделирует погашение помесячно, пока все долги не будут закрыты
func simulatePayoff(debts []Debt, extra int64, less priority) PayoffStrategy {
	state := make([]debtBalance, len(debts))
	for i, d := range debts {
		state[i] = debtBalance{debt: d, balance: d.Balance, cleared: d.Balance <= 0}
	}

	for month := 1; month <= maxSimulationMonths && !allCleared(state); month++ {
		state = advanceMonth(month, state, extra, less)
		if exceedsCap(state) {
			break
		}
	}

	plan := PayoffStrategy{
		PaysOff:        allCleared(state),
		MonthlyPayment: extra,
		PayoffOrder:    make([]PayoffStep, 0, len(state)),
	}
	for _, s := range state {
		plan.TotalPrincipal += s.debt.Balance
		plan.TotalInterest += s.interest
		plan.MonthlyPayment += s.debt.MonthlyPayment
		if s.month > plan.TotalMonths {
			plan.TotalMonths = s.month
		}
		plan.PayoffOrder = append(plan.PayoffOrder, PayoffStep{
			DebtID:       s.debt.ID,
			DebtName:     s.debt.Name,
			Months:       s.month,
			InterestPaid: s.interest,
			PaysOff:      s.cleared,
		})
	}
	if !plan.PaysOff {
		plan.TotalMonths = 0
	}
	sortSteps(plan.PayoffOrder)
	return plan
}

// advanceMonth возвращает новое состояние долгов после одного месяца.
// Каждый открытый долг получает свой платеж; дополнительный платеж, платежи закрытых
// долгов и неиспользованные остатки направляются на долги в порядке less.
func advanceMonth(month int, state []debtBalance, extra int64, less priority) []debtBalance {
	next := make([]debtBalance, len(state))
	copy(next, state)

	pool := extra
	for i := range next {
		if next[i].cleared {
			pool += next[i].debt.MonthlyPayment
			continue
		}
		interest := utils.RoundCents(float64(next[i].balance) * next[i].debt.InterestRate / 12.0)
		next[i].balance += interest
		next[i].interest += interest

		pay := utils.MinInt64(next[i].debt.MonthlyPayment, next[i].balance)
		next[i].balance -= pay
		pool += next[i].debt.MonthlyPayment - pay
	}

	order := make([]int, 0, len(next))
	for i := range next {
		if !next[i].cleared && next[i].balance > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(next[order[a]], next[order[b]])
	})
	for _, i := range order {
		if pool <= 0 {
			break
		}
		pay := utils.MinInt64(pool, next[i].balance)
		next[i].balance -= pay
		pool -= pay
	}

	for i := range next {
		if !next[i].cleared && next[i].balance <= 0 {
			next[i].balance = 0
			next[i].cleared = true
			next[i].month = month
		}
	}
	return next
}

func allCleared(state []debtBalance) bool {
	for _, s := range state {
		if !s.cleared {
			return false
		}
	}
	return true
}

func exceedsCap(state []debtBalance) bool {
	for _, s := range state {
		if s.balance > balanceCap {
			return true
		}
	}
	return false
}

// sortSteps упорядочивает шаги по месяцу погашения, непогашаемые долги в конце
func sortSteps(steps []PayoffStep) {
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].PaysOff != steps[j].PaysOff {
			return steps[i].PaysOff
		}
		return steps[i].Months < steps[j].Months
	})
}

func payoffRecommendation(in PayoffInputs, res *PayoffResults) string {
	if !res.Avalanche.PaysOff && !res.Snowball.PaysOff {
		return "Даже с перераспределением платежей долги не будут погашены: текущих платежей не хватает на проценты. Увеличьте ежемесячные платежи."
	}
	if in.ExtraMonthlyPayment == 0 {
		return "Добавьте дополнительный ежемесячный платеж: даже небольшая сумма сверх обязательных платежей заметно сокращает срок погашения и переплату."
	}

	gap := res.Snowball.TotalInterest - res.Avalanche.TotalInterest
	switch {
	case gap > 0:
		msg := fmt.Sprintf("Метод лавины выгоднее: переплата меньше на %s, срок погашения %d мес.",
			utils.FormatCents(gap), res.Avalanche.TotalMonths)
		if float64(gap) <= float64(res.Avalanche.TotalInterest)*closeGapRatio {
			msg += " Разница невелика: если быстрые закрытия мелких долгов мотивируют, снежный ком тоже хороший выбор."
		}
		return msg
	case gap < 0:
		return fmt.Sprintf("Метод снежного кома выгоднее: переплата меньше на %s, срок погашения %d мес.",
			utils.FormatCents(-gap), res.Snowball.TotalMonths)
	default:
		return fmt.Sprintf("Обе стратегии дают одинаковую переплату %s. Выберите снежный ком, если важны быстрые закрытия мелких долгов.",
			utils.FormatCents(res.Avalanche.TotalInterest))
	}
}

func payoffWarnings(in PayoffInputs, res *PayoffResults) []string {
	warnings := []string{}

	if in.MonthlyIncome > 0 && float64(res.Avalanche.MonthlyPayment)/float64(in.MonthlyIncome) > highBurdenRatio {
		warnings = append(warnings, fmt.Sprintf(
			"Платежи по долгам с учетом дополнительного превышают %s дохода: долговая нагрузка высокая.",
			utils.FormatPercent(highBurdenRatio)))
	}
	for _, step := range res.Current.PayoffOrder {
		if !step.PaysOff {
			warnings = append(warnings, fmt.Sprintf(
				"Платеж по долгу «%s» не покрывает проценты: при текущем платеже он не будет погашен.", step.DebtName))
		}
	}
	for _, d := range in.Debts {
		if d.InterestRate > highRateThreshold {
			warnings = append(warnings, fmt.Sprintf(
				"Ставка по долгу «%s» %s: рассмотрите консолидацию как альтернативу.",
				d.Name, utils.FormatPercent(d.InterestRate)))
		}
	}

	return warnings
}
