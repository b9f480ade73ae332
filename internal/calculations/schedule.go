package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

// AmortizationSchedule рассчитывает помесячный график аннуитетного кредита в центах.
// Проценты и тело долга округляются до цента в каждом месяце, последний платеж
// закрывает остаток целиком.
func AmortizationSchedule(principal int64, annualRate float64, months int) (*CalculationResult, error) {
	if principal <= 0 {
		return nil, fmt.Errorf("сумма кредита должна быть положительной")
	}
	if months <= 0 {
		return nil, fmt.Errorf("срок кредита должен быть не меньше одного месяца")
	}

	r := annualRate / 12.0
	monthlyPayment := MonthlyPayment(principal, annualRate, months)

	schedule := make([]ScheduleEntry, 0, months)
	remaining := principal
	var cumI, cumP, totalPaid int64

	for m := 1; m <= months && remaining > 0; m++ {
		interest := int64(0)
		if r != 0 {
			interest = utils.RoundCents(float64(remaining) * r)
		}

		principalComponent := monthlyPayment - interest
		monthly := monthlyPayment
		if m == months || principalComponent >= remaining {
			principalComponent = remaining
			monthly = principalComponent + interest
		}
		if principalComponent < 0 {
			return nil, fmt.Errorf("численная ошибка: платеж не покрывает проценты в месяце %d", m)
		}

		remaining -= principalComponent
		cumI += interest
		cumP += principalComponent
		totalPaid += monthly

		schedule = append(schedule, ScheduleEntry{
			Month:               m,
			Payment:             monthly,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  remaining,
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})
	}

	return &CalculationResult{
		Summary: LoanSummary{
			Principal:      principal,
			AnnualRate:     annualRate,
			Months:         months,
			MonthlyPayment: monthlyPayment,
			TotalPaid:      totalPaid,
			TotalInterest:  cumI,
		},
		Schedule: schedule,
	}, nil
}

// PaidWithin суммирует проценты и тело долга за первые months месяцев графика
func (c *CalculationResult) PaidWithin(months int) (interest, principal int64) {
	for _, e := range c.Schedule {
		if e.Month > months {
			break
		}
		interest += e.Interest
		principal += e.PrincipalComponent
	}
	return interest, principal
}
