package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

// MonthlyPayment рассчитывает аннуитетный платеж (PMT) в центах.
// При нулевой ставке платеж равен principal/termMonths.
// Для principal <= 0 или termMonths <= 0 возвращает 0.
func MonthlyPayment(principal int64, annualRate float64, termMonths int) int64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	P := float64(principal)
	n := float64(termMonths)
	if annualRate == 0 {
		return utils.RoundCents(P / n)
	}
	r := annualRate / 12.0
	growth := math.Pow(1.0+r, n)
	return utils.RoundCents(P * r * growth / (growth - 1.0))
}

// TotalInterest возвращает переплату payment*months - principal.
// Из-за округления платежа результат может быть отрицательным.
func TotalInterest(payment int64, months int, principal int64) int64 {
	return payment*int64(months) - principal
}

// PayoffMonths рассчитывает число месяцев до полного погашения balance при платеже payment.
// Второе значение false, если платеж не покрывает ежемесячные проценты и долг никогда
// не будет погашен.
func PayoffMonths(balance, payment int64, annualRate float64) (int, bool) {
	if balance <= 0 {
		return 0, true
	}
	if payment <= 0 {
		return 0, false
	}
	if annualRate == 0 {
		return int((balance + payment - 1) / payment), true
	}

	r := annualRate / 12.0
	monthlyInterest := float64(balance) * r
	// Проверка до логарифма: при payment <= balance*r аргумент ln неположителен
	if float64(payment) <= monthlyInterest {
		return 0, false
	}

	n := -math.Log(1.0-monthlyInterest/float64(payment)) / math.Log(1.0+r)
	if !utils.IsFinite(n) || n < 0 {
		return 0, false
	}
	return int(math.Ceil(n - 1e-9)), true
}

// RemainingBalance возвращает остаток долга после paidMonths платежей
// по формуле B = P * [(1+r)^n - (1+r)^p] / [(1+r)^n - 1].
func RemainingBalance(principal int64, annualRate float64, termMonths, paidMonths int) int64 {
	if principal <= 0 || termMonths <= 0 || paidMonths >= termMonths {
		return 0
	}
	if paidMonths <= 0 {
		return principal
	}

	P := float64(principal)
	if annualRate == 0 {
		return utils.MaxInt64(0, utils.RoundCents(P-P*float64(paidMonths)/float64(termMonths)))
	}

	r := annualRate / 12.0
	full := math.Pow(1.0+r, float64(termMonths))
	paid := math.Pow(1.0+r, float64(paidMonths))
	return utils.MaxInt64(0, utils.RoundCents(P*(full-paid)/(full-1.0)))
}
