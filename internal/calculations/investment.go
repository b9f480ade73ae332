package calculations

import (
	"github.com/cloud-ru/mcp-debt-planner-go/pkg/utils"
)

// InvestmentGrowth представляет сводку по росту вложений с ежемесячной капитализацией
type InvestmentGrowth struct {
	InitialAmount int64   `json:"initial_amount"`
	AnnualRate    float64 `json:"annual_rate"`
	Months        int     `json:"months"`
	TotalInterest int64   `json:"total_interest"`
	FinalBalance  int64   `json:"final_balance"`
}

// GrowInvestment рассчитывает рост суммы с ежемесячной капитализацией.
// Проценты округляются до цента каждый месяц.
func GrowInvestment(initialAmount int64, annualRate float64, months int) InvestmentGrowth {
	balance := initialAmount
	r := annualRate / 12.0
	var cumI int64

	for m := 1; m <= months; m++ {
		interest := utils.RoundCents(float64(balance) * r)
		balance += interest
		cumI += interest
	}

	return InvestmentGrowth{
		InitialAmount: initialAmount,
		AnnualRate:    annualRate,
		Months:        months,
		TotalInterest: cumI,
		FinalBalance:  balance,
	}
}
