package calculations

import (
	"testing"
)

func TestAmortizationSchedule(t *testing.T) {
	tests := []struct {
		name         string
		principal    int64
		annualRate   float64
		months       int
		wantError    bool
		checkSummary func(*testing.T, *CalculationResult)
	}{
		{
			name:       "basic annuity",
			principal:  1000000,
			annualRate: 0.12,
			months:     12,
			wantError:  false,
			checkSummary: func(t *testing.T, result *CalculationResult) {
				if result == nil {
					t.Fatal("result is nil")
				}
				if len(result.Schedule) != 12 {
					t.Errorf("expected 12 months, got %d", len(result.Schedule))
				}
				summary := result.Summary
				if summary.Principal != 1000000 {
					t.Errorf("expected principal 1000000, got %d", summary.Principal)
				}
				if summary.MonthlyPayment <= 0 {
					t.Error("monthly payment should be positive")
				}
				if summary.TotalPaid <= summary.Principal {
					t.Error("total paid should be greater than principal")
				}
				if summary.TotalPaid != summary.Principal+summary.TotalInterest {
					t.Errorf("total paid %d != principal + interest %d", summary.TotalPaid, summary.Principal+summary.TotalInterest)
				}
				// Проверяем, что остаток в последнем месяце равен 0
				lastMonth := result.Schedule[len(result.Schedule)-1]
				if lastMonth.RemainingPrincipal != 0 {
					t.Errorf("expected remaining principal 0, got %d", lastMonth.RemainingPrincipal)
				}
				if lastMonth.CumulativePrincipal != summary.Principal {
					t.Errorf("expected cumulative principal %d, got %d", summary.Principal, lastMonth.CumulativePrincipal)
				}
			},
		},
		{
			name:       "zero rate",
			principal:  100000,
			annualRate: 0,
			months:     10,
			wantError:  false,
			checkSummary: func(t *testing.T, result *CalculationResult) {
				summary := result.Summary
				if summary.MonthlyPayment != 10000 {
					t.Errorf("expected monthly payment 10000, got %d", summary.MonthlyPayment)
				}
				if summary.TotalInterest != 0 {
					t.Errorf("expected total interest 0, got %d", summary.TotalInterest)
				}
			},
		},
		{
			name:       "zero principal",
			principal:  0,
			annualRate: 0.1,
			months:     12,
			wantError:  true,
		},
		{
			name:       "zero months",
			principal:  100000,
			annualRate: 0.1,
			months:     0,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AmortizationSchedule(tt.principal, tt.annualRate, tt.months)
			if (err != nil) != tt.wantError {
				t.Errorf("AmortizationSchedule() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if !tt.wantError && tt.checkSummary != nil {
				tt.checkSummary(t, result)
			}
		})
	}
}

func TestPaidWithin(t *testing.T) {
	result, err := AmortizationSchedule(1200000, 0, 12)
	if err != nil {
		t.Fatalf("AmortizationSchedule() error = %v", err)
	}

	interest, principal := result.PaidWithin(6)
	if interest != 0 || principal != 600000 {
		t.Errorf("PaidWithin(6) = (%d, %d), want (0, 600000)", interest, principal)
	}

	_, principal = result.PaidWithin(100)
	if principal != 1200000 {
		t.Errorf("PaidWithin(100) principal = %d, want 1200000", principal)
	}
}

func TestGrowInvestment(t *testing.T) {
	growth := GrowInvestment(100000, 0.12, 12)
	// 100000 * 1.01^12 = 112682.5
	if diff := growth.FinalBalance - 112683; diff > 2 || diff < -2 {
		t.Errorf("expected final balance near 112683, got %d", growth.FinalBalance)
	}
	if growth.FinalBalance != growth.InitialAmount+growth.TotalInterest {
		t.Error("final balance should equal initial amount plus interest")
	}

	flat := GrowInvestment(100000, 0, 24)
	if flat.FinalBalance != 100000 || flat.TotalInterest != 0 {
		t.Errorf("zero rate should not grow, got %+v", flat)
	}
}
