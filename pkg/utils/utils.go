package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// RoundCents округляет сумму в копейках/центах до целого
func RoundCents(value float64) int64 {
	return int64(math.Round(value))
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// MaxInt64 возвращает большее из двух значений
func MaxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// MinInt64 возвращает меньшее из двух значений
func MinInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// FormatCents форматирует сумму в центах как "1234.56"
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatPercent форматирует годовую ставку (0.055) как "5.5%"
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).Round(2).String() + "%"
}
