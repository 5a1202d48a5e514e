package utils

import "github.com/shopspring/decimal"

const bmiPrecision = 2

// CalculateBMI returns weight / height² rounded to two decimals.
// weightKg must be in kilograms and heightCm in centimeters. A zero height has no
// BMI and reports false; other values, negative ones included, are not validated.
func CalculateBMI(weightKg, heightCm float64) (float64, bool) {
	if heightCm == 0 {
		return 0, false
	}

	heightM := decimal.NewFromFloat(heightCm).Div(decimal.NewFromInt(100))
	bmi := decimal.NewFromFloat(weightKg).Div(heightM.Mul(heightM))

	value, _ := bmi.Round(bmiPrecision).Float64()
	return value, true
}
