package bmi

import "math"

const (
	VerdictUnderweight = "Underweight"
	VerdictNormal      = "Normal"
	VerdictOverweight  = "Overweight"
	VerdictObese       = "Obese"
)

// Compute returns the BMI (rounded to 2 decimals) and its verdict for a
// height in meters and weight in kilograms. Both results are nil when either
// input is missing or zero, so partially constructed records never divide by
// zero.
func Compute(height, weight float64) (*float64, *string) {
	if height == 0 || weight == 0 {
		return nil, nil
	}

	value := math.Round(weight/(height*height)*100) / 100

	var verdict string

	switch {
	case value < 18.5:
		verdict = VerdictUnderweight
	case value < 25:
		verdict = VerdictNormal
	case value < 30:
		verdict = VerdictOverweight
	default:
		verdict = VerdictObese
	}

	return &value, &verdict
}
