// Package bmi computes body mass index values, their classification,
// the healthy weight range for a height and the dashboard gauge position.
// Everything here is pure; results depend only on the arguments.
package bmi

import "math"

const (
	NormalLowerBound     = 18.5
	OverweightLowerBound = 25.0
	ObeseLowerBound      = 30.0

	GaugeMinBMI     = 15.0
	GaugeMaxBMI     = 40.0
	GaugeMaxDegrees = 180.0

	maxRoundable = 1e15
)

// Category is the BMI classification bucket.
type Category string

const (
	CategoryUnderweight Category = "UNDERWEIGHT"
	CategoryNormal      Category = "NORMAL"
	CategoryOverweight  Category = "OVERWEIGHT"
	CategoryObese       Category = "OBESE"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryUnderweight,
		CategoryNormal,
		CategoryOverweight,
		CategoryObese:
		return true
	default:
		return false
	}
}

// Result is the outcome of a single BMI computation.
type Result struct {
	BMIValue         float64  `json:"bmiValue"`
	Category         Category `json:"category"`
	MinHealthyWeight float64  `json:"minHealthyWeight"`
	MaxHealthyWeight float64  `json:"maxHealthyWeight"`
}

// Compute returns the BMI for the given weight in kilograms and height in centimeters.
// Non-positive, NaN and infinite inputs are rejected with *InvalidInputError.
func Compute(weightKg, heightCm float64) (Result, error) {
	raw, err := Index(weightKg, heightCm)
	if err != nil {
		return Result{}, err
	}

	heightM := heightCm / 100
	heightM2 := heightM * heightM
	value := round1(raw)

	return Result{
		BMIValue:         value,
		Category:         Classify(value),
		MinHealthyWeight: round1(NormalLowerBound * heightM2),
		MaxHealthyWeight: round1(OverweightLowerBound * heightM2),
	}, nil
}

// Index is the unrounded BMI, weight(kg) / height(m)^2.
func Index(weightKg, heightCm float64) (float64, error) {
	if !validMeasure(weightKg) {
		return 0, &InvalidInputError{Field: "weight", Value: weightKg}
	}
	if !validMeasure(heightCm) {
		return 0, &InvalidInputError{Field: "height", Value: heightCm}
	}

	heightM := heightCm / 100
	value := weightKg / (heightM * heightM)
	if math.IsInf(value, 0) || math.IsNaN(value) {
		// extreme ratios overflow, e.g. a tiny height squared underflows to zero
		return 0, &InvalidInputError{Field: "height", Value: heightCm}
	}
	return value, nil
}

// Classify maps a BMI value onto its category. Each bucket includes its lower bound.
func Classify(bmiValue float64) Category {
	switch {
	case bmiValue < NormalLowerBound:
		return CategoryUnderweight
	case bmiValue < OverweightLowerBound:
		return CategoryNormal
	case bmiValue < ObeseLowerBound:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// GaugeAngle maps a BMI value onto the semicircular gauge, in degrees within [0, 180].
// Values outside [15, 40] are pinned to the nearest end of the gauge.
func GaugeAngle(bmiValue float64) float64 {
	if math.IsNaN(bmiValue) {
		return 0
	}
	clamped := math.Max(GaugeMinBMI, math.Min(GaugeMaxBMI, bmiValue))
	return (clamped - GaugeMinBMI) / (GaugeMaxBMI - GaugeMinBMI) * GaugeMaxDegrees
}

func validMeasure(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// round1 rounds half up to one decimal. The value is first snapped to six decimals,
// so float noise like 72.24999999999999 (25 * 1.7^2) still rounds to 72.3.
// Values at or above maxRoundable carry no sub-decimal precision and are returned as is,
// scaling them would overflow to +Inf.
func round1(v float64) float64 {
	if math.Abs(v) >= maxRoundable {
		return v
	}
	snapped := math.Round(v*1e6) / 1e5
	return math.Round(snapped) / 10
}
