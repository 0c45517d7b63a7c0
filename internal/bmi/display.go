package bmi

// Color tokens used by the dashboard for a category.
const (
	ColorBlue   = "blue"
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

type Display struct {
	Label      string `json:"label"`
	ColorToken string `json:"colorToken"`
}

var displays = map[Category]Display{
	CategoryUnderweight: {Label: "Underweight", ColorToken: ColorBlue},
	CategoryNormal:      {Label: "Normal Weight", ColorToken: ColorGreen},
	CategoryOverweight:  {Label: "Overweight", ColorToken: ColorYellow},
	CategoryObese:       {Label: "Obese", ColorToken: ColorRed},
}

// DisplayFor returns the human-readable label and color token for c.
func DisplayFor(c Category) (Display, error) {
	d, ok := displays[c]
	if !ok {
		return Display{}, &UnknownCategoryError{Category: c}
	}
	return d, nil
}

// Gauge is the full display-side view of a Result, as rendered by the dashboard.
type Gauge struct {
	Result
	Display
	GaugeAngle float64 `json:"gaugeAngle"`
}

func NewGauge(r Result) (Gauge, error) {
	d, err := DisplayFor(r.Category)
	if err != nil {
		return Gauge{}, err
	}
	return Gauge{
		Result:     r,
		Display:    d,
		GaugeAngle: GaugeAngle(r.BMIValue),
	}, nil
}
