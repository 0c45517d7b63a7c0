package history

import (
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/bmi"
)

// Record is one persisted BMI evaluation of a user's measurements.
type Record struct {
	ID       int     `json:"id"`
	UserID   int     `json:"userId"`
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
	bmi.Result
	CalculatedAt time.Time `json:"calculatedAt"`
}

// RecordResponse is a record plus the gauge data the UI renders it with.
type RecordResponse struct {
	*Record
	bmi.Display
	GaugeAngle float64 `json:"gaugeAngle"`
}

func NewRecordResponse(r *Record) (RecordResponse, error) {
	gauge, err := bmi.NewGauge(r.Result)
	if err != nil {
		return RecordResponse{}, fmt.Errorf("record %d gauge: %w", r.ID, err)
	}
	return RecordResponse{
		Record:     r,
		Display:    gauge.Display,
		GaugeAngle: gauge.GaugeAngle,
	}, nil
}

type CalculateRequest struct {
	WeightKg float64 `json:"weightKg"`
	HeightCm float64 `json:"heightCm"`
}
