package dashboard

import (
	"github.com/2beens/fittrack/internal/bmi"
	"github.com/2beens/fittrack/internal/progress"
)

const (
	BMISourceHistory = "history"
	BMISourceProfile = "profile"
)

// Summary is the dashboard view of a user's day.
type Summary struct {
	UserID    int              `json:"userId"`
	FirstName string           `json:"firstName"`
	Date      string           `json:"date"`
	BMI       bmi.Gauge        `json:"bmi"`
	BMISource string           `json:"bmiSource"`
	Today     *progress.Record `json:"today"`
}
