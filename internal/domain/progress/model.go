package progress

import (
	"errors"
	"math"
	"time"
)

// BMI classification labels.
const (
	ClassUnderweight = "Underweight"
	ClassNormal      = "Normal"
	ClassOverweight  = "Overweight"
	ClassObese       = "Obese"
)

// DateLayout is the calendar-date format for progress entries.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyID          = errors.New("progress entry id cannot be empty")
	ErrInvalidDate      = errors.New("progress date must be YYYY-MM-DD")
	ErrNonPositiveBody  = errors.New("weight and height must be positive")
	ErrUnreasonableBody = errors.New("weight or height outside plausible range")
)

// Entry is one body-weight log on a student record. IDs are random UUIDs
// issued at creation, not timestamps.
type Entry struct {
	ID        string
	Date      string  // YYYY-MM-DD
	WeightKg  float64 // kilograms
	HeightCm  float64 // centimetres
	CreatedAt time.Time
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	if e.WeightKg <= 0 || e.HeightCm <= 0 {
		return ErrNonPositiveBody
	}
	if e.WeightKg > 500 || e.HeightCm > 300 {
		return ErrUnreasonableBody
	}
	return nil
}

// BMI returns weight(kg) / height(m)^2 rounded to one decimal.
// PRE: WeightKg > 0, HeightCm > 0
func (e *Entry) BMI() float64 {
	m := e.HeightCm / 100
	return math.Round(e.WeightKg/(m*m)*10) / 10
}

// Classify maps a BMI value to its band. Bands are half-open:
// [18.5, 25) normal, [25, 30) overweight, >= 30 obese.
func Classify(bmi float64) string {
	switch {
	case bmi < 18.5:
		return ClassUnderweight
	case bmi < 25:
		return ClassNormal
	case bmi < 30:
		return ClassOverweight
	default:
		return ClassObese
	}
}

// WeightChange returns the most recent entry's weight minus the oldest's,
// by log date, over the given set. Zero for fewer than two entries.
// INVARIANT: entries slice is not mutated
func WeightChange(entries []Entry) float64 {
	if len(entries) < 2 {
		return 0
	}
	oldest, newest := entries[0], entries[0]
	for _, e := range entries[1:] {
		if e.Date < oldest.Date {
			oldest = e
		}
		if e.Date > newest.Date {
			newest = e
		}
	}
	return newest.WeightKg - oldest.WeightKg
}
