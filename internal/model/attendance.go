package model

// AdviceType classifies attendance advice
type AdviceType string

const (
	AdviceNeutral AdviceType = "neutral"
	AdviceGood    AdviceType = "good"
	AdviceBad     AdviceType = "bad"
	AdviceError   AdviceType = "error"
)

// AttendanceAdvice is the outcome of the attendance planner.
// Invalid input yields AdviceError with a message, never a Go error.
type AttendanceAdvice struct {
	Type            AdviceType `json:"type"`
	Message         string     `json:"message"`
	CurrentPercent  float64    `json:"current_percent"`
	MaxBunks        int        `json:"max_bunks"`
	RequiredClasses int        `json:"required_classes"`
}
