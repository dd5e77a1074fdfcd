package service

import (
	"fmt"
	"math"

	"campusspot/internal/model"
)

// DefaultAttendanceTarget is the target percentage when none is given
const DefaultAttendanceTarget = 75

// CalculateAttendance plans bunks against a target percentage.
// Invalid input produces an advisory, never an error.
func CalculateAttendance(total, attended, target int) model.AttendanceAdvice {
	if target == 0 {
		target = DefaultAttendanceTarget
	}

	if total <= 0 {
		return model.AttendanceAdvice{Type: model.AdviceNeutral, Message: "Enter your class details to get insights."}
	}
	if attended < 0 {
		return model.AttendanceAdvice{Type: model.AdviceError, Message: "Attended classes cannot be negative."}
	}
	if attended > total {
		return model.AttendanceAdvice{Type: model.AdviceError, Message: "Attended classes cannot be more than total classes."}
	}
	if target < 1 || target > 100 {
		return model.AttendanceAdvice{Type: model.AdviceError, Message: "Target must be between 1 and 100 percent."}
	}

	current := float64(attended) / float64(total) * 100
	advice := model.AttendanceAdvice{CurrentPercent: math.Round(current*10) / 10}

	if attended*100 >= target*total {
		// attended / (total + x) >= target / 100
		maxBunks := (100*attended - target*total) / target
		advice.Type = model.AdviceGood
		if maxBunks > 0 {
			advice.MaxBunks = maxBunks
			advice.Message = fmt.Sprintf("Safe Zone! You can bunk the next %d classes and still maintain %d%%.", maxBunks, target)
		} else {
			advice.Message = fmt.Sprintf("You are on track! But don't miss the next class to stay above %d%%.", target)
		}
		return advice
	}

	if target == 100 {
		advice.Type = model.AdviceBad
		advice.Message = "Mathematical impossibility: You can never reach 100% if you've missed a class."
		return advice
	}

	// (attended + x) / (total + x) >= target / 100
	deficit, gain := target*total-100*attended, 100-target
	required := (deficit + gain - 1) / gain
	advice.Type = model.AdviceBad
	advice.RequiredClasses = required
	advice.Message = fmt.Sprintf("Warning! You need to attend %d more classes consecutively to hit %d%%.", required, target)
	return advice
}
