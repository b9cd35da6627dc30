package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RoundToPercent converts a ratio to the nearest integer percentage.
func RoundToPercent(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}
