package util

import "math"

// RoundPercent converts a correct/total ratio to an integer percentage
// using round-half-to-even.
func RoundPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(correct) / float64(total) * 100))
}

// Round2 rounds to two decimal places, half to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
