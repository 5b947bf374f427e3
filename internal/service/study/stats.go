package study

import (
	"math"
	"time"
)

// Percentage returns learned/total as a whole percent, 0 when total is 0.
func Percentage(learned, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(learned) / float64(total) * 100))
}

// AverageTime returns seconds per item rounded to one decimal, 0 when there are no items.
func AverageTime(elapsedSeconds float64, totalItems int) float64 {
	if totalItems <= 0 {
		return 0
	}
	return math.Round(elapsedSeconds/float64(totalItems)*10) / 10
}

// Elapsed returns whole seconds between start and end, never negative.
func Elapsed(start, end time.Time) float64 {
	if start.IsZero() || end.Before(start) {
		return 0
	}
	return math.Floor(end.Sub(start).Seconds())
}
