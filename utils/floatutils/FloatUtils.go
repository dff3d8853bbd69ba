// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ArgMax returns the index of the maximum value in a slice of float64.
// If multiple equal max values exist, the lowest index is returned.
func ArgMax(values []float64) int {
	max, idx := values[0], 0

	for i, value := range values {
		if value > max {
			max = value
			idx = i
		}
	}
	return idx
}
