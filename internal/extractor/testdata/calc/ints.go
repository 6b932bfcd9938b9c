package calc

// AddInts adds two integers.
func AddInts(a, b int) int {
	return a + b
}

func clamp[T int | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
