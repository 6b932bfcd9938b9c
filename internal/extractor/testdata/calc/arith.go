package calc

// Add returns the sum of two numbers.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns the difference of two numbers.
func Subtract(a, b float64) float64 {
	return a - b
}

type Accumulator struct {
	total float64
}

// Push adds n to the running total.
func (acc *Accumulator) Push(n float64) {
	acc.total = Add(acc.total, n)
}
