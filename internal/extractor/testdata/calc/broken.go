package calc

func Multiply(a, b float64 float64 {
	return a * b
}
