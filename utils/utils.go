package utils

import "math"

// FormatFloat rounds f to round decimal places, NaN and Inf pass through.
func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	p := math.Pow(10, float64(round))
	return math.Round(f*p) / p
}

func ListMul(l1, l2 []float64) []float64 {
	listLen := min(len(l1), len(l2))

	res := make([]float64, listLen)
	for i := 0; i < listLen; i++ {
		res[i] = l1[i] * l2[i]
	}
	return res
}

func ListScale(data []float64, factor float64) []float64 {
	res := make([]float64, len(data))
	for i, v := range data {
		res[i] = v * factor
	}
	return res
}

// CumSum returns the running sum of data scaled by step.
func CumSum(data []float64, step float64) []float64 {
	res := make([]float64, len(data))
	var sum float64
	for i, v := range data {
		sum += v * step
		res[i] = sum
	}
	return res
}

func InitOnes(n int) []float64 {
	res := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, 1)
	}
	return res
}
