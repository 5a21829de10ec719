package density

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type BandWidth interface {
	BandWidth(x, weights []float64) float64
}

// FixedBandWidth ignores the samples.
type FixedBandWidth float64

func (bw FixedBandWidth) BandWidth(x, weights []float64) float64 {
	return float64(bw)
}

// NormalReferenceBandWidth is Silverman's rule of thumb scaled for the kernel.
type NormalReferenceBandWidth struct {
	kernel Kernel
}

func NewNormalReferenceBandWidth(kernel Kernel) *NormalReferenceBandWidth {
	if kernel == nil {
		kernel = NewGaussianKernel()
	}
	return &NormalReferenceBandWidth{
		kernel: kernel,
	}
}

func (bw *NormalReferenceBandWidth) BandWidth(x, weights []float64) float64 {
	C := bw.kernel.NormalReferenceConstant()
	A := selectSigma(x, weights)
	n := len(x)
	return C * A * math.Pow(float64(n), -0.2)
}

func selectSigma(x, weights []float64) float64 {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sortedWeights := weights
	if weights != nil {
		sortedWeights = make([]float64, len(weights))
		copy(sortedWeights, weights)
		sort.Sort(weightedSamples{sorted, sortedWeights})
	} else {
		sort.Float64s(sorted)
	}

	q75 := stat.Quantile(0.75, stat.Empirical, sorted, sortedWeights)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, sortedWeights)
	iqr := (q75 - q25) / iqrNormalize

	stdDev := stat.StdDev(x, weights)

	if iqr > 0 {
		return math.Min(stdDev, iqr)
	}
	return stdDev
}

type weightedSamples struct {
	x       []float64
	weights []float64
}

func (s weightedSamples) Len() int           { return len(s.x) }
func (s weightedSamples) Less(i, j int) bool { return s.x[i] < s.x[j] }
func (s weightedSamples) Swap(i, j int) {
	s.x[i], s.x[j] = s.x[j], s.x[i]
	s.weights[i], s.weights[j] = s.weights[j], s.weights[i]
}
