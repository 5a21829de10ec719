package density

import (
	"fmt"
	"math"

	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/model"
	"github.com/uyouii/sequential-bayes/utils"
	"gonum.org/v1/gonum/floats"
)

// KernelDensity is a weighted Gaussian kernel density estimate built from an
// ensemble of samples, used when evidence arrives as a set of estimates
// instead of a parametric family.
type KernelDensity struct {
	Samples []float64
	Weights []float64

	// An adjustment factor for the bw. Bandwidth becomes bw * adjust.
	bwAdjust float64

	bw     float64
	kernel *GaussianKernel
}

func NewKernelDensity(samples []float64, weights []float64,
	bwAdjust float64, clip *model.Clip) (*KernelDensity, error) {
	return NewKernelDensityWithBandWidth(samples, weights, nil, bwAdjust, clip)
}

// NewKernelDensityWithBandWidth uses selector to pick the bandwidth, nil means
// the normal reference rule.
func NewKernelDensityWithBandWidth(samples []float64, weights []float64, selector BandWidth,
	bwAdjust float64, clip *model.Clip) (*KernelDensity, error) {
	if len(weights) == 0 {
		weights = utils.InitOnes(len(samples))
	} else if len(weights) != len(samples) {
		return nil, fmt.Errorf("%d weights for %d samples: %w", len(weights), len(samples), common.ErrorShapeMismatch)
	}

	if clip != nil {
		samples, weights = Clip(samples, weights, clip)
	}

	if len(samples) < KdeMinSampleCnt {
		return nil, fmt.Errorf("kde needs at least %d samples, got %d: %w",
			KdeMinSampleCnt, len(samples), common.ErrorInvalidValue)
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("weight %d = %v: %w", i, w, common.ErrorInvalidValue)
		}
	}

	if bwAdjust <= 0 {
		bwAdjust = DefaultBandwidthAdjust
	}

	kernel := NewGaussianKernel()
	if selector == nil {
		selector = NewNormalReferenceBandWidth(kernel)
	}
	bw := selector.BandWidth(samples, weights) * bwAdjust
	if !(bw > 0) || math.IsInf(bw, 0) {
		return nil, fmt.Errorf("kde bandwidth %v: %w", bw, common.ErrorInvalidValue)
	}

	return &KernelDensity{
		Samples:  samples,
		Weights:  weights,
		bwAdjust: bwAdjust,
		bw:       bw,
		kernel:   kernel,
	}, nil
}

func (kde *KernelDensity) BandWidth() float64 {
	return kde.bw
}

func (kde *KernelDensity) Evaluate(grid model.Grid) (model.Density, error) {
	q := floats.Sum(kde.Weights)
	if q <= 0 {
		return nil, fmt.Errorf("kde weights sum to %v: %w", q, common.ErrorInvalidValue)
	}

	row := make([]float64, len(kde.Samples))
	dens := make(model.Density, len(grid))
	for i, x := range grid {
		for j, sample := range kde.Samples {
			row[j] = kde.kernel.Shape((sample - x) / kde.bw)
		}
		dens[i] = floats.Dot(row, kde.Weights) / (q * kde.bw)
	}
	return dens, nil
}

func (kde *KernelDensity) String() string {
	return fmt.Sprintf("kde(n=%d, bw=%v)", len(kde.Samples), kde.bw)
}

// Clip drops samples outside [clip.Lower, clip.Upper] together with their weights.
func Clip(x []float64, weights []float64, clip *model.Clip) ([]float64, []float64) {
	if len(x) != len(weights) || clip == nil {
		return x, weights
	}

	resX, resWeight := []float64{}, []float64{}
	for i := range x {
		if x[i] >= clip.Lower && x[i] <= clip.Upper {
			resX = append(resX, x[i])
			resWeight = append(resWeight, weights[i])
		}
	}
	return resX, resWeight
}
