package density

import (
	"fmt"
	"math"

	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution evaluates a probability density on a grid.
type Distribution interface {
	Evaluate(grid model.Grid) (model.Density, error)
}

// Gamma is parameterised by shape and scale (scale = 1/rate).
type Gamma struct {
	Shape float64
	Scale float64
}

func NewGamma(shape, scale float64) (*Gamma, error) {
	if !positive(shape) || !positive(scale) {
		return nil, fmt.Errorf("gamma shape %v scale %v: %w", shape, scale, common.ErrorInvalidValue)
	}
	return &Gamma{Shape: shape, Scale: scale}, nil
}

func (g *Gamma) Evaluate(grid model.Grid) (model.Density, error) {
	dist := distuv.Gamma{
		Alpha: g.Shape,
		Beta:  1 / g.Scale,
	}
	return evaluate(grid, dist.Prob), nil
}

func (g *Gamma) String() string {
	return fmt.Sprintf("gamma(shape=%v, scale=%v)", g.Shape, g.Scale)
}

type Normal struct {
	Mean float64
	Std  float64
}

func NewNormal(mean, std float64) (*Normal, error) {
	if math.IsNaN(mean) || math.IsInf(mean, 0) || !positive(std) {
		return nil, fmt.Errorf("normal mean %v std %v: %w", mean, std, common.ErrorInvalidValue)
	}
	return &Normal{Mean: mean, Std: std}, nil
}

func (n *Normal) Evaluate(grid model.Grid) (model.Density, error) {
	dist := distuv.Normal{
		Mu:    n.Mean,
		Sigma: n.Std,
	}
	return evaluate(grid, dist.Prob), nil
}

func (n *Normal) String() string {
	return fmt.Sprintf("normal(mean=%v, std=%v)", n.Mean, n.Std)
}

// New builds a distribution, params are (shape, scale) for gamma, (mean, std)
// for normal and the samples themselves for kde.
func New(family Family, params []float64) (Distribution, error) {
	switch family {
	case FamilyGamma, FamilyNormal:
		if len(params) != 2 {
			return nil, fmt.Errorf("%s needs 2 params, got %d: %w", family, len(params), common.ErrorInvalidValue)
		}
	}

	var (
		dist Distribution
		err  error
	)
	switch family {
	case FamilyGamma:
		dist, err = NewGamma(params[0], params[1])
	case FamilyNormal:
		dist, err = NewNormal(params[0], params[1])
	case FamilyKde:
		dist, err = NewKernelDensity(params, nil, DefaultBandwidthAdjust, nil)
	default:
		err = fmt.Errorf("unknown distribution family %q: %w", family, common.ErrorInvalidValue)
	}
	if err != nil {
		return nil, err
	}
	return dist, nil
}

func evaluate(grid model.Grid, prob func(float64) float64) model.Density {
	res := make(model.Density, len(grid))
	for i, x := range grid {
		res[i] = prob(x)
	}
	return res
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
