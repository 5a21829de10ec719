package bayes

import (
	"fmt"
	"sort"

	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/grid"
	"github.com/uyouii/sequential-bayes/model"
	"github.com/uyouii/sequential-bayes/utils"
	"gonum.org/v1/gonum/floats"
)

// The statistics below use a Riemann sum (cumulative sum times the average
// grid spacing) rather than the trapezoidal rule used for normalization.
// Quantiles are first-crossing grid points, so their resolution is the grid's.

// Mean is sum(grid[i] * density[i]) * average spacing.
func Mean(density model.Density, g model.Grid) (float64, error) {
	if err := checkDensity(g, density); err != nil {
		return 0, err
	}
	return floats.Dot(g, density) * grid.AverageSpacing(g), nil
}

// Quantile returns the first grid point at which the cumulative mass reaches q.
// q == 1, or a cumulative mass that never reaches q, yields the grid maximum.
func Quantile(density model.Density, g model.Grid, q float64) (float64, error) {
	if !(q >= 0 && q <= 1) {
		return 0, fmt.Errorf("quantile %v not in [0, 1]: %w", q, common.ErrorOutOfRange)
	}
	if err := checkDensity(g, density); err != nil {
		return 0, err
	}
	return quantile(utils.CumSum(density, grid.AverageSpacing(g)), g, q), nil
}

func quantile(cdf []float64, g model.Grid, q float64) float64 {
	if q >= 1 {
		return g.Max()
	}
	i := sort.SearchFloat64s(cdf, q)
	if i >= len(g) {
		return g.Max()
	}
	return g[i]
}

func Median(density model.Density, g model.Grid) (float64, error) {
	return Quantile(density, g, 0.5)
}

// CredibleInterval returns the grid points where the cumulative mass first
// reaches lowerTail and upperTail, e.g. 0.025 and 0.975 for a 95% interval.
func CredibleInterval(density model.Density, g model.Grid, lowerTail, upperTail float64) (float64, float64, error) {
	if !(lowerTail >= 0 && lowerTail <= 1) || !(upperTail >= 0 && upperTail <= 1) {
		return 0, 0, fmt.Errorf("tails (%v, %v) not in [0, 1]: %w", lowerTail, upperTail, common.ErrorOutOfRange)
	}
	if lowerTail >= upperTail {
		return 0, 0, fmt.Errorf("lower tail %v >= upper tail %v: %w", lowerTail, upperTail, common.ErrorOutOfRange)
	}
	if err := checkDensity(g, density); err != nil {
		return 0, 0, err
	}

	cdf := utils.CumSum(density, grid.AverageSpacing(g))
	return quantile(cdf, g, lowerTail), quantile(cdf, g, upperTail), nil
}

// CredibleLevel is the central interval holding level of the mass.
func CredibleLevel(density model.Density, g model.Grid, level float64) (*model.ConfidenceInterval, error) {
	if !(level > 0 && level <= 1) {
		return nil, fmt.Errorf("credible level %v not in (0, 1]: %w", level, common.ErrorOutOfRange)
	}
	lowerTail, upperTail := (1-level)/2, (1+level)/2
	lower, upper, err := CredibleInterval(density, g, lowerTail, upperTail)
	if err != nil {
		return nil, err
	}
	return &model.ConfidenceInterval{
		Level: level,
		Lower: &model.QuantileValue{Quantile: lowerTail, Value: lower},
		Upper: &model.QuantileValue{Quantile: upperTail, Value: upper},
	}, nil
}

// TailProbability integrates density over the grid points strictly above (or
// below) threshold with the trapezoidal rule. A threshold outside the grid
// clamps the result to 0 or 1 and returns it with WarningThresholdOutOfRange.
func TailProbability(density model.Density, g model.Grid, threshold float64, direction model.Direction) (float64, error) {
	if direction != model.Above && direction != model.Below {
		return 0, fmt.Errorf("direction %v: %w", direction, common.ErrorInvalidValue)
	}
	if err := checkDensity(g, density); err != nil {
		return 0, err
	}

	switch {
	case threshold < g.Min():
		return clamp(direction == model.Above), fmt.Errorf("threshold %v below grid minimum %v: %w",
			threshold, g.Min(), common.WarningThresholdOutOfRange)
	case threshold > g.Max():
		return clamp(direction == model.Below), fmt.Errorf("threshold %v above grid maximum %v: %w",
			threshold, g.Max(), common.WarningThresholdOutOfRange)
	}

	subGrid, subDensity := model.Grid{}, model.Density{}
	for i, x := range g {
		if (direction == model.Above && x > threshold) || (direction == model.Below && x < threshold) {
			subGrid = append(subGrid, x)
			subDensity = append(subDensity, density[i])
		}
	}
	if len(subGrid) < 2 {
		return 0, nil
	}
	return grid.Trapezoid(subDensity, subGrid)
}

func clamp(all bool) float64 {
	if all {
		return 1
	}
	return 0
}

// Summarize derives mean, median, central credible intervals for levels and
// upper/lower tail probabilities for thresholds. Out-of-range thresholds are
// reported as Clamped instead of failing.
func Summarize(density model.Density, g model.Grid, levels []float64, thresholds []float64) (*model.Summary, error) {
	mean, err := Mean(density, g)
	if err != nil {
		return nil, err
	}
	median, err := Median(density, g)
	if err != nil {
		return nil, err
	}

	summary := &model.Summary{
		Mean:      mean,
		Median:    median,
		Intervals: map[string]*model.ConfidenceInterval{},
		Tails:     []*model.TailProbability{},
	}

	for _, level := range levels {
		interval, err := CredibleLevel(density, g, level)
		if err != nil {
			return nil, err
		}
		summary.Intervals[model.LevelKey(level)] = interval
	}

	for _, threshold := range thresholds {
		for _, direction := range []model.Direction{model.Above, model.Below} {
			p, err := TailProbability(density, g, threshold, direction)
			if err != nil && !common.IsWarning(err) {
				return nil, err
			}
			summary.Tails = append(summary.Tails, &model.TailProbability{
				Threshold:   threshold,
				Direction:   direction,
				Probability: p,
				Clamped:     err != nil,
			})
		}
	}

	return summary, nil
}
