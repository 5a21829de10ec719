package grid

import (
	"fmt"
	"math"

	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/model"
	"gonum.org/v1/gonum/integrate"
)

// Linspace returns num evenly spaced points over [start, stop], both ends included.
func Linspace(start, stop float64, num int) model.Grid {
	switch {
	case num <= 0:
		return model.Grid{}
	case num == 1:
		return model.Grid{start}
	}
	step := (stop - start) / float64(num-1)
	grid := make(model.Grid, num)
	for i := 0; i < num; i++ {
		grid[i] = start + float64(i)*step
	}
	grid[num-1] = stop
	return grid
}

// Validate checks that grid has at least two finite, strictly increasing points.
func Validate(grid model.Grid) error {
	if len(grid) < 2 {
		return fmt.Errorf("grid needs at least 2 points, got %d: %w", len(grid), common.ErrorInvalidValue)
	}
	for i, x := range grid {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("grid[%d] = %v is not finite: %w", i, x, common.ErrorInvalidValue)
		}
		if i > 0 && x <= grid[i-1] {
			return fmt.Errorf("grid not strictly increasing at %d: %w", i, common.ErrorInvalidValue)
		}
	}
	return nil
}

func AverageSpacing(grid model.Grid) float64 {
	if len(grid) < 2 {
		return 0
	}
	return (grid.Max() - grid.Min()) / float64(len(grid)-1)
}

// CheckShape fails with ErrorShapeMismatch unless every density has the grid's length.
func CheckShape(grid model.Grid, densities ...model.Density) error {
	for i, density := range densities {
		if len(density) != len(grid) {
			return fmt.Errorf("density %d has %d points, grid has %d: %w",
				i, len(density), len(grid), common.ErrorShapeMismatch)
		}
	}
	return nil
}

// Trapezoid integrates values sampled on grid with the trapezoidal rule.
func Trapezoid(values model.Density, grid model.Grid) (float64, error) {
	if err := CheckShape(grid, values); err != nil {
		return 0, err
	}
	if len(grid) < 2 {
		return 0, nil
	}
	return integrate.Trapezoidal(grid, values), nil
}
