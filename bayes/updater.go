package bayes

import (
	"fmt"
	"math"

	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/grid"
	"github.com/uyouii/sequential-bayes/model"
	"github.com/uyouii/sequential-bayes/utils"
)

// Normalize divides density by its trapezoidal integral over g.
func Normalize(density model.Density, g model.Grid) (model.Density, error) {
	if err := checkDensity(g, density); err != nil {
		return nil, err
	}

	integral, err := grid.Trapezoid(density, g)
	if err != nil {
		return nil, err
	}
	if !(integral > 0) || math.IsInf(integral, 0) {
		return nil, fmt.Errorf("density integrates to %v: %w", integral, common.ErrorDegenerateDensity)
	}

	return utils.ListScale(density, 1/integral), nil
}

// Update applies one likelihood to the current posterior and renormalizes.
func Update(posterior, likelihood model.Density, g model.Grid) (model.Density, error) {
	if err := grid.CheckShape(g, posterior, likelihood); err != nil {
		return nil, err
	}
	if err := checkDensity(g, posterior); err != nil {
		return nil, fmt.Errorf("posterior: %w", err)
	}
	if err := checkDensity(g, likelihood); err != nil {
		return nil, fmt.Errorf("likelihood: %w", err)
	}
	return Normalize(utils.ListMul(posterior, likelihood), g)
}

// Run normalizes the prior and folds Update over likelihoods in order,
// returning one posterior per likelihood. With no likelihoods the result is
// the normalized prior alone.
func Run(prior model.Density, likelihoods []model.Density, g model.Grid) ([]model.Density, error) {
	if err := grid.Validate(g); err != nil {
		return nil, err
	}
	if err := grid.CheckShape(g, append([]model.Density{prior}, likelihoods...)...); err != nil {
		return nil, err
	}

	posterior, err := Normalize(prior, g)
	if err != nil {
		return nil, fmt.Errorf("prior: %w", err)
	}
	if len(likelihoods) == 0 {
		return []model.Density{posterior}, nil
	}

	res := make([]model.Density, 0, len(likelihoods))
	for i, likelihood := range likelihoods {
		posterior, err = Update(posterior, likelihood, g)
		if err != nil {
			return nil, fmt.Errorf("likelihood %d: %w", i, err)
		}
		res = append(res, posterior)
	}
	return res, nil
}

func checkDensity(g model.Grid, density model.Density) error {
	if err := grid.Validate(g); err != nil {
		return err
	}
	if err := grid.CheckShape(g, density); err != nil {
		return err
	}
	for i, v := range density {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("density[%d] = %v: %w", i, v, common.ErrorDegenerateDensity)
		}
		if v < 0 {
			return fmt.Errorf("density[%d] = %v: %w", i, v, common.ErrorInvalidValue)
		}
	}
	return nil
}
