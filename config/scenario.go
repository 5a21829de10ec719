package config

import (
	"context"

	"github.com/uyouii/sequential-bayes/bayes"
	"github.com/uyouii/sequential-bayes/density"
	"github.com/uyouii/sequential-bayes/utils"
	"go.uber.org/zap"
)

// ClimateSensitivity is the equilibrium climate sensitivity example: a gamma
// prior updated by process, historical and two paleoclimate lines of evidence.
func ClimateSensitivity() *Scenario {
	return &Scenario{
		Name: "climate-sensitivity",
		Grid: GridConfig{Min: 0, Max: 10, Points: 1000},
		Prior: DistributionConfig{
			Family: density.FamilyGamma,
			Params: []float64{3.2, 1.36},
		},
		Likelihoods: []LikelihoodConfig{
			{Name: "process", DistributionConfig: DistributionConfig{Family: density.FamilyGamma, Params: []float64{8.5, 0.40}}},
			{Name: "historical", DistributionConfig: DistributionConfig{Family: density.FamilyNormal, Params: []float64{2.7, 1.7}}},
			{Name: "paleo-cold", DistributionConfig: DistributionConfig{Family: density.FamilyNormal, Params: []float64{3.0, 1.0}}},
			{Name: "paleo-warm", DistributionConfig: DistributionConfig{Family: density.FamilyNormal, Params: []float64{3.0, 0.675}}},
		},
		Summary: SummaryConfig{
			Levels:     []float64{0.66, 0.9, 0.95},
			Thresholds: []float64{1.5, 4.5},
		},
	}
}

// Updater builds a bayes.Updater for the scenario.
func (s *Scenario) Updater() (*bayes.Updater, error) {
	g, prior, evidences, err := s.Build()
	if err != nil {
		return nil, err
	}

	updater, err := bayes.NewUpdater(g, prior, evidences)
	if err != nil {
		return nil, err
	}
	if len(s.Summary.Levels) > 0 {
		updater.SetCredibleLevels(s.Summary.Levels)
	}
	updater.SetThresholds(s.Summary.Thresholds)
	return updater, nil
}

func (s *Scenario) Run(ctx context.Context) (*bayes.Result, error) {
	logger := utils.GetLogger(ctx).With(zap.String("scenario", s.Name))
	ctx = utils.WithLogger(ctx, logger)

	updater, err := s.Updater()
	if err != nil {
		logger.Error("build scenario failed", zap.Error(err))
		return nil, err
	}
	return updater.Run(ctx)
}
