package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/density"
	"github.com/uyouii/sequential-bayes/grid"
	"github.com/uyouii/sequential-bayes/model"
	"github.com/uyouii/sequential-bayes/utils"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var scenarioValidate = validator.New()

// Scenario describes one sequential update: the grid, a prior and the
// evidence in the order it is applied.
type Scenario struct {
	Name        string             `yaml:"name" validate:"required"`
	Grid        GridConfig         `yaml:"grid"`
	Prior       DistributionConfig `yaml:"prior"`
	Likelihoods []LikelihoodConfig `yaml:"likelihoods" validate:"dive"`
	Summary     SummaryConfig      `yaml:"summary"`
}

type GridConfig struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max" validate:"gtfield=Min"`
	Points int     `yaml:"points" validate:"gte=2"`
}

// DistributionConfig params are (shape, scale) for gamma, (mean, std) for
// normal. A kde distribution reads Samples and the optional Weights, Clip and
// a fixed Bandwidth; without one the normal reference rule is used.
type DistributionConfig struct {
	Family          density.Family `yaml:"family" validate:"oneof=gamma normal kde"`
	Params          []float64      `yaml:"params,omitempty"`
	Samples         []float64      `yaml:"samples,omitempty"`
	Weights         []float64      `yaml:"weights,omitempty"`
	Bandwidth       float64        `yaml:"bandwidth,omitempty" validate:"gte=0"`
	BandwidthAdjust float64        `yaml:"bandwidth_adjust,omitempty" validate:"gte=0"`
	Clip            *model.Clip    `yaml:"clip,omitempty"`
}

type LikelihoodConfig struct {
	Name               string `yaml:"name" validate:"required"`
	DistributionConfig `yaml:",inline"`
}

type SummaryConfig struct {
	Levels     []float64 `yaml:"levels" validate:"dive,gt=0,lte=1"`
	Thresholds []float64 `yaml:"thresholds"`
}

// Load reads and validates a YAML scenario file.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := utils.GetLogger(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read scenario failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	scenario, err := Parse(data)
	if err != nil {
		logger.Error("parse scenario failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	logger.Info("scenario loaded", zap.String("name", scenario.Name),
		zap.Int("likelihoodCnt", len(scenario.Likelihoods)))
	return scenario, nil
}

func Parse(data []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("decode scenario: %v: %w", err, common.ErrorInvalidValue)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *Scenario) Validate() error {
	if err := scenarioValidate.Struct(s); err != nil {
		return fmt.Errorf("scenario %q: %v: %w", s.Name, err, common.ErrorInvalidValue)
	}
	return nil
}

func (d *DistributionConfig) Distribution() (density.Distribution, error) {
	if d.Family == density.FamilyKde {
		var selector density.BandWidth
		if d.Bandwidth > 0 {
			selector = density.FixedBandWidth(d.Bandwidth)
		}
		return density.NewKernelDensityWithBandWidth(d.Samples, d.Weights, selector, d.BandwidthAdjust, d.Clip)
	}
	return density.New(d.Family, d.Params)
}

// Build evaluates the prior and every likelihood on the scenario grid.
func (s *Scenario) Build() (model.Grid, model.Density, []model.Evidence, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, nil, err
	}

	g := grid.Linspace(s.Grid.Min, s.Grid.Max, s.Grid.Points)

	prior, err := evaluate(&s.Prior, g)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("prior: %w", err)
	}

	evidences := make([]model.Evidence, 0, len(s.Likelihoods))
	for i := range s.Likelihoods {
		likelihood := &s.Likelihoods[i]
		dens, err := evaluate(&likelihood.DistributionConfig, g)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("likelihood %q: %w", likelihood.Name, err)
		}
		evidences = append(evidences, model.Evidence{Name: likelihood.Name, Likelihood: dens})
	}

	return g, prior, evidences, nil
}

func evaluate(d *DistributionConfig, g model.Grid) (model.Density, error) {
	dist, err := d.Distribution()
	if err != nil {
		return nil, err
	}
	return dist.Evaluate(g)
}
