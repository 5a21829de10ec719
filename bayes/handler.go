package bayes

import (
	"context"
	"fmt"

	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/grid"
	"github.com/uyouii/sequential-bayes/model"
	"github.com/uyouii/sequential-bayes/utils"
	"go.uber.org/zap"
)

// StepSummary describes the posterior right after one evidence source is applied.
type StepSummary struct {
	Step     int                       `json:"step"`
	Evidence string                    `json:"evidence"`
	Mean     float64                   `json:"mean"`
	Median   float64                   `json:"median"`
	Interval *model.ConfidenceInterval `json:"interval,omitempty"`
}

type Result struct {
	Grid       model.Grid      `json:"-"`
	Posteriors []model.Density `json:"-"`
	Steps      []*StepSummary  `json:"steps"`
	Summary    *model.Summary  `json:"summary"`
}

// Final is the posterior after every likelihood has been applied.
func (r *Result) Final() model.Density {
	if r == nil || len(r.Posteriors) == 0 {
		return nil
	}
	return r.Posteriors[len(r.Posteriors)-1]
}

// Updater combines a prior with named evidence and reports summaries.
type Updater struct {
	grid       model.Grid
	prior      model.Density
	evidences  []model.Evidence
	levels     []float64
	thresholds []float64
}

func NewUpdater(g model.Grid, prior model.Density, evidences []model.Evidence) (*Updater, error) {
	if err := grid.Validate(g); err != nil {
		return nil, err
	}
	if err := grid.CheckShape(g, prior); err != nil {
		return nil, fmt.Errorf("prior: %w", err)
	}
	for _, evidence := range evidences {
		if err := grid.CheckShape(g, evidence.Likelihood); err != nil {
			return nil, fmt.Errorf("evidence %q: %w", evidence.Name, err)
		}
	}

	return &Updater{
		grid:      g,
		prior:     prior,
		evidences: evidences,
		levels:    DefaultCredibleLevels,
	}, nil
}

func (u *Updater) SetCredibleLevels(levels []float64) {
	u.levels = levels
}

func (u *Updater) SetThresholds(thresholds []float64) {
	u.thresholds = thresholds
}

func (u *Updater) Run(ctx context.Context) (result *Result, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Updater.Run recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()))
			result, err = nil, fmt.Errorf("panic during update: %v: %w", r, common.ErrorInvalidValue)
		}
	}()

	likelihoods := make([]model.Density, 0, len(u.evidences))
	for _, evidence := range u.evidences {
		likelihoods = append(likelihoods, evidence.Likelihood)
	}

	posteriors, err := Run(u.prior, likelihoods, u.grid)
	if err != nil {
		logger.Error("sequential update failed", zap.Error(err))
		return nil, err
	}

	steps := make([]*StepSummary, 0, len(posteriors))
	for i, posterior := range posteriors {
		name := "prior"
		if len(u.evidences) > 0 {
			name = u.evidences[i].Name
		}
		step, err := u.stepSummary(i, name, posterior)
		if err != nil {
			return nil, err
		}
		logger.Info("posterior updated", zap.Int("step", i), zap.String("evidence", name),
			zap.Float64("mean", utils.FormatFloat(step.Mean, 3)),
			zap.Float64("median", utils.FormatFloat(step.Median, 3)))
		steps = append(steps, step)
	}

	final := posteriors[len(posteriors)-1]
	summary, err := Summarize(final, u.grid, u.levels, u.thresholds)
	if err != nil {
		logger.Error("Summarize failed", zap.Error(err))
		return nil, err
	}
	for _, tail := range summary.Tails {
		if tail.Clamped {
			logger.Warn("threshold outside grid, tail probability clamped",
				zap.Float64("threshold", tail.Threshold), zap.Stringer("direction", tail.Direction),
				zap.Float64("p", tail.Probability))
		}
	}

	logger.Info("sequential update finished", zap.Int("evidenceCnt", len(u.evidences)),
		zap.Float64("mean", utils.FormatFloat(summary.Mean, 3)),
		zap.Float64("median", utils.FormatFloat(summary.Median, 3)))

	return &Result{
		Grid:       u.grid,
		Posteriors: posteriors,
		Steps:      steps,
		Summary:    summary,
	}, nil
}

func (u *Updater) stepSummary(step int, name string, posterior model.Density) (*StepSummary, error) {
	mean, err := Mean(posterior, u.grid)
	if err != nil {
		return nil, err
	}
	median, err := Median(posterior, u.grid)
	if err != nil {
		return nil, err
	}
	interval, err := CredibleLevel(posterior, u.grid, StepCredibleLevel)
	if err != nil {
		return nil, err
	}
	return &StepSummary{
		Step:     step,
		Evidence: name,
		Mean:     mean,
		Median:   median,
		Interval: interval,
	}, nil
}
