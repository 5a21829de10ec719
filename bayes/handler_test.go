package bayes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/model"
	"github.com/uyouii/sequential-bayes/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestUpdater(t *testing.T) *Updater {
	t.Helper()
	g, prior, likelihoods := climateSensitivity(t)
	names := []string{"process", "historical", "paleo-cold", "paleo-warm"}
	evidences := make([]model.Evidence, len(likelihoods))
	for i := range likelihoods {
		evidences[i] = model.Evidence{Name: names[i], Likelihood: likelihoods[i]}
	}
	updater, err := NewUpdater(g, prior, evidences)
	require.NoError(t, err)
	return updater
}

func TestUpdaterRun(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := utils.WithLogger(context.Background(), zap.New(core))

	updater := newTestUpdater(t)
	updater.SetThresholds([]float64{4.5, 20})

	result, err := updater.Run(ctx)
	require.NoError(t, err)

	require.Len(t, result.Posteriors, 4)
	require.Len(t, result.Steps, 4)
	assert.Equal(t, "process", result.Steps[0].Evidence)
	assert.Equal(t, "paleo-warm", result.Steps[3].Evidence)
	assert.Equal(t, result.Posteriors[3], result.Final())

	for i := 1; i < len(result.Steps); i++ {
		assert.Less(t, result.Steps[i].Interval.Width(), result.Steps[i-1].Interval.Width())
	}

	assert.InDelta(t, 3.0, result.Summary.Mean, 0.05)
	assert.InDelta(t, result.Steps[3].Mean, result.Summary.Mean, 1e-12)
	for _, level := range DefaultCredibleLevels {
		_, ok := result.Summary.GetInterval(level)
		assert.True(t, ok, "level %v", level)
	}

	assert.Equal(t, 4, logs.FilterMessage("posterior updated").Len())
	assert.Equal(t, 1, logs.FilterMessage("sequential update finished").Len())
	// 20 lies above the grid for both directions
	assert.Equal(t, 2, logs.FilterMessage("threshold outside grid, tail probability clamped").Len())
}

func TestUpdaterRunPriorOnly(t *testing.T) {
	g, prior, _ := climateSensitivity(t)
	updater, err := NewUpdater(g, prior, nil)
	require.NoError(t, err)

	result, err := updater.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "prior", result.Steps[0].Evidence)
	assert.InDelta(t, 4.13, result.Summary.Mean, 0.05)
}

func TestNewUpdaterErrors(t *testing.T) {
	g := model.Grid{0, 1, 2}

	_, err := NewUpdater(g, model.Density{1, 1}, nil)
	assert.ErrorIs(t, err, common.ErrorShapeMismatch)

	_, err = NewUpdater(g, model.Density{1, 1, 1}, []model.Evidence{{Name: "short", Likelihood: model.Density{1}}})
	assert.ErrorIs(t, err, common.ErrorShapeMismatch)
	assert.Contains(t, err.Error(), "short")

	_, err = NewUpdater(model.Grid{0}, model.Density{1}, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestUpdaterRunDegenerate(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	ctx := utils.WithLogger(context.Background(), zap.New(core))

	g := model.Grid{0, 1, 2, 3}
	updater, err := NewUpdater(g, model.Density{1, 1, 0, 0},
		[]model.Evidence{{Name: "disjoint", Likelihood: model.Density{0, 0, 1, 1}}})
	require.NoError(t, err)

	_, err = updater.Run(ctx)
	assert.ErrorIs(t, err, common.ErrorDegenerateDensity)
	assert.Equal(t, 1, logs.Len())
}
