package density

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/sequential-bayes/common"
	"github.com/uyouii/sequential-bayes/grid"
	"github.com/uyouii/sequential-bayes/model"
)

func TestGammaEvaluate(t *testing.T) {
	g := grid.Linspace(0, 10, 1000)
	gamma, err := NewGamma(3.2, 1.36)
	require.NoError(t, err)

	dens, err := gamma.Evaluate(g)
	require.NoError(t, err)
	require.Len(t, dens, len(g))
	assert.Equal(t, 0.0, dens[0], "gamma density is zero at the origin for shape > 1")

	// mode of gamma is (shape-1)*scale
	mode := (3.2 - 1) * 1.36
	best := 0
	for i := range dens {
		if dens[i] > dens[best] {
			best = i
		}
	}
	assert.InDelta(t, mode, g[best], 0.02)
}

func TestNormalEvaluate(t *testing.T) {
	g := grid.Linspace(-10, 10, 2001)
	normal, err := NewNormal(0, 1)
	require.NoError(t, err)

	dens, err := normal.Evaluate(g)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), dens[1000], 1e-12)

	area, err := grid.Trapezoid(dens, g)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, area, 1e-6)
}

func TestInvalidParams(t *testing.T) {
	_, err := NewGamma(0, 1)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
	_, err = NewGamma(1, -1)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
	_, err = NewNormal(0, 0)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
	_, err = NewNormal(math.NaN(), 1)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestNew(t *testing.T) {
	dist, err := New(FamilyGamma, []float64{8.5, 0.4})
	require.NoError(t, err)
	assert.Equal(t, &Gamma{Shape: 8.5, Scale: 0.4}, dist)

	dist, err = New(FamilyNormal, []float64{2.7, 1.7})
	require.NoError(t, err)
	assert.Equal(t, &Normal{Mean: 2.7, Std: 1.7}, dist)

	_, err = New(FamilyNormal, []float64{2.7})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = New(Family("beta"), []float64{1, 1})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	dist, err = New(FamilyKde, []float64{2.5, 3, 3.5, 4})
	require.NoError(t, err)
	assert.IsType(t, &KernelDensity{}, dist)
}

func TestKernelDensity(t *testing.T) {
	samples := []float64{2.1, 2.6, 2.9, 3.0, 3.2, 3.4, 3.9, 4.4}
	kde, err := NewKernelDensity(samples, nil, 1.0, nil)
	require.NoError(t, err)
	assert.Greater(t, kde.BandWidth(), 0.0)

	g := grid.Linspace(-5, 12, 2000)
	dens, err := kde.Evaluate(g)
	require.NoError(t, err)

	area, err := grid.Trapezoid(dens, g)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, area, 1e-4)
	for _, v := range dens {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestKernelDensityClipAndErrors(t *testing.T) {
	samples := []float64{1, 2, 3, 50}
	kde, err := NewKernelDensity(samples, []float64{1, 1, 1, 1}, 1.0, &model.Clip{Lower: 0, Upper: 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, kde.Samples)

	_, err = NewKernelDensity(samples, []float64{1}, 1.0, nil)
	assert.ErrorIs(t, err, common.ErrorShapeMismatch)

	_, err = NewKernelDensity([]float64{1}, nil, 1.0, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	_, err = NewKernelDensity([]float64{2, 2, 2}, nil, 1.0, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue, "zero spread gives a zero bandwidth")
}

func TestKernelDensityFixedBandWidth(t *testing.T) {
	samples := []float64{2.1, 2.6, 2.9, 3.0, 3.2, 3.4, 3.9, 4.4}

	kde, err := NewKernelDensityWithBandWidth(samples, nil, FixedBandWidth(0.3), 2.0, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, kde.BandWidth(), 1e-12)

	reference, err := NewKernelDensityWithBandWidth(samples, nil, nil, 1.0, nil)
	require.NoError(t, err)
	byDefault, err := NewKernelDensity(samples, nil, 1.0, nil)
	require.NoError(t, err)
	assert.Equal(t, byDefault.BandWidth(), reference.BandWidth())

	_, err = NewKernelDensityWithBandWidth(samples, nil, FixedBandWidth(0), 1.0, nil)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestNormalReferenceConstant(t *testing.T) {
	// 1.059 for the Gaussian kernel (Silverman)
	assert.InDelta(t, 1.059, NewGaussianKernel().NormalReferenceConstant(), 1e-3)
}
