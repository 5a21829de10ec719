package bayes

const (
	StepCredibleLevel = 0.95
)

var (
	// likely, very likely and 95%
	DefaultCredibleLevels = []float64{0.66, 0.9, 0.95}
)
