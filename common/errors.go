package common

import "errors"

var (
	ErrorInvalidValue      = errors.New("invalid value")
	ErrorDegenerateDensity = errors.New("degenerate density")
	ErrorShapeMismatch     = errors.New("shape mismatch")
	ErrorOutOfRange        = errors.New("out of range")

	// WarningThresholdOutOfRange is non-fatal: the value returned alongside it is
	// clamped to 0 or 1 and can be used.
	WarningThresholdOutOfRange = errors.New("threshold out of grid range")
)

func IsWarning(err error) bool {
	return errors.Is(err, WarningThresholdOutOfRange)
}
