package density

type Family string

const (
	FamilyGamma  Family = "gamma"
	FamilyNormal Family = "normal"
	FamilyKde    Family = "kde"
)

const (
	// Bandwidth is multiplied by this factor unless overridden.
	DefaultBandwidthAdjust = 1.0

	// IQR of a standard normal.
	iqrNormalize = 1.349

	KdeMinSampleCnt = 2
)
