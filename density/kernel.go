package density

import "math"

type Kernel interface {
	NormalReferenceConstant() float64
}

// GaussianKernel is a second order Gaussian smoothing kernel.
type GaussianKernel struct {
	referenceConstant float64
}

func NewGaussianKernel() *GaussianKernel {
	// R(K) = 1/(2*sqrt(pi)), second moment 1
	return &GaussianKernel{
		referenceConstant: referenceConstant(2, 0.5/math.Sqrt(math.Pi), 1),
	}
}

func (k *GaussianKernel) Shape(x float64) float64 {
	return 0.3989422804014327 * math.Exp(-x*x/2.0)
}

// NormalReferenceConstant is the C in bw = C * sigma * n^(-1/5).
func (k *GaussianKernel) NormalReferenceConstant() float64 {
	return k.referenceConstant
}

// referenceConstant minimises AMISE for a kernel of the given order, roughness
// and order-th moment when the data are normal.
func referenceConstant(order int, roughness, moment float64) float64 {
	nu := float64(order)
	fact := math.Gamma(nu + 1)
	ratio := math.Sqrt(math.Pi) * fact * fact * fact * roughness /
		(2 * nu * math.Gamma(2*nu+1) * moment * moment)
	return 2 * math.Pow(ratio, 1/(2*nu+1))
}
