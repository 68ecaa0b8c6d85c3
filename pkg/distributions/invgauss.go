package distributions

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// InvGauss is the inverse Gaussian (Wald) family with variance proportional
// to the cubed mean: lambda = 1/scale, so Var = scale * mu^3.
type InvGauss struct {
	family
}

// NewInvGauss creates an inverse Gaussian family. Without WithScale the
// dispersion is estimated from residuals by Phi.
func NewInvGauss(opts ...Option) (*InvGauss, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	f, err := newFreeScaleFamily(FamilyInvGauss, &s)
	if err != nil {
		return nil, err
	}
	return &InvGauss{family: f}, nil
}

func (d *InvGauss) PDF(y, mu []float64) ([]float64, error) {
	if err := checkSameLen("pdf", y, mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "pdf", "mu", mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "pdf", "y", y); err != nil {
		return nil, err
	}
	lambda := 1 / d.Scale()
	out := make([]float64, len(y))
	for i := range y {
		yi, m := y[i], mu[i]
		r := yi - m
		out[i] = math.Sqrt(lambda/(2*math.Pi*yi*yi*yi)) *
			math.Exp(-lambda*r*r/(2*m*m*yi))
	}
	return out, nil
}

func (d *InvGauss) Variance(mu []float64) ([]float64, error) {
	if err := checkPositive(d.name, "variance", "mu", mu); err != nil {
		return nil, err
	}
	out := make([]float64, len(mu))
	for i, m := range mu {
		out[i] = m * m * m
	}
	return out, nil
}

func (d *InvGauss) Deviance(y, mu []float64, scaled bool) ([]float64, error) {
	if err := checkSameLen("deviance", y, mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "deviance", "mu", mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "deviance", "y", y); err != nil {
		return nil, err
	}
	sc := d.Scale()
	out := make([]float64, len(y))
	for i := range y {
		r := y[i] - mu[i]
		out[i] = r * r / (mu[i] * mu[i] * y[i])
		if scaled {
			out[i] /= sc
		}
	}
	return out, nil
}

func (d *InvGauss) Phi(y, mu []float64, edof float64) (float64, error) {
	return d.family.phi(d.Variance, y, mu, edof)
}

// Sample draws Wald variates via the Michael-Schucany-Haas transform: a
// root of the related chi-squared equation is chosen with the probability
// that preserves the inverse Gaussian law.
func (d *InvGauss) Sample(mu []float64, src rand.Source) ([]float64, error) {
	if err := checkNotEmpty(d.name, "sample", mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "sample", "mu", mu); err != nil {
		return nil, err
	}
	lambda := 1 / d.Scale()
	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	unif := rand.New(src)
	out := make([]float64, len(mu))
	for i, m := range mu {
		n := norm.Rand()
		w := n * n
		x := m + m*m*w/(2*lambda) -
			m/(2*lambda)*math.Sqrt(4*m*lambda*w+m*m*w*w)
		if unif.Float64() <= m/(m+x) {
			out[i] = x
		} else {
			out[i] = m * m / x
		}
	}
	return out, nil
}
