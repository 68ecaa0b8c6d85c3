package distributions

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gamma is the positive continuous family with variance proportional to the
// squared mean. The dispersion is free: shape = 1/scale under the
// mean parameterization, so Var = scale * mu^2.
type Gamma struct {
	family
}

// NewGamma creates a Gamma family. Without WithScale the dispersion is
// estimated from residuals by Phi.
func NewGamma(opts ...Option) (*Gamma, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	f, err := newFreeScaleFamily(FamilyGamma, &s)
	if err != nil {
		return nil, err
	}
	return &Gamma{family: f}, nil
}

func (d *Gamma) PDF(y, mu []float64) ([]float64, error) {
	if err := checkSameLen("pdf", y, mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "pdf", "mu", mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "pdf", "y", y); err != nil {
		return nil, err
	}
	alpha := 1 / d.Scale()
	g := distuv.Gamma{Alpha: alpha}
	out := make([]float64, len(y))
	for i := range y {
		// Beta is the rate, alpha/mean, so the density has mean mu.
		g.Beta = alpha / mu[i]
		out[i] = g.Prob(y[i])
	}
	return out, nil
}

func (d *Gamma) Variance(mu []float64) ([]float64, error) {
	if err := checkPositive(d.name, "variance", "mu", mu); err != nil {
		return nil, err
	}
	out := make([]float64, len(mu))
	for i, m := range mu {
		out[i] = m * m
	}
	return out, nil
}

func (d *Gamma) Deviance(y, mu []float64, scaled bool) ([]float64, error) {
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
		out[i] = 2 * ((y[i]-mu[i])/mu[i] - math.Log(y[i]/mu[i]))
		if scaled {
			out[i] /= sc
		}
	}
	return out, nil
}

func (d *Gamma) Phi(y, mu []float64, edof float64) (float64, error) {
	return d.family.phi(d.Variance, y, mu, edof)
}

func (d *Gamma) Sample(mu []float64, src rand.Source) ([]float64, error) {
	if err := checkNotEmpty(d.name, "sample", mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "sample", "mu", mu); err != nil {
		return nil, err
	}
	alpha := 1 / d.Scale()
	g := distuv.Gamma{Alpha: alpha, Src: src}
	out := make([]float64, len(mu))
	for i, m := range mu {
		g.Beta = alpha / m
		out[i] = g.Rand()
	}
	return out, nil
}
