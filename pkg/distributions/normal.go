package distributions

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal is the Gaussian family: identity variance function, squared-error
// deviance, free dispersion equal to the residual variance.
type Normal struct {
	family
}

// NewNormal creates a Normal family. Without WithScale the dispersion is
// estimated from residuals by Phi.
func NewNormal(opts ...Option) (*Normal, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	f, err := newFreeScaleFamily(FamilyNormal, &s)
	if err != nil {
		return nil, err
	}
	return &Normal{family: f}, nil
}

func (d *Normal) PDF(y, mu []float64) ([]float64, error) {
	if err := checkSameLen("pdf", y, mu); err != nil {
		return nil, err
	}
	norm := distuv.Normal{Sigma: math.Sqrt(d.Scale())}
	out := make([]float64, len(y))
	for i := range y {
		norm.Mu = mu[i]
		out[i] = norm.Prob(y[i])
	}
	return out, nil
}

func (d *Normal) Variance(mu []float64) ([]float64, error) {
	out := make([]float64, len(mu))
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

func (d *Normal) Deviance(y, mu []float64, scaled bool) ([]float64, error) {
	if err := checkSameLen("deviance", y, mu); err != nil {
		return nil, err
	}
	sc := d.Scale()
	out := make([]float64, len(y))
	for i := range y {
		r := y[i] - mu[i]
		out[i] = r * r
		if scaled {
			out[i] /= sc
		}
	}
	return out, nil
}

func (d *Normal) Phi(y, mu []float64, edof float64) (float64, error) {
	return d.family.phi(d.Variance, y, mu, edof)
}

func (d *Normal) Sample(mu []float64, src rand.Source) ([]float64, error) {
	if err := checkNotEmpty(d.name, "sample", mu); err != nil {
		return nil, err
	}
	norm := distuv.Normal{Sigma: math.Sqrt(d.Scale()), Src: src}
	out := make([]float64, len(mu))
	for i, m := range mu {
		norm.Mu = m
		out[i] = norm.Rand()
	}
	return out, nil
}
