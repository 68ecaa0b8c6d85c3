package distributions

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gamfit/gamfit/internal/utils"
)

// Poisson is the count family with variance equal to the mean. The
// dispersion is 1 by definition and is never residual-estimated.
type Poisson struct {
	family
}

// NewPoisson creates a Poisson family.
func NewPoisson(opts ...Option) (*Poisson, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	if s.levels != nil {
		return nil, &ConfigError{Family: FamilyPoisson, Msg: errLevelsNotBinomial}
	}
	f, err := newFixedScaleFamily(FamilyPoisson, &s)
	if err != nil {
		return nil, err
	}
	return &Poisson{family: f}, nil
}

func (d *Poisson) PDF(y, mu []float64) ([]float64, error) {
	if err := checkSameLen("pdf", y, mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "pdf", "mu", mu); err != nil {
		return nil, err
	}
	if err := checkCounts(d.name, "pdf", y); err != nil {
		return nil, err
	}
	pois := distuv.Poisson{}
	out := make([]float64, len(y))
	for i := range y {
		pois.Lambda = mu[i]
		out[i] = pois.Prob(y[i])
	}
	return out, nil
}

func (d *Poisson) Variance(mu []float64) ([]float64, error) {
	if err := checkPositive(d.name, "variance", "mu", mu); err != nil {
		return nil, err
	}
	out := make([]float64, len(mu))
	copy(out, mu)
	return out, nil
}

func (d *Poisson) Deviance(y, mu []float64, scaled bool) ([]float64, error) {
	if err := checkSameLen("deviance", y, mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "deviance", "mu", mu); err != nil {
		return nil, err
	}
	if err := checkNonNegative(d.name, "deviance", "y", y); err != nil {
		return nil, err
	}
	lt, err := utils.YLogYdU(y, mu)
	if err != nil {
		return nil, err
	}
	sc := d.Scale()
	out := make([]float64, len(y))
	for i := range out {
		out[i] = 2 * (lt[i] - (y[i] - mu[i]))
		if scaled {
			out[i] /= sc
		}
	}
	return out, nil
}

func (d *Poisson) Phi(y, mu []float64, edof float64) (float64, error) {
	return d.family.phi(d.Variance, y, mu, edof)
}

func (d *Poisson) Sample(mu []float64, src rand.Source) ([]float64, error) {
	if err := checkNotEmpty(d.name, "sample", mu); err != nil {
		return nil, err
	}
	if err := checkPositive(d.name, "sample", "mu", mu); err != nil {
		return nil, err
	}
	pois := distuv.Poisson{Src: src}
	out := make([]float64, len(mu))
	for i, m := range mu {
		pois.Lambda = m
		out[i] = pois.Rand()
	}
	return out, nil
}
