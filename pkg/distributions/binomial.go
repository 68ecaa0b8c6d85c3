package distributions

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gamfit/gamfit/internal/utils"
)

const defaultLevels = 1

// Binomial is the family of counts out of a fixed number of Bernoulli
// trials per observation. The dispersion is 1 by definition and is never
// residual-estimated.
type Binomial struct {
	family
	levels int
}

// NewBinomial creates a Binomial family. Omitting WithLevels means one
// trial per observation (the Bernoulli case); an explicit non-positive
// levels is a configuration error.
func NewBinomial(opts ...Option) (*Binomial, error) {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	levels := defaultLevels
	if s.levels != nil {
		if *s.levels < 1 {
			return nil, &ConfigError{Family: FamilyBinomial,
				Msg: fmt.Sprintf(errNonPositiveLevelsFmt, *s.levels)}
		}
		levels = *s.levels
	}
	f, err := newFixedScaleFamily(FamilyBinomial, &s)
	if err != nil {
		return nil, err
	}
	return &Binomial{family: f, levels: levels}, nil
}

// Levels returns the number of Bernoulli trials per observation.
func (d *Binomial) Levels() int { return d.levels }

func (d *Binomial) Params() map[string]interface{} {
	p := d.family.Params()
	p["levels"] = d.levels
	return p
}

func (d *Binomial) PDF(y, mu []float64) ([]float64, error) {
	if err := checkSameLen("pdf", y, mu); err != nil {
		return nil, err
	}
	n := float64(d.levels)
	if err := checkRange(d.name, "pdf", "mu", mu, n, d.levels); err != nil {
		return nil, err
	}
	if err := checkCounts(d.name, "pdf", y); err != nil {
		return nil, err
	}
	if err := checkRange(d.name, "pdf", "y", y, n, d.levels); err != nil {
		return nil, err
	}
	bin := distuv.Binomial{N: n}
	out := make([]float64, len(y))
	for i := range y {
		p := mu[i] / n
		// distuv's log-space pmf is undefined at the boundary
		// success probabilities; the mass is degenerate there.
		switch {
		case p == 0:
			if y[i] == 0 {
				out[i] = 1
			}
		case p == 1:
			if y[i] == n {
				out[i] = 1
			}
		default:
			bin.P = p
			out[i] = bin.Prob(y[i])
		}
	}
	return out, nil
}

func (d *Binomial) Variance(mu []float64) ([]float64, error) {
	n := float64(d.levels)
	if err := checkRange(d.name, "variance", "mu", mu, n, d.levels); err != nil {
		return nil, err
	}
	out := make([]float64, len(mu))
	for i, m := range mu {
		out[i] = m * (1 - m/n)
	}
	return out, nil
}

func (d *Binomial) Deviance(y, mu []float64, scaled bool) ([]float64, error) {
	if err := checkSameLen("deviance", y, mu); err != nil {
		return nil, err
	}
	n := float64(d.levels)
	if err := checkRange(d.name, "deviance", "y", y, n, d.levels); err != nil {
		return nil, err
	}
	if err := checkRange(d.name, "deviance", "mu", mu, n, d.levels); err != nil {
		return nil, err
	}
	lhs, err := utils.YLogYdU(y, mu)
	if err != nil {
		return nil, err
	}
	yc := make([]float64, len(y))
	mc := make([]float64, len(mu))
	for i := range y {
		yc[i] = n - y[i]
		mc[i] = n - mu[i]
	}
	rhs, err := utils.YLogYdU(yc, mc)
	if err != nil {
		return nil, err
	}
	sc := d.Scale()
	out := make([]float64, len(y))
	for i := range out {
		out[i] = 2 * (lhs[i] + rhs[i])
		if scaled {
			out[i] /= sc
		}
	}
	return out, nil
}

func (d *Binomial) Phi(y, mu []float64, edof float64) (float64, error) {
	return d.family.phi(d.Variance, y, mu, edof)
}

func (d *Binomial) Sample(mu []float64, src rand.Source) ([]float64, error) {
	if err := checkNotEmpty(d.name, "sample", mu); err != nil {
		return nil, err
	}
	n := float64(d.levels)
	if err := checkRange(d.name, "sample", "mu", mu, n, d.levels); err != nil {
		return nil, err
	}
	bin := distuv.Binomial{N: n, Src: src}
	out := make([]float64, len(mu))
	for i, m := range mu {
		p := m / n
		switch {
		case p == 0:
			out[i] = 0
		case p == 1:
			out[i] = n
		default:
			bin.P = p
			out[i] = bin.Rand()
		}
	}
	return out, nil
}
