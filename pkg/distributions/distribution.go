// Package distributions implements the exponential-family probability model
// behind a GAM fitting engine. Each family supplies a density, the GLM
// variance function V(mu), the deviance used as the fitting objective, a
// dispersion estimator, and a mean-parameterized sampler. The five
// operations of a family are kept mutually consistent: Var(Y|mu) equals
// Scale()*V(mu) both for the Pearson dispersion estimate and for the
// samplers.
package distributions

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Family name choices
const (
	FamilyNormal   = "normal"
	FamilyBinomial = "binomial"
	FamilyPoisson  = "poisson"
	FamilyGamma    = "gamma"
	FamilyInvGauss = "inv_gauss"
)

// FamilyChoices lists the supported family names, for CLI flag help and
// validation.
var FamilyChoices = []string{
	FamilyNormal,
	FamilyBinomial,
	FamilyPoisson,
	FamilyGamma,
	FamilyInvGauss,
}

// Distribution is the contract every exponential family implements. All
// elementwise operations take equal-length slices and are pure functions of
// their arguments plus the instance's fixed parameters; Sample additionally
// consumes entropy from the caller-supplied source.
type Distribution interface {
	// Name returns the family identifier, e.g. "poisson".
	Name() string
	// Scale returns the dispersion used by PDF, Deviance and Sample.
	// When no scale was supplied at construction it is 1.
	Scale() float64
	// KnownScale reports whether the dispersion was supplied at
	// construction (or is fixed by the family definition).
	KnownScale() bool
	// FixedScale reports whether the dispersion is pinned to 1 by the
	// family definition and may never be residual-estimated.
	FixedScale() bool
	// Params returns the introspectable constructor parameters. The
	// scale appears only when it is user-supplied and estimable, so
	// serialization never reports a dispersion the family does not own.
	Params() map[string]interface{}

	// PDF evaluates the density (or mass) of y under mean mu.
	PDF(y, mu []float64) ([]float64, error)
	// Variance evaluates the GLM variance function V(mu), strictly
	// positive on the family's valid mean domain.
	Variance(mu []float64) ([]float64, error)
	// Deviance returns the per-observation deviance, twice the
	// saturated-minus-fitted log-likelihood gap. When scaled it is
	// divided by Scale().
	Deviance(y, mu []float64, scaled bool) ([]float64, error)
	// Phi estimates the dispersion after fitting. Families with a known
	// scale return it unchanged; the rest use the generalized Pearson
	// statistic with edof effective degrees of freedom.
	Phi(y, mu []float64, edof float64) (float64, error)
	// Sample draws one variate per entry of mu from src.
	Sample(mu []float64, src rand.Source) ([]float64, error)
}

// Option configures a family at construction time.
type Option func(*settings)

type settings struct {
	scale  *float64
	levels *int
}

// WithScale fixes the dispersion instead of leaving it to be estimated from
// residuals. Must be positive. Poisson and Binomial only accept 1.
func WithScale(scale float64) Option {
	return func(s *settings) { s.scale = &scale }
}

// WithLevels sets the number of Bernoulli trials per observation for the
// binomial family.
func WithLevels(levels int) Option {
	return func(s *settings) { s.levels = &levels }
}

// New constructs a family by name. The variant set is closed: the five
// supported families cover the exponential dispersion models a GAM engine
// fits with IRLS.
func New(family string, opts ...Option) (Distribution, error) {
	switch family {
	case FamilyNormal:
		return NewNormal(opts...)
	case FamilyBinomial:
		return NewBinomial(opts...)
	case FamilyPoisson:
		return NewPoisson(opts...)
	case FamilyGamma:
		return NewGamma(opts...)
	case FamilyInvGauss:
		return NewInvGauss(opts...)
	default:
		return nil, &ConfigError{Family: family, Msg: fmt.Sprintf(errUnknownFamilyFmt, family)}
	}
}

// family carries the state shared by every variant: the name and the scale
// declaration. Instances are immutable after construction.
type family struct {
	name       string
	scale      float64
	knownScale bool
	fixedScale bool
}

func (f *family) Name() string { return f.name }

func (f *family) Scale() float64 {
	if f.knownScale {
		return f.scale
	}
	return 1
}

func (f *family) KnownScale() bool { return f.knownScale }

func (f *family) FixedScale() bool { return f.fixedScale }

func (f *family) Params() map[string]interface{} {
	p := map[string]interface{}{"name": f.name}
	if f.knownScale && !f.fixedScale {
		p["scale"] = f.scale
	}
	return p
}

// newFreeScaleFamily builds the shared state for a family whose dispersion
// is estimable (normal, gamma, inverse Gaussian).
func newFreeScaleFamily(name string, s *settings) (family, error) {
	if s.levels != nil {
		return family{}, &ConfigError{Family: name, Msg: errLevelsNotBinomial}
	}
	f := family{name: name}
	if s.scale != nil {
		if *s.scale <= 0 {
			return family{}, &ConfigError{Family: name, Msg: fmt.Sprintf(errNonPositiveScaleFmt, *s.scale)}
		}
		f.scale = *s.scale
		f.knownScale = true
	}
	return f, nil
}

// newFixedScaleFamily builds the shared state for a family whose dispersion
// is 1 by definition (poisson, binomial). An explicit conflicting scale is
// a configuration error.
func newFixedScaleFamily(name string, s *settings) (family, error) {
	if s.scale != nil && *s.scale != 1 {
		return family{}, &ConfigError{Family: name, Msg: fmt.Sprintf(errFixedScaleConflictFmt, *s.scale)}
	}
	return family{name: name, scale: 1, knownScale: true, fixedScale: true}, nil
}

// phi is the generalized Pearson dispersion estimator shared by the free
// scale families: sum(V(1/mu) * (y-mu)^2) / (n - edof). A known scale is
// returned unchanged. A non-positive denominator is rejected rather than
// clamped: it signals an over-parameterized fit the caller must handle.
func (f *family) phi(variance func([]float64) ([]float64, error), y, mu []float64, edof float64) (float64, error) {
	if f.knownScale {
		return f.scale, nil
	}
	if err := checkSameLen("phi", y, mu); err != nil {
		return 0, err
	}
	n := len(mu)
	dof := float64(n) - edof
	if dof <= 0 {
		return 0, &DomainError{Family: f.name, Op: "phi",
			Msg: fmt.Sprintf(errDegenerateDofFmt, dof, n, edof)}
	}
	inv := make([]float64, n)
	for i, m := range mu {
		inv[i] = 1 / m
	}
	v, err := variance(inv)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range v {
		r := y[i] - mu[i]
		sum += v[i] * r * r
	}
	return sum / dof, nil
}

// SumDeviance reduces the per-observation deviances of d by addition, the
// quantity minimized during an IRLS fit.
func SumDeviance(d Distribution, y, mu []float64, scaled bool) (float64, error) {
	dev, err := d.Deviance(y, mu, scaled)
	if err != nil {
		return 0, err
	}
	return floats.Sum(dev), nil
}

// SampleMatrix draws one variate per entry of mu, row by row. Rows share
// the same source, so a fixed seed reproduces the whole simulation block;
// rows typically repeat the same fitted means across simulations.
func SampleMatrix(d Distribution, mu [][]float64, src rand.Source) ([][]float64, error) {
	out := make([][]float64, len(mu))
	for i, row := range mu {
		s, err := d.Sample(row, src)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func checkSameLen(op string, y, mu []float64) error {
	if len(y) != len(mu) {
		return &ShapeError{Op: op, LenY: len(y), LenM: len(mu)}
	}
	return nil
}

func checkNotEmpty(name, op string, mu []float64) error {
	if len(mu) == 0 {
		return &DomainError{Family: name, Op: op, Msg: errEmptyMeans}
	}
	return nil
}

// checkPositive rejects values outside (0, +inf) for arguments whose
// formulas take logs or reciprocals.
func checkPositive(name, op, arg string, xs []float64) error {
	for _, x := range xs {
		if !(x > 0) || math.IsInf(x, 1) {
			return &DomainError{Family: name, Op: op, Msg: fmt.Sprintf(errNonPositiveFmt, arg)}
		}
	}
	return nil
}

func checkNonNegative(name, op, arg string, xs []float64) error {
	for _, x := range xs {
		if x < 0 || math.IsNaN(x) {
			return &DomainError{Family: name, Op: op, Msg: fmt.Sprintf(errNegativeFmt, arg)}
		}
	}
	return nil
}

// checkCounts rejects fractional or negative values where an exact pmf
// requires integer counts.
func checkCounts(name, op string, xs []float64) error {
	for _, x := range xs {
		if x < 0 || x != math.Floor(x) || math.IsNaN(x) {
			return &DomainError{Family: name, Op: op, Msg: errNonIntegerCount}
		}
	}
	return nil
}

func checkRange(name, op, arg string, xs []float64, hi float64, levels int) error {
	for _, x := range xs {
		if x < 0 || x > hi || math.IsNaN(x) {
			return &DomainError{Family: name, Op: op, Msg: fmt.Sprintf(errOutOfRangeFmt, arg, levels)}
		}
	}
	return nil
}
