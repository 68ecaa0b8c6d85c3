package distributions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

const sampleDraws = 100000

// repeatMean builds a constant mean vector for the law-of-large-numbers
// checks.
func repeatMean(m float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = m
	}
	return out
}

// TestSampleMoments draws heavily from each family at a fixed mean and
// checks that the empirical mean converges to mu and the empirical variance
// to scale*V(mu).
func TestSampleMoments(t *testing.T) {
	cases := []struct {
		desc    string
		d       func() (Distribution, error)
		mu      float64
		wantVar float64
	}{
		{
			desc:    "normal scale 4",
			d:       func() (Distribution, error) { return NewNormal(WithScale(4)) },
			mu:      -1.5,
			wantVar: 4, // scale * 1
		},
		{
			desc:    "binomial 10 trials",
			d:       func() (Distribution, error) { return NewBinomial(WithLevels(10)) },
			mu:      4,
			wantVar: 4 * (1 - 4.0/10), // mu(1 - mu/n)
		},
		{
			desc:    "poisson",
			d:       func() (Distribution, error) { return NewPoisson() },
			mu:      3,
			wantVar: 3, // mu
		},
		{
			desc:    "gamma scale 2",
			d:       func() (Distribution, error) { return NewGamma(WithScale(2)) },
			mu:      5,
			wantVar: 2 * 25, // scale * mu^2
		},
		{
			desc:    "inv_gauss scale 0.5",
			d:       func() (Distribution, error) { return NewInvGauss(WithScale(0.5)) },
			mu:      2,
			wantVar: 0.5 * 8, // scale * mu^3
		},
	}
	for _, c := range cases {
		d, err := c.d()
		require.NoError(t, err, c.desc)

		draws, err := d.Sample(repeatMean(c.mu, sampleDraws), rand.NewSource(42))
		require.NoError(t, err, c.desc)
		require.Len(t, draws, sampleDraws, c.desc)

		mean, variance := stat.MeanVariance(draws, nil)
		sd := math.Sqrt(c.wantVar)
		if math.Abs(mean-c.mu) > 6*sd/math.Sqrt(sampleDraws) {
			t.Errorf("%s: empirical mean %v too far from %v", c.desc, mean, c.mu)
		}
		if math.Abs(variance-c.wantVar) > 0.1*c.wantVar {
			t.Errorf("%s: empirical variance %v too far from %v", c.desc, variance, c.wantVar)
		}
	}
}

func TestSampleReproducible(t *testing.T) {
	for _, f := range allFamilies(t) {
		a, err := f.d.Sample(f.mu, rand.NewSource(99))
		require.NoError(t, err, f.d.Name())
		b, err := f.d.Sample(f.mu, rand.NewSource(99))
		require.NoError(t, err, f.d.Name())
		require.Equal(t, a, b, f.d.Name())
	}
}

func TestSampleDomainRespected(t *testing.T) {
	binom, err := NewBinomial(WithLevels(3))
	require.NoError(t, err)
	draws, err := binom.Sample(repeatMean(1.5, 2000), rand.NewSource(1))
	require.NoError(t, err)
	for _, x := range draws {
		if x < 0 || x > 3 || x != math.Floor(x) {
			t.Fatalf("binomial draw %v outside {0,...,3}", x)
		}
	}

	pois, err := NewPoisson()
	require.NoError(t, err)
	draws, err = pois.Sample(repeatMean(0.8, 2000), rand.NewSource(1))
	require.NoError(t, err)
	for _, x := range draws {
		if x < 0 || x != math.Floor(x) {
			t.Fatalf("poisson draw %v is not a non-negative integer", x)
		}
	}

	for _, name := range []string{FamilyGamma, FamilyInvGauss} {
		d, err := New(name, WithScale(1.5))
		require.NoError(t, err)
		draws, err := d.Sample(repeatMean(2, 2000), rand.NewSource(1))
		require.NoError(t, err)
		for _, x := range draws {
			if !(x > 0) {
				t.Fatalf("%s draw %v is not strictly positive", name, x)
			}
		}
	}
}

func TestSampleRejectsBadMeans(t *testing.T) {
	cases := []struct {
		desc string
		d    func() (Distribution, error)
		mu   []float64
	}{
		{"poisson non-positive mean", func() (Distribution, error) { return NewPoisson() }, []float64{1, 0}},
		{"gamma negative mean", func() (Distribution, error) { return NewGamma() }, []float64{-1}},
		{"inv_gauss zero mean", func() (Distribution, error) { return NewInvGauss() }, []float64{0}},
		{"binomial mean above levels", func() (Distribution, error) { return NewBinomial(WithLevels(2)) }, []float64{2.5}},
		{"empty means", func() (Distribution, error) { return NewNormal() }, nil},
	}
	for _, c := range cases {
		d, err := c.d()
		require.NoError(t, err, c.desc)
		_, err = d.Sample(c.mu, rand.NewSource(5))
		if err == nil {
			t.Errorf("%s: unexpected lack of error", c.desc)
			continue
		}
		if _, ok := err.(*DomainError); !ok {
			t.Errorf("%s: expected *DomainError, got %T", c.desc, err)
		}
	}
}
