package inputs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/gamfit/gamfit/internal/utils"
	"github.com/gamfit/gamfit/pkg/distributions"
)

// Error messages when using a SimulationGenerator
const (
	ErrNoConfig         = "no GeneratorConfig provided"
	ErrInvalidSimConfig = "invalid config: SimulationGenerator needs a SimulationGeneratorConfig"

	errBadFamilyFmt    = "invalid family specified: '%s'"
	errBadMeansFmt     = "cannot parse means '%s': %v"
	errSimulationsZero = "cannot have 0 simulation rows"
)

const defaultWriteSize = 4 << 20 // 4 MB

// SimulationGeneratorConfig is the GeneratorConfig used with a
// SimulationGenerator. It selects an exponential family, its dispersion,
// and the fitted means to draw simulated responses for.
type SimulationGeneratorConfig struct {
	Family      string  `yaml:"family" mapstructure:"family"`
	Scale       float64 `yaml:"scale,omitempty" mapstructure:"scale,omitempty"`
	Levels      int     `yaml:"levels,omitempty" mapstructure:"levels,omitempty"`
	Means       string  `yaml:"means" mapstructure:"means"`
	Simulations uint64  `yaml:"simulations" mapstructure:"simulations"`
	Seed        int64   `yaml:"seed,omitempty" mapstructure:"seed,omitempty"`
	File        string  `yaml:"file,omitempty" mapstructure:"file,omitempty"`
	Summary     bool    `yaml:"summary,omitempty" mapstructure:"summary,omitempty"`

	means []float64
}

// AddToFlagSet adds all the config options to a FlagSet.
func (c *SimulationGeneratorConfig) AddToFlagSet(fs *pflag.FlagSet) {
	fs.String("family", distributions.FamilyNormal,
		fmt.Sprintf("Family to simulate from. (choices: %s)", strings.Join(distributions.FamilyChoices, ", ")))
	fs.Float64("scale", 0, "Dispersion of the family. 0 means the family default (fixed or unit)")
	fs.Int("levels", 1, "Number of Bernoulli trials per observation. Used only by the binomial family")
	fs.String("means", "1", "Comma-separated fitted means; each simulation row draws one value per mean")
	fs.Uint64("simulations", 1000, "Number of simulation rows to draw")
	fs.Int64("seed", 0, "PRNG seed (default: 0, which uses the current timestamp)")
	fs.String("file", "", "Write the output to this path")
	fs.Bool("summary", false, "Print per-mean empirical moments against their theoretical values")
}

// Validate checks that the values of the SimulationGeneratorConfig are
// reasonable and parses the mean list.
func (c *SimulationGeneratorConfig) Validate() error {
	if !utils.IsIn(c.Family, distributions.FamilyChoices) {
		return fmt.Errorf(errBadFamilyFmt, c.Family)
	}

	means, err := utils.ParseFloats(c.Means)
	if err != nil {
		return fmt.Errorf(errBadMeansFmt, c.Means, err)
	}
	c.means = means

	if c.Simulations == 0 {
		return fmt.Errorf(errSimulationsZero)
	}

	if c.Seed == 0 {
		c.Seed = int64(time.Now().Nanosecond())
	}

	return nil
}

// distribution builds the configured family instance.
func (c *SimulationGeneratorConfig) distribution() (distributions.Distribution, error) {
	var opts []distributions.Option
	if c.Scale != 0 {
		opts = append(opts, distributions.WithScale(c.Scale))
	}
	if c.Family == distributions.FamilyBinomial {
		opts = append(opts, distributions.WithLevels(c.Levels))
	}
	d, err := distributions.New(c.Family, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "could not create family")
	}
	return d, nil
}

// SimulationGenerator is a type of Generator that draws simulated responses
// from an exponential family at fixed means, one row per simulation. The
// rows feed downstream prediction-interval estimation.
type SimulationGenerator struct {
	// Out is the writer where data should be written. If nil, it will be
	// os.Stdout unless File is specified in the GeneratorConfig passed to
	// Generate.
	Out io.Writer

	// Summary is the writer for the empirical-moment report. If nil, it
	// will be os.Stderr.
	Summary io.Writer

	config *SimulationGeneratorConfig

	// bufOut represents the buffered writer that should actually be passed to
	// any operations that write out data.
	bufOut *bufio.Writer
}

func (g *SimulationGenerator) init(config GeneratorConfig) error {
	if config == nil {
		return fmt.Errorf(ErrNoConfig)
	}
	switch config.(type) {
	case *SimulationGeneratorConfig:
	default:
		return fmt.Errorf(ErrInvalidSimConfig)
	}
	g.config = config.(*SimulationGeneratorConfig)

	err := g.config.Validate()
	if err != nil {
		return err
	}

	if g.Out == nil {
		g.Out = os.Stdout
	}
	if g.Summary == nil {
		g.Summary = os.Stderr
	}
	g.bufOut, err = getBufferedWriter(g.config.File, g.Out)
	if err != nil {
		return err
	}

	return nil
}

// Generate draws the configured simulation block and writes one
// comma-separated row per simulation.
func (g *SimulationGenerator) Generate(config GeneratorConfig) error {
	err := g.init(config)
	if err != nil {
		return err
	}

	dist, err := g.config.distribution()
	if err != nil {
		return err
	}

	src := rand.NewSource(uint64(g.config.Seed))
	return g.runSimulation(dist, src)
}

func (g *SimulationGenerator) runSimulation(dist distributions.Distribution, src rand.Source) error {
	defer g.bufOut.Flush()

	cfg := g.config
	nCols := len(cfg.means)

	var cols [][]float64
	if cfg.Summary {
		cols = make([][]float64, nCols)
		for j := range cols {
			cols[j] = make([]float64, 0, cfg.Simulations)
		}
	}

	row := make([]byte, 0, 16*nCols)
	for i := uint64(0); i < cfg.Simulations; i++ {
		draws, err := dist.Sample(cfg.means, src)
		if err != nil {
			return errors.Wrap(err, "could not draw simulation row")
		}

		row = row[:0]
		for j, x := range draws {
			if j > 0 {
				row = append(row, ',')
			}
			row = strconv.AppendFloat(row, x, 'g', -1, 64)
			if cfg.Summary {
				cols[j] = append(cols[j], x)
			}
		}
		row = append(row, '\n')
		if _, err := g.bufOut.Write(row); err != nil {
			return errors.Wrap(err, "could not write simulation row")
		}
	}

	if cfg.Summary {
		return g.writeSummary(dist, cols)
	}
	return nil
}

// writeSummary reports, per mean, the empirical first two moments of the
// drawn column against mu and scale*V(mu).
func (g *SimulationGenerator) writeSummary(dist distributions.Distribution, cols [][]float64) error {
	v, err := dist.Variance(g.config.means)
	if err != nil {
		return errors.Wrap(err, "could not evaluate variance function")
	}
	for j, col := range cols {
		mean, variance := stat.MeanVariance(col, nil)
		_, err := fmt.Fprintf(g.Summary,
			"%s: mu=%g mean=%g (want %g) variance=%g (want %g)\n",
			dist.Name(), g.config.means[j], mean, g.config.means[j],
			variance, dist.Scale()*v[j])
		if err != nil {
			return err
		}
	}
	return nil
}

func getBufferedWriter(filename string, fallback io.Writer) (*bufio.Writer, error) {
	// If filename is given, output should go to a file
	if len(filename) > 0 {
		file, err := os.Create(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open file for write %s: %v", filename, err)
		}
		return bufio.NewWriterSize(file, defaultWriteSize), nil
	}

	return bufio.NewWriterSize(fallback, defaultWriteSize), nil
}
