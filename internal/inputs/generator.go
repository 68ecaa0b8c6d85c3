package inputs

import (
	"github.com/spf13/pflag"
)

// GeneratorConfig is an interface that defines a configuration that is used
// by Generators to govern their behavior. The interface methods provide a
// way to use the GeneratorConfig with the command-line via pflag.FlagSet and
// a method to validate the config is actually valid.
type GeneratorConfig interface {
	// AddToFlagSet adds all the config options to a FlagSet, for easy use with CLIs
	AddToFlagSet(fs *pflag.FlagSet)
	// Validate checks that configuration is valid and ready to be consumed by a Generator
	Validate() error
}

// Generator is an interface that defines a type that generates inputs to
// other gamfit tools. SimulationGenerator, which draws random responses from
// a fitted family's mean structure, is the canonical example.
type Generator interface {
	Generate(GeneratorConfig) error
}
