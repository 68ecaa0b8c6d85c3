// gamfit_simulate draws simulated responses from an exponential-family
// distribution at fixed fitted means.
//
// Supported families:
// normal, binomial, poisson, gamma, inv_gauss
//
// Each output row is one simulation: a comma-separated draw per supplied
// mean. The rows feed simulation-based prediction intervals downstream of a
// fitted GAM.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/blagojts/viper"
	"github.com/spf13/pflag"

	"github.com/gamfit/gamfit/internal/inputs"
	"github.com/gamfit/gamfit/internal/utils"
)

var (
	profileFile string
	sg          = &inputs.SimulationGenerator{}
	config      = &inputs.SimulationGeneratorConfig{}
)

// Parse args:
func init() {
	config.AddToFlagSet(pflag.CommandLine)

	pflag.String("profile-file", "", "File to which to write go profiling data")

	pflag.Parse()

	err := utils.SetupConfigFile()

	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("unable to decode config: %s", err))
	}

	profileFile = viper.GetString("profile-file")
}

func main() {
	if len(profileFile) > 0 {
		defer startMemoryProfile(profileFile)()
	}
	err := sg.Generate(config)
	if err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// startMemoryProfile sets up memory profiling to be written to profileFile. It
// returns a function to cleanup/write that should be deferred by the caller
func startMemoryProfile(profileFile string) func() {
	f, err := os.Create(profileFile)
	if err != nil {
		log.Fatal("could not create memory profile: ", err)
	}

	stop := func() {
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
		f.Close()
	}

	// Catches ctrl+c signals
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c

		fmt.Fprintln(os.Stderr, "\ncaught interrupt, stopping profile")
		stop()

		os.Exit(0)
	}()

	return stop
}
