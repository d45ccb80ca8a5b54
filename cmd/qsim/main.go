package main

import (
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
	"github.com/theapemachine/qsim"
	"github.com/urfave/cli/v2"
)

// env is what every command needs, built once in the app's Before hook.
type env struct {
	config *qsim.Config
	logger *log.Logger
	sim    *qsim.Simulator
	seed   *uint64
	crypto bool
}

// runOptions applies the global --seed or --entropy flag to a single run.
func (e *env) runOptions() []qsim.RunOption {
	switch {
	case e.seed != nil:
		return []qsim.RunOption{qsim.WithSeed(*e.seed)}
	case e.crypto:
		return []qsim.RunOption{qsim.WithSource(qsim.NewEntropySource())}
	}
	return nil
}

/*
rng is the generator multi-run demos draw their per-run seeds from. With
neither --seed nor --entropy set it is still non-nil so demos that make
classical choices (BB84's bases) have something to draw from.
*/
func (e *env) rng() *rand.Rand {
	switch {
	case e.seed != nil:
		return rand.New(qsim.NewSeededSource(*e.seed))
	case e.crypto:
		return rand.New(qsim.NewEntropySource())
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// shots prefers the command's --shots flag, then the configured default.
func (e *env) shots(c *cli.Context) int {
	if c.IsSet("shots") {
		return c.Int("shots")
	}
	return e.config.Shots
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "qsim",
		Usage: "run small quantum circuits on a state-vector simulator",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "config file (yaml, toml or json)",
				EnvVars: []string{"QSIM_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "seed every run for reproducible output",
			},
			&cli.BoolFlag{
				Name:  "entropy",
				Usage: "draw shots from the operating system's entropy source",
			},
		},
		Before: func(c *cli.Context) error {
			config, err := qsim.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if c.IsSet("log-level") {
				config.LogLevel = c.String("log-level")
			}

			e.config = config
			e.logger = qsim.NewLogger(config.LogLevel)
			e.sim = qsim.NewSimulator(config, qsim.WithLogger(e.logger))
			e.crypto = c.Bool("entropy")

			if c.IsSet("seed") {
				seed := c.Uint64("seed")
				e.seed = &seed
			}

			announce(e.logger, config)
			return nil
		},
		Commands: commands(e),
	}
}

// announce prints the effective settings once per command, unless the log level hides info.
func announce(logger *log.Logger, config *qsim.Config) bool {
	if logger.GetLevel() > log.InfoLevel {
		return false
	}
	errnie.Info("qsim - shots %d, workers %d, log level %s", config.Shots, config.Workers, config.LogLevel)
	return true
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal("qsim failed", "err", err)
	}
}
