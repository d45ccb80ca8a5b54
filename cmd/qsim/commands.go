package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/theapemachine/qsim"
	"github.com/theapemachine/qsim/demo"
	"github.com/theapemachine/qsim/render"
	"github.com/urfave/cli/v2"
)

func shotsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "shots",
		Aliases: []string{"s"},
		Usage:   "number of measurement shots (default from config)",
	}
}

func commands(e *env) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "run",
			Usage: "run a circuit from text or a YAML program",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}, Value: 1, Usage: "register size for --circuit"},
				&cli.StringFlag{Name: "circuit", Usage: `text circuit, e.g. "h 0; cx 0 1; measure 0 1"`},
				&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "YAML program file"},
				&cli.BoolFlag{Name: "statevector", Usage: "print the amplitudes before measurement"},
				shotsFlag(),
			},
			Action: func(c *cli.Context) error { return runCircuit(c, e) },
		},
		{
			Name:      "batch",
			Usage:     "run every program in the given YAML files on the worker pool",
			ArgsUsage: "FILE...",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "worker count (default from config)"},
				shotsFlag(),
			},
			Action: func(c *cli.Context) error { return runBatch(c, e) },
		},
		{
			Name:  "coin",
			Usage: "flip a quantum coin",
			Flags: []cli.Flag{&cli.IntFlag{Name: "shots", Aliases: []string{"s"}, Value: 10}},
			Action: func(c *cli.Context) error {
				counts, err := demo.CoinFlip(e.sim, c.Int("shots"), e.runOptions()...)
				if err != nil {
					return err
				}
				render.Histogram(c.App.Writer, counts)
				return nil
			},
		},
		{
			Name:  "bell",
			Usage: "measure an entangled Bell pair",
			Flags: []cli.Flag{&cli.IntFlag{Name: "shots", Aliases: []string{"s"}, Value: 1000}},
			Action: func(c *cli.Context) error {
				counts, err := demo.BellState(e.sim, c.Int("shots"), e.runOptions()...)
				if err != nil {
					return err
				}
				render.Histogram(c.App.Writer, counts)
				return nil
			},
		},
		{
			Name:  "bloch",
			Usage: "show the reduced state of each qubit of a Bell pair",
			Action: func(c *cli.Context) error {
				qubits, err := demo.BellBloch(e.sim)
				if err != nil {
					return err
				}
				render.Bloch(c.App.Writer, qubits)
				return nil
			},
		},
		{
			Name:  "rng",
			Usage: "generate random bits from a measured superposition",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "bits", Aliases: []string{"b"}, Value: 64},
				&cli.IntFlag{Name: "shots-per-run", Value: demo.DefaultShotsPerRun},
			},
			Action: func(c *cli.Context) error {
				bits, err := demo.RandomBits(e.sim, c.Int("bits"), c.Int("shots-per-run"), e.rng())
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "bits:  %s\nhex:   %s\nascii: %s\n",
					demo.BitString(bits), demo.BitsToHex(bits), demo.BitsToASCII(bits))
				return nil
			},
		},
		{
			Name:  "dice",
			Usage: "roll six-sided dice",
			Flags: []cli.Flag{&cli.IntFlag{Name: "count", Value: 10}},
			Action: func(c *cli.Context) error {
				rolls, tally, err := demo.RollDice(e.sim, c.Int("count"), e.rng())
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "rolls: %v\n", rolls)
				for face := 1; face <= 6; face++ {
					fmt.Fprintf(c.App.Writer, "%d: %s\n", face, render.Bar(tally[face], len(rolls), render.BarWidth))
				}
				return nil
			},
		},
		{
			Name:  "teleport",
			Usage: "teleport alpha|0> + beta|1> and show every correction branch",
			Flags: []cli.Flag{
				&cli.Float64Flag{Name: "theta", Value: 1.0, Usage: "polar angle of the input state"},
				&cli.Float64Flag{Name: "phi", Value: 0.5, Usage: "phase of the input state"},
			},
			Action: func(c *cli.Context) error {
				alpha, beta := demoAmplitudes(c.Float64("theta"), c.Float64("phi"))
				t, err := demo.Teleport(e.sim, alpha, beta)
				if err != nil {
					return err
				}
				render.Teleport(c.App.Writer, t)
				return nil
			},
		},
		{
			Name:  "bb84",
			Usage: "run the BB84 key exchange",
			Flags: []cli.Flag{&cli.IntFlag{Name: "bits", Aliases: []string{"b"}, Value: 32}},
			Action: func(c *cli.Context) error {
				res, err := demo.BB84(e.sim, c.Int("bits"), e.rng())
				if err != nil {
					return err
				}
				w := c.App.Writer
				fmt.Fprintf(w, "alice bits:   %s\n", demo.BitString(res.AliceBits))
				fmt.Fprintf(w, "alice bases:  %s\n", demo.BitString(res.AliceBases))
				fmt.Fprintf(w, "bob bases:    %s\n", demo.BitString(res.BobBases))
				fmt.Fprintf(w, "bob results:  %s\n", demo.BitString(res.BobResults))
				fmt.Fprintf(w, "sifted:       %d of %d positions\n", len(res.SiftedPositions), len(res.AliceBits))
				fmt.Fprintf(w, "revealed:     %v (error rate %.2f)\n", res.RevealedIndices, res.ErrorRate())
				fmt.Fprintf(w, "alice key:    %s (%s)\n", demo.BitString(res.FinalAliceKey), demo.BitsToHex(res.FinalAliceKey))
				fmt.Fprintf(w, "bob key:      %s (%s)\n", demo.BitString(res.FinalBobKey), demo.BitsToHex(res.FinalBobKey))
				return nil
			},
		},
		{
			Name:  "grover",
			Usage: "search for a marked item with Grover's algorithm",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}, Value: 3},
				&cli.IntFlag{Name: "target", Aliases: []string{"t"}, Value: 5},
				&cli.IntFlag{Name: "extrapolate", Value: 128, Usage: "key size in bits to compare against"},
				shotsFlag(),
			},
			Action: func(c *cli.Context) error { return runGrover(c, e) },
		},
		{
			Name:  "password",
			Usage: "generate a random password and Grover-search its prefix",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "bits", Aliases: []string{"b"}, Value: 64},
				&cli.IntFlag{Name: "qubits", Aliases: []string{"n"}, Value: 4, Usage: "prefix bits to search for"},
				shotsFlag(),
			},
			Action: func(c *cli.Context) error {
				pw, err := demo.Password(e.sim, c.Int("bits"), e.rng())
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "bits:  %s\nhex:   %s\nascii: %s\n", pw, pw.Hex, pw.ASCII)

				res, err := demo.PasswordSearch(e.sim, pw, c.Int("qubits"), e.shots(c), e.runOptions()...)
				if err != nil {
					return err
				}
				render.Histogram(c.App.Writer, res.Counts)
				fmt.Fprintf(c.App.Writer, "prefix %s found: %t\n", qsim.FormatBasis(res.Target, res.Qubits), res.Found())
				return nil
			},
		},
	}
}

func runCircuit(c *cli.Context, e *env) error {
	var (
		circuit *qsim.Circuit
		err     error
		shots   = e.shots(c)
		opts    = e.runOptions()
	)

	switch {
	case c.IsSet("file"):
		f, ferr := os.Open(c.String("file"))
		if ferr != nil {
			return ferr
		}
		defer f.Close()

		program, perr := qsim.LoadProgram(f)
		if perr != nil {
			return perr
		}
		if circuit, err = program.Circuit(); err != nil {
			return err
		}
		if program.Shots > 0 && !c.IsSet("shots") {
			shots = program.Shots
		}
		if program.Seed != nil && e.seed == nil {
			opts = []qsim.RunOption{qsim.WithSeed(*program.Seed)}
		}
	case c.IsSet("circuit"):
		if circuit, err = qsim.ParseCircuit(c.Int("qubits"), c.String("circuit")); err != nil {
			return err
		}
	default:
		return errors.New("run needs --circuit or --file")
	}

	fmt.Fprintln(c.App.Writer, circuit)

	if c.Bool("statevector") {
		state, err := e.sim.Statevector(circuit)
		if err != nil {
			return err
		}
		render.Statevector(c.App.Writer, state, e.config.Tolerance)
	}

	counts, err := e.sim.Run(circuit, shots, opts...)
	if err != nil {
		return err
	}
	render.Histogram(c.App.Writer, counts)
	return nil
}

func runBatch(c *cli.Context, e *env) error {
	if c.NArg() == 0 {
		return errors.New("batch needs at least one program file")
	}

	var jobs []qsim.Job
	for _, path := range c.Args().Slice() {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		programs, err := qsim.LoadPrograms(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		for i, program := range programs {
			circuit, err := program.Circuit()
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			job := qsim.Job{ID: program.Name, Circuit: circuit, Shots: e.shots(c), Seed: program.Seed}
			if job.ID == "" {
				job.ID = fmt.Sprintf("%s#%d", filepath.Base(path), i)
			}
			if program.Shots > 0 && !c.IsSet("shots") {
				job.Shots = program.Shots
			}
			if job.Seed == nil && e.seed != nil {
				seed := *e.seed + uint64(len(jobs))
				job.Seed = &seed
			}
			jobs = append(jobs, job)
		}
	}

	workers := e.config.Workers
	if c.IsSet("workers") {
		workers = c.Int("workers")
	}

	results, err := qsim.RunBatch(c.Context, e.sim, jobs, workers)
	if err != nil {
		return err
	}

	for _, result := range results {
		if result.Err != nil {
			fmt.Fprintf(c.App.Writer, "%s: %v\n", result.JobID, result.Err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s (%s)\n", result.JobID, result.Duration)
		render.Histogram(c.App.Writer, result.Counts)
	}
	return nil
}

func runGrover(c *cli.Context, e *env) error {
	res, err := demo.Grover(e.sim, c.Int("qubits"), c.Int("target"), e.shots(c), e.runOptions()...)
	if err != nil {
		return err
	}
	render.Histogram(c.App.Writer, res.Counts)

	speedup, err := demo.CompareClassical(res.Qubits)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "target %s found: %t\n", qsim.FormatBasis(res.Target, res.Qubits), res.Found())
	fmt.Fprintf(c.App.Writer, "%s items: %.0f classical checks on average, %d Grover iterations\n",
		humanize.Comma(int64(speedup.SearchSpace)), speedup.ClassicalChecks, speedup.GroverCalls)

	cmp, err := demo.Extrapolate(c.Int("extrapolate"))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "%d-bit key: %s (%s) classical guesses vs %s oracle calls\n",
		cmp.Bits, cmp.ClassicalHumanized, cmp.ClassicalExactCount, cmp.GroverHumanized)
	return nil
}
