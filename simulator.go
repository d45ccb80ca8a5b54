package qsim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
)

/*
Simulator replays circuits against a fresh state vector and samples the
result. It holds no per-run state: every call to Run builds its own vector
and its own generator, so runs never influence each other.
*/
type Simulator struct {
	config  *Config
	logger  *log.Logger
	metrics *Metrics
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

func WithLogger(logger *log.Logger) SimulatorOption {
	return func(sim *Simulator) {
		sim.logger = logger
	}
}

func WithMetrics(metrics *Metrics) SimulatorOption {
	return func(sim *Simulator) {
		sim.metrics = metrics
	}
}

// NewSimulator creates a simulator. A nil config means NewConfig defaults.
func NewSimulator(config *Config, opts ...SimulatorOption) *Simulator {
	if config == nil {
		config = NewConfig()
	}

	sim := &Simulator{config: config}
	for _, opt := range opts {
		opt(sim)
	}

	if sim.logger == nil {
		sim.logger = NewLogger(config.LogLevel)
	}
	if sim.metrics == nil {
		sim.metrics = NewMetrics(nil)
	}

	return sim
}

func (sim *Simulator) Config() *Config {
	return sim.config
}

func (sim *Simulator) Metrics() *Metrics {
	return sim.metrics
}

type runOptions struct {
	source rand.Source
}

// RunOption configures a single Run.
type RunOption func(*runOptions)

// WithSeed makes the run reproducible.
func WithSeed(seed uint64) RunOption {
	return func(o *runOptions) {
		o.source = NewSeededSource(seed)
	}
}

// WithSource draws shots from source, e.g. NewEntropySource.
func WithSource(source rand.Source) RunOption {
	return func(o *runOptions) {
		o.source = source
	}
}

/*
Run executes the circuit and measures it shots times. Any error aborts the
run and no counts are returned.
*/
func (sim *Simulator) Run(circuit *Circuit, shots int, opts ...RunOption) (Counts, error) {
	startTime := time.Now()

	if circuit == nil {
		sim.metrics.recordRun(startTime, shots, ErrNoCircuit)
		return nil, ErrNoCircuit
	}

	counts, err := sim.run(circuit, shots, opts...)
	sim.metrics.recordRun(startTime, shots, err)

	if err != nil {
		sim.logger.Error("run failed", "qubits", circuit.qubits, "ops", len(circuit.ops), "err", err)
		return nil, err
	}

	sim.logger.Debug("run complete", "qubits", circuit.qubits, "ops", len(circuit.ops), "shots", shots, "outcomes", len(counts), "elapsed", time.Since(startTime))
	return counts, nil
}

func (sim *Simulator) run(circuit *Circuit, shots int, opts ...RunOption) (Counts, error) {
	state, sampler, err := sim.prepare(circuit, shots, opts...)
	if err != nil {
		return nil, err
	}
	return sampler.Sample(state, shots, circuit.measured)
}

/*
Memory runs the circuit like Run but keeps every shot, in draw order, as a
basis string over the measured qubits.
*/
func (sim *Simulator) Memory(circuit *Circuit, shots int, opts ...RunOption) ([]string, error) {
	startTime := time.Now()

	state, sampler, err := sim.prepare(circuit, shots, opts...)
	if err != nil {
		sim.metrics.recordRun(startTime, shots, err)
		return nil, err
	}

	outcomes, err := sampler.Draw(state, shots, circuit.measured)
	sim.metrics.recordRun(startTime, shots, err)
	if err != nil {
		return nil, err
	}

	memory := make([]string, len(outcomes))
	for i, outcome := range outcomes {
		memory[i] = FormatBasis(outcome, len(circuit.measured))
	}
	return memory, nil
}

func (sim *Simulator) prepare(circuit *Circuit, shots int, opts ...RunOption) (*QuantumState, *Sampler, error) {
	if shots < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	options := runOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	state, err := sim.evolve(circuit)
	if err != nil {
		return nil, nil, err
	}

	return state, NewSampler(options.source), nil
}

// Statevector returns the state right before measurement.
func (sim *Simulator) Statevector(circuit *Circuit) (*QuantumState, error) {
	if circuit == nil {
		return nil, ErrNoCircuit
	}

	state, err := sim.evolve(circuit)
	if err != nil {
		sim.logger.Error("statevector failed", "qubits", circuit.qubits, "err", err)
		return nil, err
	}
	return state, nil
}

func (sim *Simulator) evolve(circuit *Circuit) (*QuantumState, error) {
	if circuit == nil {
		return nil, ErrNoCircuit
	}

	state, err := NewQuantumState(circuit.qubits)
	if err != nil {
		return nil, err
	}

	for i, op := range circuit.ops {
		if sim.config.ValidateUnitary {
			if err := op.Gate.Validate(sim.config.Tolerance); err != nil {
				return nil, fmt.Errorf("operation %d: %w", i, err)
			}
		}

		if err := state.Apply(op.Gate, op.Targets...); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op, err)
		}
		sim.metrics.GatesApplied.Inc()
	}

	if err := state.CheckNorm(sim.config.Tolerance); err != nil {
		sim.logger.Warn("renormalizing state", "err", err)
		sim.metrics.DriftEvents.Inc()
		state.Renormalize()
	}

	if sim.logger.GetLevel() <= log.DebugLevel {
		sim.logger.Debug("final state", "amplitudes", spew.Sdump(state.vector))
	}

	return state, nil
}

/*
Execute parses a text circuit description and runs it with default settings.
A nil seed draws from an unseeded generator.
*/
func Execute(qubits int, description string, shots int, seed *uint64) (Counts, error) {
	circuit, err := ParseCircuit(qubits, description)
	if err != nil {
		return nil, err
	}

	var opts []RunOption
	if seed != nil {
		opts = append(opts, WithSeed(*seed))
	}

	return NewSimulator(nil).Run(circuit, shots, opts...)
}
