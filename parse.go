package qsim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

/*
ParseCircuit reads the compact text form of a circuit:

	h 0; cx 0 1   # Bell pair
	rz(0.5) 1
	measure 0 1

Instructions are separated by semicolons or newlines and '#' starts a
comment. Parameters go in parentheses after the gate name. A missing measure
instruction measures every qubit.
*/
func ParseCircuit(qubits int, text string) (*Circuit, error) {
	builder := NewBuilder(qubits)

	for lineNo, line := range strings.Split(text, "\n") {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}

			if err := parseStatement(builder, stmt); err != nil {
				return nil, fmt.Errorf("%w: line %d %q: %w", ErrParse, lineNo+1, stmt, err)
			}
		}
	}

	return builder.Build()
}

func parseStatement(builder *Builder, stmt string) error {
	fields := strings.Fields(stmt)
	head, args := fields[0], fields[1:]

	name, params, err := splitParams(head)
	if err != nil {
		return err
	}

	targets := make([]int, len(args))
	for i, arg := range args {
		arg = strings.TrimSuffix(arg, ",")
		arg = strings.TrimSuffix(strings.TrimPrefix(arg, "q["), "]")
		if targets[i], err = strconv.Atoi(arg); err != nil {
			return fmt.Errorf("bad qubit %q", args[i])
		}
	}

	if strings.EqualFold(name, "measure") {
		if len(params) != 0 {
			return errors.New("measure takes no parameters")
		}
		builder.Measure(targets...)
		return builder.Err()
	}

	gate, err := LookupGate(name, params, len(targets))
	if err != nil {
		return err
	}

	builder.Apply(gate, targets...)
	return builder.Err()
}

func splitParams(head string) (string, []float64, error) {
	open := strings.IndexByte(head, '(')
	if open < 0 {
		return head, nil, nil
	}

	if !strings.HasSuffix(head, ")") {
		return "", nil, fmt.Errorf("unterminated parameter list in %q", head)
	}

	var params []float64
	for _, raw := range strings.Split(head[open+1:len(head)-1], ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		p, err := parseAngle(raw)
		if err != nil {
			return "", nil, err
		}
		params = append(params, p)
	}

	return head[:open], params, nil
}

// parseAngle accepts plain numbers and the forms pi, pi/N, N*pi and N*pi/M.
func parseAngle(raw string) (float64, error) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v, nil
	}

	expr := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	num, den := expr, "1"
	if idx := strings.IndexByte(expr, '/'); idx >= 0 {
		num, den = expr[:idx], expr[idx+1:]
	}

	factor := 1.0
	switch {
	case num == "pi":
	case num == "-pi":
		factor = -1
	case strings.HasSuffix(num, "*pi"):
		f, err := strconv.ParseFloat(strings.TrimSuffix(num, "*pi"), 64)
		if err != nil {
			return 0, fmt.Errorf("bad angle %q", raw)
		}
		factor = f
	default:
		return 0, fmt.Errorf("bad angle %q", raw)
	}

	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("bad angle %q", raw)
	}

	return factor * math.Pi / d, nil
}

// Instruction is one gate entry of a Program.
type Instruction struct {
	Gate    string    `yaml:"gate"`
	Targets []int     `yaml:"targets"`
	Params  []float64 `yaml:"params,omitempty"`
}

/*
Program is the YAML description of a circuit together with how it should be
run. Shots and Seed are optional; a zero Shots means the configured default.
*/
type Program struct {
	Name    string        `yaml:"name"`
	Qubits  int           `yaml:"qubits"`
	Shots   int           `yaml:"shots,omitempty"`
	Seed    *uint64       `yaml:"seed,omitempty"`
	Gates   []Instruction `yaml:"gates"`
	Measure []int         `yaml:"measure,omitempty"`
}

// Circuit builds the circuit the program describes.
func (p *Program) Circuit() (*Circuit, error) {
	builder := NewBuilder(p.Qubits)

	for i, inst := range p.Gates {
		gate, err := LookupGate(inst.Gate, inst.Params, len(inst.Targets))
		if err != nil {
			return nil, fmt.Errorf("%w: program %q gate %d: %w", ErrParse, p.Name, i, err)
		}
		builder.Apply(gate, inst.Targets...)
	}

	if len(p.Measure) > 0 {
		builder.Measure(p.Measure...)
	}

	return builder.Build()
}

// LoadProgram decodes a single YAML program.
func LoadProgram(r io.Reader) (*Program, error) {
	var program Program
	if err := yaml.NewDecoder(r).Decode(&program); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return &program, nil
}

// LoadPrograms decodes either a single program or a YAML list of programs.
func LoadPrograms(r io.Reader) ([]*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var programs []*Program
		if err := node.Decode(&programs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return programs, nil
	}

	program, err := LoadProgram(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return []*Program{program}, nil
}
