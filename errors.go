package qsim

import "errors"

var (
	ErrInvalidQubitIndex = errors.New("invalid qubit index")
	ErrInvalidQubitCount = errors.New("invalid qubit count")
	ErrNonUnitaryGate    = errors.New("gate matrix is not unitary")
	ErrNumericalDrift    = errors.New("numerical drift")
	ErrArityMismatch     = errors.New("target count does not match gate arity")
	ErrInvalidShots      = errors.New("invalid shot count")
	ErrCircuitFinalized  = errors.New("circuit already finalized")
	ErrUnknownGate       = errors.New("unknown gate")
	ErrInvalidParams     = errors.New("invalid gate parameters")
	ErrParse             = errors.New("parse error")
	ErrPoolClosed        = errors.New("pool closed")
	ErrNoCircuit         = errors.New("no circuit")
)
