package qsim

import "time"

// Job is one circuit run submitted to a Pool.
type Job struct {
	ID      string
	Circuit *Circuit
	Shots   int
	Seed    *uint64

	reply chan Result
}

// Result carries the outcome of a Job.
type Result struct {
	JobID     string
	Counts    Counts
	Err       error
	StartTime time.Time
	Duration  time.Duration
}
