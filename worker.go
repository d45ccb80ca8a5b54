package qsim

import (
	"context"
	"time"
)

// Worker pulls jobs off the pool queue and runs them one at a time.
type Worker struct {
	id   int
	pool *Pool
}

func (w *Worker) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job, ok := <-w.pool.jobs:
			if !ok {
				return nil
			}
			w.pool.sim.metrics.BatchQueueSize.Dec()
			job.reply <- w.processJob(job)
			close(job.reply)
		}
	}
}

func (w *Worker) processJob(job Job) Result {
	startTime := time.Now()

	var opts []RunOption
	if job.Seed != nil {
		opts = append(opts, WithSeed(*job.Seed))
	}

	w.pool.sim.logger.Debug("worker picked up job", "worker", w.id, "job", job.ID)
	counts, err := w.pool.sim.Run(job.Circuit, job.Shots, opts...)

	return Result{
		JobID:     job.ID,
		Counts:    counts,
		Err:       err,
		StartTime: startTime,
		Duration:  time.Since(startTime),
	}
}
