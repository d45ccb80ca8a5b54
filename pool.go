package qsim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

/*
Pool runs independent circuits concurrently. Each job gets its own state
vector and its own generator inside Simulator.Run, so the only thing
workers share is the queue. A seeded job yields the same counts no matter
which worker picks it up or how many workers there are.
*/
type Pool struct {
	ctx     context.Context
	cancel  context.CancelFunc
	sim     *Simulator
	jobs    chan Job
	group   *errgroup.Group
	mu      sync.RWMutex
	closed  bool
	workers []*Worker
}

// NewPool starts workers goroutines. Fewer than one worker is treated as one.
func NewPool(ctx context.Context, sim *Simulator, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(ctx)

	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
		sim:    sim,
		jobs:   make(chan Job, workers*10),
		group:  group,
	}

	for i := 0; i < workers; i++ {
		worker := &Worker{id: i, pool: p}
		p.workers = append(p.workers, worker)
		group.Go(func() error {
			return worker.run(groupCtx)
		})
	}

	sim.logger.Info("pool started", "workers", workers)
	return p
}

/*
Schedule queues a job and returns a channel that receives exactly one
Result. Scheduling failures (closed pool, cancelled context, timeout) are
delivered the same way.
*/
func (p *Pool) Schedule(job Job) <-chan Result {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.reply = make(chan Result, 1)

	if job.Circuit == nil {
		return failed(job, fmt.Errorf("%w: job %s", ErrNoCircuit, job.ID))
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return failed(job, ErrPoolClosed)
	}

	select {
	case p.jobs <- job:
		p.sim.metrics.BatchQueueSize.Inc()
		return job.reply
	case <-p.ctx.Done():
		return failed(job, p.ctx.Err())
	case <-time.After(p.sim.config.SchedulingTimeout):
		p.sim.logger.Warn("no worker available", "job", job.ID)
		return failed(job, fmt.Errorf("job %s scheduling timeout after %v", job.ID, p.sim.config.SchedulingTimeout))
	}
}

// Close stops accepting jobs, waits for queued jobs to finish and releases the workers.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	err := p.group.Wait()

	// Jobs still queued when the context was cancelled never reached a worker.
	for job := range p.jobs {
		p.sim.metrics.BatchQueueSize.Dec()
		job.reply <- Result{JobID: job.ID, Err: context.Cause(p.ctx)}
		close(job.reply)
	}

	p.cancel()
	p.sim.logger.Info("pool closed")
	return err
}

func failed(job Job, err error) <-chan Result {
	job.reply <- Result{JobID: job.ID, Err: err}
	close(job.reply)
	return job.reply
}

/*
RunBatch runs every job on a temporary pool and returns the results in
submission order. Per-job failures are reported in their Result; the
returned error is only set when ctx ends first.
*/
func RunBatch(ctx context.Context, sim *Simulator, jobs []Job, workers int) ([]Result, error) {
	pool := NewPool(ctx, sim, workers)

	replies := make([]<-chan Result, len(jobs))
	for i, job := range jobs {
		replies[i] = pool.Schedule(job)
	}

	results := make([]Result, len(jobs))
	for i, reply := range replies {
		select {
		case results[i] = <-reply:
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		}
	}

	return results, pool.Close()
}
