package subprocess

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dataflowgraph/sgn/core"
)

// registration pairs a Worker with the Func it runs, captured at
// Supervisor.Register time so Start can launch every worker uniformly.
type registration struct {
	worker *Worker
	fn     Func
}

// Supervisor is the goroutine-native analogue of subprocess.py's SubProcess
// context manager: it owns the roster of workers and shared segments for
// one pipeline run, starts every worker before the pipeline runs, and tears
// all of them down when the run ends. Teardown sets each worker's stop
// event, on success and on failure alike, so input still queued is not
// drained; the orderly drain is Worker.Shutdown, which the Supervisor does
// not call.
//
// Unlike SubProcess, a Supervisor instance is not a shared class-level
// registry; each Supervisor owns exactly the workers registered with it,
// which avoids the original's global shm_list/instance_list mutable class
// state.
type Supervisor struct {
	mu          sync.Mutex
	regs        []registration
	shm         *shmRoster
	joinTimeout time.Duration

	wg sync.WaitGroup
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithJoinTimeout overrides the default 5s join timeout used while stopping
// workers (subprocess.py's process_join_timeout).
func WithJoinTimeout(d time.Duration) Option {
	return func(s *Supervisor) { s.joinTimeout = d }
}

// NewSupervisor constructs an empty Supervisor.
func NewSupervisor(opts ...Option) *Supervisor {
	s := &Supervisor{
		shm:         newShmRoster(),
		joinTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a worker/function pair to the supervisor's roster. Call
// this before Start.
func (s *Supervisor) Register(w *Worker, fn Func) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs = append(s.regs, registration{worker: w, fn: fn})
}

// ToSHM registers a named shared segment, the Go analogue of
// SubProcess.to_shm. It fails if name is already registered.
func (s *Supervisor) ToSHM(name string, data []byte, meta map[string]any) (*Segment, error) {
	return s.shm.register(name, data, meta)
}

// Lookup returns a previously registered segment by name, or nil.
func (s *Supervisor) Lookup(name string) *Segment {
	return s.shm.lookup(name)
}

// Start launches every registered worker's run loop on its own goroutine,
// the analogue of SubProcess.__enter__'s "for e in instance_list:
// e.process.start()".
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.regs {
		r := r
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			r.worker.run(ctx, r.fn)
		}()
	}
}

// Stop signals every worker to stop immediately, waits up to the configured
// join timeout for them to exit, and unlinks shared segments - the
// analogue of SubProcess.__exit__.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	regs := append([]registration(nil), s.regs...)
	s.mu.Unlock()

	for _, r := range regs {
		r.worker.Stop()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(s.joinTimeout):
		log.Warn().Dur("timeout", s.joinTimeout).
			Msg("subprocess supervisor: one or more workers did not terminate before the join timeout")
	}
	s.shm.unlinkAll()
}

// Run executes pipeline under this supervisor's workers: it assumes Start
// has already been called, runs the pipeline to completion, and always
// stops every worker on the way out - on an error it stops them first and
// wraps the error, on success it stops them after, mirroring
// SubProcess.run()'s try/except around pipeline.run().
func (s *Supervisor) Run(ctx context.Context, p *core.Pipeline) error {
	if p == nil {
		return fmt.Errorf("subprocess: Supervisor.Run requires a non-nil pipeline")
	}
	if err := p.Run(ctx); err != nil {
		s.Stop()
		return fmt.Errorf("subprocess: pipeline run failed: %w", err)
	}
	s.Stop()
	return nil
}
