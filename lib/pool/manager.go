package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/NoteDance/Pool/lib/rl"
)

// --------------------------------------------------------------------------
// Collection Manager
// --------------------------------------------------------------------------

// Manager owns the partition registry and the set of collection workers.
// It launches exactly Processes workers, one per environment, and exposes
// the flattened read-back of everything they collected.
//
// Collection can run in two modes: RunForSteps blocks until every worker
// has taken a fixed number of steps, Start/Stop runs the workers in the
// background until cancelled.
type Manager[S, A any] struct {
	cfg      Config
	envs     []rl.Environment[S, A]
	registry *Registry[S, A]

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	errs     chan error
	joinOnce *sync.Once
	joinErr  error
}

// NewManager creates a collection manager for the given environments.
// The configuration is validated here, before any worker starts; exactly
// cfg.Processes environments are required, one per worker.
//
// Thread-safety: This function is not thread-safe and should only be called
// once during initialization.
func NewManager[S, A any](cfg Config, envs []rl.Environment[S, A]) (*Manager[S, A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(envs) != cfg.Processes {
		return nil, NewError(RetCInvalidConfig,
			fmt.Sprintf("expected %d environments (one per process), got %d", cfg.Processes, len(envs)))
	}

	registry, err := NewRegistry[S, A](cfg)
	if err != nil {
		return nil, err
	}

	return &Manager[S, A]{
		cfg:      cfg,
		envs:     envs,
		registry: registry,
	}, nil
}

// Registry returns the underlying partition registry.
func (m *Manager[S, A]) Registry() *Registry[S, A] {
	return m.registry
}

// --------------------------------------------------------------------------
// Collection Control
// --------------------------------------------------------------------------

// launch starts one worker goroutine per environment. Caller holds m.mu.
// The cancel function is always set here so Stop works for both collection
// modes, bounded and background.
func (m *Manager[S, A]) launch(ctx context.Context, maxSteps int) {
	ctx, m.cancel = context.WithCancel(ctx)
	m.errs = make(chan error, m.cfg.Processes)
	m.joinOnce = new(sync.Once)
	m.wg.Add(m.cfg.Processes)

	plog.Infof("starting %d collection workers (balanced=%t, capacity=%d, policy=%s)",
		m.cfg.Processes, m.cfg.Balanced, m.cfg.Capacity(), m.cfg.Policy())

	for id := 0; id < m.cfg.Processes; id++ {
		go func(id int) {
			defer m.wg.Done()
			if err := m.runWorker(ctx, id, maxSteps); err != nil {
				metricWorkerErrors.Inc()
				plog.Errorf("worker %d failed: %v", id, err)
				m.errs <- NewError(RetCWorkerFailure, fmt.Sprintf("worker %d: %v", id, err))
			}
		}(id)
	}
}

// join waits for all workers to exit and returns their failures joined into
// a single error (nil if every worker finished cleanly). It may be reached
// twice for one run (RunForSteps and a concurrent Stop); the channel is
// drained and closed exactly once, both callers return the same result.
func (m *Manager[S, A]) join() error {
	m.wg.Wait()

	m.mu.Lock()
	once := m.joinOnce
	m.mu.Unlock()

	once.Do(func() {
		m.mu.Lock()
		m.running = false
		errs := m.errs
		cancel := m.cancel
		m.mu.Unlock()

		// release the derived context even when the run completed on its own
		cancel()

		close(errs)
		var joined []error
		for err := range errs {
			joined = append(joined, err)
		}

		plog.Infof("collection stopped (%d samples held, %d worker failures)",
			m.registry.Size(), len(joined))

		m.joinErr = errors.Join(joined...)
	})

	return m.joinErr
}

// RunForSteps runs bounded collection: every worker takes exactly
// stepsPerWorker environment steps (episode boundaries reset the environment
// and continue, they do not end collection early). It blocks until all
// workers are done or the context is cancelled and returns the joined
// failures of all workers. A concurrent Stop call cuts the run short.
func (m *Manager[S, A]) RunForSteps(ctx context.Context, stepsPerWorker int) error {
	if stepsPerWorker <= 0 {
		return NewError(RetCInvalidConfig, fmt.Sprintf("steps per worker must be positive, got %d", stepsPerWorker))
	}

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return NewError(RetCInvalidConfig, "collection is already running")
	}
	m.running = true
	m.launch(ctx, stepsPerWorker)
	m.mu.Unlock()

	return m.join()
}

// Start launches unbounded background collection. The workers run until the
// passed context is cancelled or Stop is called.
func (m *Manager[S, A]) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return NewError(RetCInvalidConfig, "collection is already running")
	}

	m.running = true
	m.launch(ctx, 0)

	return nil
}

// Stop signals all workers to exit after completing their current step,
// joins them and returns their joined failures. It works for both collection
// modes, background runs and in-flight RunForSteps calls. Stopping a manager
// that is not running is a no-op, concurrent Stop calls are safe.
func (m *Manager[S, A]) Stop() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	return m.join()
}

// --------------------------------------------------------------------------
// Read-back
// --------------------------------------------------------------------------

// ReadAll returns everything collected so far as five flat columns,
// concatenated in ascending partition index order. See Registry.ReadAll for
// the consistency contract: stop collection first or accept a stale read.
func (m *Manager[S, A]) ReadAll() rl.Batch[S, A] {
	return m.registry.ReadAll()
}

// Info returns statistics about the pool state.
func (m *Manager[S, A]) Info() Info {
	return m.registry.Info()
}
