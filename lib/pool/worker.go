package pool

import (
	"context"
	"fmt"

	"github.com/NoteDance/Pool/lib/rl"
)

// --------------------------------------------------------------------------
// Collection Worker
// --------------------------------------------------------------------------

// runWorker drives one environment in its own goroutine. The loop resets the
// environment, then repeatedly steps it, submits the resulting experience to
// the registry and advances the state. An episode boundary resets the
// environment and continues collecting; it does not stop the worker.
//
// maxSteps bounds the number of environment steps taken (<= 0 means
// unbounded). The only suspension points are the environment calls and,
// in balanced mode, the registry lock; cancellation is observed between
// steps.
//
// An environment failure is fatal to this worker and returned to the
// manager, which reports it. The other workers keep collecting.
func (m *Manager[S, A]) runWorker(ctx context.Context, id, maxSteps int) error {
	env := m.envs[id]

	state, err := env.Reset()
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	for step := 0; maxSteps <= 0 || step < maxSteps; step++ {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		action, next, reward, done, err := env.Step(state)
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}

		exp := rl.Experience[S, A]{
			State:     state,
			Action:    action,
			NextState: next,
			Reward:    reward,
			Done:      done,
		}

		if m.cfg.Balanced {
			m.registry.AppendBalanced(exp)
		} else {
			m.registry.AppendTo(id, exp)
		}

		if done {
			metricEpisodes.Inc()
			if state, err = env.Reset(); err != nil {
				return fmt.Errorf("reset after episode: %w", err)
			}
		} else {
			state = next
		}
	}

	return nil
}
