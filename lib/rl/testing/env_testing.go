package testing

import (
	"testing"

	"github.com/NoteDance/Pool/lib/rl"
)

// EnvFactory is a function that creates a new instance of an Environment
// implementation
type EnvFactory[S, A any] func() rl.Environment[S, A]

// maxEpisodeSteps bounds episode-termination probes so that environments
// with very long (or unbounded) episodes don't hang the suite
const maxEpisodeSteps = 100_000

// RunEnvironmentTests runs a contract test suite for an Environment
// implementation.
func RunEnvironmentTests[S, A any](t *testing.T, name string, factory EnvFactory[S, A]) {
	t.Run(name, func(t *testing.T) {
		t.Run("Reset", func(t *testing.T) {
			testReset(t, factory())
		})

		t.Run("StepAfterReset", func(t *testing.T) {
			testStepAfterReset(t, factory())
		})

		t.Run("ResetAfterDone", func(t *testing.T) {
			testResetAfterDone(t, factory())
		})

		t.Run("ContinuousCollection", func(t *testing.T) {
			testContinuousCollection(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testReset[S, A any](t *testing.T, env rl.Environment[S, A]) {
	if _, err := env.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// a second reset must be valid as well
	if _, err := env.Reset(); err != nil {
		t.Errorf("Second Reset failed: %v", err)
	}
}

func testStepAfterReset[S, A any](t *testing.T, env rl.Environment[S, A]) {
	state, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if _, _, _, _, err := env.Step(state); err != nil {
		t.Errorf("Step after Reset failed: %v", err)
	}
}

func testResetAfterDone[S, A any](t *testing.T, env rl.Environment[S, A]) {
	state, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// run until the episode terminates
	terminated := false
	for i := 0; i < maxEpisodeSteps; i++ {
		_, next, _, done, err := env.Step(state)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		if done {
			terminated = true
			break
		}
		state = next
	}

	if !terminated {
		t.Skipf("no episode boundary within %d steps", maxEpisodeSteps)
	}

	if _, err := env.Reset(); err != nil {
		t.Errorf("Reset after episode end failed: %v", err)
	}
}

func testContinuousCollection[S, A any](t *testing.T, env rl.Environment[S, A]) {
	const steps = 500

	state, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	// the collection worker loop: step, reset on done, continue
	collected := 0
	for i := 0; i < steps; i++ {
		_, next, _, done, err := env.Step(state)
		if err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
		collected++

		if done {
			if state, err = env.Reset(); err != nil {
				t.Fatalf("Reset after episode end failed: %v", err)
			}
		} else {
			state = next
		}
	}

	if collected != steps {
		t.Errorf("Expected %d collected transitions, got %d", steps, collected)
	}
}
