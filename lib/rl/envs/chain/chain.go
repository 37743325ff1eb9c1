package chain

import (
	"math/rand/v2"

	"github.com/NoteDance/Pool/lib/pool/util"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// Actions of the random-walk policy
const (
	ActionLeft  = -1
	ActionRight = 1
)

const (
	defaultLength = 11
	stepPenalty   = -0.01
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures the chain environment
type Options struct {
	Length int    // Number of states on the chain (minimum 3)
	Seed   uint64 // Seed for the walk (0 = random)
}

// DefaultOptions returns the default chain environment options
func DefaultOptions() *Options {
	return &Options{
		Length: defaultLength,
	}
}

// --------------------------------------------------------------------------
// Environment
// --------------------------------------------------------------------------

// Env is a bounded random walk on a chain of states 0..Length-1. Episodes
// start in the middle, every step moves one state left or right under a
// seeded random policy, and both ends are terminal: the right end rewards
// +1, the left end -1, every other step costs a small penalty.
//
// It implements rl.Environment[int, int] and serves as the reference
// environment for the CLI and the pool tests. It is deterministic for a
// fixed seed.
type Env struct {
	length int
	rng    *rand.Rand
}

// New creates a chain environment with the specified options (optional)
func New(opts *Options) *Env {
	if opts == nil {
		opts = DefaultOptions()
	}

	length := opts.Length
	if length < 3 {
		length = 3
	}

	seed := opts.Seed
	if seed == 0 {
		seed = util.GenerateSeed()
	}

	return &Env{
		length: length,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Reset starts a new episode in the middle of the chain.
func (e *Env) Reset() (int, error) {
	return e.length / 2, nil
}

// Step selects a random direction, moves one state from the passed state
// context and returns the transition. The episode terminates at either end
// of the chain.
func (e *Env) Step(state int) (action int, next int, reward float64, done bool, err error) {
	action = ActionLeft
	if e.rng.IntN(2) == 1 {
		action = ActionRight
	}

	next = state + action
	switch {
	case next <= 0:
		return action, 0, -1, true, nil
	case next >= e.length-1:
		return action, e.length - 1, 1, true, nil
	default:
		return action, next, stepPenalty, false, nil
	}
}
