package rl

// --------------------------------------------------------------------------
// Experience Tuple
// --------------------------------------------------------------------------

// Experience is one (state, action, next state, reward, done) sample produced
// by a single environment step. The state and action types are generic so that
// environments can use whatever representation fits them (vectors, indices,
// structs, ...). No shape validation is performed by the pool.
type Experience[S, A any] struct {
	State     S
	Action    A
	NextState S
	Reward    float64
	Done      bool
}

// --------------------------------------------------------------------------
// Batch (flattened read-back form)
// --------------------------------------------------------------------------

// Batch holds experiences in columnar form: five parallel slices that are
// equal in length at every observable point. It is the result of reading the
// whole pool back for training.
type Batch[S, A any] struct {
	States     []S
	Actions    []A
	NextStates []S
	Rewards    []float64
	Dones      []bool
}

// Len returns the common length of the five columns.
func (b *Batch[S, A]) Len() int {
	return len(b.States)
}

// Append adds the columns of other to the end of b, preserving order.
func (b *Batch[S, A]) Append(other Batch[S, A]) {
	b.States = append(b.States, other.States...)
	b.Actions = append(b.Actions, other.Actions...)
	b.NextStates = append(b.NextStates, other.NextStates...)
	b.Rewards = append(b.Rewards, other.Rewards...)
	b.Dones = append(b.Dones, other.Dones...)
}

// --------------------------------------------------------------------------
// Environment Interface
// --------------------------------------------------------------------------

// Environment is the contract between the pool and an environment simulator.
// The pool never inspects states or actions, it only collects them.
//
// Implementations are driven by exactly one collection worker at a time and
// are therefore not required to be safe for concurrent use. A hung Reset or
// Step call stalls its worker indefinitely - the pool defines no timeouts for
// environment calls.
type Environment[S, A any] interface {

	// Reset starts a new episode and returns the initial state.
	Reset() (state S, err error)

	// Step advances the environment by one transition. The passed state is
	// the context from which the environment selects the action it takes;
	// it returns the action taken, the resulting state, the reward and
	// whether the episode terminated.
	Step(state S) (action A, next S, reward float64, done bool, err error)
}
