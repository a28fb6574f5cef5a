// Package drawing implements the winner-selection engine. Selection
// is an independent uniform sample over the candidate list on every
// call; the engine never touches the ledger, the caller commits the
// winner afterwards.
package drawing

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/targihasta/fair-lottery/internal/model"
)

var (
	// ErrNoCandidates refuses a draw over an empty eligible set.
	ErrNoCandidates = errors.New("no eligible candidates")
	// ErrDrawInProgress enforces the single-flight discipline: a second
	// draw cannot start while a previous result is pending commit.
	ErrDrawInProgress = errors.New("draw already in progress")
)

// State of the engine. The Spinning window covers the time between
// winner selection and the caller's commit; any presentation delay is
// cosmetic and lives entirely inside that window.
type State int

const (
	StateIdle State = iota
	StateSpinning
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateSpinning:
		return "SPINNING"
	case StateSettled:
		return "SETTLED"
	}
	return "UNKNOWN"
}

// Engine holds only the draw state machine. Safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	state State
}

func NewEngine() *Engine { return &Engine{state: StateIdle} }

// State reports the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Select picks one candidate uniformly at random and moves the engine
// to Spinning. The winner is committed at this moment; each call is an
// independent sample with no memory of past draws. The caller must
// mark the winner on the ledger and then call Settle exactly once.
func (e *Engine) Select(candidates []model.Order) (model.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateSpinning {
		return model.Order{}, ErrDrawInProgress
	}
	if len(candidates) == 0 {
		return model.Order{}, ErrNoCandidates
	}
	winner := candidates[rand.Intn(len(candidates))]
	e.state = StateSpinning
	return winner, nil
}

// Settle records that the caller committed the winner. The engine
// stays Settled until the next Select; only the Spinning window blocks
// a new draw.
func (e *Engine) Settle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateSpinning {
		e.state = StateSettled
	}
}
