package server

import (
	"sync"

	"github.com/cardroom/holdem/game"
)

// User is a registered account. Table holds the id of the table the
// user currently sits at, empty when none.
type User struct {
	Name    string
	Balance float64
	Table   string
}

// Table groups member users and, once enough have joined, the live
// game.
type Table struct {
	ID      string
	Members map[string]bool
	Game    *game.Game
}

// Registry is the process-wide shared state: registered users, tables
// and one outbound message channel per connected user. A single
// exclusive lock guards all of it. The rule for every caller: do the
// mutation in a short critical section and release the lock before
// sending anything or sleeping.
type Registry struct {
	mu      sync.Mutex
	users   map[string]*User
	tables  map[string]*Table
	writers map[string]chan string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		users:   make(map[string]*User),
		tables:  make(map[string]*Table),
		writers: make(map[string]chan string),
	}
}

// removeWriter drops a disconnected user's outbound channel. Detached
// turn timers that already captured state for this user simply find
// nobody to notify.
func (r *Registry) removeWriter(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.writers, name)
}

// send queues a message for a user without ever blocking: a reader
// that stopped draining its channel loses messages rather than
// stalling game-state mutation.
func (r *Registry) send(name, msg string) {
	r.mu.Lock()
	out, ok := r.writers[name]
	r.mu.Unlock()
	if !ok {
		return
	}

	select {
	case out <- msg:
	default:
		serverLogger.Warn().Str("user", name).Msg("outbound channel full, dropping message")
	}
}
