// Package draft implementa el orden de turnos del draft inicial (snake draft).
package draft

import (
	"slices"

	"github.com/jose-valero/fantasy-vct-bot/internal/domain"
)

type State int

const (
	NotStarted State = iota
	InProgress
	Complete
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Complete:
		return "complete"
	}
	return "unknown"
}

const DefaultRounds = 7

// Coordinator no es thread-safe: el servicio de liga serializa las llamadas.
type Coordinator struct {
	state   State
	rounds  int
	shuffle Shuffler
	queue   []string
	current string
}

func New(opts ...Option) *Coordinator {
	c := &Coordinator{rounds: DefaultRounds}
	for _, o := range opts {
		o(c)
	}
	if c.shuffle == nil {
		c.shuffle = NewRandomShuffler()
	}
	return c
}

func (c *Coordinator) State() State        { return c.state }
func (c *Coordinator) Rounds() int         { return c.rounds }
func (c *Coordinator) Current() string     { return c.current }
func (c *Coordinator) Started() bool       { return c.state != NotStarted }
func (c *Coordinator) Completed() bool     { return c.state == Complete }
func (c *Coordinator) Remaining() []string { return slices.Clone(c.queue) }

// SetRounds sólo afecta a un Start posterior; una vez iniciado se ignora.
func (c *Coordinator) SetRounds(n int) error {
	if n < 1 {
		return domain.Validation("rounds must be at least 1, got %d", n)
	}
	if c.state != NotStarted {
		return nil
	}
	c.rounds = n
	return nil
}

// Start arma la cola y devuelve el primer drafter.
func (c *Coordinator) Start(ownerIDs []string) (string, error) {
	if c.state != NotStarted {
		return "", domain.State("draft already %s", c.state)
	}
	if len(ownerIDs) == 0 {
		return "", domain.Validation("no registered owners to draft")
	}
	c.queue = BuildQueue(ownerIDs, c.rounds, c.shuffle)
	c.state = InProgress
	c.current, c.queue = c.queue[0], c.queue[1:]
	return c.current, nil
}

// CanPick: completo → todos; en curso → sólo el actual; antes de empezar → nadie.
func (c *Coordinator) CanPick(ownerID string) bool {
	switch c.state {
	case Complete:
		return true
	case InProgress:
		return ownerID == c.current
	}
	return false
}

// Advance saca el siguiente de la cola; ok=false cuando no queda nadie y el draft termina.
func (c *Coordinator) Advance() (string, bool) {
	if len(c.queue) == 0 {
		c.state = Complete
		c.current = ""
		return "", false
	}
	c.current, c.queue = c.queue[0], c.queue[1:]
	return c.current, true
}

// Skip fuerza el estado completo desde cualquier estado (override de admin).
func (c *Coordinator) Skip() {
	c.state = Complete
	c.queue = nil
	c.current = ""
}

// BuildQueue mezcla una vez y en cada ronda invierte el orden antes de encolar.
// [A,B] x2 (sin mezcla) → B,A,A,B.
func BuildQueue(ownerIDs []string, rounds int, sh Shuffler) []string {
	order := slices.Clone(ownerIDs)
	if sh != nil {
		sh.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	q := make([]string, 0, len(order)*rounds)
	for range rounds {
		slices.Reverse(order)
		q = append(q, order...)
	}
	return q
}
