package draft

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

type Option func(*Coordinator)

func WithShuffler(s Shuffler) Option {
	return func(c *Coordinator) { c.shuffle = s }
}

func WithRounds(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.rounds = n
		}
	}
}

// Shuffler lo cumple *rand.Rand; en tests se inyecta uno determinista.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NoShuffle deja el orden de registro tal cual.
type NoShuffle struct{}

func (NoShuffle) Shuffle(int, func(i, j int)) {}

// NewSeededShuffler es reproducible para una misma semilla.
func NewSeededShuffler(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomShuffler siembra desde crypto/rand; si falla cae al generador global.
func NewRandomShuffler() Shuffler {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return globalShuffler{}
	}
	return NewSeededShuffler(binary.LittleEndian.Uint64(b[:]))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }
