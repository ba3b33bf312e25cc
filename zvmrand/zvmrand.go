// Package zvmrand implements the random opcode's number generator
// (spec.md's supplemented RNG layer), grounded on the teacher's
// zmachine.go rng field and its seeding rules: a positive argument draws
// from [1, n], zero reseeds unpredictably, and a negative argument
// reseeds deterministically from its own value.
package zvmrand

import (
	"math/rand"
	"time"
)

// Generator implements host.RNG with Go's math/rand.
type Generator struct {
	r *rand.Rand
}

// New builds a generator seeded from the clock, the same default the
// teacher's ZMachine constructor uses.
func New() *Generator {
	return &Generator{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *Generator) Seed(seed int64) {
	g.r = rand.New(rand.NewSource(seed))
}

func (g *Generator) SeedFromClock() {
	g.r = rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (g *Generator) Int31n(n int32) int32 {
	if n <= 0 {
		return 0
	}
	return g.r.Int31n(n)
}

// Roll implements the full random opcode argument convention: n>0 draws a
// value in [1,n], n==0 reseeds from the clock and returns 0, n<0 reseeds
// deterministically from n and returns 0.
func Roll(g *Generator, n int16) uint16 {
	switch {
	case n > 0:
		return uint16(g.Int31n(int32(n))) + 1
	case n == 0:
		g.SeedFromClock()
		return 0
	default:
		g.Seed(int64(n))
		return 0
	}
}
