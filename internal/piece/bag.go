package piece

import (
	"math/rand/v2"

	"github.com/vovakirdan/blobfall/internal/core"
)

// Draw is one randomizer output: a shape and the color it spawns with.
type Draw struct {
	Shape Shape
	Color core.Color
}

// Bag deals shapes from a shuffled bag holding every shape once, refilled
// when empty. Colors are drawn independently from the palette.
type Bag struct {
	shapes  []Shape
	palette []core.Color
	rng     *rand.Rand
	queue   []Draw
}

// NewBag creates a randomizer. The same rng seed yields the same sequence.
func NewBag(shapes []Shape, palette []core.Color, rng *rand.Rand) *Bag {
	return &Bag{shapes: shapes, palette: palette, rng: rng}
}

// Next removes and returns the next draw.
func (b *Bag) Next() Draw {
	b.fill(1)
	d := b.queue[0]
	b.queue = b.queue[1:]
	return d
}

// Peek returns the next n draws without consuming them.
func (b *Bag) Peek(n int) []Draw {
	b.fill(n)
	return b.queue[:n]
}

func (b *Bag) fill(n int) {
	for len(b.queue) < n {
		order := b.rng.Perm(len(b.shapes))
		for _, i := range order {
			b.queue = append(b.queue, Draw{
				Shape: b.shapes[i],
				Color: b.palette[b.rng.IntN(len(b.palette))],
			})
		}
	}
}
