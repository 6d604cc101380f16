package board

import (
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/blobfall/internal/core"
)

// DefaultMaxPasses bounds each settling phase of a solve.
const DefaultMaxPasses = 100

// SolveOptions configure a gravity solve.
type SolveOptions struct {
	// MaxPasses bounds the iterations of each phase. Zero means DefaultMaxPasses.
	MaxPasses int

	// Barrier splits same-colored regions while building blobs (earthquake fault).
	Barrier func(a, b Coord) bool
}

// Journey records where one falling unit started and where it came to rest.
// Start[i] moved to End[i].
type Journey struct {
	BlobID int
	Color  core.Color
	Start  []Coord
	End    []Coord
}

// Distance returns how many rows the unit fell.
func (j Journey) Distance() int {
	if len(j.Start) == 0 {
		return 0
	}
	return j.End[0].Y - j.Start[0].Y
}

// Solution is the outcome of a gravity solve.
type Solution struct {
	Board    *Board    // Settled phantom board
	Journeys []Journey // Only units that moved
	Passes   [2]int    // Passes used by phase 1 and phase 2, summed over rounds
	Rounds   int       // Phase 1 + phase 2 rounds until nothing moved
}

// Moved reports whether any unit fell.
func (s Solution) Moved() bool {
	return len(s.Journeys) > 0
}

// MaxDistance returns the longest fall among the journeys.
func (s Solution) MaxDistance() int {
	d := 0
	for _, j := range s.Journeys {
		d = max(d, j.Distance())
	}
	return d
}

// unit is one independently movable body: a blob, or a single gremlin block.
type unit struct {
	id       int
	color    core.Color
	anchored bool
	gremlin  bool
	pos      []Coord
	start    []Coord
}

// body is what moves rigidly in one settling step: a compound group in
// phase 1, a single unit otherwise.
type body struct {
	units   []*unit
	members map[int]struct{}
}

func newBody(units ...*unit) body {
	bd := body{units: units, members: make(map[int]struct{}, len(units))}
	for _, u := range units {
		bd.members[u.id] = struct{}{}
	}
	return bd
}

func (bd body) anchored() bool {
	for _, u := range bd.units {
		if u.anchored {
			return true
		}
	}
	return false
}

func (bd body) lowestRow() int {
	low := -1
	for _, u := range bd.units {
		for _, p := range u.pos {
			low = max(low, p.Y)
		}
	}
	return low
}

type solver struct {
	board *Board
	units []*unit
	owner *intmap.Map[int, int] // cell index → unit id
}

// Solve settles every movable region of b and returns the settled phantom
// board together with the journeys that lead there. b itself is not modified;
// commit the result with ApplyJourneys.
//
// Phase 1 moves interlocked compound groups rigidly until none can fall,
// phase 2 lets every unit settle on its own. Both phases process bodies
// bottom to top and repeat to a fixed point. A unit dropped in phase 2 can
// leave interlocked neighbours hanging, so the two phases repeat with
// interlocks taken from the current positions until a round moves nothing.
func Solve(b *Board, opts SolveOptions) Solution {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	phantom := b.Clone()
	blobs := BuildBlobs(phantom, BuildOptions{Barrier: opts.Barrier})

	s := &solver{
		board: phantom,
		owner: intmap.New[int, int](phantom.Rows * phantom.Cols),
	}
	for _, bl := range blobs {
		s.addUnit(bl.Color, bl.HasLattice(phantom), false, bl.Positions)
	}
	for _, c := range phantom.FilledCoords() {
		if phantom.MetaAt(c).Gremlin {
			s.addUnit(phantom.Get(c).Color, false, true, []Coord{c})
		}
	}

	var sol Solution
	sol.Board = phantom

	for sol.Rounds < maxPasses {
		sol.Rounds++
		p1, moved1 := s.settle(s.compoundBodies(), maxPasses)
		p2, moved2 := s.settle(s.individualBodies(), maxPasses)
		sol.Passes[0] += p1
		sol.Passes[1] += p2
		if !moved1 && !moved2 {
			break
		}
	}

	for _, u := range s.units {
		if u.pos[0] == u.start[0] {
			continue
		}
		sol.Journeys = append(sol.Journeys, Journey{
			BlobID: u.id,
			Color:  u.color,
			Start:  u.start,
			End:    slices.Clone(u.pos),
		})
	}
	return sol
}

func (s *solver) addUnit(color core.Color, anchored, gremlin bool, cells []Coord) {
	u := &unit{
		id:       len(s.units),
		color:    color,
		anchored: anchored,
		gremlin:  gremlin,
		pos:      slices.Clone(cells),
		start:    slices.Clone(cells),
	}
	for _, c := range cells {
		s.owner.Put(s.board.index(c), u.id)
	}
	s.units = append(s.units, u)
}

// compoundBodies groups the blob units by their interlocks at the current
// positions. Units outside any group become single bodies.
func (s *solver) compoundBodies() []body {
	var blobs []*Blob
	var owners []*unit
	for _, u := range s.units {
		if u.gremlin {
			continue
		}
		blobs = append(blobs, newBlob(u.id, u.color, slices.Clone(u.pos)))
		owners = append(owners, u)
	}

	grouped := make(map[int]bool)
	var bodies []body
	for _, g := range DetectInterlocks(blobs) {
		members := make([]*unit, 0, len(g.Members))
		for _, i := range g.Members {
			members = append(members, owners[i])
			grouped[owners[i].id] = true
		}
		bodies = append(bodies, newBody(members...))
	}
	for _, u := range s.units {
		if !grouped[u.id] {
			bodies = append(bodies, newBody(u))
		}
	}
	return bodies
}

func (s *solver) individualBodies() []body {
	bodies := make([]body, 0, len(s.units))
	for _, u := range s.units {
		bodies = append(bodies, newBody(u))
	}
	return bodies
}

// settle repeatedly drops bodies bottom to top until nothing moves or the
// pass limit is reached. Returns the number of passes used and whether
// anything fell.
func (s *solver) settle(bodies []body, maxPasses int) (int, bool) {
	passes := 0
	fell := false
	for passes < maxPasses {
		passes++
		// Lower bodies first so they vacate space before the ones above look.
		slices.SortStableFunc(bodies, func(a, b body) int {
			return b.lowestRow() - a.lowestRow()
		})

		moved := false
		for _, bd := range bodies {
			if bd.anchored() {
				continue
			}
			if d := s.fallDistance(bd); d > 0 {
				s.shift(bd, d)
				moved = true
			}
		}
		if !moved {
			break
		}
		fell = true
	}
	return passes, fell
}

func (s *solver) isMember(c Coord, bd body) bool {
	if !s.board.InBounds(c) {
		return false
	}
	id, ok := s.owner.Get(s.board.index(c))
	if !ok {
		return false
	}
	_, member := bd.members[id]
	return member
}

// fallDistance returns how far the body can drop as a rigid whole.
// Every vertical run of member cells is measured from its bottom cell down
// to the first non-member obstacle or the floor; a run resting on another run
// of the same body does not constrain it. The body stops at its first point
// of contact, so the result is the minimum over all runs.
func (s *solver) fallDistance(bd body) int {
	dist := s.board.Rows
	for _, u := range bd.units {
		for _, p := range u.pos {
			below := p.Below()
			if s.isMember(below, bd) {
				continue
			}
			gap := 0
			for y := below.Y; y < s.board.Rows; y++ {
				c := C(p.X, y)
				if s.board.Filled(c) {
					if s.isMember(c, bd) {
						gap = -1
					}
					break
				}
				gap++
			}
			if gap >= 0 && gap < dist {
				dist = gap
			}
		}
	}
	if dist >= s.board.Rows {
		return 0
	}
	return dist
}

// shift moves all cells of the body down by d rows in one step: every member
// is lifted off the phantom before any is placed, so no member can see
// another member's vacated cell as an obstacle.
func (s *solver) shift(bd body, d int) {
	var lifted []Block
	for _, u := range bd.units {
		for _, p := range u.pos {
			lifted = append(lifted, s.board.BlockAt(p))
			s.board.ClearCell(p)
			s.owner.Del(s.board.index(p))
		}
	}
	i := 0
	for _, u := range bd.units {
		for k, p := range u.pos {
			blk := lifted[i]
			i++
			blk.Pos = p.Add(0, d)
			s.board.PutBlock(blk)
			s.owner.Put(s.board.index(blk.Pos), u.id)
			u.pos[k] = blk.Pos
		}
	}
}

// ApplyJourneys commits the result of a solve in one step: every start cell
// is read and cleared first, then every end cell is written with the original
// color and flags.
func (b *Board) ApplyJourneys(journeys []Journey) {
	moving := make([][]Block, len(journeys))
	for i, j := range journeys {
		moving[i] = make([]Block, len(j.Start))
		for k, c := range j.Start {
			moving[i][k] = b.BlockAt(c)
		}
	}
	for _, j := range journeys {
		for _, c := range j.Start {
			b.ClearCell(c)
		}
	}
	for i, j := range journeys {
		for k, c := range j.End {
			blk := moving[i][k]
			blk.Pos = c
			b.PutBlock(blk)
		}
	}
}
