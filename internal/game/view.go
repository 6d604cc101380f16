package game

import (
	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/piece"
)

// View is a read-only frame for renderers. Board is a copy; the piece
// fields are nil when no piece is falling.
type View struct {
	Board    *board.Board
	Piece    *piece.Piece
	Ghost    *piece.Piece
	Phase    Phase
	Journeys []board.Journey // Falls being played back, end cells already on Board
	Flash    []board.Coord   // Cells being cleared or consumed by a formation
	Progress float64         // Playback position of the current animation, 0..1
	Next     []piece.Draw
}

// View returns the current frame.
func (g *Game) View() View {
	v := View{
		Board: g.board.Clone(),
		Phase: g.phase,
		Next:  g.Next(),
	}
	if g.active != nil {
		p := *g.active
		v.Piece = &p
		v.Ghost = g.Ghost()
	}
	if a := g.anim; a != nil {
		v.Progress = a.Progress()
		switch a.kind {
		case animFall:
			v.Journeys = append([]board.Journey(nil), a.journeys...)
		case animLineClear:
			for _, y := range a.rows {
				for x := range g.board.Cols {
					v.Flash = append(v.Flash, board.C(x, y))
				}
			}
		case animFormation:
			v.Flash = a.formation.Cells()
		}
	}
	return v
}
