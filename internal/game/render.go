package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blobfall/internal/board"
	"github.com/vovakirdan/blobfall/internal/core"
)

const (
	cellWidth = 2  // Terminal columns per block
	hudWidth  = 18 // Side panel width
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.board == nil {
		return
	}

	wellW := g.board.Cols*cellWidth + 2
	wellH := g.board.Rows + 2
	if dst.Width() < wellW+hudWidth || dst.Height() < wellH {
		g.renderTooSmall(dst)
		return
	}

	wellX := (dst.Width() - wellW - hudWidth) / 2
	wellY := (dst.Height() - wellH) / 2
	dst.DrawBox(core.NewRect(wellX, wellY, wellW, wellH))

	g.renderWell(dst, wellX+1, wellY+1)
	g.renderPiece(dst, wellX+1, wellY+1)
	g.renderDisasters(dst, wellX+1, wellY+1)
	g.renderHUD(dst, wellX+wellW+2, wellY)
	g.renderOverlays(dst, wellX+wellW/2, wellY+wellH/2)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) drawBlock(dst *core.Screen, ox, oy int, c board.Coord, glyph rune, color core.Color) {
	if c.Y < 0 {
		return
	}
	x := ox + c.X*cellWidth
	for i := 0; i < cellWidth; i++ {
		dst.SetColored(x+i, oy+c.Y, glyph, color)
	}
}

// renderWell draws settled blocks. During a fall the moving units are drawn
// above their landing cells.
func (g *Game) renderWell(dst *core.Screen, ox, oy int) {
	moving := map[board.Coord]struct{}{}
	if g.anim != nil && g.anim.kind == animFall {
		for _, j := range g.anim.journeys {
			off := g.anim.fallOffset(j)
			for _, end := range j.End {
				moving[end] = struct{}{}
				blk := g.board.BlockAt(end)
				g.drawBlock(dst, ox, oy, board.C(end.X, end.Y-off), blockGlyph(blk), blk.Cell.Color)
			}
		}
	}

	flash := map[board.Coord]struct{}{}
	blink := g.anim != nil && int(g.anim.Progress()*6)%2 == 1
	if g.anim != nil && blink {
		switch g.anim.kind {
		case animLineClear:
			for _, y := range g.anim.rows {
				for x := 0; x < g.board.Cols; x++ {
					flash[board.C(x, y)] = struct{}{}
				}
			}
		case animFormation:
			for _, c := range g.anim.formation.Cells() {
				flash[c] = struct{}{}
			}
		case animFall:
		}
	}

	for _, c := range g.board.FilledCoords() {
		if _, ok := moving[c]; ok {
			continue
		}
		blk := g.board.BlockAt(c)
		glyph := blockGlyph(blk)
		if _, ok := flash[c]; ok {
			glyph = '░'
		}
		g.drawBlock(dst, ox, oy, c, glyph, blk.Cell.Color)
	}
}

func blockGlyph(blk board.Block) rune {
	switch {
	case blk.Meta.Lattice:
		return '▒'
	case blk.Meta.Fade.Active && blk.Meta.Fade.Opacity < 0.5:
		return '░'
	case blk.Meta.Fade.Active:
		return '▓'
	default:
		return '█'
	}
}

func (g *Game) renderPiece(dst *core.Screen, ox, oy int) {
	if g.active == nil {
		return
	}
	if ghost := g.Ghost(); ghost != nil && ghost.Y != g.active.Y {
		for _, c := range ghost.Cells() {
			g.drawBlock(dst, ox, oy, c, '·', g.active.Color)
		}
	}
	for _, c := range g.active.Cells() {
		g.drawBlock(dst, ox, oy, c, '█', g.active.Color)
	}
}

func (g *Game) renderDisasters(dst *core.Screen, ox, oy int) {
	if t := g.tornado; t != nil && t.phase != TornadoDone {
		x := ox + t.column*cellWidth
		depth := g.board.Rows / 3
		for y := 0; y < depth; y++ {
			dst.SetColored(x, oy+y, '§', core.ColorWhite)
		}
	}
	if q := g.quake; q != nil && q.phase != EarthquakeShaking && q.phase != EarthquakeDone {
		for y, f := range q.fault {
			x := ox + f*cellWidth - 1
			if dst.Get(x, oy+y) == ' ' {
				dst.SetColored(x, oy+y, '╎', core.ColorOrange)
			}
		}
	}
}

// renderHUD draws score, progress, the preview and running disasters.
func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	dst.DrawText(x, y, strings.ToUpper(g.Title()))
	dst.DrawText(x, y+2, fmt.Sprintf("Score  %d", g.score))
	dst.DrawText(x, y+3, fmt.Sprintf("Lines  %d", g.lines))
	dst.DrawText(x, y+4, fmt.Sprintf("Level  %d", g.level))
	if g.cascade > 1 {
		dst.DrawTextColored(x, y+5, fmt.Sprintf("Chain x%d", g.cascade), core.ColorYellow)
	}
	dst.DrawText(x, y+6, "Tier   "+g.tier.String())

	dst.DrawText(x, y+8, "Next")
	row := y + 9
	for _, d := range g.Next() {
		for _, line := range strings.Split(d.Shape.String(), "\n") {
			for i, r := range line {
				if r == '#' {
					dst.SetColored(x+i, row, '█', d.Color)
				}
			}
			row++
		}
		row++
	}

	for i, k := range g.ActiveDisasters() {
		dst.DrawTextColored(x, row+i, "! "+k.String(), core.ColorRed)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.over:
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	box := core.NewRect(centerX-width/2-2, centerY-len(lines)/2-1, width+4, len(lines)+2)
	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(centerX-len([]rune(line))/2, box.Y+1+i, line)
	}
}
