package board

// FindFloatingRow looks for the topology a settled board must never show: a
// completely empty row with blocks both above and below it. Lattice blocks
// never move, so once an anchored region appears above a row the blocks
// there may legitimately hang and the row is not reported.
// Returns the first such row from the top.
func FindFloatingRow(b *Board) (int, bool) {
	anchored := anchoredCells(b)
	movableAbove, anchoredAbove := false, false
	for y := 0; y < b.Rows; y++ {
		if b.RowEmpty(y) {
			if movableAbove && !anchoredAbove && hasBlocksBelow(b, y) {
				return y, true
			}
			continue
		}
		for x := 0; x < b.Cols; x++ {
			c := C(x, y)
			if !b.Filled(c) {
				continue
			}
			if _, fixed := anchored[c]; fixed {
				anchoredAbove = true
			} else {
				movableAbove = true
			}
		}
	}
	return -1, false
}

func anchoredCells(b *Board) map[Coord]struct{} {
	anchored := make(map[Coord]struct{})
	for _, bl := range BuildBlobs(b, BuildOptions{KeepLatticeOnly: true}) {
		if !bl.HasLattice(b) {
			continue
		}
		for _, p := range bl.Positions {
			anchored[p] = struct{}{}
		}
	}
	return anchored
}

func hasBlocksBelow(b *Board, y int) bool {
	for yy := y + 1; yy < b.Rows; yy++ {
		if !b.RowEmpty(yy) {
			return true
		}
	}
	return false
}
