package board

// RowClear describes the outcome of removing completed rows.
type RowClear struct {
	Rows    []int
	Removed []Block
}

// Lines returns the number of rows removed.
func (rc RowClear) Lines() int {
	return len(rc.Rows)
}

// FullRows returns every completely filled row, top to bottom.
func FullRows(b *Board) []int {
	var rows []int
	for y := 0; y < b.Rows; y++ {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows empties the given rows and returns what was removed.
// Nothing is shifted: the gravity solver performs every downward move.
func ClearRows(b *Board, rows []int) RowClear {
	rc := RowClear{Rows: rows}
	for _, y := range rows {
		for x := 0; x < b.Cols; x++ {
			c := C(x, y)
			if b.Filled(c) {
				rc.Removed = append(rc.Removed, b.BlockAt(c))
				b.ClearCell(c)
			}
		}
	}
	return rc
}
