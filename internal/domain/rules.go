package domain

// Directions are scanned in this order; each one is paired with its opposite.
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// CheckWin reports whether the token at (row, column) is part of a run of
// at least winLength same-coloured cells. Only lines through that cell are
// inspected, so the cost is O(winLength) per direction.
func CheckWin(grid [][]Cell, row, column, winLength int) bool {
	return len(WinningRun(grid, row, column, winLength)) > 0
}

// WinningRun returns the cells of the first run through (row, column) that is
// at least winLength long, ordered from one end to the other, or nil.
func WinningRun(grid [][]Cell, row, column, winLength int) []Position {
	if !inBounds(grid, row, column) {
		return nil
	}
	cell := grid[row][column]
	if !isToken(cell) {
		return nil
	}

	for _, dir := range directions {
		dRow, dCol := dir[0], dir[1]
		forward := CountDiskInDirection(grid, row, column, dRow, dCol, cell)
		backward := CountDiskInDirection(grid, row, column, -dRow, -dCol, cell)
		total := 1 + forward + backward
		if total < winLength {
			continue
		}

		run := make([]Position, 0, total)
		r, c := row-dRow*backward, column-dCol*backward
		for i := 0; i < total; i++ {
			run = append(run, Position{Row: r, Column: c})
			r += dRow
			c += dCol
		}
		return run
	}

	return nil
}
