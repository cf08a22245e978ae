package domain

// NewGrid allocates an empty rows x columns grid.
func NewGrid(rows, columns int) [][]Cell {
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, columns)
	}
	return grid
}

func inBounds(grid [][]Cell, row, column int) bool {
	return row >= 0 && row < len(grid) && column >= 0 && column < len(grid[row])
}

// DropDisk places the token in the lowest empty cell of the column
// and returns the row it landed in.
func DropDisk(grid [][]Cell, column int, cell Cell) (int, error) {
	if len(grid) == 0 || column < 0 || column >= len(grid[0]) {
		return -1, ErrColumnOutOfRange
	}

	// row 0 is the top, so the disk falls towards len(grid)-1
	for row := len(grid) - 1; row >= 0; row-- {
		if grid[row][column] == Empty {
			grid[row][column] = cell
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// this creates a deep copy of the grid
func CopyGrid(grid [][]Cell) [][]Cell {
	newGrid := make([][]Cell, len(grid))
	for i := range grid {
		newGrid[i] = make([]Cell, len(grid[i]))
		copy(newGrid[i], grid[i])
	}
	return newGrid
}

// GetValidMoves lists the columns that still have an empty cell, left to right.
func GetValidMoves(grid [][]Cell) []int {
	if len(grid) == 0 {
		return nil
	}
	validMoves := []int{}
	for col := range grid[0] {
		// a column has room as long as its top cell is empty
		if grid[0][col] == Empty {
			validMoves = append(validMoves, col)
		}
	}
	return validMoves
}

// CountDiskInDirection counts contiguous cells of the given colour starting
// one step away from (row, column) and walking by (deltaRow, deltaCol).
func CountDiskInDirection(grid [][]Cell, row, column, deltaRow, deltaCol int, cell Cell) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for inBounds(grid, r, c) && grid[r][c] == cell {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
