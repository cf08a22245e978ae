package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// Board is a connect-N game: the grid, the move counter and the outcome.
// It is not safe for concurrent use; callers serialise moves.
type Board struct {
	rows        int
	columns     int
	winLength   int
	grid        [][]Cell
	movesPlayed int
	outcome     Outcome
	lastMove    *Position
	winningLine []Position
	rng         *rand.Rand
}

type Option func(*Board)

// WithRand sets the source used by AIMove. Useful for reproducible games.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		b.rng = rng
	}
}

// ValidateConfig checks the board dimensions and the win length against the
// supported limits, in the order the errors are documented.
func ValidateConfig(rows, columns, winLength int) error {
	if rows < MinRows || columns < MinColumns {
		return fmt.Errorf("%w: %dx%d, minimum %d rows and %d columns", ErrBoardTooSmall, rows, columns, MinRows, MinColumns)
	}
	if rows > MaxRows || columns > MaxColumns {
		return fmt.Errorf("%w: %dx%d, maximum %d rows and %d columns", ErrBoardTooLarge, rows, columns, MaxRows, MaxColumns)
	}
	if winLength < MinWinLength {
		return fmt.Errorf("%w: %d, a line of at least %d disks is needed", ErrWinLengthTooShort, winLength, MinWinLength)
	}
	if winLength > rows || winLength > columns {
		return fmt.Errorf("%w: %d disks on a %dx%d board", ErrWinLengthUnreachable, winLength, rows, columns)
	}
	return nil
}

func NewBoard(rows, columns, winLength int, opts ...Option) (*Board, error) {
	if err := ValidateConfig(rows, columns, winLength); err != nil {
		return nil, err
	}

	b := &Board{
		rows:      rows,
		columns:   columns,
		winLength: winLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b.Reset()
	return b, nil
}

// Reset empties the grid and starts a new game with the same configuration.
func (b *Board) Reset() {
	b.grid = NewGrid(b.rows, b.columns)
	b.movesPlayed = 0
	b.outcome = Outcome{Status: StatusInProgress, Winner: Empty}
	b.lastMove = nil
	b.winningLine = nil
}

// Reconfigure resizes the board. On error the current game is left as it was.
func (b *Board) Reconfigure(rows, columns, winLength int) error {
	if err := ValidateConfig(rows, columns, winLength); err != nil {
		return err
	}
	b.rows, b.columns, b.winLength = rows, columns, winLength
	b.Reset()
	return nil
}

// SetWinLength changes the number of disks needed to win and starts a new game.
func (b *Board) SetWinLength(winLength int) error {
	return b.Reconfigure(b.rows, b.columns, winLength)
}

func (b *Board) MinWinLength() int {
	return MinWinLength
}

// MaxWinLength is the longest line that fits the board in every direction.
func (b *Board) MaxWinLength() int {
	return min(b.rows, b.columns)
}

// ApplyMove drops a token for player into column and returns the landing row.
// The move is either applied in full, outcome included, or not at all.
func (b *Board) ApplyMove(player Cell, column int) (int, error) {
	if !isToken(player) {
		return -1, ErrInvalidPlayer
	}
	if b.outcome.IsFinished() {
		return -1, ErrGameOver
	}
	if column < 0 || column >= b.columns {
		return -1, ErrColumnOutOfRange
	}

	row, err := DropDisk(b.grid, column, player)
	if err != nil {
		return -1, err
	}

	b.movesPlayed++
	b.lastMove = &Position{Row: row, Column: column}

	if run := WinningRun(b.grid, row, column, b.winLength); run != nil {
		b.outcome = Outcome{Status: StatusWon, Winner: player}
		b.winningLine = run
		return row, nil
	}

	if b.movesPlayed == b.rows*b.columns {
		b.outcome = Outcome{Status: StatusDraw, Winner: Empty}
	}

	return row, nil
}

// AIMove plays an AI token into a column picked uniformly among the columns
// that still have room.
func (b *Board) AIMove() (int, int, error) {
	if b.outcome.IsFinished() {
		return -1, -1, ErrGameOver
	}

	validColumns := GetValidMoves(b.grid)
	if len(validColumns) == 0 {
		return -1, -1, ErrBoardFull
	}

	column := validColumns[b.rng.Intn(len(validColumns))]
	row, err := b.ApplyMove(AI, column)
	if err != nil {
		return -1, -1, err
	}
	return row, column, nil
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Columns() int {
	return b.columns
}

func (b *Board) WinLength() int {
	return b.winLength
}

func (b *Board) MovesPlayed() int {
	return b.movesPlayed
}

func (b *Board) Outcome() Outcome {
	return b.outcome
}

// CellAt returns Empty for positions outside the board.
func (b *Board) CellAt(row, column int) Cell {
	if !inBounds(b.grid, row, column) {
		return Empty
	}
	return b.grid[row][column]
}

// Grid returns a copy of the cells, indexed [row][column].
func (b *Board) Grid() [][]Cell {
	return CopyGrid(b.grid)
}

func (b *Board) LegalColumns() []int {
	if b.outcome.IsFinished() {
		return []int{}
	}
	return GetValidMoves(b.grid)
}

// LastMove returns the most recently placed token, if any.
func (b *Board) LastMove() (Position, bool) {
	if b.lastMove == nil {
		return Position{}, false
	}
	return *b.lastMove, true
}

// WinningLine returns the cells of the winning run, or nil while nobody has won.
func (b *Board) WinningLine() []Position {
	if b.winningLine == nil {
		return nil
	}
	line := make([]Position, len(b.winningLine))
	copy(line, b.winningLine)
	return line
}
