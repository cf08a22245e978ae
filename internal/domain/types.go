package domain

// Cell is the content of a single board position.
type Cell int

const (
	Empty  Cell = 0
	Player Cell = 1
	AI     Cell = 2
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Player:
		return "player"
	case AI:
		return "ai"
	default:
		return "unknown"
	}
}

// Opponent returns the other token colour. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player:
		return AI
	case AI:
		return Player
	default:
		return Empty
	}
}

func isToken(c Cell) bool {
	return c == Player || c == AI
}

// board limits
const (
	MinRows      = 4
	MaxRows      = 10
	MinColumns   = 4
	MaxColumns   = 10
	MinWinLength = 3
)

// to represent the game status
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusWon        GameStatus = "won"
	StatusDraw       GameStatus = "draw"
)

// Outcome is the result of the game so far. Winner is only set when Status is StatusWon.
type Outcome struct {
	Status GameStatus
	Winner Cell
}

func (o Outcome) IsFinished() bool {
	return o.Status == StatusWon || o.Status == StatusDraw
}

func (o Outcome) String() string {
	if o.Status == StatusWon {
		return string(o.Status) + " by " + o.Winner.String()
	}
	return string(o.Status)
}

// Position addresses a cell; row 0 is the top of the board.
type Position struct {
	Row    int
	Column int
}

// ConfigError is returned when a board cannot be built with the requested dimensions.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrBoardTooSmall        ConfigError = "board too small"
	ErrBoardTooLarge        ConfigError = "board too large"
	ErrWinLengthTooShort    ConfigError = "win length too short"
	ErrWinLengthUnreachable ConfigError = "win length larger than the board"
)

// MoveError is returned when a move is rejected. A rejected move never changes the board.
type MoveError string

func (e MoveError) Error() string {
	return string(e)
}

const (
	ErrColumnOutOfRange MoveError = "column out of range"
	ErrColumnFull       MoveError = "column is full"
	ErrGameOver         MoveError = "game is over"
	ErrBoardFull        MoveError = "board is full"
	ErrInvalidPlayer    MoveError = "invalid player"
)
