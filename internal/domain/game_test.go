package domain

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type move struct {
	player Cell
	column int
}

func newTestBoard(t *testing.T, rows, columns, winLength int) *Board {
	t.Helper()
	b, err := NewBoard(rows, columns, winLength, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return b
}

// play applies every move and requires the game to still be running before the last one.
func play(t *testing.T, b *Board, moves ...move) {
	t.Helper()
	for i, m := range moves {
		require.Equal(t, StatusInProgress, b.Outcome().Status, "game ended early at move %d", i)
		_, err := b.ApplyMove(m.player, m.column)
		require.NoError(t, err, "move %d", i)
	}
}

func TestNewBoard_ConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		columns   int
		winLength int
		wantErr   error
	}{
		{"smallest board", 4, 4, 3, nil},
		{"largest board", 10, 10, 10, nil},
		{"classic", 6, 7, 4, nil},
		{"too few rows", 3, 7, 3, ErrBoardTooSmall},
		{"too few columns", 6, 3, 3, ErrBoardTooSmall},
		{"too many rows", 11, 7, 4, ErrBoardTooLarge},
		{"too many columns", 6, 11, 4, ErrBoardTooLarge},
		{"win length too short", 6, 7, 2, ErrWinLengthTooShort},
		{"win length longer than rows", 4, 4, 5, ErrWinLengthUnreachable},
		{"win length longer than rows only", 5, 8, 6, ErrWinLengthUnreachable},
		{"small beats short", 3, 3, 2, ErrBoardTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoard(tt.rows, tt.columns, tt.winLength)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, b)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, b.Rows())
			assert.Equal(t, tt.columns, b.Columns())
			assert.Equal(t, tt.winLength, b.WinLength())
			assert.Equal(t, Outcome{Status: StatusInProgress}, b.Outcome())
			assert.Zero(t, b.MovesPlayed())
		})
	}
}

func TestApplyMove_HorizontalWin(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)

	for col := 0; col < 3; col++ {
		row, err := b.ApplyMove(Player, col)
		require.NoError(t, err)
		assert.Equal(t, 3, row)
	}

	assert.Equal(t, Outcome{Status: StatusWon, Winner: Player}, b.Outcome())
	assert.Equal(t, 3, b.MovesPlayed())
	assert.Equal(t, []Position{{3, 0}, {3, 1}, {3, 2}}, b.WinningLine())
}

func TestApplyMove_VerticalWin(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	play(t, b, move{Player, 2}, move{Player, 2}, move{Player, 2})

	assert.Equal(t, Outcome{Status: StatusWon, Winner: Player}, b.Outcome())
	assert.Equal(t, []Position{{1, 2}, {2, 2}, {3, 2}}, b.WinningLine())
}

func TestApplyMove_DiagonalWins(t *testing.T) {
	// P on the last move completes a 4-long diagonal; the AI filler never reaches 4.
	columns := []int{0, 1, 1, 2, 2, 2, 3, 3, 3, 3}
	players := []Cell{Player, AI, Player, AI, AI, Player, AI, AI, AI, Player}

	tests := []struct {
		name   string
		mirror bool
		want   []Position
	}{
		{"diagonal up", false, []Position{{2, 3}, {3, 2}, {4, 1}, {5, 0}}},
		{"diagonal down", true, []Position{{2, 3}, {3, 4}, {4, 5}, {5, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard(t, 6, 7, 4)
			for i := range columns {
				col := columns[i]
				if tt.mirror {
					col = 6 - col
				}
				if i < len(columns)-1 {
					play(t, b, move{players[i], col})
					continue
				}
				_, err := b.ApplyMove(players[i], col)
				require.NoError(t, err)
			}

			assert.Equal(t, Outcome{Status: StatusWon, Winner: Player}, b.Outcome())
			line := b.WinningLine()
			require.Len(t, line, 4)
			assert.ElementsMatch(t, tt.want, line)
		})
	}
}

func TestApplyMove_RunLongerThanWinLength(t *testing.T) {
	b := newTestBoard(t, 4, 7, 3)
	play(t, b, move{AI, 0}, move{AI, 1}, move{Player, 4}, move{AI, 3})
	_, err := b.ApplyMove(AI, 2)
	require.NoError(t, err)

	assert.Equal(t, Outcome{Status: StatusWon, Winner: AI}, b.Outcome())
	assert.Len(t, b.WinningLine(), 4)
}

func TestApplyMove_Draw(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	columns := []int{0, 2, 1, 3, 2, 0, 3, 1, 0, 2, 1, 3, 2, 0, 3, 1}

	player := Player
	for i, col := range columns {
		require.Equal(t, StatusInProgress, b.Outcome().Status, "move %d", i)
		_, err := b.ApplyMove(player, col)
		require.NoError(t, err, "move %d", i)
		player = player.Opponent()
	}

	assert.Equal(t, Outcome{Status: StatusDraw}, b.Outcome())
	assert.Equal(t, 16, b.MovesPlayed())
	assert.Nil(t, b.WinningLine())

	want := [][]Cell{
		{AI, AI, Player, Player},
		{Player, Player, AI, AI},
		{AI, AI, Player, Player},
		{Player, Player, AI, AI},
	}
	if diff := cmp.Diff(want, b.Grid()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMove_ColumnFull(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	play(t, b, move{Player, 0}, move{AI, 0}, move{Player, 0}, move{AI, 0})

	before := b.Grid()
	row, err := b.ApplyMove(Player, 0)

	require.ErrorIs(t, err, ErrColumnFull)
	assert.Equal(t, -1, row)
	assert.Equal(t, 4, b.MovesPlayed())
	assert.Equal(t, StatusInProgress, b.Outcome().Status)
	if diff := cmp.Diff(before, b.Grid()); diff != "" {
		t.Errorf("grid changed after rejected move (-before +after):\n%s", diff)
	}
}

func TestApplyMove_ColumnCapacityEqualsRows(t *testing.T) {
	for rows := MinRows; rows <= MaxRows; rows++ {
		b := newTestBoard(t, rows, 4, 3)
		player := Player
		for i := 0; i < rows; i++ {
			row, err := b.ApplyMove(player, 1)
			require.NoError(t, err)
			assert.Equal(t, rows-1-i, row)
			player = player.Opponent()
		}
		_, err := b.ApplyMove(player, 1)
		require.ErrorIs(t, err, ErrColumnFull, "rows=%d", rows)
	}
}

func TestApplyMove_Rejections(t *testing.T) {
	b := newTestBoard(t, 5, 6, 4)

	_, err := b.ApplyMove(Player, 6)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)

	_, err = b.ApplyMove(Player, -1)
	assert.ErrorIs(t, err, ErrColumnOutOfRange)

	_, err = b.ApplyMove(Empty, 0)
	assert.ErrorIs(t, err, ErrInvalidPlayer)

	_, err = b.ApplyMove(Cell(7), 0)
	assert.ErrorIs(t, err, ErrInvalidPlayer)

	assert.Zero(t, b.MovesPlayed())
	if diff := cmp.Diff(NewGrid(5, 6), b.Grid()); diff != "" {
		t.Errorf("grid changed (-want +got):\n%s", diff)
	}
}

func TestMovesRejectedAfterGameOver(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	play(t, b, move{Player, 0}, move{Player, 1})
	_, err := b.ApplyMove(Player, 2)
	require.NoError(t, err)
	require.True(t, b.Outcome().IsFinished())

	before := b.Grid()

	_, err = b.ApplyMove(AI, 3)
	assert.ErrorIs(t, err, ErrGameOver)

	_, _, err = b.AIMove()
	assert.ErrorIs(t, err, ErrGameOver)

	assert.Equal(t, 3, b.MovesPlayed())
	assert.Empty(t, b.LegalColumns())
	if diff := cmp.Diff(before, b.Grid()); diff != "" {
		t.Errorf("grid changed after game over (-before +after):\n%s", diff)
	}
}

func TestReset_Idempotent(t *testing.T) {
	b := newTestBoard(t, 6, 7, 4)
	play(t, b, move{Player, 3}, move{AI, 3}, move{Player, 4})

	b.Reset()
	once := b.Grid()
	onceOutcome, onceMoves := b.Outcome(), b.MovesPlayed()

	b.Reset()
	assert.Equal(t, once, b.Grid())
	assert.Equal(t, onceOutcome, b.Outcome())
	assert.Equal(t, onceMoves, b.MovesPlayed())

	assert.Equal(t, NewGrid(6, 7), b.Grid())
	assert.Equal(t, Outcome{Status: StatusInProgress}, b.Outcome())
	assert.Zero(t, b.MovesPlayed())
	assert.Equal(t, 4, b.WinLength())
	_, ok := b.LastMove()
	assert.False(t, ok)
}

func TestAIMove_PicksOnlyLegalColumns(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		b, err := NewBoard(4, 4, 4, WithRand(rand.New(rand.NewSource(seed))))
		require.NoError(t, err)

		for col := 0; col < 3; col++ {
			play(t, b, move{Player, col}, move{AI, col}, move{Player, col}, move{AI, col})
		}

		row, col, err := b.AIMove()
		require.NoError(t, err)
		assert.Equal(t, 3, col, "seed %d", seed)
		assert.Equal(t, 3, row, "seed %d", seed)
		assert.Equal(t, AI, b.CellAt(3, 3))
	}
}

func TestAIMove_BoardFull(t *testing.T) {
	// a full grid that is still in progress cannot be reached through moves
	b := newTestBoard(t, 4, 4, 3)
	for r := range b.grid {
		for c := range b.grid[r] {
			b.grid[r][c] = Player
		}
	}

	_, _, err := b.AIMove()
	assert.ErrorIs(t, err, ErrBoardFull)
}

func TestRandomGames_Invariants(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		rows, columns := 4+rng.Intn(7), 4+rng.Intn(7)
		winLength := 3 + rng.Intn(min(rows, columns)-2)

		b, err := NewBoard(rows, columns, winLength, WithRand(rng))
		require.NoError(t, err)

		for !b.Outcome().IsFinished() {
			legal := b.LegalColumns()
			require.NotEmpty(t, legal)
			_, err := b.ApplyMove(Player, legal[rng.Intn(len(legal))])
			require.NoError(t, err)
			if b.Outcome().IsFinished() {
				break
			}
			_, _, err = b.AIMove()
			require.NoError(t, err)
			require.LessOrEqual(t, b.MovesPlayed(), rows*columns)
		}

		o := b.Outcome()
		if o.Status == StatusWon {
			last, ok := b.LastMove()
			require.True(t, ok)
			assert.Equal(t, o.Winner, b.CellAt(last.Row, last.Column))
			assert.GreaterOrEqual(t, len(b.WinningLine()), winLength)
		} else {
			assert.Equal(t, StatusDraw, o.Status)
			assert.Equal(t, rows*columns, b.MovesPlayed())
		}

		_, err = b.ApplyMove(Player, 0)
		assert.ErrorIs(t, err, ErrGameOver)
		_, _, err = b.AIMove()
		assert.ErrorIs(t, err, ErrGameOver)
	}
}

func TestSetWinLength(t *testing.T) {
	b := newTestBoard(t, 5, 7, 4)
	play(t, b, move{Player, 0}, move{AI, 1})

	assert.Equal(t, 3, b.MinWinLength())
	assert.Equal(t, 5, b.MaxWinLength())

	err := b.SetWinLength(6)
	require.ErrorIs(t, err, ErrWinLengthUnreachable)
	assert.Equal(t, 4, b.WinLength())
	assert.Equal(t, 2, b.MovesPlayed(), "failed change must keep the game")

	err = b.SetWinLength(2)
	require.ErrorIs(t, err, ErrWinLengthTooShort)

	require.NoError(t, b.SetWinLength(5))
	assert.Equal(t, 5, b.WinLength())
	assert.Zero(t, b.MovesPlayed())
	assert.Equal(t, NewGrid(5, 7), b.Grid())
}

func TestReconfigure(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	play(t, b, move{Player, 0})

	err := b.Reconfigure(12, 6, 4)
	require.ErrorIs(t, err, ErrBoardTooLarge)
	assert.Equal(t, 4, b.Rows())
	assert.Equal(t, Player, b.CellAt(3, 0))

	require.NoError(t, b.Reconfigure(6, 7, 4))
	assert.Equal(t, 6, b.Rows())
	assert.Equal(t, 7, b.Columns())
	assert.Equal(t, NewGrid(6, 7), b.Grid())
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, b.LegalColumns())
}

func TestGridIsACopy(t *testing.T) {
	b := newTestBoard(t, 4, 4, 3)
	grid := b.Grid()
	grid[3][0] = AI

	assert.Equal(t, Empty, b.CellAt(3, 0))
	assert.Equal(t, Empty, b.CellAt(-1, 9))
}
