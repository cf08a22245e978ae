package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/game"
)

const (
	playerToken = "X"
	aiToken     = "O"
	emptyToken  = "."
)

func token(cell domain.Cell, winning bool) string {
	switch cell {
	case domain.Player:
		if winning {
			return color.Green.Sprint(playerToken)
		}
		return color.Yellow.Sprint(playerToken)
	case domain.AI:
		if winning {
			return color.Green.Sprint(aiToken)
		}
		return color.Red.Sprint(aiToken)
	default:
		return emptyToken
	}
}

// Render draws the board, column numbers first, then the score line.
func Render(w io.Writer, snap game.Snapshot) {
	winning := make(map[domain.Position]bool, len(snap.WinningLine))
	for _, pos := range snap.WinningLine {
		winning[pos] = true
	}

	var b strings.Builder
	if len(snap.Grid) > 0 {
		for col := range snap.Grid[0] {
			fmt.Fprintf(&b, " %d", col+1)
		}
		b.WriteString("\n")
	}

	for row, cells := range snap.Grid {
		b.WriteString("|")
		for col, cell := range cells {
			b.WriteString(token(cell, winning[domain.Position{Row: row, Column: col}]))
			b.WriteString("|")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s %s %d - %d %s %s (draws %d) | %d to win | move %d\n",
		snap.PlayerName, token(domain.Player, false), snap.Scores.PlayerWins,
		snap.Scores.AIWins, token(domain.AI, false), snap.AIName,
		snap.Scores.Draws, snap.WinLength, snap.MovesPlayed)

	io.WriteString(w, b.String())
}

// ResultMessage is the end of game line, empty while the game is running.
func ResultMessage(snap game.Snapshot) string {
	switch snap.Outcome.Status {
	case domain.StatusWon:
		if snap.Outcome.Winner == domain.AI {
			return snap.AIName + " won!"
		}
		return snap.PlayerName + " won!"
	case domain.StatusDraw:
		return "It's a draw!"
	default:
		return ""
	}
}
