package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/internal/service/game"
)

const helpText = `Commands:
  1..%d   drop a disk into that column
  n       new game
  r       reset scores
  w <n>   set disks needed to win (%d-%d), starts a new game
  i       toggle instant AI moves
  name player|ai <name>
          rename the player or the AI
  h       this help
  q       quit
`

// UI is a line based front end for a game session.
type UI struct {
	session *game.Session
	in      *bufio.Scanner
	out     io.Writer
}

func New(session *game.Session, in io.Reader, out io.Writer) *UI {
	return &UI{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run reads commands until quit, end of input or ctx is done.
func (u *UI) Run(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		for u.in.Scan() {
			select {
			case lines <- u.in.Text():
			case <-done:
				return
			}
		}
	}()

	u.printHelp()
	Render(u.out, u.session.Snapshot())

	for {
		fmt.Fprint(u.out, "> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(u.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(u.out)
				return u.in.Err()
			}
			quit, err := u.handle(ctx, strings.TrimSpace(line))
			if err != nil {
				return err
			}
			if quit {
				fmt.Fprintln(u.out, "Bye!")
				return nil
			}
		}
	}
}

func (u *UI) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "q", "quit", "exit":
		return true, nil
	case "h", "help", "?":
		u.printHelp()
	case "n", "new":
		if err := u.session.NewGame(); err != nil {
			return false, err
		}
		Render(u.out, u.session.Snapshot())
	case "r", "reset":
		u.session.ResetScores()
		fmt.Fprintln(u.out, "Scores reset.")
	case "w", "win":
		u.setWinLength(fields[1:])
	case "i", "instant":
		instant := !u.session.InstantAI()
		u.session.SetInstantAI(instant)
		if instant {
			fmt.Fprintln(u.out, "Instant AI moves on.")
		} else {
			fmt.Fprintln(u.out, "Instant AI moves off.")
		}
	case "name":
		u.rename(fields[1:])
	default:
		column, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Fprintf(u.out, "Unknown command %q. Type h for help.\n", fields[0])
			return false, nil
		}
		return false, u.move(ctx, column-1)
	}
	return false, nil
}

func (u *UI) move(ctx context.Context, column int) error {
	result, err := u.session.PlayerMove(ctx, column)
	switch {
	case errors.Is(err, domain.ErrColumnOutOfRange):
		fmt.Fprintf(u.out, "Pick a column between 1 and %d.\n", u.session.Columns())
		return nil
	case errors.Is(err, domain.ErrColumnFull):
		fmt.Fprintf(u.out, "Column %d is full, pick another one.\n", column+1)
		return nil
	case errors.Is(err, domain.ErrGameOver):
		fmt.Fprintln(u.out, "The game is over. Type n for a new game.")
		return nil
	case errors.Is(err, game.ErrAwaitingAI):
		result, err = u.session.ResumeAI(ctx)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	}

	snap := u.session.Snapshot()
	if result.AI != nil {
		fmt.Fprintf(u.out, "%s dropped into column %d.\n", snap.AIName, result.AI.Column+1)
	}
	Render(u.out, snap)

	if msg := ResultMessage(snap); msg != "" {
		fmt.Fprintln(u.out, msg)
		fmt.Fprintln(u.out, "Wanna test your luck again? Type n for a new game.")
	}
	return nil
}

func (u *UI) setWinLength(args []string) {
	snap := u.session.Snapshot()
	if len(args) != 1 {
		fmt.Fprintf(u.out, "%d disks needed to win. Use w <n> to change it.\n", snap.WinLength)
		return
	}

	n, err := strconv.Atoi(args[0])
	if err == nil {
		err = u.session.SetWinLength(n)
	}
	if err != nil {
		fmt.Fprintf(u.out, "Win length must be between %d and %d.\n", snap.MinWinLength, snap.MaxWinLength)
		return
	}

	fmt.Fprintf(u.out, "Now %d disks are needed to win.\n", n)
	Render(u.out, u.session.Snapshot())
}

func (u *UI) rename(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(u.out, "Usage: name player|ai <name>")
		return
	}

	var who domain.Cell
	switch strings.ToLower(args[0]) {
	case "player", "p":
		who = domain.Player
	case "ai":
		who = domain.AI
	default:
		fmt.Fprintf(u.out, "Unknown side %q, use player or ai.\n", args[0])
		return
	}

	name := strings.Join(args[1:], " ")
	if err := u.session.Rename(who, name); err != nil {
		fmt.Fprintln(u.out, "Name must not be empty.")
		return
	}
	fmt.Fprintf(u.out, "The %s is now called %s.\n", who, name)
}

func (u *UI) printHelp() {
	snap := u.session.Snapshot()
	columns := 0
	if len(snap.Grid) > 0 {
		columns = len(snap.Grid[0])
	}
	fmt.Fprintf(u.out, helpText, columns, snap.MinWinLength, snap.MaxWinLength)
}
