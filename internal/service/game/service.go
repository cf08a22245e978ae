package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/iamasit07/connect-n/internal/domain"
	"github.com/iamasit07/connect-n/pkg/uid"
)

var (
	ErrAwaitingAI    = errors.New("waiting for the AI to move")
	ErrNotAwaitingAI = errors.New("it is not the AI's turn")
	ErrInvalidName   = errors.New("name must not be empty")
)

type Options struct {
	Rows       int
	Columns    int
	WinLength  int
	PlayerName string
	AIName     string
	AIDelay    time.Duration // pause before the AI answers
	InstantAI  bool          // skip AIDelay, can be toggled during play
	Rand       *rand.Rand
}

type Move struct {
	Row    int
	Column int
}

// TurnResult describes what happened during one call. AI is nil when the
// AI did not get to move.
type TurnResult struct {
	Player  *Move
	AI      *Move
	Outcome domain.Outcome
}

// Session is one player-versus-AI match: the current game plus the running score.
// Calls are serialised on the session mutex, which is released while the AI
// delay runs so Snapshot and the setters stay responsive.
type Session struct {
	GameID     string
	PlayerName string
	AIName     string
	CreatedAt  time.Time
	board      *domain.Board
	scores     domain.Scoreboard
	aiDelay    time.Duration
	instantAI  bool
	awaitingAI bool   // player has moved, AI has not answered yet
	aiTurn     uint64 // bumped whenever a pending AI turn is created or dropped
	recorded   bool // finished game already counted on the scoreboard
	mu         sync.Mutex
}

func NewSession(opts Options) (*Session, error) {
	var boardOpts []domain.Option
	if opts.Rand != nil {
		boardOpts = append(boardOpts, domain.WithRand(opts.Rand))
	}

	board, err := domain.NewBoard(opts.Rows, opts.Columns, opts.WinLength, boardOpts...)
	if err != nil {
		return nil, fmt.Errorf("invalid board configuration: %w", err)
	}

	s := &Session{
		PlayerName: opts.PlayerName,
		AIName:     opts.AIName,
		board:      board,
		aiDelay:    max(opts.AIDelay, 0),
		instantAI:  opts.InstantAI,
	}
	if s.PlayerName == "" {
		s.PlayerName = "Player"
	}
	if s.AIName == "" {
		s.AIName = "AI"
	}

	if err := s.newGameLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// PlayerMove drops the player's token and, if the game goes on, lets the AI answer.
// When ctx ends during the AI delay the player's move stands and the AI turn
// stays pending until ResumeAI.
func (s *Session) PlayerMove(ctx context.Context, column int) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.awaitingAI {
		return nil, ErrAwaitingAI
	}

	row, err := s.board.ApplyMove(domain.Player, column)
	if err != nil {
		return nil, err
	}

	result := &TurnResult{Player: &Move{Row: row, Column: column}}
	log.Printf("[GAME] %s: %s dropped into column %d (row %d)", s.GameID, s.PlayerName, column, row)

	if s.board.Outcome().IsFinished() {
		s.finishLocked()
		result.Outcome = s.board.Outcome()
		return result, nil
	}

	s.awaitingAI = true
	s.aiTurn++
	err = s.aiTurnLocked(ctx, result)
	return result, err
}

// ResumeAI plays an AI turn left pending by a cancelled PlayerMove.
func (s *Session) ResumeAI(ctx context.Context) (*TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingAI {
		return nil, ErrNotAwaitingAI
	}

	result := &TurnResult{}
	err := s.aiTurnLocked(ctx, result)
	return result, err
}

func (s *Session) aiTurnLocked(ctx context.Context, result *TurnResult) error {
	result.Outcome = s.board.Outcome()

	if delay := s.currentDelayLocked(); delay > 0 {
		turn := s.aiTurn

		s.mu.Unlock()
		err := wait(ctx, delay)
		s.mu.Lock()

		if err != nil {
			return err
		}
		// a new game or another resumer may have taken this turn meanwhile
		if !s.awaitingAI || s.aiTurn != turn {
			return ErrNotAwaitingAI
		}
	}

	row, column, err := s.board.AIMove()
	s.awaitingAI = false
	if err != nil {
		return fmt.Errorf("ai move: %w", err)
	}

	result.AI = &Move{Row: row, Column: column}
	result.Outcome = s.board.Outcome()
	log.Printf("[GAME] %s: %s dropped into column %d (row %d)", s.GameID, s.AIName, column, row)

	if result.Outcome.IsFinished() {
		s.finishLocked()
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Session) currentDelayLocked() time.Duration {
	if s.instantAI {
		return 0
	}
	return s.aiDelay
}

func (s *Session) finishLocked() {
	if s.recorded {
		return
	}
	s.recorded = true

	outcome := s.board.Outcome()
	s.scores.Record(outcome)

	duration := time.Since(s.CreatedAt).Round(time.Second)
	switch outcome.Status {
	case domain.StatusWon:
		log.Printf("[GAME] %s won by %s after %d moves (%s)", s.GameID, s.nameOf(outcome.Winner), s.board.MovesPlayed(), duration)
	case domain.StatusDraw:
		log.Printf("[GAME] %s ended in a draw after %d moves (%s)", s.GameID, s.board.MovesPlayed(), duration)
	}
}

func (s *Session) nameOf(cell domain.Cell) string {
	if cell == domain.AI {
		return s.AIName
	}
	return s.PlayerName
}

// NewGame clears the board and starts a new game; the score is kept.
func (s *Session) NewGame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.board.Reset()
	return s.newGameLocked()
}

func (s *Session) newGameLocked() error {
	gameID, err := uid.GenerateGameID()
	if err != nil {
		return err
	}

	s.GameID = gameID
	s.CreatedAt = time.Now()
	s.awaitingAI = false
	s.aiTurn++
	s.recorded = false

	log.Printf("[GAME] Started game %s: %dx%d, %d to win, %s vs %s",
		gameID, s.board.Rows(), s.board.Columns(), s.board.WinLength(), s.PlayerName, s.AIName)
	return nil
}

// SetWinLength changes the disks needed to win. A valid change starts a new game.
func (s *Session) SetWinLength(winLength int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.SetWinLength(winLength); err != nil {
		return err
	}
	return s.newGameLocked()
}

// SetInstantAI switches the AI delay off (true) or back to the configured pause.
func (s *Session) SetInstantAI(instant bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.instantAI = instant
	log.Printf("[GAME] Instant AI moves: %t", instant)
}

func (s *Session) InstantAI() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.instantAI
}

// Rename changes the display name of the player or the AI.
func (s *Session) Rename(who domain.Cell, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch who {
	case domain.Player:
		s.PlayerName = name
	case domain.AI:
		s.AIName = name
	default:
		return domain.ErrInvalidPlayer
	}
	return nil
}

func (s *Session) ResetScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores.Reset()
	log.Printf("[GAME] Scores reset")
}

func (s *Session) Scores() domain.Scoreboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scores
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	GameID       string
	PlayerName   string
	AIName       string
	Grid         [][]domain.Cell
	WinLength    int
	MinWinLength int
	MaxWinLength int
	MovesPlayed  int
	Outcome      domain.Outcome
	WinningLine  []domain.Position
	LastMove     *domain.Position
	Scores       domain.Scoreboard
	AwaitingAI   bool
	InstantAI    bool
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		GameID:       s.GameID,
		PlayerName:   s.PlayerName,
		AIName:       s.AIName,
		Grid:         s.board.Grid(),
		WinLength:    s.board.WinLength(),
		MinWinLength: s.board.MinWinLength(),
		MaxWinLength: s.board.MaxWinLength(),
		MovesPlayed:  s.board.MovesPlayed(),
		Outcome:      s.board.Outcome(),
		WinningLine:  s.board.WinningLine(),
		Scores:       s.scores,
		AwaitingAI:   s.awaitingAI,
		InstantAI:    s.instantAI,
	}
	if last, ok := s.board.LastMove(); ok {
		snap.LastMove = &last
	}
	return snap
}

// Columns is the number of columns on the current board.
func (s *Session) Columns() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Columns()
}
