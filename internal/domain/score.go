package domain

// Scoreboard tallies finished games across a match.
type Scoreboard struct {
	PlayerWins int
	AIWins     int
	Draws      int
}

// Record counts a finished game. Outcomes still in progress are ignored.
func (s *Scoreboard) Record(o Outcome) {
	switch o.Status {
	case StatusWon:
		switch o.Winner {
		case Player:
			s.PlayerWins++
		case AI:
			s.AIWins++
		}
	case StatusDraw:
		s.Draws++
	}
}

func (s Scoreboard) GamesPlayed() int {
	return s.PlayerWins + s.AIWins + s.Draws
}

func (s *Scoreboard) Reset() {
	*s = Scoreboard{}
}
