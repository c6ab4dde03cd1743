package entity

const BoardSize = 3

type Mark string

const (
	EmptyCell Mark = ""
	MarkX     Mark = "X"
	MarkO     Mark = "O"
)

type Outcome string

const (
	OutcomeUndecided Outcome = "undecided"
	OutcomeX         Outcome = "X"
	OutcomeO         Outcome = "O"
	OutcomeDraw      Outcome = "draw"
)

// Board is indexed [column][row], both zero-based.
type Board [BoardSize][BoardSize]Mark

// Game is the single game played in a session (one Slack channel).
type Game struct {
	SessionID string    `json:"gameId"`
	Players   [2]Player `json:"players"`

	// FirstPlayerIndex points into Players at the player holding X.
	FirstPlayerIndex int     `json:"firstPlayerIndex"`
	Board            Board   `json:"board"`
	MoveCount        int     `json:"move"`
	Outcome          Outcome `json:"outcome"`

	// Version is the store revision this value was read from, 0 when it was never stored.
	Version int64 `json:"version"`
}

func (that *Game) IsUndecided() bool {
	return that.Outcome == OutcomeUndecided
}

func (that *Game) IsXTurn() bool {
	return that.MoveCount%2 == 0
}

func (that *Game) SecondPlayerIndex() int {
	return (that.FirstPlayerIndex + 1) % 2
}

func (that *Game) FirstPlayer() Player {
	return that.Players[that.FirstPlayerIndex]
}

func (that *Game) SecondPlayer() Player {
	return that.Players[that.SecondPlayerIndex()]
}

// NextPlayer returns the player expected to move, derived from the move parity.
func (that *Game) NextPlayer() Player {
	if that.IsXTurn() {
		return that.FirstPlayer()
	}
	return that.SecondPlayer()
}

// NextMark returns the mark the next move will place.
func (that *Game) NextMark() Mark {
	if that.IsXTurn() {
		return MarkX
	}
	return MarkO
}

func (that *Game) HasPlayer(player Player) bool {
	return that.Players[0].Is(player) || that.Players[1].Is(player)
}

// Canonicalize sorts the players by display name while keeping X with the same player.
// An out of range FirstPlayerIndex is left for Validate to report.
func (that *Game) Canonicalize() {
	if that.FirstPlayerIndex != 0 && that.FirstPlayerIndex != 1 {
		that.Players = SortPlayers(that.Players)
		return
	}

	first := that.FirstPlayer()

	that.Players = SortPlayers(that.Players)
	if that.Players[0].Is(first) {
		that.FirstPlayerIndex = 0
	} else {
		that.FirstPlayerIndex = 1
	}
}
