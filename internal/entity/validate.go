package entity

import (
	"fmt"
	"strings"
)

const minSessionIDLength = 4

type FieldError struct {
	Field  string
	Reason string
}

// ValidationResult is valid when it holds no field errors.
type ValidationResult struct {
	FieldErrors []FieldError
}

func (that ValidationResult) Valid() bool {
	return len(that.FieldErrors) == 0
}

func (that ValidationResult) Fields() []string {
	fields := make([]string, 0, len(that.FieldErrors))
	for _, fe := range that.FieldErrors {
		fields = append(fields, fe.Field)
	}

	return fields
}

func (that *ValidationResult) add(field, format string, args ...any) {
	that.FieldErrors = append(that.FieldErrors, FieldError{Field: field, Reason: fmt.Sprintf(format, args...)})
}

// ValidationError is returned by stores refusing to write a malformed game.
type ValidationError struct {
	Result ValidationResult
}

func (that *ValidationError) Error() string {
	parts := make([]string, 0, len(that.Result.FieldErrors))
	for _, fe := range that.Result.FieldErrors {
		parts = append(parts, fe.Field+": "+fe.Reason)
	}

	return "invalid game: " + strings.Join(parts, "; ")
}

// Validate checks the game against the persisted schema.
func Validate(game *Game) ValidationResult {
	var result ValidationResult

	if len(game.SessionID) < minSessionIDLength {
		result.add("gameId", "must be at least %d characters", minSessionIDLength)
	}

	for i, player := range game.Players {
		if player.ID == "" {
			result.add(fmt.Sprintf("players[%d].user_id", i), "is required")
		}
		if player.Name == "" {
			result.add(fmt.Sprintf("players[%d].user_name", i), "is required")
		}
	}
	if game.Players[0].ID != "" && game.Players[0].Is(game.Players[1]) {
		result.add("players", "must be two different users")
	}

	if game.FirstPlayerIndex != 0 && game.FirstPlayerIndex != 1 {
		result.add("firstPlayerIndex", "must be 0 or 1, got %d", game.FirstPlayerIndex)
	}

	validBoard := true
	for c, column := range game.Board {
		for r, mark := range column {
			if mark != EmptyCell && mark != MarkX && mark != MarkO {
				result.add(fmt.Sprintf("board[%d][%d]", c, r), "unknown mark %q", mark)
				validBoard = false
			}
		}
	}

	if game.MoveCount < 0 || game.MoveCount > BoardSize*BoardSize {
		result.add("move", "must be between 0 and %d, got %d", BoardSize*BoardSize, game.MoveCount)
	} else if validBoard {
		xCount, oCount := game.Board.Count(MarkX), game.Board.Count(MarkO)
		if xCount+oCount != game.MoveCount {
			result.add("move", "is %d but the board holds %d marks", game.MoveCount, xCount+oCount)
		} else if xCount != (game.MoveCount+1)/2 || oCount != game.MoveCount/2 {
			result.add("board", "holds %d X and %d O after %d moves", xCount, oCount, game.MoveCount)
		}
	}

	switch game.Outcome {
	case OutcomeUndecided, OutcomeX, OutcomeO, OutcomeDraw:
		if validBoard {
			if winners := Winners(game.Board); len(winners) > 1 {
				result.add("board", "has winning lines for both marks")
			} else if expected := Evaluate(game.Board); expected != game.Outcome {
				result.add("outcome", "is %q but the board says %q", game.Outcome, expected)
			}
		}
	default:
		result.add("outcome", "unknown outcome %q", game.Outcome)
	}

	return result
}
