package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
	"github.com/rocketscienceinc/tictactoe-slack/internal/random"
)

// NewGame starts an empty game between a and b. One draw from rnd picks which of the
// canonically ordered players holds X.
func NewGame(rnd random.Source, sessionID string, a, b entity.Player) *entity.Game {
	first := int(math.Floor(rnd.Float64() * 2))
	first = min(max(first, 0), 1)

	return &entity.Game{
		SessionID:        sessionID,
		Players:          entity.SortPlayers([2]entity.Player{a, b}),
		FirstPlayerIndex: first,
		Outcome:          entity.OutcomeUndecided,
	}
}

// ApplyMove places the next mark at the 1-based column and row. The game is left untouched
// when the move is rejected. Persisting the result is up to the caller.
func ApplyMove(game *entity.Game, player entity.Player, column, row int) error {
	if err := validateMove(game, player, column, row); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	game.Board[column-1][row-1] = game.NextMark()
	game.MoveCount++
	game.Outcome = entity.Evaluate(game.Board)

	return nil
}

// validateMove - checks if the move is valid. Order matters: the first failure is reported.
func validateMove(game *entity.Game, player entity.Player, column, row int) error {
	if !game.HasPlayer(player) {
		return apperror.ErrNotAPlayer
	}

	if !onBoard(column) || !onBoard(row) {
		return fmt.Errorf("%w: %d,%d", apperror.ErrInvalidLocation, column, row)
	}

	if !game.IsUndecided() {
		return apperror.ErrGameOver
	}

	if !game.NextPlayer().Is(player) {
		return apperror.ErrNotYourTurn
	}

	if game.Board[column-1][row-1] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

func onBoard(index int) bool {
	return index >= 1 && index <= entity.BoardSize
}
