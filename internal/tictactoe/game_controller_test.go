package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
	"github.com/rocketscienceinc/tictactoe-slack/internal/random"
)

var (
	p1 = entity.Player{ID: "U1", Name: "p1"}
	p2 = entity.Player{ID: "U2", Name: "p2"}
)

type move struct {
	player      entity.Player
	column, row int
}

func play(t *testing.T, game *entity.Game, moves []move) {
	t.Helper()

	for i, m := range moves {
		require.NoError(t, ApplyMove(game, m.player, m.column, m.row), "move %d", i+1)
	}
}

func TestNewGame(t *testing.T) {
	t.Run("Empty undecided game with canonical players", func(t *testing.T) {
		// Given: players passed out of canonical order
		// When: creating a game with the first draw
		game := NewGame(random.Fixed(0.2), "T1/C1", p2, p1)

		// Then: the game is empty and players are sorted by name
		expectedGame := &entity.Game{
			SessionID:        "T1/C1",
			Players:          [2]entity.Player{p1, p2},
			FirstPlayerIndex: 0,
			Outcome:          entity.OutcomeUndecided,
		}
		require.Equal(t, expectedGame, game)
		assert.True(t, game.IsXTurn())
		assert.Equal(t, p1, game.NextPlayer())
	})

	t.Run("Upper half of the draw picks the second player", func(t *testing.T) {
		// When: the draw lands in [0.5, 1)
		game := NewGame(random.Fixed(0.99), "T1/C1", p1, p2)

		// Then: the second canonical player holds X
		assert.Equal(t, 1, game.FirstPlayerIndex)
		assert.Equal(t, p2, game.NextPlayer())
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("Places X and passes the turn", func(t *testing.T) {
		// Given: a new game where p1 holds X
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)

		// When: p1 moves at 2,3
		err := ApplyMove(game, p1, 2, 3)

		// Then: the cell holds X and it is p2's turn
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, game.Board[1][2])
		assert.Equal(t, 1, game.MoveCount)
		assert.False(t, game.IsXTurn())
		assert.Equal(t, p2, game.NextPlayer())
		assert.Equal(t, entity.OutcomeUndecided, game.Outcome)
	})

	t.Run("Turn flips after every accepted move", func(t *testing.T) {
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)
		coords := [][2]int{{1, 1}, {2, 1}, {3, 1}, {1, 2}}

		for _, c := range coords {
			wasXTurn := game.IsXTurn()
			require.NoError(t, ApplyMove(game, game.NextPlayer(), c[0], c[1]))
			assert.Equal(t, !wasXTurn, game.IsXTurn())
		}
	})

	t.Run("Rejects a user outside the game", func(t *testing.T) {
		// Given: a new game
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)
		before := *game

		// When: a stranger moves, even at an invalid location
		err := ApplyMove(game, entity.Player{ID: "U3", Name: "p3"}, 9, 9)

		// Then: ErrNotAPlayer wins over every other check
		require.ErrorIs(t, err, apperror.ErrNotAPlayer)
		assert.Equal(t, before, *game)
	})

	t.Run("Player identity is the id, not the name", func(t *testing.T) {
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)

		err := ApplyMove(game, entity.Player{ID: p1.ID, Name: "renamed"}, 1, 1)

		require.NoError(t, err)
	})

	t.Run("Rejects locations off the board", func(t *testing.T) {
		locations := [][2]int{{0, 1}, {1, 0}, {4, 1}, {1, 4}, {-1, 2}, {2, 100}}

		for _, loc := range locations {
			// Given: a new game
			game := NewGame(random.Fixed(0), "T1/C1", p1, p2)
			before := *game

			// When: p1 moves off the board
			err := ApplyMove(game, p1, loc[0], loc[1])

			// Then: ErrInvalidLocation is returned and nothing changed
			require.ErrorIs(t, err, apperror.ErrInvalidLocation, "location %v", loc)
			assert.Equal(t, before, *game)
		}
	})

	t.Run("Rejects playing out of turn", func(t *testing.T) {
		// Given: a new game where p1 holds X
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)

		// When: p2 moves first
		err := ApplyMove(game, p2, 1, 1)

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 0, game.MoveCount)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: p1 has moved at 1,1
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)
		play(t, game, []move{{p1, 1, 1}})
		before := *game

		// When: p2 moves at the same cell
		err := ApplyMove(game, p2, 1, 1)

		// Then: ErrCellOccupied is returned and the game is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, *game)
	})
}

func TestScenarios(t *testing.T) {
	t.Run("X wins down the first column", func(t *testing.T) {
		// Given: p1 holds X
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)

		// When: p1 completes column 1
		play(t, game, []move{{p1, 1, 1}, {p2, 2, 1}, {p1, 1, 2}, {p2, 2, 2}, {p1, 1, 3}})

		// Then: X wins after five moves
		assert.Equal(t, entity.OutcomeX, game.Outcome)
		assert.Equal(t, 5, game.MoveCount)

		// And: any further move is rejected without touching the game
		before := *game
		for _, m := range []move{{p2, 3, 3}, {p1, 3, 3}, {p2, 1, 1}} {
			err := ApplyMove(game, m.player, m.column, m.row)
			require.ErrorIs(t, err, apperror.ErrGameOver)
		}
		assert.Equal(t, before, *game)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		game := NewGame(random.Fixed(0), "T1/C1", p1, p2)

		play(t, game, []move{
			{p1, 1, 1}, {p2, 2, 1}, {p1, 3, 1},
			{p2, 1, 2}, {p1, 3, 2}, {p2, 2, 2},
			{p1, 1, 3}, {p2, 3, 3}, {p1, 2, 3},
		})

		assert.Equal(t, entity.OutcomeDraw, game.Outcome)
		assert.Equal(t, 9, game.MoveCount)
	})

	t.Run("O wins when the second player completes a diagonal", func(t *testing.T) {
		// Given: p2 holds X
		game := NewGame(random.Fixed(0.5), "T1/C1", p1, p2)

		// When: p1 (O) completes the anti-diagonal
		play(t, game, []move{{p2, 1, 1}, {p1, 3, 1}, {p2, 2, 1}, {p1, 2, 2}, {p2, 3, 3}, {p1, 1, 3}})

		// Then: O wins
		assert.Equal(t, entity.OutcomeO, game.Outcome)
		assert.True(t, entity.Validate(game).Valid())
	})
}
