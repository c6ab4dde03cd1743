package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
	"github.com/rocketscienceinc/tictactoe-slack/internal/random"
	"github.com/rocketscienceinc/tictactoe-slack/internal/tictactoe"
)

const maxConflictRetries = 5

type gameRepo interface {
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Game, error)
	Save(ctx context.Context, game *entity.Game) (*entity.Game, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

// GameManager runs the chat commands against the game stored for a session.
//
// Rule violations come back as private results. Only storage failures and invalid games
// are returned as errors.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	rnd      random.Source
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, rnd random.Source) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		rnd:      rnd,
	}
}

// Challenge starts a game between user and otherUser unless one is still being played.
func (that *GameManager) Challenge(ctx context.Context, sessionID string, user, otherUser entity.Player) (*entity.Result, error) {
	log := that.logger.With("method", "Challenge", "session", sessionID)

	if user.Is(otherUser) {
		return entity.NewPrivateResult(nil, "You can't challenge yourself!"), nil
	}

	return that.retryOnConflict(ctx, func() (*entity.Result, error) {
		existingGame, err := that.getGame(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		if existingGame != nil && existingGame.IsUndecided() {
			log.Debug("challenge refused", "reason", apperror.ErrGameAlreadyInProgress)

			return entity.NewPrivateResult(nil, fmt.Sprintf("A game between %s and %s is already in progress!",
				existingGame.Players[0].Mention(), existingGame.Players[1].Mention())), nil
		}

		game := tictactoe.NewGame(that.rnd, sessionID, user, otherUser)
		if existingGame != nil {
			// replaces the finished game
			game.Version = existingGame.Version
		}

		savedGame, err := that.saveGame(ctx, game)
		if err != nil {
			return nil, err
		}

		log.Info("game created", "x", savedGame.FirstPlayer().ID, "o", savedGame.SecondPlayer().ID)

		return entity.NewPublicResult(savedGame, fmt.Sprintf("Tictastic! Here comes a new challenger! %s vs %s!",
			savedGame.Players[0].Mention(), savedGame.Players[1].Mention())), nil
	})
}

// Move places user's mark at the 1-based column and row.
func (that *GameManager) Move(ctx context.Context, sessionID string, user entity.Player, column, row int) (*entity.Result, error) {
	log := that.logger.With("method", "Move", "session", sessionID)

	return that.retryOnConflict(ctx, func() (*entity.Result, error) {
		game, err := that.getGame(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		if game == nil {
			return entity.NewPrivateResult(nil, "No such game! Issue a challenge to start a new game."), nil
		}

		if err = tictactoe.ApplyMove(game, user, column, row); err != nil {
			if message, ok := apperror.UserMessage(err); ok {
				log.Debug("move rejected", "user", user.ID, "error", err)
				return entity.NewPrivateResult(nil, message), nil
			}

			return nil, fmt.Errorf("failed to make move: %w", err)
		}

		savedGame, err := that.saveGame(ctx, game)
		if err != nil {
			return nil, err
		}

		switch savedGame.Outcome {
		case entity.OutcomeUndecided:
			return entity.NewPublicResult(savedGame, fmt.Sprintf("%s moved at %d,%d.", user.Mention(), column, row)), nil
		case entity.OutcomeDraw:
			log.Info("game finished", "outcome", savedGame.Outcome)
			return entity.NewPublicResult(savedGame, "Cats game!"), nil
		default:
			log.Info("game finished", "outcome", savedGame.Outcome, "winner", user.ID)
			return entity.NewPublicResult(savedGame, fmt.Sprintf("%s wins with move at %d,%d!", user.Mention(), column, row)), nil
		}
	})
}

// Status shows the session's game to the requesting user only.
func (that *GameManager) Status(ctx context.Context, sessionID string) (*entity.Result, error) {
	game, err := that.getGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if game == nil {
		return entity.NewPrivateResult(nil, "No current game found."), nil
	}

	return entity.NewPrivateResult(game, "The current game is:"), nil
}

// Abort clears whatever game the session holds, finished or not.
func (that *GameManager) Abort(ctx context.Context, sessionID string, user entity.Player) (*entity.Result, error) {
	log := that.logger.With("method", "Abort", "session", sessionID)

	if err := that.gameRepo.DeleteBySessionID(ctx, sessionID); err != nil {
		log.Error("failed to delete game", "error", err)
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	log.Info("game deleted", "user", user.ID)

	return entity.NewPublicResult(nil, fmt.Sprintf("%s has aborted and cleared the most recent game", user.Mention())), nil
}

// retryOnConflict reruns a load-mutate-save operation while its write loses a race.
// Every attempt reloads the game, so a retried move is validated against the winning write.
func (that *GameManager) retryOnConflict(ctx context.Context, op func() (*entity.Result, error)) (*entity.Result, error) {
	expBackOff := backoff.NewExponentialBackOff()
	expBackOff.InitialInterval = 10 * time.Millisecond
	expBackOff.MaxInterval = 200 * time.Millisecond

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackOff, maxConflictRetries), ctx)

	return backoff.RetryWithData(func() (*entity.Result, error) {
		result, err := op()
		if err != nil && !errors.Is(err, apperror.ErrVersionConflict) {
			return nil, backoff.Permanent(err)
		}

		return result, err
	}, policy)
}

func (that *GameManager) getGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		that.logger.Error("failed to get game", "session", sessionID, "error", err)
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) saveGame(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	savedGame, err := that.gameRepo.Save(ctx, game)
	if errors.Is(err, apperror.ErrVersionConflict) {
		that.logger.Debug("concurrent update, retrying", "session", game.SessionID, "error", err)
		return nil, err
	}

	if err != nil {
		that.logger.Error("failed to save game", "session", game.SessionID, "error", err)
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return savedGame, nil
}
