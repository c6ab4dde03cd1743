package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
)

// GameRepository stores one game per session.
//
// GetBySessionID returns (nil, nil) when the session has no game. Save canonicalizes and
// validates the game, then writes it only if the stored revision still equals game.Version,
// returning the stored copy with its new Version. DeleteBySessionID is idempotent.
type GameRepository interface {
	GetBySessionID(ctx context.Context, sessionID string) (*entity.Game, error)
	Save(ctx context.Context, game *entity.Game) (*entity.Game, error)
	DeleteBySessionID(ctx context.Context, sessionID string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(sessionID string) string {
	return "game:" + sessionID
}

func (that *dbGame) GetBySessionID(ctx context.Context, sessionID string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by session id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal(response, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) Save(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	next, err := prepare(game)
	if err != nil {
		return nil, err
	}

	gameJSON, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	key := gameKey(game.SessionID)

	err = that.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}

		if stored != game.Version {
			return fmt.Errorf("%w: stored version %d, got %d", apperror.ErrVersionConflict, stored, game.Version)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, gameJSON, 0)
			return nil
		})

		return err
	}, key)

	if errors.Is(err, apperror.ErrVersionConflict) {
		return nil, err
	}

	if errors.Is(err, redis.TxFailedErr) {
		return nil, fmt.Errorf("%w: session %s", apperror.ErrVersionConflict, game.SessionID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to set game: %w", err)
	}

	return next, nil
}

func (that *dbGame) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if err := that.client.Del(ctx, gameKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete game by session id: %w", err)
	}

	return nil
}

func storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	response, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to read stored game: %w", err)
	}

	var stored struct {
		Version int64 `json:"version"`
	}
	if err = json.Unmarshal(response, &stored); err != nil {
		return 0, fmt.Errorf("failed to unmarshal stored game: %w", err)
	}

	return stored.Version, nil
}

// prepare returns the copy of game that a store writes: canonical, valid and one version ahead.
func prepare(game *entity.Game) (*entity.Game, error) {
	next := *game
	next.Canonicalize()

	if result := entity.Validate(&next); !result.Valid() {
		return nil, &entity.ValidationError{Result: result}
	}

	next.Version = game.Version + 1

	return &next, nil
}
