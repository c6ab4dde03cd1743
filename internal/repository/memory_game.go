package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
)

// memoryGame keeps games in process memory. State is lost on restart.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]entity.Game),
	}
}

func (that *memoryGame) GetBySessionID(_ context.Context, sessionID string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[sessionID]
	if !ok {
		return nil, nil
	}

	return &game, nil
}

func (that *memoryGame) Save(_ context.Context, game *entity.Game) (*entity.Game, error) {
	next, err := prepare(game)
	if err != nil {
		return nil, err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if stored := that.games[game.SessionID]; stored.Version != game.Version {
		return nil, fmt.Errorf("%w: stored version %d, got %d", apperror.ErrVersionConflict, stored.Version, game.Version)
	}

	that.games[game.SessionID] = *next

	return next, nil
}

func (that *memoryGame) DeleteBySessionID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, sessionID)

	return nil
}
