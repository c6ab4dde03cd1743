package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
)

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteGameRepository expects the games table created by storage.Storage.Init.
func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) GetBySessionID(ctx context.Context, sessionID string) (*entity.Game, error) {
	query := `SELECT document FROM games WHERE session_id = ?`

	var document string

	err := that.conn.QueryRowContext(ctx, query, sessionID).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't find game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(document), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *sqliteGame) Save(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	next, err := prepare(game)
	if err != nil {
		return nil, err
	}

	document, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game: %w", err)
	}

	var res sql.Result
	if game.Version == 0 {
		query := `INSERT INTO games (session_id, version, document) VALUES (?, ?, ?)
			ON CONFLICT (session_id) DO NOTHING`
		res, err = that.conn.ExecContext(ctx, query, next.SessionID, next.Version, string(document))
	} else {
		query := `UPDATE games SET version = ?, document = ? WHERE session_id = ? AND version = ?`
		res, err = that.conn.ExecContext(ctx, query, next.Version, string(document), next.SessionID, game.Version)
	}
	if err != nil {
		return nil, fmt.Errorf("can't save game: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("can't save game: %w", err)
	}

	if affected == 0 {
		return nil, fmt.Errorf("%w: session %s at version %d", apperror.ErrVersionConflict, game.SessionID, game.Version)
	}

	return next, nil
}

func (that *sqliteGame) DeleteBySessionID(ctx context.Context, sessionID string) error {
	query := `DELETE FROM games WHERE session_id = ?`

	if _, err := that.conn.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("can't delete game: %w", err)
	}

	return nil
}
