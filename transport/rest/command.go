package rest

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-slack/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
)

var mentionPattern = regexp.MustCompile(`<@([a-zA-Z0-9]+)\|([a-zA-Z0-9_.\-]+?)>`)

type gameUseCase interface {
	Challenge(ctx context.Context, sessionID string, user, otherUser entity.Player) (*entity.Result, error)
	Move(ctx context.Context, sessionID string, user entity.Player, column, row int) (*entity.Result, error)
	Status(ctx context.Context, sessionID string) (*entity.Result, error)
	Abort(ctx context.Context, sessionID string, user entity.Player) (*entity.Result, error)
}

// CommandHandler answers Slack slash commands.
type CommandHandler struct {
	logger *slog.Logger
	token  string
	games  gameUseCase
}

func NewCommandHandler(logger *slog.Logger, token string, games gameUseCase) *CommandHandler {
	return &CommandHandler{
		logger: logger.With("component", "command"),
		token:  token,
		games:  games,
	}
}

type command struct {
	sessionID string
	user      entity.Player
	name      string
	params    []string
}

func (that *CommandHandler) Command(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	// slack occasionally verifies the certificate with a bare request
	if r.Form.Get("ssl_check") != "" {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	if subtle.ConstantTimeCompare([]byte(r.Form.Get("token")), []byte(that.token)) != 1 {
		that.writeError(w, r, apperror.ErrIncorrectToken)
		return
	}

	cmd := command{
		sessionID: r.Form.Get("team_id") + "/" + r.Form.Get("channel_id"),
		user: entity.Player{
			ID:   r.Form.Get("user_id"),
			Name: r.Form.Get("user_name"),
		},
		name:   r.Form.Get("command"),
		params: strings.Fields(r.Form.Get("text")),
	}

	result, err := that.dispatch(r.Context(), cmd)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newSlackMessage(result))
}

func (that *CommandHandler) dispatch(ctx context.Context, cmd command) (*entity.Result, error) {
	if len(cmd.params) == 0 {
		return usageError(cmd, ""), nil
	}

	args := cmd.params[1:]

	switch cmd.params[0] {
	case "status":
		if len(args) != 0 {
			return usageError(cmd, ""), nil
		}
		return that.games.Status(ctx, cmd.sessionID)

	case "challenge":
		if len(args) != 1 {
			return usageError(cmd, ""), nil
		}

		match := mentionPattern.FindStringSubmatch(args[0])
		if match == nil {
			return usageError(cmd, "Please use @-style usernames when creating a game."), nil
		}

		otherUser := entity.Player{ID: match[1], Name: match[2]}
		return that.games.Challenge(ctx, cmd.sessionID, cmd.user, otherUser)

	case "move":
		if len(args) != 2 {
			return usageError(cmd, ""), nil
		}

		column, colErr := strconv.Atoi(args[0])
		row, rowErr := strconv.Atoi(args[1])
		if colErr != nil || rowErr != nil || !inRange(column) || !inRange(row) {
			return usageError(cmd, ""), nil
		}
		return that.games.Move(ctx, cmd.sessionID, cmd.user, column, row)

	case "abort":
		if len(args) != 0 {
			return usageError(cmd, ""), nil
		}
		return that.games.Abort(ctx, cmd.sessionID, cmd.user)

	case "help":
		return help(cmd), nil

	default:
		return usageError(cmd, ""), nil
	}
}

func inRange(index int) bool {
	return index >= 1 && index <= entity.BoardSize
}

func usageError(cmd command, message string) *entity.Result {
	if message == "" {
		message = "Invalid command usage."
	}

	return entity.NewPrivateResult(nil, fmt.Sprintf("%s\nSee %s help for more info\n", message, cmd.name))
}

func help(cmd command) *entity.Result {
	c := cmd.name

	return entity.NewPrivateResult(nil, "Tic-Tac-Toe command reference: \n"+
		"  "+c+" help - print this help\n"+
		"  "+c+" status - show board and status of current channel game\n"+
		"  "+c+" challenge @player - start a new game with @player\n"+
		"  "+c+" move <col> <row> - make a move in a game. Upper left corner is 1,1. Upper right is 3,1\n"+
		"  "+c+" abort - clear the current or most recent game in the channel\n")
}

// writeError shares the message of communicable errors and hides everything else.
func (that *CommandHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := that.logger.With("method", "writeError", "path", r.URL.Path)

	var commErr *apperror.CommunicableError
	if errors.As(err, &commErr) {
		log.Warn("request refused", "status", commErr.StatusCode, "error", err)
		http.Error(w, commErr.Message, commErr.StatusCode)
		return
	}

	log.Error("request failed", "error", err)
	http.Error(w, "Unspecified error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
