package apperror

import (
	"errors"
	"net/http"
)

// Rule violations of a move. They are expected user errors and never reach storage.
var (
	ErrNotAPlayer      = errors.New("not a player in this game")
	ErrInvalidLocation = errors.New("invalid board location")
	ErrGameOver        = errors.New("game is already over")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
)

var (
	ErrGameAlreadyInProgress = errors.New("game already in progress")
	ErrVersionConflict       = errors.New("game was modified concurrently")
)

var userMessages = map[error]string{
	ErrNotAPlayer:      "You are not a player in this game!",
	ErrInvalidLocation: "Invalid board location. Valid indexes 1-3.",
	ErrGameOver:        "That game is already over!",
	ErrNotYourTurn:     "It's not your turn.",
	ErrCellOccupied:    "Someone has already moved at that board location!",
}

// UserMessage returns the chat text for a move rule violation.
// ok is false when err is not one of them.
func UserMessage(err error) (string, bool) {
	for target, msg := range userMessages {
		if errors.Is(err, target) {
			return msg, true
		}
	}

	return "", false
}

// CommunicableError is an error whose message may be shown to the caller as is.
type CommunicableError struct {
	StatusCode int
	Message    string
}

func NewCommunicableError(statusCode int, message string) *CommunicableError {
	return &CommunicableError{StatusCode: statusCode, Message: message}
}

func (that *CommunicableError) Error() string {
	return that.Message
}

var ErrIncorrectToken = NewCommunicableError(http.StatusForbidden, "Incorrect Slack command token!")
