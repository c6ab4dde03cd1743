package rest

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-slack/internal/entity"
)

const (
	responseEphemeral = "ephemeral"
	responseInChannel = "in_channel"

	boardRule = "-------------\n"
)

type slackMessage struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

func newSlackMessage(result *entity.Result) slackMessage {
	message := slackMessage{
		ResponseType: responseEphemeral,
		Text:         result.Text,
	}

	if result.IsPublic() {
		message.ResponseType = responseInChannel
	}

	if result.Game != nil {
		message.Text += renderBoard(result.Game)
	}

	return message
}

// renderBoard draws the game as a code block: players, status line and the grid.
func renderBoard(game *entity.Game) string {
	first, second := game.FirstPlayer().Mention(), game.SecondPlayer().Mention()

	var b strings.Builder

	b.WriteString("\n```\n")
	fmt.Fprintf(&b, "%s v. %s\n", first, second)

	switch game.Outcome {
	case entity.OutcomeUndecided:
		fmt.Fprintf(&b, "Move %d.\n%s [%s] is next.\n", game.MoveCount, game.NextPlayer().Mention(), game.NextMark())
	case entity.OutcomeX:
		fmt.Fprintf(&b, "%s [X] won.\n", first)
	case entity.OutcomeO:
		fmt.Fprintf(&b, "%s [O] won.\n", second)
	default:
		b.WriteString("Cats game.\n")
	}

	b.WriteString(boardRule)
	for row := 0; row < entity.BoardSize; row++ {
		b.WriteString("|")
		for column := 0; column < entity.BoardSize; column++ {
			fmt.Fprintf(&b, " %s |", symbol(game.Board[column][row]))
		}
		b.WriteString("\n" + boardRule)
	}
	b.WriteString("```")

	return b.String()
}

func symbol(mark entity.Mark) string {
	switch mark {
	case entity.MarkX, entity.MarkO:
		return string(mark)
	default:
		return "."
	}
}
