package entity

type Visibility string

const (
	Public  Visibility = "public"
	Private Visibility = "private"
)

// Result is what a game operation hands back for rendering in the channel.
type Result struct {
	Game       *Game
	Text       string
	Visibility Visibility
}

func NewPublicResult(game *Game, text string) *Result {
	return &Result{Game: game, Text: text, Visibility: Public}
}

func NewPrivateResult(game *Game, text string) *Result {
	return &Result{Game: game, Text: text, Visibility: Private}
}

func (that *Result) IsPublic() bool {
	return that.Visibility == Public
}
