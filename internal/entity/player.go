package entity

import (
	"fmt"
	"sort"
)

// Player is a chat user. Only ID carries identity; Name may change between games.
type Player struct {
	ID   string `json:"user_id"`
	Name string `json:"user_name"`
}

func (that Player) Is(other Player) bool {
	return that.ID == other.ID
}

// Mention formats the player as a Slack user reference.
func (that Player) Mention() string {
	return fmt.Sprintf("<@%s|%s>", that.ID, that.Name)
}

// SortPlayers puts players in canonical order: by display name, then by id.
func SortPlayers(players [2]Player) [2]Player {
	sorted := players[:]
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	return [2]Player{sorted[0], sorted[1]}
}
