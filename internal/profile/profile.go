package profile

import "github.com/arcanaland/deckview/internal/resolve"

// Profile represents a player as returned by the users endpoint
type Profile struct {
	ID          int
	DisplayName string
	Active      bool
	DeckValues  []int // card values, in slot order
}

type payload struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	State    bool   `json:"state"`
	Deck     []int  `json:"deck"`
}

// Resolve parses a users/{id} body into a Profile
func Resolve(body []byte) (*Profile, error) {
	p, err := resolve.Object[payload]("profile", body)
	if err != nil {
		return nil, err
	}
	return &Profile{
		ID:          p.ID,
		DisplayName: p.Username,
		Active:      p.State,
		DeckValues:  p.Deck,
	}, nil
}

// AvatarID maps a profile onto the character used as its avatar.
func (p *Profile) AvatarID() int {
	return max(1, p.ID)
}
