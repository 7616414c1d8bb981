package avatar

import "github.com/arcanaland/deckview/internal/resolve"

// Character represents an entry of the character API used for avatars
type Character struct {
	ID       int
	Name     string
	Species  string
	ImageURL string
}

type payload struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Image   string `json:"image"`
}

// Resolve parses a character body into a Character
func Resolve(body []byte) (*Character, error) {
	p, err := resolve.Object[payload]("character", body)
	if err != nil {
		return nil, err
	}
	return &Character{ID: p.ID, Name: p.Name, Species: p.Species, ImageURL: p.Image}, nil
}
