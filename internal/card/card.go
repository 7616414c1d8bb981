package card

import (
	"fmt"

	"github.com/arcanaland/deckview/internal/resolve"
)

// Card represents a card of the cards API
type Card struct {
	Value    int    // Lookup key; not unique across the API
	Name     string // Display name
	Suit     string // e.g. hearts, spades
	ImageURL string // Absolute URL of the card art
}

// NotFoundError is returned when a value lookup matches no card
type NotFoundError struct {
	Value int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no card with value=%d", e.Value)
}

type payload struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
	Suit  string `json:"suit"`
	Image string `json:"image"`
}

// list is the object shape a bare cards array is wrapped into
type list struct {
	Cards []payload `json:"cards"`
}

// Resolve parses a cards?value={v} body. The API answers with a bare array,
// so the body is wrapped into {"cards": ...} before decoding. Only the first
// match is kept.
func Resolve(value int, body []byte) (*Card, error) {
	wrapped := make([]byte, 0, len(body)+10)
	wrapped = append(wrapped, `{"cards":`...)
	wrapped = append(wrapped, body...)
	wrapped = append(wrapped, '}')

	l, err := resolve.Object[list]("cards", wrapped)
	if err != nil {
		return nil, err
	}
	if len(l.Cards) == 0 {
		return nil, &NotFoundError{Value: value}
	}

	c := l.Cards[0]
	return &Card{Value: c.Value, Name: c.Name, Suit: c.Suit, ImageURL: c.Image}, nil
}
