// Package api binds the users, cards and character endpoints to their resolvers.
package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/arcanaland/deckview/internal/avatar"
	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/profile"
	"github.com/arcanaland/deckview/internal/transport"
)

// Getter is the subset of transport.Client the API client needs.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Client fetches and resolves API resources.
type Client struct {
	get        Getter
	apiBase    string
	avatarBase string
}

// New creates a Client. apiBase serves /users and /cards; avatarBase serves
// characters by id.
func New(get Getter, apiBase, avatarBase string) *Client {
	return &Client{
		get:        get,
		apiBase:    strings.TrimRight(apiBase, "/"),
		avatarBase: strings.TrimRight(avatarBase, "/"),
	}
}

var _ Getter = (*transport.Client)(nil)

// ProfileURL returns {apiBase}/users/{id}.
func (c *Client) ProfileURL(id int) string {
	return c.apiBase + "/users/" + strconv.Itoa(id)
}

// CardURL returns {apiBase}/cards?value={v}.
func (c *Client) CardURL(value int) string {
	q := url.Values{"value": {strconv.Itoa(value)}}
	return c.apiBase + "/cards?" + q.Encode()
}

// CharacterURL returns {avatarBase}/{id}.
func (c *Client) CharacterURL(id int) string {
	return c.avatarBase + "/" + strconv.Itoa(id)
}

// Profile fetches the user with the given id.
func (c *Client) Profile(ctx context.Context, id int) (*profile.Profile, error) {
	body, err := c.get.Get(ctx, c.ProfileURL(id))
	if err != nil {
		return nil, err
	}
	return profile.Resolve(body)
}

// Card fetches the first card whose value matches.
func (c *Client) Card(ctx context.Context, value int) (*card.Card, error) {
	body, err := c.get.Get(ctx, c.CardURL(value))
	if err != nil {
		return nil, err
	}
	return card.Resolve(value, body)
}

// Character fetches the avatar character with the given id.
func (c *Client) Character(ctx context.Context, id int) (*avatar.Character, error) {
	body, err := c.get.Get(ctx, c.CharacterURL(id))
	if err != nil {
		return nil, err
	}
	return avatar.Resolve(body)
}
