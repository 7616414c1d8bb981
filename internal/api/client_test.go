package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/transport"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"username":"rick","state":true,"deck":[2,3]}`))
	})
	mux.HandleFunc("/cards", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("value") {
		case "2":
			w.Write([]byte(`[{"value":2,"name":"Two","suit":"hearts","image":"x"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	})
	mux.HandleFunc("/character/7", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"name":"Abradolf","species":"Human","image":"y"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestURLs(t *testing.T) {
	c := New(nil, "https://api.example.com/db/", "https://chars.example.com/api/character/")
	if got := c.ProfileURL(3); got != "https://api.example.com/db/users/3" {
		t.Errorf("profile url: %s", got)
	}
	if got := c.CardURL(12); got != "https://api.example.com/db/cards?value=12" {
		t.Errorf("card url: %s", got)
	}
	if got := c.CharacterURL(5); got != "https://chars.example.com/api/character/5" {
		t.Errorf("character url: %s", got)
	}
}

func TestClient(t *testing.T) {
	srv := newTestServer(t)
	c := New(transport.New(transport.Config{}), srv.URL, srv.URL+"/character")
	ctx := context.Background()

	p, err := c.Profile(ctx, 1)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.DisplayName != "rick" {
		t.Errorf("profile name: %q", p.DisplayName)
	}

	cd, err := c.Card(ctx, 2)
	if err != nil {
		t.Fatalf("card: %v", err)
	}
	if cd.Name != "Two" {
		t.Errorf("card name: %q", cd.Name)
	}

	_, err = c.Card(ctx, 99)
	var nf *card.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected not found, got %v", err)
	}

	ch, err := c.Character(ctx, 7)
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	if ch.Name != "Abradolf" {
		t.Errorf("character name: %q", ch.Name)
	}

	_, err = c.Profile(ctx, 404)
	if transport.StatusCode(err) != http.StatusNotFound {
		t.Errorf("expected 404 transport error, got %v", err)
	}
}
