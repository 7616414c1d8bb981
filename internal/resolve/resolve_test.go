package resolve

import (
	"errors"
	"testing"
)

type payload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestObject(t *testing.T) {
	p, err := Object[payload]("thing", []byte(` {"id": 4, "name": "x", "extra": [1,2]} `))
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	if p.ID != 4 || p.Name != "x" {
		t.Errorf("got %+v", *p)
	}
}

func TestObject_MissingFields(t *testing.T) {
	p, err := Object[payload]("thing", []byte(`{}`))
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	if p.ID != 0 || p.Name != "" {
		t.Errorf("expected zero values, got %+v", *p)
	}
}

func TestObject_Errors(t *testing.T) {
	cases := map[string]string{
		"array root": `[{"id":1}]`,
		"empty":      ``,
		"malformed":  `{"id":`,
		"wrong type": `{"id":"one"}`,
		"null":       `null`,
	}
	for name, body := range cases {
		_, err := Object[payload]("thing", []byte(body))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected *ParseError, got %v", name, err)
			continue
		}
		if pe.Kind != "thing" {
			t.Errorf("%s: kind %q", name, pe.Kind)
		}
	}
}
