// Package imagefetch downloads card and avatar artwork and decodes it.
package imagefetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Getter performs a GET and returns the body.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// DecodeError reports bytes that are not a supported image.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Fetcher retrieves images over a Getter.
type Fetcher struct {
	get Getter
}

// New creates a Fetcher.
func New(get Getter) *Fetcher {
	return &Fetcher{get: get}
}

// Fetch downloads and decodes url. An empty url is a no-op and returns a nil
// image with no error; the caller is expected to leave its target untouched.
func (f *Fetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	if url == "" {
		return nil, nil
	}

	data, err := f.get.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return img, nil
}
