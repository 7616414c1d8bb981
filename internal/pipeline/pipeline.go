// Package pipeline sequences the profile, avatar and card fetches for one
// subject and renders the results into a sink.
//
// A run goes profile → avatar → card 0..N-1, each card fully resolved (name,
// then image) before the next. Only a profile failure ends a run early; avatar
// and card failures are logged and leave their slot blank.
//
// Starting a new run supersedes the previous one. Every write a run makes is
// tagged with its generation and dropped once a newer run has started, so a
// slow response for an old subject can never reach the sink.
package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/deckview/internal/api"
	"github.com/arcanaland/deckview/internal/avatar"
	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/imagefetch"
	"github.com/arcanaland/deckview/internal/profile"
	"github.com/arcanaland/deckview/internal/sink"
	"github.com/arcanaland/deckview/internal/transport"
)

// Source resolves the API resources a run needs.
type Source interface {
	Profile(ctx context.Context, id int) (*profile.Profile, error)
	Character(ctx context.Context, id int) (*avatar.Character, error)
	Card(ctx context.Context, value int) (*card.Card, error)
}

// Images fetches artwork. An empty url yields a nil image and no error.
type Images interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

var (
	_ Source = (*api.Client)(nil)
	_ Images = (*imagefetch.Fetcher)(nil)
)

// Config configures an Orchestrator.
type Config struct {
	SlotCount int // Number of card slots on the sink.
	// MinSubject and MaxSubject bound the range Next cycles through. Default: 1..3.
	MinSubject int
	MaxSubject int
	// ParallelCards fetches card branches concurrently instead of in deck order.
	ParallelCards bool
}

func (c *Config) defaults() {
	if c.SlotCount < 0 {
		c.SlotCount = 0
	}
	if c.MinSubject == 0 && c.MaxSubject == 0 {
		c.MinSubject, c.MaxSubject = 1, 3
	}
	if c.MaxSubject < c.MinSubject {
		c.MaxSubject = c.MinSubject
	}
}

// Orchestrator owns the session and drives runs against a sink.
type Orchestrator struct {
	source   Source
	images   Images
	sink     sink.Sink
	config   Config
	logger   *slog.Logger
	newRunID func() string

	wg sync.WaitGroup

	mu      sync.Mutex
	session Session
	state   State
	card    int
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an Orchestrator.
func New(source Source, images Images, s sink.Sink, cfg Config, logger *slog.Logger) *Orchestrator {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		source:   source,
		images:   images,
		sink:     s,
		config:   cfg,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Start clears the sink and begins loading subjectID, superseding any run in
// flight. It returns before any request is made.
func (o *Orchestrator) Start(subjectID int) {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.session.Generation++
	o.session.SubjectID = subjectID
	gen := o.session.Generation
	o.sink.ClearAll()
	o.state = StateFetchingProfile
	o.card = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	o.cancel = cancel
	o.done = done
	o.wg.Add(1)
	o.mu.Unlock()

	r := &run{
		o:       o,
		gen:     gen,
		subject: subjectID,
		log:     o.logger.With("run", o.newRunID(), "generation", gen, "user_id", subjectID),
	}
	go func() {
		defer o.wg.Done()
		defer close(done)
		defer cancel()
		r.execute(ctx)
	}()
}

// Next starts the subject after the current one, wrapping to MinSubject
// past MaxSubject.
func (o *Orchestrator) Next() {
	o.mu.Lock()
	next := o.session.SubjectID + 1
	if next > o.config.MaxSubject || next < o.config.MinSubject {
		next = o.config.MinSubject
	}
	o.mu.Unlock()
	o.Start(next)
}

// ChangeTo makes subjectID the active subject and starts loading it.
func (o *Orchestrator) ChangeTo(subjectID int) {
	o.Start(subjectID)
}

// Status reports the active session and where its run is.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Status{Session: o.session, State: o.state, Card: o.card}
}

// Wait blocks until the active run has finished. If the run is superseded
// while waiting, Wait follows the new one.
func (o *Orchestrator) Wait(ctx context.Context) error {
	for {
		o.mu.Lock()
		done := o.done
		o.mu.Unlock()
		if done == nil {
			return nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}

		o.mu.Lock()
		current := o.done == done
		o.mu.Unlock()
		if current {
			return nil
		}
	}
}

// Close cancels the active run, invalidates its pending writes and waits for
// every run goroutine to return.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.session.Generation++
	o.state = StateIdle
	o.mu.Unlock()
	o.wg.Wait()
}

// run is one pipeline execution for a single generation.
type run struct {
	o       *Orchestrator
	gen     uint64
	subject int
	log     *slog.Logger
}

// apply calls fn with the sink while this run is still the active one.
func (r *run) apply(fn func(s sink.Sink)) bool {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()
	if r.o.session.Generation != r.gen {
		return false
	}
	fn(r.o.sink)
	return true
}

func (r *run) enter(state State, cardIdx int) bool {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()
	if r.o.session.Generation != r.gen {
		return false
	}
	r.o.state = state
	r.o.card = cardIdx
	return true
}

func (r *run) superseded() bool {
	r.o.mu.Lock()
	defer r.o.mu.Unlock()
	return r.o.session.Generation != r.gen
}

func (r *run) discard(step string) {
	r.log.Debug("pipeline: superseded, discarding result", "step", step)
}

func (r *run) execute(ctx context.Context) {
	r.log.Debug("pipeline: start")

	p, err := r.o.source.Profile(ctx, r.subject)
	if err != nil {
		if r.superseded() {
			r.discard("profile")
			return
		}
		r.log.Error("pipeline: profile fetch failed", "error", err, "status", transport.StatusCode(err))
		r.enter(StateAborted, 0)
		return
	}
	if !r.apply(func(s sink.Sink) { s.RenderProfile(p.DisplayName) }) {
		r.discard("profile")
		return
	}

	if !r.enter(StateFetchingAvatar, 0) {
		r.discard("avatar")
		return
	}
	r.loadAvatar(ctx, p.AvatarID())

	n := min(len(p.DeckValues), r.o.config.SlotCount)
	if r.o.config.ParallelCards {
		r.loadCardsParallel(ctx, p.DeckValues[:n])
	} else {
		for i, value := range p.DeckValues[:n] {
			if !r.enter(StateFetchingCard, i) {
				r.discard("card")
				return
			}
			r.loadCard(ctx, i, value)
		}
	}

	if r.enter(StateDone, 0) {
		r.log.Debug("pipeline: done", "cards", n)
	}
}

func (r *run) loadAvatar(ctx context.Context, characterID int) {
	log := r.log.With("character_id", characterID)

	ch, err := r.o.source.Character(ctx, characterID)
	if err != nil {
		if r.superseded() {
			r.discard("avatar")
			return
		}
		log.Error("pipeline: avatar fetch failed", "error", err, "status", transport.StatusCode(err))
		return
	}
	if ch.ImageURL == "" {
		log.Debug("pipeline: avatar has no image")
		return
	}

	img, err := r.o.images.Fetch(ctx, ch.ImageURL)
	if err != nil {
		if r.superseded() {
			r.discard("avatar image")
			return
		}
		log.Error("pipeline: avatar image failed", "url", ch.ImageURL, "error", err)
		return
	}
	if img != nil && !r.apply(func(s sink.Sink) { s.RenderAvatar(img) }) {
		r.discard("avatar image")
	}
}

func (r *run) loadCardsParallel(ctx context.Context, values []int) {
	if len(values) == 0 {
		return
	}
	r.enter(StateFetchingCard, 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(values))
	for i, value := range values {
		g.Go(func() error {
			r.loadCard(gctx, i, value)
			return nil
		})
	}
	g.Wait()
}

func (r *run) loadCard(ctx context.Context, slot, value int) {
	log := r.log.With("slot", slot, "value", value)

	c, err := r.o.source.Card(ctx, value)
	if err != nil {
		if r.superseded() {
			r.discard("card")
			return
		}
		var nf *card.NotFoundError
		if errors.As(err, &nf) {
			log.Warn("pipeline: card not found")
			return
		}
		log.Error("pipeline: card fetch failed", "error", err, "status", transport.StatusCode(err))
		return
	}
	if !r.apply(func(s sink.Sink) { s.RenderCardName(slot, c.Name) }) {
		r.discard("card")
		return
	}

	img, err := r.o.images.Fetch(ctx, c.ImageURL)
	if err != nil {
		if r.superseded() {
			r.discard("card image")
			return
		}
		log.Error("pipeline: card image failed", "url", c.ImageURL, "error", err)
		return
	}
	if img != nil && !r.apply(func(s sink.Sink) { s.RenderCardImage(slot, img) }) {
		r.discard("card image")
	}
}
