package metadata

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrSuperseded is returned by Aggregator.Fetch when a newer fetch started before this one finished.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// Status is the lifecycle of the composite shown for one session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// Snapshot is the published composite state of an Aggregator.
type Snapshot struct {
	EntityID   int        `json:"entityId"`
	Generation uint64     `json:"generation"`
	Status     Status     `json:"status"`
	Composite  *Composite `json:"composite,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Aggregator owns the composite state for one viewer and publishes snapshots in request order.
// A fetch whose generation is no longer current never publishes.
type Aggregator struct {
	fetcher   CompositeFetcher
	onPublish func(Snapshot)
	logger    zerolog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      Snapshot

	// publishMu serializes the generation check with the callback.
	publishMu sync.Mutex
}

// NewAggregator creates an aggregator. onPublish may be nil.
func NewAggregator(fetcher CompositeFetcher, logger zerolog.Logger, onPublish func(Snapshot)) *Aggregator {
	return &Aggregator{
		fetcher:   fetcher,
		onPublish: onPublish,
		logger:    logger.With().Str("component", "aggregator").Logger(),
		state:     Snapshot{Status: StatusIdle},
	}
}

// Pending is a fetch whose generation is already claimed. Run issues the calls.
type Pending struct {
	agg    *Aggregator
	id     int
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Begin supersedes any earlier fetch, claims the next generation for id and publishes
// the loading snapshot. Callers that hand Run to another goroutine must call Begin
// first so generations follow request order.
func (a *Aggregator) Begin(ctx context.Context, id int) *Pending {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
	}
	a.generation++
	gen := a.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.mu.Unlock()

	a.publish(gen, Snapshot{EntityID: id, Generation: gen, Status: StatusLoading})

	return &Pending{agg: a, id: id, gen: gen, ctx: fetchCtx, cancel: cancel}
}

// Generation returns the generation claimed by Begin.
func (p *Pending) Generation() uint64 {
	return p.gen
}

// Run builds the composite and publishes it if no newer fetch has begun meanwhile.
func (p *Pending) Run() (*Composite, error) {
	defer p.cancel()

	a := p.agg
	composite, err := a.fetcher.Aggregate(p.ctx, p.id)

	snap := Snapshot{EntityID: p.id, Generation: p.gen, Status: StatusReady, Composite: composite}
	if err != nil {
		snap = Snapshot{EntityID: p.id, Generation: p.gen, Status: StatusFailed, Error: ErrMovieUnavailable.Error()}
	}

	if !a.publish(p.gen, snap) {
		a.logger.Debug().Int("id", p.id).Uint64("generation", p.gen).Msg("Discarding superseded aggregate")
		return nil, ErrSuperseded
	}
	return composite, err
}

// Fetch builds the composite for id and publishes it if no newer fetch has started meanwhile.
// Fetching the id already shown starts over.
func (a *Aggregator) Fetch(ctx context.Context, id int) (*Composite, error) {
	return a.Begin(ctx, id).Run()
}

// Cancel abandons any in-flight fetch without publishing.
func (a *Aggregator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation++
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

// State returns the last published snapshot.
func (a *Aggregator) State() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Aggregator) publish(gen uint64, snap Snapshot) bool {
	a.publishMu.Lock()
	defer a.publishMu.Unlock()

	a.mu.Lock()
	if gen != a.generation {
		a.mu.Unlock()
		return false
	}
	a.state = snap
	a.mu.Unlock()

	if a.onPublish != nil {
		a.onPublish(snap)
	}
	return true
}
