// Package search turns a keystroke stream into debounced multi searches.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/flickstream/flickstream/internal/config"
	"github.com/flickstream/flickstream/internal/metadata"
)

// Searcher runs one multi search.
type Searcher interface {
	Search(ctx context.Context, query string) ([]metadata.SearchResult, error)
}

// Results is one emitted result list. Sequence identifies the Submit that produced it.
type Results struct {
	Query    string                  `json:"query"`
	Sequence uint64                  `json:"sequence"`
	Results  []metadata.SearchResult `json:"results"`
}

// Config holds controller timing.
type Config struct {
	// Debounce is the quiet window after the last Submit before the search is sent.
	Debounce time.Duration

	// Timeout bounds a single search request.
	Timeout time.Duration

	Clock clockwork.Clock
}

// DefaultConfig returns default controller configuration.
func DefaultConfig() Config {
	return Config{
		Debounce: 250 * time.Millisecond,
		Timeout:  10 * time.Second,
		Clock:    clockwork.NewRealClock(),
	}
}

// ConfigFrom builds a controller configuration from the search config section.
func ConfigFrom(cfg config.SearchConfig) Config {
	c := DefaultConfig()
	if d := cfg.Debounce(); d > 0 {
		c.Debounce = d
	}
	c.Timeout = cfg.RequestTimeout()
	return c
}

// Controller debounces Submit calls and delivers the results of the latest one.
// Results belonging to a superseded Submit are never delivered.
type Controller struct {
	searcher  Searcher
	config    Config
	logger    zerolog.Logger
	onResults func(Results)

	mu       sync.Mutex
	sequence uint64
	timer    clockwork.Timer
	cancel   context.CancelFunc
	closed   bool

	// emitMu serializes the staleness check with delivery.
	emitMu sync.Mutex
}

// NewController creates a controller that reports through onResults.
func NewController(searcher Searcher, cfg Config, logger zerolog.Logger, onResults func(Results)) *Controller {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if onResults == nil {
		onResults = func(Results) {}
	}
	return &Controller{
		searcher:  searcher,
		config:    cfg,
		logger:    logger.With().Str("component", "search").Logger(),
		onResults: onResults,
	}
}

// Submit records new input text. Blank text clears results immediately; anything else
// is searched once the quiet window passes without another Submit.
func (c *Controller) Submit(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}

	c.sequence++
	seq := c.sequence
	c.stopTimerLocked()

	if strings.TrimSpace(text) == "" {
		c.cancelInFlightLocked()
		c.mu.Unlock()
		c.emit(Results{Query: text, Sequence: seq, Results: []metadata.SearchResult{}})
		return
	}

	c.timer = c.config.Clock.AfterFunc(c.config.Debounce, func() {
		c.run(seq, text)
	})
	c.mu.Unlock()
}

// Sequence returns the number of the latest Submit.
func (c *Controller) Sequence() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sequence
}

// Close stops any pending or in-flight search. Later Submit calls are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.stopTimerLocked()
	c.cancelInFlightLocked()
}

func (c *Controller) run(seq uint64, text string) {
	c.mu.Lock()
	if c.closed || seq != c.sequence {
		c.mu.Unlock()
		return
	}
	c.cancelInFlightLocked()
	ctx, cancel := context.WithTimeout(context.Background(), c.config.Timeout)
	c.cancel = cancel
	c.mu.Unlock()
	defer cancel()

	results, err := c.searcher.Search(ctx, text)
	if err != nil {
		c.logger.Warn().Err(err).Str("query", text).Uint64("sequence", seq).Msg("Search failed")
		results = nil
	}
	if results == nil {
		results = []metadata.SearchResult{}
	}

	c.emit(Results{Query: text, Sequence: seq, Results: results})
}

func (c *Controller) emit(r Results) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	current := !c.closed && r.Sequence == c.sequence
	c.mu.Unlock()

	if !current {
		c.logger.Debug().Str("query", r.Query).Uint64("sequence", r.Sequence).Msg("Discarding stale search results")
		return
	}
	c.onResults(r)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) cancelInFlightLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
