// Package session holds the per-client view state and routes presentation intents into the core.
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/flickstream/flickstream/internal/metadata"
	"github.com/flickstream/flickstream/internal/playback"
	"github.com/flickstream/flickstream/internal/search"
)

// Event types emitted to the presentation layer.
const (
	EventSearchResults     = "search:results"
	EventMovieLoading      = "movie:loading"
	EventMovieLoaded       = "movie:loaded"
	EventMovieError        = "movie:error"
	EventPlaybackSource    = "playback:source"
	EventPlaybackExhausted = "playback:exhausted"
	EventViewUpdated       = "view:updated"
)

// Emitter delivers session events to one client.
type Emitter interface {
	Emit(msgType string, payload interface{}) error
}

// Backend is what a session needs from the metadata layer.
type Backend interface {
	search.Searcher
	metadata.CompositeFetcher
}

// ViewState is the transient presentation state owned by a session.
type ViewState struct {
	EntityID      int            `json:"entityId"`
	ShowVideo     bool           `json:"showVideo"`
	SelectedImage string         `json:"selectedImage,omitempty"`
	Playback      playback.State `json:"playback"`
}

// PlaybackPayload accompanies playback events.
type PlaybackPayload struct {
	State   playback.State   `json:"state"`
	Source  *playback.Source `json:"source,omitempty"`
	Message string           `json:"message,omitempty"`
}

// Session is one connected presentation client.
type Session struct {
	id       string
	emitter  Emitter
	resolver *playback.Resolver
	search   *search.Controller
	movies   *metadata.Aggregator
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     conc.WaitGroup

	mu     sync.Mutex
	view   ViewState
	closed bool
}

// New creates a session with its own search controller and aggregator.
func New(backend Backend, resolver *playback.Resolver, searchCfg search.Config, emitter Emitter, logger zerolog.Logger) *Session {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		id:       id,
		emitter:  emitter,
		resolver: resolver,
		logger:   logger.With().Str("component", "session").Str("session", id).Logger(),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.search = search.NewController(backend, searchCfg, s.logger, s.onSearchResults)
	s.movies = metadata.NewAggregator(backend, s.logger, s.onSnapshot)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// View returns a copy of the current view state.
func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Movie returns the last published composite snapshot.
func (s *Session) Movie() metadata.Snapshot {
	return s.movies.State()
}

// Search forwards input text to the debounced search controller.
func (s *Session) Search(text string) {
	s.search.Submit(text)
}

// Select shows a movie. The view state is reset and the composite fetched from scratch,
// even when id is already displayed.
func (s *Session) Select(id int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	defer s.mu.Unlock()

	s.view = ViewState{EntityID: id, Playback: s.resolver.Start(id)}
	s.emit(EventViewUpdated, s.view)

	// The generation is claimed here, in call order; only the network calls run async.
	// Both happen under mu so Close cannot begin waiting before the fetch is tracked.
	pending := s.movies.Begin(s.ctx, id)
	s.wg.Go(func() {
		if _, err := pending.Run(); err != nil {
			s.logger.Debug().Err(err).Int("id", id).Msg("Movie fetch did not publish a result")
		}
	})
}

// Play starts playback of the selected movie at its primary source.
func (s *Session) Play() {
	s.mu.Lock()
	if s.closed || s.view.EntityID == 0 {
		s.mu.Unlock()
		s.logger.Debug().Msg("Ignoring play without a selected movie")
		return
	}
	s.view.ShowVideo = true
	s.view.Playback = s.resolver.Start(s.view.EntityID)
	state := s.view.Playback
	s.mu.Unlock()

	s.emitPlayback(state)
}

// PlaybackFailed signals that the surface could not render the current source.
// A signal for a movie other than the one shown is ignored; entityID 0 means the current one.
func (s *Session) PlaybackFailed(entityID int) {
	s.mu.Lock()
	if s.closed || !s.view.ShowVideo || (entityID != 0 && entityID != s.view.EntityID) {
		s.mu.Unlock()
		return
	}
	if s.resolver.Exhausted(s.view.Playback) {
		s.mu.Unlock()
		return
	}
	s.view.Playback = s.resolver.Advance(s.view.Playback)
	state := s.view.Playback
	s.mu.Unlock()

	s.logger.Info().Int("id", state.EntityID).Int("index", state.Index).Msg("Playback source failed, advancing")
	s.emitPlayback(state)
}

// SelectImage opens the image modal on path.
func (s *Session) SelectImage(path string) {
	s.updateView(func(v *ViewState) { v.SelectedImage = path })
}

// CloseImage closes the image modal.
func (s *Session) CloseImage() {
	s.updateView(func(v *ViewState) { v.SelectedImage = "" })
}

// Close cancels pending work and waits for in-flight fetches to return.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.search.Close()
	s.movies.Cancel()
	s.cancel()
	s.wg.Wait()
}

func (s *Session) updateView(mutate func(*ViewState)) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	mutate(&s.view)
	view := s.view
	s.mu.Unlock()

	s.emit(EventViewUpdated, view)
}

func (s *Session) emitPlayback(state playback.State) {
	source, err := s.resolver.Current(state)
	if err != nil {
		s.emit(EventPlaybackExhausted, PlaybackPayload{State: state, Message: err.Error()})
		return
	}
	s.emit(EventPlaybackSource, PlaybackPayload{State: state, Source: &source})
}

func (s *Session) onSearchResults(r search.Results) {
	s.emit(EventSearchResults, r)
}

func (s *Session) onSnapshot(snap metadata.Snapshot) {
	switch snap.Status {
	case metadata.StatusLoading:
		s.emit(EventMovieLoading, snap)
	case metadata.StatusReady:
		s.emit(EventMovieLoaded, snap)
	case metadata.StatusFailed:
		s.emit(EventMovieError, snap)
	}
}

func (s *Session) emit(msgType string, payload interface{}) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.Emit(msgType, payload); err != nil {
		s.logger.Warn().Err(err).Str("type", msgType).Msg("Failed to emit session event")
	}
}
