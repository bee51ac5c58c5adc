// Package playback resolves embeddable video sources for a movie with ordered fallback.
package playback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/flickstream/flickstream/internal/config"
)

const placeholder = "id"

var (
	ErrExhausted       = errors.New("no playback source available")
	ErrNoProviders     = errors.New("no playback providers configured")
	ErrInvalidTemplate = errors.New("invalid provider template")
)

// Source is one candidate embed URL.
type Source struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// State is the position in a movie's candidate list. The zero Index is the primary provider.
type State struct {
	EntityID int `json:"entityId"`
	Index    int `json:"index"`
}

type provider struct {
	name     string
	template *fasttemplate.Template
}

// Resolver renders provider templates into candidate sources.
// It never contacts a source; only Advance moves to the next one.
type Resolver struct {
	providers []provider
}

// NewResolver compiles the configured provider templates in order.
// Each template must contain the {id} placeholder.
func NewResolver(providers []config.ProviderConfig) (*Resolver, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	r := &Resolver{providers: make([]provider, 0, len(providers))}
	for i, p := range providers {
		if !strings.Contains(p.Template, "{"+placeholder+"}") {
			return nil, fmt.Errorf("%w: provider %d (%s) has no {%s} placeholder", ErrInvalidTemplate, i, p.Name, placeholder)
		}
		tpl, err := fasttemplate.NewTemplate(p.Template, "{", "}")
		if err != nil {
			return nil, fmt.Errorf("%w: provider %d (%s): %w", ErrInvalidTemplate, i, p.Name, err)
		}
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("provider-%d", i+1)
		}
		r.providers = append(r.providers, provider{name: name, template: tpl})
	}
	return r, nil
}

// Len returns the number of candidates per movie.
func (r *Resolver) Len() int {
	return len(r.providers)
}

// SourcesFor returns every candidate for id in fallback order.
func (r *Resolver) SourcesFor(id int) []Source {
	sources := make([]Source, 0, len(r.providers))
	for i := range r.providers {
		sources = append(sources, r.source(i, id))
	}
	return sources
}

// Start returns the initial state for id.
func (r *Resolver) Start(id int) State {
	return State{EntityID: id}
}

// Current returns the candidate selected by state, or ErrExhausted past the last one.
func (r *Resolver) Current(state State) (Source, error) {
	if r.Exhausted(state) {
		return Source{}, ErrExhausted
	}
	return r.source(state.Index, state.EntityID), nil
}

// Advance moves to the next candidate. It saturates at the exhausted state.
func (r *Resolver) Advance(state State) State {
	if state.Index < 0 {
		state.Index = 0
	}
	if state.Index < len(r.providers) {
		state.Index++
	}
	return state
}

// Exhausted reports whether state has run past the last candidate.
func (r *Resolver) Exhausted(state State) bool {
	return state.Index >= len(r.providers)
}

func (r *Resolver) source(i, id int) Source {
	p := r.providers[i]
	return Source{
		Provider: p.name,
		URL: p.template.ExecuteString(map[string]interface{}{
			placeholder: strconv.Itoa(id),
		}),
	}
}
