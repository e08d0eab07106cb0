package web

import (
	"sync"

	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// EngineState holds one client's recommendation engine together with the
// last set of results, so a follow-up save request can reuse them.
type EngineState struct {
	Engine   *recommend.Engine
	LastRecs []recommend.Recommendation
	LastType playlist.Type
	Library  []playlist.LibraryTrack
}

// EngineRegistry maps client IDs to their engine state. Each client gets an
// isolated engine so one user's uploads never leak into another's
// recommendations.
type EngineRegistry struct {
	cfg recommend.Config

	mu      sync.Mutex
	engines map[string]*engineEntry

	// seed, when set, is copied into every new engine so clients start
	// with the bundled dataset already loaded.
	seed []recommend.Track
}

type engineEntry struct {
	mu    sync.Mutex
	state EngineState
}

// NewEngineRegistry creates a registry that builds engines with the given
// configuration.
func NewEngineRegistry(cfg recommend.Config) *EngineRegistry {
	return &EngineRegistry{
		cfg:     cfg,
		engines: make(map[string]*engineEntry),
	}
}

// SetSeedDataset sets the dataset preloaded into newly created engines.
func (r *EngineRegistry) SetSeedDataset(tracks []recommend.Track) {
	r.mu.Lock()
	r.seed = tracks
	r.mu.Unlock()
}

// With runs fn with exclusive access to the client's engine state,
// creating the engine on first use.
func (r *EngineRegistry) With(clientID string, fn func(*EngineState) error) error {
	entry := r.entry(clientID)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(&entry.state)
}

// Adopt re-keys engine state from one client ID to another, so a dataset or
// library loaded anonymously survives logging in. No-op when the source has
// no state or the target already has its own.
func (r *EngineRegistry) Adopt(fromID, toID string) {
	if fromID == "" || toID == "" || fromID == toID {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.engines[fromID]
	if !ok {
		return
	}
	delete(r.engines, fromID)
	if _, taken := r.engines[toID]; taken {
		return
	}
	r.engines[toID] = entry
}

// Remove discards a client's engine state, e.g. on logout.
func (r *EngineRegistry) Remove(clientID string) {
	r.mu.Lock()
	delete(r.engines, clientID)
	r.mu.Unlock()
}

func (r *EngineRegistry) entry(clientID string) *engineEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.engines[clientID]
	if !ok {
		entry = &engineEntry{state: EngineState{Engine: recommend.NewEngine(r.cfg)}}
		if len(r.seed) > 0 {
			if err := entry.state.Engine.LoadDataset(r.seed); err != nil {
				// Seed datasets are validated at startup; an error here
				// leaves the engine empty, which handlers report cleanly.
				entry.state.Engine = recommend.NewEngine(r.cfg)
			}
		}
		r.engines[clientID] = entry
	}
	return entry
}
