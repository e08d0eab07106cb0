package web

import (
	"testing"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

func ptr(v float64) *float64 { return &v }

func seedTracks() []recommend.Track {
	return []recommend.Track{
		{Name: "One", Artist: "A", Danceability: ptr(0.5), Energy: ptr(0.5)},
		{Name: "Two", Artist: "B", Danceability: ptr(0.7), Energy: ptr(0.3)},
	}
}

func TestEngineRegistryIsolation(t *testing.T) {
	reg := NewEngineRegistry(recommend.DefaultConfig())

	err := reg.With("client-a", func(state *EngineState) error {
		return state.Engine.LoadDataset(seedTracks())
	})
	if err != nil {
		t.Fatalf("LoadDataset error = %v", err)
	}

	// A different client gets its own empty engine
	_ = reg.With("client-b", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 0 {
			t.Errorf("client-b dataset size = %d, want 0", state.Engine.DatasetSize())
		}
		return nil
	})

	// The first client's engine persists between calls
	_ = reg.With("client-a", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 2 {
			t.Errorf("client-a dataset size = %d, want 2", state.Engine.DatasetSize())
		}
		return nil
	})
}

func TestEngineRegistrySeedDataset(t *testing.T) {
	reg := NewEngineRegistry(recommend.DefaultConfig())
	reg.SetSeedDataset(seedTracks())

	_ = reg.With("fresh", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 2 {
			t.Errorf("seeded dataset size = %d, want 2", state.Engine.DatasetSize())
		}
		return nil
	})
}

func TestEngineRegistryAdopt(t *testing.T) {
	reg := NewEngineRegistry(recommend.DefaultConfig())

	_ = reg.With("anon", func(state *EngineState) error {
		return state.Engine.LoadDataset(seedTracks())
	})
	reg.Adopt("anon", "session")

	// The session inherits the dataset loaded anonymously
	_ = reg.With("session", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 2 {
			t.Errorf("adopted dataset size = %d, want 2", state.Engine.DatasetSize())
		}
		return nil
	})

	// The anonymous key now starts fresh
	_ = reg.With("anon", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 0 {
			t.Errorf("anon dataset size after Adopt = %d, want 0", state.Engine.DatasetSize())
		}
		return nil
	})
}

func TestEngineRegistryAdoptKeepsExistingTarget(t *testing.T) {
	reg := NewEngineRegistry(recommend.DefaultConfig())

	_ = reg.With("session", func(state *EngineState) error {
		return state.Engine.LoadDataset(seedTracks())
	})
	_ = reg.With("anon", func(state *EngineState) error { return nil })

	reg.Adopt("anon", "session")

	_ = reg.With("session", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 2 {
			t.Errorf("target dataset size = %d, want its own 2", state.Engine.DatasetSize())
		}
		return nil
	})
}

func TestEngineRegistryRemove(t *testing.T) {
	reg := NewEngineRegistry(recommend.DefaultConfig())

	_ = reg.With("gone", func(state *EngineState) error {
		return state.Engine.LoadDataset(seedTracks())
	})
	reg.Remove("gone")

	_ = reg.With("gone", func(state *EngineState) error {
		if state.Engine.DatasetSize() != 0 {
			t.Errorf("dataset size after Remove = %d, want 0", state.Engine.DatasetSize())
		}
		return nil
	})
}
