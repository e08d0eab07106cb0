package playlist

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// fakeRecommender returns a fixed candidate pool.
type fakeRecommender struct {
	tracks   []recommend.ScoredTrack
	err      error
	lastTopN int
}

func (f *fakeRecommender) RecommendTracks(topN int) ([]recommend.ScoredTrack, error) {
	f.lastTopN = topN
	if f.err != nil {
		return nil, f.err
	}
	if topN > 0 && len(f.tracks) > topN {
		return f.tracks[:topN], nil
	}
	return f.tracks, nil
}

func testBuilder(cfg Config) *Builder {
	cfg.Rand = rand.New(rand.NewSource(1))
	return NewBuilder(cfg)
}

func TestBuildMood(t *testing.T) {
	var pool []recommend.ScoredTrack
	for i := 0; i < 60; i++ {
		valence := float64(i) / 60
		pool = append(pool, recommend.ScoredTrack{
			Track: recommend.Track{
				Name:         fmt.Sprintf("Song %d", i),
				Valence:      ptr(valence),
				Energy:       ptr(0.5),
				Danceability: ptr(0.5),
				Tempo:        ptr(120),
			},
			Score: 0.5,
		})
	}

	b := testBuilder(Config{PlaylistSize: 5, KeepTop: 20, MinGated: 10})
	entries, err := b.BuildMood(&fakeRecommender{tracks: pool}, MoodHappy)
	if err != nil {
		t.Fatalf("BuildMood: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want 5", len(entries))
	}

	// The happy gate requires valence > 0.5, and 29 tracks pass it, which
	// exceeds MinGated; every selected track must satisfy the gate.
	for _, e := range entries {
		if *e.Track.Valence <= 0.5 {
			t.Errorf("selected track %q has valence %g, gate requires > 0.5", e.Track.Name, *e.Track.Valence)
		}
		if e.Category == "" {
			t.Errorf("entry %q has no mood category", e.Track.Name)
		}
		if e.MoodScore <= 0 {
			t.Errorf("entry %q has mood score %g", e.Track.Name, e.MoodScore)
		}
	}
}

func TestBuildMoodPoolSizes(t *testing.T) {
	pool := []recommend.ScoredTrack{
		{Track: recommend.Track{Name: "Only", Valence: ptr(0.9)}},
	}

	b := testBuilder(Config{})
	tests := []struct {
		mood Mood
		want int
	}{
		{MoodHappy, 500},
		{MoodSad, 200},
		{MoodChill, 200},
		{MoodHype, 200},
	}

	for _, tt := range tests {
		rec := &fakeRecommender{tracks: pool}
		if _, err := b.BuildMood(rec, tt.mood); err != nil {
			t.Fatalf("BuildMood(%s): %v", tt.mood, err)
		}
		if rec.lastTopN != tt.want {
			t.Errorf("BuildMood(%s) requested pool of %d, want %d", tt.mood, rec.lastTopN, tt.want)
		}
	}
}

func TestBuildMoodGateFallback(t *testing.T) {
	// Nothing passes the happy gate, so the builder falls back to the full
	// pool instead of returning an empty playlist.
	var pool []recommend.ScoredTrack
	for i := 0; i < 20; i++ {
		pool = append(pool, recommend.ScoredTrack{
			Track: recommend.Track{
				Name:    fmt.Sprintf("Gloomy %d", i),
				Valence: ptr(0.1),
			},
		})
	}

	b := testBuilder(Config{PlaylistSize: 5})
	entries, err := b.BuildMood(&fakeRecommender{tracks: pool}, MoodHappy)
	if err != nil {
		t.Fatalf("BuildMood: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("got %d entries, want 5 from ungated fallback", len(entries))
	}
}

func TestBuildMoodPropagatesEngineError(t *testing.T) {
	b := testBuilder(Config{})
	_, err := b.BuildMood(&fakeRecommender{err: recommend.ErrNotReady}, MoodChill)
	if !errors.Is(err, recommend.ErrNotReady) {
		t.Fatalf("err = %v, want wrapped ErrNotReady", err)
	}
}

func TestBuildMoodEmptyPool(t *testing.T) {
	b := testBuilder(Config{})
	_, err := b.BuildMood(&fakeRecommender{}, MoodSad)
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("err = %v, want ErrNoCandidates", err)
	}
}

func libraryFixture() []LibraryTrack {
	now := time.Now()
	year := now.Year()
	return []LibraryTrack{
		{Track: recommend.Track{Name: "Ancient"}, ReleaseYear: year - 20, AddedAt: now.AddDate(-3, 0, 0)},
		{Track: recommend.Track{Name: "Old"}, ReleaseYear: year - 12, AddedAt: now.AddDate(-2, 0, 0)},
		{Track: recommend.Track{Name: "Recent"}, ReleaseYear: year - 5, AddedAt: now.AddDate(-1, 0, 0)},
		{Track: recommend.Track{Name: "Fresh"}, ReleaseYear: year, AddedAt: now},
		{Track: recommend.Track{Name: "Unknown Year"}, ReleaseYear: 0, AddedAt: now},
	}
}

func TestBuildLibraryThrowback(t *testing.T) {
	b := testBuilder(Config{PlaylistSize: 10})
	entries, err := b.BuildLibrary(libraryFixture(), TypeThrowback)
	if err != nil {
		t.Fatalf("BuildLibrary: %v", err)
	}

	names := entryNames(entries)
	if len(names) != 2 || !names["Ancient"] || !names["Old"] {
		t.Errorf("throwback = %v, want Ancient and Old only", names)
	}
}

func TestBuildLibraryNewReleases(t *testing.T) {
	b := testBuilder(Config{PlaylistSize: 10})
	entries, err := b.BuildLibrary(libraryFixture(), TypeNewReleases)
	if err != nil {
		t.Fatalf("BuildLibrary: %v", err)
	}

	names := entryNames(entries)
	if len(names) != 1 || !names["Fresh"] {
		t.Errorf("new releases = %v, want Fresh only", names)
	}
}

func TestBuildLibraryPastFavorites(t *testing.T) {
	b := testBuilder(Config{PlaylistSize: 2, KeepTop: 2})
	entries, err := b.BuildLibrary(libraryFixture(), TypePastFavorites)
	if err != nil {
		t.Fatalf("BuildLibrary: %v", err)
	}

	names := entryNames(entries)
	if len(names) != 2 || !names["Ancient"] || !names["Old"] {
		t.Errorf("past favorites = %v, want the two earliest additions", names)
	}
}

func TestBuildLibraryEmpty(t *testing.T) {
	b := testBuilder(Config{})
	if _, err := b.BuildLibrary(nil, TypeThrowback); !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("err = %v, want ErrNoCandidates", err)
	}
}

func TestBuildLibraryUnsupportedType(t *testing.T) {
	b := testBuilder(Config{})
	if _, err := b.BuildLibrary(libraryFixture(), TypeMoodHappy); err == nil {
		t.Fatal("expected error for mood type passed to BuildLibrary")
	}
}

func TestTypeHelpers(t *testing.T) {
	if TypeMoodHappy.Mood() != MoodHappy {
		t.Errorf("TypeMoodHappy.Mood() = %q", TypeMoodHappy.Mood())
	}
	if TypeThrowback.Mood() != "" {
		t.Errorf("TypeThrowback.Mood() = %q, want empty", TypeThrowback.Mood())
	}
	if got := TypeMoodHype.DisplayName(); got != "Hyper Energetic" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := Type("road-trip").DisplayName(); got != "Road Trip" {
		t.Errorf("fallback DisplayName = %q, want Road Trip", got)
	}
}

func entryNames(entries []Entry) map[string]bool {
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Track.Name] = true
	}
	return names
}
