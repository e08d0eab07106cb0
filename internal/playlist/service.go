package playlist

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// Type identifies a themed playlist.
type Type string

const (
	TypeMoodHappy     Type = "mood-happy"
	TypeMoodSad       Type = "mood-sad"
	TypeMoodChill     Type = "mood-chill"
	TypeMoodHype      Type = "mood-hype"
	TypeThrowback     Type = "throwback"
	TypePastFavorites Type = "past-favorites"
	TypeNewReleases   Type = "new-releases"
	TypeGenreExplorer Type = "genre-explorer"
)

// Mood returns the mood for a mood-themed type, or "" for library types.
func (t Type) Mood() Mood {
	switch t {
	case TypeMoodHappy:
		return MoodHappy
	case TypeMoodSad:
		return MoodSad
	case TypeMoodChill:
		return MoodChill
	case TypeMoodHype:
		return MoodHype
	}
	return ""
}

// DisplayName returns a human-readable name for a playlist type.
func (t Type) DisplayName() string {
	switch t {
	case TypeMoodHappy:
		return "Uplifting Happy"
	case TypeMoodSad:
		return "Intensely Sad"
	case TypeMoodChill:
		return "Ultra Chill"
	case TypeMoodHype:
		return "Hyper Energetic"
	case TypeThrowback:
		return "Throwback"
	case TypePastFavorites:
		return "Past Favorites"
	case TypeNewReleases:
		return "New Releases"
	case TypeGenreExplorer:
		return "Genre Explorer"
	}
	// Fall back to title-cased type value, hyphens replaced.
	words := strings.Fields(strings.ReplaceAll(string(t), "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ErrNoCandidates is returned when a playlist has no tracks to draw from.
var ErrNoCandidates = errors.New("no candidate tracks for playlist")

// Entry is a track selected for a themed playlist.
type Entry struct {
	Track     recommend.Track
	Score     float64 // engine similarity score; 0 for library playlists
	MoodScore float64 // 0 for library playlists
	Category  string  // descriptive mood label, empty for library playlists
}

// LibraryTrack is a saved track from the user's library together with the
// metadata the library playlists select on.
type LibraryTrack struct {
	Track       recommend.Track
	AddedAt     time.Time
	ReleaseYear int
}

// Recommender is the engine surface the mood playlists consume.
type Recommender interface {
	RecommendTracks(topN int) ([]recommend.ScoredTrack, error)
}

// Config holds playlist builder parameters.
type Config struct {
	PoolSize      int // engine candidates considered for mood playlists
	HappyPoolSize int // wider pool used for the happy playlist
	KeepTop       int // top-scoring tracks kept before random selection
	PlaylistSize  int // tracks in the final playlist
	MinGated      int // minimum gate-passing pool before falling back to ungated
	ThrowbackAge  int // minimum age in years for a throwback track
	NewReleaseAge int // maximum age in years for a new release
	Rand          *rand.Rand
}

// DefaultConfig returns the recommended builder configuration.
func DefaultConfig() Config {
	return Config{
		PoolSize:      200,
		HappyPoolSize: 500,
		KeepTop:       100,
		PlaylistSize:  10,
		MinGated:      50,
		ThrowbackAge:  10,
		NewReleaseAge: 2,
	}
}

// Builder generates themed playlists. The final selection is intentionally
// randomized, so repeated calls return different playlists.
type Builder struct {
	cfg Config
	rng *rand.Rand
}

// NewBuilder creates a Builder, normalizing zero config fields to defaults.
func NewBuilder(cfg Config) *Builder {
	def := DefaultConfig()
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = def.PoolSize
	}
	if cfg.HappyPoolSize <= 0 {
		cfg.HappyPoolSize = def.HappyPoolSize
	}
	if cfg.KeepTop <= 0 {
		cfg.KeepTop = def.KeepTop
	}
	if cfg.PlaylistSize <= 0 {
		cfg.PlaylistSize = def.PlaylistSize
	}
	if cfg.MinGated <= 0 {
		cfg.MinGated = def.MinGated
	}
	if cfg.ThrowbackAge <= 0 {
		cfg.ThrowbackAge = def.ThrowbackAge
	}
	if cfg.NewReleaseAge <= 0 {
		cfg.NewReleaseAge = def.NewReleaseAge
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{cfg: cfg, rng: rng}
}

// BuildMood generates a mood playlist from engine output: score a wide
// candidate pool by mood fit, keep the best, then pick the final tracks at
// random from that top slice.
func (b *Builder) BuildMood(eng Recommender, mood Mood) ([]Entry, error) {
	// Happy draws from a wider candidate pool than the other moods because
	// its gate discards low-valence tracks afterwards.
	poolSize := b.cfg.PoolSize
	if mood == MoodHappy {
		poolSize = b.cfg.HappyPoolSize
	}

	pool, err := eng.RecommendTracks(poolSize)
	if err != nil {
		return nil, fmt.Errorf("generating candidate pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, ErrNoCandidates
	}

	entries := make([]Entry, len(pool))
	for i, s := range pool {
		ms := moodScore(s.Track, mood)
		entries[i] = Entry{
			Track:     s.Track,
			Score:     s.Score,
			MoodScore: ms,
			Category:  moodCategory(mood, ms),
		}
	}

	// Apply the mood gate only when enough tracks pass it.
	gated := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if moodGate(e.Track, mood) {
			gated = append(gated, e)
		}
	}
	if len(gated) >= b.cfg.MinGated {
		entries = gated
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MoodScore > entries[j].MoodScore
	})
	if len(entries) > b.cfg.KeepTop {
		entries = entries[:b.cfg.KeepTop]
	}

	return b.pick(entries), nil
}

// BuildLibrary generates a library-based playlist (throwback, past
// favorites, new releases, genre explorer) from the user's saved tracks.
func (b *Builder) BuildLibrary(tracks []LibraryTrack, typ Type) ([]Entry, error) {
	if len(tracks) == 0 {
		return nil, ErrNoCandidates
	}

	var selected []LibraryTrack
	switch typ {
	case TypeThrowback:
		selected = b.throwback(tracks)
	case TypePastFavorites:
		selected = b.pastFavorites(tracks)
	case TypeNewReleases:
		selected = b.newReleases(tracks)
	case TypeGenreExplorer:
		selected = b.genreExplorer(tracks)
	default:
		return nil, fmt.Errorf("unsupported library playlist type %q", typ)
	}
	if len(selected) == 0 {
		return nil, ErrNoCandidates
	}

	entries := make([]Entry, len(selected))
	for i, lt := range selected {
		entries[i] = Entry{Track: lt.Track}
	}
	return b.pick(entries), nil
}

// throwback keeps tracks released at least ThrowbackAge years ago.
func (b *Builder) throwback(tracks []LibraryTrack) []LibraryTrack {
	cutoff := time.Now().Year() - b.cfg.ThrowbackAge
	var out []LibraryTrack
	for _, t := range tracks {
		if t.ReleaseYear > 0 && t.ReleaseYear <= cutoff {
			out = append(out, t)
		}
	}
	return out
}

// pastFavorites keeps the earliest additions to the library.
func (b *Builder) pastFavorites(tracks []LibraryTrack) []LibraryTrack {
	out := append([]LibraryTrack(nil), tracks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AddedAt.Before(out[j].AddedAt)
	})
	if len(out) > b.cfg.KeepTop {
		out = out[:b.cfg.KeepTop]
	}
	return out
}

// newReleases keeps tracks released within the last NewReleaseAge years.
func (b *Builder) newReleases(tracks []LibraryTrack) []LibraryTrack {
	cutoff := time.Now().Year() - b.cfg.NewReleaseAge
	var out []LibraryTrack
	for _, t := range tracks {
		if t.ReleaseYear >= cutoff {
			out = append(out, t)
		}
	}
	return out
}

// genreExplorer clusters the library by mood and surfaces the smallest
// cluster, the corner of the library the user visits least.
func (b *Builder) genreExplorer(tracks []LibraryTrack) []LibraryTrack {
	moodClusters, leftovers := ClusterByMood(tracks, defaultMoodClusters)
	if len(moodClusters) == 0 {
		return leftovers
	}

	smallest := moodClusters[0]
	for _, c := range moodClusters[1:] {
		if len(c.Tracks) < len(smallest.Tracks) {
			smallest = c
		}
	}
	return smallest.Tracks
}

// pick shuffles entries (Fisher-Yates) and returns the first PlaylistSize.
func (b *Builder) pick(entries []Entry) []Entry {
	out := append([]Entry(nil), entries...)
	b.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	if len(out) > b.cfg.PlaylistSize {
		out = out[:b.cfg.PlaylistSize]
	}
	return out
}
