package recommend

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
)

// ErrNotReady is returned when recommendations are requested before both the
// dataset and the liked songs have been loaded.
var ErrNotReady = errors.New("dataset or liked songs not loaded")

// Config holds engine parameters. Use DefaultConfig as the starting point;
// the zero value disables the genre bonus.
type Config struct {
	Features    []string // audio features used for similarity scoring
	GenreBonus  float64  // flat score bonus for an exact genre match
	DefaultTopN int      // result count when Recommend is called with topN <= 0
}

// DefaultConfig returns the recommended engine configuration.
func DefaultConfig() Config {
	return Config{
		Features:    DefaultFeatures,
		GenreBonus:  0.1,
		DefaultTopN: 20,
	}
}

// Engine ranks dataset candidates by similarity to a user's liked songs.
// Lifecycle: construct, load dataset, load liked songs, recommend, discard.
// An Engine is not safe for concurrent use; callers must serialize access.
type Engine struct {
	cfg Config

	dataset []Track
	std     *Standardized
	liked   []LikedSong
}

// NewEngine creates an engine with the given configuration. An empty feature
// list falls back to DefaultFeatures and a non-positive DefaultTopN to 20.
func NewEngine(cfg Config) *Engine {
	if len(cfg.Features) == 0 {
		cfg.Features = DefaultFeatures
	}
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = 20
	}
	return &Engine{cfg: cfg}
}

// ScoredTrack pairs a dataset candidate with its final score
// (cosine similarity plus any genre bonus).
type ScoredTrack struct {
	Track Track
	Score float64
}

// Recommendation is the display-ready projection of a scored candidate.
// It is a value copy with no back-reference to the dataset.
type Recommendation struct {
	Name       string
	Artist     string
	Genre      string
	Score      string // final score formatted to two decimal places
	ID         string // dataset ID, or a "local-" slug when the row has none
	AlbumCover string
}

// LoadDataset replaces the engine's dataset and recomputes the feature
// statistics and standardized vectors. Returns ErrEmptyDataset when the
// dataset is empty; the previous dataset is kept in that case.
func (e *Engine) LoadDataset(tracks []Track) error {
	std, err := StandardizeFeatures(tracks, e.cfg.Features)
	if err != nil {
		return err
	}
	e.dataset = tracks
	e.std = std
	log.Printf("Loaded dataset with %d songs", len(tracks))
	return nil
}

// Restandardize recomputes feature statistics from the current dataset.
// Call after mutating dataset rows, e.g. after backfilling missing features;
// standardized values from before the mutation are discarded.
func (e *Engine) Restandardize() error {
	std, err := StandardizeFeatures(e.dataset, e.cfg.Features)
	if err != nil {
		return err
	}
	e.std = std
	return nil
}

// LoadLikedSongs replaces the engine's liked-songs reference list.
func (e *Engine) LoadLikedSongs(songs []LikedSong) {
	e.liked = songs
	log.Printf("Loaded %d liked songs", len(songs))
}

// Ready reports whether both the dataset and the liked songs are loaded.
func (e *Engine) Ready() bool {
	return len(e.dataset) > 0 && len(e.liked) > 0
}

// DatasetSize returns the number of dataset rows currently loaded.
func (e *Engine) DatasetSize() int {
	return len(e.dataset)
}

// LikedCount returns the number of liked-song references currently loaded.
func (e *Engine) LikedCount() int {
	return len(e.liked)
}

// Stats returns the per-feature statistics from the last standardization run,
// for diagnostic display. Returns nil before a dataset is loaded.
func (e *Engine) Stats() map[string]Stats {
	if e.std == nil {
		return nil
	}
	return e.std.AllStats()
}

// UserGenres resolves each liked song against the dataset and returns the
// distinct genres of the matched rows, in first-seen order. Returns
// ErrNotReady before both inputs are loaded.
func (e *Engine) UserGenres() ([]string, error) {
	if !e.Ready() {
		return nil, ErrNotReady
	}

	seen := make(map[string]struct{})
	var genres []string
	for _, song := range e.liked {
		for _, i := range e.matchLiked(song) {
			genre := e.dataset[i].Genre
			if genre == "" {
				continue
			}
			if _, ok := seen[genre]; ok {
				continue
			}
			seen[genre] = struct{}{}
			genres = append(genres, genre)
			log.Printf("Found genre match: %q by %s -> %s", song.Name, artistOrUnknown(song.Artist), genre)
		}
	}
	return genres, nil
}

// RecommendTracks scores every candidate against every resolved liked song
// and returns the top topN candidates, sorted descending by final score and
// deduplicated by track name. A liked song that matches no dataset row is
// skipped with a warning; if none resolve the result is empty, not an error.
// topN <= 0 uses the configured default.
func (e *Engine) RecommendTracks(topN int) ([]ScoredTrack, error) {
	if e.std == nil || !e.Ready() {
		return nil, ErrNotReady
	}
	if topN <= 0 {
		topN = e.cfg.DefaultTopN
	}

	genres, err := e.UserGenres()
	if err != nil {
		return nil, err
	}
	genreSet := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		genreSet[g] = struct{}{}
	}
	if len(genreSet) == 0 {
		log.Printf("No genre information found for liked songs, using all genres")
	}

	likedNames := make(map[string]struct{}, len(e.liked))
	for _, song := range e.liked {
		likedNames[strings.ToLower(song.Name)] = struct{}{}
	}

	// Candidate pool: rows in the user's genres (when any resolved), minus
	// tracks whose name matches a liked song.
	var candidates []int
	for i := range e.dataset {
		if len(genreSet) > 0 {
			if _, ok := genreSet[e.dataset[i].Genre]; !ok {
				continue
			}
		}
		if _, liked := likedNames[strings.ToLower(e.dataset[i].Name)]; liked {
			continue
		}
		candidates = append(candidates, i)
	}

	var scored []ScoredTrack
	for _, song := range e.liked {
		matches := e.matchLiked(song)
		if len(matches) == 0 {
			log.Printf("Warning: could not find %q by %s in the dataset", song.Name, artistOrUnknown(song.Artist))
			continue
		}

		// First match is the reference row for this liked song.
		ref := matches[0]
		refVec := e.std.Vector(ref)
		refGenre := e.dataset[ref].Genre

		for _, c := range candidates {
			score := CosineSimilarity(refVec, e.std.Vector(c))
			if refGenre != "" && refGenre == e.dataset[c].Genre {
				score += e.cfg.GenreBonus
			}
			scored = append(scored, ScoredTrack{Track: e.dataset[c], Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	// Deduplicate by track name, keeping the highest-scoring occurrence.
	seen := make(map[string]struct{}, len(scored))
	var top []ScoredTrack
	for _, s := range scored {
		key := strings.ToLower(s.Track.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		top = append(top, s)
		if len(top) == topN {
			break
		}
	}
	return top, nil
}

// Recommend returns the top ranked candidates as display-ready results.
func (e *Engine) Recommend(topN int) ([]Recommendation, error) {
	scored, err := e.RecommendTracks(topN)
	if err != nil {
		return nil, err
	}
	recs := make([]Recommendation, len(scored))
	for i, s := range scored {
		recs[i] = NewRecommendation(s)
	}
	return recs, nil
}

// matchLiked returns the indices of dataset rows matching a liked song:
// case-insensitive exact match on track name, and when an artist is given,
// the row's artist field must contain it as a substring.
func (e *Engine) matchLiked(song LikedSong) []int {
	name := strings.ToLower(song.Name)
	if name == "" {
		return nil
	}
	artist := strings.ToLower(song.Artist)

	var matches []int
	for i := range e.dataset {
		if strings.ToLower(e.dataset[i].Name) != name {
			continue
		}
		if artist != "" && !strings.Contains(strings.ToLower(e.dataset[i].Artist), artist) {
			continue
		}
		matches = append(matches, i)
	}
	return matches
}

// NewRecommendation projects a scored candidate into its display form,
// deriving a local slug ID when the row carries no external identifier.
func NewRecommendation(s ScoredTrack) Recommendation {
	id := s.Track.ID
	if id == "" {
		id = LocalIDPrefix + slugify(s.Track.Name)
	}
	return Recommendation{
		Name:       s.Track.Name,
		Artist:     s.Track.Artist,
		Genre:      s.Track.Genre,
		Score:      fmt.Sprintf("%.2f", s.Score),
		ID:         id,
		AlbumCover: s.Track.AlbumCover,
	}
}

// LocalIDPrefix marks recommendation IDs derived from the track name rather
// than a genuine external identifier.
const LocalIDPrefix = "local-"

// IsLocalID reports whether a recommendation ID is a name-derived slug.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// slugify lowercases a name and collapses whitespace runs into hyphens.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func artistOrUnknown(artist string) string {
	if artist == "" {
		return "Unknown"
	}
	return artist
}
