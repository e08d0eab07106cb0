// Package sync provides services for syncing the Spotify library to PostgreSQL.
package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlofaro/spotify-genie/internal/db"
	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
	"github.com/dlofaro/spotify-genie/internal/spotify"
)

// Common errors.
var (
	// ErrSyncTooRecent is returned when sync is attempted within the cooldown period.
	ErrSyncTooRecent = errors.New("sync attempted too recently")
)

// DefaultSyncCooldown is the default time between allowed syncs (1 hour).
const DefaultSyncCooldown = 1 * time.Hour

// Service handles syncing the user's library from Spotify to the database.
type Service struct {
	db           *db.DB
	syncCooldown time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithSyncCooldown sets the minimum time between syncs.
func WithSyncCooldown(d time.Duration) Option {
	return func(s *Service) {
		s.syncCooldown = d
	}
}

// New creates a new sync service.
func New(database *db.DB, opts ...Option) *Service {
	s := &Service{
		db:           database,
		syncCooldown: DefaultSyncCooldown,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result contains the result of a sync operation.
type Result struct {
	TracksCount   int
	FeaturesCount int
	SyncedAt      time.Time
}

// CanSync checks if enough time has passed since the last sync.
// Returns true if sync is allowed, false otherwise.
// Also returns the time when the next sync will be available.
func (s *Service) CanSync(ctx context.Context, userID string) (bool, time.Time, error) {
	user, err := s.db.Users().Get(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		// New user, allow sync
		return true, time.Time{}, nil
	}
	if err != nil {
		return false, time.Time{}, fmt.Errorf("getting user: %w", err)
	}

	if user.LastSyncAt == nil {
		// Never synced, allow
		return true, time.Time{}, nil
	}

	nextSyncTime := user.LastSyncAt.Add(s.syncCooldown)
	if time.Now().Before(nextSyncTime) {
		return false, nextSyncTime, nil
	}

	return true, time.Time{}, nil
}

// SyncLibrary fetches the user's saved tracks and their audio features from
// Spotify and persists both. Returns ErrSyncTooRecent if called within the
// cooldown period. Set force=true to bypass the cooldown check (for
// first-time sync after login).
func (s *Service) SyncLibrary(ctx context.Context, client *spotify.Client, userID string, force bool) (*Result, error) {
	// Check cooldown unless forced
	if !force {
		canSync, nextTime, err := s.CanSync(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !canSync {
			return nil, fmt.Errorf("%w: next sync available at %s", ErrSyncTooRecent, nextTime.Format(time.RFC3339))
		}
	}

	metas, err := client.FetchSavedTracksMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching saved tracks: %w", err)
	}

	if len(metas) == 0 {
		// Update last sync time even if no tracks
		syncTime := time.Now()
		if err := s.db.Users().UpdateLastSync(ctx, userID, syncTime, 0); err != nil {
			return nil, fmt.Errorf("updating last sync: %w", err)
		}
		return &Result{SyncedAt: syncTime}, nil
	}

	dbTracks := make([]db.Track, len(metas))
	userTracks := make([]db.UserTrack, len(metas))
	for i, m := range metas {
		dbTracks[i] = metaToTrack(m)
		userTracks[i] = db.UserTrack{
			UserID:  userID,
			TrackID: m.ID,
			AddedAt: m.AddedAt,
		}
	}

	if err := s.db.Tracks().UpsertBatch(ctx, dbTracks); err != nil {
		return nil, fmt.Errorf("upserting tracks: %w", err)
	}
	if err := s.db.Tracks().LinkBatchToUser(ctx, userID, userTracks); err != nil {
		return nil, fmt.Errorf("linking tracks to user: %w", err)
	}

	featuresCount, err := s.syncAudioFeatures(ctx, client, userID)
	if err != nil {
		return nil, err
	}

	syncTime := time.Now()
	if err := s.db.Users().UpdateLastSync(ctx, userID, syncTime, len(metas)); err != nil {
		return nil, fmt.Errorf("updating last sync: %w", err)
	}

	return &Result{
		TracksCount:   len(metas),
		FeaturesCount: featuresCount,
		SyncedAt:      syncTime,
	}, nil
}

// syncAudioFeatures fetches audio features for tracks that don't have any
// stored yet and writes them to the database.
func (s *Service) syncAudioFeatures(ctx context.Context, client *spotify.Client, userID string) (int, error) {
	ids, err := s.db.Tracks().IDsMissingFeatures(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	// FetchAudioFeatures works on library tracks; build shells carrying
	// just the IDs and let it fill the feature pointers in-place.
	shells := make([]playlist.LibraryTrack, len(ids))
	for i, id := range ids {
		shells[i] = playlist.LibraryTrack{Track: recommend.Track{ID: id}}
	}
	if err := client.FetchAudioFeatures(ctx, shells); err != nil {
		return 0, fmt.Errorf("fetching audio features: %w", err)
	}

	updates := make([]db.Track, 0, len(shells))
	for _, sh := range shells {
		t := sh.Track
		if t.Energy == nil {
			continue // No features available for this track
		}
		updates = append(updates, db.Track{
			ID:               t.ID,
			Danceability:     t.Danceability,
			Energy:           t.Energy,
			Acousticness:     t.Acousticness,
			Valence:          t.Valence,
			Tempo:            t.Tempo,
			Loudness:         t.Loudness,
			Liveness:         t.Liveness,
			Instrumentalness: t.Instrumentalness,
			Speechiness:      t.Speechiness,
			Mode:             t.Mode,
		})
	}

	if err := s.db.Tracks().UpdateFeaturesBatch(ctx, updates); err != nil {
		return 0, fmt.Errorf("storing audio features: %w", err)
	}
	return len(updates), nil
}

// LoadLibrary reads a user's synced library back out of the database as
// library tracks ready for playlist building.
func (s *Service) LoadLibrary(ctx context.Context, userID string) ([]playlist.LibraryTrack, error) {
	tracks, userTracks, err := s.db.Tracks().GetUserTracksWithAddedAt(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading library: %w", err)
	}

	library := make([]playlist.LibraryTrack, len(tracks))
	for i, t := range tracks {
		library[i] = trackToLibrary(t, userTracks[i].AddedAt)
	}
	return library, nil
}

// GetLastSyncTime returns the last sync time for a user.
// Returns nil if the user has never synced.
func (s *Service) GetLastSyncTime(ctx context.Context, userID string) (*time.Time, error) {
	user, err := s.db.Users().Get(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user.LastSyncAt, nil
}

// metaToTrack converts Spotify track metadata to a database row.
func metaToTrack(m spotify.SavedTrackMeta) db.Track {
	album := m.Album
	albumID := m.AlbumID
	cover := m.AlbumCover
	duration := m.DurationMs
	popularity := m.Popularity

	t := db.Track{
		ID:         m.ID,
		Name:       m.Name,
		Artist:     m.Artist,
		Album:      &album,
		AlbumID:    &albumID,
		AlbumCover: &cover,
		DurationMs: &duration,
		Popularity: &popularity,
	}
	if m.ReleaseYear > 0 {
		year := m.ReleaseYear
		t.ReleaseYear = &year
	}
	return t
}

// trackToLibrary converts a database row to a library track.
func trackToLibrary(t db.Track, addedAt time.Time) playlist.LibraryTrack {
	track := recommend.Track{
		ID:               t.ID,
		Name:             t.Name,
		Artist:           t.Artist,
		Danceability:     t.Danceability,
		Energy:           t.Energy,
		Acousticness:     t.Acousticness,
		Valence:          t.Valence,
		Tempo:            t.Tempo,
		Loudness:         t.Loudness,
		Liveness:         t.Liveness,
		Instrumentalness: t.Instrumentalness,
		Speechiness:      t.Speechiness,
		Mode:             t.Mode,
	}
	if t.AlbumCover != nil {
		track.AlbumCover = *t.AlbumCover
	}
	if t.Popularity != nil {
		pop := float64(*t.Popularity)
		track.Popularity = &pop
	}

	lt := playlist.LibraryTrack{Track: track, AddedAt: addedAt}
	if t.ReleaseYear != nil {
		lt.ReleaseYear = *t.ReleaseYear
	}
	return lt
}
