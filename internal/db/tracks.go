package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TrackRepository handles track database operations.
type TrackRepository struct {
	pool *pgxpool.Pool
}

const trackColumns = `id, name, artist, album, album_id, album_cover, duration_ms, popularity, release_year,
	danceability, energy, acousticness, valence, tempo, loudness, liveness, instrumentalness, speechiness, mode,
	created_at`

// qualifyTrackColumns prefixes each track column with a table alias for
// use in joined queries.
func qualifyTrackColumns(alias string) string {
	cols := strings.Split(trackColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

func scanTrack(s interface{ Scan(dest ...any) error }) (Track, error) {
	var t Track
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Artist,
		&t.Album,
		&t.AlbumID,
		&t.AlbumCover,
		&t.DurationMs,
		&t.Popularity,
		&t.ReleaseYear,
		&t.Danceability,
		&t.Energy,
		&t.Acousticness,
		&t.Valence,
		&t.Tempo,
		&t.Loudness,
		&t.Liveness,
		&t.Instrumentalness,
		&t.Speechiness,
		&t.Mode,
		&t.CreatedAt,
	)
	return t, err
}

// Upsert creates or updates a track's metadata.
// Audio feature columns are left untouched; use UpdateFeaturesBatch.
func (r *TrackRepository) Upsert(ctx context.Context, track *Track) error {
	query := `
		INSERT INTO tracks (id, name, artist, album, album_id, album_cover, duration_ms, popularity, release_year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			artist = EXCLUDED.artist,
			album = EXCLUDED.album,
			album_id = EXCLUDED.album_id,
			album_cover = EXCLUDED.album_cover,
			duration_ms = EXCLUDED.duration_ms,
			popularity = EXCLUDED.popularity,
			release_year = EXCLUDED.release_year
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		track.ID,
		track.Name,
		track.Artist,
		track.Album,
		track.AlbumID,
		track.AlbumCover,
		track.DurationMs,
		track.Popularity,
		track.ReleaseYear,
	).Scan(&track.CreatedAt)
	if err != nil {
		return fmt.Errorf("upserting track: %w", err)
	}
	return nil
}

// UpsertBatch inserts or updates multiple tracks' metadata efficiently.
func (r *TrackRepository) UpsertBatch(ctx context.Context, tracks []Track) error {
	if len(tracks) == 0 {
		return nil
	}

	query := `
		INSERT INTO tracks (id, name, artist, album, album_id, album_cover, duration_ms, popularity, release_year, created_at)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[], $7::int[], $8::int[], $9::int[], $10::timestamptz[])
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			artist = EXCLUDED.artist,
			album = EXCLUDED.album,
			album_id = EXCLUDED.album_id,
			album_cover = EXCLUDED.album_cover,
			duration_ms = EXCLUDED.duration_ms,
			popularity = EXCLUDED.popularity,
			release_year = EXCLUDED.release_year
	`

	ids := make([]string, len(tracks))
	names := make([]string, len(tracks))
	artists := make([]string, len(tracks))
	albums := make([]*string, len(tracks))
	albumIDs := make([]*string, len(tracks))
	albumCovers := make([]*string, len(tracks))
	durations := make([]*int, len(tracks))
	popularities := make([]*int, len(tracks))
	releaseYears := make([]*int, len(tracks))
	createdAts := make([]time.Time, len(tracks))

	now := time.Now()
	for i, t := range tracks {
		ids[i] = t.ID
		names[i] = t.Name
		artists[i] = t.Artist
		albums[i] = t.Album
		albumIDs[i] = t.AlbumID
		albumCovers[i] = t.AlbumCover
		durations[i] = t.DurationMs
		popularities[i] = t.Popularity
		releaseYears[i] = t.ReleaseYear
		createdAts[i] = now
	}

	_, err := r.pool.Exec(ctx, query, ids, names, artists, albums, albumIDs, albumCovers, durations, popularities, releaseYears, createdAts)
	if err != nil {
		return fmt.Errorf("batch upserting tracks: %w", err)
	}
	return nil
}

// UpdateFeaturesBatch writes audio feature columns for multiple tracks.
// Tracks not already present are skipped by the join.
func (r *TrackRepository) UpdateFeaturesBatch(ctx context.Context, tracks []Track) error {
	if len(tracks) == 0 {
		return nil
	}

	query := `
		UPDATE tracks SET
			danceability = f.danceability,
			energy = f.energy,
			acousticness = f.acousticness,
			valence = f.valence,
			tempo = f.tempo,
			loudness = f.loudness,
			liveness = f.liveness,
			instrumentalness = f.instrumentalness,
			speechiness = f.speechiness,
			mode = f.mode
		FROM unnest(
			$1::text[], $2::float8[], $3::float8[], $4::float8[], $5::float8[],
			$6::float8[], $7::float8[], $8::float8[], $9::float8[], $10::float8[], $11::float8[]
		) AS f(id, danceability, energy, acousticness, valence, tempo, loudness, liveness, instrumentalness, speechiness, mode)
		WHERE tracks.id = f.id
	`

	ids := make([]string, len(tracks))
	dance := make([]*float64, len(tracks))
	energy := make([]*float64, len(tracks))
	acoustic := make([]*float64, len(tracks))
	valence := make([]*float64, len(tracks))
	tempo := make([]*float64, len(tracks))
	loudness := make([]*float64, len(tracks))
	liveness := make([]*float64, len(tracks))
	instrumental := make([]*float64, len(tracks))
	speech := make([]*float64, len(tracks))
	mode := make([]*float64, len(tracks))

	for i, t := range tracks {
		ids[i] = t.ID
		dance[i] = t.Danceability
		energy[i] = t.Energy
		acoustic[i] = t.Acousticness
		valence[i] = t.Valence
		tempo[i] = t.Tempo
		loudness[i] = t.Loudness
		liveness[i] = t.Liveness
		instrumental[i] = t.Instrumentalness
		speech[i] = t.Speechiness
		mode[i] = t.Mode
	}

	_, err := r.pool.Exec(ctx, query, ids, dance, energy, acoustic, valence, tempo, loudness, liveness, instrumental, speech, mode)
	if err != nil {
		return fmt.Errorf("batch updating audio features: %w", err)
	}
	return nil
}

// Get retrieves a track by ID.
func (r *TrackRepository) Get(ctx context.Context, id string) (*Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = $1`
	track, err := scanTrack(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying track: %w", err)
	}
	return &track, nil
}

// GetUserTracks retrieves all saved tracks for a user, ordered by added_at desc.
func (r *TrackRepository) GetUserTracks(ctx context.Context, userID string) ([]Track, error) {
	query := `
		SELECT ` + qualifyTrackColumns("t") + `
		FROM tracks t
		JOIN user_tracks ut ON t.id = ut.track_id
		WHERE ut.user_id = $1
		ORDER BY ut.added_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// GetUserTracksWithAddedAt retrieves all saved tracks for a user together
// with the time each one was added to the library.
func (r *TrackRepository) GetUserTracksWithAddedAt(ctx context.Context, userID string) ([]Track, []UserTrack, error) {
	query := `
		SELECT ` + qualifyTrackColumns("t") + `, ut.added_at
		FROM tracks t
		JOIN user_tracks ut ON t.id = ut.track_id
		WHERE ut.user_id = $1
		ORDER BY ut.added_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying user tracks: %w", err)
	}
	defer rows.Close()

	var tracks []Track
	var userTracks []UserTrack
	for rows.Next() {
		var t Track
		var addedAt time.Time
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Artist,
			&t.Album,
			&t.AlbumID,
			&t.AlbumCover,
			&t.DurationMs,
			&t.Popularity,
			&t.ReleaseYear,
			&t.Danceability,
			&t.Energy,
			&t.Acousticness,
			&t.Valence,
			&t.Tempo,
			&t.Loudness,
			&t.Liveness,
			&t.Instrumentalness,
			&t.Speechiness,
			&t.Mode,
			&t.CreatedAt,
			&addedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scanning track: %w", err)
		}
		tracks = append(tracks, t)
		userTracks = append(userTracks, UserTrack{
			UserID:  userID,
			TrackID: t.ID,
			AddedAt: addedAt,
		})
	}
	return tracks, userTracks, rows.Err()
}

// IDsMissingFeatures returns the IDs of a user's tracks that have no audio
// features stored yet.
func (r *TrackRepository) IDsMissingFeatures(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT t.id
		FROM tracks t
		JOIN user_tracks ut ON t.id = ut.track_id
		WHERE ut.user_id = $1 AND t.energy IS NULL
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying tracks missing features: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning track id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LinkToUser links a track to a user's library.
func (r *TrackRepository) LinkToUser(ctx context.Context, userID, trackID string, addedAt time.Time) error {
	query := `
		INSERT INTO user_tracks (user_id, track_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, track_id) DO UPDATE SET added_at = EXCLUDED.added_at
	`
	_, err := r.pool.Exec(ctx, query, userID, trackID, addedAt)
	if err != nil {
		return fmt.Errorf("linking track to user: %w", err)
	}
	return nil
}

// LinkBatchToUser links multiple tracks to a user's library efficiently.
func (r *TrackRepository) LinkBatchToUser(ctx context.Context, userID string, tracks []UserTrack) error {
	if len(tracks) == 0 {
		return nil
	}

	query := `
		INSERT INTO user_tracks (user_id, track_id, added_at)
		SELECT $1, * FROM unnest($2::text[], $3::timestamptz[])
		ON CONFLICT (user_id, track_id) DO UPDATE SET added_at = EXCLUDED.added_at
	`

	trackIDs := make([]string, len(tracks))
	addedAts := make([]time.Time, len(tracks))

	for i, t := range tracks {
		trackIDs[i] = t.TrackID
		addedAts[i] = t.AddedAt
	}

	_, err := r.pool.Exec(ctx, query, userID, trackIDs, addedAts)
	if err != nil {
		return fmt.Errorf("batch linking tracks to user: %w", err)
	}
	return nil
}

// UnlinkAllFromUser removes all tracks from a user's library.
func (r *TrackRepository) UnlinkAllFromUser(ctx context.Context, userID string) error {
	query := `DELETE FROM user_tracks WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("unlinking all tracks from user: %w", err)
	}
	return nil
}
