// Package dataset loads song datasets and liked-song lists from CSV sources.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

// ErrMissingNameColumn is returned when a liked-songs CSV has no Name column.
var ErrMissingNameColumn = errors.New("liked songs CSV must have a Name column")

// ParseTracks reads a track dataset CSV with a header row and returns its
// rows as tracks. Column names are matched case-insensitively; rows without a
// track name are skipped, and numeric columns that fail to parse (or hold
// NaN/Inf) leave the corresponding feature unset.
func ParseTracks(r io.Reader) ([]recommend.Track, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	cols := columnIndex(header)

	var tracks []recommend.Track
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}

		t := recommend.Track{
			ID:         cols.field(row, "track_id", "id"),
			Name:       cols.field(row, "track_name"),
			Artist:     cols.field(row, "artists", "artist"),
			Genre:      cols.field(row, "track_genre", "genre"),
			AlbumCover: cols.field(row, "album_cover", "album_cover_url"),

			Popularity:       cols.number(row, "popularity"),
			Danceability:     cols.number(row, "danceability"),
			Energy:           cols.number(row, "energy"),
			Acousticness:     cols.number(row, "acousticness"),
			Valence:          cols.number(row, "valence"),
			Tempo:            cols.number(row, "tempo"),
			Liveness:         cols.number(row, "liveness"),
			Instrumentalness: cols.number(row, "instrumentalness"),
			Loudness:         cols.number(row, "loudness"),
			Speechiness:      cols.number(row, "speechiness"),
			Mode:             cols.number(row, "mode"),
		}
		if t.Name == "" {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// ParseLikedSongs reads a liked-songs CSV with Name and optional Artist
// columns. Returns ErrMissingNameColumn when no Name column is present.
func ParseLikedSongs(r io.Reader) ([]recommend.LikedSong, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading liked songs header: %w", err)
	}
	cols := columnIndex(header)
	if _, ok := cols["name"]; !ok {
		return nil, ErrMissingNameColumn
	}

	var songs []recommend.LikedSong
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading liked songs row: %w", err)
		}

		song := recommend.LikedSong{
			Name:   cols.field(row, "name"),
			Artist: cols.field(row, "artist"),
		}
		if song.Name == "" {
			continue
		}
		songs = append(songs, song)
	}
	return songs, nil
}

// LoadTracksFile parses a dataset CSV from disk.
func LoadTracksFile(path string) ([]recommend.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset file: %w", err)
	}
	defer f.Close()
	return ParseTracks(f)
}

// columns maps lowercased header names to their field index.
type columns map[string]int

func columnIndex(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// field returns the trimmed value of the first present column.
func (c columns) field(row []string, names ...string) string {
	for _, name := range names {
		if i, ok := c[name]; ok && i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

// number parses a numeric column, returning nil for absent, unparseable,
// NaN, or infinite values.
func (c columns) number(row []string, name string) *float64 {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
