package spotify

import (
	"testing"
	"time"

	"github.com/zmb3/spotify/v2"

	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
)

func TestConvertSavedTrack(t *testing.T) {
	tests := []struct {
		name           string
		saved          spotify.SavedTrack
		expectedID     string
		expectedName   string
		expectedArtist string
		expectedCover  string
		expectedYear   int
		expectedTime   time.Time
	}{
		{
			name: "single artist with album",
			saved: spotify.SavedTrack{
				AddedAt: "2024-01-15T10:30:00Z",
				FullTrack: spotify.FullTrack{
					SimpleTrack: spotify.SimpleTrack{
						ID:   "track123",
						Name: "Test Song",
						Artists: []spotify.SimpleArtist{
							{Name: "Artist One"},
						},
					},
					Album: spotify.SimpleAlbum{
						ReleaseDate: "2019-05-17",
						Images: []spotify.Image{
							{URL: "https://img.example/large.jpg"},
							{URL: "https://img.example/small.jpg"},
						},
					},
				},
			},
			expectedID:     "track123",
			expectedName:   "Test Song",
			expectedArtist: "Artist One",
			expectedCover:  "https://img.example/large.jpg",
			expectedYear:   2019,
			expectedTime:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "multiple artists",
			saved: spotify.SavedTrack{
				AddedAt: "2023-06-20T15:45:00Z",
				FullTrack: spotify.FullTrack{
					SimpleTrack: spotify.SimpleTrack{
						ID:   "track456",
						Name: "Collab Track",
						Artists: []spotify.SimpleArtist{
							{Name: "Artist A"},
							{Name: "Artist B"},
							{Name: "Artist C"},
						},
					},
					Album: spotify.SimpleAlbum{ReleaseDate: "2023"},
				},
			},
			expectedID:     "track456",
			expectedName:   "Collab Track",
			expectedArtist: "Artist A, Artist B, Artist C",
			expectedYear:   2023,
			expectedTime:   time.Date(2023, 6, 20, 15, 45, 0, 0, time.UTC),
		},
		{
			name: "invalid timestamp uses zero value",
			saved: spotify.SavedTrack{
				AddedAt: "not-a-valid-timestamp",
				FullTrack: spotify.FullTrack{
					SimpleTrack: spotify.SimpleTrack{
						ID:   "track789",
						Name: "Old Song",
						Artists: []spotify.SimpleArtist{
							{Name: "Mystery Artist"},
						},
					},
				},
			},
			expectedID:     "track789",
			expectedName:   "Old Song",
			expectedArtist: "Mystery Artist",
			expectedTime:   time.Time{}, // zero value
		},
		{
			name: "no artists or album",
			saved: spotify.SavedTrack{
				AddedAt: "2024-03-01T00:00:00Z",
				FullTrack: spotify.FullTrack{
					SimpleTrack: spotify.SimpleTrack{
						ID:      "track000",
						Name:    "Unknown Track",
						Artists: []spotify.SimpleArtist{},
					},
				},
			},
			expectedID:     "track000",
			expectedName:   "Unknown Track",
			expectedArtist: "",
			expectedTime:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertSavedTrack(tt.saved)

			if got.Track.ID != tt.expectedID {
				t.Errorf("ID = %q, want %q", got.Track.ID, tt.expectedID)
			}
			if got.Track.Name != tt.expectedName {
				t.Errorf("Name = %q, want %q", got.Track.Name, tt.expectedName)
			}
			if got.Track.Artist != tt.expectedArtist {
				t.Errorf("Artist = %q, want %q", got.Track.Artist, tt.expectedArtist)
			}
			if got.Track.AlbumCover != tt.expectedCover {
				t.Errorf("AlbumCover = %q, want %q", got.Track.AlbumCover, tt.expectedCover)
			}
			if got.ReleaseYear != tt.expectedYear {
				t.Errorf("ReleaseYear = %d, want %d", got.ReleaseYear, tt.expectedYear)
			}
			if !got.AddedAt.Equal(tt.expectedTime) {
				t.Errorf("AddedAt = %v, want %v", got.AddedAt, tt.expectedTime)
			}
			if got.Track.Popularity == nil {
				t.Error("Popularity should not be nil")
			}
		})
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2006-01-02", 2006},
		{"2006-01", 2006},
		{"2006", 2006},
		{"", 0},
		{"xx", 0},
		{"abcd-01-02", 0},
	}

	for _, tt := range tests {
		if got := releaseYear(tt.date); got != tt.want {
			t.Errorf("releaseYear(%q) = %d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestToLikedSongs(t *testing.T) {
	tracks := []playlist.LibraryTrack{
		{Track: recommend.Track{Name: "Song A", Artist: "Artist A"}},
		{Track: recommend.Track{Name: "Song B", Artist: "Artist B, Artist C"}},
	}

	liked := ToLikedSongs(tracks)

	if len(liked) != 2 {
		t.Fatalf("got %d liked songs, want 2", len(liked))
	}
	if liked[0].Name != "Song A" || liked[0].Artist != "Artist A" {
		t.Errorf("liked[0] = %+v, want Song A by Artist A", liked[0])
	}
	if liked[1].Name != "Song B" || liked[1].Artist != "Artist B, Artist C" {
		t.Errorf("liked[1] = %+v, want Song B by Artist B, Artist C", liked[1])
	}
}
