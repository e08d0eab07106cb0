package web

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/dlofaro/spotify-genie/internal/dataset"
	"github.com/dlofaro/spotify-genie/internal/db"
	"github.com/dlofaro/spotify-genie/internal/playlist"
	"github.com/dlofaro/spotify-genie/internal/recommend"
	"github.com/dlofaro/spotify-genie/internal/spotify"
	syncsvc "github.com/dlofaro/spotify-genie/internal/sync"
)

// maxUploadBytes caps CSV uploads at 32 MB.
const maxUploadBytes = 32 << 20

// spotifyLibraryLimit is how many saved tracks the liked-songs import pulls.
const spotifyLibraryLimit = 50

// Seed and result sizes for Spotify-side recommendations.
const (
	seedTrackCount    = 5
	seededResultCount = 20
)

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	auth      *spotifyauth.Authenticator
	sessions  SessionManager
	templates *Templates
	engines   *EngineRegistry
	fetcher   *dataset.Fetcher
	builder   *playlist.Builder

	datasetURL string

	// Optional; nil when the server runs without a database.
	database *db.DB
	syncer   *syncsvc.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(auth *spotifyauth.Authenticator, sessions SessionManager, templates *Templates, engines *EngineRegistry, builder *playlist.Builder, datasetURL string, database *db.DB, syncer *syncsvc.Service) *Handlers {
	return &Handlers{
		auth:       auth,
		sessions:   sessions,
		templates:  templates,
		engines:    engines,
		fetcher:    dataset.NewFetcher(),
		builder:    builder,
		datasetURL: datasetURL,
		database:   database,
		syncer:     syncer,
	}
}

// playlistTypeOptions lists the playlist types offered in the UI.
func playlistTypeOptions() []PlaylistTypeData {
	types := []playlist.Type{
		playlist.TypeMoodHappy,
		playlist.TypeMoodSad,
		playlist.TypeMoodChill,
		playlist.TypeMoodHype,
		playlist.TypeThrowback,
		playlist.TypePastFavorites,
		playlist.TypeNewReleases,
		playlist.TypeGenreExplorer,
	}
	opts := make([]PlaylistTypeData, len(types))
	for i, t := range types {
		opts[i] = PlaylistTypeData{Value: string(t), Label: t.DisplayName()}
	}
	return opts
}

// Home handles the home page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)

	data := HomePageData{
		PageData: PageData{
			Title:       "Spotify Genie",
			CurrentPath: r.URL.Path,
		},
		Authenticated: session != nil,
		PlaylistTypes: playlistTypeOptions(),
	}

	if session != nil {
		data.User = &UserData{
			ID:   session.UserID,
			Name: session.UserName,
		}
	}

	_ = h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		data.HasDataset = state.Engine.Ready()
		data.DatasetSize = state.Engine.DatasetSize()
		data.LikedCount = state.Engine.LikedCount()
		return nil
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, "home", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}

// ============================================================================
// Auth
// ============================================================================

// Login initiates the Spotify OAuth flow (GET /auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	// Generate state for CSRF protection
	state, err := generateOAuthState()
	if err != nil {
		http.Error(w, "Failed to generate state", http.StatusInternalServerError)
		return
	}

	// Store state in cookie for validation on callback
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // 5 minutes
	})

	// Redirect to Spotify auth
	url := h.auth.AuthURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// Callback handles the OAuth callback from Spotify (GET /callback).
func (h *Handlers) Callback(w http.ResponseWriter, r *http.Request) {
	// Verify state
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil {
		http.Error(w, "Missing state cookie", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	// Check for error from Spotify
	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, fmt.Sprintf("Spotify auth error: %s", errMsg), http.StatusBadRequest)
		return
	}

	// Exchange code for token
	token, err := h.auth.Token(r.Context(), state, r)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		return
	}

	// Get user info from Spotify
	client := spotify.New(spotifyapi.New(h.auth.Client(r.Context(), token)))
	user, err := client.CurrentUser(r.Context())
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}

	// Persist the user profile when a database is configured
	if h.database != nil {
		dbUser := &db.User{ID: user.ID, DisplayName: user.DisplayName}
		if err := h.database.Users().Upsert(r.Context(), dbUser); err != nil {
			log.Printf("Warning: upserting user %s: %v", user.ID, err)
		}
	}

	// Any engine state built before login lives under the anonymous cookie;
	// promote it to the new session so uploads survive logging in.
	anonID := ""
	if cookie, err := r.Cookie(anonCookieName); err == nil {
		anonID = cookie.Value
	}

	// Create session
	session, err := h.sessions.Create(r.Context(), token, user.ID, user.DisplayName, anonID)
	if err != nil {
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	h.engines.Adopt(anonID, session.ID)
	if anonID != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     anonCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		})
	}

	// Set session cookie
	h.sessions.SetCookie(w, session)

	// Redirect to home
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// Logout clears the session and redirects to home (POST /auth/logout).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session != nil {
		h.sessions.Delete(r.Context(), session.ID)
		h.engines.Remove(session.ID)
	}

	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}

// ============================================================================
// Dataset and liked songs
// ============================================================================

// UploadDataset loads a track dataset from an uploaded CSV (POST /dataset/upload).
func (h *Handlers) UploadDataset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("dataset")
	if err != nil {
		h.renderFlash(w, "error", "Could not read the uploaded dataset file")
		return
	}
	defer file.Close()

	tracks, err := dataset.ParseTracks(file)
	if err != nil {
		h.renderFlash(w, "error", fmt.Sprintf("Could not parse dataset: %v", err))
		return
	}

	h.loadDataset(w, r, tracks)
}

// LoadDefaultDataset loads the configured default dataset (POST /dataset/default).
func (h *Handlers) LoadDefaultDataset(w http.ResponseWriter, r *http.Request) {
	if h.datasetURL == "" {
		h.renderFlash(w, "error", "No default dataset is configured")
		return
	}

	tracks, err := h.fetcher.FetchTracks(r.Context(), h.datasetURL)
	if err != nil {
		log.Printf("Warning: fetching default dataset: %v", err)
		h.renderFlash(w, "error", "Could not load the default dataset")
		return
	}

	h.loadDataset(w, r, tracks)
}

// loadDataset puts tracks into the client's engine and renders fresh stats.
func (h *Handlers) loadDataset(w http.ResponseWriter, r *http.Request, tracks []recommend.Track) {
	var stats StatsData
	err := h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		if err := state.Engine.LoadDataset(tracks); err != nil {
			return err
		}
		state.LastRecs = nil
		stats = h.statsFor(state)
		return nil
	})
	if errors.Is(err, recommend.ErrEmptyDataset) {
		h.renderFlash(w, "error", "The dataset has no usable tracks")
		return
	}
	if err != nil {
		h.renderFlash(w, "error", fmt.Sprintf("Could not load dataset: %v", err))
		return
	}

	h.renderPartial(w, "stats", stats)
}

// UploadLiked loads liked songs from an uploaded CSV (POST /liked/upload).
func (h *Handlers) UploadLiked(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("liked")
	if err != nil {
		h.renderFlash(w, "error", "Could not read the uploaded liked songs file")
		return
	}
	defer file.Close()

	songs, err := dataset.ParseLikedSongs(file)
	if err != nil {
		h.renderFlash(w, "error", fmt.Sprintf("Could not parse liked songs: %v", err))
		return
	}

	h.loadLiked(w, r, songs)
}

// LikedFromSpotify imports the user's most recent saved tracks as liked
// songs (POST /liked/spotify). Requires an authenticated session.
func (h *Handlers) LikedFromSpotify(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		h.renderFlash(w, "error", "Log in with Spotify to import your liked songs")
		return
	}

	client := h.spotifyClient(r, session)
	library, err := client.FetchSavedTracks(r.Context(), spotifyLibraryLimit)
	if err != nil {
		log.Printf("Warning: fetching saved tracks for %s: %v", session.UserID, err)
		h.renderFlash(w, "error", "Could not fetch your liked songs from Spotify")
		return
	}

	err = h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		state.Library = library
		return nil
	})
	if err != nil {
		h.renderFlash(w, "error", "Could not store your library")
		return
	}

	h.loadLiked(w, r, spotify.ToLikedSongs(library))
}

// loadLiked stores liked songs in the client's engine and renders stats.
func (h *Handlers) loadLiked(w http.ResponseWriter, r *http.Request, songs []recommend.LikedSong) {
	var stats StatsData
	_ = h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		state.Engine.LoadLikedSongs(songs)
		state.LastRecs = nil
		stats = h.statsFor(state)
		return nil
	})

	h.renderPartial(w, "stats", stats)
}

// ============================================================================
// Recommendations and playlists
// ============================================================================

// Recommend generates recommendations for the client (POST /recommend).
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	topN, _ := strconv.Atoi(r.FormValue("top_n"))

	var recs []recommend.Recommendation
	err := h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		result, err := state.Engine.Recommend(topN)
		if err != nil {
			return err
		}
		recs = result
		state.LastRecs = result
		state.LastType = ""
		return nil
	})
	if errors.Is(err, recommend.ErrNotReady) {
		h.renderFlash(w, "error", "Load a dataset and your liked songs first")
		return
	}
	if err != nil {
		h.renderFlash(w, "error", fmt.Sprintf("Could not generate recommendations: %v", err))
		return
	}

	h.renderPartial(w, "recommendations", RecommendationsData{
		Recommendations: recs,
		Count:           len(recs),
	})
}

// SeededRecommend asks Spotify's own recommendation endpoint for
// mood-steered tracks seeded by the user's saved tracks
// (POST /recommend/spotify). Requires an authenticated session.
func (h *Handlers) SeededRecommend(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		h.renderFlash(w, "error", "Log in with Spotify for Spotify-side recommendations")
		return
	}

	typ := playlist.Type(r.FormValue("type"))
	mood := typ.Mood()
	if mood == "" {
		h.renderFlash(w, "error", "Pick a mood playlist type for Spotify recommendations")
		return
	}

	client := h.spotifyClient(r, session)
	clientID := h.clientID(w, r)

	var seeds []string
	_ = h.engines.With(clientID, func(state *EngineState) error {
		for _, lt := range state.Library {
			if lt.Track.ID != "" {
				seeds = append(seeds, lt.Track.ID)
			}
		}
		return nil
	})
	if len(seeds) == 0 {
		library, err := client.FetchSavedTracks(r.Context(), seedTrackCount)
		if err != nil {
			log.Printf("Warning: fetching seed tracks for %s: %v", session.UserID, err)
			h.renderFlash(w, "error", "Could not fetch seed tracks from Spotify")
			return
		}
		for _, lt := range library {
			seeds = append(seeds, lt.Track.ID)
		}
	}
	if len(seeds) == 0 {
		h.renderFlash(w, "error", "Your Spotify library has no tracks to seed from")
		return
	}

	tracks, err := client.SeededRecommendations(r.Context(), seeds, mood, seededResultCount)
	if err != nil {
		log.Printf("Warning: seeded recommendations for %s: %v", session.UserID, err)
		h.renderFlash(w, "error", "Could not get recommendations from Spotify")
		return
	}

	recs := make([]recommend.Recommendation, len(tracks))
	for i, t := range tracks {
		recs[i] = recommend.Recommendation{
			ID:         t.ID,
			Name:       t.Name,
			Artist:     t.Artist,
			AlbumCover: t.AlbumCover,
		}
	}

	_ = h.engines.With(clientID, func(state *EngineState) error {
		state.LastRecs = recs
		state.LastType = typ
		return nil
	})

	h.renderPartial(w, "recommendations", RecommendationsData{
		Recommendations: recs,
		Count:           len(recs),
	})
}

// GeneratePlaylist builds a themed playlist (POST /playlist/generate).
func (h *Handlers) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	typ := playlist.Type(r.FormValue("type"))
	session := h.sessions.GetFromRequest(r)

	var entries []playlist.Entry
	err := h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		var err error
		if mood := typ.Mood(); mood != "" {
			entries, err = h.builder.BuildMood(state.Engine, mood)
		} else {
			library, libErr := h.libraryFor(r, session, state)
			if libErr != nil {
				return libErr
			}
			entries, err = h.builder.BuildLibrary(library, typ)
		}
		if err != nil {
			return err
		}

		state.LastRecs = entriesToRecommendations(entries)
		state.LastType = typ
		return nil
	})
	if errors.Is(err, recommend.ErrNotReady) {
		h.renderFlash(w, "error", "Load a dataset and your liked songs first")
		return
	}
	if errors.Is(err, playlist.ErrNoCandidates) {
		h.renderFlash(w, "error", "Not enough tracks to build that playlist")
		return
	}
	if errors.Is(err, errLibraryUnavailable) {
		h.renderFlash(w, "error", "Log in with Spotify to build playlists from your library")
		return
	}
	if err != nil {
		h.renderFlash(w, "error", fmt.Sprintf("Could not build playlist: %v", err))
		return
	}

	// Record the generated playlist when a database is available
	if h.database != nil && session != nil {
		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Track.ID != "" && !recommend.IsLocalID(e.Track.ID) {
				ids = append(ids, e.Track.ID)
			}
		}
		record := &db.Playlist{
			UserID: session.UserID,
			Name:   playlistName(typ),
			Type:   string(typ),
		}
		if err := h.database.Playlists().Create(r.Context(), record, ids); err != nil {
			log.Printf("Warning: recording playlist for %s: %v", session.UserID, err)
		}
	}

	h.renderPartial(w, "playlist", PlaylistPartialData{
		Title:   playlistName(typ),
		Type:    string(typ),
		Entries: entriesToPartialData(entries),
	})
}

// SavePlaylist writes the last generated result to the user's Spotify
// account (POST /playlist/save). Requires an authenticated session.
func (h *Handlers) SavePlaylist(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		h.renderFlash(w, "error", "Log in with Spotify to save playlists")
		return
	}

	var recs []recommend.Recommendation
	var typ playlist.Type
	_ = h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		recs = state.LastRecs
		typ = state.LastType
		return nil
	})
	if len(recs) == 0 {
		h.renderFlash(w, "error", "Generate recommendations or a playlist first")
		return
	}

	client := h.spotifyClient(r, session)
	name := playlistName(typ)
	result, err := client.SavePlaylist(r.Context(), name, "Created by Spotify Genie", recs)
	if err != nil {
		log.Printf("Warning: saving playlist for %s: %v", session.UserID, err)
		h.renderFlash(w, "error", "Could not save the playlist to Spotify")
		return
	}

	h.renderPartial(w, "playlist", PlaylistPartialData{
		Title:      name,
		Type:       string(typ),
		SpotifyURL: result.URL,
		Skipped:    result.Skipped,
	})
}

// SyncLibrary syncs the user's Spotify library into the database
// (POST /library/sync). Requires a session and a configured database.
func (h *Handlers) SyncLibrary(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.GetFromRequest(r)
	if session == nil {
		h.renderFlash(w, "error", "Log in with Spotify to sync your library")
		return
	}
	if h.syncer == nil {
		h.renderFlash(w, "error", "Library sync requires a database")
		return
	}

	client := h.spotifyClient(r, session)
	force := r.FormValue("force") == "true"
	result, err := h.syncer.SyncLibrary(r.Context(), client, session.UserID, force)
	if errors.Is(err, syncsvc.ErrSyncTooRecent) {
		h.renderFlash(w, "warning", "Library already synced recently")
		return
	}
	if err != nil {
		log.Printf("Warning: syncing library for %s: %v", session.UserID, err)
		h.renderFlash(w, "error", "Could not sync your library")
		return
	}

	// Refresh the in-memory copy so library playlists see the new data
	library, err := h.syncer.LoadLibrary(r.Context(), session.UserID)
	if err == nil {
		_ = h.engines.With(h.clientID(w, r), func(state *EngineState) error {
			state.Library = library
			return nil
		})
	}

	h.renderFlash(w, "success", fmt.Sprintf("Synced %d tracks (%d with audio features)", result.TracksCount, result.FeaturesCount))
}

// Stats renders the dataset statistics partial (GET /stats).
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	var stats StatsData
	_ = h.engines.With(h.clientID(w, r), func(state *EngineState) error {
		stats = h.statsFor(state)
		return nil
	})
	h.renderPartial(w, "stats", stats)
}

// ============================================================================
// Helpers
// ============================================================================

var errLibraryUnavailable = errors.New("library unavailable")

// libraryFor returns the client's library tracks, fetching from Spotify or
// the database on first use.
func (h *Handlers) libraryFor(r *http.Request, session *Session, state *EngineState) ([]playlist.LibraryTrack, error) {
	if len(state.Library) > 0 {
		return state.Library, nil
	}
	if session == nil {
		return nil, errLibraryUnavailable
	}

	// Prefer the synced database copy, which already has audio features
	if h.syncer != nil {
		library, err := h.syncer.LoadLibrary(r.Context(), session.UserID)
		if err == nil && len(library) > 0 {
			state.Library = library
			return library, nil
		}
	}

	client := h.spotifyClient(r, session)
	library, err := client.FetchSavedTracks(r.Context(), 0)
	if err != nil {
		return nil, fmt.Errorf("fetching library: %w", err)
	}
	if err := client.FetchAudioFeatures(r.Context(), library); err != nil {
		log.Printf("Warning: fetching audio features: %v", err)
	}
	state.Library = library
	return library, nil
}

// spotifyClient builds an API client from the session token.
func (h *Handlers) spotifyClient(r *http.Request, session *Session) *spotify.Client {
	httpClient := h.auth.Client(r.Context(), session.Token)
	return spotify.New(spotifyapi.New(httpClient, spotifyapi.WithRetry(true)))
}

// clientID identifies the caller for engine state: the session ID when
// logged in, otherwise a random ID pinned to a browser cookie.
func (h *Handlers) clientID(w http.ResponseWriter, r *http.Request) string {
	if session := h.sessions.GetFromRequest(r); session != nil {
		return session.ID
	}

	if cookie, err := r.Cookie(anonCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id, err := generateOAuthState()
	if err != nil {
		return "anonymous"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// statsFor snapshots engine statistics for the stats partial.
func (h *Handlers) statsFor(state *EngineState) StatsData {
	data := StatsData{
		DatasetSize: state.Engine.DatasetSize(),
		LikedCount:  state.Engine.LikedCount(),
	}
	stats := state.Engine.Stats()
	features := make([]string, 0, len(stats))
	for f := range stats {
		features = append(features, f)
	}
	sort.Strings(features)
	for _, f := range features {
		s := stats[f]
		data.Features = append(data.Features, FeatureStatData{
			Feature: f,
			Mean:    s.Mean,
			StdDev:  s.StdDev,
			Count:   s.Count,
		})
	}
	return data
}

// playlistName names a playlist after its type, or falls back to a generic
// name for plain recommendation saves.
func playlistName(typ playlist.Type) string {
	if typ == "" {
		return "Recommended Songs by Spotify Genie"
	}
	return typ.DisplayName() + " Songs by Spotify Genie"
}

// entriesToRecommendations converts playlist entries into the save format.
func entriesToRecommendations(entries []playlist.Entry) []recommend.Recommendation {
	recs := make([]recommend.Recommendation, len(entries))
	for i, e := range entries {
		recs[i] = recommend.NewRecommendation(recommend.ScoredTrack{Track: e.Track, Score: e.Score})
	}
	return recs
}

// entriesToPartialData converts playlist entries for template rendering.
func entriesToPartialData(entries []playlist.Entry) []PlaylistEntryData {
	data := make([]PlaylistEntryData, len(entries))
	for i, e := range entries {
		data[i] = PlaylistEntryData{
			ID:         e.Track.ID,
			Name:       e.Track.Name,
			Artist:     e.Track.Artist,
			AlbumCover: e.Track.AlbumCover,
			Category:   e.Category,
			Energy:     floatOr(e.Track.Energy, 0.5),
			Valence:    floatOr(e.Track.Valence, 0.5),
		}
	}
	return data
}

func floatOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// renderFlash renders the flash partial with a message.
func (h *Handlers) renderFlash(w http.ResponseWriter, kind, message string) {
	h.renderPartial(w, "flash", FlashMessage{Type: kind, Message: message})
}

// renderPartial renders a partial template as the full response.
func (h *Handlers) renderPartial(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.RenderPartial(w, name, data); err != nil {
		log.Printf("Warning: rendering partial %s: %v", name, err)
		http.Error(w, "Failed to render response", http.StatusInternalServerError)
	}
}

// generateOAuthState creates a random state string for OAuth.
func generateOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
