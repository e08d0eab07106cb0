// Command spotify-genie runs the Spotify Genie web application.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dlofaro/spotify-genie/internal/dataset"
	"github.com/dlofaro/spotify-genie/internal/db"
	"github.com/dlofaro/spotify-genie/internal/web"
	webfs "github.com/dlofaro/spotify-genie/web"
)

// defaultDatasetPath is checked when DATASET_PATH is not set.
const defaultDatasetPath = "dataset.csv"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	clientID := os.Getenv("SPOTIFY_ID")
	clientSecret := os.Getenv("SPOTIFY_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("please set SPOTIFY_ID and SPOTIFY_SECRET environment variables")
	}

	// Create sub-filesystems for templates and static files
	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		return fmt.Errorf("creating templates filesystem: %w", err)
	}

	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		return fmt.Errorf("creating static filesystem: %w", err)
	}

	cfg := web.ServerConfig{
		Addr:         web.DefaultAddr,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TemplatesFS:  templates,
		StaticFS:     static,
		DatasetURL:   os.Getenv("DATASET_URL"),
	}
	if addr := os.Getenv("ADDR"); addr != "" {
		cfg.Addr = addr
	}

	// Preload a local dataset so every client starts ready to go
	if path := os.Getenv("DATASET_PATH"); path != "" {
		tracks, err := dataset.LoadTracksFile(path)
		if err != nil {
			return fmt.Errorf("loading dataset %s: %w", path, err)
		}
		cfg.SeedDataset = tracks
		log.Printf("Loaded %d tracks from %s", len(tracks), path)
	} else if _, err := os.Stat(defaultDatasetPath); err == nil {
		tracks, err := dataset.LoadTracksFile(defaultDatasetPath)
		if err != nil {
			log.Printf("Warning: loading default dataset: %v", err)
		} else {
			cfg.SeedDataset = tracks
			log.Printf("Loaded %d tracks from %s", len(tracks), defaultDatasetPath)
		}
	}

	// Connect to PostgreSQL when configured
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err := db.New(context.Background(), databaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		cfg.Database = database
		log.Println("Using PostgreSQL for sessions and library sync")
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run()
}
