package dataset

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dlofaro/spotify-genie/internal/recommend"
)

const fetchTimeout = 30 * time.Second

// Fetcher downloads a hosted dataset CSV over HTTP.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher with a request timeout suitable for datasets
// of tens of thousands of rows.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: resty.New().SetTimeout(fetchTimeout),
	}
}

// FetchTracks downloads the dataset CSV at url and parses it.
func (f *Fetcher) FetchTracks(ctx context.Context, url string) ([]recommend.Track, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching dataset: unexpected status %s", resp.Status())
	}
	return ParseTracks(bytes.NewReader(resp.Body()))
}
