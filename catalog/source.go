package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"resourceshub/model"

	"github.com/rs/zerolog"
)

// Source produces the full course list. Implementations must be safe for
// concurrent use.
type Source interface {
	Load(ctx context.Context) ([]model.Course, error)
}

// FileSource reads the catalog from a CSV file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(ctx context.Context) ([]model.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", s.Path, err)
	}
	defer f.Close()
	return ParseCourses(f)
}

// HTTPSource fetches the catalog CSV from a URL.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func (s HTTPSource) Load(ctx context.Context) ([]model.Course, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching catalog: unexpected status %d", resp.StatusCode)
	}
	return ParseCourses(resp.Body)
}

// FallbackSource serves from Primary and falls back to Fallback on any error.
type FallbackSource struct {
	Primary  Source
	Fallback Source
	Log      zerolog.Logger
}

func (s FallbackSource) Load(ctx context.Context) ([]model.Course, error) {
	courses, err := s.Primary.Load(ctx)
	if err == nil {
		return courses, nil
	}
	s.Log.Warn().Err(err).Msg("primary catalog source failed, using fallback")
	return s.Fallback.Load(ctx)
}
