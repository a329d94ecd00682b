package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gainhound/internal/config"
)

// Analyzer triggers the downstream loudness analysis after a re-encode batch.
type Analyzer interface {
	TriggerAnalysis(ctx context.Context) error
}

// Maintainer adds the owner-invoked maintenance operations on top of the
// post-batch trigger.
type Maintainer interface {
	Analyzer
	// ClearAnalysis drops the stored analysis data for the music section so
	// the next deep analyze recomputes loudness from scratch.
	ClearAnalysis(ctx context.Context) error
	// WaitReady blocks until the server answers or ctx expires.
	WaitReady(ctx context.Context) error
}

// HTTPDoer describes the HTTP client used by the Plex analyzer.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewFromConfig returns an HTTP-backed analyzer when Plex is enabled and
// configured, and a noop otherwise.
func NewFromConfig(cfg *config.Config) Maintainer {
	if cfg == nil || !cfg.Plex.Enabled {
		return noopAnalyzer{}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.Plex.URL), "/")
	token := strings.TrimSpace(cfg.Plex.Token)
	if baseURL == "" || token == "" {
		return noopAnalyzer{}
	}
	timeout := time.Duration(cfg.Plex.RequestTimeoutSeconds) * time.Second
	return &httpAnalyzer{
		baseURL: baseURL,
		token:   token,
		library: cfg.Plex.Library,
		analyze: cfg.Plex.AnalyzeLoudness,
		client:  &http.Client{Timeout: timeout},
	}
}

// NewHTTPAnalyzer constructs an analyzer with an injected HTTP client.
func NewHTTPAnalyzer(baseURL, token, library string, analyze bool, client HTTPDoer) Maintainer {
	return &httpAnalyzer{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		library: library,
		analyze: analyze,
		client:  client,
	}
}

type noopAnalyzer struct{}

func (noopAnalyzer) TriggerAnalysis(context.Context) error { return nil }

func (noopAnalyzer) ClearAnalysis(context.Context) error { return nil }

func (noopAnalyzer) WaitReady(context.Context) error { return nil }

type httpAnalyzer struct {
	baseURL string
	token   string
	library string
	analyze bool
	client  HTTPDoer
}

type sectionContainer struct {
	MediaContainer struct {
		Directory []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
			Type  string `json:"type"`
		} `json:"Directory"`
	} `json:"MediaContainer"`
}

func (a *httpAnalyzer) TriggerAnalysis(ctx context.Context) error {
	key, err := a.resolveSection(ctx)
	if err != nil {
		return err
	}
	if err := a.request(ctx, http.MethodGet, fmt.Sprintf("/library/sections/%s/refresh", key)); err != nil {
		return fmt.Errorf("plex library scan: %w", err)
	}
	if a.analyze {
		if err := a.request(ctx, http.MethodPut, fmt.Sprintf("/library/sections/%s/analyze", key)); err != nil {
			return fmt.Errorf("plex library analyze: %w", err)
		}
	}
	return nil
}

// ClearAnalysis unmatches the music section, discarding its stored analysis
// data. The next analyze pass recomputes loudness for every track.
func (a *httpAnalyzer) ClearAnalysis(ctx context.Context) error {
	key, err := a.resolveSection(ctx)
	if err != nil {
		return err
	}
	if err := a.request(ctx, http.MethodPut, fmt.Sprintf("/library/sections/%s/unmatch", key)); err != nil {
		return fmt.Errorf("plex clear analysis: %w", err)
	}
	return nil
}

const readyRetryInterval = 2 * time.Second

// WaitReady polls the identity endpoint until the server answers. Useful
// right after a server restart, when the HTTP port is up before the library
// is serviceable.
func (a *httpAnalyzer) WaitReady(ctx context.Context) error {
	for {
		if err := a.request(ctx, http.MethodGet, "/identity"); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("plex not reachable: %w", ctx.Err())
		case <-time.After(readyRetryInterval):
		}
	}
}

func (a *httpAnalyzer) resolveSection(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/library/sections", nil)
	if err != nil {
		return "", fmt.Errorf("build plex sections request: %w", err)
	}
	a.decorate(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("list plex sections: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("plex sections returned %d", resp.StatusCode)
	}

	var container sectionContainer
	if err := json.NewDecoder(resp.Body).Decode(&container); err != nil {
		return "", fmt.Errorf("decode plex sections: %w", err)
	}

	var fallback string
	for _, dir := range container.MediaContainer.Directory {
		if dir.Title == a.library {
			return dir.Key, nil
		}
		if fallback == "" && dir.Type == "artist" {
			fallback = dir.Key
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", errors.New("no plex music section found")
}

func (a *httpAnalyzer) request(ctx context.Context, method, path string) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	a.decorate(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}

func (a *httpAnalyzer) decorate(req *http.Request) {
	req.Header.Set("X-Plex-Token", a.token)
	req.Header.Set("Accept", "application/json")
}
