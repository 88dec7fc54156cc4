package fetcher

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/backyonatan-alt/hullwatch/backend/internal/config"
	"github.com/backyonatan-alt/hullwatch/backend/internal/status"
)

// HTTPClient matches the subset of http.Client used by Fetcher.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Recorder receives one observation per completed backend call.
type Recorder interface {
	ObserveFetch(resource, outcome string, elapsed time.Duration)
}

// Fetcher holds the shared HTTP client, the backend location and the status
// publisher for every orchestrator.
type Fetcher struct {
	base        *url.URL
	healthURL   string
	client      HTTPClient
	timeout     time.Duration
	status      *status.Publisher
	recorder    Recorder
	historyDays int
	now         func() time.Time

	// De-duplicates identical in-flight GETs.
	group singleflight.Group
}

type Option func(*Fetcher)

func WithHTTPClient(c HTTPClient) Option {
	return func(f *Fetcher) { f.client = c }
}

func WithRecorder(r Recorder) Option {
	return func(f *Fetcher) { f.recorder = r }
}

// WithClock replaces time.Now for date windows and fallback timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

func New(cfg *config.Config, pub *status.Publisher, opts ...Option) (*Fetcher, error) {
	if pub == nil {
		return nil, errors.New("fetcher: status publisher is required")
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return nil, errors.New("fetcher: base URL is required")
	}
	base, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetcher: parse base URL: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	historyDays := cfg.HistoryDays
	if historyDays <= 0 {
		historyDays = 30
	}

	f := &Fetcher{
		base:        base,
		healthURL:   cfg.HealthURL,
		client:      &http.Client{Timeout: timeout},
		timeout:     timeout,
		status:      pub,
		historyDays: historyDays,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// HistoryDays is the default window of the derived performance history.
func (f *Fetcher) HistoryDays() int {
	return f.historyDays
}

// record applies the status policy for one finished call and logs it at the
// severity its kind deserves. Canceled calls leave the status untouched.
func (f *Fetcher) record(resource string, kind Kind, err error, elapsed time.Duration) {
	if f.recorder != nil {
		f.recorder.ObserveFetch(resource, kind.String(), elapsed)
	}

	switch kind {
	case Success:
		f.status.Set(status.Connected)
	case NotConfigured:
		slog.Info("backend resource not configured", "resource", resource)
		f.status.Set(status.Connected)
	case Canceled:
		slog.Debug("backend request abandoned", "resource", resource)
	default:
		slog.Warn("backend request failed", "resource", resource, "kind", kind.String(), "error", err)
		f.status.Set(status.Disconnected)
	}
}

// settle finishes a read: the live value on success, the fallback on any
// failure. Only cancellation surfaces as an error.
func settle[T any](f *Fetcher, resource string, res Result[T], fallback func() T) (T, error) {
	f.record(resource, res.Kind, res.Err, res.Elapsed)
	switch res.Kind {
	case Success:
		return res.Value, nil
	case Canceled:
		var zero T
		return zero, res.Err
	default:
		return fallback(), nil
	}
}
