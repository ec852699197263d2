package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
	"github.com/storedesk/storedesk-cli/internal/logger"
)

// Ensure ItemSource implements the interface.
var _ driven.ItemSource = (*ItemSource)(nil)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 16 << 20

// Config configures an ItemSource.
type Config struct {
	// BaseURL is the backend root, e.g. http://erp.local:8080.
	BaseURL string

	// Variants is the ordered request variant chain. Empty uses all variants.
	Variants []string

	// RatePerSecond throttles outbound requests.
	RatePerSecond int

	// Timeout bounds each HTTP attempt. Zero means 15 seconds.
	Timeout time.Duration

	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// ItemSource fetches lookup rows from a REST backend.
type ItemSource struct {
	base     *url.URL
	variants []string
	client   *http.Client
	limiter  *RateLimiter

	mu        sync.Mutex
	preferred map[domain.Kind]string
}

// NewItemSource creates a REST item source.
func NewItemSource(cfg Config) (*ItemSource, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	variants := cfg.Variants
	if len(variants) == 0 {
		variants = domain.AllVariants()
	}
	for _, v := range variants {
		if !domain.IsValidVariant(v) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
		}
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &ItemSource{
		base:      base,
		variants:  append([]string(nil), variants...),
		client:    client,
		limiter:   NewRateLimiter(cfg.RatePerSecond),
		preferred: make(map[domain.Kind]string),
	}, nil
}

// Preferred returns the variant that last succeeded for a kind.
func (s *ItemSource) Preferred(kind domain.Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferred[kind]
}

// List returns every row the backend has for a kind, normalised with the
// kind's field aliases.
func (s *ItemSource) List(ctx context.Context, kind domain.Kind) ([]domain.Item, error) {
	view, ok := domain.DefaultKindView(kind)
	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, domain.ErrUnknownKind)
	}

	logger.Section("Remote " + kind.String())

	var lastErr error
	for _, variant := range s.order(kind) {
		rows, err := s.attempt(ctx, kind, variant)
		if err == nil {
			s.remember(kind, variant)
			logger.Info("Variant %q succeeded: %d rows", variant, len(rows))
			return normaliseRows(rows, view.Aliases), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("Variant %q failed: %v", variant, err)
		// Every variant shares the limit, so trying the rest is pointless.
		if errors.Is(err, domain.ErrRateLimited) {
			return nil, fmt.Errorf("%s: %w: %w", kind, domain.ErrRemoteUnavailable, err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%s: %w: %v", kind, domain.ErrRemoteUnavailable, lastErr)
}

// order returns the variant chain with the remembered winner first.
func (s *ItemSource) order(kind domain.Kind) []string {
	preferred := s.Preferred(kind)
	if preferred == "" {
		return s.variants
	}
	ordered := make([]string, 0, len(s.variants))
	ordered = append(ordered, preferred)
	for _, v := range s.variants {
		if v != preferred {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

func (s *ItemSource) remember(kind domain.Kind, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferred[kind] = variant
}

// attempt performs one request using a single variant.
func (s *ItemSource) attempt(ctx context.Context, kind domain.Kind, variant string) ([]map[string]any, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := s.endpoint(kind, variant)
	logger.Debug("GET %s", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		s.limiter.RecordRateLimit(parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()))
		return nil, &StatusError{Code: resp.StatusCode, Variant: variant}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Variant: variant}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return decodeRows(body)
}

// endpoint builds the request URL for a kind and variant.
func (s *ItemSource) endpoint(kind domain.Kind, variant string) string {
	u := *s.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api/" + url.PathEscape(kind.String())
	switch variant {
	case domain.VariantList:
		u.RawQuery = "list"
	default:
		u.RawQuery = url.Values{variant: {""}}.Encode()
	}
	return u.String()
}

// decodeRows accepts a JSON array of objects or {"items": [...]}.
func decodeRows(body []byte) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var rows []map[string]any
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return rows, nil
	}

	var envelope struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if envelope.Items == nil {
		return nil, fmt.Errorf("%w: missing items", ErrMalformedResponse)
	}
	return envelope.Items, nil
}

func normaliseRows(rows []map[string]any, aliases map[string][]string) []domain.Item {
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		items = append(items, domain.Normalise(row, aliases))
	}
	return items
}
