package source

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/matzehuels/vischart/pkg/cache"
	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
	"github.com/matzehuels/vischart/pkg/observability"
)

const httpTimeout = 10 * time.Second

// HTTPResolver fetches datasets below a base URL. The name "sales.csv" with
// base "https://data.example.com/v1" requests
// https://data.example.com/v1/sales.csv. Names ending in .csv are decoded as
// CSV, everything else as JSON. Responses are cached and transient failures
// retried.
type HTTPResolver struct {
	base    string
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	headers map[string]string

	// Refresh bypasses the cache for reads; responses are still stored.
	Refresh bool
}

// NewHTTPResolver creates a resolver for baseURL. A nil cache disables
// caching. Headers are sent with every request.
func NewHTTPResolver(baseURL string, c cache.Cache, headers map[string]string) (*HTTPResolver, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &HTTPResolver{
		base:    strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		cache:   c,
		keyer:   cache.NewDefaultKeyer(),
		ttl:     cache.TTLHTTP,
		headers: headers,
	}, nil
}

// WithKeyer replaces the cache keyer, for example with a [cache.ScopedKeyer].
func (r *HTTPResolver) WithKeyer(k cache.Keyer) *HTTPResolver {
	if k != nil {
		r.keyer = k
	}
	return r
}

// Resolve fetches and decodes the named dataset.
func (r *HTTPResolver) Resolve(ctx context.Context, name string) ([]data.Row, error) {
	if err := errors.ValidateDataName(name); err != nil {
		return nil, err
	}
	target := r.base + "/" + name

	var body []byte
	err := r.cached(ctx, r.keyer.HTTPKey("data", target), &body, func() error {
		b, err := r.get(ctx, target)
		body = b
		return err
	})
	if stderrors.Is(err, cache.ErrNotFound) {
		return nil, notFound(name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", name)
	}

	decode := DecodeJSON
	if strings.EqualFold(path.Ext(name), ".csv") {
		decode = DecodeCSV
	}
	rows, err := decode(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode %s", name)
	}
	return rows, nil
}

// cached returns the body stored under key or runs fetch with retries and
// stores what it produced.
func (r *HTTPResolver) cached(ctx context.Context, key string, body *[]byte, fetch func() error) error {
	if !r.Refresh {
		if b, ok, _ := r.cache.Get(ctx, key); ok {
			observability.Cache().OnCacheHit(ctx, "http")
			*body = b
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}
	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if err := r.cache.Set(ctx, key, *body, r.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "http", len(*body))
	}
	return nil
}

func (r *HTTPResolver) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	host, p := hostPath(target)

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, http.MethodGet, host, p)
	start := time.Now()

	resp, err := r.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, http.MethodGet, host, p, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, http.MethodGet, host, p, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}

func hostPath(target string) (string, string) {
	u, err := url.Parse(target)
	if err != nil {
		return "", target
	}
	return u.Host, u.Path
}

var _ Resolver = (*HTTPResolver)(nil)
