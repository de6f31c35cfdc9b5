// Package proxy fetches images from allow-listed CDNs on behalf of the
// browser, caching them in object storage.
package proxy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/diretoriaja/portal/internal/storage"
	"github.com/diretoriaja/portal/pkg/logger"
	"github.com/diretoriaja/portal/pkg/store"

	"golang.org/x/time/rate"
)

// AllowedHosts are the CDN domains the proxy will fetch from. A host matches
// a domain when it equals it or is one of its subdomains.
var AllowedHosts = []string{
	"cdninstagram.com",
	"fbcdn.net",
	"instagram.com",
}

// MaxImageBytes bounds a single fetched image.
const MaxImageBytes = 10 << 20

// maxRedirects bounds the redirect chain followed for one fetch.
const maxRedirects = 5

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	ErrForbiddenHost = errors.New("host not allowed")
	ErrTimeout       = errors.New("image fetch timed out")
	ErrTooLarge      = errors.New("image exceeds size limit")
)

// StatusError is returned when the origin answers with a non-200 status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("origin returned status %d", e.Code)
}

type ImageProxy struct {
	client  *http.Client
	cache   storage.ObjectStore
	limiter *rate.Limiter
	hosts   []string
}

type Option func(*ImageProxy)

// WithCache stores fetched images and serves later requests from them.
func WithCache(cache storage.ObjectStore) Option {
	return func(p *ImageProxy) {
		p.cache = cache
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *ImageProxy) {
		p.client = c
	}
}

// WithAllowedHosts replaces AllowedHosts.
func WithAllowedHosts(hosts ...string) Option {
	return func(p *ImageProxy) {
		p.hosts = hosts
	}
}

// NewImageProxy limits outbound fetches to rps per second. A non-positive
// rps disables the limit.
func NewImageProxy(rps float64, opts ...Option) *ImageProxy {
	p := &ImageProxy{
		client: &http.Client{Timeout: 30 * time.Second},
		hosts:  AllowedHosts,
	}
	if rps > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
	for _, opt := range opts {
		opt(p)
	}

	// every redirect hop must pass the same host check as the first request
	client := *p.client
	client.CheckRedirect = p.checkRedirect
	p.client = &client
	return p
}

func (p *ImageProxy) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects: %w", maxRedirects, store.ErrUpstreamUnavailable)
	}
	if !p.Allowed(req.URL.String()) {
		return ErrForbiddenHost
	}
	return nil
}

// Allowed reports whether rawURL points to an allow-listed host over http(s).
func (p *ImageProxy) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return false
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	for _, domain := range p.hosts {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// Fetch returns the image at rawURL. Cache failures are logged and ignored.
func (p *ImageProxy) Fetch(ctx context.Context, rawURL string) (storage.Object, error) {
	if rawURL == "" {
		return storage.Object{}, fmt.Errorf("empty url: %w", store.ErrValidation)
	}
	if !p.Allowed(rawURL) {
		return storage.Object{}, ErrForbiddenHost
	}

	key := cacheKey(rawURL)
	if p.cache != nil {
		obj, err := p.cache.Get(ctx, key)
		if err == nil {
			return obj, nil
		}
		if !errors.Is(err, storage.ErrObjectNotFound) {
			logger.Warn("[Proxy] Cache read failed", "err", err)
		}
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return storage.Object{}, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}

	obj, err := p.fetch(ctx, rawURL)
	if err != nil {
		return storage.Object{}, err
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, key, obj); err != nil {
			logger.Warn("[Proxy] Cache write failed", "err", err)
		}
	}
	return obj, nil
}

func (p *ImageProxy) fetch(ctx context.Context, rawURL string) (storage.Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return storage.Object{}, fmt.Errorf("bad url: %w", store.ErrValidation)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.instagram.com/")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrForbiddenHost) || errors.Is(err, store.ErrUpstreamUnavailable) {
			return storage.Object{}, err
		}
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() || errors.Is(err, context.DeadlineExceeded) {
			return storage.Object{}, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return storage.Object{}, fmt.Errorf("%w: %w", store.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return storage.Object{}, &StatusError{Code: resp.StatusCode}
	}

	if resp.ContentLength > MaxImageBytes {
		return storage.Object{}, ErrTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return storage.Object{}, fmt.Errorf("%w: %w", store.ErrUpstreamUnavailable, err)
	}
	if len(data) > MaxImageBytes {
		return storage.Object{}, ErrTooLarge
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return storage.Object{Data: data, ContentType: contentType}, nil
}
