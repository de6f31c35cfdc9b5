package proxy

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/diretoriaja/portal/internal/storage"
	"github.com/diretoriaja/portal/pkg/store"
)

type memCache struct {
	mu      sync.Mutex
	objects map[string]storage.Object
}

func (m *memCache) Get(ctx context.Context, key string) (storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	if !ok {
		return storage.Object{}, storage.ErrObjectNotFound
	}
	return obj, nil
}

func (m *memCache) Put(ctx context.Context, key string, obj storage.Object) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = obj
	return nil
}

func TestAllowed(t *testing.T) {
	t.Parallel()

	p := NewImageProxy(0)
	tests := map[string]bool{
		"https://scontent-gru1-1.cdninstagram.com/v/t51/abc.jpg": true,
		"https://static.xx.fbcdn.net/rsrc.php/img.png":           true,
		"https://www.instagram.com/p/abc/media":                  true,
		"https://evil.example.com/?u=cdninstagram.com":           false,
		"https://scontent.attacker.example/a.jpg":                false,
		"https://fbcdn.net.evil.io/a.jpg":                        false,
		"https://notfbcdn.net/a.jpg":                             false,
		"https://fbcdn.net/a.jpg":                                true,
		"https://SCONTENT.XX.FBCDN.NET./a.jpg":                   true,
		"ftp://cdninstagram.com/a.jpg":                           false,
		"not a url":                                              false,
		"":                                                       false,
	}
	for in, want := range tests {
		if got := p.Allowed(in); got != want {
			t.Fatalf("Allowed(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFetchCachesImages(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Referer") == "" {
			t.Errorf("missing referer header")
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	cache := &memCache{objects: map[string]storage.Object{}}
	p := NewImageProxy(100, WithAllowedHosts("127.0.0.1"), WithCache(cache), WithHTTPClient(srv.Client()))
	ctx := context.Background()

	for range 2 {
		obj, err := p.Fetch(ctx, srv.URL+"/a.png")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(obj.Data) != "png-bytes" || obj.ContentType != "image/png" {
			t.Fatalf("unexpected object: %+v", obj)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one origin hit, got %d", hits.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewImageProxy(0, WithAllowedHosts("127.0.0.1"), WithHTTPClient(srv.Client()))
	ctx := context.Background()

	var statusErr *StatusError
	if _, err := p.Fetch(ctx, srv.URL+"/missing.png"); !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected StatusError 404, got %v", err)
	}
	if _, err := p.Fetch(ctx, "https://example.com/a.png"); !errors.Is(err, ErrForbiddenHost) {
		t.Fatalf("expected ErrForbiddenHost, got %v", err)
	}
	if _, err := p.Fetch(ctx, ""); !errors.Is(err, store.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestFetchRedirects(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer target.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/same-host":
			http.Redirect(w, r, target.URL+"/a.png", http.StatusFound)
		case "/other-host":
			// same listener reached through a name outside the allow list
			http.Redirect(w, r, strings.Replace(target.URL, "127.0.0.1", "localhost", 1)+"/a.png", http.StatusFound)
		}
	}))
	defer origin.Close()

	cache := &memCache{objects: map[string]storage.Object{}}
	p := NewImageProxy(0, WithAllowedHosts("127.0.0.1"), WithCache(cache))
	ctx := context.Background()

	obj, err := p.Fetch(ctx, origin.URL+"/same-host")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(obj.Data) != "png-bytes" {
		t.Fatalf("unexpected object: %+v", obj)
	}

	if _, err := p.Fetch(ctx, origin.URL+"/other-host"); !errors.Is(err, ErrForbiddenHost) {
		t.Fatalf("expected ErrForbiddenHost, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("disallowed redirect reached the target: %d hits", hits.Load())
	}
	if len(cache.objects) != 1 {
		t.Fatalf("expected only the allowed fetch cached, got %d objects", len(cache.objects))
	}
}

func TestFetchRejectsOversizedImages(t *testing.T) {
	t.Parallel()

	oversized := bytes.Repeat([]byte("x"), MaxImageBytes+1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		if r.URL.Path == "/sized.jpg" {
			w.Header().Set("Content-Length", strconv.Itoa(len(oversized)))
		}
		_, _ = w.Write(oversized)
	}))
	defer srv.Close()

	cache := &memCache{objects: map[string]storage.Object{}}
	p := NewImageProxy(0, WithAllowedHosts("127.0.0.1"), WithCache(cache), WithHTTPClient(srv.Client()))
	ctx := context.Background()

	for _, path := range []string{"/sized.jpg", "/chunked.jpg"} {
		if _, err := p.Fetch(ctx, srv.URL+path); !errors.Is(err, ErrTooLarge) {
			t.Fatalf("Fetch(%s) error = %v, want ErrTooLarge", path, err)
		}
	}
	if len(cache.objects) != 0 {
		t.Fatalf("partial image was cached: %d objects", len(cache.objects))
	}
}
