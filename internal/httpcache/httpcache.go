// Package httpcache provides a disk-backed response cache for the GET
// requests providers make. It is an opaque accelerator: a cached body
// is indistinguishable from a live one to callers, and a stale entry
// is served when the live call fails rather than failing outright.
package httpcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hillbillynomad/powder/internal/logger"
)

// DefaultTTL matches the typical 6-12 hour refresh cadence of the
// upstream weather models.
const DefaultTTL = 12 * time.Hour

// Config controls cache behavior. The zero value disables caching.
type Config struct {
	Enabled bool
	TTL     time.Duration
	Dir     string
}

// DefaultDir returns the per-user cache directory.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "powder")
	}
	return filepath.Join(base, "powder")
}

// Transport is an http.RoundTripper that caches successful GET
// responses on disk. Only 2xx responses are stored.
type Transport struct {
	cfg  Config
	base http.RoundTripper
}

// New builds a caching transport over base (http.DefaultTransport when
// nil).
func New(cfg Config, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Transport{cfg: cfg, base: base}
}

// Client wraps the transport in an http.Client with the given timeout.
func Client(cfg Config, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: New(cfg, nil),
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.cfg.Enabled || req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	path := t.entryPath(req.URL.String())

	if body, ok := t.readFresh(path); ok {
		return cachedResponse(req, body, "HIT"), nil
	}

	resp, err := t.base.RoundTrip(req)
	if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}
		t.store(path, body)
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}

	// Live call failed: fall back to a stale entry if one exists.
	if body, ok := t.readAny(path); ok {
		if resp != nil {
			resp.Body.Close()
		}
		logger.Debugf("httpcache: serving stale entry for %s", req.URL)
		return cachedResponse(req, body, "STALE"), nil
	}

	return resp, err
}

// Clear removes every cached entry.
func (t *Transport) Clear() error {
	entries, err := os.ReadDir(t.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".body" {
			if err := os.Remove(filepath.Join(t.cfg.Dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *Transport) entryPath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(t.cfg.Dir, hex.EncodeToString(sum[:])+".body")
}

func (t *Transport) readFresh(path string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > t.cfg.TTL {
		return nil, false
	}
	return t.readAny(path)
}

func (t *Transport) readAny(path string) ([]byte, bool) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

func (t *Transport) store(path string, body []byte) {
	if err := os.MkdirAll(t.cfg.Dir, 0o755); err != nil {
		logger.Warnf("httpcache: create cache dir: %v", err)
		return
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		logger.Warnf("httpcache: write entry: %v", err)
	}
}

func cachedResponse(req *http.Request, body []byte, state string) *http.Response {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("X-Powder-Cache", state)

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", http.StatusOK, http.StatusText(http.StatusOK)),
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}
