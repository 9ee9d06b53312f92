// Package storage downloads uploaded files (resumes, job descriptions) by URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultMaxSize = 10 << 20
)

// Fetcher downloads files from object storage URLs. Only URLs on an allowed
// host are fetched, redirects included.
type Fetcher struct {
	client  *http.Client
	maxSize int64
	hosts   []string
}

// NewFetcher returns a Fetcher limited to hosts. An entry matches the URL's
// host name or its host:port; an entry starting with "." matches any
// subdomain. An empty list allows no host at all.
func NewFetcher(timeout time.Duration, maxSize int64, hosts []string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	f := &Fetcher{maxSize: maxSize}
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			f.hosts = append(f.hosts, h)
		}
	}
	f.client = &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("too many redirects")
			}
			if !f.allowed(req.URL) {
				return fmt.Errorf("%w: redirect to host %q is not allowed", data.ErrInvalid, req.URL.Host)
			}
			return nil
		},
	}
	return f
}

// Check reports whether rawURL is a file the server may download. Browser-local
// blob: URLs, non-http schemes and hosts outside the allow-list are invalid.
func (f *Fetcher) Check(rawURL string) error {
	_, err := f.parse(rawURL)
	return err
}

func (f *Fetcher) parse(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: file url is empty", data.ErrInvalid)
	}
	if strings.HasPrefix(rawURL, "blob:") {
		return nil, fmt.Errorf("%w: file was not uploaded to storage (blob url)", data.ErrInvalid)
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: unsupported file url %q", data.ErrInvalid, rawURL)
	}
	if !f.allowed(u) {
		return nil, fmt.Errorf("%w: file host %q is not allowed", data.ErrInvalid, u.Host)
	}
	return u, nil
}

func (f *Fetcher) allowed(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	hostPort := strings.ToLower(u.Host)
	for _, h := range f.hosts {
		switch {
		case h == host, h == hostPort:
			return true
		case strings.HasPrefix(h, ".") && strings.HasSuffix(host, h):
			return true
		}
	}
	return false
}

// Fetch downloads rawURL after checking it with Check.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (scoring.File, error) {
	u, err := f.parse(rawURL)
	if err != nil {
		return scoring.File{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return scoring.File{}, fmt.Errorf("failed to create http request: %w", err)
	}
	resp, err := f.client.Do(req)
	if errors.Is(err, data.ErrInvalid) {
		return scoring.File{}, err
	}
	if err != nil {
		return scoring.File{}, fmt.Errorf("%w: download %s: %w", data.ErrFetch, u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return scoring.File{}, fmt.Errorf("%w: download returned status %d", data.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return scoring.File{}, fmt.Errorf("%w: read download: %w", data.ErrFetch, err)
	}
	if int64(len(body)) > f.maxSize {
		return scoring.File{}, fmt.Errorf("%w: file exceeds %d bytes", data.ErrInvalid, f.maxSize)
	}

	return scoring.File{Name: fileName(u), Data: body}, nil
}

// fileName picks the last path segment, unescaping storage-style encoded
// object paths like "resumes%2Fuid%2Fcv.pdf".
func fileName(u *url.URL) string {
	p := u.EscapedPath()
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return "file.pdf"
	}
	return name
}
