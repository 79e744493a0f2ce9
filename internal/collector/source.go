package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Source supplies a roster spreadsheet exported as CSV.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}

// FileSource reads the spreadsheet from a local path.
type FileSource struct {
	Path string
}

func (f *FileSource) Name() string { return "file:" + f.Path }

func (f *FileSource) Open(_ context.Context) (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	return file, nil
}

// HTTPSource downloads the spreadsheet, e.g. from a published sheet's CSV link.
type HTTPSource struct {
	URL    string
	Token  string
	Client *http.Client
}

// NewHTTPSource creates a source with optional proxy support.
func NewHTTPSource(rawURL, token, proxyURL string) *HTTPSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HTTPSource{
		URL:   rawURL,
		Token: token,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (h *HTTPSource) Name() string { return "http:" + h.URL }

func (h *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, err
	}
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download sheet: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("download sheet: status %d, body: %s", resp.StatusCode, string(body))
	}
	return resp.Body, nil
}

// MockSource serves a fixed payload for development and testing.
type MockSource struct {
	Data []byte
	Err  error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Open(_ context.Context) (io.ReadCloser, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return io.NopCloser(strings.NewReader(string(m.Data))), nil
}
