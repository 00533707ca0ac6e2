// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/poiesic/auctionlens/core"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 200 * time.Millisecond
	maxDocumentSize    = 32 << 20
)

// Source fetches a taxonomy document.
// Implementations must be safe for concurrent use.
type Source interface {
	Fetch(ctx context.Context) (*core.Taxonomy, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (*core.Taxonomy, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) (*core.Taxonomy, error) {
	return f(ctx)
}

// Decode parses a taxonomy JSON document. Missing categories decode as empty.
func Decode(data []byte) (*core.Taxonomy, error) {
	var t core.Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	if t.Domestic == nil {
		t.Domestic = []core.Manufacturer{}
	}
	if t.Import == nil {
		t.Import = []core.Manufacturer{}
	}
	return &t, nil
}

// FileSource reads the taxonomy from a local JSON file.
type FileSource struct {
	Path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) (*core.Taxonomy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// StaticSource serves an in-memory taxonomy.
type StaticSource struct {
	Taxonomy *core.Taxonomy
}

// Fetch returns the wrapped taxonomy.
func (s StaticSource) Fetch(ctx context.Context) (*core.Taxonomy, error) {
	if s.Taxonomy == nil {
		return nil, ErrNilTaxonomy
	}
	return s.Taxonomy, nil
}

// HTTPSource fetches the taxonomy over HTTP, bypassing intermediate caches.
type HTTPSource struct {
	url         string
	client      *http.Client
	maxAttempts int
	baseDelay   time.Duration
	maxSize     int64
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient sets the client used for requests.
// Default is http.DefaultClient.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// WithRetry sets the number of attempts and the base backoff delay.
// Default is 3 attempts starting at 200ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.maxAttempts = maxAttempts
		s.baseDelay = baseDelay
	}
}

// WithMaxDocumentSize caps the response body. Larger documents fail with
// ErrDocumentTooLarge. Default is 32 MiB.
func WithMaxDocumentSize(n int64) HTTPOption {
	return func(s *HTTPSource) {
		if n > 0 {
			s.maxSize = n
		}
	}
}

// NewHTTPSource creates an HTTPSource for url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:         url,
		client:      http.DefaultClient,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		maxSize:     maxDocumentSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch issues a GET for the taxonomy document, retrying transient failures.
// Decode failures are not retried.
func (s *HTTPSource) Fetch(ctx context.Context) (*core.Taxonomy, error) {
	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		var err error
		body, err = s.get(ctx)
		return err
	}, s.maxAttempts, s.baseDelay)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

func (s *HTTPSource) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrDocumentTooLarge, s.maxSize)
	}
	return body, nil
}
