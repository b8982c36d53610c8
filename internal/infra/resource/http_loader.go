package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"clubcine-quiz/internal/domain"
)

// maxDocumentSize bounds the question document read from the network.
const maxDocumentSize = 8 << 20

var ErrDocumentTooLarge = errors.New("question document too large")

// HTTPLoader fetches a static JSON question document with a single GET. There is no retry.
type HTTPLoader struct {
	url    string
	client *http.Client
}

func NewHTTPLoader(url string, timeout time.Duration) *HTTPLoader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPLoader{url: url, client: &http.Client{Timeout: timeout}}
}

func (l *HTTPLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("%w: over %d bytes", ErrDocumentTooLarge, maxDocumentSize)
	}
	return Decode(data, FormatJSON)
}
