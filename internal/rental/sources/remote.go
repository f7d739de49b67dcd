package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	// ErrUpstream marks a 5xx answer from the dataset host; these are retried.
	ErrUpstream = errors.New("dataset host failed")
	// ErrStatus marks any other non-2xx answer; these fail at once.
	ErrStatus = errors.New("dataset host refused request")
)

// HTTPSource downloads the dataset file over HTTP. Upstream failures are
// retried with doubling delays, and a circuit breaker stops hammering a host
// that keeps failing.
type HTTPSource struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker

	retries  int
	delay    time.Duration
	maxDelay time.Duration
}

func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: client,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "dataset",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		retries:  3,
		delay:    500 * time.Millisecond,
		maxDelay: 5 * time.Second,
	}
}

func (s *HTTPSource) Name() string {
	return "http:" + s.url
}

// Fetch returns the response body of the first successful download.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	delay := s.delay
	for attempt := 0; ; attempt++ {
		raw, err := s.download(ctx)
		if err == nil {
			return raw, nil
		}
		if !retryable(err) || attempt >= s.retries {
			return nil, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		if delay *= 2; delay > s.maxDelay {
			delay = s.maxDelay
		}
	}
}

// download performs one guarded request.
func (s *HTTPSource) download(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var status int
	result, err := s.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		// Only upstream failures count against the breaker.
		status = resp.StatusCode
		if status >= 500 {
			return nil, fmt.Errorf("%w: %d", ErrUpstream, status)
		}
		if status < 200 || status >= 300 {
			return nil, nil
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, status)
	}
	return result.([]byte), nil
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrStatus),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
