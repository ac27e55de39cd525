package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// HTTPSource downloads a CSV dataset. Server errors and transport failures are retried.
type HTTPSource struct {
	url           string
	httpClient    *resty.Client
	retryAttempts uint
	retryDelay    time.Duration
}

func NewHTTPSource(url string, retryAttempts uint) *HTTPSource {
	if retryAttempts == 0 {
		retryAttempts = 1
	}
	return &HTTPSource{
		url:           url,
		httpClient:    resty.New(),
		retryAttempts: retryAttempts,
		retryDelay:    200 * time.Millisecond,
	}
}

func (s *HTTPSource) Key() string {
	return s.url
}

func (s *HTTPSource) Load(ctx context.Context) (*Table, error) {
	var body string
	if err := retry.Do(
		func() error {
			response, err := s.httpClient.R().
				SetContext(ctx).
				SetHeader("Accept", "text/csv").
				Get(s.url)
			if err != nil {
				return fmt.Errorf("httpClient.Get(%s) > %w", s.url, err)
			}
			if response.StatusCode() >= http.StatusInternalServerError || response.StatusCode() == http.StatusTooManyRequests {
				return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
			}
			if response.StatusCode() != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("response error %d: %s", response.StatusCode(), response.String()))
			}
			body = response.String()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(s.retryAttempts),
		retry.Delay(s.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying dataset download",
				"attempt", n+1,
				"url", s.url,
				"error", err)
		}),
	); err != nil {
		return nil, err
	}

	table, err := readCSV(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("readCSV(%s) > %w", s.url, err)
	}
	return table, nil
}
