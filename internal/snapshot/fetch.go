package snapshot

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/motemen/go-loghttp"
)

// Fetcher loads page documents from http(s) and file URLs.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets the User-Agent header of HTTP requests.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits the number of bytes read per document.
func WithMaxBodySize(n int64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// WithTimeout sets the per-request timeout. It also applies to a client
// given with WithHTTPClient.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithFetcherLogger sets the logger that receives request and response logs.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithHTTPClient replaces the HTTP client. Request logging is not added
// to a replaced client.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a Fetcher whose HTTP transport logs every request and
// response at debug level.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:     30 * time.Second,
		maxBodySize: 10 * 1024 * 1024,
		logger:      slog.Default(),
	}
	f.client = &http.Client{
		Transport: &loghttp.Transport{
			Transport: http.DefaultTransport,
			LogRequest: func(req *http.Request) {
				f.logger.Debug("HTTP request",
					"method", req.Method,
					"url", req.URL.String(),
				)
			},
			LogResponse: func(resp *http.Response) {
				f.logger.Debug("HTTP response",
					"method", resp.Request.Method,
					"url", resp.Request.URL.String(),
					"status_code", resp.StatusCode,
				)
			},
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	client := *f.client
	client.Timeout = f.timeout
	f.client = &client
	return f
}

// Fetch returns the document at rawURL.
// Bodies longer than the configured maximum are truncated.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetch), failure.Context{"url": rawURL})
	}

	switch u.Scheme {
	case "file":
		return f.fetchFile(u)
	case "http", "https":
		return f.fetchHTTP(ctx, u)
	default:
		return nil, failure.New(ErrUnsupportedScheme,
			failure.Message("unsupported URL scheme: "+u.Scheme),
			failure.Context{"url": rawURL},
		)
	}
}

func (f *Fetcher) fetchFile(u *url.URL) ([]byte, error) {
	file, err := os.Open(u.Path)
	if err != nil {
		return nil, failure.New(ErrFetch,
			failure.Message("cannot open local file: "+u.Path),
			failure.Context{"error": err.Error()},
		)
	}
	defer file.Close()

	return f.readBody(file, u.String())
}

func (f *Fetcher) fetchHTTP(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetch))
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetch), failure.Message("request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, failure.New(ErrFetch,
			failure.Message("unexpected HTTP status "+resp.Status),
			failure.Context{"status": strconv.Itoa(resp.StatusCode)},
		)
	}
	return f.readBody(resp.Body, u.String())
}

func (f *Fetcher) readBody(r io.Reader, location string) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBodySize+1))
	if err != nil {
		return nil, failure.Wrap(err, failure.WithCode(ErrFetch), failure.Message("cannot read body"))
	}
	if int64(len(body)) > f.maxBodySize {
		f.logger.Warn("document truncated", "url", location, "limit", f.maxBodySize)
		body = body[:f.maxBodySize]
	}
	return body, nil
}
