package utfall

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/nao1215/utfall/domain/model"
)

// Fetcher retrieves the remote CSV and its freshness marker.
//
// Use NewFetcher and chain the With* methods to configure it:
//
//	f := utfall.NewFetcher(utfall.DefaultEndpoint).WithUserAgent("my-tool/1.0")
//	marker, err := f.Probe(ctx)
type Fetcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
	logger    *slog.Logger
}

// FetchResult describes the outcome of a download.
type FetchResult struct {
	// Marker is the freshness marker persisted after the download.
	Marker model.FreshnessMarker
	// Bytes is the number of bytes written to disk.
	Bytes int64
}

// NewFetcher creates a fetcher for endpoint using http.DefaultClient.
func NewFetcher(endpoint string) *Fetcher {
	return &Fetcher{
		client:    http.DefaultClient,
		endpoint:  endpoint,
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
	}
}

// WithClient sets the HTTP client. A nil client is ignored.
func (f *Fetcher) WithClient(client *http.Client) *Fetcher {
	if client != nil {
		f.client = client
	}
	return f
}

// WithUserAgent sets the User-Agent header. An empty value is ignored.
func (f *Fetcher) WithUserAgent(userAgent string) *Fetcher {
	if userAgent != "" {
		f.userAgent = userAgent
	}
	return f
}

// WithLogger sets the logger. A nil logger is ignored.
func (f *Fetcher) WithLogger(logger *slog.Logger) *Fetcher {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Endpoint returns the remote URL.
func (f *Fetcher) Endpoint() string {
	return f.endpoint
}

// Probe issues a metadata-only request and returns the remote Last-Modified value.
// A response without the header yields the zero marker. Any failure is returned
// as *MetadataProbeError.
func (f *Fetcher) Probe(ctx context.Context) (model.FreshnessMarker, error) {
	resp, err := f.do(ctx, http.MethodHead)
	if err != nil {
		return model.FreshnessMarker{}, &MetadataProbeError{Endpoint: f.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return model.FreshnessMarker{}, &MetadataProbeError{
			Endpoint: f.endpoint,
			Err:      fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode),
		}
	}
	return model.NewFreshnessMarker(resp.Header.Get(headerLastModified)), nil
}

// Fetch downloads the remote file to destinationPath, overwriting it, and then
// stores the response's Last-Modified value in markers.
//
// The body is streamed chunk by chunk into a temporary file that replaces
// destinationPath only after the whole body was written. The marker is written
// after that, so an interrupted download never advances it.
// Any failure is returned as *TransferError.
func (f *Fetcher) Fetch(ctx context.Context, destinationPath string, markers *MarkerStore) (*FetchResult, error) {
	transferErr := func(path string, err error) error {
		return &TransferError{Endpoint: f.endpoint, Path: path, Err: err}
	}

	resp, err := f.do(ctx, http.MethodGet)
	if err != nil {
		return nil, transferErr(destinationPath, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, transferErr(destinationPath, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode))
	}
	if hasNullBody(resp.StatusCode) {
		return nil, transferErr(destinationPath, fmt.Errorf("%w: %d", ErrNoBody, resp.StatusCode))
	}

	progress := newProgressWriter(resp.ContentLength, f.logger)
	err = writeFileAtomic(destinationPath, func(w io.Writer) error {
		progress.w = w
		buf := make([]byte, copyBufferSize)
		if _, err := io.CopyBuffer(progress, resp.Body, buf); err != nil {
			return fmt.Errorf("failed to stream response body: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, transferErr(destinationPath, err)
	}

	marker := model.NewFreshnessMarker(resp.Header.Get(headerLastModified))
	if err := markers.Write(marker); err != nil {
		return nil, transferErr(markers.Path(), err)
	}

	f.logger.Debug("download complete", "path", destinationPath, "bytes", progress.written, "last_modified", marker.String())
	return &FetchResult{Marker: marker, Bytes: progress.written}, nil
}

// do sends a request with the configured headers.
func (f *Fetcher) do(ctx context.Context, method string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set(headerUserAgent, f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, f.endpoint, err)
	}
	return resp, nil
}

// hasNullBody reports whether a 2xx status carries no body by definition.
// A 200 with an empty body is still streamed, yielding an empty file.
func hasNullBody(code int) bool {
	return code == http.StatusNoContent || code == http.StatusResetContent
}

// isSuccess reports whether code is a 2xx status.
func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
