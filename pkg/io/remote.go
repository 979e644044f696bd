package io

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
	"github.com/driftwatch/driftwatch/pkg/logger"
)

// RemoteHandler fetches an HTTP(S) location to a local temporary file and
// delegates parsing to the wrapped format handler. Writing to a remote
// location is not supported.
type RemoteHandler struct {
	inner  Handler
	client *http.Client
	logger *zap.Logger
}

// NewRemoteHandler wraps a format handler with HTTP fetching.
func NewRemoteHandler(inner Handler) *RemoteHandler {
	return &RemoteHandler{
		inner:  inner,
		client: &http.Client{Timeout: 2 * time.Minute},
		logger: logger.Get().With(zap.String("component", "remote_handler")),
	}
}

// Read downloads the URL and reads the local copy with the inner handler.
// The temporary file is removed before returning.
func (h *RemoteHandler) Read(ctx context.Context, url string) (*dataset.Dataset, error) {
	local, err := h.download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer os.Remove(local)

	return h.inner.Read(ctx, local)
}

// Write always fails: report destinations must be local.
func (h *RemoteHandler) Write(_ context.Context, _ Tabular, url string) error {
	return errors.Newf(errors.ErrorTypeConfig, "cannot write to remote location %q", url)
}

func (h *RemoteHandler) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeConfig, "invalid URL "+url)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to fetch "+url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrorTypeFile, "fetch %s: unexpected status", url).
			WithDetail("status", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "driftwatch-fetch-")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to create temporary file")
	}

	written, err := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, errors.ErrorTypeFile, "failed to download "+url)
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(closeErr, errors.ErrorTypeFile, "failed to close temporary file")
	}

	h.logger.Debug("downloaded remote data",
		zap.String("url", url),
		zap.Int64("bytes", written))
	return tmp.Name(), nil
}
