package dataset

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/parentevalerio/infovis-trees/pkg/cache"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
	"github.com/parentevalerio/infovis-trees/pkg/observability"
)

// maxRemoteSize caps remote dataset downloads at 16 MiB. Real trait
// datasets are a few kilobytes; anything larger is a misconfigured URL.
const maxRemoteSize = 16 << 20

// LoadURL fetches and validates a dataset from an HTTP(S) URL.
//
// Transient failures (network errors, 5xx responses) are retried with
// exponential backoff; 4xx responses fail immediately. The request honors
// ctx for cancellation.
func LoadURL(ctx context.Context, url string) (*Dataset, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 30 * time.Second}

	var body []byte
	fetch := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		observability.HTTP().OnRequest(ctx, http.MethodGet, req.URL.Host, req.URL.Path)
		resp, err := client.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, http.MethodGet, req.URL.Host, req.URL.Path, err)
			return cache.Retryable(err)
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, http.MethodGet, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode >= 500:
			return cache.Retryable(fmt.Errorf("server error: %s", resp.Status))
		case resp.StatusCode == http.StatusNotFound:
			return errors.New(errors.ErrCodeNotFound, "dataset not found at %s", url)
		case resp.StatusCode != http.StatusOK:
			return errors.New(errors.ErrCodeNetwork, "unexpected status %s from %s", resp.Status, url)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
		if err != nil {
			return cache.Retryable(err)
		}
		if len(body) > maxRemoteSize {
			return errors.New(errors.ErrCodeInvalidDataset, "remote dataset exceeds %d bytes", maxRemoteSize)
		}
		return nil
	}

	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		var typed *errors.Error
		if stderrors.As(err, &typed) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch dataset from %s", url)
	}

	ds, err := Read(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return ds, nil
}
