package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/stackchart/pkg/buildinfo"
	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
)

const (
	httpTimeout = 10 * time.Second

	// maxDataSize caps remote data bodies.
	maxDataSize = 32 << 20
)

// NewHTTPClient creates the client used for remote data sources.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// IsRemote reports whether source is an http(s) URL.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// dataFormat returns the explicit format or infers it from the source path.
func dataFormat(opts Options) (data.Format, error) {
	if opts.DataFormat != "" {
		return data.Format(opts.DataFormat), nil
	}
	path := opts.Source
	if IsRemote(path) {
		u, err := url.Parse(path)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse source URL")
		}
		path = u.Path
	}
	return data.FormatFromPath(path)
}

// readSource returns the raw bytes of a local source file.
func readSource(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read %s", path)
	}
	return b, nil
}

// fetch downloads a remote source, retrying network failures and 5xx
// responses.
func fetch(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
		}
		req.Header.Set("User-Agent", buildinfo.UserAgent())

		resp, err := client.Do(req)
		if err != nil {
			return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", source))
		}
		defer resp.Body.Close()
		if err := checkStatus(source, resp.StatusCode); err != nil {
			return err
		}
		body, err = io.ReadAll(io.LimitReader(resp.Body, maxDataSize))
		if err != nil {
			return cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", source))
		}
		return nil
	})
	return body, err
}

func checkStatus(source string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "data source %s not found", source)
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", source, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", source, code)
	}
}

// hashRows is the content hash of inline rows.
func hashRows(rows []data.Datum) (string, error) {
	b, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("hash rows: %w", err)
	}
	return cache.Hash(b), nil
}
