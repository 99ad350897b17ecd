package source

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/m-mizutani/goerr/v2"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

type httpClient struct {
	client *http.Client
}

// HTTPOption is a functional option for the HTTP source client
type HTTPOption func(*httpClient)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(x *httpClient) {
		x.client = c
	}
}

// NewHTTP creates a source client for http:// and https:// archive URLs
func NewHTTP(opts ...HTTPOption) interfaces.SourceClient {
	c := &httpClient{
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download streams the archive to destPath. The body is copied directly to
// the file, so archive size is bounded by disk, not memory.
func (c *httpClient) Download(ctx context.Context, set *model.CheckpointSet, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, set.SourceURL, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", set.SourceURL))
	}
	if set.Token != "" {
		req.Header.Set("Authorization", "Bearer "+set.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to request archive", goerr.V("url", set.SourceURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, goerr.New("unexpected status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("url", set.SourceURL),
		)
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create archive file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	written, err := io.Copy(destFile, resp.Body)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to write archive file", goerr.V("path", destPath))
	}

	return written, nil
}
