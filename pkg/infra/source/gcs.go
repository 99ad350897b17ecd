package source

import (
	"context"
	"io"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/aghinsa/IFRNet/pkg/domain/interfaces"
	"github.com/aghinsa/IFRNet/pkg/domain/model"
)

type gcsClient struct {
	client *storage.Client
}

// NewGCS creates a source client for gs://bucket/object archive URLs.
// Checkpoint buckets are public, so the client is unauthenticated.
func NewGCS(ctx context.Context) (interfaces.SourceClient, error) {
	client, err := storage.NewClient(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}

	return &gcsClient{
		client: client,
	}, nil
}

// Download streams the GCS object to destPath
func (c *gcsClient) Download(ctx context.Context, set *model.CheckpointSet, destPath string) (int64, error) {
	bucket, object, err := parseGCSURL(set.SourceURL)
	if err != nil {
		return 0, err
	}

	rc, err := c.client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open GCS object",
			goerr.V("bucket", bucket),
			goerr.V("object", object),
		)
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create archive file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	written, err := io.Copy(destFile, rc)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to write archive file", goerr.V("path", destPath))
	}

	return written, nil
}

// parseGCSURL splits gs://bucket/path/to/object into bucket and object name
func parseGCSURL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", goerr.Wrap(err, "invalid GCS URL", goerr.V("url", rawURL))
	}
	if u.Scheme != "gs" || u.Host == "" {
		return "", "", goerr.New("invalid GCS URL", goerr.V("url", rawURL))
	}

	object := strings.TrimPrefix(u.Path, "/")
	if object == "" {
		return "", "", goerr.New("GCS URL has no object path", goerr.V("url", rawURL))
	}

	return u.Host, object, nil
}
