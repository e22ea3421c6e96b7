package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/klyamkin/memehub/internal/logger"
)

// defaultUploadTimeout bounds the inter-service upload call so a stalled
// media service cannot suspend API requests indefinitely.
const defaultUploadTimeout = 30 * time.Second

// Client calls the media service over HTTP. It implements the uploader
// contract the meme workflow depends on.
type Client struct {
	http    *resty.Client
	baseURL string
}

// ClientConfig holds configuration for the media service client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a new media service client.
// Parameters:
//   - cfg: client configuration; zero Timeout uses the 30s default.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultUploadTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)

	return &Client{
		http:    client,
		baseURL: cfg.BaseURL,
	}
}

// Upload sends the file to the media service and returns the object key it
// was stored under. Any non-200 response or transport failure is an error;
// there is no retry.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - filename: original filename, forwarded as the multipart file name.
//   - contentType: MIME type of the payload.
//   - data: file bytes.
// Returns:
//   - string: object key reported by the media service.
//   - error: non-nil on transport failure or non-200 status.
func (c *Client) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	logger.CtxDebug(ctx, "Uploading to media service: url=%s, filename=%s", c.baseURL+"/upload", filename)

	var result uploadResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField("file", filename, contentType, data).
		SetResult(&result).
		Post(c.baseURL + "/upload")
	if err != nil {
		return "", fmt.Errorf("media service unreachable: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("media service returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Filename == "" {
		return "", fmt.Errorf("media service returned no filename")
	}

	return result.Filename, nil
}
