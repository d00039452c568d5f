// Package api is a typed client for the snapshare REST API.
package api

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/snapshare/cli/pkg/config"
)

// Client calls the API over a configured resty client
type Client struct {
	http       *resty.Client
	uploadsURL string
}

// New wraps an HTTP client. uploadsURL is the base that image filenames are
// resolved against.
func New(httpClient *resty.Client, uploadsURL string) *Client {
	return &Client{
		http:       httpClient,
		uploadsURL: strings.TrimRight(uploadsURL, "/"),
	}
}

// NewFromConfig wraps an HTTP client using api.uploads_url from config
func NewFromConfig(httpClient *resty.Client) *Client {
	return New(httpClient, config.GetString("api.uploads_url"))
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// ImageURL resolves an image filename against the uploads base path
func (c *Client) ImageURL(filename string) string {
	return ImageURL(c.uploadsURL, filename)
}

// ImageURL joins base and the percent-encoded filename. An empty filename
// yields an empty URL and absolute URLs pass through.
func ImageURL(base, filename string) string {
	if filename == "" {
		return ""
	}
	if strings.HasPrefix(filename, "http://") || strings.HasPrefix(filename, "https://") {
		return filename
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(filename)
}
