package client

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/snapshare/cli/pkg/config"
	"github.com/snapshare/cli/pkg/logger"
)

// UserAgent is sent with every request
const UserAgent = "Snapshare-CLI/0.1.0"

// TokenSource supplies the bearer token for each request
type TokenSource interface {
	Token() (string, error)
}

// invalidator is implemented by token sources that can drop a rejected token
type invalidator interface {
	Invalidate()
}

// Options configures the HTTP client
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// OptionsFromConfig reads api.base_url and api.timeout
func OptionsFromConfig() Options {
	return Options{
		BaseURL: config.GetString("api.base_url"),
		Timeout: time.Duration(config.GetInt("api.timeout")) * time.Second,
	}
}

// New builds the HTTP client. Every request carries a fresh X-Request-ID and
// the bearer token from tokens; a token error aborts the request.
func New(opts Options, tokens TokenSource) *resty.Client {
	c := resty.New()

	c.SetBaseURL(opts.BaseURL)
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	c.SetHeader("User-Agent", UserAgent)
	c.SetHeader("Accept", "application/json")
	if l := logger.GetLogger(); l != nil {
		c.SetLogger(l)
	}

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		requestID := uuid.New().String()
		req.SetHeader("X-Request-ID", requestID)

		if tokens != nil {
			token, err := tokens.Token()
			if err != nil {
				logger.Debug("No usable token", "method", req.Method, "url", req.URL, "error", err)
				return err
			}
			req.SetAuthToken(token)
		}

		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL, "request_id", requestID)
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response",
			"status", resp.StatusCode(),
			"request_id", resp.Request.Header.Get("X-Request-ID"),
			"elapsed", resp.Time(),
		)

		if resp.StatusCode() == http.StatusUnauthorized {
			if inv, ok := tokens.(invalidator); ok {
				inv.Invalidate()
			}
		}
		return nil
	})

	return c
}
