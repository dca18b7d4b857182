package gitbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/elnormous/contenttype"
)

// DefaultBaseURL is the public GitBook API root.
const DefaultBaseURL = "https://api.gitbook.com/v1"

// DefaultUserAgent is sent when no WithUserAgent option is supplied.
const DefaultUserAgent = "gitbook-mcp"

var jsonMediaType = contenttype.NewMediaType("application/json")

// Client issues authenticated requests against the GitBook API. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger overrides the logger. Requests are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New constructs a Client authenticating with the given API token.
func New(token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		userAgent:  DefaultUserAgent,
		httpClient: http.DefaultClient,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are issued against.
func (c *Client) BaseURL() string { return c.baseURL }

// do issues one request. body is JSON-encoded when non-nil and query is
// appended only when it encodes to a non-empty string.
//
// On success the response is decoded into out according to its media type:
//   - out == nil: the body is discarded
//   - out is *string: the raw body is stored
//   - JSON media type: decoded into out with UseNumber; an empty body leaves out untouched
//   - anything else: *UnexpectedContentError carrying the raw body
func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, out any) error {
	endpoint := method + " " + path

	u := c.baseURL + path
	if enc := query.Encode(); enc != "" {
		u += "?" + enc
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gitbook: encode %s body: %w", endpoint, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("gitbook: build %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", jsonMediaType.String())
	req.Header.Set("Accept", jsonMediaType.String())
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	log := c.log.With(slog.String("method", method), slog.String("path", path))

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.DebugContext(ctx, "gitbook.request.fail", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.String("err", err.Error()))
		return err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		log.DebugContext(ctx, "gitbook.request.fail", slog.Int64("dur_ms", time.Since(start).Milliseconds()), slog.String("err", err.Error()))
		return fmt.Errorf("gitbook: read %s response: %w", endpoint, err)
	}

	log = log.With(slog.Int("status", res.StatusCode), slog.Int64("dur_ms", time.Since(start).Milliseconds()))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		log.DebugContext(ctx, "gitbook.request.fail")
		return &APIError{
			StatusCode: res.StatusCode,
			Status:     statusText(res),
			Body:       string(data),
			Endpoint:   endpoint,
		}
	}
	log.DebugContext(ctx, "gitbook.request.ok")

	if out == nil {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}

	ctype := res.Header.Get("Content-Type")
	if !isJSONMediaType(ctype) {
		return &UnexpectedContentError{Endpoint: endpoint, ContentType: ctype, Body: string(data)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := decodeJSON(data, out); err != nil {
		return fmt.Errorf("gitbook: decode %s response: %w", endpoint, err)
	}
	return nil
}

func isJSONMediaType(ctype string) bool {
	if ctype == "" {
		return false
	}
	mt, err := contenttype.ParseMediaType(ctype)
	if err != nil {
		return false
	}
	return mt.Subtype == "json" || strings.HasSuffix(mt.Subtype, "+json")
}

// statusText returns the reason phrase without the leading status code.
func statusText(res *http.Response) string {
	if s, ok := strings.CutPrefix(res.Status, strconv.Itoa(res.StatusCode)+" "); ok && s != "" {
		return s
	}
	return http.StatusText(res.StatusCode)
}

func decodeJSON(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(out)
}
