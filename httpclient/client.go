// Package httpclient is the thin HTTP layer between the SDK and the SwiftSend
// REST backend: JSON request/response plumbing, multipart uploads, and a
// transport that attaches the session's bearer token to every request.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// Client issues JSON requests against a single backend base URL.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The caller is
// responsible for wiring a Transport into it when a bearer token is needed.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpc = hc
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// WithLogger sets the request logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New builds a Client for the given base URL. Requests carry the bearer token
// supplied by source; a nil source sends unauthenticated requests.
func New(baseURL string, source TokenSource, options ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[httpclient.New] invalid base URL")
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.Errorf("[httpclient.New] base URL %q must be absolute", baseURL)
	}

	client := &Client{
		baseURL: parsed,
		httpc: &http.Client{
			Timeout:   defaultTimeout,
			Transport: NewTransport(source, nil),
		},
		log: zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Get issues a GET and decodes the JSON body into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with in as the JSON body and decodes into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

// PostIdempotent is Post with an Idempotency-Key header, so a retried
// money-moving request is deduplicated server side instead of executed twice.
func (c *Client) PostIdempotent(ctx context.Context, path, key string, in, out any) error {
	return c.doJSONWithHeader(ctx, http.MethodPost, path, IdempotencyKeyHeader, key, in, out)
}

// Put issues a PUT with in as the JSON body and decodes into out.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

// Patch issues a PATCH with in as the JSON body and decodes into out.
func (c *Client) Patch(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPatch, path, in, out)
}

// Delete issues a DELETE and decodes the JSON body into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	return c.doJSONWithHeader(ctx, method, path, "", "", in, out)
}

func (c *Client) doJSONWithHeader(ctx context.Context, method, path, headerKey, headerValue string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "[Client.doJSONWithHeader] marshal request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if headerKey != "" {
		req.Header.Set(headerKey, headerValue)
	}

	return c.do(req, out)
}

// PostMultipart issues a POST with a multipart form: text fields plus a single
// file part. Used for file-bearing requests like KYC document upload.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return errors.Wrap(err, "[Client.PostMultipart] write field")
		}
	}

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return errors.Wrap(err, "[Client.PostMultipart] create file part")
	}
	if _, err := io.Copy(part, file); err != nil {
		return errors.Wrap(err, "[Client.PostMultipart] copy file")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "[Client.PostMultipart] close writer")
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, out)
}

// Download issues a GET and returns the raw body for streaming responses such
// as transaction exports. The caller must close the reader.
func (c *Client) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Download] request failed")
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, apiErrorFromResponse(resp)
	}
	return resp.Body, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.newRequest] invalid path %q", path)
	}
	// Paths always join under the base path (".../api" + "/auth/login").
	target := c.baseURL.JoinPath(ref.Path)
	target.RawQuery = ref.RawQuery

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.newRequest] build request")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.do] %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode >= 400 {
		return apiErrorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "[Client.do] decode %s %s response", req.Method, req.URL.Path)
	}
	return nil
}

func apiErrorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	// The backend reports failures as {"msg": "..."}; anything else is left
	// as a bare status error.
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil {
		apiErr.Message = body.Msg
	}
	return apiErr
}
