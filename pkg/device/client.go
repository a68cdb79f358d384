// Package device talks to the PrusaLink-style HTTP API of the welding
// machine. The core never imports this package; the generated
// instruction stream reaches the device only through the CLI's send
// command, as an opaque byte sequence.
package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned when the device rejects the credentials.
var ErrUnauthorized = errors.New("device rejected credentials")

// Client is a PrusaLink API client. Authentication uses the API key
// header when a key is configured, falling back to HTTP digest
// credentials otherwise.
type Client struct {
	host     string
	apiKey   string
	username string
	password string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey authenticates with the X-Api-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithDigestAuth authenticates with HTTP digest credentials (the LCD
// username/password pair).
func WithDigestAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a client for the device at host (hostname or IP, no
// scheme).
func New(host string, opts ...Option) *Client {
	c := &Client{
		host: host,
		http: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VersionInfo is the device identification payload.
type VersionInfo struct {
	API      string `json:"api"`
	Server   string `json:"server"`
	Text     string `json:"text"`
	Hostname string `json:"hostname"`
}

// JobStatus describes the currently running job, if any.
type JobStatus struct {
	ID       int     `json:"id"`
	State    string  `json:"state"`
	Progress float64 `json:"progress"`
	File     struct {
		Name string `json:"name"`
	} `json:"file"`
}

// Version probes the device and returns its identification. It doubles
// as a connectivity test.
func (c *Client) Version(ctx context.Context) (VersionInfo, error) {
	var info VersionInfo
	err := c.getJSON(ctx, "/api/version", &info)
	return info, err
}

// Job returns the current job status.
func (c *Client) Job(ctx context.Context) (JobStatus, error) {
	var job JobStatus
	err := c.getJSON(ctx, "/api/v1/job", &job)
	return job, err
}

// Upload stores the instruction stream on the device's USB storage
// under the given name. When autostart is set the device begins the job
// immediately after the upload completes.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader, autostart bool) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read instruction stream: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("http://%s/api/v1/files/usb/%s", c.host, name), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/x.gcode")
	req.Header.Set("Upload-Id", uuid.NewString())
	if autostart {
		req.Header.Set("Print-After-Upload", "1")
	}

	resp, err := c.do(req, data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload of %q failed: %s: %s", name, resp.Status, body)
	}
	return nil
}

// PauseJob pauses the running job.
func (c *Client) PauseJob(ctx context.Context, id int) error {
	return c.simple(ctx, http.MethodPut, fmt.Sprintf("/api/v1/job/%d/pause", id))
}

// ResumeJob resumes a paused job.
func (c *Client) ResumeJob(ctx context.Context, id int) error {
	return c.simple(ctx, http.MethodPut, fmt.Sprintf("/api/v1/job/%d/resume", id))
}

// StopJob stops the running job.
func (c *Client) StopJob(ctx context.Context, id int) error {
	return c.simple(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/job/%d", id))
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+c.host+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) simple(ctx context.Context, method, path string) error {
	req, err := http.NewRequestWithContext(ctx, method, "http://"+c.host+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	return nil
}

// do sends the request with the configured authentication. Digest auth
// needs the challenge from an initial 401, so the request body is
// replayed from the provided copy on the second attempt.
func (c *Client) do(req *http.Request, body []byte) (*http.Response, error) {
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
		return c.http.Do(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("device unreachable: %w", err)
	}
	if resp.StatusCode != http.StatusUnauthorized || c.username == "" {
		return resp, nil
	}

	challenge := resp.Header.Get("WWW-Authenticate")
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	auth, err := digestAuthorization(challenge, c.username, c.password, req.Method, req.URL.RequestURI())
	if err != nil {
		return nil, err
	}

	retry := req.Clone(req.Context())
	if body != nil {
		retry.Body = io.NopCloser(bytes.NewReader(body))
	}
	retry.Header.Set("Authorization", auth)
	return c.http.Do(retry)
}
