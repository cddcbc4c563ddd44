// Package api implements the HTTP client for the agent-supervision backend.
//
// All responses are JSON except the log export, which is an opaque blob with
// an optional content-disposition filename. Non-success responses carrying a
// JSON body with an "error" string surface that string verbatim; anything
// else becomes a generic "Request failed (status)" error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agusx1211/agentwatch/internal/debug"
)

// Client talks to one backend instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type errorResponse struct {
	Error string `json:"error"`
}

// New returns a Client for the given base URL with a sane default timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Agents fetches the flat agent listing. A missing "agents" field is an
// empty listing, not an error.
func (c *Client) Agents(ctx context.Context) ([]Agent, error) {
	var out struct {
		Agents []Agent `json:"agents"`
	}
	if err := c.getJSON(ctx, "/api/agents", &out); err != nil {
		return nil, err
	}
	return out.Agents, nil
}

// Context fetches the transcript snapshot for one agent. Returns nil when
// the backend has no snapshot yet.
func (c *Client) Context(ctx context.Context, agentID string, includeSystem bool) (*Snapshot, error) {
	path := fmt.Sprintf("/api/agents/%s/context?include_system=%s",
		url.PathEscape(agentID), flag(includeSystem))
	var out struct {
		Snapshot *Snapshot `json:"snapshot"`
	}
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Snapshot, nil
}

// Events fetches events after the query cursor, scoped to one agent. The
// backend returns them ascending by (ts, id); the client does not re-sort.
func (c *Client) Events(ctx context.Context, q EventQuery) ([]Event, error) {
	params := url.Values{}
	params.Set("since", strconv.FormatInt(q.SinceTS, 10))
	params.Set("since_id", strconv.FormatInt(q.SinceID, 10))
	params.Set("agent_id", q.AgentID)
	params.Set("debug", flag(q.Debug))
	var out struct {
		Events []Event `json:"events"`
	}
	if err := c.getJSON(ctx, "/api/events?"+params.Encode(), &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// Chat fetches the supervising session state and full message list.
func (c *Client) Chat(ctx context.Context) (*ChatState, error) {
	var out ChatState
	if err := c.getJSON(ctx, "/api/chat", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage submits a user chat message. Only the acknowledgement status
// matters; the reply arrives through subsequent Chat polls.
func (c *Client) SendMessage(ctx context.Context, message string) error {
	return c.postJSON(ctx, "/api/chat", map[string]string{"message": message})
}

// StopRun asks the backend to interrupt the in-progress chat turn.
func (c *Client) StopRun(ctx context.Context) error {
	return c.postJSON(ctx, "/api/chat/stop", nil)
}

// Export fetches the full log export blob. The returned filename is the
// server-suggested one from the content-disposition header, or "" when the
// header is absent or carries no quoted filename.
func (c *Client) Export(ctx context.Context, includeSystem, debugEvents bool) ([]byte, string, error) {
	path := fmt.Sprintf("/api/export/full_logs?include_system=%s&debug=%s",
		flag(includeSystem), flag(debugEvents))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", responseError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading export: %w", err)
	}
	return data, FilenameFromDisposition(resp.Header.Get("Content-Disposition")), nil
}

// FilenameFromDisposition extracts a quoted filename from a
// content-disposition-style header value, or "" when none is present.
func FilenameFromDisposition(header string) string {
	lower := strings.ToLower(header)
	idx := strings.Index(lower, `filename="`)
	if idx < 0 {
		return ""
	}
	rest := header[idx+len(`filename="`):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return ""
	}
	return rest[:end]
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) error {
	payload := []byte("{}")
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = data
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		debug.Logf("api", "%s %s failed: %v", req.Method, req.URL.Path, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	// Malformed bodies on success degrade to zero values, not errors.
	if err := json.Unmarshal(data, out); err != nil {
		debug.Logf("api", "%s: unparsable response body (%d bytes)", req.URL.Path, len(data))
	}
	return nil
}

// responseError converts a non-success response into the user-facing error:
// the backend's "error" string verbatim when present, otherwise a generic
// message carrying the status code.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
	if len(body) > 0 {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && strings.TrimSpace(apiErr.Error) != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
	}
	return fmt.Errorf("Request failed (%d)", resp.StatusCode)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return c.HTTPClient
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
