package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ageborn-dev/architect-mcp-cli/pkg/logging"
)

// requestTimeout bounds every request against the server. There is no retry
// logic: a request runs to completion or to this deadline.
const requestTimeout = 15 * time.Second

// Client is a REST client for the Architect MCP server. It is constructed
// explicitly once per invocation and passed into command handlers; the
// underlying http.Client is reused across requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client bound to the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// BaseURL returns the server URL the client is bound to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET request against /api/{endpoint} and decodes the response
// body into out. A nil out discards the body.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, params, nil, out)
}

// Post issues a POST request with a JSON-encoded body against /api/{endpoint}.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, nil, body, out)
}

// Delete issues a DELETE request against /api/{endpoint}.
func (c *Client) Delete(ctx context.Context, endpoint string, params url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, endpoint, params, nil, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body, out any) error {
	requestURL := fmt.Sprintf("%s/api/%s", c.baseURL, strings.TrimLeft(endpoint, "/"))
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{
				Kind:    ErrKindTransport,
				Message: fmt.Sprintf("Request failed: cannot encode request body: %v", err),
				Reason:  err,
			}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return &Error{
			Kind:    ErrKindTransport,
			Message: fmt.Sprintf("Request failed: %v", err),
			Reason:  err,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	logging.Debug("API", "%s %s", method, requestURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err, c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return newHTTPError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Kind:    ErrKindInvalidResponse,
			Message: fmt.Sprintf("Invalid response from server: %v", err),
			Reason:  err,
		}
	}
	return nil
}

// errorBody is the shape servers use for error payloads. Either field may be
// present; whichever is non-empty ends up in the message.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// newHTTPError builds an *Error from an HTTP error response, combining the
// status code with any server-supplied error or message field.
func newHTTPError(resp *http.Response) *Error {
	detail := http.StatusText(resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		logging.Error("API", err, "Could not read error response body")
	} else if len(data) > 0 {
		var body errorBody
		if json.Unmarshal(data, &body) == nil {
			if body.Error != "" {
				detail = body.Error
			} else if body.Message != "" {
				detail = body.Message
			}
		}
	}

	return &Error{
		Kind:       ErrKindHTTP,
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("Server returned %d: %s", resp.StatusCode, detail),
	}
}

// ListTools fetches every tool registered on the server.
func (c *Client) ListTools(ctx context.Context) ([]Tool, error) {
	var tools []Tool
	if err := c.Get(ctx, "tools", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// ReloadTools asks the server to re-scan its tool directory.
func (c *Client) ReloadTools(ctx context.Context) (*ReloadSummary, error) {
	var summary ReloadSummary
	if err := c.Post(ctx, "tools/reload", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ToolStats fetches execution stats for all tools, keyed by tool name.
func (c *Client) ToolStats(ctx context.Context) (map[string]ToolStats, error) {
	var stats map[string]ToolStats
	if err := c.Get(ctx, "tools/stats", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// MarketplaceLocal lists the locally cached marketplace entries.
func (c *Client) MarketplaceLocal(ctx context.Context) ([]MarketplaceEntry, error) {
	var entries []MarketplaceEntry
	if err := c.Get(ctx, "marketplace", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MarketplaceRemote queries the remote registry. Empty query or category are
// omitted from the request.
func (c *Client) MarketplaceRemote(ctx context.Context, query, category string) ([]MarketplaceEntry, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}
	if category != "" {
		params.Set("category", category)
	}
	var entries []MarketplaceEntry
	if err := c.Get(ctx, "marketplace/remote", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// InstallTool installs a marketplace entry by id.
func (c *Client) InstallTool(ctx context.Context, id string, overwrite bool) (*InstallResult, error) {
	body := map[string]any{
		"id":        id,
		"overwrite": overwrite,
	}
	var result InstallResult
	if err := c.Post(ctx, "marketplace/install", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Overview fetches the server-wide counter snapshot.
func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var overview Overview
	if err := c.Get(ctx, "overview", nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// AuditLog fetches up to limit audit entries, optionally filtered to a tool.
// Ordering is decided by the server and preserved.
func (c *Client) AuditLog(ctx context.Context, limit int, tool string) ([]AuditEntry, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	if tool != "" {
		params.Set("tool", tool)
	}
	var entries []AuditEntry
	if err := c.Get(ctx, "logs", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CacheStats fetches the server cache summary.
func (c *Client) CacheStats(ctx context.Context) (*CacheStats, error) {
	var stats CacheStats
	if err := c.Get(ctx, "cache/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ClearCache clears cached results, optionally for a single tool.
func (c *Client) ClearCache(ctx context.Context, tool string) (*ClearResult, error) {
	params := url.Values{}
	if tool != "" {
		params.Set("tool", tool)
	}
	var result ClearResult
	if err := c.Delete(ctx, "cache", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Permissions lists approved tool permissions.
func (c *Client) Permissions(ctx context.Context) ([]PermissionRecord, error) {
	var records []PermissionRecord
	if err := c.Get(ctx, "permissions", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Schedules lists configured schedules.
func (c *Client) Schedules(ctx context.Context) ([]ScheduleRecord, error) {
	var records []ScheduleRecord
	if err := c.Get(ctx, "schedules", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Webhooks lists registered webhooks.
func (c *Client) Webhooks(ctx context.Context) ([]WebhookRecord, error) {
	var records []WebhookRecord
	if err := c.Get(ctx, "webhooks", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Pipelines lists configured pipelines.
func (c *Client) Pipelines(ctx context.Context) ([]PipelineRecord, error) {
	var records []PipelineRecord
	if err := c.Get(ctx, "pipelines", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Secrets lists stored secret names and timestamps. Values never appear;
// see SecretRecord.
func (c *Client) Secrets(ctx context.Context) ([]SecretRecord, error) {
	var records []SecretRecord
	if err := c.Get(ctx, "secrets", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}
