package redmine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTimeout  = 120 * time.Second
	defaultPageSize = 100

	// issueIncludes is requested on single-issue fetches so that one call
	// serves the history, relation, and attachment reports.
	issueIncludes = "journals,children,attachments,relations"
)

// Params is the filter set for a list endpoint, before pagination is applied.
// Keys and values follow Redmine's query syntax ("status_id" => "1,5" or "*",
// "cf_41" => a fiscal week label, "child_id" => "!*", ...).
type Params map[string]string

// Config holds the connection settings for a Client.
type Config struct {
	// URL is the Redmine base URL, e.g. "https://redmine.example.com".
	URL string
	// APIKey is sent as the X-Redmine-API-Key header on every request.
	APIKey string
	// Timeout bounds one HTTP request. Zero means 120s.
	Timeout time.Duration
	// PageSize is the list-endpoint page size. Zero means 100.
	PageSize int
}

// Client talks to one Redmine instance. It is safe for concurrent use,
// though the reporting layer only ever issues sequential requests.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	httpc    *http.Client
}

// New creates a Client from the given settings.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response from the Redmine API. The reporting layer
// surfaces it to the caller unchanged; there is no retry.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("redmine: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("redmine: HTTP %d: %s", e.StatusCode, e.Body)
}

// Issues fetches every issue matching the filters, walking the paginated
// endpoint until a short page signals the end.
func (c *Client) Issues(ctx context.Context, params Params) ([]Issue, error) {
	var all []Issue
	for offset := 0; ; offset += c.pageSize {
		var page struct {
			Issues []Issue `json:"issues"`
		}
		if err := c.get(ctx, "/issues.json", paged(params, c.pageSize, offset), &page); err != nil {
			return nil, err
		}
		all = append(all, page.Issues...)
		if len(page.Issues) < c.pageSize {
			return all, nil
		}
	}
}

// Users fetches every user matching the filters. Pass Params{"status": "1"}
// to restrict the listing to active accounts.
func (c *Client) Users(ctx context.Context, params Params) ([]User, error) {
	var all []User
	for offset := 0; ; offset += c.pageSize {
		var page struct {
			Users []User `json:"users"`
		}
		if err := c.get(ctx, "/users.json", paged(params, c.pageSize, offset), &page); err != nil {
			return nil, err
		}
		all = append(all, page.Users...)
		if len(page.Users) < c.pageSize {
			return all, nil
		}
	}
}

// Projects fetches every project visible to the API key.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var all []Project
	for offset := 0; ; offset += c.pageSize {
		var page struct {
			Projects []Project `json:"projects"`
		}
		if err := c.get(ctx, "/projects.json", paged(nil, c.pageSize, offset), &page); err != nil {
			return nil, err
		}
		all = append(all, page.Projects...)
		if len(page.Projects) < c.pageSize {
			return all, nil
		}
	}
}

// Issue fetches a single issue with journals, children, attachments, and
// relations included.
func (c *Client) Issue(ctx context.Context, id int) (*Issue, error) {
	q := url.Values{}
	q.Set("include", issueIncludes)

	var envelope struct {
		Issue *Issue `json:"issue"`
	}
	if err := c.get(ctx, fmt.Sprintf("/issues/%d.json", id), q, &envelope); err != nil {
		return nil, err
	}
	if envelope.Issue == nil {
		return nil, fmt.Errorf("redmine: issue %d missing from response", id)
	}
	return envelope.Issue, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("redmine: build request for %s: %w", path, err)
	}
	req.Header.Set("X-Redmine-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("redmine: GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("redmine: decode %s response: %w", path, err)
	}
	return nil
}

func paged(params Params, limit, offset int) url.Values {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}
