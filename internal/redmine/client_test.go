package redmine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIssuesPagination(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/issues.json" {
			t.Errorf("path = %s, want /issues.json", r.URL.Path)
		}
		if got := r.Header.Get("X-Redmine-API-Key"); got != "secret" {
			t.Errorf("api key header = %q, want %q", got, "secret")
		}
		if got := r.URL.Query().Get("assigned_to_id"); got != "7" {
			t.Errorf("assigned_to_id = %q, want 7", got)
		}
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"issues":[{"id":1},{"id":2}]}`)
		case "2":
			fmt.Fprint(w, `{"issues":[{"id":3}]}`)
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
			fmt.Fprint(w, `{"issues":[]}`)
		}
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, APIKey: "secret", PageSize: 2})
	issues, err := c.Issues(context.Background(), Params{"assigned_to_id": "7"})
	if err != nil {
		t.Fatalf("Issues: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("len(issues) = %d, want 3", len(issues))
	}
	if issues[2].ID != 3 {
		t.Errorf("issues[2].ID = %d, want 3", issues[2].ID)
	}
	// A full first page forces exactly one follow-up request.
	if requests != 2 {
		t.Errorf("requests = %d, want 2", requests)
	}
}

func TestIssuesShortFirstPageStops(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"issues":[{"id":1}]}`)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, PageSize: 100})
	issues, err := c.Issues(context.Background(), nil)
	if err != nil {
		t.Fatalf("Issues: %v", err)
	}
	if len(issues) != 1 || requests != 1 {
		t.Errorf("len(issues) = %d, requests = %d; want 1 and 1", len(issues), requests)
	}
}

func TestIssuesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	_, err := c.Issues(context.Background(), nil)
	if err == nil {
		t.Fatal("Issues returned nil error for 401 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not an *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusUnauthorized)
	}
	if apiErr.Body != "Unauthorized" {
		t.Errorf("Body = %q, want %q", apiErr.Body, "Unauthorized")
	}
}

func TestIssueFetchesIncludes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/issues/42.json" {
			t.Errorf("path = %s, want /issues/42.json", r.URL.Path)
		}
		if got := r.URL.Query().Get("include"); got != issueIncludes {
			t.Errorf("include = %q, want %q", got, issueIncludes)
		}
		fmt.Fprint(w, `{"issue":{
			"id":42,
			"subject":"release checklist",
			"journals":[{
				"id":9,
				"user":{"id":3,"name":"김민수"},
				"notes":"replanned",
				"created_on":"2025-08-12T03:04:05Z",
				"details":[{"property":"attr","name":"estimated_hours","old_value":"8","new_value":"16"}]
			}],
			"children":[{"id":43,"subject":"subtask"}]
		}}`)
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL})
	issue, err := c.Issue(context.Background(), 42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(issue.Journals) != 1 || len(issue.Journals[0].Details) != 1 {
		t.Fatalf("journals = %+v, want one entry with one detail", issue.Journals)
	}
	detail := issue.Journals[0].Details[0]
	if detail.Name != "estimated_hours" || detail.OldValue.String() != "8" || detail.NewValue.String() != "16" {
		t.Errorf("detail = %+v, want estimated_hours 8 -> 16", detail)
	}
	if len(issue.Children) != 1 || issue.Children[0].ID != 43 {
		t.Errorf("children = %+v, want one child with id 43", issue.Children)
	}
}

func TestProjectsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprint(w, `{"projects":[{"id":1,"name":"Atlas","identifier":"atlas"},{"id":2,"name":"Borealis","identifier":"borealis"}]}`)
		default:
			fmt.Fprint(w, `{"projects":[]}`)
		}
	}))
	defer srv.Close()

	c := New(Config{URL: srv.URL, PageSize: 2})
	projects, err := c.Projects(context.Background())
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	if len(projects) != 2 || projects[1].Identifier != "borealis" {
		t.Errorf("projects = %+v, want two entries ending with borealis", projects)
	}
}
