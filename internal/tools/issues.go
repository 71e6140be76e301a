package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// IssuesTool handles the get_issues MCP tool.
type IssuesTool struct {
	reporter *report.Reporter
}

// NewIssuesTool creates an IssuesTool over the given reporter.
func NewIssuesTool(reporter *report.Reporter) *IssuesTool {
	return &IssuesTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *IssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issues",
		mcp.WithDescription(
			"Get issues assigned to a member for the current target year, optionally narrowed "+
				"by project and by date ranges. Date filters accept Redmine operators such as "+
				"'>=2025-01-01' and are passed through as-is.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name"),
		),
		mcp.WithString("project",
			mcp.Description("Project name or identifier"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date filter, passed to Redmine verbatim"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date filter, passed to Redmine verbatim"),
		),
		mcp.WithString("status",
			mcp.Description("Status filter: a status name, a comma-separated list, or '*' for all. Defaults to '*'."),
			mcp.DefaultString("*"),
		),
		mcp.WithString("tracker_type",
			mcp.Description("Tracker type filter"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority filter"),
		),
	)
}

// Handle processes the get_issues tool call.
func (t *IssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	q := report.GeneralQuery{
		Name:      name,
		Year:      timeNow().In(seoul).Year(),
		Project:   req.GetString("project", ""),
		StartDate: req.GetString("start_date", ""),
		DueDate:   req.GetString("due_date", ""),
		Status:    req.GetString("status", "*"),
		Tracker:   req.GetString("tracker_type", ""),
		Priority:  req.GetString("priority", ""),
	}

	issues, err := t.reporter.Issues(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(issues)
}
