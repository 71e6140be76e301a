package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/fiscal"
	"github.com/thinkforbl/mcp-socramine/internal/history"
	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// issueQueryFromRequest reads the member/date/filter parameters shared by
// the period tools. The second return value is a ready error reply when
// validation fails.
func issueQueryFromRequest(req mcp.CallToolRequest) (report.IssueQuery, *mcp.CallToolResult) {
	name := req.GetString("name", "")
	if name == "" {
		return report.IssueQuery{}, mcp.NewToolResultError("'name' is required")
	}
	date, err := parseDate(req.GetString("selected_date", ""))
	if err != nil {
		return report.IssueQuery{}, mcp.NewToolResultError(err.Error())
	}
	return report.IssueQuery{
		Name:     name,
		Date:     date,
		Status:   req.GetString("status", "*"),
		Tracker:  req.GetString("tracker_type", ""),
		Priority: req.GetString("priority", ""),
	}, nil
}

// periodParams appends the parameter definitions shared by the period tools.
func periodParams(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name"),
		),
		mcp.WithString("selected_date",
			mcp.Required(),
			mcp.Description("A concrete date in YYYY-MM-DD format; the fiscal week and month are derived from it"),
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

// WeekIssuesTool handles the get_issues_per_week_by_date MCP tool.
type WeekIssuesTool struct {
	reporter *report.Reporter
}

// NewWeekIssuesTool creates a WeekIssuesTool over the given reporter.
func NewWeekIssuesTool(reporter *report.Reporter) *WeekIssuesTool {
	return &WeekIssuesTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *WeekIssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issues_per_week_by_date",
		periodParams(
			mcp.WithDescription(
				"Get all issues assigned to a member for the fiscal week of a given date. "+
					"Pass one concrete date; do NOT pass explicit start or end dates.",
			),
		)...,
	)
}

// Handle processes the get_issues_per_week_by_date tool call.
func (t *WeekIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, errReply := issueQueryFromRequest(req)
	if errReply != nil {
		return errReply, nil
	}

	issues, err := t.reporter.WeekIssues(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(issues)
}

// WeekHoursTool handles the get_hours_per_week_by_date MCP tool.
type WeekHoursTool struct {
	reporter *report.Reporter
	observer RunObserver
}

// NewWeekHoursTool creates a WeekHoursTool. The observer may be nil.
func NewWeekHoursTool(reporter *report.Reporter, observer RunObserver) *WeekHoursTool {
	return &WeekHoursTool{reporter: reporter, observer: observer}
}

// Definition returns the MCP tool definition for registration.
func (t *WeekHoursTool) Definition() mcp.Tool {
	return mcp.NewTool("get_hours_per_week_by_date",
		periodParams(
			mcp.WithDescription(
				"Calculate the total estimated hours of a member's issues for the fiscal week of a given date.",
			),
		)...,
	)
}

// Handle processes the get_hours_per_week_by_date tool call.
func (t *WeekHoursTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, errReply := issueQueryFromRequest(req)
	if errReply != nil {
		return errReply, nil
	}

	hours, err := t.reporter.WeekHours(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	label := fiscal.Resolve(q.Date)
	notifyObserver(t.observer, history.Run{
		Tool:       "get_hours_per_week_by_date",
		Member:     q.Name,
		Year:       q.Date.Year(),
		WeekLabel:  label.Week,
		MonthLabel: label.Month,
		TotalHours: hours,
	})
	return hoursResult(hours), nil
}
