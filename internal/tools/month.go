package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/fiscal"
	"github.com/thinkforbl/mcp-socramine/internal/history"
	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// MonthIssuesTool handles the get_issues_per_month_by_date MCP tool.
type MonthIssuesTool struct {
	reporter *report.Reporter
}

// NewMonthIssuesTool creates a MonthIssuesTool over the given reporter.
func NewMonthIssuesTool(reporter *report.Reporter) *MonthIssuesTool {
	return &MonthIssuesTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *MonthIssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issues_per_month_by_date",
		periodParams(
			mcp.WithDescription(
				"Get all issues assigned to a member for the fiscal month of a given date. "+
					"Pass one concrete date; do NOT pass explicit start or end dates.",
			),
		)...,
	)
}

// Handle processes the get_issues_per_month_by_date tool call.
func (t *MonthIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, errReply := issueQueryFromRequest(req)
	if errReply != nil {
		return errReply, nil
	}

	issues, err := t.reporter.MonthIssues(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(issues)
}

// MonthHoursTool handles the get_hours_per_month_by_date MCP tool.
type MonthHoursTool struct {
	reporter *report.Reporter
	observer RunObserver
}

// NewMonthHoursTool creates a MonthHoursTool. The observer may be nil.
func NewMonthHoursTool(reporter *report.Reporter, observer RunObserver) *MonthHoursTool {
	return &MonthHoursTool{reporter: reporter, observer: observer}
}

// Definition returns the MCP tool definition for registration.
func (t *MonthHoursTool) Definition() mcp.Tool {
	return mcp.NewTool("get_hours_per_month_by_date",
		periodParams(
			mcp.WithDescription(
				"Calculate the total estimated hours of a member's issues for the fiscal month of a given date.",
			),
		)...,
	)
}

// Handle processes the get_hours_per_month_by_date tool call.
func (t *MonthHoursTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, errReply := issueQueryFromRequest(req)
	if errReply != nil {
		return errReply, nil
	}

	hours, err := t.reporter.MonthHours(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	label := fiscal.Resolve(q.Date)
	notifyObserver(t.observer, history.Run{
		Tool:       "get_hours_per_month_by_date",
		Member:     q.Name,
		Year:       q.Date.Year(),
		MonthLabel: label.Month,
		TotalHours: hours,
	})
	return hoursResult(hours), nil
}
