package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/fiscal"
	"github.com/thinkforbl/mcp-socramine/internal/history"
	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// compyQueryFromRequest reads the parameters shared by the Compy tools.
// The second return value is a ready error reply when validation fails.
func compyQueryFromRequest(req mcp.CallToolRequest, month bool) (report.CompyQuery, *mcp.CallToolResult) {
	name := req.GetString("name", "")
	if name == "" {
		return report.CompyQuery{}, mcp.NewToolResultError("'name' is required")
	}
	date, err := parseDate(req.GetString("selected_date", ""))
	if err != nil {
		return report.CompyQuery{}, mcp.NewToolResultError(err.Error())
	}
	return report.CompyQuery{
		Name:     name,
		Date:     date,
		Month:    month,
		Status:   req.GetString("status", "*"),
		Priority: req.GetString("priority", ""),
	}, nil
}

// compyParams appends the parameter definitions shared by the Compy tools.
func compyParams(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name"),
		),
		mcp.WithString("selected_date",
			mcp.Required(),
			mcp.Description("A concrete date in YYYY-MM-DD format"),
		),
		mcp.WithString("status",
			mcp.Description("Status filter: a status name, a comma-separated list, or '*' for all. Defaults to '*'."),
			mcp.DefaultString("*"),
		),
		mcp.WithString("priority",
			mcp.Description("Priority filter"),
		),
	)
}

// CompyIssuesTool handles the monthly and yearly Compy issue listing tools.
type CompyIssuesTool struct {
	reporter *report.Reporter
	month    bool
}

// NewMonthCompyIssuesTool lists Compy issues for the fiscal month of a date.
func NewMonthCompyIssuesTool(reporter *report.Reporter) *CompyIssuesTool {
	return &CompyIssuesTool{reporter: reporter, month: true}
}

// NewYearCompyIssuesTool lists Compy issues for the target year of a date.
func NewYearCompyIssuesTool(reporter *report.Reporter) *CompyIssuesTool {
	return &CompyIssuesTool{reporter: reporter, month: false}
}

// Definition returns the MCP tool definition for registration.
func (t *CompyIssuesTool) Definition() mcp.Tool {
	if t.month {
		return mcp.NewTool("get_this_month_compy_issues_by_date",
			compyParams(
				mcp.WithDescription(
					"Get a member's Compy issues for the fiscal month of a given date.",
				),
			)...,
		)
	}
	return mcp.NewTool("get_this_year_compy_issues_by_date",
		compyParams(
			mcp.WithDescription(
				"Get a member's Compy issues for the target year of a given date.",
			),
		)...,
	)
}

// Handle processes a Compy issue listing call.
func (t *CompyIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, errReply := compyQueryFromRequest(req, t.month)
	if errReply != nil {
		return errReply, nil
	}

	issues, err := t.reporter.CompyIssues(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(issues)
}

// CompyHoursTool handles the monthly and yearly Compy hour tools.
type CompyHoursTool struct {
	reporter *report.Reporter
	observer RunObserver
	month    bool
}

// NewMonthCompyHoursTool sums Compy hours for the fiscal month of a date.
// The observer may be nil.
func NewMonthCompyHoursTool(reporter *report.Reporter, observer RunObserver) *CompyHoursTool {
	return &CompyHoursTool{reporter: reporter, observer: observer, month: true}
}

// NewYearCompyHoursTool sums Compy hours for the target year of a date.
// The observer may be nil.
func NewYearCompyHoursTool(reporter *report.Reporter, observer RunObserver) *CompyHoursTool {
	return &CompyHoursTool{reporter: reporter, observer: observer, month: false}
}

func (t *CompyHoursTool) name() string {
	if t.month {
		return "get_this_month_compy_hour_by_date"
	}
	return "get_this_year_compy_hour_by_date"
}

// Definition returns the MCP tool definition for registration.
func (t *CompyHoursTool) Definition() mcp.Tool {
	desc := "Calculate a member's total Compy hours for the target year of a given date."
	if t.month {
		desc = "Calculate a member's total Compy hours for the fiscal month of a given date."
	}
	return mcp.NewTool(t.name(),
		compyParams(mcp.WithDescription(desc))...,
	)
}

// Handle processes a Compy hour call.
func (t *CompyHoursTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, errReply := compyQueryFromRequest(req, t.month)
	if errReply != nil {
		return errReply, nil
	}

	hours, err := t.reporter.CompyHours(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	run := history.Run{
		Tool:       t.name(),
		Member:     q.Name,
		Year:       q.Date.Year(),
		TotalHours: hours,
	}
	if t.month {
		run.MonthLabel = fiscal.Resolve(q.Date).Month
	}
	notifyObserver(t.observer, run)
	return hoursResult(hours), nil
}
