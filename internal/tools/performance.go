package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/history"
	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// PerformanceTool handles the monthly and yearly performance tools. Both
// report completed work only: closed issues due in the period, approved,
// with no baseline marker and no children.
type PerformanceTool struct {
	reporter *report.Reporter
	observer RunObserver
	period   string
}

// NewMonthPerformanceTool reports performance for the current month.
// The observer may be nil.
func NewMonthPerformanceTool(reporter *report.Reporter, observer RunObserver) *PerformanceTool {
	return &PerformanceTool{reporter: reporter, observer: observer, period: report.PeriodMonth}
}

// NewYearPerformanceTool reports performance for the current year.
// The observer may be nil.
func NewYearPerformanceTool(reporter *report.Reporter, observer RunObserver) *PerformanceTool {
	return &PerformanceTool{reporter: reporter, observer: observer, period: report.PeriodYear}
}

func (t *PerformanceTool) name() string {
	if t.period == report.PeriodMonth {
		return "get_this_month_performance_hour_ev"
	}
	return "get_this_year_performance_hour_ev"
}

// Definition returns the MCP tool definition for registration.
func (t *PerformanceTool) Definition() mcp.Tool {
	desc := "Get a member's completed hours and earned value for the current year."
	if t.period == report.PeriodMonth {
		desc = "Get a member's completed hours and earned value for the current month."
	}
	return mcp.NewTool(t.name(),
		mcp.WithDescription(desc),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name"),
		),
	)
}

// Handle processes a performance tool call.
func (t *PerformanceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	perf, err := t.reporter.Performance(ctx, name, t.period)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	notifyObserver(t.observer, history.Run{
		Tool:       t.name(),
		Member:     name,
		Year:       timeNow().In(seoul).Year(),
		TotalHours: perf.TotalHours,
		TotalEV:    perf.TotalEV,
	})
	return jsonResult(perf)
}
