package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/history"
)

// ReportHistoryTool handles the get_report_history MCP tool. It is only
// registered when the history store opened successfully.
type ReportHistoryTool struct {
	store *history.Store
}

// NewReportHistoryTool creates a ReportHistoryTool over the given store.
func NewReportHistoryTool(store *history.Store) *ReportHistoryTool {
	return &ReportHistoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ReportHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_report_history",
		mcp.WithDescription(
			"Get the most recent recorded report runs: which hour and performance tools ran, "+
				"for whom, and the totals they produced.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs to return. Defaults to 10."),
			mcp.DefaultNumber(10),
		),
	)
}

// Handle processes the get_report_history tool call.
func (t *ReportHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runs, err := t.store.Recent(intArg(req, "limit", 10))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(runs)
}
