package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// IssueHistoryTool handles the get_issue_history MCP tool.
type IssueHistoryTool struct {
	reporter *report.Reporter
}

// NewIssueHistoryTool creates an IssueHistoryTool over the given reporter.
func NewIssueHistoryTool(reporter *report.Reporter) *IssueHistoryTool {
	return &IssueHistoryTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *IssueHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issue_history",
		mcp.WithDescription(
			"Get an issue's journal: notes and field changes with who made them and when.",
		),
		mcp.WithNumber("issue_id",
			mcp.Required(),
			mcp.Description("Issue id"),
		),
	)
}

// Handle processes the get_issue_history tool call.
func (t *IssueHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "issue_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'issue_id' is required"), nil
	}

	entries, err := t.reporter.IssueHistory(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(entries)
}

// IssueLinksTool handles the get_issue_relations MCP tool.
type IssueLinksTool struct {
	reporter *report.Reporter
}

// NewIssueLinksTool creates an IssueLinksTool over the given reporter.
func NewIssueLinksTool(reporter *report.Reporter) *IssueLinksTool {
	return &IssueLinksTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *IssueLinksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_issue_relations",
		mcp.WithDescription(
			"Get an issue's parent, relations, children and attachments.",
		),
		mcp.WithNumber("issue_id",
			mcp.Required(),
			mcp.Description("Issue id"),
		),
	)
}

// Handle processes the get_issue_relations tool call.
func (t *IssueLinksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := intArg(req, "issue_id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("'issue_id' is required"), nil
	}

	links, err := t.reporter.IssueLinks(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(links)
}

// PlanChangesTool handles the get_plan_change_violations MCP tool.
type PlanChangesTool struct {
	reporter *report.Reporter
}

// NewPlanChangesTool creates a PlanChangesTool over the given reporter.
func NewPlanChangesTool(reporter *report.Reporter) *PlanChangesTool {
	return &PlanChangesTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanChangesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_plan_change_violations",
		mcp.WithDescription(
			"List plan field changes made after work started, for a member's issues in the "+
				"fiscal week of a given date. Flags edits to estimated hours, start or due "+
				"dates, PV, and the sprint assignments.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Member name"),
		),
		mcp.WithString("selected_date",
			mcp.Required(),
			mcp.Description("A concrete date in YYYY-MM-DD format; picks the fiscal week to inspect"),
		),
	)
}

// Handle processes the get_plan_change_violations tool call.
func (t *PlanChangesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	date, err := parseDate(req.GetString("selected_date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	changes, err := t.reporter.PlanChanges(ctx, name, date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(changes) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(changes)
}
