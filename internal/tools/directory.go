package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// UsersTool handles the get_all_users MCP tool.
type UsersTool struct {
	reporter *report.Reporter
}

// NewUsersTool creates a UsersTool over the given reporter.
func NewUsersTool(reporter *report.Reporter) *UsersTool {
	return &UsersTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *UsersTool) Definition() mcp.Tool {
	return mcp.NewTool("get_all_users",
		mcp.WithDescription("Get every Redmine user with their id, login and display name."),
	)
}

// Handle processes the get_all_users tool call.
func (t *UsersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	members, err := t.reporter.Members(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(members) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(members)
}

// ProjectsTool handles the get_all_projects MCP tool.
type ProjectsTool struct {
	reporter *report.Reporter
}

// NewProjectsTool creates a ProjectsTool over the given reporter.
func NewProjectsTool(reporter *report.Reporter) *ProjectsTool {
	return &ProjectsTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *ProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_all_projects",
		mcp.WithDescription("Get every Redmine project with its id, identifier and name."),
	)
}

// Handle processes the get_all_projects tool call.
func (t *ProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.reporter.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(projects) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(projects)
}
