package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// seoul is the fixed UTC+9 zone used for every timestamp reply.
var seoul = time.FixedZone("KST", 9*60*60)

// DateTimeTool handles the get_date_time MCP tool.
type DateTimeTool struct{}

// NewDateTimeTool creates a DateTimeTool.
func NewDateTimeTool() *DateTimeTool {
	return &DateTimeTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DateTimeTool) Definition() mcp.Tool {
	return mcp.NewTool("get_date_time",
		mcp.WithDescription(
			"Get the current date and/or time in Seoul (UTC+9). "+
				"This is a pure date/time helper and never answers project questions; "+
				"use it to anchor relative ranges before calling the reporting tools.",
		),
		mcp.WithString("format_type",
			mcp.Description("Format of the returned time: 'datetime' (YYYY-MM-DD HH:MM:SS), 'date' (YYYY-MM-DD), 'time' (HH:MM:SS), or 'iso' (with +09:00 offset)."),
			mcp.DefaultString("datetime"),
			mcp.Enum("datetime", "date", "time", "iso"),
		),
	)
}

// Handle processes the get_date_time tool call.
func (t *DateTimeTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := timeNow().In(seoul)

	var out string
	switch req.GetString("format_type", "datetime") {
	case "date":
		out = now.Format("2006-01-02")
	case "time":
		out = now.Format("15:04:05")
	case "iso":
		out = now.Format("2006-01-02T15:04:05-07:00")
	default:
		out = now.Format("2006-01-02 15:04:05")
	}
	return mcp.NewToolResultText(out), nil
}
