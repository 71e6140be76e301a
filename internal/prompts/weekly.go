// Package prompts implements the MCP prompt handlers for the Socramine
// server.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific report sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// WeeklyReportPrompt handles the weekly_report MCP prompt.
// It guides the AI through assembling a member's weekly report.
type WeeklyReportPrompt struct{}

// NewWeeklyReportPrompt creates a WeeklyReportPrompt.
func NewWeeklyReportPrompt() *WeeklyReportPrompt {
	return &WeeklyReportPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *WeeklyReportPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("weekly_report",
		mcp.WithPromptDescription(
			"Build a member's weekly report: the issues of the fiscal week, "+
				"total estimated hours, and how the hours compare to the 40-hour week.",
		),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Member name"),
		),
		mcp.WithArgument("selected_date",
			mcp.ArgumentDescription("A date inside the week to report on, YYYY-MM-DD. Default: today"),
		),
	)
}

// Handle processes the weekly_report prompt request.
func (p *WeeklyReportPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := ""
	date := ""
	if args := req.Params.Arguments; args != nil {
		name = args["name"]
		date = args["selected_date"]
	}

	nameStep := "1. Ask me which member the report is for\n"
	if name != "" {
		nameStep = fmt.Sprintf("1. The report is for '%s'\n", name)
	}
	dateStep := "2. Run `get_date_time` with format_type='date' to get today's date and use it as selected_date\n"
	if date != "" {
		dateStep = fmt.Sprintf("2. Use '%s' as selected_date\n", date)
	}

	return &mcp.GetPromptResult{
		Description: "Weekly report",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want a weekly report for a team member.\n\n" +
						"Please:\n" +
						nameStep +
						dateStep +
						"3. Run `get_issues_per_week_by_date` with the name and selected_date\n" +
						"4. Run `get_hours_per_week_by_date` with the same arguments\n" +
						"5. Summarize the issues grouped by status, state the total hours, and " +
						"say how far above or below the 40-hour week the plan sits\n" +
						"6. Point out issues without a due date or without estimated hours",
				),
			},
		},
	}, nil
}
