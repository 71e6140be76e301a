package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PerformanceReviewPrompt handles the performance_review MCP prompt.
// It instructs the AI to collect and frame a member's performance numbers.
type PerformanceReviewPrompt struct{}

// NewPerformanceReviewPrompt creates a PerformanceReviewPrompt.
func NewPerformanceReviewPrompt() *PerformanceReviewPrompt {
	return &PerformanceReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *PerformanceReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("performance_review",
		mcp.WithPromptDescription(
			"Review a member's completed work: hours and earned value for the "+
				"current month and year, with a cost performance reading.",
		),
		mcp.WithArgument("name",
			mcp.ArgumentDescription("Member name"),
		),
	)
}

// Handle processes the performance_review prompt request.
func (p *PerformanceReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	name := ""
	if args := req.Params.Arguments; args != nil {
		name = args["name"]
	}

	nameStep := "1. Ask me which member to review\n"
	if name != "" {
		nameStep = fmt.Sprintf("1. The review is for '%s'\n", name)
	}

	return &mcp.GetPromptResult{
		Description: "Performance review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"I want to review a team member's performance.\n\n" +
						"Please:\n" +
						nameStep +
						"2. Run `get_this_month_performance_hour_ev` with the name\n" +
						"3. Run `get_this_year_performance_hour_ev` with the name\n" +
						"4. Run `get_date_time` with format_type='date', then " +
						"`get_all_members_ytd_achievement` with that date to place the member " +
						"among the team\n" +
						"5. Present month and year hours and earned value side by side, name the " +
						"member's CPI from the team table, and flag a CPI below 1.0 as earning " +
						"less value than planned",
				),
			},
		},
	}, nil
}
