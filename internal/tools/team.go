package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/report"
)

// TeamPlanTool handles the all-members weekly and monthly plan tools.
type TeamPlanTool struct {
	reporter *report.Reporter
	weekly   bool
}

// NewTeamWeeklyPlanTool aggregates every active member's plan for the fiscal
// week of a date.
func NewTeamWeeklyPlanTool(reporter *report.Reporter) *TeamPlanTool {
	return &TeamPlanTool{reporter: reporter, weekly: true}
}

// NewTeamMonthlyPlanTool aggregates every active member's plan for the fiscal
// month of a date.
func NewTeamMonthlyPlanTool(reporter *report.Reporter) *TeamPlanTool {
	return &TeamPlanTool{reporter: reporter, weekly: false}
}

// Definition returns the MCP tool definition for registration.
func (t *TeamPlanTool) Definition() mcp.Tool {
	name := "get_all_members_monthly_plan"
	desc := "Get every active member's planned hours and PV for the fiscal month of a given date, " +
		"split into agreed and unagreed shares."
	if t.weekly {
		name = "get_all_members_weekly_plan"
		desc = "Get every active member's planned hours and PV for the fiscal week of a given date, " +
			"split into agreed and unagreed shares."
	}
	return mcp.NewTool(name,
		mcp.WithDescription(desc),
		mcp.WithString("selected_date",
			mcp.Required(),
			mcp.Description("A concrete date in YYYY-MM-DD format"),
		),
		mcp.WithBoolean("include_unagreed",
			mcp.Description("Count issues whose agreement notes are still open into the totals. Defaults to true."),
			mcp.DefaultBool(true),
		),
	)
}

// Handle processes an all-members plan call.
func (t *TeamPlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDate(req.GetString("selected_date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeUnagreed := boolArg(req, "include_unagreed", true)

	var plans []report.MemberPlan
	if t.weekly {
		plans, err = t.reporter.TeamWeeklyPlan(ctx, date, includeUnagreed)
	} else {
		plans, err = t.reporter.TeamMonthlyPlan(ctx, date, includeUnagreed)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(plans) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(plans)
}

// TeamAchievementTool handles the all-members weekly and monthly achievement
// tools.
type TeamAchievementTool struct {
	reporter *report.Reporter
	weekly   bool
}

// NewTeamWeeklyAchievementTool aggregates every active member's achievement
// for the fiscal week of a date.
func NewTeamWeeklyAchievementTool(reporter *report.Reporter) *TeamAchievementTool {
	return &TeamAchievementTool{reporter: reporter, weekly: true}
}

// NewTeamMonthlyAchievementTool aggregates every active member's achievement
// for the fiscal month of a date.
func NewTeamMonthlyAchievementTool(reporter *report.Reporter) *TeamAchievementTool {
	return &TeamAchievementTool{reporter: reporter, weekly: false}
}

// Definition returns the MCP tool definition for registration.
func (t *TeamAchievementTool) Definition() mcp.Tool {
	name := "get_all_members_monthly_achievement"
	desc := "Get every active member's hours, PV, EV and CPI for the fiscal month of a given date."
	if t.weekly {
		name = "get_all_members_weekly_achievement"
		desc = "Get every active member's hours, PV, EV and CPI for the fiscal week of a given date."
	}
	return mcp.NewTool(name,
		mcp.WithDescription(desc),
		mcp.WithString("selected_date",
			mcp.Required(),
			mcp.Description("A concrete date in YYYY-MM-DD format"),
		),
		mcp.WithString("status",
			mcp.Description("Status filter: a status name, a comma-separated list, or '*' for all. Defaults to '*'."),
			mcp.DefaultString("*"),
		),
	)
}

// Handle processes an all-members achievement call.
func (t *TeamAchievementTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDate(req.GetString("selected_date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	status := req.GetString("status", "*")

	var rows []report.MemberAchievement
	if t.weekly {
		rows, err = t.reporter.TeamWeeklyAchievement(ctx, date, status)
	} else {
		rows, err = t.reporter.TeamMonthlyAchievement(ctx, date, status)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(rows)
}

// TeamYTDTool handles the get_all_members_ytd_achievement MCP tool.
type TeamYTDTool struct {
	reporter *report.Reporter
}

// NewTeamYTDTool creates a TeamYTDTool over the given reporter.
func NewTeamYTDTool(reporter *report.Reporter) *TeamYTDTool {
	return &TeamYTDTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *TeamYTDTool) Definition() mcp.Tool {
	return mcp.NewTool("get_all_members_ytd_achievement",
		mcp.WithDescription(
			"Get every active member's year-to-date hours, PV, EV and CPI, measured against "+
				"the cumulative 40-hour-week target accrued through the given date.",
		),
		mcp.WithString("current_date",
			mcp.Required(),
			mcp.Description("Today's date in YYYY-MM-DD format; sets the target year and the accrued target"),
		),
		mcp.WithString("status",
			mcp.Description("Status filter: a status name, a comma-separated list, or '*' for all. Defaults to '*'."),
			mcp.DefaultString("*"),
		),
	)
}

// Handle processes the get_all_members_ytd_achievement tool call.
func (t *TeamYTDTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDate(req.GetString("current_date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := t.reporter.TeamYTDAchievement(ctx, date, req.GetString("status", "*"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(rows)
}

// ThresholdTool handles the get_members_below_weekly_achievement_threshold
// MCP tool.
type ThresholdTool struct {
	reporter *report.Reporter
}

// NewThresholdTool creates a ThresholdTool over the given reporter.
func NewThresholdTool(reporter *report.Reporter) *ThresholdTool {
	return &ThresholdTool{reporter: reporter}
}

// Definition returns the MCP tool definition for registration.
func (t *ThresholdTool) Definition() mcp.Tool {
	return mcp.NewTool("get_members_below_weekly_achievement_threshold",
		mcp.WithDescription(
			"List the members whose hours for the fiscal week of a given date fall strictly "+
				"below the threshold, lowest first, each with the shortfall.",
		),
		mcp.WithString("selected_date",
			mcp.Required(),
			mcp.Description("A concrete date in YYYY-MM-DD format"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Weekly hour threshold. Defaults to 40."),
			mcp.DefaultNumber(40),
		),
		mcp.WithString("status",
			mcp.Description("Status filter: a status name, a comma-separated list, or '*' for all. Defaults to '*'."),
			mcp.DefaultString("*"),
		),
	)
}

// Handle processes a below-threshold call.
func (t *ThresholdTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDate(req.GetString("selected_date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	threshold := floatArg(req, "threshold", 40)

	rows, err := t.reporter.BelowWeeklyThreshold(ctx, date, threshold, req.GetString("status", "*"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(rows) == 0 {
		return mcp.NewToolResultText(noData), nil
	}
	return jsonResult(rows)
}
