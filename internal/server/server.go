// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the Redmine client, the report
// layer, and the optional run-history store, and injects them into the
// tools, prompts, and resources. No business logic lives here — only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/thinkforbl/mcp-socramine/internal/config"
	"github.com/thinkforbl/mcp-socramine/internal/history"
	"github.com/thinkforbl/mcp-socramine/internal/prompts"
	"github.com/thinkforbl/mcp-socramine/internal/redmine"
	"github.com/thinkforbl/mcp-socramine/internal/report"
	"github.com/thinkforbl/mcp-socramine/internal/resources"
	"github.com/thinkforbl/mcp-socramine/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the history store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if history init failed.
func New(settings *config.Settings, log *zap.Logger) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	client := redmine.New(redmine.Config{
		URL:      settings.Redmine.URL,
		APIKey:   settings.Redmine.APIKey,
		Timeout:  settings.Redmine.Timeout(),
		PageSize: settings.Redmine.PageSize,
	})
	reporter := report.New(client, settings.Dictionaries)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"socramine",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Open the run-history store ---
	//
	// History is an independent subsystem: if it fails to open, the report
	// tools continue working. We log a warning and skip the history tool;
	// the observer stays nil and the hour tools simply record nothing.

	cleanup := noop
	var observer tools.RunObserver
	if settings.History.Disabled {
		log.Info("run history disabled by configuration")
	} else if store, err := history.New(history.Config{Path: settings.History.Path}); err != nil {
		log.Warn("run history disabled", zap.Error(err))
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Warn("history store close", zap.Error(err))
			}
		}
		observer = tools.NewHistoryBridge(store, log)

		historyTool := tools.NewReportHistoryTool(store)
		s.AddTool(historyTool.Definition(), historyTool.Handle)
	}

	// --- Register the date helper ---

	dateTimeTool := tools.NewDateTimeTool()
	s.AddTool(dateTimeTool.Definition(), dateTimeTool.Handle)

	// --- Register single-member report tools ---

	weekIssues := tools.NewWeekIssuesTool(reporter)
	s.AddTool(weekIssues.Definition(), weekIssues.Handle)

	weekHours := tools.NewWeekHoursTool(reporter, observer)
	s.AddTool(weekHours.Definition(), weekHours.Handle)

	monthIssues := tools.NewMonthIssuesTool(reporter)
	s.AddTool(monthIssues.Definition(), monthIssues.Handle)

	monthHours := tools.NewMonthHoursTool(reporter, observer)
	s.AddTool(monthHours.Definition(), monthHours.Handle)

	issues := tools.NewIssuesTool(reporter)
	s.AddTool(issues.Definition(), issues.Handle)

	// --- Register Compy tools ---

	monthCompyIssues := tools.NewMonthCompyIssuesTool(reporter)
	s.AddTool(monthCompyIssues.Definition(), monthCompyIssues.Handle)

	monthCompyHours := tools.NewMonthCompyHoursTool(reporter, observer)
	s.AddTool(monthCompyHours.Definition(), monthCompyHours.Handle)

	yearCompyIssues := tools.NewYearCompyIssuesTool(reporter)
	s.AddTool(yearCompyIssues.Definition(), yearCompyIssues.Handle)

	yearCompyHours := tools.NewYearCompyHoursTool(reporter, observer)
	s.AddTool(yearCompyHours.Definition(), yearCompyHours.Handle)

	// --- Register performance tools ---

	monthPerformance := tools.NewMonthPerformanceTool(reporter, observer)
	s.AddTool(monthPerformance.Definition(), monthPerformance.Handle)

	yearPerformance := tools.NewYearPerformanceTool(reporter, observer)
	s.AddTool(yearPerformance.Definition(), yearPerformance.Handle)

	// --- Register directory tools ---

	users := tools.NewUsersTool(reporter)
	s.AddTool(users.Definition(), users.Handle)

	projects := tools.NewProjectsTool(reporter)
	s.AddTool(projects.Definition(), projects.Handle)

	// --- Register team report tools ---

	weeklyPlan := tools.NewTeamWeeklyPlanTool(reporter)
	s.AddTool(weeklyPlan.Definition(), weeklyPlan.Handle)

	monthlyPlan := tools.NewTeamMonthlyPlanTool(reporter)
	s.AddTool(monthlyPlan.Definition(), monthlyPlan.Handle)

	weeklyAchievement := tools.NewTeamWeeklyAchievementTool(reporter)
	s.AddTool(weeklyAchievement.Definition(), weeklyAchievement.Handle)

	monthlyAchievement := tools.NewTeamMonthlyAchievementTool(reporter)
	s.AddTool(monthlyAchievement.Definition(), monthlyAchievement.Handle)

	ytdAchievement := tools.NewTeamYTDTool(reporter)
	s.AddTool(ytdAchievement.Definition(), ytdAchievement.Handle)

	threshold := tools.NewThresholdTool(reporter)
	s.AddTool(threshold.Definition(), threshold.Handle)

	// --- Register issue detail tools ---

	issueHistory := tools.NewIssueHistoryTool(reporter)
	s.AddTool(issueHistory.Definition(), issueHistory.Handle)

	issueLinks := tools.NewIssueLinksTool(reporter)
	s.AddTool(issueLinks.Definition(), issueLinks.Handle)

	planChanges := tools.NewPlanChangesTool(reporter)
	s.AddTool(planChanges.Definition(), planChanges.Handle)

	// --- Register prompts ---

	weeklyReport := prompts.NewWeeklyReportPrompt()
	s.AddPrompt(weeklyReport.Definition(), weeklyReport.Handle)

	performanceReview := prompts.NewPerformanceReviewPrompt()
	s.AddPrompt(performanceReview.Definition(), performanceReview.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(settings)
	s.AddResource(resourceHandler.DictionariesResource(), resourceHandler.HandleDictionaries)
	s.AddResource(resourceHandler.ConfigResource(), resourceHandler.HandleConfig)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when history
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use Socramine effectively.
func serverInstructions() string {
	return `You have access to Socramine, a Redmine project reporting MCP server.

## ANSWERING FROM DATA

Every number you report (hours, estimates, earned value, issue counts) MUST
come from a tool call. If the right tool is unavailable or a call fails, say
so — never guess or fabricate figures.

## DATES AND PERIODS

- Weeks and months here are fiscal periods, not calendar ones: weeks start on
  Monday and belong to the month that owns the week's Wednesday. The server
  derives them for you.
- Period tools take ONE concrete date (selected_date, YYYY-MM-DD). Pass any
  date inside the week or month you care about. Do NOT invent start or end
  dates for these tools.
- Use get_date_time (format_type='date') to learn today's date. It returns
  Seoul time and carries no project data.
- Only get_issues accepts raw date filters (start_date, due_date), and those
  are forwarded to Redmine verbatim, operators included ('>=2025-01-01').

## NAMES AND FILTERS

- Member names must match the directory. When a lookup fails, call
  get_all_users and let the user pick — do not retry with guesses.
- status, tracker_type and priority take human-readable names or
  comma-separated lists ('New, In Progress'). status defaults to '*' (all).

## READING RESULTS

- Issue tools return compact JSON; hour tools return a bare number; "No
  data." means the query matched nothing, which is an answer, not an error.
- A CPI below 1.0 means less value earned than planned. PV and EV are hours.
- get_report_history shows previous report runs, useful for "what did we
  look at last time".`
}
