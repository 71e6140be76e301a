// Package report computes the planning and achievement figures served by the
// MCP tools. All filter construction and aggregation lives here; the tool
// layer only parses parameters and formats results.
package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thinkforbl/mcp-socramine/internal/config"
	"github.com/thinkforbl/mcp-socramine/internal/fiscal"
	"github.com/thinkforbl/mcp-socramine/internal/redmine"
)

// Backend is the slice of the Redmine client the reporter consumes.
type Backend interface {
	Issues(ctx context.Context, params redmine.Params) ([]redmine.Issue, error)
	Issue(ctx context.Context, id int) (*redmine.Issue, error)
	Users(ctx context.Context, params redmine.Params) ([]redmine.User, error)
	Projects(ctx context.Context) ([]redmine.Project, error)
}

// Custom field query parameters on the issues endpoint.
const (
	paramTargetYear  = "cf_38"
	paramSprintWeek  = "cf_41"
	paramSprintMonth = "cf_42"
	paramApproval    = "cf_19"
	paramBaseline    = "cf_17"
)

// Custom field display names on issue records.
const (
	fieldMissionLevel = "Mission Level"
	fieldTargetYear   = "목표 년도"
	fieldPV           = "PV"
	fieldEV           = "EV"
	fieldAgreement    = "합의필요사항"
	fieldInitialWBS   = "초기계획WBS"
	fieldSprintWeek   = "스프린트(주)"
	fieldSprintMonth  = "스프린트(월)"
)

const (
	trackerCompy    = "7" // COMPY work items
	statusCompleted = "5" // 완료
	userActive      = "1"
)

// Reporter answers every reporting question the tools expose. It is safe to
// share; all state is the backend handle and the lookup tables.
type Reporter struct {
	backend Backend
	dict    config.Dictionaries
}

// New builds a Reporter over the given backend and lookup tables.
func New(backend Backend, dict config.Dictionaries) *Reporter {
	return &Reporter{backend: backend, dict: dict}
}

// IssueQuery selects one member's issues within the fiscal period of Date.
// Empty filter fields widen the query rather than narrowing it.
type IssueQuery struct {
	Name     string
	Date     time.Time
	Status   string
	Tracker  string
	Priority string
}

// scopeParams builds the base filter for a member and fiscal period. Week
// scope pins both sprint labels; month scope pins only the month label. The
// target year is always the calendar year of the date, even when the labels
// spill into an adjacent month.
func scopeParams(memberID string, date time.Time, withWeek bool) redmine.Params {
	label := fiscal.Resolve(date)
	p := redmine.Params{
		"assigned_to_id": memberID,
		paramTargetYear:  strconv.Itoa(date.Year()),
		paramSprintMonth: label.Month,
	}
	if withWeek {
		p[paramSprintWeek] = label.Week
	}
	return p
}

func (r *Reporter) memberScope(q IssueQuery, withWeek bool) (redmine.Params, error) {
	memberID, err := r.dict.MemberID(q.Name)
	if err != nil {
		return nil, err
	}
	p := scopeParams(memberID, q.Date, withWeek)
	p["status_id"] = r.dict.StatusParam(q.Status)
	if q.Tracker != "" {
		p["tracker_id"] = r.dict.TrackerParam(q.Tracker)
	}
	if q.Priority != "" {
		p["priority_id"] = r.dict.PriorityParam(q.Priority)
	}
	return p, nil
}

// WeekIssues returns the member's issues planned for the fiscal week of the
// query date, in compact form.
func (r *Reporter) WeekIssues(ctx context.Context, q IssueQuery) ([]CompactIssue, error) {
	params, err := r.memberScope(q, true)
	if err != nil {
		return nil, err
	}
	issues, err := r.backend.Issues(ctx, params)
	if err != nil {
		return nil, err
	}
	return Compact(issues), nil
}

// WeekHours sums the estimated hours over the member's fiscal week.
func (r *Reporter) WeekHours(ctx context.Context, q IssueQuery) (float64, error) {
	params, err := r.memberScope(q, true)
	if err != nil {
		return 0, err
	}
	return r.sumHours(ctx, params)
}

// MonthIssues returns the member's issues planned for the fiscal month of
// the query date, in compact form.
func (r *Reporter) MonthIssues(ctx context.Context, q IssueQuery) ([]CompactIssue, error) {
	params, err := r.memberScope(q, false)
	if err != nil {
		return nil, err
	}
	issues, err := r.backend.Issues(ctx, params)
	if err != nil {
		return nil, err
	}
	return Compact(issues), nil
}

// MonthHours sums the estimated hours over the member's fiscal month.
func (r *Reporter) MonthHours(ctx context.Context, q IssueQuery) (float64, error) {
	params, err := r.memberScope(q, false)
	if err != nil {
		return 0, err
	}
	return r.sumHours(ctx, params)
}

func (r *Reporter) sumHours(ctx context.Context, params redmine.Params) (float64, error) {
	issues, err := r.backend.Issues(ctx, params)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, issue := range issues {
		total += issue.Hours()
	}
	return total, nil
}

// GeneralQuery selects a member's issues for a target year with optional
// project and date bounds. Dates are passed to the backend verbatim, so the
// relative forms it understands ("m", "y") work as well as YYYY-MM-DD.
type GeneralQuery struct {
	Name      string
	Year      int
	Project   string
	StartDate string
	DueDate   string
	Status    string
	Tracker   string
	Priority  string
}

// Issues returns the member's issues for the query year in compact form.
func (r *Reporter) Issues(ctx context.Context, q GeneralQuery) ([]CompactIssue, error) {
	memberID, err := r.dict.MemberID(q.Name)
	if err != nil {
		return nil, err
	}
	p := redmine.Params{
		"assigned_to_id": memberID,
		paramTargetYear:  strconv.Itoa(q.Year),
	}
	if q.Project != "" {
		id, err := r.projectID(ctx, q.Project)
		if err != nil {
			return nil, err
		}
		p["project_id"] = id
	}
	if q.StartDate != "" {
		p["start_date"] = q.StartDate
	}
	if q.DueDate != "" {
		p["due_date"] = q.DueDate
	}
	p["status_id"] = r.dict.StatusParam(q.Status)
	if q.Tracker != "" {
		p["tracker_id"] = r.dict.TrackerParam(q.Tracker)
	}
	if q.Priority != "" {
		p["priority_id"] = r.dict.PriorityParam(q.Priority)
	}
	issues, err := r.backend.Issues(ctx, p)
	if err != nil {
		return nil, err
	}
	return Compact(issues), nil
}

// projectID resolves a project by name or identifier, case-insensitively on
// the trimmed value.
func (r *Reporter) projectID(ctx context.Context, project string) (string, error) {
	projects, err := r.backend.Projects(ctx)
	if err != nil {
		return "", err
	}
	key := strings.ToLower(strings.TrimSpace(project))
	for _, p := range projects {
		if strings.ToLower(strings.TrimSpace(p.Name)) == key ||
			strings.ToLower(strings.TrimSpace(p.Identifier)) == key {
			return strconv.Itoa(p.ID), nil
		}
	}
	return "", fmt.Errorf("project %q not found", project)
}

// CompyQuery selects a member's COMPY issues. Month narrows the query to the
// fiscal month of Date; otherwise the whole target year is covered.
type CompyQuery struct {
	Name     string
	Date     time.Time
	Month    bool
	Status   string
	Priority string
}

func (r *Reporter) compyParams(q CompyQuery) (redmine.Params, error) {
	memberID, err := r.dict.MemberID(q.Name)
	if err != nil {
		return nil, err
	}
	p := redmine.Params{
		"assigned_to_id": memberID,
		paramTargetYear:  strconv.Itoa(q.Date.Year()),
	}
	if q.Month {
		p[paramSprintMonth] = fiscal.Resolve(q.Date).Month
	}
	p["status_id"] = r.dict.StatusParam(q.Status)
	if q.Priority != "" {
		p["priority_id"] = r.dict.PriorityParam(q.Priority)
	}
	p["tracker_id"] = trackerCompy
	return p, nil
}

// CompyIssues returns the member's COMPY issues in compact form.
func (r *Reporter) CompyIssues(ctx context.Context, q CompyQuery) ([]CompactIssue, error) {
	params, err := r.compyParams(q)
	if err != nil {
		return nil, err
	}
	issues, err := r.backend.Issues(ctx, params)
	if err != nil {
		return nil, err
	}
	return Compact(issues), nil
}

// CompyHours sums the estimated hours over the member's COMPY issues.
func (r *Reporter) CompyHours(ctx context.Context, q CompyQuery) (float64, error) {
	params, err := r.compyParams(q)
	if err != nil {
		return 0, err
	}
	return r.sumHours(ctx, params)
}

// Relative due-date windows the backend evaluates server-side.
const (
	PeriodMonth = "m"
	PeriodYear  = "y"
)

// Performance is the recorded hours and earned value of completed work.
type Performance struct {
	TotalHours float64 `json:"total_hours"`
	TotalEV    float64 `json:"total_ev"`
}

// Performance sums estimated hours and EV over the member's completed leaf
// issues due inside the relative period, skipping rejected work. The baseline
// field filter is fixed; callers cannot widen it.
func (r *Reporter) Performance(ctx context.Context, name, period string) (*Performance, error) {
	memberID, err := r.dict.MemberID(name)
	if err != nil {
		return nil, err
	}
	params := redmine.Params{
		"assigned_to_id": memberID,
		"status_id":      statusCompleted,
		"due_date":       period,
		"child_id":       "!*",
		paramApproval:    "!반려",
		paramBaseline:    "!*",
	}
	issues, err := r.backend.Issues(ctx, params)
	if err != nil {
		return nil, err
	}
	perf := &Performance{}
	for _, issue := range issues {
		perf.TotalHours += issue.Hours()
		perf.TotalEV += issue.FieldFloat(fieldEV)
	}
	return perf, nil
}

// Member is one directory entry from the backend's user list.
type Member struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Mail      string `json:"mail,omitempty"`
	CreatedOn string `json:"created_on,omitempty"`
}

// Members lists every backend account with its report display name.
func (r *Reporter) Members(ctx context.Context) ([]Member, error) {
	users, err := r.backend.Users(ctx, nil)
	if err != nil {
		return nil, err
	}
	members := make([]Member, 0, len(users))
	for _, u := range users {
		members = append(members, Member{
			ID:        u.ID,
			Login:     u.Login,
			Name:      u.DisplayName(),
			Mail:      u.Mail,
			CreatedOn: u.CreatedOn,
		})
	}
	return members, nil
}

// Projects lists every project in the backend.
func (r *Reporter) Projects(ctx context.Context) ([]redmine.Project, error) {
	return r.backend.Projects(ctx)
}

func (r *Reporter) activeUsers(ctx context.Context) ([]redmine.User, error) {
	return r.backend.Users(ctx, redmine.Params{"status": userActive})
}
