package report

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/thinkforbl/mcp-socramine/internal/config"
	"github.com/thinkforbl/mcp-socramine/internal/redmine"
)

type fakeBackend struct {
	issuesFn   func(params redmine.Params) ([]redmine.Issue, error)
	issueFn    func(id int) (*redmine.Issue, error)
	usersFn    func(params redmine.Params) ([]redmine.User, error)
	projectsFn func() ([]redmine.Project, error)

	issueCalls []redmine.Params
	userCalls  []redmine.Params
}

func (f *fakeBackend) Issues(_ context.Context, params redmine.Params) ([]redmine.Issue, error) {
	f.issueCalls = append(f.issueCalls, params)
	if f.issuesFn == nil {
		return nil, nil
	}
	return f.issuesFn(params)
}

func (f *fakeBackend) Issue(_ context.Context, id int) (*redmine.Issue, error) {
	if f.issueFn == nil {
		return nil, fmt.Errorf("unexpected issue fetch: %d", id)
	}
	return f.issueFn(id)
}

func (f *fakeBackend) Users(_ context.Context, params redmine.Params) ([]redmine.User, error) {
	f.userCalls = append(f.userCalls, params)
	if f.usersFn == nil {
		return nil, nil
	}
	return f.usersFn(params)
}

func (f *fakeBackend) Projects(_ context.Context) ([]redmine.Project, error) {
	if f.projectsFn == nil {
		return nil, nil
	}
	return f.projectsFn()
}

func testDict() config.Dictionaries {
	return config.Dictionaries{
		Members:       map[string]string{"김민수": "12"},
		IssueStatuses: map[string]string{"Closed": "5", "New": "1"},
		TrackerTypes:  map[string]string{"Bug": "1"},
		Priorities:    map[string]string{"High": "3"},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func issueWith(hours float64, fields map[string]string) redmine.Issue {
	issue := redmine.Issue{EstimatedHours: &hours}
	for name, value := range fields {
		issue.CustomFields = append(issue.CustomFields, redmine.CustomField{
			Name:  name,
			Value: redmine.Field(value),
		})
	}
	return issue
}

func TestWeekIssuesFilter(t *testing.T) {
	fake := &fakeBackend{}
	r := New(fake, testDict())

	_, err := r.WeekIssues(context.Background(), IssueQuery{
		Name:     "김민수",
		Date:     date(2025, time.August, 12),
		Status:   "closed",
		Tracker:  "bug",
		Priority: "high",
	})
	if err != nil {
		t.Fatalf("WeekIssues: %v", err)
	}

	want := redmine.Params{
		"assigned_to_id": "12",
		"cf_38":          "2025",
		"cf_41":          "2주차",
		"cf_42":          "08월",
		"status_id":      "5",
		"tracker_id":     "1",
		"priority_id":    "3",
	}
	if len(fake.issueCalls) != 1 || !reflect.DeepEqual(fake.issueCalls[0], want) {
		t.Errorf("params = %v, want %v", fake.issueCalls, want)
	}
}

func TestMonthIssuesFilter(t *testing.T) {
	fake := &fakeBackend{}
	r := New(fake, testDict())

	_, err := r.MonthIssues(context.Background(), IssueQuery{
		Name: "김민수",
		Date: date(2025, time.August, 12),
	})
	if err != nil {
		t.Fatalf("MonthIssues: %v", err)
	}

	want := redmine.Params{
		"assigned_to_id": "12",
		"cf_38":          "2025",
		"cf_42":          "08월",
		"status_id":      "*",
	}
	if len(fake.issueCalls) != 1 || !reflect.DeepEqual(fake.issueCalls[0], want) {
		t.Errorf("params = %v, want %v", fake.issueCalls, want)
	}
}

func TestWeekFilterUsesFiscalLabels(t *testing.T) {
	// August 1st belongs to July's fifth fiscal week but keeps the calendar
	// year of the input date.
	fake := &fakeBackend{}
	r := New(fake, testDict())

	_, err := r.WeekHours(context.Background(), IssueQuery{
		Name: "김민수",
		Date: date(2025, time.August, 1),
	})
	if err != nil {
		t.Fatalf("WeekHours: %v", err)
	}

	got := fake.issueCalls[0]
	if got["cf_41"] != "5주차" || got["cf_42"] != "07월" || got["cf_38"] != "2025" {
		t.Errorf("labels = %s/%s/%s, want 5주차/07월/2025", got["cf_41"], got["cf_42"], got["cf_38"])
	}
}

func TestUnknownMember(t *testing.T) {
	r := New(&fakeBackend{}, testDict())

	_, err := r.WeekHours(context.Background(), IssueQuery{Name: "nobody", Date: date(2025, time.August, 12)})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v, want member lookup failure", err)
	}
}

func TestIssuesFilter(t *testing.T) {
	fake := &fakeBackend{
		projectsFn: func() ([]redmine.Project, error) {
			return []redmine.Project{{ID: 7, Name: "Platform", Identifier: "platform"}}, nil
		},
	}
	r := New(fake, testDict())

	_, err := r.Issues(context.Background(), GeneralQuery{
		Name:      "김민수",
		Year:      2025,
		Project:   "PLATFORM",
		StartDate: "2025-01-01",
		DueDate:   "2025-06-30",
		Status:    "new,closed",
	})
	if err != nil {
		t.Fatalf("Issues: %v", err)
	}

	want := redmine.Params{
		"assigned_to_id": "12",
		"cf_38":          "2025",
		"project_id":     "7",
		"start_date":     "2025-01-01",
		"due_date":       "2025-06-30",
		"status_id":      "1,5",
	}
	if len(fake.issueCalls) != 1 || !reflect.DeepEqual(fake.issueCalls[0], want) {
		t.Errorf("params = %v, want %v", fake.issueCalls, want)
	}
}

func TestIssuesUnknownProject(t *testing.T) {
	fake := &fakeBackend{
		projectsFn: func() ([]redmine.Project, error) {
			return []redmine.Project{{ID: 7, Name: "Platform", Identifier: "platform"}}, nil
		},
	}
	r := New(fake, testDict())

	_, err := r.Issues(context.Background(), GeneralQuery{Name: "김민수", Year: 2025, Project: "ghost"})
	if err == nil || !strings.Contains(err.Error(), `"ghost"`) {
		t.Fatalf("err = %v, want project lookup failure", err)
	}
}

func TestCompyFilters(t *testing.T) {
	fake := &fakeBackend{}
	r := New(fake, testDict())

	_, err := r.CompyIssues(context.Background(), CompyQuery{
		Name:  "김민수",
		Date:  date(2025, time.August, 12),
		Month: true,
	})
	if err != nil {
		t.Fatalf("CompyIssues: %v", err)
	}
	monthParams := fake.issueCalls[0]
	if monthParams["tracker_id"] != "7" {
		t.Errorf("tracker_id = %q, want pinned 7", monthParams["tracker_id"])
	}
	if monthParams["cf_42"] != "08월" {
		t.Errorf("cf_42 = %q, want 08월", monthParams["cf_42"])
	}
	if _, ok := monthParams["cf_41"]; ok {
		t.Error("month scope must not pin the week label")
	}

	_, err = r.CompyHours(context.Background(), CompyQuery{
		Name: "김민수",
		Date: date(2025, time.August, 12),
	})
	if err != nil {
		t.Fatalf("CompyHours: %v", err)
	}
	yearParams := fake.issueCalls[1]
	if _, ok := yearParams["cf_42"]; ok {
		t.Error("year scope must not pin the month label")
	}
	if yearParams["cf_38"] != "2025" {
		t.Errorf("cf_38 = %q, want 2025", yearParams["cf_38"])
	}
}

func TestPerformance(t *testing.T) {
	fake := &fakeBackend{
		issuesFn: func(redmine.Params) ([]redmine.Issue, error) {
			return []redmine.Issue{
				issueWith(8, map[string]string{"EV": "10"}),
				issueWith(4, map[string]string{"EV": "5.5"}),
			}, nil
		},
	}
	r := New(fake, testDict())

	perf, err := r.Performance(context.Background(), "김민수", PeriodMonth)
	if err != nil {
		t.Fatalf("Performance: %v", err)
	}
	if perf.TotalHours != 12 || perf.TotalEV != 15.5 {
		t.Errorf("performance = %+v, want hours 12 ev 15.5", perf)
	}

	want := redmine.Params{
		"assigned_to_id": "12",
		"status_id":      "5",
		"due_date":       "m",
		"child_id":       "!*",
		"cf_19":          "!반려",
		"cf_17":          "!*",
	}
	if !reflect.DeepEqual(fake.issueCalls[0], want) {
		t.Errorf("params = %v, want %v", fake.issueCalls[0], want)
	}
}

func TestCPI(t *testing.T) {
	cases := []struct {
		ev, pv, want float64
	}{
		{30, 40, 0.75},
		{10, 0, 0},
		{0, 10, 0},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := CPI(tc.ev, tc.pv); got != tc.want {
			t.Errorf("CPI(%v, %v) = %v, want %v", tc.ev, tc.pv, got, tc.want)
		}
	}
}

func TestTargetHours(t *testing.T) {
	if got := TargetHours(date(2025, time.January, 7)); got != 40 {
		t.Errorf("TargetHours(Jan 7) = %v, want 40", got)
	}
	if got := TargetHours(date(2025, time.January, 1)); math.Abs(got-40.0/7.0) > 1e-9 {
		t.Errorf("TargetHours(Jan 1) = %v, want %v", got, 40.0/7.0)
	}
	// The target grows with every calendar day, not in weekly steps.
	if TargetHours(date(2025, time.March, 2)) <= TargetHours(date(2025, time.March, 1)) {
		t.Error("target must be strictly increasing day over day")
	}
}

func TestTeamWeeklyPlanToggle(t *testing.T) {
	fake := &fakeBackend{
		usersFn: func(redmine.Params) ([]redmine.User, error) {
			return []redmine.User{{ID: 1, Lastname: "김", Firstname: "민수"}}, nil
		},
		issuesFn: func(redmine.Params) ([]redmine.Issue, error) {
			return []redmine.Issue{
				issueWith(20, map[string]string{"PV": "20"}),
				issueWith(15, map[string]string{"PV": "10", "합의필요사항": "기간 조정 필요"}),
			}, nil
		},
	}
	r := New(fake, testDict())

	plans, err := r.TeamWeeklyPlan(context.Background(), date(2025, time.August, 12), true)
	if err != nil {
		t.Fatalf("TeamWeeklyPlan: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("got %d plans, want 1", len(plans))
	}
	p := plans[0]
	if p.Name != "김민수" || p.MemberID != 1 {
		t.Errorf("identity = %q/%d", p.Name, p.MemberID)
	}
	if p.TotalHours != 35 || p.TotalPV != 30 {
		t.Errorf("totals = %v/%v, want 35/30", p.TotalHours, p.TotalPV)
	}
	if p.AgreedHours != 20 || p.UnagreedHours != 15 {
		t.Errorf("split = %v/%v, want 20/15", p.AgreedHours, p.UnagreedHours)
	}

	plans, err = r.TeamWeeklyPlan(context.Background(), date(2025, time.August, 12), false)
	if err != nil {
		t.Fatalf("TeamWeeklyPlan: %v", err)
	}
	if plans[0].TotalHours != 20 || plans[0].TotalPV != 20 {
		t.Errorf("agreed-only totals = %v/%v, want 20/20", plans[0].TotalHours, plans[0].TotalPV)
	}
	if plans[0].UnagreedHours != 15 {
		t.Errorf("unagreed share missing from row: %+v", plans[0])
	}

	if len(fake.userCalls) == 0 || fake.userCalls[0]["status"] != "1" {
		t.Errorf("user calls = %v, want active filter", fake.userCalls)
	}
	weekParams := fake.issueCalls[0]
	if weekParams["cf_41"] == "" || weekParams["cf_42"] == "" {
		t.Errorf("week plan params = %v, want both sprint labels", weekParams)
	}
}

func TestTeamMonthlyPlanFilter(t *testing.T) {
	fake := &fakeBackend{
		usersFn: func(redmine.Params) ([]redmine.User, error) {
			return []redmine.User{{ID: 1, Login: "msk"}}, nil
		},
	}
	r := New(fake, testDict())

	if _, err := r.TeamMonthlyPlan(context.Background(), date(2025, time.August, 12), true); err != nil {
		t.Fatalf("TeamMonthlyPlan: %v", err)
	}
	params := fake.issueCalls[0]
	if _, ok := params["cf_41"]; ok {
		t.Error("month plan must not pin the week label")
	}
	if params["cf_42"] != "08월" {
		t.Errorf("cf_42 = %q, want 08월", params["cf_42"])
	}
	if _, ok := params["status_id"]; ok {
		t.Error("plans must not filter by status")
	}
}

func TestTeamWeeklyAchievement(t *testing.T) {
	fake := &fakeBackend{
		usersFn: func(redmine.Params) ([]redmine.User, error) {
			return []redmine.User{{ID: 1, Lastname: "김", Firstname: "민수"}}, nil
		},
		issuesFn: func(redmine.Params) ([]redmine.Issue, error) {
			return []redmine.Issue{
				issueWith(8, map[string]string{"PV": "10", "EV": "5"}),
				issueWith(2, map[string]string{"PV": "n/a", "EV": "2.5"}),
			}, nil
		},
	}
	r := New(fake, testDict())

	rows, err := r.TeamWeeklyAchievement(context.Background(), date(2025, time.August, 12), "closed")
	if err != nil {
		t.Fatalf("TeamWeeklyAchievement: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	a := rows[0]
	// The unparseable PV coerces to zero instead of failing the report.
	if a.Hours != 10 || a.PV != 10 || a.EV != 7.5 {
		t.Errorf("sums = %v/%v/%v, want 10/10/7.5", a.Hours, a.PV, a.EV)
	}
	if a.CPI != 0.75 {
		t.Errorf("cpi = %v, want 0.75", a.CPI)
	}
	if fake.issueCalls[0]["status_id"] != "5" {
		t.Errorf("status_id = %q, want 5", fake.issueCalls[0]["status_id"])
	}
}

func TestTeamYTDAchievement(t *testing.T) {
	fake := &fakeBackend{
		usersFn: func(redmine.Params) ([]redmine.User, error) {
			return []redmine.User{{ID: 1, Login: "msk"}}, nil
		},
		issuesFn: func(redmine.Params) ([]redmine.Issue, error) {
			return []redmine.Issue{issueWith(30, map[string]string{"PV": "10", "EV": "5"})}, nil
		},
	}
	r := New(fake, testDict())

	rows, err := r.TeamYTDAchievement(context.Background(), date(2025, time.January, 7), "*")
	if err != nil {
		t.Fatalf("TeamYTDAchievement: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	m := rows[0]
	if m.TargetHours != 40 {
		t.Errorf("target = %v, want 40", m.TargetHours)
	}
	if m.HoursVsTarget != -10 {
		t.Errorf("hours vs target = %v, want -10", m.HoursVsTarget)
	}
	if m.CPI != 0.5 {
		t.Errorf("cpi = %v, want 0.5", m.CPI)
	}

	params := fake.issueCalls[0]
	if _, ok := params["cf_41"]; ok {
		t.Error("year scope must not pin the week label")
	}
	if _, ok := params["cf_42"]; ok {
		t.Error("year scope must not pin the month label")
	}
	if params["cf_38"] != "2025" {
		t.Errorf("cf_38 = %q, want 2025", params["cf_38"])
	}
}

func TestBelowWeeklyThreshold(t *testing.T) {
	hoursByMember := map[string]float64{"1": 30, "2": 45, "3": 10, "4": 40}
	fake := &fakeBackend{
		usersFn: func(redmine.Params) ([]redmine.User, error) {
			return []redmine.User{
				{ID: 1, Login: "a"},
				{ID: 2, Login: "b"},
				{ID: 3, Login: "c"},
				{ID: 4, Login: "d"},
			}, nil
		},
		issuesFn: func(params redmine.Params) ([]redmine.Issue, error) {
			return []redmine.Issue{issueWith(hoursByMember[params["assigned_to_id"]], nil)}, nil
		},
	}
	r := New(fake, testDict())

	below, err := r.BelowWeeklyThreshold(context.Background(), date(2025, time.August, 12), 40, "*")
	if err != nil {
		t.Fatalf("BelowWeeklyThreshold: %v", err)
	}
	if len(below) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(below), below)
	}
	if below[0].Name != "c" || below[0].Hours != 10 || below[0].Shortfall != 30 {
		t.Errorf("first = %+v, want c/10/30", below[0])
	}
	if below[1].Name != "a" || below[1].Hours != 30 || below[1].Shortfall != 10 {
		t.Errorf("second = %+v, want a/30/10", below[1])
	}
}

func TestCompact(t *testing.T) {
	hours := 8.0
	issue := redmine.Issue{
		ID:             31,
		Project:        redmine.Ref{Name: "Platform"},
		Tracker:        redmine.Ref{Name: "Task"},
		Status:         redmine.Ref{Name: "진행"},
		Priority:       redmine.Ref{Name: "Normal"},
		Author:         redmine.Ref{Name: "김민수"},
		AssignedTo:     redmine.Ref{Name: "김민수"},
		Subject:        "주간 보고 자동화",
		StartDate:      "2025-08-04",
		DueDate:        "2025-08-08",
		EstimatedHours: &hours,
		CustomFields: []redmine.CustomField{
			{Name: "Mission Level", Value: redmine.Field("M2")},
			{Name: "목표 년도", Value: redmine.Field("2025")},
			{Name: "PV", Value: redmine.Field("8")},
			{Name: "EV", Value: redmine.Field("6")},
			{Name: "스프린트(주)", Value: redmine.Field("2주차")},
			{Name: "스프린트(월)", Value: redmine.Field("08월")},
		},
	}

	rows := Compact([]redmine.Issue{issue})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	c := rows[0]
	if c.ID != 31 || c.Project != "Platform" || c.Subject != "주간 보고 자동화" {
		t.Errorf("base fields = %+v", c)
	}
	if c.EstimatedHours != 8 || c.PV != "8" || c.EV != "6" {
		t.Errorf("values = %v/%q/%q", c.EstimatedHours, c.PV, c.EV)
	}
	if c.SprintWeek != "2주차" || c.SprintMonth != "08월" {
		t.Errorf("sprint = %q/%q", c.SprintWeek, c.SprintMonth)
	}
	if !c.Agreed {
		t.Error("issue without agreement notes must be agreed")
	}

	issue.CustomFields = append(issue.CustomFields, redmine.CustomField{
		Name:  "합의필요사항",
		Value: redmine.Field("리소스 협의"),
	})
	rows = Compact([]redmine.Issue{issue})
	if rows[0].Agreed {
		t.Error("issue with agreement notes must not be agreed")
	}
	if rows[0].AgreementNotes != "리소스 협의" {
		t.Errorf("agreement notes = %q", rows[0].AgreementNotes)
	}
}

func TestIssueHistory(t *testing.T) {
	fake := &fakeBackend{
		issueFn: func(id int) (*redmine.Issue, error) {
			return &redmine.Issue{
				ID: id,
				Journals: []redmine.Journal{
					{User: redmine.Ref{Name: "김민수"}, CreatedOn: "2025-08-05T09:00:00Z", Notes: "착수"},
					{User: redmine.Ref{Name: "박지원"}, CreatedOn: "2025-08-06T10:00:00Z", Details: []redmine.JournalDetail{
						{Property: "attr", Name: "status_id", OldValue: redmine.Field("1"), NewValue: redmine.Field("2")},
					}},
					{User: redmine.Ref{Name: "bot"}, CreatedOn: "2025-08-07T11:00:00Z"},
				},
			}, nil
		},
	}
	r := New(fake, testDict())

	entries, err := r.IssueHistory(context.Background(), 31)
	if err != nil {
		t.Fatalf("IssueHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2 (empty journal dropped)", len(entries))
	}
	if entries[0].Notes != "착수" {
		t.Errorf("notes = %q", entries[0].Notes)
	}
	if len(entries[1].Changes) != 1 || entries[1].Changes[0].Field != "status_id" {
		t.Errorf("changes = %+v", entries[1].Changes)
	}
}

func TestIssueLinks(t *testing.T) {
	fake := &fakeBackend{
		issueFn: func(id int) (*redmine.Issue, error) {
			return &redmine.Issue{
				ID:      id,
				Subject: "상위 과제",
				Relations: []redmine.IssueRelation{
					{ID: 5, IssueID: id, IssueToID: 77, RelationType: "blocks"},
				},
				Children: []redmine.Issue{
					{ID: 32, Subject: "하위 과제", Tracker: redmine.Ref{Name: "Task"}},
				},
			}, nil
		},
	}
	r := New(fake, testDict())

	links, err := r.IssueLinks(context.Background(), 31)
	if err != nil {
		t.Fatalf("IssueLinks: %v", err)
	}
	if len(links.Relations) != 1 || links.Relations[0].Type != "blocks" {
		t.Errorf("relations = %+v", links.Relations)
	}
	if len(links.Children) != 1 || links.Children[0].ID != 32 {
		t.Errorf("children = %+v", links.Children)
	}
}

func TestPlanChanges(t *testing.T) {
	fake := &fakeBackend{
		issuesFn: func(redmine.Params) ([]redmine.Issue, error) {
			return []redmine.Issue{
				{ID: 9, StartDate: "2025-08-11"},
				{ID: 10}, // no start date, cannot be judged
			}, nil
		},
		issueFn: func(id int) (*redmine.Issue, error) {
			if id != 9 {
				return nil, fmt.Errorf("unexpected issue fetch: %d", id)
			}
			return &redmine.Issue{
				ID:      9,
				Subject: "배포 자동화",
				CustomFields: []redmine.CustomField{
					{ID: 41, Name: "스프린트(주)", Value: redmine.Field("3주차")},
					{ID: 44, Name: "PV", Value: redmine.Field("16")},
					{ID: 99, Name: "비고", Value: redmine.Field("y")},
				},
				Journals: []redmine.Journal{
					{
						User:      redmine.Ref{Name: "김민수"},
						CreatedOn: "2025-08-11T15:00:00Z", // same day as the start
						Details: []redmine.JournalDetail{
							{Property: "attr", Name: "estimated_hours", OldValue: redmine.Field("4"), NewValue: redmine.Field("8")},
						},
					},
					{
						User:      redmine.Ref{Name: "박지원"},
						CreatedOn: "2025-08-13T09:00:00Z",
						Details: []redmine.JournalDetail{
							{Property: "attr", Name: "estimated_hours", OldValue: redmine.Field("8"), NewValue: redmine.Field("16")},
							{Property: "attr", Name: "done_ratio", OldValue: redmine.Field("0"), NewValue: redmine.Field("50")},
							{Property: "cf", Name: "41", OldValue: redmine.Field("2주차"), NewValue: redmine.Field("3주차")},
							{Property: "cf", Name: "44", OldValue: redmine.Field("8"), NewValue: redmine.Field("16")},
							{Property: "cf", Name: "99", OldValue: redmine.Field("x"), NewValue: redmine.Field("y")},
						},
					},
				},
			}, nil
		},
	}
	r := New(fake, testDict())

	changes, err := r.PlanChanges(context.Background(), "김민수", date(2025, time.August, 12))
	if err != nil {
		t.Fatalf("PlanChanges: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("got %d changes, want 3: %+v", len(changes), changes)
	}
	if changes[0].Field != "estimated_hours" || changes[0].New != "16" {
		t.Errorf("first = %+v", changes[0])
	}
	if changes[1].Field != "스프린트(주)" || changes[1].New != "3주차" {
		t.Errorf("second = %+v", changes[1])
	}
	if changes[2].Field != "PV" || changes[2].New != "16" {
		t.Errorf("third = %+v", changes[2])
	}
}

func TestMembers(t *testing.T) {
	fake := &fakeBackend{
		usersFn: func(redmine.Params) ([]redmine.User, error) {
			return []redmine.User{
				{ID: 1, Login: "msk", Lastname: "김", Firstname: "민수", Mail: "msk@example.com"},
				{ID: 2, Login: "steven", Lastname: "Park", Firstname: "Steven"},
			}, nil
		},
	}
	r := New(fake, testDict())

	members, err := r.Members(context.Background())
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	if members[0].Name != "김민수" || members[1].Name != "Park Steven" {
		t.Errorf("names = %q, %q", members[0].Name, members[1].Name)
	}
	// Directory listing covers every account, not only active ones.
	if len(fake.userCalls) != 1 || len(fake.userCalls[0]) != 0 {
		t.Errorf("user params = %v, want none", fake.userCalls)
	}
}
