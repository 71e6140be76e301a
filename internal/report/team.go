package report

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/thinkforbl/mcp-socramine/internal/redmine"
)

// CPI is earned value over planned value, zero when nothing was planned.
func CPI(ev, pv float64) float64 {
	if pv > 0 {
		return ev / pv
	}
	return 0
}

// TargetHours is the cumulative 40-hour-week target through the given date,
// prorated by days elapsed since January 1st. Weeks are counted continuously
// rather than rounded, so every calendar day moves the target.
func TargetHours(date time.Time) float64 {
	return float64(date.YearDay()) / 7.0 * 40.0
}

// MemberPlan is one member's planned hours and PV for a fiscal period, split
// by agreement state. The totals include the unagreed share only when the
// plan was built with includeUnagreed.
type MemberPlan struct {
	Name          string  `json:"name"`
	MemberID      int     `json:"member_id"`
	TotalHours    float64 `json:"total_hours"`
	TotalPV       float64 `json:"total_pv"`
	AgreedHours   float64 `json:"agreed_hours"`
	AgreedPV      float64 `json:"agreed_pv"`
	UnagreedHours float64 `json:"unagreed_hours"`
	UnagreedPV    float64 `json:"unagreed_pv"`
}

// TeamWeeklyPlan aggregates every active member's plan for the fiscal week
// of date.
func (r *Reporter) TeamWeeklyPlan(ctx context.Context, date time.Time, includeUnagreed bool) ([]MemberPlan, error) {
	return r.teamPlan(ctx, date, true, includeUnagreed)
}

// TeamMonthlyPlan aggregates every active member's plan for the fiscal month
// of date.
func (r *Reporter) TeamMonthlyPlan(ctx context.Context, date time.Time, includeUnagreed bool) ([]MemberPlan, error) {
	return r.teamPlan(ctx, date, false, includeUnagreed)
}

func (r *Reporter) teamPlan(ctx context.Context, date time.Time, withWeek, includeUnagreed bool) ([]MemberPlan, error) {
	users, err := r.activeUsers(ctx)
	if err != nil {
		return nil, err
	}
	plans := make([]MemberPlan, 0, len(users))
	for _, user := range users {
		issues, err := r.backend.Issues(ctx, scopeParams(strconv.Itoa(user.ID), date, withWeek))
		if err != nil {
			return nil, err
		}
		plan := MemberPlan{Name: user.DisplayName(), MemberID: user.ID}
		for _, issue := range issues {
			hours := issue.Hours()
			pv := issue.FieldFloat(fieldPV)
			if agreed(issue) {
				plan.AgreedHours += hours
				plan.AgreedPV += pv
			} else {
				plan.UnagreedHours += hours
				plan.UnagreedPV += pv
			}
		}
		plan.TotalHours = plan.AgreedHours
		plan.TotalPV = plan.AgreedPV
		if includeUnagreed {
			plan.TotalHours += plan.UnagreedHours
			plan.TotalPV += plan.UnagreedPV
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// MemberAchievement is one member's recorded hours and earned value for a
// fiscal period.
type MemberAchievement struct {
	Name     string  `json:"name"`
	MemberID int     `json:"member_id"`
	Hours    float64 `json:"hours"`
	PV       float64 `json:"pv"`
	EV       float64 `json:"ev"`
	CPI      float64 `json:"cpi"`
}

// TeamWeeklyAchievement aggregates every active member's achievement for the
// fiscal week of date.
func (r *Reporter) TeamWeeklyAchievement(ctx context.Context, date time.Time, status string) ([]MemberAchievement, error) {
	return r.teamAchievement(ctx, date, status, true)
}

// TeamMonthlyAchievement aggregates every active member's achievement for
// the fiscal month of date.
func (r *Reporter) TeamMonthlyAchievement(ctx context.Context, date time.Time, status string) ([]MemberAchievement, error) {
	return r.teamAchievement(ctx, date, status, false)
}

func (r *Reporter) teamAchievement(ctx context.Context, date time.Time, status string, withWeek bool) ([]MemberAchievement, error) {
	users, err := r.activeUsers(ctx)
	if err != nil {
		return nil, err
	}
	statusID := r.dict.StatusParam(status)
	out := make([]MemberAchievement, 0, len(users))
	for _, user := range users {
		params := scopeParams(strconv.Itoa(user.ID), date, withWeek)
		params["status_id"] = statusID
		issues, err := r.backend.Issues(ctx, params)
		if err != nil {
			return nil, err
		}
		a := MemberAchievement{Name: user.DisplayName(), MemberID: user.ID}
		for _, issue := range issues {
			a.Hours += issue.Hours()
			a.PV += issue.FieldFloat(fieldPV)
			a.EV += issue.FieldFloat(fieldEV)
		}
		a.CPI = CPI(a.EV, a.PV)
		out = append(out, a)
	}
	return out, nil
}

// MemberYTD is one member's year-to-date achievement against the running
// 40-hour-week target.
type MemberYTD struct {
	Name          string  `json:"name"`
	MemberID      int     `json:"member_id"`
	Hours         float64 `json:"ytd_hours"`
	PV            float64 `json:"ytd_pv"`
	EV            float64 `json:"ytd_ev"`
	CPI           float64 `json:"ytd_cpi"`
	TargetHours   float64 `json:"target_hours"`
	HoursVsTarget float64 `json:"hours_vs_target"`
}

// TeamYTDAchievement aggregates every active member's achievement for the
// calendar year of date, measured against the target accrued through date.
func (r *Reporter) TeamYTDAchievement(ctx context.Context, date time.Time, status string) ([]MemberYTD, error) {
	users, err := r.activeUsers(ctx)
	if err != nil {
		return nil, err
	}
	statusID := r.dict.StatusParam(status)
	target := TargetHours(date)
	out := make([]MemberYTD, 0, len(users))
	for _, user := range users {
		issues, err := r.backend.Issues(ctx, redmine.Params{
			"assigned_to_id": strconv.Itoa(user.ID),
			"status_id":      statusID,
			paramTargetYear:  strconv.Itoa(date.Year()),
		})
		if err != nil {
			return nil, err
		}
		m := MemberYTD{Name: user.DisplayName(), MemberID: user.ID, TargetHours: target}
		for _, issue := range issues {
			m.Hours += issue.Hours()
			m.PV += issue.FieldFloat(fieldPV)
			m.EV += issue.FieldFloat(fieldEV)
		}
		m.CPI = CPI(m.EV, m.PV)
		m.HoursVsTarget = m.Hours - target
		out = append(out, m)
	}
	return out, nil
}

// ThresholdEntry is a member whose weekly hours fell short of the threshold.
type ThresholdEntry struct {
	MemberAchievement
	Shortfall float64 `json:"shortfall"`
}

// BelowWeeklyThreshold filters the weekly achievement for date down to
// members under threshold hours, lowest first. Members exactly at the
// threshold are not included.
func (r *Reporter) BelowWeeklyThreshold(ctx context.Context, date time.Time, threshold float64, status string) ([]ThresholdEntry, error) {
	achievements, err := r.TeamWeeklyAchievement(ctx, date, status)
	if err != nil {
		return nil, err
	}
	below := make([]ThresholdEntry, 0, len(achievements))
	for _, a := range achievements {
		if a.Hours < threshold {
			below = append(below, ThresholdEntry{MemberAchievement: a, Shortfall: threshold - a.Hours})
		}
	}
	sort.SliceStable(below, func(i, j int) bool { return below[i].Hours < below[j].Hours })
	return below, nil
}
