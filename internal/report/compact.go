package report

import "github.com/thinkforbl/mcp-socramine/internal/redmine"

// CompactIssue is the trimmed projection of a backend issue that issue-list
// tools return. Custom fields are lifted to named members so callers never
// walk the raw field array; their values stay strings because the backend
// stores them as free text.
type CompactIssue struct {
	ID             int     `json:"id"`
	Project        string  `json:"project"`
	Tracker        string  `json:"tracker"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	Author         string  `json:"author"`
	AssignedTo     string  `json:"assigned_to"`
	Subject        string  `json:"subject"`
	StartDate      string  `json:"start_date"`
	DueDate        string  `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	MissionLevel   string  `json:"mission_level"`
	TargetYear     string  `json:"target_year"`
	PV             string  `json:"pv"`
	EV             string  `json:"ev"`
	AgreementNotes string  `json:"agreement_notes"`
	Agreed         bool    `json:"agreed"`
	InitialWBS     string  `json:"initial_wbs"`
	SprintWeek     string  `json:"sprint_week"`
	SprintMonth    string  `json:"sprint_month"`
}

// Compact projects issues into their report form.
func Compact(issues []redmine.Issue) []CompactIssue {
	out := make([]CompactIssue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, CompactIssue{
			ID:             issue.ID,
			Project:        issue.Project.Name,
			Tracker:        issue.Tracker.Name,
			Status:         issue.Status.Name,
			Priority:       issue.Priority.Name,
			Author:         issue.Author.Name,
			AssignedTo:     issue.AssignedTo.Name,
			Subject:        issue.Subject,
			StartDate:      issue.StartDate,
			DueDate:        issue.DueDate,
			EstimatedHours: issue.Hours(),
			MissionLevel:   fieldString(issue, fieldMissionLevel),
			TargetYear:     fieldString(issue, fieldTargetYear),
			PV:             fieldString(issue, fieldPV),
			EV:             fieldString(issue, fieldEV),
			AgreementNotes: fieldString(issue, fieldAgreement),
			Agreed:         agreed(issue),
			InitialWBS:     fieldString(issue, fieldInitialWBS),
			SprintWeek:     fieldString(issue, fieldSprintWeek),
			SprintMonth:    fieldString(issue, fieldSprintMonth),
		})
	}
	return out
}

// agreed reports whether the issue needs no further agreement, which is the
// case exactly when its agreement-notes field is empty.
func agreed(issue redmine.Issue) bool {
	v, ok := issue.CustomField(fieldAgreement)
	return !ok || v.Empty()
}

func fieldString(issue redmine.Issue, name string) string {
	v, _ := issue.CustomField(name)
	return v.String()
}
