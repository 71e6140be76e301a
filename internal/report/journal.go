package report

import (
	"context"
	"strconv"
	"time"

	"github.com/thinkforbl/mcp-socramine/internal/redmine"
)

// JournalEntry is one issue history item that carried a note or at least one
// recorded change.
type JournalEntry struct {
	User      string          `json:"user"`
	CreatedOn string          `json:"created_on"`
	Notes     string          `json:"notes,omitempty"`
	Changes   []JournalChange `json:"changes,omitempty"`
}

// JournalChange is one recorded field transition. Field holds the attribute
// name for attribute changes and the custom field id for custom fields.
type JournalChange struct {
	Property string `json:"property"`
	Field    string `json:"field"`
	Old      string `json:"old_value"`
	New      string `json:"new_value"`
}

// IssueHistory returns the issue's journal, dropping entries that carry
// neither notes nor changes.
func (r *Reporter) IssueHistory(ctx context.Context, id int) ([]JournalEntry, error) {
	issue, err := r.backend.Issue(ctx, id)
	if err != nil {
		return nil, err
	}
	entries := make([]JournalEntry, 0, len(issue.Journals))
	for _, j := range issue.Journals {
		if j.Notes == "" && len(j.Details) == 0 {
			continue
		}
		entry := JournalEntry{User: j.User.Name, CreatedOn: j.CreatedOn, Notes: j.Notes}
		for _, d := range j.Details {
			entry.Changes = append(entry.Changes, JournalChange{
				Property: d.Property,
				Field:    d.Name,
				Old:      d.OldValue.String(),
				New:      d.NewValue.String(),
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// IssueLinks is everything one issue is connected to: its parent, typed
// relations, direct children, and attachments.
type IssueLinks struct {
	IssueID     int                 `json:"issue_id"`
	Subject     string              `json:"subject"`
	Parent      *ChildSummary       `json:"parent,omitempty"`
	Relations   []RelationSummary   `json:"relations,omitempty"`
	Children    []ChildSummary      `json:"children,omitempty"`
	Attachments []AttachmentSummary `json:"attachments,omitempty"`
}

// RelationSummary is one typed link between two issues.
type RelationSummary struct {
	ID        int    `json:"id"`
	IssueID   int    `json:"issue_id"`
	IssueToID int    `json:"issue_to_id"`
	Type      string `json:"relation_type"`
}

// ChildSummary names one directly linked issue (a parent or a child).
type ChildSummary struct {
	ID      int    `json:"id"`
	Subject string `json:"subject,omitempty"`
	Tracker string `json:"tracker,omitempty"`
}

// AttachmentSummary is one file attached to an issue.
type AttachmentSummary struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Filesize    int64  `json:"filesize"`
	ContentType string `json:"content_type,omitempty"`
	Author      string `json:"author,omitempty"`
	CreatedOn   string `json:"created_on,omitempty"`
}

// IssueLinks returns the issue's parent, relations, direct children, and
// attachments.
func (r *Reporter) IssueLinks(ctx context.Context, id int) (*IssueLinks, error) {
	issue, err := r.backend.Issue(ctx, id)
	if err != nil {
		return nil, err
	}
	links := &IssueLinks{IssueID: issue.ID, Subject: issue.Subject}
	if issue.Parent != nil {
		links.Parent = &ChildSummary{ID: issue.Parent.ID, Subject: issue.Parent.Name}
	}
	for _, rel := range issue.Relations {
		links.Relations = append(links.Relations, RelationSummary{
			ID:        rel.ID,
			IssueID:   rel.IssueID,
			IssueToID: rel.IssueToID,
			Type:      rel.RelationType,
		})
	}
	for _, child := range issue.Children {
		links.Children = append(links.Children, ChildSummary{
			ID:      child.ID,
			Subject: child.Subject,
			Tracker: child.Tracker.Name,
		})
	}
	for _, att := range issue.Attachments {
		links.Attachments = append(links.Attachments, AttachmentSummary{
			ID:          att.ID,
			Filename:    att.Filename,
			Filesize:    att.Filesize,
			ContentType: att.ContentType,
			Author:      att.Author.Name,
			CreatedOn:   att.CreatedOn,
		})
	}
	return links, nil
}

// PlanChange is a planning field edited on a later day than the issue's
// start date, when the work had already begun.
type PlanChange struct {
	IssueID   int    `json:"issue_id"`
	Subject   string `json:"subject"`
	ChangedOn string `json:"changed_on"`
	User      string `json:"user"`
	Field     string `json:"field"`
	Old       string `json:"old_value"`
	New       string `json:"new_value"`
}

// Journal detail names that count as plan edits. Attribute changes carry the
// attribute name; custom field changes carry the field id, which resolves to
// a name through the issue's own field list.
var planAttrs = map[string]bool{
	"estimated_hours": true,
	"start_date":      true,
	"due_date":        true,
}

var planFields = map[string]bool{
	fieldPV:          true,
	fieldSprintWeek:  true,
	fieldSprintMonth: true,
}

// PlanChanges scans the member's issues for the fiscal week of date and
// lists every plan edit recorded after the issue had started. Issues without
// a start date cannot be judged and are skipped.
func (r *Reporter) PlanChanges(ctx context.Context, name string, date time.Time) ([]PlanChange, error) {
	memberID, err := r.dict.MemberID(name)
	if err != nil {
		return nil, err
	}
	stubs, err := r.backend.Issues(ctx, scopeParams(memberID, date, true))
	if err != nil {
		return nil, err
	}
	var changes []PlanChange
	for _, stub := range stubs {
		if stub.StartDate == "" {
			continue
		}
		started, perr := time.Parse("2006-01-02", stub.StartDate)
		if perr != nil {
			continue
		}
		issue, err := r.backend.Issue(ctx, stub.ID)
		if err != nil {
			return nil, err
		}
		for _, j := range issue.Journals {
			at, perr := time.Parse(time.RFC3339, j.CreatedOn)
			if perr != nil {
				continue
			}
			day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
			if !day.After(started) {
				continue
			}
			for _, d := range j.Details {
				field, ok := planField(issue, d)
				if !ok {
					continue
				}
				changes = append(changes, PlanChange{
					IssueID:   issue.ID,
					Subject:   issue.Subject,
					ChangedOn: j.CreatedOn,
					User:      j.User.Name,
					Field:     field,
					Old:       d.OldValue.String(),
					New:       d.NewValue.String(),
				})
			}
		}
	}
	return changes, nil
}

func planField(issue *redmine.Issue, d redmine.JournalDetail) (string, bool) {
	switch d.Property {
	case "attr":
		if planAttrs[d.Name] {
			return d.Name, true
		}
	case "cf":
		id, err := strconv.Atoi(d.Name)
		if err != nil {
			return "", false
		}
		if name := issue.CustomFieldName(id); planFields[name] {
			return name, true
		}
	}
	return "", false
}
