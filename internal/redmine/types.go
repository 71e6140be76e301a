// Package redmine is a read-only client for the Redmine REST API.
//
// It decodes the loosely-shaped JSON payloads into typed records once, at the
// fetch boundary, so the layers above never probe raw maps. List endpoints
// are paginated transparently: callers always receive the full result set.
package redmine

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Ref is a compact reference to another Redmine object (project, tracker,
// status, user, ...): just an id and a display name.
type Ref struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CustomField is one entry of an issue's custom_fields array.
type CustomField struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Value FieldValue `json:"value"`
}

// FieldValue is a Redmine custom-field value. The API serves strings for
// single-value fields, null for unset ones, numbers for a few field formats,
// and arrays for multi-value fields; all of them normalize to one flat string
// at decode time (array entries joined with ", ", empties skipped).
type FieldValue struct {
	raw string
}

// Field builds a FieldValue from a plain string, mostly for tests and for
// synthesizing records outside the decode path.
func Field(s string) FieldValue {
	return FieldValue{raw: s}
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.raw = flattenValue(raw)
	return nil
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.raw)
}

func (v FieldValue) String() string {
	return v.raw
}

// Empty reports whether the field carries no value. An unset custom field and
// a field whose value is the empty string are indistinguishable in Redmine's
// output, and the reporting rules treat them the same.
func (v FieldValue) Empty() bool {
	return v.raw == ""
}

// Float coerces the value to a number. Absent, blank, and non-numeric values
// count as zero; sums over custom fields must never fail on dirty data.
func (v FieldValue) Float() float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
	if err != nil {
		return 0
	}
	return f
}

func flattenValue(raw any) string {
	switch val := raw.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := flattenValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

// Issue is a Redmine issue. Journals, children, attachments, and relations
// are only populated when the issue was fetched individually with includes.
type Issue struct {
	ID             int             `json:"id"`
	Project        Ref             `json:"project"`
	Tracker        Ref             `json:"tracker"`
	Status         Ref             `json:"status"`
	Priority       Ref             `json:"priority"`
	Author         Ref             `json:"author"`
	AssignedTo     Ref             `json:"assigned_to"`
	Parent         *Ref            `json:"parent,omitempty"`
	Subject        string          `json:"subject"`
	Description    string          `json:"description,omitempty"`
	StartDate      string          `json:"start_date"`
	DueDate        string          `json:"due_date"`
	EstimatedHours *float64        `json:"estimated_hours"`
	CustomFields   []CustomField   `json:"custom_fields"`
	Journals       []Journal       `json:"journals,omitempty"`
	Children       []Issue         `json:"children,omitempty"`
	Attachments    []Attachment    `json:"attachments,omitempty"`
	Relations      []IssueRelation `json:"relations,omitempty"`
}

// Hours returns the estimated hours, counting an unset field as zero.
func (i Issue) Hours() float64 {
	if i.EstimatedHours == nil {
		return 0
	}
	return *i.EstimatedHours
}

// CustomField returns the named custom field's value and whether the field
// exists on the issue at all.
func (i Issue) CustomField(name string) (FieldValue, bool) {
	for _, f := range i.CustomFields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return FieldValue{}, false
}

// FieldFloat returns the named custom field coerced to a number, with
// missing fields counting as zero.
func (i Issue) FieldFloat(name string) float64 {
	v, _ := i.CustomField(name)
	return v.Float()
}

// CustomFieldName resolves a custom field id to the field's display name, or
// "" when the issue does not carry that field. Journal details identify
// custom fields by id only.
func (i Issue) CustomFieldName(id int) string {
	for _, f := range i.CustomFields {
		if f.ID == id {
			return f.Name
		}
	}
	return ""
}

// Journal is one entry of an issue's change history.
type Journal struct {
	ID        int             `json:"id"`
	User      Ref             `json:"user"`
	Notes     string          `json:"notes"`
	CreatedOn string          `json:"created_on"`
	Details   []JournalDetail `json:"details"`
}

// JournalDetail records a single field change within a journal entry.
// Property is "attr" for built-in attributes and "cf" for custom fields;
// Name is the attribute name or the custom field id.
type JournalDetail struct {
	Property string     `json:"property"`
	Name     string     `json:"name"`
	OldValue FieldValue `json:"old_value"`
	NewValue FieldValue `json:"new_value"`
}

// Attachment is a file attached to an issue.
type Attachment struct {
	ID          int    `json:"id"`
	Filename    string `json:"filename"`
	Filesize    int64  `json:"filesize"`
	ContentType string `json:"content_type"`
	Author      Ref    `json:"author"`
	CreatedOn   string `json:"created_on"`
}

// IssueRelation links two issues (relates, blocks, precedes, ...).
type IssueRelation struct {
	ID           int    `json:"id"`
	IssueID      int    `json:"issue_id"`
	IssueToID    int    `json:"issue_to_id"`
	RelationType string `json:"relation_type"`
}

// User is a Redmine account.
type User struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Mail      string `json:"mail,omitempty"`
	CreatedOn string `json:"created_on,omitempty"`
}

// DisplayName renders the account's full name the way members are addressed
// in reports: Hangul family names join the given name without a space, Latin
// names keep one. Accounts without both name parts fall back to the login,
// then to the numeric id.
func (u User) DisplayName() string {
	if u.Lastname != "" && u.Firstname != "" {
		if containsHangul(u.Lastname) {
			return u.Lastname + u.Firstname
		}
		return u.Lastname + " " + u.Firstname
	}
	if u.Login != "" {
		return u.Login
	}
	return strconv.Itoa(u.ID)
}

func containsHangul(s string) bool {
	for _, r := range s {
		if r >= '가' && r <= '힣' {
			return true
		}
	}
	return false
}

// Project is a Redmine project.
type Project struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Identifier  string `json:"identifier"`
	Description string `json:"description,omitempty"`
	CreatedOn   string `json:"created_on,omitempty"`
}
