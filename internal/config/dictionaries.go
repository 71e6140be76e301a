package config

import (
	"fmt"
	"strings"
)

// Dictionaries are the static name-to-id tables the tools translate
// human-readable parameters through. Values are backend ids kept as strings
// so they can be dropped into query parameters directly.
type Dictionaries struct {
	Members       map[string]string `yaml:"members" json:"members"`
	IssueStatuses map[string]string `yaml:"issue_statuses" json:"issue_statuses"`
	Priorities    map[string]string `yaml:"priorities" json:"priorities"`
	TrackerTypes  map[string]string `yaml:"tracker_types" json:"tracker_types"`
}

// MemberID resolves a member name to their backend id. Matching is
// case-insensitive on the trimmed name. Unknown or blank-valued names are an
// error, never silently defaulted.
func (d Dictionaries) MemberID(name string) (string, error) {
	key := normalize(name)
	for k, id := range d.Members {
		if normalize(k) == key && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("member %q not found", name)
}

// StatusParam translates a status filter into a status_id query value. An
// empty filter means every status. Comma-separated names are translated
// one by one; names missing from the table pass through as given so raw ids
// and the "*" wildcard keep working.
func (d Dictionaries) StatusParam(status string) string {
	if strings.TrimSpace(status) == "" {
		return "*"
	}
	return mapParam(status, d.IssueStatuses)
}

// TrackerParam translates a tracker filter into a tracker_id query value.
func (d Dictionaries) TrackerParam(tracker string) string {
	return mapParam(tracker, d.TrackerTypes)
}

// PriorityParam translates a priority filter into a priority_id query value.
func (d Dictionaries) PriorityParam(priority string) string {
	return mapParam(priority, d.Priorities)
}

func mapParam(raw string, table map[string]string) string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		token := normalize(part)
		mapped := token
		for k, id := range table {
			if normalize(k) == token {
				mapped = id
				break
			}
		}
		out = append(out, mapped)
	}
	return strings.Join(out, ",")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
