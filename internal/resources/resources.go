// Package resources implements the MCP resource handlers for the Socramine
// server.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (socramine://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thinkforbl/mcp-socramine/internal/config"
)

// Handler serves the Socramine resource endpoints.
type Handler struct {
	settings *config.Settings
}

// NewHandler creates a resource Handler over the loaded settings.
func NewHandler(settings *config.Settings) *Handler {
	return &Handler{settings: settings}
}

// DictionariesResource returns the MCP resource definition for the lookup
// tables.
func (h *Handler) DictionariesResource() mcp.Resource {
	return mcp.NewResource(
		"socramine://dictionaries",
		"Socramine Dictionaries",
		mcp.WithResourceDescription("The member, status, priority and tracker lookup tables"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleDictionaries returns the lookup tables as JSON.
func (h *Handler) HandleDictionaries(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(h.settings.Dictionaries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling dictionaries: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

// ConfigResource returns the MCP resource definition for the active settings.
func (h *Handler) ConfigResource() mcp.Resource {
	return mcp.NewResource(
		"socramine://config",
		"Socramine Configuration",
		mcp.WithResourceDescription("The active server settings with the API key masked"),
		mcp.WithMIMEType("application/json"),
	)
}

// settingsView is the externally visible shape of the configuration. The API
// key never leaves the process unmasked.
type settingsView struct {
	RedmineURL      string `json:"redmine_url"`
	APIKey          string `json:"api_key"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	PageSize        int    `json:"page_size"`
	HistoryPath     string `json:"history_path"`
	HistoryDisabled bool   `json:"history_disabled"`
}

// HandleConfig returns the active settings as JSON with the API key masked.
func (h *Handler) HandleConfig(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	view := settingsView{
		RedmineURL:      h.settings.Redmine.URL,
		APIKey:          maskKey(h.settings.Redmine.APIKey),
		TimeoutSeconds:  h.settings.Redmine.TimeoutSeconds,
		PageSize:        h.settings.Redmine.PageSize,
		HistoryPath:     h.settings.History.Path,
		HistoryDisabled: h.settings.History.Disabled,
	}
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return jsonResource(req.Params.URI, data), nil
}

func jsonResource(uri string, data []byte) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}
}

// maskKey keeps the last four characters of a long key for recognition and
// hides the rest.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) > 8 {
		return "****" + key[len(key)-4:]
	}
	return "****"
}
