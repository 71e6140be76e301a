// Package config loads the server settings and the static lookup tables.
//
// Everything here is read once at startup and passed down explicitly; nothing
// reads configuration through package globals after that point.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings is the full server configuration.
type Settings struct {
	Redmine      RedmineSettings `yaml:"redmine"`
	History      HistorySettings `yaml:"history"`
	Dictionaries Dictionaries    `yaml:"dictionaries"`
}

// RedmineSettings configures the backend connection.
type RedmineSettings struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	PageSize       int    `yaml:"page_size"`
}

// Timeout returns the per-request timeout as a duration.
func (r RedmineSettings) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// HistorySettings configures the local run-history database.
type HistorySettings struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".socramine", "config.yaml")
}

// Load reads the YAML settings file at path (the default path when empty),
// applies environment overrides, fills defaults, and validates.
//
// A missing file is only an error when the path was given explicitly; the
// default path may be absent as long as REDMINE_URL and REDMINE_API_KEY are
// set in the environment.
func Load(path string) (*Settings, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	s := &Settings{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if v := os.Getenv("REDMINE_URL"); v != "" {
		s.Redmine.URL = v
	}
	if v := os.Getenv("REDMINE_API_KEY"); v != "" {
		s.Redmine.APIKey = v
	}

	s.applyDefaults()
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.Redmine.TimeoutSeconds <= 0 {
		s.Redmine.TimeoutSeconds = 120
	}
	if s.Redmine.PageSize <= 0 {
		s.Redmine.PageSize = 100
	}
	if s.History.Path == "" {
		home, _ := os.UserHomeDir()
		s.History.Path = filepath.Join(home, ".socramine", "history.db")
	}
}

func (s *Settings) validate() error {
	if s.Redmine.URL == "" {
		return fmt.Errorf("config: redmine.url is required (or set REDMINE_URL)")
	}
	if s.Redmine.APIKey == "" {
		return fmt.Errorf("config: redmine.api_key is required (or set REDMINE_API_KEY)")
	}
	return nil
}
