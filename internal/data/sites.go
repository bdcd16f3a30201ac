package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Site is a named location a production estimate can be modeled for.
type Site struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SiteList is a collection of known sites.
type SiteList struct {
	UpdatedAt string `json:"updated_at"` // ISO 8601 timestamp
	Sites     []Site `json:"sites"`
}

// DefaultSites returns the built-in site registry used when no sites file
// is present.
func DefaultSites() *SiteList {
	return &SiteList{
		Sites: []Site{
			// Southern-hemisphere latitudes are negative.
			{ID: "perth", Name: "Perth, WA", Latitude: -32.03, Longitude: 115.98},
		},
	}
}

// LoadSites loads sites from a JSON file.
func LoadSites(filePath string) (*SiteList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}

	var list SiteList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse sites file: %w", err)
	}
	return &list, nil
}

// SaveSites saves sites to a JSON file.
func SaveSites(list *SiteList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sites: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write sites file: %w", err)
	}
	return nil
}

// FindSite looks up a site by ID (case-insensitive). Falls back to the
// built-in registry when filePath is empty or missing.
func FindSite(filePath, id string) (Site, error) {
	list := DefaultSites()
	if filePath != "" {
		if loaded, err := LoadSites(filePath); err == nil {
			list = loaded
		}
	}
	for _, s := range list.Sites {
		if strings.EqualFold(s.ID, id) {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("unknown site %q", id)
}
