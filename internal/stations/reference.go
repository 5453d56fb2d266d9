// Package stations builds the per-route reference table of known station
// names and corrects OCR-garbled destination text against it.
package stations

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reference maps a route identifier to the known station names on that route.
// It is built once per batch and read-only afterwards, so it is safe to share
// across parallel decodes without locking.
type Reference map[string][]string

// DefaultOverrides seeds stations whose names cannot be derived from image
// filenames, such as terminal stations that never get a board of their own.
func DefaultOverrides() map[string][]string {
	return map[string][]string{
		"首都机场": {"首都机场"},
		"1":    {"环球度假区"},
		"八通":   {"古城"},
	}
}

// LoadOverrides reads a route->stations override map from a YAML file.
func LoadOverrides(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	// G304: path comes from configuration, expected user input
	if err != nil {
		return nil, fmt.Errorf("failed to read station overrides: %w", err)
	}
	var overrides map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse station overrides: %w", err)
	}
	return overrides, nil
}

// RouteStation parses the route and station identifiers from an image
// filename of the form "route-station-*.ext". Both are empty when the name
// does not carry at least two components.
func RouteStation(filename string) (route, station string) {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(stem, "-")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// BuildReference assembles the reference table from a corpus of image
// filenames plus manual overrides. Override entries keep their position at
// the head of each route's list; filename-derived stations append in
// first-encountered order without duplicates.
func BuildReference(filenames []string, overrides map[string][]string) Reference {
	ref := make(Reference, len(overrides))
	for route, names := range overrides {
		ref[route] = append([]string(nil), names...)
	}

	for _, filename := range filenames {
		route, station := RouteStation(filename)
		if route == "" || station == "" {
			continue
		}
		if !containsString(ref[route], station) {
			ref[route] = append(ref[route], station)
		}
	}
	return ref
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
