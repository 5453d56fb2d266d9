package stations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteStation(t *testing.T) {
	tests := []struct {
		filename string
		route    string
		station  string
	}{
		{"4-西单-1.png", "4", "西单"},
		{"timetables/10-国贸-2.jpg", "10", "国贸"},
		{"大兴机场-草桥-1.jpeg", "大兴机场", "草桥"},
		{"noseparator.png", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		route, station := RouteStation(tt.filename)
		assert.Equal(t, tt.route, route, tt.filename)
		assert.Equal(t, tt.station, station, tt.filename)
	}
}

func TestBuildReference(t *testing.T) {
	files := []string{
		"4-西单-1.png",
		"4-天宫院-1.png",
		"4-西单-2.png", // duplicate station
		"10-国贸-1.png",
		"badname.png",
	}

	ref := BuildReference(files, DefaultOverrides())

	assert.Equal(t, []string{"西单", "天宫院"}, ref["4"])
	assert.Equal(t, []string{"国贸"}, ref["10"])
	// Overrides survive and stay at the head of their route's list.
	assert.Equal(t, []string{"环球度假区"}, ref["1"])
	assert.Equal(t, []string{"古城"}, ref["八通"])
	assert.Equal(t, []string{"首都机场"}, ref["首都机场"])
}

func TestBuildReference_OverrideSeedsKeepPosition(t *testing.T) {
	files := []string{"1-四惠-1.png"}
	ref := BuildReference(files, DefaultOverrides())
	assert.Equal(t, []string{"环球度假区", "四惠"}, ref["1"])
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.yaml")
	content := "\"1\":\n  - 环球度假区\n八通:\n  - 古城\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	overrides, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"环球度假区"}, overrides["1"])
	assert.Equal(t, []string{"古城"}, overrides["八通"])
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
