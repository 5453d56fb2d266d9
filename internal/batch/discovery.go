package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are the board photo formats the corpus contains.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// discoverImageFiles finds all board images under the given paths, applying
// the optional route filter, and returns them sorted by path for stable
// output order.
func discoverImageFiles(args []string, recursive bool, routeFilter string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			found, err := discoverInDirectory(arg, recursive)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		} else if isImageFile(arg) {
			files = append(files, arg)
		}
	}

	if routeFilter != "" {
		files = filterByRoute(files, routeFilter)
	}

	sort.Strings(files)
	return files, nil
}

func discoverInDirectory(dir string, recursive bool) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if isImageFile(path) {
			files = append(files, path)
		}
		return nil
	}

	return files, filepath.Walk(dir, walkFn)
}

func isImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// filterByRoute keeps files whose stem starts with "<route>-".
func filterByRoute(files []string, route string) []string {
	prefix := route + "-"
	var kept []string
	for _, f := range files {
		if strings.HasPrefix(filepath.Base(f), prefix) {
			kept = append(kept, f)
		}
	}
	return kept
}
