package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// DirectoryScanner lists the image files of one class directory in a
// deterministic (lexicographic) order.
type DirectoryScanner struct {
	root string
}

func NewDirectoryScanner(root string) *DirectoryScanner {
	return &DirectoryScanner{root: root}
}

func (ds *DirectoryScanner) ListImageFiles() ([]string, error) {
	info, err := os.Stat(ds.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", ds.root)
	}

	entries, err := os.ReadDir(ds.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			files = append(files, filepath.Join(ds.root, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no image files found in %s", ds.root)
	}

	sort.Strings(files)
	return files, nil
}
