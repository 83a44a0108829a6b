package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath converts a configured location to a clean local path.
// Handles file:// URIs, a leading "~/" and bare paths.
func ResolvePath(location string) string {
	path := strings.TrimPrefix(location, "file://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
