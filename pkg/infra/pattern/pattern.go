// Package pattern loads clean pattern files: UTF-8 text with one glob per line.
// Blank lines and lines starting with '#' are ignored.
package pattern

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

// Load reads the pattern file at path and returns its patterns in file order, duplicates kept
func Load(path string) ([]string, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		reason := types.ReasonIO
		switch {
		case errors.Is(err, fs.ErrNotExist):
			reason = types.ReasonNotFound
		case errors.Is(err, fs.ErrPermission):
			reason = types.ReasonPermission
		}
		return nil, goerr.Wrap(err, "failed to read pattern file",
			goerr.T(types.ErrTagFileAccess),
			goerr.V("path", path),
			goerr.V("reason", reason),
		)
	}

	return Parse(string(raw)), nil
}

// Parse splits text into patterns
func Parse(text string) []string {
	patterns := []string{}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
