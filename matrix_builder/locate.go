package matrix_builder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LocateInput globs dir for pattern and insists on exactly one match.
// Zero matches and multiple matches are both hard errors that name the
// pattern and the count; picking an arbitrary file from an ambiguous
// directory is how the wrong dataset ends up in a report.
func LocateInput(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("bad input pattern %q: %w", pattern, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no file matching %q in %s", pattern, dir)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%d files match %q in %s (%s); expected exactly one",
			len(matches), pattern, dir, strings.Join(matches, ", "))
	}
}
