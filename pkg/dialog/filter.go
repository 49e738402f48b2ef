package dialog

import (
	"github.com/gobwas/glob"

	"pickd/internal/errors"
)

// GlobFilter compiles patterns into a predicate accepting any path or
// name whose last segment matches at least one pattern. The result
// suits both WithFilter and WithFilenameFilter.
func GlobFilter(patterns ...string) (func(string) bool, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid glob pattern %q", pattern)
		}
		globs = append(globs, g)
	}
	return func(p string) bool {
		name := lastSegment(p)
		for _, g := range globs {
			if g.Match(name) {
				return true
			}
		}
		return false
	}, nil
}
