package dialog

import "strings"

// Path handling works on the backend's separator, not the host
// platform's, so a slash backend behaves identically everywhere. Paths
// are treated as opaque segment lists; nothing is resolved or cleaned.

// joinPath appends name to dir with exactly one separator between them.
func joinPath(sep, dir, name string) string {
	if strings.HasSuffix(dir, sep) {
		return dir + name
	}
	return dir + sep + name
}

// parentPath removes the last path segment. The second return is false
// when p is a filesystem root or a drive root, in which case p comes
// back unchanged.
func parentPath(sep, p string) (string, bool) {
	s := strings.TrimSuffix(p, sep)
	if s == "" || strings.HasSuffix(s, ":") {
		return p, false
	}
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return p, false
	}
	parent := s[:idx]
	if parent == "" || strings.HasSuffix(parent, ":") {
		parent = s[:idx+len(sep)]
	}
	return parent, true
}

// pathDepth counts the segments of p. The completion engine only
// compares successive values for equality, so the absolute number does
// not matter as long as it changes exactly when a separator is crossed.
func pathDepth(sep, p string) int {
	depth := 0
	for _, seg := range strings.Split(p, sep) {
		if seg != "" {
			depth++
		}
	}
	if strings.HasPrefix(p, sep) {
		depth++
	}
	return depth
}

// trailingSegment returns the text after the last separator; empty when
// p ends with a separator.
func trailingSegment(sep, p string) string {
	idx := strings.LastIndex(p, sep)
	if idx < 0 {
		return p
	}
	return p[idx+len(sep):]
}

// siblingPath replaces the last segment of p with name.
func siblingPath(sep, p, name string) string {
	parent, ok := parentPath(sep, p)
	if !ok {
		return name
	}
	return joinPath(sep, parent, name)
}

// baseName returns the last segment of p. Roots ("/" or "C:\") come
// back whole, matching how volume entries display themselves.
func baseName(sep, p string) string {
	s := strings.TrimSuffix(p, sep)
	if s == "" || strings.HasSuffix(s, ":") {
		return p
	}
	idx := strings.LastIndex(s, sep)
	return s[idx+len(sep):]
}

// lastSegment splits on either separator style. Filters receive full
// paths from backends whose separator is not known at compile time.
func lastSegment(p string) string {
	if idx := strings.LastIndexAny(p, `/\`); idx >= 0 {
		return p[idx+1:]
	}
	return p
}
