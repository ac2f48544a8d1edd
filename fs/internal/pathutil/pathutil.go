// Package pathutil provides helpers for manipulating abstract filesystem
// paths: forward-slash separated strings with no drive letters, where the
// empty string names the root.
package pathutil

import (
	"path"
	"runtime"
	"strings"
)

// Separator is the abstract path separator.
const Separator = "/"

// windows selects the Windows path syntax. Tests flip it to exercise both
// platforms.
var windows = runtime.GOOS == "windows"

// ToSlashes converts backslashes to forward slashes on Windows. Elsewhere a
// backslash is an ordinary filename character and p is returned unchanged.
func ToSlashes(p string) string {
	if !windows {
		return p
	}
	return strings.ReplaceAll(p, "\\", Separator)
}

// EnsureTrailingSlash appends a separator unless p is empty or already ends
// with one.
func EnsureTrailingSlash(p string) string {
	if p == "" || strings.HasSuffix(p, Separator) {
		return p
	}
	return p + Separator
}

// RemoveTrailingSlash strips every trailing separator.
func RemoveTrailingSlash(p string) string {
	return strings.TrimRight(p, Separator)
}

// RemoveLeadingSlash strips every leading separator.
func RemoveLeadingSlash(p string) string {
	return strings.TrimLeft(p, Separator)
}

// Join concatenates a base directory with a relative stem.
// An empty base returns the stem and an empty stem returns the base.
func Join(base, stem string) string {
	if base == "" {
		return stem
	}
	if stem == "" {
		return base
	}
	return EnsureTrailingSlash(base) + RemoveLeadingSlash(stem)
}

// JoinKey joins a parent key and an entry name without normalization.
func JoinKey(parent, name string) string {
	if parent != "" {
		return parent + Separator + name
	}
	return name
}

// Parent returns the directory part of p, or "" when p has none.
func Parent(p string) string {
	p = RemoveTrailingSlash(p)
	i := strings.LastIndex(p, Separator)
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Base returns the last component of p.
func Base(p string) string {
	p = RemoveTrailingSlash(p)
	return p[strings.LastIndex(p, Separator)+1:]
}

// Extension returns the part of the base name after the last dot, without
// the dot, or "" when there is none.
func Extension(p string) string {
	base := Base(p)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

// Normalize converts backslashes (on Windows), resolves "." and ".." elements and drops
// trailing separators. A leading separator is preserved and the empty path
// stays empty.
func Normalize(p string) string {
	if p == "" {
		return ""
	}

	p = path.Clean(ToSlashes(p))
	if p == "." {
		return ""
	}
	if p == Separator {
		return p
	}
	return RemoveTrailingSlash(p)
}

// IsAbsolute reports whether p is an absolute local path in the syntax of
// the current platform. Drive letter and UNC forms only count on Windows.
func IsAbsolute(p string) bool {
	if strings.HasPrefix(p, Separator) {
		return true
	}
	if !windows {
		return false
	}

	// Windows drive letters (C:\, d:/)
	if len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		drive := p[0]
		if (drive >= 'A' && drive <= 'Z') || (drive >= 'a' && drive <= 'z') {
			return true
		}
	}

	// UNC paths (\\server\share)
	return strings.HasPrefix(p, "\\\\")
}

// HasTraversal reports whether any element of p, split on either slash
// style, is "..".
func HasTraversal(p string) bool {
	if !strings.Contains(p, "..") {
		return false
	}
	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

// IsAncestor reports whether descendant lies strictly inside ancestor.
// The root "" is the ancestor of every non-empty path.
func IsAncestor(ancestor, descendant string) bool {
	ancestor = RemoveTrailingSlash(ancestor)
	if ancestor == "" {
		return descendant != ""
	}
	return strings.HasPrefix(descendant, ancestor+Separator)
}
