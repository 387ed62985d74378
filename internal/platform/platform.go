// Package platform describes the host conventions that leak into tool
// arguments: the path separator and the path-list separator.
package platform

import (
	"runtime"
	"strings"
)

// OS name constants for GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Platform is an explicit snapshot of OS conventions. Composers take one
// as input instead of consulting runtime.GOOS themselves.
type Platform struct {
	OS            string
	PathSeparator string
	ListSeparator string
}

// Current returns the Platform of the running process.
func Current() Platform {
	return ForOS(runtime.GOOS)
}

// ForOS returns the Platform for the given GOOS value.
func ForOS(goos string) Platform {
	if goos == Windows {
		return Platform{OS: goos, PathSeparator: `\`, ListSeparator: ";"}
	}
	return Platform{OS: goos, PathSeparator: "/", ListSeparator: ":"}
}

// JoinList joins search-path entries with the list separator.
// Empty entries are dropped.
func (p Platform) JoinList(entries ...string) string {
	kept := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != "" {
			kept = append(kept, p.Path(e))
		}
	}
	return strings.Join(kept, p.ListSeparator)
}

// Path rewrites forward slashes in a slash-separated path to the platform
// separator and joins the elements with it.
func (p Platform) Path(elems ...string) string {
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		if e == "" {
			continue
		}
		if p.PathSeparator != "/" {
			e = strings.ReplaceAll(e, "/", p.PathSeparator)
		}
		parts = append(parts, strings.TrimSuffix(e, p.PathSeparator))
	}
	return strings.Join(parts, p.PathSeparator)
}
