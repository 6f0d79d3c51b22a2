package walk

import "sort"

// DenyList is a set of directory base names that are pruned unconditionally.
// It is never mutated after construction; With returns a copy.
type DenyList struct {
	names map[string]struct{}
}

// defaultDenied holds dependency caches, build outputs and VCS internals.
var defaultDenied = []string{
	".git", ".hg", ".svn", ".bzr",
	"node_modules", "bower_components",
	"target", "dist", "build", "out",
	"__pycache__", ".venv", "venv", ".tox", ".mypy_cache", ".pytest_cache",
	".gradle", ".next", ".nuxt", ".cache",
}

// NewDenyList returns a deny-list holding exactly names.
func NewDenyList(names ...string) DenyList {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return DenyList{names: set}
}

// DefaultDenyList returns the built-in deny-list.
func DefaultDenyList() DenyList {
	return NewDenyList(defaultDenied...)
}

// With returns a new deny-list holding the receiver's names plus names.
func (d DenyList) With(names ...string) DenyList {
	return NewDenyList(append(d.Names(), names...)...)
}

// Contains reports whether a directory called name must be pruned.
func (d DenyList) Contains(name string) bool {
	_, ok := d.names[name]
	return ok
}

// Names returns the sorted entries.
func (d DenyList) Names() []string {
	names := make([]string, 0, len(d.names))
	for name := range d.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
