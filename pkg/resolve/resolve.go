// Package resolve turns path arguments into the ordered, de-duplicated list
// of files that pbcat copies.
package resolve

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"pbcat/pkg/apperr"
	"pbcat/pkg/walk"
)

// SortMode selects the order of the resolved list.
type SortMode string

const (
	// SortArgs keeps discovery order: arguments left to right, directories
	// expanded in place.
	SortArgs SortMode = "args"
	// SortName orders the list by canonical path.
	SortName SortMode = "name"
)

// ParseSortMode validates a --sort value.
func ParseSortMode(value string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case SortArgs, SortName:
		return mode, nil
	}
	return "", apperr.Usage(fmt.Sprintf("invalid sort mode %q (expected %q or %q)", value, SortArgs, SortName))
}

// Resolver builds the file list for one invocation.
type Resolver struct {
	walker *walk.Walker
	sort   SortMode
	logger *zap.Logger
}

// New creates a Resolver expanding directories with walker.
func New(walker *walk.Walker, mode SortMode, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mode == "" {
		mode = SortArgs
	}
	return &Resolver{walker: walker, sort: mode, logger: logger}
}

// fileSet is an insertion-ordered set of canonical paths.
type fileSet struct {
	order []string
	seen  map[string]struct{}
}

// add canonicalizes path and appends it unless already present.
func (s *fileSet) add(path string) error {
	canonical, err := Canonicalize(path)
	if err != nil {
		return err
	}
	if _, ok := s.seen[canonical]; ok {
		return nil
	}
	s.seen[canonical] = struct{}{}
	s.order = append(s.order, canonical)
	return nil
}

// Resolve returns the canonical paths of every file named by inputs, each
// exactly once. The first failure aborts resolution.
func (r *Resolver) Resolve(inputs []string) ([]string, error) {
	set := &fileSet{seen: make(map[string]struct{})}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, apperr.FromOS("stat", input, err)
		}

		switch {
		case info.Mode().IsRegular():
			if err := set.add(input); err != nil {
				return nil, err
			}
		case info.IsDir():
			if err := r.addDir(set, input); err != nil {
				return nil, err
			}
		default:
			return nil, apperr.New(apperr.KindInvalidInput, "stat", input, nil)
		}
	}

	if len(set.order) == 0 {
		return nil, apperr.New(apperr.KindNoFilesFound, "", "", nil)
	}

	if r.sort == SortName {
		sort.Strings(set.order)
	}

	r.logger.Debug("Resolved files",
		zap.Int("inputs", len(inputs)),
		zap.Int("files", len(set.order)),
		zap.String("sort", string(r.sort)))
	return set.order, nil
}

func (r *Resolver) addDir(set *fileSet, dir string) error {
	before := len(set.order)
	for path, err := range r.walker.Files(dir) {
		if err != nil {
			return err
		}
		if err := set.add(path); err != nil {
			return err
		}
	}
	r.logger.Debug("Expanded directory", zap.String("dir", dir), zap.Int("newFiles", len(set.order)-before))
	return nil
}
