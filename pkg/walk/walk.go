// Package walk enumerates the regular files below a directory root.
//
// A walk is a pre-order traversal with siblings visited in byte order of
// their names. Below the root it skips hidden entries, symlinks, directories
// named in the DenyList and anything excluded by the layered ignore rules of
// package ignore. The root itself is never filtered.
package walk

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pbcat/pkg/apperr"
	"pbcat/pkg/ignore"
)

// Options configures a Walker.
type Options struct {
	DenyList DenyList       // Directory names pruned regardless of ignore rules.
	Ignore   ignore.Options // Ignore sources layered under each root.
}

// Walker produces the files below a root. It holds no per-walk state and can
// be reused across roots.
type Walker struct {
	deny   DenyList
	ignore ignore.Options
	logger *zap.Logger
}

// New creates a Walker.
func New(opts Options, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		deny:   opts.DenyList,
		ignore: opts.Ignore,
		logger: logger,
	}
}

// Files returns the lazy sequence of regular files below root. The first
// error ends the sequence; it is yielded with an empty path.
func (w *Walker) Files(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			yield("", apperr.FromOS("resolve directory", root, err))
			return
		}

		gi, err := ignore.LoadIgnoreFiles(absRoot, w.ignore, w.logger)
		if err != nil {
			yield("", err)
			return
		}

		w.logger.Debug("Starting directory walk", zap.String("root", absRoot))
		w.walkDir(absRoot, gi, yield)
	}
}

// walkDir visits dir's entries and reports whether the walk should go on.
func (w *Walker) walkDir(dir string, parent *ignore.GitIgnore, yield func(string, error) bool) bool {
	gi, err := parent.Descend(dir)
	if err != nil {
		yield("", err)
		return false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Debug("Failed to read directory", zap.String("dir", dir), zap.Error(err))
		yield("", apperr.FromOS("read directory", dir, err))
		return false
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if isHidden(name) {
			continue
		}

		switch mode := entry.Type(); {
		case mode.IsDir():
			if w.deny.Contains(name) {
				w.logger.Debug("Pruning denied directory", zap.String("dir", path))
				continue
			}
			if gi.MatchesPath(path, true) {
				continue
			}
			if !w.walkDir(path, gi, yield) {
				return false
			}
		case mode.IsRegular():
			if gi.MatchesPath(path, false) {
				continue
			}
			if !yield(path, nil) {
				return false
			}
		default:
			// Symlinks and special files are not followed.
		}
	}
	return true
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
