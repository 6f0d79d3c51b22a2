package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"pbcat/pkg/apperr"
)

// DefaultFileNames are the per-directory ignore files, lowest precedence first.
var DefaultFileNames = []string{".gitignore", ".ignore"}

// GitIgnore is an immutable layer of ignore patterns anchored at a base
// directory. Descend returns a new layer; the receiver is never modified once
// it has been handed to a walker.
type GitIgnore struct {
	base      string              // Absolute directory all matched paths are made relative to.
	fileNames []string            // Per-directory ignore file names.
	patterns  []gitignore.Pattern // Compiled patterns, later entries win.
	matcher   gitignore.Matcher   // Matcher over patterns.
	logger    *zap.Logger         // Logger for debug information.
}

// NewGitIgnore initializes an empty GitIgnore anchored at base.
func NewGitIgnore(base string, fileNames []string, logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fileNames == nil {
		fileNames = DefaultFileNames
	}
	return &GitIgnore{
		base:      filepath.Clean(base),
		fileNames: fileNames,
		matcher:   gitignore.NewMatcher(nil),
		logger:    logger,
	}
}

// Base returns the directory the patterns are anchored at.
func (gi *GitIgnore) Base() string {
	return gi.base
}

// Len returns the number of compiled patterns.
func (gi *GitIgnore) Len() int {
	return len(gi.patterns)
}

// CompileIgnoreLines compiles ignore lines scoped to domain (the directory
// that holds them, as components relative to the base) and adds them on top
// of the existing patterns.
func (gi *GitIgnore) CompileIgnoreLines(domain []string, lines ...string) {
	for i, line := range lines {
		pattern, ok := parsePatternLine(line, domain)
		if !ok {
			continue
		}
		gi.patterns = append(gi.patterns, pattern)
		gi.logger.Debug("Compiled ignore pattern",
			zap.Int("lineNo", i+1),
			zap.String("pattern", line),
			zap.Strings("domain", domain))
	}
	gi.matcher = gitignore.NewMatcher(gi.patterns)
}

// CompileIgnoreFile reads an ignore file and compiles its lines under domain.
// A missing file is not an error.
func (gi *GitIgnore) CompileIgnoreFile(filePath string, domain []string) (bool, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		gi.logger.Debug("Failed to read ignore file", zap.String("filePath", filePath), zap.Error(err))
		return false, apperr.FromOS("read ignore file", filePath, err)
	}

	lines := strings.Split(string(content), "\n")
	gi.CompileIgnoreLines(domain, lines...)
	gi.logger.Debug("Compiled ignore file", zap.String("filePath", filePath), zap.Int("lineCount", len(lines)))
	return true, nil
}

// Descend returns the layer that applies inside dir: the receiver plus the
// ignore files found directly in dir. When dir holds no ignore file the
// receiver itself is returned.
func (gi *GitIgnore) Descend(dir string) (*GitIgnore, error) {
	domain, ok := gi.components(dir)
	if !ok {
		return gi, nil
	}

	child := &GitIgnore{
		base:      gi.base,
		fileNames: gi.fileNames,
		patterns:  slices.Clip(gi.patterns),
		matcher:   gi.matcher,
		logger:    gi.logger,
	}

	loaded := false
	for _, name := range gi.fileNames {
		found, err := child.CompileIgnoreFile(filepath.Join(dir, name), domain)
		if err != nil {
			return nil, err
		}
		loaded = loaded || found
	}
	if !loaded {
		return gi, nil
	}
	return child, nil
}

// MatchesPath reports whether path is excluded by the layered rules. Paths
// outside the base never match.
func (gi *GitIgnore) MatchesPath(path string, isDir bool) bool {
	parts, ok := gi.components(path)
	if !ok || len(parts) == 0 {
		return false
	}

	matched := gi.matcher.Match(parts, isDir)
	if matched {
		gi.logger.Debug("Path matches ignore rules", zap.String("path", path), zap.Bool("isDir", isDir))
	}
	return matched
}

// components splits path into its components relative to the base.
func (gi *GitIgnore) components(path string) ([]string, bool) {
	rel, err := filepath.Rel(gi.base, path)
	if err != nil {
		return nil, false
	}
	rel = normalizePath(rel)
	if rel == "." {
		return []string{}, true
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return nil, false
	}
	return strings.Split(rel, "/"), true
}

// normalizePath converts OS-specific path separators to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(path)
}

// parsePatternLine turns one ignore file line into a pattern.
// Empty lines and comments yield no pattern.
func parsePatternLine(line string, domain []string) (gitignore.Pattern, bool) {
	line = strings.TrimSuffix(line, "\r")

	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return nil, false
	}

	// A leading "\#" or "\!" stays escaped; the glob matcher reads it as a literal.
	return gitignore.ParsePattern(line, domain), true
}
