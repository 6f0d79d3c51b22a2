package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"
)

// Options selects which ignore sources are layered under a walk root.
type Options struct {
	FileNames  []string // Per-directory ignore file names; nil means DefaultFileNames.
	GlobalFile string   // Explicit global excludes file; empty means discover it from git config.
	NoGlobal   bool     // Skip the global excludes file.
	NoExclude  bool     // Skip the repository's .git/info/exclude.
	NoParents  bool     // Skip ignore files of directories above the root.
}

// LoadIgnoreFiles builds the layer that applies to root before root's own
// ignore files are read. Patterns are anchored at the filesystem root. The
// ignore files of every directory above root always apply; the global
// excludes file and the repository exclude file apply only inside a git work
// tree, scoped to that work tree. Precedence, lowest first: global excludes,
// repository exclude, ancestor ignore files from the outermost directory in.
func LoadIgnoreFiles(root string, opts Options, logger *zap.Logger) (*GitIgnore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	gi := NewGitIgnore(filesystemRoot(absRoot), opts.FileNames, logger)

	repo, gitDir := findRepository(absRoot)
	if repo != "" {
		logger.Debug("Found git work tree", zap.String("root", absRoot), zap.String("repository", repo))
		repoDomain, _ := gi.components(repo)

		if !opts.NoGlobal {
			patterns, err := globalPatterns(opts.GlobalFile, logger)
			if err != nil {
				return nil, err
			}
			for _, p := range patterns {
				gi.patterns = append(gi.patterns, scopedPattern{domain: repoDomain, pattern: p})
			}
		}

		if !opts.NoExclude && gitDir != "" {
			if _, err := gi.CompileIgnoreFile(filepath.Join(gitDir, "info", "exclude"), repoDomain); err != nil {
				return nil, err
			}
		}
	} else {
		logger.Debug("Root is not inside a git work tree", zap.String("root", absRoot))
	}

	if !opts.NoParents && gi.base != absRoot {
		for _, dir := range ancestors(gi.base, absRoot) {
			domain, _ := gi.components(dir)
			for _, name := range gi.fileNames {
				// Directories above root are not walked; an unreadable file there is skipped.
				if _, err := gi.CompileIgnoreFile(filepath.Join(dir, name), domain); err != nil {
					logger.Debug("Skipping ancestor ignore file", zap.String("dir", dir), zap.Error(err))
				}
			}
		}
	}

	gi.matcher = gitignore.NewMatcher(gi.patterns)
	logger.Debug("Loaded ignore sources", zap.String("root", absRoot), zap.Int("totalPatterns", gi.Len()))
	return gi, nil
}

// filesystemRoot returns the root directory of the volume holding path.
func filesystemRoot(path string) string {
	return filepath.VolumeName(path) + string(filepath.Separator)
}

// scopedPattern applies a pattern written relative to a repository work tree
// to paths relative to the filesystem root.
type scopedPattern struct {
	domain  []string
	pattern gitignore.Pattern
}

func (s scopedPattern) Match(path []string, isDir bool) gitignore.MatchResult {
	if len(path) <= len(s.domain) || !slices.Equal(path[:len(s.domain)], s.domain) {
		return gitignore.NoMatch
	}
	return s.pattern.Match(path[len(s.domain):], isDir)
}

// findRepository walks up from dir looking for a ".git" entry. It returns the
// work tree root and, when ".git" is a directory, the git directory.
func findRepository(dir string) (string, string) {
	current := dir
	for {
		info, err := os.Stat(filepath.Join(current, ".git"))
		if err == nil {
			if info.IsDir() {
				return current, filepath.Join(current, ".git")
			}
			return current, ""
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", ""
		}
		current = parent
	}
}

// ancestors lists base and every directory between base and root, outermost
// first, excluding root itself.
func ancestors(base, root string) []string {
	var dirs []string
	for dir := filepath.Dir(root); ; dir = filepath.Dir(dir) {
		dirs = append([]string{dir}, dirs...)
		if dir == base || dir == filepath.Dir(dir) {
			break
		}
	}
	return dirs
}

// globalPatterns loads the user's global excludes file: an explicit path,
// else core.excludesFile from the global git config, else the XDG default.
func globalPatterns(explicit string, logger *zap.Logger) ([]gitignore.Pattern, error) {
	if explicit != "" {
		return readPatternFile(explicit)
	}

	// An unreadable git config only loses the configured path; the XDG
	// default below still applies.
	patterns, err := gitignore.LoadGlobalPatterns(osfs.New("/"))
	if err != nil {
		logger.Debug("Failed to read global git config", zap.Error(err))
	}
	if err == nil && len(patterns) > 0 {
		logger.Debug("Loaded global excludes from git config", zap.Int("patternCount", len(patterns)))
		return patterns, nil
	}

	path := defaultGlobalFile()
	if path == "" {
		return nil, nil
	}
	return readPatternFile(path)
}

// defaultGlobalFile returns git's fallback location for the global excludes file.
func defaultGlobalFile() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}

func readPatternFile(path string) ([]gitignore.Pattern, error) {
	gi := NewGitIgnore(string(filepath.Separator), nil, nil)
	if _, err := gi.CompileIgnoreFile(path, nil); err != nil {
		return nil, err
	}
	return gi.patterns, nil
}
