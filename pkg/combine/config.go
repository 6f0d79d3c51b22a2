// File: pkg/combine/config.go
package combine

import (
	"pbcat/pkg/ignore"
	"pbcat/pkg/resolve"
)

// Arguments holds the configuration of one pbcat invocation.
type Arguments struct {
	Paths       []string         // Files or directories to copy, in order.
	Separator   string           // Text written between consecutive files.
	Header      bool             // Prefix every file with a "== path ==" line.
	Sort        resolve.SortMode // Discovery order or lexicographic order.
	ListOnly    bool             // Report the resolved files instead of copying.
	ExcludeDirs []string         // Directory names pruned in addition to the defaults.
	Ignore      ignore.Options   // Ignore sources layered under each directory.
}

// Summary describes the outcome of a successful run.
type Summary struct {
	Files  []string // Canonical paths in output order.
	Bytes  int64    // Exact size of the rendered output.
	Copied bool     // False in list-only mode.
}
