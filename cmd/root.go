package cmd

import (
	"github.com/spf13/cobra"

	"pbcat/pkg/logging"
	"pbcat/pkg/version"
)

// options holds the flag values of one root command.
type options struct {
	separator   string
	header      bool
	sort        string
	list        bool
	excludeDirs []string
	debug       bool

	noIgnoreParent  bool
	noIgnoreGlobal  bool
	noIgnoreExclude bool
	globalIgnore    string
	ignoreFileNames []string
}

// NewRootCmd builds the pbcat command.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "pbcat <path> [path ...]",
		Short: "pbcat copies the contents of files and directories to the clipboard",
		Long: `pbcat concatenates the given files, and every file below the given
directories, and copies the result to the system clipboard.

Directories are walked in name order. Files excluded by .gitignore or .ignore
rules, hidden entries and dependency or build directories such as
node_modules and target are skipped. Each file is copied once even when it is
reached through several arguments.

Set PBCAT_CLIPBOARD_FILE to write the output to a file instead of the clipboard.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(opts.debug, "pbcat", version.Get().Version)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, args, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.separator, "separator", "s", "", "text inserted between consecutive files")
	flags.BoolVarP(&opts.header, "header", "H", false, `prefix each file with a "== path ==" line`)
	flags.StringVar(&opts.sort, "sort", "args", "file order: args (discovery order) or name (by path)")
	flags.BoolVarP(&opts.list, "list", "l", false, "print the resolved files and byte count instead of copying")
	flags.StringSliceVar(&opts.excludeDirs, "exclude-dir", nil, "additional directory name to skip (repeatable)")
	flags.BoolVar(&opts.noIgnoreParent, "no-ignore-parent", false, "skip ignore files in directories above each argument")
	flags.BoolVar(&opts.noIgnoreGlobal, "no-ignore-global", false, "skip the global git excludes file")
	flags.BoolVar(&opts.noIgnoreExclude, "no-ignore-exclude", false, "skip the repository's .git/info/exclude")
	flags.StringVar(&opts.globalIgnore, "global-ignore-file", "", "global excludes file to use instead of the one from git config")
	flags.StringSliceVar(&opts.ignoreFileNames, "ignore-file-name", nil, "additional per-directory ignore file name (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	setVersion(rootCmd)
	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}
