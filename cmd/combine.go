package cmd

import (
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/spf13/cobra"

	"pbcat/pkg/clipboard"
	"pbcat/pkg/combine"
	"pbcat/pkg/ignore"
	"pbcat/pkg/logging"
	"pbcat/pkg/resolve"
)

// runCombine copies (or lists) the files named by args and prints a summary.
func runCombine(cmd *cobra.Command, args []string, opts *options) error {
	mode, err := resolve.ParseSortMode(opts.sort)
	if err != nil {
		return err
	}
	// Flags are valid; later failures are not usage mistakes.
	cmd.SilenceUsage = true

	logger := logging.Logger
	sink := clipboard.FromEnv(os.Getenv, runtime.GOOS, logger)

	summary, err := combine.Run(combine.Arguments{
		Paths:       args,
		Separator:   opts.separator,
		Header:      opts.header,
		Sort:        mode,
		ListOnly:    opts.list,
		ExcludeDirs: opts.excludeDirs,
		Ignore:      ignoreOptions(opts),
	}, sink, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !summary.Copied {
		for _, path := range summary.Files {
			fmt.Fprintln(out, path)
		}
		fmt.Fprintf(out, "Listed %d %s (%d bytes)\n", len(summary.Files), plural(len(summary.Files)), summary.Bytes)
		return nil
	}

	fmt.Fprintf(out, "Copied %d %s (%d bytes) to clipboard\n", len(summary.Files), plural(len(summary.Files)), summary.Bytes)
	return nil
}

// ignoreOptions maps the ignore flags onto the walker's ignore sources.
func ignoreOptions(opts *options) ignore.Options {
	var names []string
	if len(opts.ignoreFileNames) > 0 {
		names = append(slices.Clone(ignore.DefaultFileNames), opts.ignoreFileNames...)
	}
	return ignore.Options{
		FileNames:  names,
		GlobalFile: opts.globalIgnore,
		NoGlobal:   opts.noIgnoreGlobal,
		NoExclude:  opts.noIgnoreExclude,
		NoParents:  opts.noIgnoreParent,
	}
}

func plural(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
