// File: cmd/version.go
package cmd

import (
	"github.com/spf13/cobra"

	"pbcat/pkg/version"
)

// setVersion enables the --version flag. It prints the full build
// information rather than cobra's default "<name> version <v>" line.
func setVersion(cmd *cobra.Command) {
	info := version.Get()
	cmd.Version = info.Version
	cmd.SetVersionTemplate(info.String() + "\n")
}
