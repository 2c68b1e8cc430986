package commands

import (
	"github.com/erraggy/oas2sls"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			Writef(out, "oas2sls v%s\n", oas2sls.Version())
			Writef(out, "commit: %s\n", oas2sls.Commit())
			Writef(out, "built: %s\n", oas2sls.BuildTime())
			Writef(out, "go: %s\n", oas2sls.GoVersion())
		},
	}
}
