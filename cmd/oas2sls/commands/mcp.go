package commands

import (
	"github.com/erraggy/oas2sls/internal/mcpserver"
	"github.com/erraggy/oas2sls/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMCPCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generate_serverless tool over MCP stdio",
		Long: `Start a Model Context Protocol server on stdin/stdout.

Tool defaults come from OAS2SLS_MCP_* environment variables:
  OAS2SLS_MCP_API_PREFIX   default api_prefix
  OAS2SLS_MCP_FORMAT       default output format (yaml or json)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol, logs go to stderr only.
			logger := newLogger(cmd.ErrOrStderr(), v.GetBool(flagQuiet), v.GetBool(flagVerbose))
			return mcpserver.Run(cmd.Context(), parser.NewSlogAdapter(logger))
		},
	}
}
