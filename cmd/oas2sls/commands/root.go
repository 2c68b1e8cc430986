package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oas2sls"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the CLI.
const EnvPrefix = "OAS2SLS"

// DefaultConfigName is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigName = ".oas2sls"

// Persistent flag names.
const (
	flagConfig  = "config"
	flagQuiet   = "quiet"
	flagVerbose = "verbose"
)

// NewRootCommand builds the oas2sls command tree. Every command reads its
// settings through one viper instance, so flags, OAS2SLS_* environment
// variables, a .env file, and the config file all feed the same keys.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "oas2sls",
		Short:         "Generate Serverless Framework functions from OpenAPI documents",
		Long:          "oas2sls reads OpenAPI 2.0 and 3.x documents and writes the functions section of serverless.yml, one configuration per service.",
		Version:       oas2sls.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v, cmd)
		},
	}

	root.PersistentFlags().String(flagConfig, "", "config file (default ./"+DefaultConfigName+".yaml)")
	root.PersistentFlags().BoolP(flagQuiet, "q", false, "only log errors")
	root.PersistentFlags().BoolP(flagVerbose, "v", false, "log debug details")

	root.AddCommand(
		newGenerateCommand(v),
		newMCPCommand(v),
		newVersionCommand(),
	)
	return root
}

// initConfig loads .env, binds the flags of the running command, and reads
// the config file. A missing default config file is not an error; a missing
// explicit one is.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	_ = godotenv.Load()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("commands: binding flags: %w", err)
	}

	if file := v.GetString(flagConfig); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("commands: reading config %s: %w", file, err)
		}
		return nil
	}

	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("commands: reading config: %w", err)
		}
	}
	return nil
}
