package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oas2sls/parser"
	"github.com/erraggy/oas2sls/serverless"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v4"
)

// Generate flag names. They double as viper keys, config file keys, and,
// upper-cased with "_" for "-", as OAS2SLS_* environment variable suffixes.
const (
	flagAPIPrefix     = "api-prefix"
	flagServicePrefix = "service-prefix"
	flagBasePath      = "base-path"
	flagFunctionName  = "function-name"
	flagOperationID   = "operation-id"
	flagCORS          = "cors"
	flagOptionsMethod = "options-method"
	flagAuthorizer    = "authorizer"
	flagFormat        = "format"
	flagOutputDir     = "output-dir"
	flagRoot          = "root"
)

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [files...]",
		Short: "Generate functions configuration from OpenAPI documents",
		Long: `Generate the Serverless Framework functions configuration of every service
tagged in the given OpenAPI documents.

With no files, swagger.yaml or swagger.yml is looked up in --root.
Without --output-dir the configurations are written to stdout.`,
		Example: `  oas2sls generate --api-prefix api swagger.yaml
  oas2sls generate --api-prefix api --base-path --output-dir ./functions
  OAS2SLS_API_PREFIX=api oas2sls generate --format json users.yaml orders.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v, args)
		},
	}

	f := cmd.Flags()
	f.String(flagAPIPrefix, "", "tag prefix that selects operations (required)")
	f.String(flagServicePrefix, "", "prefix prepended to every service name")
	f.Bool(flagBasePath, false, "drop the first path segment from names and trigger paths")
	f.String(flagFunctionName, "", "use one function name for every operation")
	f.Bool(flagOperationID, false, "name functions after operationId when declared")
	f.Bool(flagCORS, false, "enable cors on every trigger")
	f.Bool(flagOptionsMethod, false, "add OPTIONS triggers and enable cors on GET")
	f.String(flagAuthorizer, "", "authorizer name or ARN copied into every trigger")
	f.StringP(flagFormat, "f", string(serverless.FormatYAML), "output format: yaml or json")
	f.StringP(flagOutputDir, "o", "", "write one file per service into this directory")
	f.String(flagRoot, ".", "directory searched for swagger.yaml when no file is given")

	return cmd
}

// generateOptions reads the generator options from viper.
func generateOptions(v *viper.Viper) (serverless.Options, error) {
	auth, err := authorizer(v)
	if err != nil {
		return serverless.Options{}, err
	}
	return serverless.Options{
		APIPrefix:     v.GetString(flagAPIPrefix),
		ServicePrefix: v.GetString(flagServicePrefix),
		BasePath:      v.GetBool(flagBasePath),
		FunctionName:  v.GetString(flagFunctionName),
		OperationID:   v.GetBool(flagOperationID),
		CORS:          v.GetBool(flagCORS),
		OptionsMethod: v.GetBool(flagOptionsMethod),
		Authorizer:    auth,
	}, nil
}

// authorizer returns the authorizer setting: a string from flags or env, or
// a mapping from the config file. Viper lower-cases mapping keys, so a
// mapping is decoded again from the raw config file to keep keys such as
// identitySource intact. Files yaml cannot read keep viper's value.
func authorizer(v *viper.Viper) (any, error) {
	value := v.Get(flagAuthorizer)
	if _, ok := value.(map[string]any); !ok {
		return value, nil
	}
	file := v.ConfigFileUsed()
	if file == "" {
		return value, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("commands: reading config %s: %w", file, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return value, nil
	}
	for key, val := range raw {
		if strings.EqualFold(key, flagAuthorizer) {
			return val, nil
		}
	}
	return value, nil
}

func runGenerate(cmd *cobra.Command, v *viper.Viper, args []string) error {
	format, err := serverless.ParseFormat(v.GetString(flagFormat))
	if err != nil {
		return err
	}

	quiet := v.GetBool(flagQuiet)
	logger := newLogger(cmd.ErrOrStderr(), quiet, v.GetBool(flagVerbose))
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "path", used)
	}

	opts, err := generateOptions(v)
	if err != nil {
		return err
	}

	result, err := serverless.GenerateWithOptions(cmd.Context(), args,
		serverless.WithOptions(opts),
		serverless.WithRootDir(v.GetString(flagRoot)),
		serverless.WithLogger(parser.NewSlogAdapter(logger)),
	)
	if err != nil {
		return err
	}

	if len(result.Services) == 0 {
		logger.Warn("no operation matched the api prefix", "apiPrefix", v.GetString(flagAPIPrefix))
	}

	outDir := v.GetString(flagOutputDir)
	if outDir == "" {
		data, err := serverless.MarshalAll(result.Services, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("commands: creating output directory: %w", err)
	}
	for _, svc := range result.Services {
		data, err := svc.Marshal(format)
		if err != nil {
			return err
		}
		path := filepath.Clean(filepath.Join(outDir, svc.FileName(format)))
		if err := RejectSymlinkOutput(path); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("commands: writing %s: %w", path, err)
		}
		if !quiet {
			Writef(cmd.ErrOrStderr(), "wrote %s (%d functions)\n", path, svc.Functions.Len())
		}
	}
	return nil
}
