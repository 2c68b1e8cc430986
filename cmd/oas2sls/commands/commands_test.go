package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erraggy/oas2sls/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopSwagger = `swagger: "2.0"
info:
  title: Shop
  version: "1.0"
paths:
  /api/users:
    get:
      tags: [api.users]
  /api/users/{id}:
    get:
      tags: [api.users]
      parameters:
        - name: id
          in: path
          required: true
  /api/orders:
    post:
      tags: [api.orders]
`

// clearEnv clears the OAS2SLS_* variables the generate command reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		flagAPIPrefix, flagServicePrefix, flagBasePath, flagFunctionName,
		flagOperationID, flagCORS, flagOptionsMethod, flagAuthorizer,
		flagFormat, flagOutputDir, flagRoot, flagConfig, flagQuiet, flagVerbose,
	} {
		key := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// setup moves into a fresh directory holding swagger.yaml and returns it.
func setup(t *testing.T) string {
	t.Helper()
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swagger.yaml"), []byte(shopSwagger), 0o600))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerate_Stdout(t *testing.T) {
	setup(t)

	stdout, _, err := execute(t, "generate", "--api-prefix", "api", "--base-path")
	require.NoError(t, err)

	assert.Contains(t, stdout, "service: users")
	assert.Contains(t, stdout, "service: orders")
	assert.Contains(t, stdout, "getUsersWithId:")
	assert.Contains(t, stdout, "/users/{id}")
	assert.Contains(t, stdout, "---")
}

func TestGenerate_ExplicitFileAndJSON(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.Rename(filepath.Join(dir, "swagger.yaml"), filepath.Join(dir, "shop.yaml")))

	stdout, _, err := execute(t, "generate", "--api-prefix", "api", "-f", "json", "shop.yaml")
	require.NoError(t, err)

	var services []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &services))
	require.Len(t, services, 2)
	assert.Equal(t, "users", services[0]["service"])
}

func TestGenerate_OutputDir(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "functions")

	_, stderr, err := execute(t, "generate", "--api-prefix", "api", "--service-prefix", "shop", "-o", out)
	require.NoError(t, err)

	users, err := os.ReadFile(filepath.Join(out, "shop-users.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(users), "service: shop-users")

	_, err = os.Stat(filepath.Join(out, "shop-orders.yml"))
	assert.NoError(t, err)
	assert.Contains(t, stderr, "wrote")
}

func TestGenerate_OutputDirRejectsSymlink(t *testing.T) {
	dir := setup(t)
	out := filepath.Join(dir, "functions")
	require.NoError(t, os.MkdirAll(out, 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "elsewhere.yml"), filepath.Join(out, "users.yml")))

	_, _, err := execute(t, "generate", "--api-prefix", "api", "-o", out)
	assert.ErrorContains(t, err, "refusing to write to symlink")
}

func TestGenerate_MissingAPIPrefix(t *testing.T) {
	setup(t)

	_, _, err := execute(t, "generate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestGenerate_MissingSwaggerFile(t *testing.T) {
	setup(t)

	_, _, err := execute(t, "generate", "--api-prefix", "api", "--root", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrInput))
}

func TestGenerate_InvalidFormat(t *testing.T) {
	setup(t)

	_, _, err := execute(t, "generate", "--api-prefix", "api", "--format", "toml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestGenerate_Environment(t *testing.T) {
	setup(t)
	t.Setenv("OAS2SLS_API_PREFIX", "api")
	t.Setenv("OAS2SLS_FUNCTION_NAME", "main")

	stdout, _, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "handler: handler.main")
	assert.NotContains(t, stdout, "getUsers")
}

func TestGenerate_DotEnv(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OAS2SLS_API_PREFIX=api\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("OAS2SLS_API_PREFIX") })

	stdout, _, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "service: users")
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := setup(t)
	config := `api-prefix: api
options-method: true
authorizer:
  name: auth
  type: request
  identitySource: method.request.header.Authorization
  resultTtlInSeconds: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".oas2sls.yaml"), []byte(config), 0o600))

	stdout, _, err := execute(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "name: auth")
	assert.Contains(t, stdout, "identitySource: method.request.header.Authorization")
	assert.Contains(t, stdout, "resultTtlInSeconds: 0")
	assert.NotContains(t, stdout, "identitysource")
	assert.NotContains(t, stdout, "resultttlinseconds")
	assert.Contains(t, stdout, "method: options")
	assert.Contains(t, stdout, "cors: true")
}

func TestGenerate_JSONConfigKeepsAuthorizerKeys(t *testing.T) {
	dir := setup(t)
	config := `{"api-prefix": "api", "authorizer": {"arn": "arn:aws:cognito-idp:us-east-1:123:userpool/abc", "scopes": ["users/read"], "identitySource": "method.request.header.Authorization"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.json"), []byte(config), 0o600))

	stdout, _, err := execute(t, "--config", "custom.json", "generate", "-f", "json")
	require.NoError(t, err)

	var services []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &services))
	require.NotEmpty(t, services)
	functions := services[0]["functions"].(map[string]any)
	fn := functions["getApiUsers"].(map[string]any)
	event := fn["events"].([]any)[0].(map[string]any)["http"].(map[string]any)
	assert.Equal(t, map[string]any{
		"arn":            "arn:aws:cognito-idp:us-east-1:123:userpool/abc",
		"scopes":         []any{"users/read"},
		"identitySource": "method.request.header.Authorization",
	}, event["authorizer"])
}

func TestGenerate_AuthorizerFlagOverridesConfigMapping(t *testing.T) {
	dir := setup(t)
	config := "api-prefix: api\nauthorizer:\n  name: fromConfig\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".oas2sls.yaml"), []byte(config), 0o600))

	stdout, _, err := execute(t, "generate", "--authorizer", "fromFlag")
	require.NoError(t, err)
	assert.Contains(t, stdout, "authorizer: fromFlag")
	assert.NotContains(t, stdout, "fromConfig")
}

func TestGenerate_TagEqualToPrefixNamesTag(t *testing.T) {
	dir := setup(t)
	spec := `swagger: "2.0"
info:
  title: Bare
  version: "1.0"
paths:
  /things:
    get:
      tags: [api]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "swagger.yaml"), []byte(spec), 0o600))

	_, _, err := execute(t, "generate", "--api-prefix", "api")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrDerivation))
	assert.Contains(t, err.Error(), `(tag "api")`)
	assert.Contains(t, err.Error(), "get /things")
}

func TestGenerate_ExplicitConfigMissing(t *testing.T) {
	setup(t)

	_, _, err := execute(t, "--config", "nope.yaml", "generate")
	assert.ErrorContains(t, err, "reading config")
}

func TestGenerate_FlagOverridesConfig(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte("api-prefix: nothing\n"), 0o600))

	stdout, _, err := execute(t, "--config", "custom.yaml", "generate", "--api-prefix", "api")
	require.NoError(t, err)
	assert.Contains(t, stdout, "service: users")
}

func TestVersion(t *testing.T) {
	clearEnv(t)
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "oas2sls v"))
	assert.Contains(t, stdout, "go: ")
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name           string
		quiet, verbose bool
		want           slog.Level
	}{
		{"default", false, false, slog.LevelWarn},
		{"verbose", false, true, slog.LevelDebug},
		{"quiet", true, false, slog.LevelError},
		{"quiet wins", true, true, slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logLevel(tt.quiet, tt.verbose))
		})
	}
}
