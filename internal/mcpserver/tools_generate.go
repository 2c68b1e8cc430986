package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/oas2sls/parser"
	"github.com/erraggy/oas2sls/serverless"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Spec          specInput `json:"spec"                     jsonschema:"The OAS document to generate functions from"`
	APIPrefix     string    `json:"api_prefix,omitempty"     jsonschema:"Tag prefix that selects operations (default: OAS2SLS_MCP_API_PREFIX)"`
	ServicePrefix string    `json:"service_prefix,omitempty" jsonschema:"Prefix prepended with a hyphen to every service name"`
	BasePath      bool      `json:"base_path,omitempty"      jsonschema:"Drop the first path segment from function names and trigger paths"`
	FunctionName  string    `json:"function_name,omitempty"  jsonschema:"Force one function name for all operations of a service"`
	OperationID   bool      `json:"operation_id,omitempty"   jsonschema:"Use operationId as the function name when declared"`
	CORS          bool      `json:"cors,omitempty"           jsonschema:"Enable cors on every trigger"`
	OptionsMethod bool      `json:"options_method,omitempty" jsonschema:"Add OPTIONS triggers for paths with non-GET methods and enable cors on GET"`
	Authorizer    string    `json:"authorizer,omitempty"     jsonschema:"Authorizer name or ARN copied into every trigger"`
	Format        string    `json:"format,omitempty"         jsonschema:"Output format: yaml or json (default: OAS2SLS_MCP_FORMAT)"`
}

type generatedService struct {
	Service       string `json:"service"`
	FunctionCount int    `json:"function_count"`
	Document      string `json:"document"`
}

type generateOutput struct {
	Services   []generatedService     `json:"services"`
	Collisions []serverless.Collision `json:"collisions,omitempty"`
	Stats      serverless.Stats       `json:"stats"`
}

func generateHandler(log parser.Logger) mcp.ToolHandlerFor[generateInput, generateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
		return handleGenerate(log, input)
	}
}

func handleGenerate(log parser.Logger, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	format := cfg.Format
	if input.Format != "" {
		f, err := serverless.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		format = f
	}

	apiPrefix := input.APIPrefix
	if apiPrefix == "" {
		apiPrefix = cfg.APIPrefix
	}

	doc, err := input.Spec.resolve(log)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := serverless.Options{
		APIPrefix:     apiPrefix,
		ServicePrefix: input.ServicePrefix,
		BasePath:      input.BasePath,
		FunctionName:  input.FunctionName,
		OperationID:   input.OperationID,
		CORS:          input.CORS,
		OptionsMethod: input.OptionsMethod,
	}
	if input.Authorizer != "" {
		opts.Authorizer = input.Authorizer
	}

	result, err := serverless.GenerateDocuments([]*parser.Document{doc},
		serverless.WithOptions(opts),
		serverless.WithLogger(log),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Services:   make([]generatedService, 0, len(result.Services)),
		Collisions: result.Collisions,
		Stats:      result.Stats,
	}
	for _, svc := range result.Services {
		data, err := svc.Marshal(format)
		if err != nil {
			return errResult(fmt.Errorf("rendering service %s: %w", svc.Service, err)), generateOutput{}, nil
		}
		output.Services = append(output.Services, generatedService{
			Service:       svc.Service,
			FunctionCount: svc.Functions.Len(),
			Document:      string(data),
		})
	}
	return nil, output, nil
}
