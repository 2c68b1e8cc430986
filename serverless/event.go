package serverless

import (
	"strings"

	"github.com/erraggy/oas2sls/parser"
)

// IntegrationLambdaProxy is the only integration type emitted.
const IntegrationLambdaProxy = "lambda-proxy"

// Event is one function trigger.
type Event struct {
	HTTP *HTTPEvent `json:"http" yaml:"http"`
}

// HTTPEvent is an API Gateway HTTP trigger.
type HTTPEvent struct {
	Path        string   `json:"path" yaml:"path"`
	Method      string   `json:"method" yaml:"method"`
	Integration string   `json:"integration" yaml:"integration"`
	Request     *Request `json:"request,omitempty" yaml:"request,omitempty"`
	CORS        bool     `json:"cors,omitempty" yaml:"cors,omitempty"`
	Authorizer  any      `json:"authorizer,omitempty" yaml:"authorizer,omitempty"`
}

// Request declares the request parameters API Gateway must enforce.
type Request struct {
	Parameters *RequestParameters `json:"parameters" yaml:"parameters"`
}

// RequestParameters lists required parameters by location.
type RequestParameters struct {
	Paths map[string]bool `json:"paths" yaml:"paths"`
}

// PathParameters collects the required path parameters of op, or returns
// nil when there are none.
func PathParameters(op *parser.Operation) *RequestParameters {
	if op == nil {
		return nil
	}
	var paths map[string]bool
	for _, p := range op.Parameters {
		if p == nil || p.In != parser.ParamInPath || !p.Required {
			continue
		}
		if paths == nil {
			paths = make(map[string]bool)
		}
		paths[p.Name] = true
	}
	if paths == nil {
		return nil
	}
	return &RequestParameters{Paths: paths}
}

// RewritePath returns the trigger path for a path template. With basePath
// the first segment is removed: "/api/users" becomes "/users" and "/api"
// becomes "/".
func RewritePath(path string, basePath bool) string {
	if !basePath {
		return path
	}
	rest := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(rest) <= 1 {
		return "/"
	}
	return "/" + strings.Join(rest[1:], "/")
}

// BuildEvent builds the HTTP trigger for a descriptor.
func BuildEvent(d Descriptor, opts Options) Event {
	ev := &HTTPEvent{
		Path:        RewritePath(d.Path, opts.BasePath),
		Method:      d.Method,
		Integration: IntegrationLambdaProxy,
		CORS:        opts.CORS || (opts.OptionsMethod && d.Method == parser.MethodGet),
	}
	if params := PathParameters(d.Operation); params != nil {
		ev.Request = &Request{Parameters: params}
	}
	if opts.hasAuthorizer() {
		ev.Authorizer = opts.Authorizer
	}
	return Event{HTTP: ev}
}
