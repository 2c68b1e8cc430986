package serverless

import (
	"context"
	"fmt"

	"github.com/erraggy/oas2sls/loader"
	"github.com/erraggy/oas2sls/parser"
)

// Stats counts what a generation run saw and produced.
type Stats struct {
	Documents   int `json:"documents" yaml:"documents"`
	Paths       int `json:"paths" yaml:"paths"`
	Descriptors int `json:"descriptors" yaml:"descriptors"`
	Targets     int `json:"targets" yaml:"targets"`
	Functions   int `json:"functions" yaml:"functions"`
	Services    int `json:"services" yaml:"services"`
}

// GenerateResult contains the service configurations built from a set of
// documents.
type GenerateResult struct {
	// Services holds one configuration per service in first-seen order
	Services []*ServiceConfig
	// Collisions lists function names that received more than one trigger
	Collisions []Collision
	// Stats summarizes the run
	Stats Stats
}

// HasCollisions returns true if any function merged several fragments.
func (r *GenerateResult) HasCollisions() bool {
	return len(r.Collisions) > 0
}

// Service returns the configuration of the named service.
func (r *GenerateResult) Service(name string) (*ServiceConfig, bool) {
	for _, cfg := range r.Services {
		if cfg.Service == name {
			return cfg, true
		}
	}
	return nil, false
}

// Generator turns parsed documents into service configurations.
type Generator struct {
	// Options controls selection and naming
	Options Options
	// Logger receives collision warnings and progress. Nil is silent.
	Logger parser.Logger

	rootDir string
}

// Option configures a Generator.
type Option func(*Generator) error

// New creates a Generator. The options are validated when the first
// generation runs so that they can be given in any order.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// WithOptions replaces all options at once.
func WithOptions(o Options) Option {
	return func(g *Generator) error {
		g.Options = o
		return nil
	}
}

// WithAPIPrefix sets the tag prefix that selects operations.
func WithAPIPrefix(prefix string) Option {
	return func(g *Generator) error {
		g.Options.APIPrefix = prefix
		return nil
	}
}

// WithServicePrefix sets the prefix prepended to service names.
func WithServicePrefix(prefix string) Option {
	return func(g *Generator) error {
		g.Options.ServicePrefix = prefix
		return nil
	}
}

// WithBasePath treats the first path segment as a base path.
func WithBasePath(enabled bool) Option {
	return func(g *Generator) error {
		g.Options.BasePath = enabled
		return nil
	}
}

// WithFunctionName forces a single function name.
func WithFunctionName(name string) Option {
	return func(g *Generator) error {
		g.Options.FunctionName = name
		return nil
	}
}

// WithOperationID names functions after operationId when declared.
func WithOperationID(enabled bool) Option {
	return func(g *Generator) error {
		g.Options.OperationID = enabled
		return nil
	}
}

// WithCORS enables cors on every trigger.
func WithCORS(enabled bool) Option {
	return func(g *Generator) error {
		g.Options.CORS = enabled
		return nil
	}
}

// WithOptionsMethod synthesizes OPTIONS triggers.
func WithOptionsMethod(enabled bool) Option {
	return func(g *Generator) error {
		g.Options.OptionsMethod = enabled
		return nil
	}
}

// WithAuthorizer sets the authorizer copied into every trigger.
func WithAuthorizer(authorizer any) Option {
	return func(g *Generator) error {
		g.Options.Authorizer = authorizer
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l parser.Logger) Option {
	return func(g *Generator) error {
		g.Logger = l
		return nil
	}
}

// WithRootDir sets the directory searched for a swagger file when
// GenerateWithOptions is given no inputs.
func WithRootDir(dir string) Option {
	return func(g *Generator) error {
		g.rootDir = dir
		return nil
	}
}

// Generate runs the pipeline on already parsed documents: extract, filter,
// build fragments, merge.
func (g *Generator) Generate(docs []*parser.Document) (*GenerateResult, error) {
	if err := g.Options.Validate(); err != nil {
		return nil, fmt.Errorf("serverless: %w", err)
	}
	log := parser.OrNop(g.Logger)

	result := &GenerateResult{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		result.Stats.Documents++
		result.Stats.Paths += doc.Stats().PathCount
	}

	descriptors := ExtractDescriptors(docs, g.Options)
	targets := Filter(descriptors, g.Options)
	result.Stats.Descriptors = len(descriptors)
	result.Stats.Targets = len(targets)
	log.Debug("selected operations",
		"descriptors", len(descriptors),
		"targets", len(targets),
		"apiPrefix", g.Options.APIPrefix)

	fragments := make([]Fragment, 0, len(targets))
	for _, d := range targets {
		frag, err := BuildFragment(d, g.Options)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, frag)
	}

	result.Services, result.Collisions = Merge(fragments)
	for _, cfg := range result.Services {
		result.Stats.Functions += cfg.Functions.Len()
	}
	result.Stats.Services = len(result.Services)

	for _, c := range result.Collisions {
		// A forced function name collapses every trigger on purpose.
		if g.Options.FunctionName != "" {
			log.Debug("merged triggers into function", "service", c.Service, "function", c.Function, "fragments", c.Fragments)
			continue
		}
		log.Warn("function name collision, triggers merged", "service", c.Service, "function", c.Function, "fragments", c.Fragments)
	}

	log.Info("generated service configurations",
		"services", result.Stats.Services,
		"functions", result.Stats.Functions)
	return result, nil
}

// GenerateDocuments is a convenience function equivalent to New(opts...)
// followed by Generate(docs).
func GenerateDocuments(docs []*parser.Document, opts ...Option) (*GenerateResult, error) {
	g, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return g.Generate(docs)
}

// GenerateWithOptions loads the input files, or the discovered swagger file
// when inputs is empty, and generates service configurations.
//
// Example:
//
//	result, err := serverless.GenerateWithOptions(ctx, []string{"swagger.yaml"},
//		serverless.WithAPIPrefix("api"),
//		serverless.WithBasePath(true),
//	)
func GenerateWithOptions(ctx context.Context, inputs []string, opts ...Option) (*GenerateResult, error) {
	g, err := New(opts...)
	if err != nil {
		return nil, err
	}
	// Fail on bad options before touching the filesystem.
	if err := g.Options.Validate(); err != nil {
		return nil, fmt.Errorf("serverless: %w", err)
	}

	loadOpts := []loader.Option{loader.WithLogger(g.Logger)}
	if g.rootDir != "" {
		loadOpts = append(loadOpts, loader.WithRootDir(g.rootDir))
	}
	docs, err := loader.Load(ctx, inputs, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("serverless: %w", err)
	}
	return g.Generate(docs)
}
