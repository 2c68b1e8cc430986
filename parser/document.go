package parser

import "strings"

// HTTP methods recognized as operations inside a path item, in the order
// they are listed by the OpenAPI specification.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
	MethodQuery   = "query"
)

var httpMethods = map[string]bool{
	MethodGet: true, MethodPut: true, MethodPost: true, MethodDelete: true,
	MethodOptions: true, MethodHead: true, MethodPatch: true, MethodTrace: true,
	MethodQuery: true,
}

// IsHTTPMethod reports whether key names an operation in a path item.
// Other path item keys (parameters, summary, servers, $ref, x-*) do not.
func IsHTTPMethod(key string) bool {
	return httpMethods[strings.ToLower(key)]
}

// Document is a parsed OpenAPI 2.0 or 3.x document reduced to what is
// needed to derive HTTP function triggers. Path items keep source order.
type Document struct {
	// SourcePath is the file the document was read from, or a synthetic
	// name (ParseBytes.yaml, ParseReader.json) for in-memory input.
	SourcePath string
	// SourceFormat is the detected format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the value of the "swagger" or "openapi" field
	Version string
	// Title is info.title, if present
	Title string
	// Paths holds the path items in document order
	Paths []*PathItem
}

// IsOAS2 reports whether the document declared "swagger: 2.x".
func (d *Document) IsOAS2() bool {
	return strings.HasPrefix(d.Version, "2.")
}

// DocumentStats contains counts of document elements.
type DocumentStats struct {
	PathCount      int
	OperationCount int
}

// Stats counts the path items and operations of the document.
func (d *Document) Stats() DocumentStats {
	stats := DocumentStats{PathCount: len(d.Paths)}
	for _, item := range d.Paths {
		stats.OperationCount += len(item.methods)
	}
	return stats
}

// PathItem is one entry of the document's paths object: a path template
// and its operations keyed by lower-case HTTP method.
type PathItem struct {
	path       string
	methods    []string
	operations map[string]*Operation
}

// NewPathItem creates an empty path item for the given path template.
func NewPathItem(path string) *PathItem {
	return &PathItem{
		path:       path,
		operations: make(map[string]*Operation),
	}
}

// Path returns the raw path template, e.g. "/users/{id}".
func (pi *PathItem) Path() string {
	return pi.path
}

// Methods returns the declared methods in source order.
func (pi *PathItem) Methods() []string {
	out := make([]string, len(pi.methods))
	copy(out, pi.methods)
	return out
}

// Operation returns the operation declared for method, or nil.
func (pi *PathItem) Operation(method string) *Operation {
	return pi.operations[strings.ToLower(method)]
}

// HasMethod reports whether the path item declares method.
func (pi *PathItem) HasMethod(method string) bool {
	_, ok := pi.operations[strings.ToLower(method)]
	return ok
}

// SetOperation declares op for method. Redeclaring a method replaces the
// operation but keeps its original position.
func (pi *PathItem) SetOperation(method string, op *Operation) *PathItem {
	method = strings.ToLower(method)
	if _, ok := pi.operations[method]; !ok {
		pi.methods = append(pi.methods, method)
	}
	pi.operations[method] = op
	return pi
}

// Operation holds the operation fields used to derive function triggers.
type Operation struct {
	// OperationID is set only when the source value is a string
	OperationID string `yaml:"operationId,omitempty" json:"operationId,omitempty"`
	Summary     string `yaml:"summary,omitempty" json:"summary,omitempty"`
	// Tags is nil when the operation declares no tags
	Tags       []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Parameters []*Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Parameter is an operation parameter. Local references are resolved by
// the parser; Ref keeps the original reference string.
type Parameter struct {
	Ref      string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	In       string `yaml:"in,omitempty" json:"in,omitempty"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// Parameter locations
const (
	ParamInPath   = "path"
	ParamInQuery  = "query"
	ParamInHeader = "header"
	ParamInBody   = "body"
)
