package serverless

import (
	"strings"

	"github.com/erraggy/oas2sls/parser"
)

// Descriptor is one (path, method, operation) triple taken from a document.
type Descriptor struct {
	// Path is the raw path template, e.g. "/users/{id}"
	Path string
	// Method is the lower-case HTTP method
	Method string
	// Operation is the operation the descriptor was built from. Synthetic
	// OPTIONS descriptors share the operation of another method.
	Operation *parser.Operation
	// Synthetic is true for OPTIONS descriptors added by the extractor
	Synthetic bool
}

// ExtractDescriptors flattens documents into descriptors in document, path,
// then method order.
//
// With opts.OptionsMethod, every path item that has a non-GET method also
// yields an "options" descriptor. It reuses the operation of the first
// non-GET method in source order. A path item that declares options itself
// gets both triggers; Merge folds them into one function.
func ExtractDescriptors(docs []*parser.Document, opts Options) []Descriptor {
	var out []Descriptor
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, item := range doc.Paths {
			methods := item.Methods()
			for _, method := range methods {
				out = append(out, Descriptor{
					Path:      item.Path(),
					Method:    strings.ToLower(method),
					Operation: item.Operation(method),
				})
			}

			if !opts.OptionsMethod {
				continue
			}
			for _, method := range methods {
				if strings.ToLower(method) != parser.MethodGet {
					out = append(out, Descriptor{
						Path:      item.Path(),
						Method:    parser.MethodOptions,
						Operation: item.Operation(method),
						Synthetic: true,
					})
					break
				}
			}
		}
	}
	return out
}

// IsTarget reports whether the descriptor belongs to the API surface: its
// operation has at least one tag starting with opts.APIPrefix.
func IsTarget(d Descriptor, opts Options) bool {
	_, ok := matchingTag(d.Operation, opts.APIPrefix)
	return ok
}

// matchingTag returns the first tag of op that starts with prefix.
func matchingTag(op *parser.Operation, prefix string) (string, bool) {
	if op == nil {
		return "", false
	}
	for _, tag := range op.Tags {
		if strings.HasPrefix(tag, prefix) {
			return tag, true
		}
	}
	return "", false
}

// Filter returns the descriptors that pass IsTarget, in order.
func Filter(descriptors []Descriptor, opts Options) []Descriptor {
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if IsTarget(d, opts) {
			out = append(out, d)
		}
	}
	return out
}
