package parser

import (
	"strings"

	"github.com/erraggy/oas2sls/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Local reference prefixes for shared parameter definitions.
const (
	oas2ParameterRefPrefix = "#/parameters/"
	oas3ParameterRefPrefix = "#/components/parameters/"
)

// decodeDocument walks the root node and builds a Document. Walking the
// yaml.Node tree instead of decoding into maps keeps paths and methods in
// source order.
func decodeDocument(root *yaml.Node, source string, log Logger) (*Document, error) {
	node := resolveAlias(root)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, &oaserrors.ParseError{Path: source, Message: "document root must be a mapping"}
		}
		node = resolveAlias(node.Content[0])
	}
	if node.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Line:    node.Line,
			Column:  node.Column,
			Message: "document root must be a mapping",
		}
	}

	doc := &Document{}
	if v := mappingValue(node, "swagger"); v != nil && v.Kind == yaml.ScalarNode {
		doc.Version = v.Value
	} else if v := mappingValue(node, "openapi"); v != nil && v.Kind == yaml.ScalarNode {
		doc.Version = v.Value
	}
	if doc.Version == "" {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Line:    node.Line,
			Column:  node.Column,
			Message: "missing swagger or openapi version field",
		}
	}

	if info := mappingValue(node, "info"); info != nil {
		if title := mappingValue(info, "title"); title != nil && title.Kind == yaml.ScalarNode {
			doc.Title = title.Value
		}
	}

	shared := sharedParameters(node)

	paths := mappingValue(node, "paths")
	if paths == nil || isNull(paths) {
		return doc, nil
	}
	if paths.Kind != yaml.MappingNode {
		return nil, &oaserrors.ParseError{
			Path:    source,
			Line:    paths.Line,
			Column:  paths.Column,
			Message: "paths must be a mapping",
		}
	}

	for i := 0; i+1 < len(paths.Content); i += 2 {
		key := paths.Content[i]
		if strings.HasPrefix(key.Value, "x-") {
			continue
		}
		item := NewPathItem(key.Value)
		value := resolveAlias(paths.Content[i+1])
		if value.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(value.Content); j += 2 {
				method := value.Content[j].Value
				if !IsHTTPMethod(method) {
					continue
				}
				op := decodeOperation(resolveAlias(value.Content[j+1]), shared, log.With("path", key.Value, "method", method))
				item.SetOperation(method, op)
			}
		}
		doc.Paths = append(doc.Paths, item)
	}

	return doc, nil
}

func decodeOperation(node *yaml.Node, shared map[string]*Parameter, log Logger) *Operation {
	op := &Operation{}
	if node.Kind != yaml.MappingNode {
		return op
	}

	if v := mappingValue(node, "operationId"); v != nil && v.Kind == yaml.ScalarNode && v.ShortTag() == "!!str" {
		op.OperationID = v.Value
	}
	if v := mappingValue(node, "summary"); v != nil && v.Kind == yaml.ScalarNode {
		op.Summary = v.Value
	}
	if v := mappingValue(node, "tags"); v != nil && v.Kind == yaml.SequenceNode {
		op.Tags = make([]string, 0, len(v.Content))
		for _, tag := range v.Content {
			tag = resolveAlias(tag)
			if tag.Kind == yaml.ScalarNode {
				op.Tags = append(op.Tags, tag.Value)
			}
		}
	}
	if v := mappingValue(node, "parameters"); v != nil && v.Kind == yaml.SequenceNode {
		for _, pn := range v.Content {
			pn = resolveAlias(pn)
			if pn.Kind != yaml.MappingNode {
				continue
			}
			param := decodeParameter(pn)
			if param.Ref != "" {
				if def, ok := shared[param.Ref]; ok {
					resolved := *def
					resolved.Ref = param.Ref
					param = &resolved
				} else {
					log.Warn("unresolved parameter reference", "ref", param.Ref)
				}
			}
			op.Parameters = append(op.Parameters, param)
		}
	}

	return op
}

func decodeParameter(node *yaml.Node) *Parameter {
	param := &Parameter{}
	if v := mappingValue(node, "$ref"); v != nil && v.Kind == yaml.ScalarNode {
		param.Ref = v.Value
	}
	if v := mappingValue(node, "name"); v != nil && v.Kind == yaml.ScalarNode {
		param.Name = v.Value
	}
	if v := mappingValue(node, "in"); v != nil && v.Kind == yaml.ScalarNode {
		param.In = v.Value
	}
	if v := mappingValue(node, "required"); v != nil && v.Kind == yaml.ScalarNode {
		param.Required = v.ShortTag() == "!!bool" && strings.EqualFold(v.Value, "true")
	}
	return param
}

// sharedParameters collects the reusable parameter definitions of the
// document, keyed by the local reference that points at them.
func sharedParameters(root *yaml.Node) map[string]*Parameter {
	shared := make(map[string]*Parameter)
	collect := func(defs *yaml.Node, prefix string) {
		if defs == nil || defs.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(defs.Content); i += 2 {
			value := resolveAlias(defs.Content[i+1])
			if value.Kind == yaml.MappingNode {
				shared[prefix+defs.Content[i].Value] = decodeParameter(value)
			}
		}
	}

	collect(mappingValue(root, "parameters"), oas2ParameterRefPrefix)
	if components := mappingValue(root, "components"); components != nil {
		collect(mappingValue(components, "parameters"), oas3ParameterRefPrefix)
	}
	return shared
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return resolveAlias(node.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
