package serverless

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Format is an output serialization.
type Format string

const (
	// FormatYAML renders serverless.yml style documents
	FormatYAML Format = "yaml"
	// FormatJSON renders indented JSON
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. "yml" is accepted as an alias of yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("serverless: unsupported format %q (want yaml or json)", s)
	}
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".yml"
}

// FileName returns the file a service configuration is written to.
func (c *ServiceConfig) FileName(format Format) string {
	return c.Service + format.Extension()
}

// MarshalYAML implements yaml.Marshaler. Functions are emitted as a
// mapping in insertion order.
func (f *Functions) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if f == nil {
		return node, nil
	}
	for _, name := range f.names {
		var val yaml.Node
		if err := val.Encode(f.defs[name]); err != nil {
			return nil, fmt.Errorf("serverless: encoding function %s: %w", name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&val,
		)
	}
	return node, nil
}

// Marshal renders one service configuration.
func (c *ServiceConfig) Marshal(format Format) ([]byte, error) {
	return MarshalAll([]*ServiceConfig{c}, format)
}

// MarshalAll renders service configurations. YAML output holds one
// document per service separated by "---"; JSON output is a single object
// for one service and an array otherwise.
func MarshalAll(configs []*ServiceConfig, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var v any = configs
		if configs == nil {
			v = []*ServiceConfig{}
		} else if len(configs) == 1 {
			v = configs[0]
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("serverless: marshaling json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		for _, cfg := range configs {
			if err := enc.Encode(cfg); err != nil {
				return nil, fmt.Errorf("serverless: marshaling yaml for service %s: %w", cfg.Service, err)
			}
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("serverless: marshaling yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("serverless: unsupported format %q", format)
	}
}
