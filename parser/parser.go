package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/oas2sls/oaserrors"
	"go.yaml.in/yaml/v4"
)

// Parser handles OpenAPI document parsing.
//
// A Parser holds no state between calls; construct one per load instead of
// sharing a process-wide instance.
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

// SourceFormat represents the format of the source OpenAPI document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Parse reads and parses the document at specPath.
func (p *Parser) Parse(specPath string) (*Document, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", &oaserrors.InputError{
			Path:    specPath,
			Message: "failed to read file",
			Cause:   err,
		})
	}

	doc, err := p.parse(data, specPath)
	if err != nil {
		return nil, err
	}

	if format := detectFormatFromPath(specPath); format != SourceFormatUnknown {
		doc.SourceFormat = format
	}
	return doc, nil
}

// ParseReader parses an OpenAPI document from an io.Reader.
// The document's SourcePath is set to ParseReader.yaml or ParseReader.json.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	return p.parse(data, syntheticName("ParseReader", data))
}

// ParseBytes parses an OpenAPI document from a byte slice.
// The document's SourcePath is set to ParseBytes.yaml or ParseBytes.json.
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	return p.parse(data, syntheticName("ParseBytes", data))
}

func (p *Parser) parse(data []byte, source string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parser: %w", &oaserrors.ParseError{
			Path:    source,
			Message: "failed to parse YAML/JSON",
			Cause:   err,
		})
	}

	doc, err := decodeDocument(&root, source, p.log())
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	doc.SourcePath = source
	doc.SourceFormat = detectFormatFromContent(data)

	stats := doc.Stats()
	p.log().Debug("parsed document",
		"source", source,
		"version", doc.Version,
		"paths", stats.PathCount,
		"operations", stats.OperationCount,
	)
	return doc, nil
}

func syntheticName(prefix string, data []byte) string {
	if detectFormatFromContent(data) == SourceFormatJSON {
		return prefix + ".json"
	}
	return prefix + ".yaml"
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent guesses the format from the first non-blank byte:
// JSON documents start with '{' or '['.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
