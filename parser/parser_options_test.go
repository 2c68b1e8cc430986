package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithOptions_InputSources(t *testing.T) {
	t.Run("bytes", func(t *testing.T) {
		doc, err := ParseWithOptions(WithBytes([]byte(petstoreSwagger)))
		require.NoError(t, err)
		assert.Len(t, doc.Paths, 2)
	})

	t.Run("reader with source name", func(t *testing.T) {
		doc, err := ParseWithOptions(
			WithReader(strings.NewReader(petstoreSwagger)),
			WithSourceName("petstore.yaml"),
		)
		require.NoError(t, err)
		assert.Equal(t, "petstore.yaml", doc.SourcePath)
	})

	t.Run("no source", func(t *testing.T) {
		_, err := ParseWithOptions()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must specify an input source")
	})

	t.Run("two sources", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte("a")), WithFilePath("b.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly one input source")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := ParseWithOptions(WithReader(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reader cannot be nil")
	})

	t.Run("nil bytes", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bytes cannot be nil")
	})
}

func TestParseWithOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	data := `openapi: 3.0.0
paths:
  /x:
    get:
      parameters:
        - $ref: "#/components/parameters/nope"
`
	_, err := ParseWithOptions(WithBytes([]byte(data)), WithLogger(NewSlogAdapter(slog.New(handler))))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "unresolved parameter reference")
	assert.Contains(t, out, "ref=#/components/parameters/nope")
	assert.Contains(t, out, "parsed document")
}
