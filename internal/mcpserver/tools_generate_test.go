package mcpserver

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/oas2sls/serverless"
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
      operationId: listUsers
      tags: [api.users]
    post:
      tags: [api.users]
  /api/orders/{orderId}/items:
    post:
      tags: [api.orders]
      parameters:
        - name: orderId
          in: path
          required: true
  /api/health:
    get:
      tags: [internal]
`

func TestGenerateTool(t *testing.T) {
	specCache.reset()
	res, output, err := handleGenerate(nil, generateInput{
		Spec:      specInput{Content: shopSwagger},
		APIPrefix: "api",
		BasePath:  true,
	})
	require.NoError(t, err)
	assert.Nil(t, res)

	require.Len(t, output.Services, 2)
	assert.Equal(t, "users", output.Services[0].Service)
	assert.Equal(t, 2, output.Services[0].FunctionCount)
	assert.Contains(t, output.Services[0].Document, "handler: handler.getUsers")
	assert.Equal(t, "orders", output.Services[1].Service)
	assert.Contains(t, output.Services[1].Document, "postItemsWithOrdId")

	assert.Empty(t, output.Collisions)
	assert.Equal(t, 3, output.Stats.Targets)
	assert.Equal(t, 2, output.Stats.Services)
}

func TestGenerateTool_JSONAndCollisions(t *testing.T) {
	specCache.reset()
	_, output, err := handleGenerate(nil, generateInput{
		Spec:          specInput{Content: shopSwagger},
		APIPrefix:     "api",
		FunctionName:  "main",
		ServicePrefix: "shop",
		Authorizer:    "authFunc",
		Format:        "json",
	})
	require.NoError(t, err)
	require.Len(t, output.Services, 2)

	var doc struct {
		Service   string `json:"service"`
		Functions map[string]struct {
			Handler string `json:"handler"`
			Events  []struct {
				HTTP map[string]any `json:"http"`
			} `json:"events"`
		} `json:"functions"`
	}
	require.NoError(t, json.Unmarshal([]byte(output.Services[0].Document), &doc))
	assert.Equal(t, "shop-users", doc.Service)
	require.Contains(t, doc.Functions, "main")
	require.Len(t, doc.Functions["main"].Events, 2)
	assert.Equal(t, "authFunc", doc.Functions["main"].Events[0].HTTP["authorizer"])

	assert.Equal(t, []serverless.Collision{{Service: "shop-users", Function: "main", Fragments: 2}}, output.Collisions)
}

func TestGenerateTool_DefaultsFromConfig(t *testing.T) {
	specCache.reset()
	saved := *cfg
	cfg.APIPrefix = "api"
	cfg.Format = serverless.FormatJSON
	t.Cleanup(func() { *cfg = saved })

	_, output, err := handleGenerate(nil, generateInput{Spec: specInput{Content: shopSwagger}})
	require.NoError(t, err)
	require.Len(t, output.Services, 2)
	assert.True(t, json.Valid([]byte(output.Services[0].Document)))
}

func TestGenerateTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input generateInput
		want  string
	}{
		{
			name:  "missing api prefix",
			input: generateInput{Spec: specInput{Content: shopSwagger}},
			want:  "apiPrefix",
		},
		{
			name:  "bad format",
			input: generateInput{Spec: specInput{Content: shopSwagger}, APIPrefix: "api", Format: "toml"},
			want:  "unsupported format",
		},
		{
			name:  "no spec",
			input: generateInput{APIPrefix: "api"},
			want:  "exactly one of file or content",
		},
		{
			name:  "unparsable spec",
			input: generateInput{Spec: specInput{Content: "- just\n- a list\n"}, APIPrefix: "api"},
			want:  "document root must be a mapping",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specCache.reset()
			saved := cfg.APIPrefix
			cfg.APIPrefix = ""
			t.Cleanup(func() { cfg.APIPrefix = saved })

			res, _, err := handleGenerate(nil, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			assert.Contains(t, errorText(t, res), tt.want)
		})
	}
}
