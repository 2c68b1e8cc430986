package serverless

import (
	"errors"
	"testing"

	"github.com/erraggy/oas2sls/oaserrors"
	"github.com/erraggy/oas2sls/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceName(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		opts Options
		want string
	}{
		{"dot separator", []string{"api.users"}, Options{APIPrefix: "api"}, "users"},
		{"service prefix", []string{"api.users"}, Options{APIPrefix: "api", ServicePrefix: "svc"}, "svc-users"},
		{"camel case tag", []string{"api-userAccounts"}, Options{APIPrefix: "api"}, "user-accounts"},
		{"first matching tag wins", []string{"admin", "api.orders", "api.users"}, Options{APIPrefix: "api"}, "orders"},
		{"any separator character", []string{"api/Billing Items"}, Options{APIPrefix: "api"}, "billing-items"},
		{"raw prefix drops one character", []string{"apiusers"}, Options{APIPrefix: "api"}, "sers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ServiceName(descriptor("get", "/x", op(tt.tags...)), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServiceName_Errors(t *testing.T) {
	tests := []struct {
		name string
		tags []string
	}{
		{"tag equals prefix", []string{"api"}},
		{"only separator", []string{"api."}},
		{"no letters after separator", []string{"api.--"}},
		{"no matching tag", []string{"other"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ServiceName(descriptor("get", "/x", op(tt.tags...)), Options{APIPrefix: "api"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrDerivation))

			var derr *oaserrors.DerivationError
			require.True(t, errors.As(err, &derr))
			assert.Equal(t, "get", derr.Method)
			assert.Equal(t, "/x", derr.Path)
		})
	}
}

func TestFunctionName_Synthetic(t *testing.T) {
	tests := []struct {
		method string
		path   string
		opts   Options
		want   string
	}{
		{"get", "/users/{id}", Options{}, "getUsersWithId"},
		{"get", "/users", Options{}, "getUsers"},
		{"post", "/orders/{orderId}/items", Options{}, "postItemsWithOrdId"},
		{"get", "/users/{userId}/orders/{orderStatus}", Options{}, "getOrdersWithUseIdOrdSta"},
		{"get", "/api/users/{id}", Options{BasePath: true}, "getUsersWithId"},
		{"get", "/api/users/{id}", Options{}, "getApiUsersWithId"},
		{"get", "/user-profiles/settings", Options{}, "getUserProfilesSettings"},
		{"delete", "/{id}", Options{}, "deleteWithId"},
		{"get", "/{a}/{b}", Options{}, "getWithAB"},
		{"get", "/items/{item_code}", Options{}, "getItemsWithIteCod"},
		{"get", "/", Options{}, "get"},
		{"get", "/api", Options{BasePath: true}, "get"},
		{"put", "/v2/files//{fileId}", Options{}, "putV2FilesWithFilId"},
		{"get", "/reports/2024", Options{}, "getReports2024"},
		{"get", "/v1/2fa/{id}", Options{}, "getV12faWithId"},
		{"get", "/api/2024/q1", Options{BasePath: true}, "get2024Q1"},
		{"post", "/orders/{orderId}/3ds", Options{}, "post3dsWithOrdId"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			d := descriptor(tt.method, tt.path, op("api.x"))
			assert.Equal(t, tt.want, FunctionName(d, tt.opts))
		})
	}
}

func TestFunctionName_Precedence(t *testing.T) {
	withID := &parser.Operation{OperationID: "listUsers", Tags: []string{"api.users"}}
	noID := op("api.users")

	tests := []struct {
		name string
		o    *parser.Operation
		opts Options
		want string
	}{
		{"override wins over operationId", withID, Options{FunctionName: "main", OperationID: true}, "main"},
		{"operationId used when enabled", withID, Options{OperationID: true}, "listUsers"},
		{"operationId ignored when disabled", withID, Options{}, "getUsers"},
		{"missing operationId falls back", noID, Options{OperationID: true}, "getUsers"},
		{"empty operationId falls back", &parser.Operation{OperationID: "", Tags: []string{"api.users"}}, Options{OperationID: true}, "getUsers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FunctionName(descriptor("get", "/users", tt.o), tt.opts))
		})
	}
}

func TestResources_Fold(t *testing.T) {
	segs := parseSegments("/a/b/{x}/c/d/{y}/e", false)
	assert.Equal(t, []string{"e"}, resources(segs))
	assert.Equal(t, []string{"a", "b"}, resources(parseSegments("/a/b/{x}", false)))
	assert.Empty(t, resources(nil))
}

func TestParseSegments(t *testing.T) {
	segs := parseSegments("/api//users/{id}/{}", true)
	assert.Equal(t, []segment{
		{kind: literalSegment, value: "users"},
		{kind: parameterSegment, value: "id"},
		{kind: parameterSegment, value: ""},
	}, segs)
	assert.Empty(t, parseSegments("/", true))
}
