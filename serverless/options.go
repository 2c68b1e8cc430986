package serverless

import (
	"errors"
	"reflect"
	"strings"

	"github.com/erraggy/oas2sls/oaserrors"
	"github.com/go-playground/validator/v10"
)

// Options controls how operations are selected and how names and events
// are derived from them.
type Options struct {
	// APIPrefix is the tag prefix that marks an operation as part of the
	// generated API surface. Required.
	APIPrefix string `json:"apiPrefix" yaml:"apiPrefix" validate:"required"`
	// ServicePrefix is prepended, with a hyphen, to every service name.
	ServicePrefix string `json:"servicePrefix,omitempty" yaml:"servicePrefix,omitempty"`
	// BasePath treats the first path segment as a base path: it is dropped
	// from function names and from trigger paths.
	BasePath bool `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	// FunctionName forces one function name for every operation, so all
	// triggers collapse into a single function per service.
	FunctionName string `json:"functionName,omitempty" yaml:"functionName,omitempty"`
	// OperationID uses the operationId as function name when one is declared.
	OperationID bool `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	// CORS enables cors on every trigger.
	CORS bool `json:"cors,omitempty" yaml:"cors,omitempty"`
	// OptionsMethod synthesizes an OPTIONS trigger for paths with non-GET
	// methods and enables cors on GET triggers.
	OptionsMethod bool `json:"optionsMethod,omitempty" yaml:"optionsMethod,omitempty"`
	// Authorizer is copied verbatim into every trigger. It can be a name,
	// an ARN, or a mapping.
	Authorizer any `json:"authorizer,omitempty" yaml:"authorizer,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json names (apiPrefix, not APIPrefix).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the options and returns a *oaserrors.ConfigError for the
// first invalid field.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "failed on the '" + fe.Tag() + "' rule"
		if fe.Tag() == "required" {
			msg = "is required"
		}
		return &oaserrors.ConfigError{
			Option:  fe.Field(),
			Message: msg,
			Cause:   err,
		}
	}
	return &oaserrors.ConfigError{Message: "invalid options", Cause: err}
}

// hasAuthorizer reports whether an authorizer is configured. Empty strings
// and false count as unset.
func (o Options) hasAuthorizer() bool {
	switch v := o.Authorizer.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	default:
		return true
	}
}
