// Package oaserrors provides structured error types for the oas2sls library.
//
// Import path: github.com/erraggy/oas2sls/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [InputError]: no input document given and none discoverable, or unreadable input
//   - [ConfigError]: Invalid generator options
//   - [DerivationError]: an operation whose service name cannot be derived
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrInput]: Matches any [InputError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrDerivation]: Matches any [DerivationError]
//
// # Usage Examples
//
//	result, err := serverless.GenerateWithOptions(ctx, nil, serverless.WithAPIPrefix("api"))
//	if errors.Is(err, oaserrors.ErrInput) {
//	    // no swagger.yaml found
//	}
//
//	var derr *oaserrors.DerivationError
//	if errors.As(err, &derr) {
//	    fmt.Printf("cannot name %s %s\n", derr.Method, derr.Path)
//	}
package oaserrors
