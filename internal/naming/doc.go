// Package naming provides the case conversion primitives used to derive
// service and function names.
//
// All functions first split their input into lower-case words with [Words]
// and then join the words in the target style: kebab-case for service names,
// dot.case for tokenizing path parameters, and PascalCase for the resource
// and condition tokens of generated function names.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
