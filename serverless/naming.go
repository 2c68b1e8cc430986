package serverless

import (
	"strings"
	"unicode/utf8"

	"github.com/erraggy/oas2sls/internal/naming"
	"github.com/erraggy/oas2sls/oaserrors"
)

// ServiceName derives the service a descriptor is deployed under from the
// first tag that starts with opts.APIPrefix. The prefix and the separator
// character after it are dropped and the rest is kebab-cased, so with
// prefix "api" the tag "api.userAccounts" gives "user-accounts".
//
// A tag that leaves nothing to kebab-case is a *oaserrors.DerivationError.
func ServiceName(d Descriptor, opts Options) (string, error) {
	tag, ok := matchingTag(d.Operation, opts.APIPrefix)
	if !ok {
		return "", &oaserrors.DerivationError{
			Method:  d.Method,
			Path:    d.Path,
			Message: "no tag starts with api prefix " + `"` + opts.APIPrefix + `"`,
		}
	}

	rest := tag[len(opts.APIPrefix):]
	_, sepLen := utf8.DecodeRuneInString(rest)
	name := naming.ToKebabCase(rest[sepLen:])
	if name == "" {
		return "", &oaserrors.DerivationError{
			Method:  d.Method,
			Path:    d.Path,
			Tag:     tag,
			Message: "tag yields an empty service name",
		}
	}

	if opts.ServicePrefix != "" {
		return opts.ServicePrefix + "-" + name, nil
	}
	return name, nil
}

// FunctionName returns the function a descriptor is routed to:
//
//  1. opts.FunctionName when set,
//  2. the operationId when opts.OperationID is set and one is declared,
//  3. otherwise method + resources + conditions built from the path.
//
// An empty or non-string operationId counts as not declared and falls
// through to the synthesized name. Each resource segment is pascal-cased on
// its own, so "get /reports/2024" becomes "getReports2024".
//
// "get /users/{id}" becomes "getUsersWithId" and
// "post /orders/{orderId}/items" becomes "postItemsWithOrdId".
func FunctionName(d Descriptor, opts Options) string {
	if opts.FunctionName != "" {
		return opts.FunctionName
	}
	if opts.OperationID && d.Operation != nil && d.Operation.OperationID != "" {
		return d.Operation.OperationID
	}

	segs := parseSegments(d.Path, opts.BasePath)
	var b strings.Builder
	b.WriteString(d.Method)
	for _, res := range resources(segs) {
		b.WriteString(naming.ToPascalCase(res))
	}
	for _, cond := range conditions(segs) {
		b.WriteString(cond)
	}
	return b.String()
}

type segmentKind int

const (
	literalSegment segmentKind = iota
	parameterSegment
)

// segment is one non-empty piece of a path template. For parameters, value
// is the name without braces.
type segment struct {
	kind  segmentKind
	value string
}

// parseSegments splits a path template into classified segments, dropping
// the first one when basePath is set.
func parseSegments(path string, basePath bool) []segment {
	var segs []segment
	for _, piece := range strings.Split(path, "/") {
		if piece == "" {
			continue
		}
		if len(piece) >= 2 && piece[0] == '{' && piece[len(piece)-1] == '}' {
			segs = append(segs, segment{kind: parameterSegment, value: piece[1 : len(piece)-1]})
			continue
		}
		segs = append(segs, segment{kind: literalSegment, value: piece})
	}
	if basePath && len(segs) > 0 {
		segs = segs[1:]
	}
	return segs
}

// resources folds the segments into the resource words of a function name.
// A literal appends to the accumulator, except right after a parameter
// where it replaces it: /orders/{id}/items names "items", not "orders items".
func resources(segs []segment) []string {
	var acc []string
	var prev *segment
	for i := range segs {
		acc = foldResource(acc, prev, segs[i])
		prev = &segs[i]
	}
	return acc
}

func foldResource(acc []string, prev *segment, cur segment) []string {
	switch {
	case cur.kind == parameterSegment:
		return acc
	case prev != nil && prev.kind == parameterSegment:
		return []string{cur.value}
	default:
		return append(acc[:len(acc):len(acc)], cur.value)
	}
}

// conditions turns every parameter into a condition token: each dot-case
// word is cut to its first three characters and pascal-cased. The first
// token carries the "With" prefix.
func conditions(segs []segment) []string {
	var tokens []string
	for _, s := range segs {
		if s.kind != parameterSegment {
			continue
		}
		var b strings.Builder
		for _, word := range strings.Split(naming.ToDotCase(s.value), ".") {
			b.WriteString(naming.ToPascalCase(truncate(word, 3)))
		}
		token := b.String()
		if len(tokens) == 0 {
			token = "With" + token
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}
