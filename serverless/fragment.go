package serverless

import "fmt"

// HandlerPrefix is the module part of every generated handler reference.
const HandlerPrefix = "handler."

// Function is a deployable function: a handler and its triggers.
type Function struct {
	Handler string  `json:"handler" yaml:"handler"`
	Events  []Event `json:"events" yaml:"events"`
}

// Fragment is the single-function configuration derived from one
// descriptor. Fragments of the same service are combined by Merge.
type Fragment struct {
	Service  string
	Name     string
	Function Function
}

// BuildFragment derives the service, function name, and trigger of one
// target descriptor.
func BuildFragment(d Descriptor, opts Options) (Fragment, error) {
	service, err := ServiceName(d, opts)
	if err != nil {
		return Fragment{}, fmt.Errorf("serverless: %w", err)
	}
	name := FunctionName(d, opts)
	return Fragment{
		Service: service,
		Name:    name,
		Function: Function{
			Handler: HandlerPrefix + name,
			Events:  []Event{BuildEvent(d, opts)},
		},
	}, nil
}
