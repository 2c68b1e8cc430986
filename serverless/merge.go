package serverless

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// ServiceConfig is the functions configuration of one service.
type ServiceConfig struct {
	Service   string     `json:"service" yaml:"service"`
	Functions *Functions `json:"functions" yaml:"functions"`
}

// Functions is an insertion-ordered map of function name to definition.
// The zero value is empty and ready to use.
type Functions struct {
	names []string
	defs  map[string]*Function
}

// Len returns the number of functions.
func (f *Functions) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Names returns the function names in insertion order.
func (f *Functions) Names() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.names)
}

// Get returns the named function.
func (f *Functions) Get(name string) (Function, bool) {
	if f == nil {
		return Function{}, false
	}
	fn, ok := f.defs[name]
	if !ok {
		return Function{}, false
	}
	return *fn, true
}

// All iterates the functions in insertion order.
func (f *Functions) All() iter.Seq2[string, Function] {
	return func(yield func(string, Function) bool) {
		if f == nil {
			return
		}
		for _, name := range f.names {
			if !yield(name, *f.defs[name]) {
				return
			}
		}
	}
}

// add merges fn into the entry called name and reports whether an entry
// already existed. The later handler wins and events are concatenated.
func (f *Functions) add(name string, fn Function) bool {
	if f.defs == nil {
		f.defs = make(map[string]*Function)
	}
	existing, ok := f.defs[name]
	if !ok {
		f.names = append(f.names, name)
		f.defs[name] = &Function{
			Handler: fn.Handler,
			Events:  slices.Clone(fn.Events),
		}
		return false
	}
	existing.Handler = fn.Handler
	existing.Events = append(existing.Events, fn.Events...)
	return true
}

// MarshalJSON writes the functions as a JSON object in insertion order.
func (f *Functions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range f.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.defs[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Collision records a function name that received more than one trigger
// within a service.
type Collision struct {
	Service  string `json:"service" yaml:"service"`
	Function string `json:"function" yaml:"function"`
	// Fragments is the number of fragments merged into the function
	Fragments int `json:"fragments" yaml:"fragments"`
}

// Merge groups fragments by service. Services and their functions keep the
// order in which they are first seen. Fragments sharing a service and
// function name are merged: the later handler wins and events are
// concatenated in fragment order. Every such name is reported once as a
// Collision.
func Merge(fragments []Fragment) ([]*ServiceConfig, []Collision) {
	var services []*ServiceConfig
	byName := make(map[string]*ServiceConfig)

	type key struct{ service, function string }
	counts := make(map[key]int)
	var collided []key

	for _, frag := range fragments {
		cfg, ok := byName[frag.Service]
		if !ok {
			cfg = &ServiceConfig{Service: frag.Service, Functions: &Functions{}}
			byName[frag.Service] = cfg
			services = append(services, cfg)
		}
		k := key{frag.Service, frag.Name}
		if cfg.Functions.add(frag.Name, frag.Function) && counts[k] == 1 {
			collided = append(collided, k)
		}
		counts[k]++
	}

	var collisions []Collision
	for _, k := range collided {
		collisions = append(collisions, Collision{
			Service:   k.service,
			Function:  k.function,
			Fragments: counts[k],
		})
	}
	return services, collisions
}
