// Package tools defines the named operations the MCP server exposes and the
// registry the dispatcher consults. Each tool decodes its own arguments and
// returns a JSON-serializable result.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidParams marks failures caused by the caller's arguments
// (missing fields, malformed addresses, unparseable amounts). The dispatcher
// maps it to the invalid-params protocol error; everything else is internal.
var ErrInvalidParams = errors.New("invalid params")

func invalidParamsf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

// Tool is a named, schema-described operation.
type Tool interface {
	Name() string
	Description() string
	// InputSchema is a JSON-schema document describing the arguments.
	InputSchema() map[string]any
	Execute(ctx context.Context, args json.RawMessage) (any, error)
}

// Registry is a name-keyed tool collection. It is built once at startup and
// read-only afterwards; List preserves registration order so tools/list
// responses are reproducible.
type Registry struct {
	order  []Tool
	byName map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{byName: map[string]Tool{}}
}

func (r *Registry) Register(t Tool) error {
	if _, exists := r.byName[t.Name()]; exists {
		return fmt.Errorf("tools: duplicate tool name %q", t.Name())
	}
	r.byName[t.Name()] = t
	r.order = append(r.order, t)
	return nil
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.order))
	copy(out, r.order)
	return out
}
