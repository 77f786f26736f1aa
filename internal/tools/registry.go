package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Registry maps tool names to tools. It's filled once on construction and
// never modified afterwards, so it's safe for concurrent reads.
type Registry struct {
	tools map[string]Tool
	// order of registration, used for prompt rendering
	order []string
}

// NewRegistry with the given tools, in the given order. Registering two
// tools under the same name is an error.
func NewRegistry(tools ...Tool) (*Registry, error) {
	debug := misc.Truthy(os.Getenv("DEBUG"))
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		name := t.Name()
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("tool: '%v' registered twice", name)
		}
		if debug {
			ancli.Okf("adding tool to registry, name: %v\n", name)
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}
	return r, nil
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names of all tools in registration order.
func (r *Registry) Names() []string {
	cp := make([]string, len(r.order))
	copy(cp, r.order)
	return cp
}

// Describe returns one 'name: description' line per tool.
func (r *Registry) Describe() string {
	lines := make([]string, 0, len(r.order))
	for _, name := range r.order {
		lines = append(lines, fmt.Sprintf("%v: %v", name, r.tools[name].Description()))
	}
	return strings.Join(lines, "\n")
}

func (r *Registry) Len() int {
	return len(r.order)
}
