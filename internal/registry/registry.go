package registry

import (
	"fmt"
	"slices"
	"strings"
)

// ParamType is the JSON type accepted for a tool parameter.
type ParamType string

// Supported parameter types.
const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
)

// Param describes a single tool parameter.
type Param struct {
	// Name is the argument key.
	Name string
	// Type is the accepted JSON type.
	Type ParamType
	// Description explains the parameter for the agent.
	Description string
	// Required rejects calls that omit the parameter.
	Required bool
	// Default is applied when the parameter is omitted; nil means no default.
	Default any
	// Positive requires integer values greater than zero.
	Positive bool
	// NonEmpty rejects empty strings.
	NonEmpty bool
}

// ToolDescriptor declares a tool exposed by the server.
type ToolDescriptor struct {
	// Name is the unique tool name.
	Name string
	// Title is the human-friendly tool title.
	Title string
	// Description explains the tool for the agent.
	Description string
	// Params lists parameters in declaration order.
	Params []Param
	// ReadOnly marks tools without side effects.
	ReadOnly bool
	// OpenWorld marks tools that reach the trading platform.
	OpenWorld bool
}

func (d ToolDescriptor) clone() ToolDescriptor {
	d.Params = slices.Clone(d.Params)
	return d
}

// Registry is an immutable, ordered set of tool descriptors.
type Registry struct {
	tools  []ToolDescriptor
	byName map[string]int
}

// New builds a registry and rejects empty or duplicate tool names.
func New(tools ...ToolDescriptor) (*Registry, error) {
	r := &Registry{
		tools:  make([]ToolDescriptor, 0, len(tools)),
		byName: make(map[string]int, len(tools)),
	}
	for i, tool := range tools {
		if strings.TrimSpace(tool.Name) == "" {
			return nil, fmt.Errorf("tools[%d].name is required", i)
		}
		if _, exists := r.byName[tool.Name]; exists {
			return nil, fmt.Errorf("duplicate tool name: %s", tool.Name)
		}
		if err := validateParams(tool); err != nil {
			return nil, err
		}
		r.byName[tool.Name] = len(r.tools)
		r.tools = append(r.tools, tool.clone())
	}
	return r, nil
}

func validateParams(tool ToolDescriptor) error {
	seen := make(map[string]struct{}, len(tool.Params))
	for i, p := range tool.Params {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("tool %s: params[%d].name is required", tool.Name, i)
		}
		if _, exists := seen[p.Name]; exists {
			return fmt.Errorf("tool %s: duplicate param %s", tool.Name, p.Name)
		}
		seen[p.Name] = struct{}{}
		switch p.Type {
		case TypeString:
			if p.Default != nil {
				if _, ok := p.Default.(string); !ok {
					return fmt.Errorf("tool %s: param %s default must be a string", tool.Name, p.Name)
				}
			}
		case TypeInteger:
			if p.Default != nil {
				if _, ok := p.Default.(int64); !ok {
					return fmt.Errorf("tool %s: param %s default must be an int64", tool.Name, p.Name)
				}
			}
		default:
			return fmt.Errorf("tool %s: param %s has unsupported type %q", tool.Name, p.Name, p.Type)
		}
		if p.Required && p.Default != nil {
			return fmt.Errorf("tool %s: param %s cannot be both required and defaulted", tool.Name, p.Name)
		}
	}
	return nil
}

// Tools returns a copy of all descriptors in registration order.
func (r *Registry) Tools() []ToolDescriptor {
	out := make([]ToolDescriptor, len(r.tools))
	for i, tool := range r.tools {
		out[i] = tool.clone()
	}
	return out
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, tool := range r.tools {
		names[i] = tool.Name
	}
	return names
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (ToolDescriptor, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return ToolDescriptor{}, false
	}
	return r.tools[idx].clone(), true
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}
