// Package content declares the portal's content types.
package content

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lactec/intranet/internal/domain"
)

//go:embed types.yaml
var defaultTypes []byte

// TypeInfo describes one content type.
type TypeInfo struct {
	Name      string        `yaml:"name" json:"name"`
	Title     string        `yaml:"title" json:"title"`
	AddRoles  []domain.Role `yaml:"add_roles" json:"add_roles"`
	Behaviors []string      `yaml:"behaviors" json:"behaviors"`
	Fields    []string      `yaml:"fields" json:"fields"`
}

// CanAdd reports whether p may create items of this type.
func (t TypeInfo) CanAdd(p *domain.Principal) bool {
	return p.HasRole(t.AddRoles...)
}

// HasBehavior reports whether the type enables behavior.
func (t TypeInfo) HasBehavior(behavior string) bool {
	for _, b := range t.Behaviors {
		if b == behavior {
			return true
		}
	}
	return false
}

// HasField reports whether name is a field of the type.
func (t TypeInfo) HasField(name string) bool {
	for _, f := range t.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Registry holds the declared content types.
type Registry struct {
	types map[string]TypeInfo
}

// LoadRegistry parses a types document.
func LoadRegistry(data []byte) (*Registry, error) {
	var doc struct {
		Types []TypeInfo `yaml:"types"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse types: %w", err)
	}
	reg := &Registry{types: make(map[string]TypeInfo, len(doc.Types))}
	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("type without name")
		}
		if _, dup := reg.types[t.Name]; dup {
			return nil, fmt.Errorf("type %q declared twice", t.Name)
		}
		for _, role := range t.AddRoles {
			if !role.Valid() {
				return nil, fmt.Errorf("type %q: unknown role %q", t.Name, role)
			}
		}
		reg.types[t.Name] = t
	}
	return reg, nil
}

// DefaultRegistry returns the types shipped with the intranet.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(defaultTypes)
}

// Get looks up a type by name.
func (r *Registry) Get(name string) (TypeInfo, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names lists the registered types, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
