// Package manifest declares content types from a YAML document.
//
//	types:
//	  - id: menu
//	    attrs:
//	      - name: items
//	        type: array
//	        default: [1, 2, 3]
//	      - name: selected
//	        from: items.0
//
// Attributes with a default become static-default attributes; attributes
// with "from" become computed attributes that resolve the given path on the
// instance. Actions cannot be declared in a manifest.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tendant/content-model/pkg/contentmodel"
)

// Manifest is a set of type declarations
type Manifest struct {
	Types []TypeSpec `yaml:"types"`
}

// TypeSpec declares one content type
type TypeSpec struct {
	ID    string     `yaml:"id"`
	Attrs []AttrSpec `yaml:"attrs"`
}

// AttrSpec declares one attribute
type AttrSpec struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default"`
	From    string `yaml:"from"`

	// HasDefault is set when the document carries a default key, even null.
	HasDefault bool `yaml:"-"`
}

// UnmarshalYAML records whether a default key was present.
func (a *AttrSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain AttrSpec
	if err := node.Decode((*plain)(a)); err != nil {
		return err
	}
	for k := 0; k+1 < len(node.Content); k += 2 {
		if node.Content[k].Value == "default" {
			a.HasDefault = true
		}
	}
	return nil
}

// Parse decodes a manifest from r. An empty document yields an empty manifest.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return &m, nil
}

// LoadFile reads and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the manifest for problems that would make a declaration
// unreachable or ambiguous.
func (m *Manifest) Validate() error {
	ids := make(map[string]bool, len(m.Types))
	for _, ts := range m.Types {
		if ts.ID == "" {
			return fmt.Errorf("%w: type id is required", contentmodel.ErrInvalidManifest)
		}
		if ids[ts.ID] {
			return invalid(ts.ID, fmt.Errorf("duplicate type id"))
		}
		ids[ts.ID] = true

		names := make(map[string]bool, len(ts.Attrs))
		for _, a := range ts.Attrs {
			switch {
			case a.Name == "":
				return invalid(ts.ID, fmt.Errorf("attribute name is required"))
			case strings.Contains(a.Name, "."):
				return invalid(ts.ID, fmt.Errorf("attribute %q: name must not contain '.'", a.Name))
			case names[a.Name]:
				return invalid(ts.ID, fmt.Errorf("duplicate attribute %q", a.Name))
			case a.From != "" && a.HasDefault:
				return invalid(ts.ID, fmt.Errorf("attribute %q: from and default are exclusive", a.Name))
			}
			if a.From != "" {
				head, _, _ := strings.Cut(a.From, ".")
				if head == a.Name {
					return invalid(ts.ID, fmt.Errorf("attribute %q: from must not reference itself", a.Name))
				}
			}
			names[a.Name] = true
		}
	}
	return nil
}

func invalid(typeID string, err error) error {
	return &contentmodel.TypeError{
		TypeID: typeID,
		Op:     "validate",
		Err:    fmt.Errorf("%w: %v", contentmodel.ErrInvalidManifest, err),
	}
}

// Apply validates the manifest and declares its types on reg, returning them
// in document order. Types already present in reg gain the declared
// attributes; existing declarations with the same name are overwritten.
func (m *Manifest) Apply(reg *contentmodel.Registry) ([]*contentmodel.Type, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	types := make([]*contentmodel.Type, 0, len(m.Types))
	for _, ts := range m.Types {
		t := reg.Get(ts.ID)
		for _, a := range ts.Attrs {
			switch {
			case a.From != "":
				from := a.From
				t.Computed(a.Name, func(inst *contentmodel.Instance) any {
					return inst.Get(from)
				})
			case a.HasDefault:
				t.Attr(a.Name, a.Type, a.Default)
			default:
				t.Attr(a.Name, a.Type)
			}
		}
		types = append(types, t)
	}
	return types, nil
}
