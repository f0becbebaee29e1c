package schema

import (
	"fmt"
	"strings"
)

// ConflictError reports a field re-declared with a different type than an
// earlier fragment (or the baseline) already fixed for it.
type ConflictError struct {
	Model          string
	Field          string
	ExistingType   string
	NewType        string
	ExistingSource string
	NewSource      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schema conflict on %s.%s: %s declares type %s but %s already declared type %s",
		e.Model, e.Field, e.NewSource, e.NewType, e.ExistingSource, e.ExistingType)
}

type mergedField struct {
	name   string
	typ    string
	attrs  string
	source string
}

type mergedModel struct {
	name   string
	fields []mergedField
}

// Merged accumulates fragments into one shared schema. Models keep
// first-declared order, fields keep declaration order, and later fragments
// may only append fields to an existing model.
type Merged struct {
	order  []string
	models map[string]*mergedModel
}

func NewMerged() *Merged {
	return &Merged{models: map[string]*mergedModel{}}
}

// Apply folds a fragment in. Re-declaring a field with the identical type is
// a no-op; a different type returns a *ConflictError and leaves the merged
// schema unchanged.
func (m *Merged) Apply(frag *Fragment) error {
	// validate the whole fragment before mutating anything
	for _, model := range frag.Models {
		existing, ok := m.models[model.Name]
		if !ok {
			continue
		}
		for _, f := range model.Fields {
			for _, ef := range existing.fields {
				if ef.name == f.Name && ef.typ != f.Type {
					return &ConflictError{
						Model:          model.Name,
						Field:          f.Name,
						ExistingType:   ef.typ,
						NewType:        f.Type,
						ExistingSource: ef.source,
						NewSource:      frag.Source,
					}
				}
			}
		}
	}

	for _, model := range frag.Models {
		existing, ok := m.models[model.Name]
		if !ok {
			existing = &mergedModel{name: model.Name}
			m.models[model.Name] = existing
			m.order = append(m.order, model.Name)
		}
	next:
		for _, f := range model.Fields {
			for _, ef := range existing.fields {
				if ef.name == f.Name {
					continue next
				}
			}
			existing.fields = append(existing.fields, mergedField{
				name:   f.Name,
				typ:    f.Type,
				attrs:  f.Attrs,
				source: frag.Source,
			})
		}
	}
	return nil
}

// Models lists merged model names in first-declared order.
func (m *Merged) Models() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Render produces the merged schema text handed to the migration tooling.
// Output is deterministic for a given apply order.
func (m *Merged) Render() string {
	var b strings.Builder
	for i, name := range m.order {
		if i > 0 {
			b.WriteString("\n")
		}
		model := m.models[name]
		fmt.Fprintf(&b, "model %s {\n", model.name)

		width := 0
		for _, f := range model.fields {
			if len(f.name) > width {
				width = len(f.name)
			}
		}
		for _, f := range model.fields {
			fmt.Fprintf(&b, "  %-*s %s", width, f.name, f.typ)
			if f.attrs != "" {
				fmt.Fprintf(&b, " %s", f.attrs)
			}
			b.WriteString("\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
