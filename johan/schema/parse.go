// Package schema parses and merges the schema fragments that packages
// contribute to the shared Johan Chat data model. Each package ships a
// schema.prisma fragment declaring model blocks; the host merges every
// fragment into one schema, append-only per model, and rejects any field
// re-declared with a different type.
package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is one field line inside a model block. Type keeps the optional `?`
// and list `[]` markers; Attrs is the raw attribute text after the type.
type Field struct {
	Name  string
	Type  string
	Attrs string
	Line  int
}

// Model is one `model Name { ... }` block.
type Model struct {
	Name   string
	Fields []Field
	Line   int
}

// Fragment is the parsed contents of one schema.prisma file. Source names
// the contributing package and is carried into merge conflict reports.
type Fragment struct {
	Source string
	Models []Model
}

var (
	modelHeadRe = regexp.MustCompile(`^model\s+([A-Za-z][A-Za-z0-9]*)\s*\{$`)
	identRe     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	typeRe      = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(\?|\[\])?$`)
)

// Parse reads a schema fragment. It accepts model blocks, blank lines and
// `//` comments; anything else is a parse error carrying the line number.
func Parse(source, text string) (*Fragment, error) {
	frag := &Fragment{Source: source}
	var cur *Model
	seenModels := map[string]int{}

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := stripComment(raw)
		if line == "" {
			continue
		}

		if cur == nil {
			m := modelHeadRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%s:%d: expected model declaration, got %q", source, lineNo, line)
			}
			name := m[1]
			if prev, ok := seenModels[name]; ok {
				return nil, fmt.Errorf("%s:%d: model %s already declared at line %d", source, lineNo, name, prev)
			}
			seenModels[name] = lineNo
			cur = &Model{Name: name, Line: lineNo}
			continue
		}

		if line == "}" {
			frag.Models = append(frag.Models, *cur)
			cur = nil
			continue
		}

		field, err := parseField(source, lineNo, line)
		if err != nil {
			return nil, err
		}
		for _, f := range cur.Fields {
			if f.Name == field.Name {
				return nil, fmt.Errorf("%s:%d: field %s.%s already declared at line %d",
					source, lineNo, cur.Name, field.Name, f.Line)
			}
		}
		cur.Fields = append(cur.Fields, field)
	}

	if cur != nil {
		return nil, fmt.Errorf("%s: model %s is missing a closing brace", source, cur.Name)
	}
	return frag, nil
}

func parseField(source string, lineNo int, line string) (Field, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return Field{}, fmt.Errorf("%s:%d: field %q is missing a type", source, lineNo, parts[0])
	}
	name, typ := parts[0], parts[1]
	if !identRe.MatchString(name) {
		return Field{}, fmt.Errorf("%s:%d: invalid field name %q", source, lineNo, name)
	}
	if !typeRe.MatchString(typ) {
		return Field{}, fmt.Errorf("%s:%d: invalid type %q for field %s", source, lineNo, typ, name)
	}
	return Field{
		Name:  name,
		Type:  typ,
		Attrs: strings.Join(parts[2:], " "),
		Line:  lineNo,
	}, nil
}

func stripComment(line string) string {
	if idx := strings.Index(line, "//"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
