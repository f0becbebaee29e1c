package schema

import (
	"strings"
	"testing"
)

func TestParseFragment(t *testing.T) {
	text := `
// notes package schema
model Note {
  id        String  @id @default(uuid())
  userId    Int
  title     String
  content   String? // optional body
  favourite Boolean @default(false)
}
`
	frag, err := Parse("notes", text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(frag.Models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(frag.Models))
	}
	m := frag.Models[0]
	if m.Name != "Note" {
		t.Errorf("expected model Note, got %s", m.Name)
	}
	if len(m.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(m.Fields))
	}
	if m.Fields[3].Name != "content" || m.Fields[3].Type != "String?" {
		t.Errorf("expected optional content field, got %s %s", m.Fields[3].Name, m.Fields[3].Type)
	}
	if m.Fields[0].Attrs != "@id @default(uuid())" {
		t.Errorf("unexpected attrs for id: %q", m.Fields[0].Attrs)
	}
}

func TestParseListType(t *testing.T) {
	frag, err := Parse("x", "model A {\n  tags String[]\n}\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if frag.Models[0].Fields[0].Type != "String[]" {
		t.Errorf("expected list type String[], got %s", frag.Models[0].Fields[0].Type)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want string
	}{
		{"garbage outside model", "enum Role {\n}\n", "expected model declaration"},
		{"missing type", "model A {\n  id\n}\n", "missing a type"},
		{"bad type", "model A {\n  id Str!ng\n}\n", "invalid type"},
		{"duplicate field", "model A {\n  id Int\n  id String\n}\n", "already declared"},
		{"duplicate model", "model A {\n}\nmodel A {\n}\n", "model A already declared"},
		{"unterminated block", "model A {\n  id Int\n", "missing a closing brace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("frag", tc.text)
			if err == nil {
				t.Fatalf("expected error for %q", tc.text)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestParseEmptyFragment(t *testing.T) {
	frag, err := Parse("empty", "\n// nothing here\n")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(frag.Models) != 0 {
		t.Errorf("expected no models, got %d", len(frag.Models))
	}
}
