package template

import (
	"errors"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	fields := Fields{
		"organisation": "Example Corp",
		"users":        -1,
		"active":       "true",
	}
	got, err := Render("org={organisation} users={users} active={active}", fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "org=Example Corp users=-1 active=true"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderBraceEscapes(t *testing.T) {
	got, err := Render(`{{"licensedTo":"{organisation}"}}`, Fields{"organisation": "ACME"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"licensedTo":"ACME"}`; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderMissingField(t *testing.T) {
	_, err := Render("hello {missing_thing}", Fields{})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("error = %v, want ErrMissingField", err)
	}
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) {
		t.Fatalf("error %v is not a *MissingFieldError", err)
	}
	if mfe.Name != "missing_thing" {
		t.Errorf("missing field name = %q, want %q", mfe.Name, "missing_thing")
	}
}

func TestRenderMalformed(t *testing.T) {
	for _, tmpl := range []string{"{unterminated", "stray } brace", "empty {} name"} {
		if _, err := Render(tmpl, Fields{}); !errors.Is(err, ErrBadTemplate) {
			t.Errorf("Render(%q) error = %v, want ErrBadTemplate", tmpl, err)
		}
	}
}

func TestParseProduct(t *testing.T) {
	raw := []byte(`
description: Example Server
template: |
  licensed to {organisation}
  edition {license_edition}
license_edition: UNLIMITED
`)
	p, err := ParseProduct(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.Template, "{organisation}") {
		t.Errorf("template missing placeholder: %q", p.Template)
	}
	if p.Defaults["license_edition"] != "UNLIMITED" {
		t.Errorf("defaults = %v, want license_edition UNLIMITED", p.Defaults)
	}
	if _, ok := p.Defaults["template"]; ok {
		t.Error("template key leaked into defaults")
	}
}

func TestParseProductRequiresTemplate(t *testing.T) {
	if _, err := ParseProduct([]byte("description: nothing here\n")); !errors.Is(err, ErrBadTemplate) {
		t.Errorf("error = %v, want ErrBadTemplate", err)
	}
	if _, err := ParseProduct([]byte(":::not yaml")); err == nil {
		t.Error("expected error for invalid yaml")
	}
}

func TestLoadProduct(t *testing.T) {
	p, err := LoadProduct("testdata/server.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := p.Generate("Example Corp", "ABCD-1234-EFGH-5678", Fields{"number_of_users": 200})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{"Example Corp", "ABCD-1234-EFGH-5678", "200", "ENTERPRISE"} {
		if !strings.Contains(text, want) {
			t.Errorf("generated text missing %q:\n%s", want, text)
		}
	}
}

func TestGenerateMissingFieldFails(t *testing.T) {
	p := &Product{Template: "needs {no_such_field}", Defaults: Fields{}}
	if _, err := p.Generate("Org", "", nil); !errors.Is(err, ErrMissingField) {
		t.Errorf("error = %v, want ErrMissingField", err)
	}
}

func TestGeneratePrecedence(t *testing.T) {
	p := &Product{
		Template: "{license_edition}/{organisation}",
		Defaults: Fields{"license_edition": "BASIC", "organisation": "From Product"},
	}
	text, err := p.Generate("From Arg", "", Fields{"license_edition": "UNLIMITED"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "UNLIMITED/From Arg" {
		t.Errorf("text = %q, want overrides > organisation arg > product defaults", text)
	}
}

func TestBaselineFields(t *testing.T) {
	fields := BaselineFields()
	for _, key := range []string{
		"license_edition", "license_type", "number_of_users", "purchase_date",
		"creation_date", "maintenance_expiry_date", "license_expiry_date", "sen",
		"evaluation", "active", "license_version", "number_of_cluster_nodes",
		"enterprise", "starter", "contact_email", "created_at",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("baseline fields missing %q", key)
		}
	}
	if fields["license_version"] != 2 {
		t.Errorf("license_version = %v, want 2", fields["license_version"])
	}
}
