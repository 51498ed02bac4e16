package template

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Product describes one licensable product: the license body template plus
// the product-specific default variables that ship alongside it. Product
// files are YAML mappings with a required `template` key; every other key
// becomes a default field.
type Product struct {
	Template string
	Defaults Fields
}

// LoadProduct reads a product definition from a YAML file.
func LoadProduct(path string) (*Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read product file: %w", err)
	}
	return ParseProduct(raw)
}

// ParseProduct parses a YAML product definition.
func ParseProduct(raw []byte) (*Product, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse product file: %w", err)
	}

	tmpl, ok := doc["template"].(string)
	if !ok || tmpl == "" {
		return nil, fmt.Errorf("%w: product file has no template", ErrBadTemplate)
	}

	defaults := make(Fields, len(doc))
	for k, v := range doc {
		if k == "template" {
			continue
		}
		defaults[k] = v
	}
	return &Product{Template: tmpl, Defaults: defaults}, nil
}

// Generate renders the product's license text. Field precedence, lowest to
// highest: baseline defaults, product defaults, organisation/serverID,
// caller overrides.
func (p *Product) Generate(organisation, serverID string, overrides Fields) (string, error) {
	fields := BaselineFields()
	for k, v := range p.Defaults {
		fields[k] = v
	}
	if organisation != "" {
		fields["organisation"] = organisation
	}
	if serverID != "" {
		fields["server_id"] = serverID
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return Render(p.Template, fields)
}

// Baseline values for fields common to every sealed-format product.
const (
	defaultEdition     = "ENTERPRISE"
	defaultLicenseType = "COMMERCIAL"
	defaultExpiry      = "2099-12-31"
	defaultSEN         = "SEN-L0000000"
	defaultContact     = "noreply@example.com"
)

// BaselineFields returns the default variable set shared by sealed-format
// license templates. Dates are derived from the current time.
func BaselineFields() Fields {
	now := time.Now()
	day := now.Format("2006-01-02")
	return Fields{
		"license_edition":         defaultEdition,
		"license_type":            defaultLicenseType,
		"number_of_users":         -1,
		"purchase_date":           day,
		"creation_date":           day,
		"maintenance_expiry_date": defaultExpiry,
		"license_expiry_date":     defaultExpiry,
		"sen":                     defaultSEN,

		"evaluation":              "false",
		"active":                  "true",
		"license_version":         2,
		"number_of_cluster_nodes": 0,
		"enterprise":              "true",
		"starter":                 "false",

		"contact_email": defaultContact,

		"created_at": now.Format(time.ANSIC),
	}
}
