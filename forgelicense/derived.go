package forgelicense

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/ForgeOps/forge-license-sdk/forgelicense/rshash"
	"github.com/ForgeOps/forge-license-sdk/forgelicense/template"
)

// derivedLicenseTemplate is the fixed license-object literal for the
// derived (plugin) product family. Doubled braces render as literals.
const derivedLicenseTemplate = `{{"licenseVersion":{license_version},"licenseKey":"{license_key}","licensedSystem":"{name}","licensedTo":"{organisation}","licenseType":"{license_type}","quantityUsers":{quantity_users},"quantityNodes":{quantity_nodes},"expirationDate":"{expiration_date}"}}`

// derivedKeyTemplates are the four field-order permutations hashed into
// the license key. The order of fields inside each permutation is part of
// the wire format: reordering changes every derived key.
var derivedKeyTemplates = [4]string{
	"{quantity_users}{license_type}{name}{organisation}{expiration_date}{node_part}",
	"{organisation}{quantity_users}{node_part}{license_type}{expiration_date}{name}",
	"{node_part}{organisation}{name}{quantity_users}{license_type}{expiration_date}",
	"{name}{expiration_date}{node_part}{organisation}{license_type}{quantity_users}",
}

// DerivedProductNames maps product identifiers to the licensed system
// names embedded in derived licenses. Unknown products leave the name
// field unset, which fails loudly during rendering.
var DerivedProductNames = map[string]string{
	"jira":       "Gliffy JIRA Plugin",
	"confluence": "Gliffy Confluence Plugin",
}

// DefaultDerivedFields returns the default variable set for derived
// licenses. The expiration date is mm/dd/yy; dates past 2032-12-31 wrap
// to 19xx in the consuming product.
func DefaultDerivedFields() template.Fields {
	return template.Fields{
		"license_version": 2,
		"license_type":    "COMMERCIAL_ENTERPRISE",
		"quantity_users":  -1,
		"quantity_nodes":  -1,
		"expiration_date": "12/31/32",
	}
}

// DeriveKey computes the license key for a derived license: each of the
// four field permutations is rendered and hashed, and the decimal digests
// are joined with dashes. Any referenced field that is absent aborts the
// derivation with a *template.MissingFieldError.
func DeriveKey(fields template.Fields) (string, error) {
	scope := fields.Merge(template.Fields{"node_part": nodePart(fields)})

	parts := make([]string, 0, len(derivedKeyTemplates))
	for _, tmpl := range derivedKeyTemplates {
		s, err := template.Render(tmpl, scope)
		if err != nil {
			return "", err
		}
		parts = append(parts, strconv.FormatUint(uint64(rshash.Sum(s)), 10))
	}
	return strings.Join(parts, "-"), nil
}

// nodePart is the node count's contribution to the key permutations:
// the decimal count when it exceeds one, otherwise empty.
func nodePart(fields template.Fields) string {
	n := nodeQuantity(fields["quantity_nodes"])
	if n > 1 {
		return strconv.Itoa(n)
	}
	return ""
}

// nodeQuantity coerces the quantity_nodes field, which may arrive as a
// number from defaults or as a string from command-line overrides.
func nodeQuantity(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		return 0
	default:
		return 0
	}
}

// DerivedOption configures a DerivedGenerator.
type DerivedOption func(*DerivedGenerator)

// WithDerivedTemplate replaces the built-in license template, for custom
// product families that follow the same key-derivation scheme.
func WithDerivedTemplate(tmpl string) DerivedOption {
	return func(g *DerivedGenerator) {
		g.template = tmpl
	}
}

// DerivedGenerator fabricates derived-format licenses. The format is
// write-only: the consuming product recomputes the key itself, so no
// decode or verify path exists.
type DerivedGenerator struct {
	template string
}

// NewDerivedGenerator creates a generator using the built-in template
// unless overridden.
func NewDerivedGenerator(opts ...DerivedOption) *DerivedGenerator {
	g := &DerivedGenerator{template: derivedLicenseTemplate}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the plaintext derived license for a product and
// organisation. Overrides take precedence over defaults and the
// product-name lookup.
func (g *DerivedGenerator) Generate(product, organisation string, overrides template.Fields) (string, error) {
	tmpl := strings.TrimSpace(g.template)
	if tmpl == "" {
		return "", fmt.Errorf("%w: no license template defined", template.ErrBadTemplate)
	}

	fields := DefaultDerivedFields()
	if name, ok := DerivedProductNames[product]; ok {
		fields["name"] = name
	}
	if organisation != "" {
		fields["organisation"] = organisation
	}
	for k, v := range overrides {
		fields[k] = v
	}

	key, err := DeriveKey(fields)
	if err != nil {
		return "", err
	}
	fields["license_key"] = key

	return template.Render(tmpl, fields)
}

// EncodeDerived wraps plaintext derived license text into its transport
// form: base64 of the UTF-8 bytes, hard-wrapped with a trailing newline.
func EncodeDerived(licenseText string) string {
	return wrapLines(base64.StdEncoding.EncodeToString([]byte(licenseText)), lineWidth)
}
