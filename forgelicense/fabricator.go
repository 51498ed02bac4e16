package forgelicense

import (
	"context"
	"fmt"

	"github.com/ForgeOps/forge-license-sdk/forgelicense/issueregistry"
	"github.com/ForgeOps/forge-license-sdk/forgelicense/template"
)

// Fabricator is the top-level orchestrator that combines the two codecs
// with an optional issued-license registry into a unified API.
type Fabricator struct {
	encoder  *SealedEncoder
	derived  *DerivedGenerator
	registry issueregistry.Registry
}

// FabricatorOption configures a Fabricator.
type FabricatorOption func(*Fabricator)

// WithSealedEncoder sets the encoder for sealed-format tokens. Required
// for Seal.
func WithSealedEncoder(e *SealedEncoder) FabricatorOption {
	return func(f *Fabricator) {
		f.encoder = e
	}
}

// WithDerivedGenerator sets the generator for derived-format tokens.
// Without it, Derive uses a generator with the built-in template.
func WithDerivedGenerator(g *DerivedGenerator) FabricatorOption {
	return func(f *Fabricator) {
		f.derived = g
	}
}

// WithRegistry sets the registry where fabricated licenses are recorded.
func WithRegistry(r issueregistry.Registry) FabricatorOption {
	return func(f *Fabricator) {
		f.registry = r
	}
}

// NewFabricator creates a new license Fabricator.
func NewFabricator(opts ...FabricatorOption) *Fabricator {
	f := &Fabricator{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Seal encodes plaintext license text into a sealed token and records the
// issue when a registry is configured.
func (f *Fabricator) Seal(ctx context.Context, product, organisation, licenseText string) (string, error) {
	if f.encoder == nil {
		return "", fmt.Errorf("sealed encoder is required for Seal")
	}
	token, err := f.encoder.Encode(licenseText)
	if err != nil {
		return "", err
	}
	if err := f.record(ctx, issueregistry.FormatSealed, product, organisation, token); err != nil {
		return "", err
	}
	return token, nil
}

// Derive generates and encodes a derived-format token and records the
// issue when a registry is configured.
func (f *Fabricator) Derive(ctx context.Context, product, organisation string, overrides template.Fields) (string, error) {
	gen := f.derived
	if gen == nil {
		gen = NewDerivedGenerator()
	}
	text, err := gen.Generate(product, organisation, overrides)
	if err != nil {
		return "", err
	}
	token := EncodeDerived(text)
	if err := f.record(ctx, issueregistry.FormatDerived, product, organisation, token); err != nil {
		return "", err
	}
	return token, nil
}

func (f *Fabricator) record(ctx context.Context, format, product, organisation, token string) error {
	if f.registry == nil {
		return nil
	}
	_, err := f.registry.Record(ctx, issueregistry.Issue{
		Format:       format,
		Product:      product,
		Organisation: organisation,
		TokenDigest:  issueregistry.TokenDigest(token),
	})
	if err != nil {
		return fmt.Errorf("record issued license: %w", err)
	}
	return nil
}
