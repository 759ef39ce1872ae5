// Package resolve runs the identifier resolution pipeline: preprocess,
// classify, resolve, and postprocess, with module hooks interleaved at
// each stage.
package resolve

import (
	"context"
	"strings"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/bibkit/doi2bib/internal/modules"
	"github.com/bibkit/doi2bib/internal/process"
)

// Pipeline resolves raw identifiers to normalized BibTeX records. It is
// safe for concurrent use once constructed.
type Pipeline struct {
	reg *hooks.Registry
	cfg *config.Config
}

// New builds a pipeline with a fresh registry populated by the modules the
// configuration enables.
func New(cfg *config.Config) (*Pipeline, error) {
	reg := hooks.NewRegistry()
	if err := modules.Load(cfg, reg); err != nil {
		return nil, err
	}
	return NewWithRegistry(cfg, reg), nil
}

// NewWithRegistry builds a pipeline around an already-populated registry.
func NewWithRegistry(cfg *config.Config, reg *hooks.Registry) *Pipeline {
	return &Pipeline{reg: reg, cfg: cfg}
}

// Registry exposes the pipeline's hook registry, for CLI integration.
func (p *Pipeline) Registry() *hooks.Registry {
	return p.reg
}

// Resolve takes a raw identifier and returns the normalized record. The
// stages, in order: identifier preprocessing, classification, resolution
// through the resolver chain, pre-normalization hooks, field
// normalization, and post-normalization enrichment hooks.
func (p *Pipeline) Resolve(ctx context.Context, raw string) (bibtex.Record, error) {
	id := identify.Preprocess(raw)

	kind, ok := p.reg.IdentifyKind(id)
	if !ok {
		return nil, &UnrecognizedIdentifierError{Identifier: id}
	}

	rec, err := p.reg.ResolveRecord(ctx, kind, id)
	if err != nil {
		return nil, &ResolutionError{Identifier: id, Kind: kind, Err: err}
	}

	rec, err = p.reg.FoldBefore(ctx, kind, id, rec)
	if err != nil {
		return nil, &ResolutionError{Identifier: id, Kind: kind, Err: err}
	}

	rec = process.Apply(rec, kind, p.cfg)
	rec = p.reg.FoldAfter(ctx, kind, id, rec)
	return rec, nil
}

// ResolveString resolves an identifier and formats the result as a BibTeX
// entry string. Failures of any kind become an indented error message
// instead, so the output is always printable as-is.
func (p *Pipeline) ResolveString(ctx context.Context, raw string) string {
	rec, err := p.Resolve(ctx, raw)
	if err != nil {
		return "\n  There was an error:\n  " + err.Error() + "\n"
	}
	return strings.TrimSpace(bibtex.Format(rec))
}
