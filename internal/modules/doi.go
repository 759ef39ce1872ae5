package modules

import (
	"context"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/crossref"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/spf13/pflag"
)

type doiDescriptor struct{}

func (doiDescriptor) Name() string                { return "doi" }
func (doiDescriptor) AddCLIArgs(fs *pflag.FlagSet) {}

// DOIModule identifies DOIs and resolves them through the Crossref API.
type DOIModule struct {
	cfg    *config.Config
	client *crossref.Client
}

// NewDOIModule creates the DOI module. A nil client gets the default
// Crossref client, in the polite pool when an email is configured.
func NewDOIModule(cfg *config.Config, client *crossref.Client) *DOIModule {
	if client == nil {
		var opts []crossref.ClientOption
		if cfg.OpenAlexEmail != "" {
			opts = append(opts, crossref.WithMailto(cfg.OpenAlexEmail))
		}
		client = crossref.NewClient(opts...)
	}
	return &DOIModule{cfg: cfg, client: client}
}

// RegisterHooks registers the DOI classifier and resolver.
func (m *DOIModule) RegisterHooks(reg *hooks.Registry) error {
	return registerAll(reg,
		registration{hooks.Identify, hooks.IdentifyFunc(m.identify)},
		registration{hooks.Resolve, hooks.ResolveFunc(m.resolve)},
	)
}

func (m *DOIModule) identify(identifier string) string {
	if identify.IsDOI(identifier) {
		return identify.KindDOI
	}
	return ""
}

func (m *DOIModule) resolve(ctx context.Context, kind, identifier string) (bibtex.Record, error) {
	if kind != identify.KindDOI {
		return nil, nil
	}

	entry, err := m.client.FetchBibTeX(ctx, identifier)
	if err != nil {
		return nil, err
	}
	rec, err := bibtex.Parse(entry)
	if err != nil {
		return nil, err
	}

	// Crossref's BibTeX transform carries no abstract; fetch it from the
	// metadata endpoint unless configuration removes it anyway.
	if m.cfg.IncludeAbstract() && !rec.Has("abstract") {
		if abstract, err := m.client.FetchAbstract(ctx, identifier); err == nil && abstract != "" {
			rec["abstract"] = abstract
		}
	}
	return rec, nil
}
