package modules

import (
	"context"

	"github.com/bibkit/doi2bib/internal/arxiv"
	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/spf13/pflag"
)

type arxivDescriptor struct{}

func (arxivDescriptor) Name() string                { return "arxiv" }
func (arxivDescriptor) AddCLIArgs(fs *pflag.FlagSet) {}

// ArxivModule identifies arXiv IDs and resolves them through the
// arxiv2bibtex mirror. When the preprint record carries a DOI and the
// upgrade toggle is on, it re-resolves through the DOI resolver chain to
// prefer the published version's metadata.
type ArxivModule struct {
	cfg    *config.Config
	client *arxiv.Client
}

// NewArxivModule creates the arXiv module. A nil client gets the default.
func NewArxivModule(cfg *config.Config, client *arxiv.Client) *ArxivModule {
	if client == nil {
		client = arxiv.NewClient()
	}
	return &ArxivModule{cfg: cfg, client: client}
}

// RegisterHooks registers the arXiv classifier, resolver, and the
// published-version upgrade hook.
func (m *ArxivModule) RegisterHooks(reg *hooks.Registry) error {
	upgrade := func(ctx context.Context, kind, identifier string, rec bibtex.Record) (bibtex.Record, error) {
		return m.upgradeIfDOI(ctx, reg, kind, identifier, rec)
	}
	return registerAll(reg,
		registration{hooks.Identify, hooks.IdentifyFunc(m.identify)},
		registration{hooks.Resolve, hooks.ResolveFunc(m.resolve)},
		registration{hooks.BeforePostprocess, hooks.TransformFunc(upgrade)},
	)
}

func (m *ArxivModule) identify(identifier string) string {
	if identify.IsArxivID(identifier) {
		return identify.KindArxiv
	}
	return ""
}

func (m *ArxivModule) resolve(ctx context.Context, kind, identifier string) (bibtex.Record, error) {
	if kind != identify.KindArxiv {
		return nil, nil
	}

	entry, err := m.client.FetchBibLaTeX(ctx, identifier)
	if err != nil {
		return nil, err
	}
	rec, err := bibtex.Parse(entry)
	if err != nil {
		return nil, err
	}

	if m.cfg.IncludeAbstract() && !rec.Has("abstract") {
		if abstract, err := m.client.FetchAbstract(ctx, identifier); err == nil && abstract != "" {
			rec["abstract"] = abstract
		}
	}
	return rec, nil
}

// upgradeIfDOI re-resolves an arXiv preprint through its DOI. A single
// optional hop: the upgraded record goes through the normal resolver
// chain for the doi kind, keeping the arXiv eprint reference. Failures
// keep the preprint record.
func (m *ArxivModule) upgradeIfDOI(ctx context.Context, reg *hooks.Registry, kind, identifier string, rec bibtex.Record) (bibtex.Record, error) {
	if !m.cfg.UpdateArxivIfDOI || kind != identify.KindArxiv || !rec.Has("doi") {
		return rec, nil
	}

	upgraded, err := reg.ResolveRecord(ctx, identify.KindDOI, rec["doi"])
	if err != nil {
		return rec, nil
	}

	upgraded["eprint"] = identifier
	upgraded["archiveprefix"] = "arXiv"
	return upgraded, nil
}
