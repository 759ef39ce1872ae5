package modules

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bibkit/doi2bib/internal/ads"
	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/bibkit/doi2bib/internal/identify"
	"github.com/spf13/pflag"
)

type adsDescriptor struct{}

func (adsDescriptor) Name() string                { return "ads" }
func (adsDescriptor) AddCLIArgs(fs *pflag.FlagSet) {}

// ADSModule identifies ADS bibcodes and resolves them through the NASA/ADS
// export API. It also contributes the adsurl enrichment hook that looks up
// the ADS landing page for records resolved by other modules.
type ADSModule struct {
	cfg    *config.Config
	client *ads.Client
}

// NewADSModule creates the ADS module. A nil client gets the default,
// with the token taken from the configuration, the token file, or the
// ADS_TOKEN environment variable, in that order of increasing precedence.
func NewADSModule(cfg *config.Config, client *ads.Client) *ADSModule {
	if client == nil {
		var opts []ads.ClientOption
		if token := adsToken(cfg); token != "" {
			opts = append(opts, ads.WithToken(token))
		}
		client = ads.NewClient(opts...)
	}
	return &ADSModule{cfg: cfg, client: client}
}

// adsToken returns the configured token, falling back to the token file.
// The environment variable is handled by the client itself.
func adsToken(cfg *config.Config) string {
	if token := os.Getenv("ADS_TOKEN"); token != "" {
		return token
	}
	if home, err := os.UserHomeDir(); err == nil {
		if token := ads.TokenFromFile(filepath.Join(home, config.ConfigDir, config.ADSTokenFile)); token != "" {
			return token
		}
	}
	return cfg.ADSToken
}

// RegisterHooks registers the bibcode classifier and resolver, plus the
// adsurl enrichment hook.
func (m *ADSModule) RegisterHooks(reg *hooks.Registry) error {
	return registerAll(reg,
		registration{hooks.Identify, hooks.IdentifyFunc(m.identify)},
		registration{hooks.Resolve, hooks.ResolveFunc(m.resolve)},
		registration{hooks.AfterPostprocess, hooks.TransformFunc(m.addADSURL)},
	)
}

func (m *ADSModule) identify(identifier string) string {
	if identify.IsADSBibcode(identifier) {
		return identify.KindADS
	}
	return ""
}

func (m *ADSModule) resolve(ctx context.Context, kind, identifier string) (bibtex.Record, error) {
	if kind != identify.KindADS {
		return nil, nil
	}

	entry, err := m.client.ExportBibTeX(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return bibtex.Parse(entry)
}

// addADSURL looks up the ADS bibcode for the resolved identifier and, when
// found, records the abstract page URL. Best effort: lookup failures keep
// the record unchanged.
func (m *ADSModule) addADSURL(ctx context.Context, kind, identifier string, rec bibtex.Record) (bibtex.Record, error) {
	if !m.cfg.ResolveADSURL || rec.Has("adsurl") {
		return rec, nil
	}

	// ADS indexes DOIs and arXiv IDs. Bibcodes already resolved through
	// ADS carry adsurl, and ISBNs are not indexed.
	if kind != identify.KindDOI && kind != identify.KindArxiv {
		return rec, nil
	}

	bibcode, err := m.client.BibcodeFor(ctx, identifier)
	if err != nil || bibcode == "" {
		return rec, nil
	}
	rec["adsurl"] = "https://adsabs.harvard.edu/abs/" + bibcode
	return rec, nil
}
