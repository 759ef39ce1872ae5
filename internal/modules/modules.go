// Package modules contains the built-in resolver modules. Each module
// registers classifier, resolver, and transform callbacks into a hook
// registry; the set of active modules and their order comes from the
// configuration.
//
// Discovery is two-phase: Descriptors are stateless and available before
// any configuration is loaded (so modules can extend the CLI surface),
// while Modules are built from the loaded configuration.
package modules

import (
	"fmt"

	"github.com/bibkit/doi2bib/internal/config"
	"github.com/bibkit/doi2bib/internal/hooks"
	"github.com/spf13/pflag"
)

// Descriptor describes a module before configuration exists: its name and
// any flags it contributes to the CLI surface.
type Descriptor interface {
	Name() string
	AddCLIArgs(fs *pflag.FlagSet)
}

// Module is an instantiated unit that registers its callbacks into a hook
// registry. RegisterHooks is called exactly once per instance.
type Module interface {
	RegisterHooks(reg *hooks.Registry) error
}

// Entry pairs a module's descriptor with its constructor.
type Entry struct {
	Descriptor Descriptor
	New        func(cfg *config.Config) Module
}

// Builtin returns the statically compiled module table. The order here is
// the fallback registration order; the configuration's modules list picks
// the active modules and their actual order.
func Builtin() []Entry {
	return []Entry{
		{Descriptor: doiDescriptor{}, New: func(cfg *config.Config) Module { return NewDOIModule(cfg, nil) }},
		{Descriptor: arxivDescriptor{}, New: func(cfg *config.Config) Module { return NewArxivModule(cfg, nil) }},
		{Descriptor: isbnDescriptor{}, New: func(cfg *config.Config) Module { return NewISBNModule(cfg, nil) }},
		{Descriptor: adsDescriptor{}, New: func(cfg *config.Config) Module { return NewADSModule(cfg, nil) }},
		{Descriptor: dblpDescriptor{}, New: func(cfg *config.Config) Module { return NewDBLPModule(cfg, nil) }},
	}
}

// Descriptors returns the descriptors of all built-in modules. Available
// without a configuration.
func Descriptors() []Descriptor {
	entries := Builtin()
	ds := make([]Descriptor, len(entries))
	for i, e := range entries {
		ds[i] = e.Descriptor
	}
	return ds
}

// Load instantiates the modules named in the configuration, in order, and
// registers their hooks into the registry.
func Load(cfg *config.Config, reg *hooks.Registry) error {
	byName := make(map[string]Entry)
	for _, e := range Builtin() {
		byName[e.Descriptor.Name()] = e
	}

	for _, name := range cfg.Modules {
		entry, ok := byName[name]
		if !ok {
			return fmt.Errorf("unknown module %q", name)
		}
		if err := entry.New(cfg).RegisterHooks(reg); err != nil {
			return fmt.Errorf("registering module %q: %w", name, err)
		}
	}
	return nil
}

// registerAll registers each (hook, callback) pair, stopping at the first
// failure.
func registerAll(reg *hooks.Registry, pairs ...registration) error {
	for _, p := range pairs {
		if err := reg.Register(p.hook, p.callback); err != nil {
			return err
		}
	}
	return nil
}

type registration struct {
	hook     hooks.Hook
	callback any
}
