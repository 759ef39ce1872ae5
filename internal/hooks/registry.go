// Package hooks implements the extension-point registry that modules
// populate with callbacks. A Registry is constructed explicitly and passed
// into the pipeline and into each module; there is no process-global state.
package hooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/bibkit/doi2bib/internal/bibtex"
	"github.com/spf13/pflag"
)

// Hook names the fixed set of extension points.
type Hook string

const (
	// Identify callbacks classify a preprocessed identifier. First
	// non-empty kind wins.
	Identify Hook = "identify"

	// Resolve callbacks fetch a record for a classified identifier. First
	// non-nil record wins.
	Resolve Hook = "resolve"

	// BeforePostprocess callbacks run before field normalization. All run,
	// in registration order, each seeing the previous one's output.
	BeforePostprocess Hook = "before_postprocess"

	// AfterPostprocess callbacks run after field normalization. All run;
	// a callback's failure is swallowed and the previous record kept.
	AfterPostprocess Hook = "after_postprocess"

	// CLIExec callbacks may claim a CLI invocation before the default
	// resolution path runs.
	CLIExec Hook = "cli_exec"

	// CLIArgParse callbacks add flags to the CLI surface. They belong to
	// module descriptors and run before configuration is loaded.
	CLIArgParse Hook = "cli_arg_parse"
)

// Callback signatures per hook.
type (
	// IdentifyFunc returns the identifier kind, or "" if the identifier is
	// not of this module's kind.
	IdentifyFunc func(identifier string) string

	// ResolveFunc returns the resolved record, or (nil, nil) to signal
	// "not mine" so the next resolver is tried.
	ResolveFunc func(ctx context.Context, kind, identifier string) (bibtex.Record, error)

	// TransformFunc receives the current record and returns its
	// (possibly mutated) successor.
	TransformFunc func(ctx context.Context, kind, identifier string, rec bibtex.Record) (bibtex.Record, error)

	// CLIExecFunc returns true if it handled the invocation.
	CLIExecFunc func(args []string) (bool, error)

	// CLIArgParseFunc adds flags to the given flag set.
	CLIArgParseFunc func(fs *pflag.FlagSet)
)

// Registration errors.
var (
	ErrUnknownHook     = errors.New("unknown hook")
	ErrInvalidCallback = errors.New("callback has wrong type for hook")

	// ErrNoResolver is returned when every resolver declined an identifier.
	ErrNoResolver = errors.New("no resolver accepted the identifier")
)

// Registry holds the ordered callback lists for each hook. Populate it
// during module registration; it must not be mutated once resolutions
// start, after which concurrent read access is safe.
type Registry struct {
	identify    []IdentifyFunc
	resolve     []ResolveFunc
	before      []TransformFunc
	after       []TransformFunc
	cliExec     []CLIExecFunc
	cliArgParse []CLIArgParseFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a callback to the named hook's list. It fails with
// ErrUnknownHook for a name outside the fixed set and ErrInvalidCallback
// if the callback does not match the hook's signature.
func (r *Registry) Register(hook Hook, callback any) error {
	switch hook {
	case Identify:
		fn, ok := callback.(IdentifyFunc)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidCallback, hook)
		}
		r.identify = append(r.identify, fn)
	case Resolve:
		fn, ok := callback.(ResolveFunc)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidCallback, hook)
		}
		r.resolve = append(r.resolve, fn)
	case BeforePostprocess:
		fn, ok := callback.(TransformFunc)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidCallback, hook)
		}
		r.before = append(r.before, fn)
	case AfterPostprocess:
		fn, ok := callback.(TransformFunc)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidCallback, hook)
		}
		r.after = append(r.after, fn)
	case CLIExec:
		fn, ok := callback.(CLIExecFunc)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidCallback, hook)
		}
		r.cliExec = append(r.cliExec, fn)
	case CLIArgParse:
		fn, ok := callback.(CLIArgParseFunc)
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidCallback, hook)
		}
		r.cliArgParse = append(r.cliArgParse, fn)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownHook, hook)
	}
	return nil
}

// IdentifyKind runs the identify callbacks in registration order and
// returns the first non-empty kind. ok is false if no classifier matched.
func (r *Registry) IdentifyKind(identifier string) (kind string, ok bool) {
	for _, fn := range r.identify {
		if kind := fn(identifier); kind != "" {
			return kind, true
		}
	}
	return "", false
}

// ResolveRecord runs the resolve callbacks in registration order. The
// first callback returning a record wins and the rest are never invoked.
// A callback's error aborts the chain. ErrNoResolver is returned if every
// callback declined.
func (r *Registry) ResolveRecord(ctx context.Context, kind, identifier string) (bibtex.Record, error) {
	for _, fn := range r.resolve {
		rec, err := fn(ctx, kind, identifier)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	return nil, ErrNoResolver
}

// FoldBefore applies every before_postprocess callback in order, each
// seeing the previous one's output. Any callback error aborts the fold.
func (r *Registry) FoldBefore(ctx context.Context, kind, identifier string, rec bibtex.Record) (bibtex.Record, error) {
	for _, fn := range r.before {
		next, err := fn(ctx, kind, identifier, rec)
		if err != nil {
			return nil, err
		}
		rec = next
	}
	return rec, nil
}

// FoldAfter applies every after_postprocess callback in order. These are
// best-effort enrichments: a failing callback is skipped and the record
// from before it is kept.
func (r *Registry) FoldAfter(ctx context.Context, kind, identifier string, rec bibtex.Record) bibtex.Record {
	for _, fn := range r.after {
		next, err := fn(ctx, kind, identifier, rec)
		if err != nil || next == nil {
			continue
		}
		rec = next
	}
	return rec
}

// RunCLIExec offers the invocation to each cli_exec callback until one
// claims it.
func (r *Registry) RunCLIExec(args []string) (handled bool, err error) {
	for _, fn := range r.cliExec {
		handled, err := fn(args)
		if err != nil {
			return true, err
		}
		if handled {
			return true, nil
		}
	}
	return false, nil
}

// AddCLIArgs lets every cli_arg_parse callback add its flags.
func (r *Registry) AddCLIArgs(fs *pflag.FlagSet) {
	for _, fn := range r.cliArgParse {
		fn(fs)
	}
}

// Reset clears all registered callbacks. Test use only.
func (r *Registry) Reset() {
	*r = Registry{}
}
