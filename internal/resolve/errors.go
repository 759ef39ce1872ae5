package resolve

import "fmt"

// UnrecognizedIdentifierError is returned when no classifier recognizes a
// preprocessed identifier.
type UnrecognizedIdentifierError struct {
	Identifier string
}

func (e *UnrecognizedIdentifierError) Error() string {
	return fmt.Sprintf("Unrecognized identifier: %s", e.Identifier)
}

// ResolutionError wraps a failure from the resolver or transform chain,
// keeping the identifier and its kind for context.
type ResolutionError struct {
	Identifier string
	Kind       string
	Err        error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s %q: %v", e.Kind, e.Identifier, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
