package crossref

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a non-success response from the Crossref API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Crossref API error (status %d): no BibTeX entry found", e.StatusCode)
}

// IsNotFound returns true if the error indicates an unknown DOI.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
