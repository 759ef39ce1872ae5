package ads

import (
	"errors"
	"fmt"
)

// ErrNoToken indicates no ADS API token was configured. Set the ADS_TOKEN
// environment variable or create ~/.doi2bib/ads_token.
var ErrNoToken = errors.New("no ADS token found (set ADS_TOKEN or create ~/.doi2bib/ads_token)")

// APIError represents a non-success response from the ADS API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ADS API error (status %d)", e.StatusCode)
}

// IsAuthError returns true if the error indicates a missing or rejected
// token.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrNoToken) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == 401 || apiErr.StatusCode == 403)
}
