package ports

import "net/http"

// HTTPClient abstracts the standard http.Client so gateway adapters can be
// tested with injected doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
