package ai

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// newHTTPClient returns the client handed to the provider SDKs. Each request
// becomes an HTTP client span under the active generate span.
func newHTTPClient(opts ...otelhttp.Option) *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
	}
}
