// Package panorama exposes client builders for the City of Amsterdam
// panorama API.
package panorama

import (
	"github.com/streetlevel/panorama/client"
)

// NewClient instantiates a blocking *client.Client with the provided
// options. If not specified, the default http.Client and
// http.Transport are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewAsyncClient instantiates the non-blocking client variant with the
// provided options.
func NewAsyncClient(opts ...client.Option) (*client.AsyncClient, error) {
	return client.BuildAsync(opts...)
}
