package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/streetlevel/panorama/client/download"
	"github.com/streetlevel/panorama/client/query"
	"github.com/streetlevel/panorama/client/throttle"
)

// Client is the blocking panorama API client. It wraps the std-lib
// *http.Client, holding only read-only configuration after [Build],
// so a single instance is safe for concurrent use.
type Client struct {
	c      *http.Client
	base   *url.URL
	logger *slog.Logger
}

// Build assembles a [Client] from functional options. With no options
// it talks to [DefaultBaseURL] through a default transport.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.baseURL != nil {
		client.base = opts.baseURL
	} else {
		base, err := url.Parse(DefaultBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing default base url: %w", err)
		}
		client.base = base
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = headerSetter{key: "User-Agent", value: opts.userAgent, base: transport}
	}
	if opts.apiKey != "" {
		transport = headerSetter{key: "X-Api-Key", value: opts.apiKey, base: transport}
	}
	transport = requestID{base: transport}
	if opts.tracerProvider != nil {
		transport = newTracing(opts.tracerProvider, transport)
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(*opts.throttle, client.logger, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// BaseURL returns the endpoint this client talks to.
func (c *Client) BaseURL() *url.URL {
	cpy := *c.base
	return &cpy
}

// ListPanoramas fetches the first page of panoramas matching the given
// filters. Invalid filters fail with query.ErrInvalidQuery before any
// request is issued.
func (c *Client) ListPanoramas(ctx context.Context, filters ...query.Option) (*PagedPanoramasResponse, error) {
	params, err := query.Build(filters...)
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	u := *c.base
	u.RawQuery = params.Encode()

	return c.getPage(ctx, u.String())
}

// NextPage fetches the page after the given one by following its next
// link. The link is an opaque cursor encoding the full query state
// server-side; it is passed through unmodified. Fails with
// [ErrNoMorePages], before any request, when the page has no next link.
func (c *Client) NextPage(ctx context.Context, page *PagedPanoramasResponse) (*PagedPanoramasResponse, error) {
	if !page.HasNextPage() {
		return nil, ErrNoMorePages
	}

	return c.getPage(ctx, page.Links.Next.Href)
}

// PreviousPage fetches the page before the given one. Fails with
// [ErrNoPreviousPage], before any request, when the page has no
// previous link.
func (c *Client) PreviousPage(ctx context.Context, page *PagedPanoramasResponse) (*PagedPanoramasResponse, error) {
	if !page.HasPreviousPage() {
		return nil, ErrNoPreviousPage
	}

	return c.getPage(ctx, page.Links.Previous.Href)
}

// GetPanorama fetches an individual panorama record by its remote id.
func (c *Client) GetPanorama(ctx context.Context, id string) (*Panorama, error) {
	var pano Panorama
	if err := c.getJSON(ctx, c.base.JoinPath(id).String(), &pano); err != nil {
		return nil, err
	}

	return &pano, nil
}

// DownloadImage fetches the image bytes for the requested size variant.
// Fails with [ErrMissingVariant], before any request, when the panorama
// carries no link for that size.
func (c *Client) DownloadImage(ctx context.Context, pano *Panorama, size ImageSize) ([]byte, error) {
	href, err := pano.ImageURL(size)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, href)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = c.exec(req, func(resp *http.Response) error {
		if _, err := io.Copy(&buf, resp.Body); err != nil {
			return fmt.Errorf("reading image body: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// SaveImage streams the image for the requested size variant to
// destDir, named after the panorama's filename. Data lands in a temp
// file first and is renamed into place on success.
func (c *Client) SaveImage(ctx context.Context, pano *Panorama, size ImageSize, destDir string, opts ...download.Option) error {
	if destDir == "" {
		return errors.New("destDir must not be empty")
	}

	href, err := pano.ImageURL(size)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, href)
	if err != nil {
		return err
	}

	dest := destPath(destDir, pano)

	return c.exec(req, func(resp *http.Response) error {
		if err := download.Handle(req.Context(), resp.Body, resp.ContentLength, dest, c.logger, opts...); err != nil {
			return fmt.Errorf("download: %w", err)
		}
		return nil
	})
}

// destPath is where SaveImage writes a panorama's image.
func destPath(destDir string, pano *Panorama) string {
	return filepath.Join(destDir, pano.Filename)
}

func (c *Client) getPage(ctx context.Context, rawURL string) (*PagedPanoramasResponse, error) {
	var page PagedPanoramasResponse
	if err := c.getJSON(ctx, rawURL, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dest any) error {
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return err
	}

	return c.exec(req, func(resp *http.Response) error {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return &DecodeError{Detail: err.Error(), Err: ErrDecode}
		}
		return nil
	})
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// exec runs the request and injected function on success after validating
// the response is in the 2xx class.
func (c *Client) exec(req *http.Request, fn execFn) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	discardBody := true
	defer func() {
		if discardBody {
			if _, err = io.Copy(io.Discard, resp.Body); err != nil {
				c.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode/100 != 2 {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := ErrUnexpectedStatusCode
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			statusErr = errors.Join(ErrUnexpectedStatusCode, ErrAuthFailure)
		}

		return &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        statusErr,
		}
	}

	if err := fn(resp); err != nil {
		discardBody = false
		return err
	}

	return nil
}
