/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package docloader provides the default, caching, and authenticated
// implementations of the JSON-LD document loader used to resolve remote
// actors, objects, and contexts.
package docloader

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

var logger = log.New("docloader")

const acceptHeader = `application/ld+json, application/activity+json, application/json;q=0.9`

// httpClient is the subset of *http.Client that HTTPLoader needs, so tests
// can substitute a round tripper without standing up a listener.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPLoader is the default ld.DocumentLoader: it issues a GET with an
// Activity-Streams-friendly Accept header, follows redirects (delegated to
// the underlying *http.Client's CheckRedirect), and refuses to dereference
// private, loopback, or link-local addresses unless explicitly allowed —
// grounded on a plain HTTP transport, generalized from
// "always signed, single destination" to "plain GET, any destination" since
// this loader backs generic remote-document fetches rather than only
// inbox delivery.
type HTTPLoader struct {
	client              httpClient
	allowPrivateNetwork bool
}

// Option configures an HTTPLoader.
type Option func(*HTTPLoader)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(c httpClient) Option {
	return func(l *HTTPLoader) {
		l.client = c
	}
}

// WithPrivateNetworkAllowed disables the private-address check, for local
// development and tests against a docker-composed federation.
func WithPrivateNetworkAllowed() Option {
	return func(l *HTTPLoader) {
		l.allowPrivateNetwork = true
	}
}

// New returns a new HTTPLoader.
func New(opts ...Option) *HTTPLoader {
	l := &HTTPLoader{client: http.DefaultClient}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadDocument implements ld.DocumentLoader.
func (l *HTTPLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, orberrors.NewFetchError(u, fmt.Errorf("parse URL: %w", err))
	}

	if !l.allowPrivateNetwork {
		if err := rejectPrivateAddress(parsed); err != nil {
			return nil, orberrors.NewFetchError(u, err)
		}
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, orberrors.NewFetchError(u, fmt.Errorf("new request: %w", err))
	}

	req.Header.Set("Accept", acceptHeader)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, orberrors.NewFetchError(u, orberrors.NewTransientf("do request: %w", err))
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("Error closing response body", log.WithURL(u), log.WithError(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code %d", resp.StatusCode)

		if resp.StatusCode >= http.StatusInternalServerError {
			err = orberrors.NewTransient(err)
		}

		return nil, orberrors.NewFetchError(u, err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, orberrors.NewFetchError(u, fmt.Errorf("read response body: %w", err))
	}

	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, orberrors.NewFetchError(u, fmt.Errorf("unmarshal document: %w", err))
	}

	finalURL := u
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &ld.RemoteDocument{
		DocumentURL: finalURL,
		Document:    doc,
		ContextURL:  "",
	}, nil
}

func rejectPrivateAddress(u *url.URL) error {
	host := u.Hostname()

	ips, err := net.LookupIP(host)
	if err != nil {
		// A resolver failure isn't a policy violation; let the subsequent
		// request fail (and surface) on its own.
		return nil //nolint:nilerr
	}

	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("refusing to dereference %s: resolves to a private address (%s)", u, ip)
		}
	}

	return nil
}
