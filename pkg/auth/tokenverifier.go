/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package auth implements bearer-token authorization for the GET routes a
// federation.Engine registers, adapting the federation.AuthorizeFunc
// extension point to a per-endpoint token policy.
package auth

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"regexp"

	"github.com/trustbloc/fedigo/internal/pkg/log"
)

var logger = log.New("auth")

const (
	authHeader  = "Authorization"
	tokenPrefix = "Bearer "
)

// TokenDef declares the bearer tokens required to read from or write to the
// endpoints matching EndpointExpression (a regular expression tested against
// a request's path).
type TokenDef struct {
	EndpointExpression string
	ReadTokens         []string
	WriteTokens        []string
}

// Config is the bearer-token authorization configuration: a set of
// per-endpoint token requirements (TokenDef, matched in order, first match
// wins) plus the tokenID -> token-value map they reference.
type Config struct {
	AuthTokensDef []*TokenDef
	AuthTokens    map[string]string
}

// TokenVerifier authorizes requests against one route (endpoint + method)
// with bearer tokens resolved from a Config.
type TokenVerifier struct {
	endpoint   string
	authTokens []string
}

// NewTokenVerifier resolves the bearer tokens required for endpoint/method
// against cfg and returns a verifier for that single route. Panics on a
// malformed EndpointExpression or a TokenDef referencing an unknown tokenID,
// since both are configuration errors that should fail at startup rather
// than be discovered per-request.
func NewTokenVerifier(cfg Config, endpoint, method string) *TokenVerifier {
	authTokens, err := resolveAuthTokens(endpoint, method, cfg.AuthTokensDef, cfg.AuthTokens)
	if err != nil {
		panic(fmt.Errorf("resolve authorization tokens: %w", err))
	}

	return &TokenVerifier{
		endpoint:   endpoint,
		authTokens: authTokens,
	}
}

// Verify reports whether req carries one of the route's required bearer
// tokens. A route with no configured tokens is open access.
func (v *TokenVerifier) Verify(req *http.Request) bool {
	if len(v.authTokens) == 0 {
		logger.Debugf("[%s] no auth token required", v.endpoint)

		return true
	}

	actHdr := req.Header.Get(authHeader)
	if actHdr == "" {
		logger.Debugf("[%s] bearer token not found in header", v.endpoint)

		return false
	}

	for _, token := range v.authTokens {
		if subtle.ConstantTimeCompare([]byte(actHdr), []byte(tokenPrefix+token)) == 1 {
			return true
		}
	}

	return false
}

// Authorize adapts Verify to federation.AuthorizeFunc's (statusCode, ok)
// contract: a missing or mismatched token short-circuits with 401.
func (v *TokenVerifier) Authorize(req *http.Request) (int, bool) {
	if v.Verify(req) {
		return 0, true
	}

	return http.StatusUnauthorized, false
}

func resolveAuthTokens(endpoint, method string, authTokensDef []*TokenDef,
	authTokenMap map[string]string,
) ([]string, error) {
	var authTokens []string

	for _, def := range authTokensDef {
		ok, err := endpointMatches(endpoint, def.EndpointExpression)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		tokens := def.ReadTokens
		if method == http.MethodPost {
			tokens = def.WriteTokens
		}

		for _, tokenID := range tokens {
			token, ok := authTokenMap[tokenID]
			if !ok {
				return nil, fmt.Errorf("token not found: %s", tokenID)
			}

			authTokens = append(authTokens, token)
		}

		break
	}

	return authTokens, nil
}

func endpointMatches(endpoint, pattern string) (bool, error) {
	ok, err := regexp.MatchString(pattern, endpoint)
	if err != nil {
		return false, fmt.Errorf("match endpoint pattern %s: %w", pattern, err)
	}

	return ok, nil
}
