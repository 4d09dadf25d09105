/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config binds cmd/fedigo-demo's flags and FEDIGO_* environment
// variables into a Params struct. The federation engine itself never reads
// the environment: it is configured entirely through fedcontext.Config, a
// plain struct the caller builds from whatever Params resolves to.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/trustbloc/fedigo/internal/pkg/cmdutil"
)

// Flag and environment variable names for cmd/fedigo-demo.
const (
	FlagHostURL  = "host-url"
	EnvHostURL   = "FEDIGO_HOST_URL"
	FlagBaseURL  = "base-url"
	EnvBaseURL   = "FEDIGO_BASE_URL"
	FlagLogLevel = "log-level"
	EnvLogLevel  = "FEDIGO_LOG_LEVEL"

	FlagSignatureWindow = "signature-window"
	EnvSignatureWindow  = "FEDIGO_SIGNATURE_WINDOW"

	FlagRetryInitialDelay = "retry-initial-delay"
	EnvRetryInitialDelay  = "FEDIGO_RETRY_INITIAL_DELAY"
	FlagRetryMaxAttempts  = "retry-max-attempts"
	EnvRetryMaxAttempts   = "FEDIGO_RETRY_MAX_ATTEMPTS"

	FlagAllowLegacySHA1Digest = "allow-legacy-sha1-digest"
	EnvAllowLegacySHA1Digest  = "FEDIGO_ALLOW_LEGACY_SHA1_DIGEST"

	FlagActorHandle = "actor-handle"
	EnvActorHandle  = "FEDIGO_ACTOR_HANDLE"

	FlagOutboxAdminToken = "outbox-admin-token"
	EnvOutboxAdminToken  = "FEDIGO_OUTBOX_ADMIN_TOKEN"
)

const (
	defaultLogLevel            = "info"
	defaultSignatureWindow     = time.Hour
	defaultRetryInitialDelay   = time.Second
	defaultRetryMaxAttempts    = 10
	defaultActorHandle         = "demo"
	defaultAllowLegacySHA1Dgst = false
)

// Params holds the resolved configuration for cmd/fedigo-demo, gathered
// from whichever of a CLI flag or a FEDIGO_* environment variable was set.
type Params struct {
	HostURL  string
	BaseURL  string
	LogLevel string

	SignatureWindow time.Duration

	RetryInitialDelay time.Duration
	RetryMaxAttempts  int

	AllowLegacySHA1Digest bool

	ActorHandle string

	// OutboxAdminToken, if set, gates the demo actor's outbox GET route
	// behind a "Bearer <token>" Authorization header. Empty leaves the
	// route open, as every other registered GET route is.
	OutboxAdminToken string
}

// AddFlags registers cmd/fedigo-demo's flags on cmd, mirroring the
// cmdutil.GetUserSet*/env-fallback convention: every flag has a matching
// FEDIGO_* environment variable, used when the flag is left unset.
func AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(FlagHostURL, "", "", "Host and port the demo server listens on. Alternatively, "+EnvHostURL+".")
	cmd.Flags().StringP(FlagBaseURL, "", "", "Public base URL activities and actor IRIs are built from. Alternatively, "+EnvBaseURL+".")
	cmd.Flags().StringP(FlagLogLevel, "", "", "Logging level (debug, info, warning, error, critical). Alternatively, "+EnvLogLevel+".")
	cmd.Flags().StringP(FlagSignatureWindow, "", "", "Maximum age of an inbound HTTP Signature's Date header. Alternatively, "+EnvSignatureWindow+".")
	cmd.Flags().StringP(FlagRetryInitialDelay, "", "", "Initial inbox/outbox retry delay. Alternatively, "+EnvRetryInitialDelay+".")
	cmd.Flags().StringP(FlagRetryMaxAttempts, "", "", "Number of delivery attempts before giving up. Alternatively, "+EnvRetryMaxAttempts+".")
	cmd.Flags().StringP(FlagAllowLegacySHA1Digest, "", "", "Accept SHA-1 Digest headers on inbound requests. Alternatively, "+EnvAllowLegacySHA1Digest+".")
	cmd.Flags().StringP(FlagActorHandle, "", "", "Handle of the single demo actor registered at startup. Alternatively, "+EnvActorHandle+".")
	cmd.Flags().StringP(FlagOutboxAdminToken, "", "", "Bearer token required to read the demo actor's outbox. Unset leaves it open. Alternatively, "+EnvOutboxAdminToken+".")
}

// Resolve reads cmd's flags, falling back to FEDIGO_* environment variables
// and then to the defaults above, returning a populated Params.
func Resolve(cmd *cobra.Command) (*Params, error) {
	hostURL, err := cmdutil.GetUserSetVarFromString(cmd, FlagHostURL, EnvHostURL, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FlagHostURL, err)
	}

	baseURL, err := cmdutil.GetUserSetVarFromString(cmd, FlagBaseURL, EnvBaseURL, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", FlagBaseURL, err)
	}

	logLevel := cmdutil.GetUserSetOptionalVarFromString(cmd, FlagLogLevel, EnvLogLevel)
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	signatureWindow, err := cmdutil.GetDuration(cmd, FlagSignatureWindow, EnvSignatureWindow, defaultSignatureWindow)
	if err != nil {
		return nil, err
	}

	retryInitialDelay, err := cmdutil.GetDuration(cmd, FlagRetryInitialDelay, EnvRetryInitialDelay, defaultRetryInitialDelay)
	if err != nil {
		return nil, err
	}

	retryMaxAttempts, err := cmdutil.GetInt(cmd, FlagRetryMaxAttempts, EnvRetryMaxAttempts, defaultRetryMaxAttempts)
	if err != nil {
		return nil, err
	}

	allowLegacySHA1Digest, err := cmdutil.GetBool(cmd, FlagAllowLegacySHA1Digest, EnvAllowLegacySHA1Digest, defaultAllowLegacySHA1Dgst)
	if err != nil {
		return nil, err
	}

	actorHandle := cmdutil.GetUserSetOptionalVarFromString(cmd, FlagActorHandle, EnvActorHandle)
	if actorHandle == "" {
		actorHandle = defaultActorHandle
	}

	outboxAdminToken := cmdutil.GetUserSetOptionalVarFromString(cmd, FlagOutboxAdminToken, EnvOutboxAdminToken)

	return &Params{
		HostURL:               hostURL,
		BaseURL:               baseURL,
		LogLevel:              logLevel,
		SignatureWindow:       signatureWindow,
		RetryInitialDelay:     retryInitialDelay,
		RetryMaxAttempts:      retryMaxAttempts,
		AllowLegacySHA1Digest: allowLegacySHA1Digest,
		ActorHandle:           actorHandle,
		OutboxAdminToken:      outboxAdminToken,
	}, nil
}
