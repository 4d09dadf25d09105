/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fedigo/pkg/config"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "test",
		RunE: func(*cobra.Command, []string) error {
			return nil
		},
	}

	config.AddFlags(cmd)

	return cmd
}

func TestResolve_Defaults(t *testing.T) {
	cmd := newTestCmd()

	t.Setenv(config.EnvHostURL, "localhost:8080")
	t.Setenv(config.EnvBaseURL, "https://example.com")

	params, err := config.Resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", params.HostURL)
	require.Equal(t, "https://example.com", params.BaseURL)
	require.Equal(t, "info", params.LogLevel)
	require.Equal(t, "demo", params.ActorHandle)
	require.False(t, params.AllowLegacySHA1Digest)
	require.Equal(t, 10, params.RetryMaxAttempts)
}

func TestResolve_FlagsOverrideEnv(t *testing.T) {
	cmd := newTestCmd()

	t.Setenv(config.EnvHostURL, "localhost:9090")
	t.Setenv(config.EnvBaseURL, "https://env.example")
	t.Setenv(config.EnvActorHandle, "fromenv")

	cmd.SetArgs([]string{
		"--" + config.FlagHostURL, "localhost:8080",
		"--" + config.FlagBaseURL, "https://flag.example",
		"--" + config.FlagActorHandle, "fromflag",
	})
	require.NoError(t, cmd.Execute())

	params, err := config.Resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, "localhost:8080", params.HostURL)
	require.Equal(t, "https://flag.example", params.BaseURL)
	require.Equal(t, "fromflag", params.ActorHandle)
}

func TestResolve_MissingRequiredReturnsError(t *testing.T) {
	cmd := newTestCmd()

	_, err := config.Resolve(cmd)
	require.Error(t, err)
	require.Contains(t, err.Error(), config.FlagHostURL)
}

func TestResolve_InvalidDurationReturnsError(t *testing.T) {
	cmd := newTestCmd()

	t.Setenv(config.EnvHostURL, "localhost:8080")
	t.Setenv(config.EnvBaseURL, "https://example.com")
	t.Setenv(config.EnvSignatureWindow, "not-a-duration")

	_, err := config.Resolve(cmd)
	require.Error(t, err)
}

func TestResolve_AllowLegacySHA1DigestParsed(t *testing.T) {
	cmd := newTestCmd()

	t.Setenv(config.EnvHostURL, "localhost:8080")
	t.Setenv(config.EnvBaseURL, "https://example.com")
	t.Setenv(config.EnvAllowLegacySHA1Digest, "true")

	params, err := config.Resolve(cmd)
	require.NoError(t, err)
	require.True(t, params.AllowLegacySHA1Digest)
}

func TestResolve_OutboxAdminTokenDefaultsEmpty(t *testing.T) {
	cmd := newTestCmd()

	t.Setenv(config.EnvHostURL, "localhost:8080")
	t.Setenv(config.EnvBaseURL, "https://example.com")

	params, err := config.Resolve(cmd)
	require.NoError(t, err)
	require.Empty(t, params.OutboxAdminToken)
}

func TestResolve_OutboxAdminTokenFromEnv(t *testing.T) {
	cmd := newTestCmd()

	t.Setenv(config.EnvHostURL, "localhost:8080")
	t.Setenv(config.EnvBaseURL, "https://example.com")
	t.Setenv(config.EnvOutboxAdminToken, "s3cr3t")

	params, err := config.Resolve(cmd)
	require.NoError(t, err)
	require.Equal(t, "s3cr3t", params.OutboxAdminToken)
}
