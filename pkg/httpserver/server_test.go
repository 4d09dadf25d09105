/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpserver_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fedigo/pkg/httpserver"
)

const testAddr = "localhost:18080"

func TestServer_StartStop(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := httpserver.New(testAddr, "", "", handler)

	require.NoError(t, s.Start())
	require.Error(t, s.Start(), "starting an already-started server must fail")

	waitUntilListening(t, testAddr)

	resp, err := http.Get("http://" + testAddr + "/healthcheck")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())

	resp, err = http.Get("http://" + testAddr + "/anything-else")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, s.Stop(ctx))
	require.Error(t, s.Stop(ctx), "stopping an already-stopped server must fail")
}

func waitUntilListening(t *testing.T, addr string) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)

	for time.Now().Before(deadline) {
		conn, err := http.DefaultClient.Get("http://" + addr + "/healthcheck")
		if err == nil {
			require.NoError(t, conn.Body.Close())

			return
		}

		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("server did not start listening on %s in time", addr)
}
