/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package nodeinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		SoftwareName:    "fedigo-demo",
		SoftwareVersion: "0.1.0",
		Repository:      "https://github.com/trustbloc/fedigo",
		UsageFunc: func() UsageCounts {
			return UsageCounts{Users: 1, LocalPosts: 3, LocalComments: 2}
		},
	}
}

func TestBuild(t *testing.T) {
	ni := Build(V2_1, testConfig())

	require.Equal(t, V2_1, ni.Version)
	require.Equal(t, []string{activityPubProtocol}, ni.Protocols)
	require.Equal(t, "fedigo-demo", ni.Software.Name)
	require.Equal(t, 1, ni.Usage.Users.Total)
	require.Equal(t, 3, ni.Usage.LocalPosts)
}

func TestHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nodeinfo/2.1", nil)
	rec := httptest.NewRecorder()

	Handler(V2_1, testConfig())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "nodeinfo.diaspora.software/ns/schema/2.1")

	var ni NodeInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ni))
	require.Equal(t, "fedigo-demo", ni.Software.Name)
}

func TestDiscoveryHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/.well-known/nodeinfo", nil)
	rec := httptest.NewRecorder()

	DiscoveryHandler(V2_1, "https://example.com/nodeinfo/2.1")(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc discoveryDoc
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Links, 1)
	require.Equal(t, "https://example.com/nodeinfo/2.1", doc.Links[0].Href)
}
