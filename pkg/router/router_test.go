/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouter_AddAndMatch(t *testing.T) {
	r := New()

	var gotVars map[string]string

	err := r.Add("actor-inbox", "/actors/{id}/inbox", func(w http.ResponseWriter, req *http.Request) {
		m, ok := r.Match(req)
		require.True(t, ok)
		gotVars = m.Vars
		w.WriteHeader(http.StatusOK)
	}, http.MethodPost)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/actors/alice/inbox", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, map[string]string{"id": "alice"}, gotVars)
}

func TestRouter_DuplicateNameRejected(t *testing.T) {
	r := New()

	require.NoError(t, r.Add("actor", "/actors/{id}", nopHandler))
	err := r.Add("actor", "/other/{id}", nopHandler)
	require.Error(t, err)
}

func TestRouter_TemplateMustStartWithSlash(t *testing.T) {
	r := New()

	err := r.Add("actor", "actors/{id}", nopHandler)
	require.Error(t, err)
}

func TestRouter_BuildRoundTrip(t *testing.T) {
	r := New()
	require.NoError(t, r.Add("actor-outbox", "/actors/{id}/outbox", nopHandler))

	uri, err := r.Build("actor-outbox", "id", "bob")
	require.NoError(t, err)
	require.Equal(t, "/actors/bob/outbox", uri)

	req := httptest.NewRequest(http.MethodGet, uri, nil)
	m, ok := r.Match(req)
	require.True(t, ok)
	require.Equal(t, "actor-outbox", m.Name)
	require.Equal(t, "bob", m.Vars["id"])
}

func TestRouter_BuildUnknownRoute(t *testing.T) {
	r := New()

	_, err := r.Build("missing")
	require.Error(t, err)
}

func nopHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
