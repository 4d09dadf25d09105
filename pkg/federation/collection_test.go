/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package federation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/fedigo/pkg/collection"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

func TestRegisterFollowers_UnpagedDispatch(t *testing.T) {
	e := newTestEngine(t)

	var gotCursor string

	require.NoError(t, e.RegisterFollowers("/actors/{identifier}/followers",
		func(_ context.Context, identifier, cursor string) (*collection.Page, error) {
			require.Equal(t, "alice", identifier)

			gotCursor = cursor

			return &collection.Page{}, nil
		}))

	rec := httptest.NewRecorder()
	req := mustGetRequest(t, "https://example.com/actors/alice/followers")

	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, gotCursor)
	require.Equal(t, activityContentType, rec.Header().Get("Content-Type"))
}

func TestRegisterOutbox_FirstCursorDefaultedWhenPaged(t *testing.T) {
	e := newTestEngine(t)

	var gotCursor string

	require.NoError(t, e.RegisterOutbox("/actors/{identifier}/outbox",
		func(_ context.Context, _, cursor string) (*collection.Page, error) {
			gotCursor = cursor

			return &collection.Page{}, nil
		}, WithFirstCursor("0"), WithLastCursor("9")))

	rec := httptest.NewRecorder()
	req := mustGetRequest(t, "https://example.com/actors/alice/outbox")

	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "0", gotCursor, "no cursor query param: dispatcher called with the registered first cursor")
}

func TestRegisterOutbox_ExplicitCursorOverridesFirstCursor(t *testing.T) {
	e := newTestEngine(t)

	var gotCursor string

	require.NoError(t, e.RegisterOutbox("/actors/{identifier}/outbox",
		func(_ context.Context, _, cursor string) (*collection.Page, error) {
			gotCursor = cursor

			return &collection.Page{}, nil
		}, WithFirstCursor("0")))

	rec := httptest.NewRecorder()
	req := mustGetRequest(t, "https://example.com/actors/alice/outbox?cursor=5")

	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "5", gotCursor)
}

func TestRegisterFollowers_DispatchErrorMapsToStatus(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.RegisterFollowers("/actors/{identifier}/followers",
		func(context.Context, string, string) (*collection.Page, error) {
			return nil, orberrors.ErrContentNotFound
		}))

	rec := httptest.NewRecorder()
	req := mustGetRequest(t, "https://example.com/actors/alice/followers")

	e.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerForCollection_AuthorizeRejects(t *testing.T) {
	base := newTestEngine(t)

	denied := New(base.ctx, base.listeners, WithAuthorize(func(*http.Request) (int, bool) {
		return http.StatusForbidden, false
	}))

	require.NoError(t, denied.RegisterFollowers("/actors/{identifier}/followers",
		func(context.Context, string, string) (*collection.Page, error) {
			t.Fatal("dispatcher must not run when authorization rejects the request")

			return nil, nil
		}))

	rec := httptest.NewRecorder()
	req := mustGetRequest(t, "https://example.com/actors/alice/followers")

	denied.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}
