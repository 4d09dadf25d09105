/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package collection

import (
	"net/url"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
)

var logger = log.New("collection")

const cursorParam = "cursor"

// Page is one page of items a registered collection dispatcher returns for a
// given cursor (empty cursor means the collection's default/unpaged
// dispatch). TotalItems is optional: nil omits "totalItems" from the
// response.
type Page struct {
	Items      []*vocab.ObjectProperty
	TotalItems *int
	PrevCursor string
	NextCursor string
}

// Filter decides whether item belongs in a collection response, given the
// request URL's query parameters (e.g. a followers endpoint's "base-url"
// filter). A nil Filter admits every item.
type Filter func(item *vocab.ObjectProperty, query url.Values) bool

// BuildResponse builds the OrderedCollection/OrderedCollectionPage wire
// response for one dispatch of a registered collection endpoint, following
// the collection handler's cursor rules:
//
//   - No "cursor" query parameter: if firstCursor is empty the collection is
//     never paged, so the response is an unpaged OrderedCollection carrying
//     page's items directly. If firstCursor is set, the response is a paged
//     head carrying only totalItems/first/last — no items — and the caller
//     dispatches again, with a cursor, to get any items.
//   - "cursor" query parameter present: the response is an
//     OrderedCollectionPage carrying page's items, with partOf set to
//     requestURL with the cursor removed and prev/next set from page's
//     cursors.
//
// filter, if non-nil, is applied to every item in page.Items (plain IRIs and
// inline Object/Link references alike — vocab.ObjectProperty already
// represents either form) before it's attached to the response.
func BuildResponse(requestURL *url.URL, page *Page, firstCursor, lastCursor string, filter Filter) (interface{}, error) {
	query := requestURL.Query()

	if filter == nil && hasFilterHint(query) {
		logger.Warn("Collection has a filter-shaped query parameter but no filter predicate is registered; " +
			"response may be large")
	}

	items := applyFilter(page.Items, query, filter)

	cursor := query.Get(cursorParam)

	if cursor == "" {
		if firstCursor == "" {
			return newOrderedCollection(requestURL, page.TotalItems, items, "", ""), nil
		}

		return newOrderedCollection(requestURL, page.TotalItems, nil, firstCursor, lastCursor), nil
	}

	return newOrderedCollectionPage(requestURL, items, page.PrevCursor, page.NextCursor), nil
}

// hasFilterHint reports whether the request carries a query parameter other
// than "cursor", a loose signal that the caller expected filtering.
func hasFilterHint(query url.Values) bool {
	for k := range query {
		if k != cursorParam {
			return true
		}
	}

	return false
}

func applyFilter(items []*vocab.ObjectProperty, query url.Values, filter Filter) []*vocab.ObjectProperty {
	if filter == nil {
		return items
	}

	out := make([]*vocab.ObjectProperty, 0, len(items))

	for _, item := range items {
		if filter(item, query) {
			out = append(out, item)
		}
	}

	return out
}

func newOrderedCollection(
	requestURL *url.URL, totalItems *int, items []*vocab.ObjectProperty, firstCursor, lastCursor string,
) *vocab.OrderedCollectionType {
	opts := []vocab.Opt{vocab.WithID(withoutCursor(requestURL))}

	if firstCursor != "" {
		opts = append(opts, vocab.WithFirst(withCursor(requestURL, firstCursor)))
	}

	if lastCursor != "" {
		opts = append(opts, vocab.WithLast(withCursor(requestURL, lastCursor)))
	}

	if totalItems != nil {
		opts = append(opts, vocab.WithTotalItems(*totalItems))
	}

	return vocab.NewOrderedCollection(items, opts...)
}

func newOrderedCollectionPage(
	requestURL *url.URL, items []*vocab.ObjectProperty, prevCursor, nextCursor string,
) *vocab.OrderedCollectionPageType {
	opts := []vocab.Opt{
		vocab.WithID(requestURL),
		vocab.WithPartOf(withoutCursor(requestURL)),
	}

	if prevCursor != "" {
		opts = append(opts, vocab.WithPrev(withCursor(requestURL, prevCursor)))
	}

	if nextCursor != "" {
		opts = append(opts, vocab.WithNext(withCursor(requestURL, nextCursor)))
	}

	return vocab.NewOrderedCollectionPage(items, opts...)
}

func withoutCursor(requestURL *url.URL) *url.URL {
	u := *requestURL

	q := u.Query()
	q.Del(cursorParam)
	u.RawQuery = q.Encode()

	return &u
}

func withCursor(requestURL *url.URL, cursor string) *url.URL {
	u := *requestURL

	q := u.Query()
	q.Set(cursorParam, cursor)
	u.RawQuery = q.Encode()

	return &u
}
