/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/piprate/json-gold/ld"

	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
	orberrors "github.com/trustbloc/fedigo/pkg/ferrors"
)

// VocabActor adapts *vocab.ActorType to the Actor interface.
type VocabActor struct {
	*vocab.ActorType
}

// ID implements Actor.
func (a VocabActor) ID() *url.URL {
	return a.ActorType.ID().URL()
}

// HTTPActorFetcher resolves remote actors and recipient collections over
// HTTP: a plain GET with
// an Activity-Streams Accept header, unmarshalled into the vocabulary types,
// paginating through "first"/"next" up to a caller-supplied cap.
type HTTPActorFetcher struct {
	loader ld.DocumentLoader
}

// NewHTTPActorFetcher returns a new HTTPActorFetcher using loader to
// dereference actor and collection IRIs.
func NewHTTPActorFetcher(loader ld.DocumentLoader) *HTTPActorFetcher {
	return &HTTPActorFetcher{loader: loader}
}

// GetActor implements ActorFetcher.
func (f *HTTPActorFetcher) GetActor(_ context.Context, iri *url.URL) (Actor, error) {
	doc, err := f.loader.LoadDocument(iri.String())
	if err != nil {
		return nil, fmt.Errorf("load actor document: %w", err)
	}

	bytes, err := json.Marshal(doc.Document)
	if err != nil {
		return nil, fmt.Errorf("marshal actor document: %w", err)
	}

	actor := &vocab.ActorType{}
	if err := json.Unmarshal(bytes, actor); err != nil {
		return nil, fmt.Errorf("unmarshal actor: %w", err)
	}

	return VocabActor{ActorType: actor}, nil
}

// GetReferences implements ActorFetcher. iri may itself be a single actor (in
// which case the result is {iri}), or a Collection/OrderedCollection of
// member IRIs, paginated via "first"/"next" up to max entries.
func (f *HTTPActorFetcher) GetReferences(_ context.Context, iri *url.URL, max int) ([]*url.URL, error) {
	refs := make([]*url.URL, 0, max)

	next := iri

	for next != nil && len(refs) < max {
		doc, err := f.loader.LoadDocument(next.String())
		if err != nil {
			return refs, fmt.Errorf("load references document: %w", err)
		}

		bytes, err := json.Marshal(doc.Document)
		if err != nil {
			return refs, fmt.Errorf("marshal references document: %w", err)
		}

		page, nextIRI, err := parseReferencesPage(bytes)
		if err != nil {
			// Not a collection — treat the IRI itself as the single reference.
			return []*url.URL{iri}, nil
		}

		for _, r := range page {
			if len(refs) >= max {
				break
			}

			refs = append(refs, r)
		}

		next = nextIRI
	}

	return refs, nil
}

func parseReferencesPage(bytes []byte) ([]*url.URL, *url.URL, error) {
	coll := &vocab.OrderedCollectionType{}
	if err := json.Unmarshal(bytes, coll); err == nil && coll.Type() != nil &&
		coll.Type().Is(vocab.TypeOrderedCollection) {
		// The top-level collection carries its items inline (orderedItems);
		// if it also points to a paginated first page, follow that next,
		// otherwise this is the whole collection.
		if first := coll.First(); first != nil {
			return itemsToIRIs(coll.Items()), first, nil
		}

		return itemsToIRIs(coll.Items()), nil, nil
	}

	page := &vocab.OrderedCollectionPageType{}
	if err := json.Unmarshal(bytes, page); err == nil && page.Type() != nil &&
		page.Type().Is(vocab.TypeOrderedCollectionPage) {
		return itemsToIRIs(page.Items()), page.Next(), nil
	}

	return nil, nil, orberrors.NewValidationError("not a collection document")
}

func itemsToIRIs(items []*vocab.ObjectProperty) []*url.URL {
	iris := make([]*url.URL, 0, len(items))

	for _, item := range items {
		if iri := item.IRI(); iri != nil {
			iris = append(iris, iri)

			continue
		}

		if obj := item.Object(); obj != nil && obj.ID() != nil {
			iris = append(iris, obj.ID().URL())
		}
	}

	return iris
}
