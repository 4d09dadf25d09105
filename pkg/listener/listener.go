/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package listener implements the inbox listener set: a dispatch table
// keyed by activity type that the federation engine's inbox pipeline
// consults once per inbound activity.
//
// The reference this is ported from keeps listeners in a map from an
// activity's runtime class to a handler and, on a miss, walks the class's
// prototype chain looking for a handler registered against a supertype.
// There is no such thing as a prototype chain in Go, so the walk is
// replaced with a statically known supertype table derived from the
// ActivityStreams vocabulary (pkg/activitypub/vocab/activitytype.go): every
// concrete activity type the vocabulary package implements (Create, Follow,
// Accept, ...) derives from the single base Activity type, so the "walk
// upward" degenerates to at most one extra lookup.
package listener

import (
	"context"
	"fmt"

	"github.com/trustbloc/fedigo/internal/pkg/log"
	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
)

var logger = log.New("listener")

// Handler handles one inbound activity. ctx is whatever federation-aware
// context.Context the engine's inbox pipeline constructs for the delivery
// (see pkg/fedcontext.InboxContext); Handler only relies on the
// context.Context contract so this package stays independent of it.
type Handler func(ctx context.Context, activity *vocab.ActivityType) error

// supertypeOf gives the single statically known supertype for each concrete
// activity type the vocabulary package models. TypeActivity itself has no
// entry: it is the root of the walk.
//
//nolint:gochecknoglobals
var supertypeOf = map[vocab.Type]vocab.Type{
	vocab.TypeCreate:   vocab.TypeActivity,
	vocab.TypeAnnounce: vocab.TypeActivity,
	vocab.TypeFollow:   vocab.TypeActivity,
	vocab.TypeAccept:   vocab.TypeActivity,
	vocab.TypeReject:   vocab.TypeActivity,
	vocab.TypeLike:     vocab.TypeActivity,
	vocab.TypeOffer:    vocab.TypeActivity,
	vocab.TypeUndo:     vocab.TypeActivity,
	vocab.TypeInvite:   vocab.TypeActivity,
}

// Set is a registry of Handlers keyed by activity type.
type Set struct {
	handlers map[vocab.Type]Handler
}

// NewSet returns an empty listener set.
func NewSet() *Set {
	return &Set{handlers: make(map[vocab.Type]Handler)}
}

// Register registers handler for activityType. Registering twice for the
// same type is a programming error and returns an error rather than
// silently overwriting the existing handler.
func (s *Set) Register(activityType vocab.Type, handler Handler) error {
	if _, exists := s.handlers[activityType]; exists {
		return fmt.Errorf("listener already registered for activity type %q", activityType)
	}

	s.handlers[activityType] = handler

	logger.Debug("Registered listener", log.WithActivityType(string(activityType)))

	return nil
}

// Dispatch looks up a handler for activity's type, walking the supertype
// table toward the base Activity type on a miss, and invokes it. handled
// is false when no handler matched any type in the chain, including the
// base Activity type itself — the caller (the inbox pipeline) treats this
// as "unsupported" and responds 202 with no body, per spec.
func (s *Set) Dispatch(ctx context.Context, activity *vocab.ActivityType) (handled bool, err error) {
	for _, t := range activity.Type().Types() {
		if handler, ok := s.lookup(t); ok {
			return true, handler(ctx, activity)
		}
	}

	return false, nil
}

// lookup walks t's supertype chain looking for a registered handler.
func (s *Set) lookup(t vocab.Type) (Handler, bool) {
	for {
		if handler, ok := s.handlers[t]; ok {
			return handler, true
		}

		super, ok := supertypeOf[t]
		if !ok {
			return nil, false
		}

		t = super
	}
}
