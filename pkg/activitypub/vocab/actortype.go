/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vocab

import (
	"net/url"
)

// PublicKeyType defines a public key object.
type PublicKeyType struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	PublicKeyPem string `json:"publicKeyPem"`
}

// NewPublicKey returns a new public key object.
func NewPublicKey(opts ...Opt) *PublicKeyType {
	options := NewOptions(opts...)

	var id, owner string

	if options.ID != nil {
		id = options.ID.String()
	}

	if options.Owner != nil {
		owner = options.Owner.String()
	}

	return &PublicKeyType{
		ID:           id,
		Owner:        owner,
		PublicKeyPem: options.PublicKeyPem,
	}
}

// MultikeyType defines a Data Integrity verification method: an Ed25519 key
// encoded with its multicodec prefix (see pkg/proof.EncodeMultikey).
type MultikeyType struct {
	ID                 *URLProperty `json:"id"`
	Type               Type         `json:"type"`
	Controller         *URLProperty `json:"controller"`
	PublicKeyMultibase string       `json:"publicKeyMultibase"`
}

// NewMultikey returns a new Multikey verification method.
func NewMultikey(id, controller *url.URL, publicKeyMultibase string) *MultikeyType {
	return &MultikeyType{
		ID:                 NewURLProperty(id),
		Type:               TypeMultikey,
		Controller:         NewURLProperty(controller),
		PublicKeyMultibase: publicKeyMultibase,
	}
}

// EndpointsType holds an actor's additional named endpoints.
type EndpointsType struct {
	SharedInbox *URLProperty `json:"sharedInbox,omitempty"`
}

// ActorType defines an 'actor'.
type ActorType struct {
	*ObjectType

	actor *actorType
}

type actorType struct {
	PreferredUsername string          `json:"preferredUsername,omitempty"`
	PublicKey         *PublicKeyType  `json:"publicKey"`
	AssertionMethod   []*MultikeyType `json:"assertionMethod,omitempty"`
	Endpoints         *EndpointsType  `json:"endpoints,omitempty"`
	Inbox             *URLProperty    `json:"inbox"`
	Outbox            *URLProperty    `json:"outbox"`
	Followers         *URLProperty    `json:"followers"`
	Following         *URLProperty    `json:"following"`
	Witnesses         *URLProperty    `json:"witnesses"`
	Witnessing        *URLProperty    `json:"witnessing"`
	Liked             *URLProperty    `json:"liked"`
	Featured          *URLProperty    `json:"featured,omitempty"`
	FeaturedTags      *URLProperty    `json:"featuredTags,omitempty"`
	Likes             *URLProperty    `json:"likes"`
	Shares            *URLProperty    `json:"shares"`
}

// PreferredUsername returns the actor's WebFinger username.
func (t *ActorType) PreferredUsername() string {
	return t.actor.PreferredUsername
}

// PublicKey returns the actor's public key.
func (t *ActorType) PublicKey() *PublicKeyType {
	return t.actor.PublicKey
}

// AssertionMethod returns the actor's Data Integrity verification methods.
func (t *ActorType) AssertionMethod() []*MultikeyType {
	return t.actor.AssertionMethod
}

// Endpoints returns the actor's additional named endpoints, if any.
func (t *ActorType) Endpoints() *EndpointsType {
	return t.actor.Endpoints
}

// Featured returns the URL of the actor's featured collection.
func (t *ActorType) Featured() *url.URL {
	if t.actor.Featured == nil {
		return nil
	}

	return t.actor.Featured.URL()
}

// FeaturedTags returns the URL of the actor's featured-tags collection.
func (t *ActorType) FeaturedTags() *url.URL {
	if t.actor.FeaturedTags == nil {
		return nil
	}

	return t.actor.FeaturedTags.URL()
}

// SharedInbox returns the URL of the actor's shared inbox, if any.
func (t *ActorType) SharedInbox() *url.URL {
	if t.actor.Endpoints == nil || t.actor.Endpoints.SharedInbox == nil {
		return nil
	}

	return t.actor.Endpoints.SharedInbox.URL()
}

// Inbox returns the URL of the actor's inbox.
func (t *ActorType) Inbox() *url.URL {
	if t.actor.Inbox == nil {
		return nil
	}

	return t.actor.Inbox.URL()
}

// Outbox returns the URL of the actor's outbox.
func (t *ActorType) Outbox() *url.URL {
	if t.actor.Outbox == nil {
		return nil
	}

	return t.actor.Outbox.URL()
}

// Followers returns the URL of the actor's followers.
func (t *ActorType) Followers() *url.URL {
	if t.actor.Followers == nil {
		return nil
	}

	return t.actor.Followers.URL()
}

// Following returns the URL of what the actor is following.
func (t *ActorType) Following() *url.URL {
	if t.actor.Following == nil {
		return nil
	}

	return t.actor.Following.URL()
}

// Witnesses returns the URL of the actor's witnesses.
func (t *ActorType) Witnesses() *url.URL {
	if t.actor.Witnesses == nil {
		return nil
	}

	return t.actor.Witnesses.URL()
}

// Witnessing returns the URL of what the actor is witnessing.
func (t *ActorType) Witnessing() *url.URL {
	if t.actor.Witnessing == nil {
		return nil
	}

	return t.actor.Witnessing.URL()
}

// Liked returns the URL of what the actor has liked.
func (t *ActorType) Liked() *url.URL {
	if t.actor.Liked == nil {
		return nil
	}

	return t.actor.Liked.URL()
}

// MarshalJSON mmarshals the object to JSON.
func (t *ActorType) MarshalJSON() ([]byte, error) {
	return MarshalJSON(t.ObjectType, t.actor)
}

// UnmarshalJSON ummarshals the object from JSON.
func (t *ActorType) UnmarshalJSON(bytes []byte) error {
	t.ObjectType = NewObject()
	t.actor = &actorType{}

	return UnmarshalJSON(bytes, t.ObjectType, t.actor)
}

// NewService returns a new 'Service' actor type.
func NewService(id *url.URL, opts ...Opt) *ActorType {
	return newActor(TypeService, id, opts...)
}

// NewPerson returns a new 'Person' actor type.
func NewPerson(id *url.URL, opts ...Opt) *ActorType {
	return newActor(TypePerson, id, opts...)
}

func newActor(t Type, id *url.URL, opts ...Opt) *ActorType {
	options := NewOptions(opts...)

	var endpoints *EndpointsType
	if options.SharedInbox != nil {
		endpoints = &EndpointsType{SharedInbox: NewURLProperty(options.SharedInbox)}
	}

	return &ActorType{
		ObjectType: NewObject(
			WithContext(getContexts(options, ContextActivityStreams, ContextSecurity, ContextActivityAnchors)...),
			WithID(id),
			WithType(t),
		),
		actor: &actorType{
			PreferredUsername: options.PreferredUsername,
			PublicKey:         options.PublicKey,
			AssertionMethod:   options.AssertionMethod,
			Endpoints:         endpoints,
			Inbox:             NewURLProperty(options.Inbox),
			Outbox:            NewURLProperty(options.Outbox),
			Followers:         NewURLProperty(options.Followers),
			Following:         NewURLProperty(options.Following),
			Liked:             NewURLProperty(options.Liked),
			Featured:          NewURLProperty(options.Featured),
			FeaturedTags:      NewURLProperty(options.FeaturedTags),
			Witnesses:         NewURLProperty(options.Witnesses),
			Witnessing:        NewURLProperty(options.Witnessing),
			Likes:             NewURLProperty(options.Likes),
			Shares:            NewURLProperty(options.Shares),
		},
	}
}
