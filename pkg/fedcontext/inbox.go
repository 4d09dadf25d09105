/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fedcontext

import (
	"context"

	"github.com/trustbloc/fedigo/pkg/activitypub/vocab"
)

// InboxContext is a RequestContext scoped to one inbox delivery: it carries
// the triggering activity a listener is being invoked with, and lets the
// listener relay that same activity onward (the forwarding step Mastodon's
// inbox algorithm relies on to reach followers a remote server doesn't know
// about).
type InboxContext struct {
	*RequestContext

	activity *vocab.ActivityType
}

// NewInboxContext returns an InboxContext wrapping req and the activity that
// triggered the current listener invocation.
func NewInboxContext(req *RequestContext, activity *vocab.ActivityType) *InboxContext {
	return &InboxContext{RequestContext: req, activity: activity}
}

// Activity returns the triggering activity.
func (i *InboxContext) Activity() *vocab.ActivityType {
	return i.activity
}

// ForwardActivity relays the triggering activity to recipients as if
// senderIdentifier had just sent it: it goes through the same signing and
// inbox-resolution steps as SendActivity, re-proved/re-signed with
// senderIdentifier's own keys, the way a server relays an activity to the
// followers it knows about that the original sender didn't.
func (i *InboxContext) ForwardActivity(
	ctx context.Context,
	senderIdentifier string,
	recipients Recipients,
	opts ...SendOption,
) error {
	return i.Context.SendActivity(ctx, senderIdentifier, recipients, i.activity, opts...)
}
