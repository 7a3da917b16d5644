// Package chat holds the conversation directory and per-conversation
// message timelines. These two containers own all session-scoped chat
// state; conversations reference their timeline by ID only, never by
// an embedded copy, so the containers can be tested in isolation.
package chat

import "time"

// Presence indicates whether a user is currently reachable.
type Presence int

const (
	PresenceOffline Presence = iota
	PresenceOnline
)

func (p Presence) String() string {
	if p == PresenceOnline {
		return "online"
	}
	return "offline"
}

// User identifies the authenticated account. It is supplied by the auth
// collaborator at login and is read-only for the rest of the session.
type User struct {
	ID          string
	DisplayName string
	AvatarRef   string // Opaque reference to an avatar image resource
	Presence    Presence
}

// ConversationKind distinguishes two-party and multi-party threads.
type ConversationKind int

const (
	KindDirect ConversationKind = iota
	KindGroup
)

func (k ConversationKind) String() string {
	if k == KindGroup {
		return "group"
	}
	return "direct"
}

// Conversation is a directory entry. LastMessagePreview, LastActivityAt
// and UnreadCount are denormalized from the timeline store; they are only
// ever written through the store's directory-sync path.
type Conversation struct {
	ID                 string
	Kind               ConversationKind
	DisplayName        string
	AvatarRef          string
	LastMessagePreview string
	LastActivityAt     time.Time
	UnreadCount        int

	// CounterpartPresence is meaningful only for direct conversations.
	CounterpartPresence Presence
	// MemberCount is meaningful only for group conversations.
	MemberCount int
}

// ReadState tracks whether the current user has seen a message.
// The only legal transition is unread to read.
type ReadState int

const (
	Unread ReadState = iota
	Read
)

func (r ReadState) String() string {
	if r == Read {
		return "read"
	}
	return "unread"
}

// DeliveryState tracks the transport outcome for messages sent by the
// current user. A failed send is recorded here, never as a ReadState
// rollback.
type DeliveryState int

const (
	// DeliveryNone marks incoming messages, which have no send outcome.
	DeliveryNone DeliveryState = iota
	// DeliveryPending marks an optimistic local append awaiting an ack.
	DeliveryPending
	// DeliverySent marks a message acknowledged by the transport.
	DeliverySent
	// DeliveryFailed marks a message the transport could not deliver.
	DeliveryFailed
)

func (d DeliveryState) String() string {
	switch d {
	case DeliveryPending:
		return "pending"
	case DeliverySent:
		return "sent"
	case DeliveryFailed:
		return "failed"
	default:
		return "none"
	}
}

// Message is one entry in a conversation's timeline. IDs are unique
// within their conversation; SentAt is expected to be non-decreasing in
// append order, but out-of-order delivery is tolerated (the store
// re-sorts).
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	SenderName     string // Denormalized for group rendering
	Body           string
	SentAt         time.Time
	ReadState      ReadState
	Delivery       DeliveryState
}
