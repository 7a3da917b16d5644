package transport

import (
	"time"

	"github.com/parleychat/parley/internal/auth"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/logger"
)

// Stable conversation IDs assigned by the chat service.
const (
	ConvJohn  = "conv-john"
	ConvTeam  = "conv-team"
	ConvSarah = "conv-sarah"
)

// Seed populates the directory and timeline store with the
// conversations and message backlog the chat service holds for this
// account. Directory entries go in first so the store's sync path can
// maintain the denormalized fields as the backlog is appended.
func (f *Feed) Seed(dir *chat.Directory, timelines *chat.Timelines) {
	now := time.Now()

	dir.Upsert(chat.Conversation{
		ID:                  ConvJohn,
		Kind:                chat.KindDirect,
		DisplayName:         "John Doe",
		AvatarRef:           auth.AvatarRef("John Doe"),
		CounterpartPresence: chat.PresenceOnline,
	})
	dir.Upsert(chat.Conversation{
		ID:          ConvTeam,
		Kind:        chat.KindGroup,
		DisplayName: "Team Chat",
		AvatarRef:   auth.AvatarRef("Team Chat"),
		MemberCount: 5,
	})
	dir.Upsert(chat.Conversation{
		ID:                  ConvSarah,
		Kind:                chat.KindDirect,
		DisplayName:         "Sarah Wilson",
		AvatarRef:           auth.AvatarRef("Sarah Wilson"),
		CounterpartPresence: chat.PresenceOffline,
	})

	for _, m := range f.backlog(now) {
		timelines.Append(m.ConversationID, m)
	}

	logger.ComponentLogger("transport").Info("seeded state",
		"conversations", dir.Len(),
		"user", f.user.ID,
	)
}

// backlog returns the message history for the seeded conversations.
// John's thread carries three unacknowledged messages, the other two are
// fully read; timestamps are relative to login so the directory ordering
// matches recency.
func (f *Feed) backlog(now time.Time) []chat.Message {
	read := func(id, convID, senderID, senderName, body string, at time.Time) chat.Message {
		return chat.Message{
			ID: id, ConversationID: convID, SenderID: senderID,
			SenderName: senderName, Body: body, SentAt: at, ReadState: chat.Read,
		}
	}
	unread := func(id, convID, senderID, senderName, body string, at time.Time) chat.Message {
		m := read(id, convID, senderID, senderName, body, at)
		m.ReadState = chat.Unread
		return m
	}
	mine := func(id, convID, body string, at time.Time) chat.Message {
		m := read(id, convID, f.user.ID, f.user.DisplayName, body, at)
		m.Delivery = chat.DeliverySent
		return m
	}

	return []chat.Message{
		// Sarah Wilson: settled conversation, three hours old
		read("sarah-1", ConvSarah, "u-sarah", "Sarah Wilson", "Hey, could you help me debug the login flow?", now.Add(-200*time.Minute)),
		mine("sarah-2", ConvSarah, "Sure - push the branch and I'll take a look.", now.Add(-195*time.Minute)),
		read("sarah-3", ConvSarah, "u-sarah", "Sarah Wilson", "Thanks for the help!", now.Add(-180*time.Minute)),

		// Team Chat: group thread, an hour old
		read("team-1", ConvTeam, "u-bob", "Bob", "How's the release looking?", now.Add(-80*time.Minute)),
		mine("team-2", ConvTeam, "Schema migration is done, UI is in review.", now.Add(-70*time.Minute)),
		read("team-3", ConvTeam, "u-alice", "Alice", "The project is almost ready", now.Add(-60*time.Minute)),

		// John Doe: three unread, most recent activity
		read("john-1", ConvJohn, "u-john", "John Doe", "Hey there! How are you doing?", now.Add(-10*time.Minute)),
		mine("john-2", ConvJohn, "I'm doing great! Just working on some projects. How about you?", now.Add(-8*time.Minute)),
		unread("john-3", ConvJohn, "u-john", "John Doe", "Same here! Working on the new chat app feature.", now.Add(-5*time.Minute)),
		unread("john-4", ConvJohn, "u-john", "John Doe", "Want to pair on it this afternoon?", now.Add(-3*time.Minute)),
		unread("john-5", ConvJohn, "u-john", "John Doe", "Hey, how are you doing?", now.Add(-2*time.Minute)),
	}
}
