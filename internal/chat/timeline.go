package chat

import (
	"sort"
	"sync"

	"github.com/rivo/uniseg"

	"github.com/parleychat/parley/internal/errors"
	"github.com/parleychat/parley/internal/logger"
)

// MaxPreviewGraphemes caps the denormalized preview pushed to the
// directory. Counted in grapheme clusters, not bytes, so multi-rune
// emoji are not split.
const MaxPreviewGraphemes = 120

// Timelines owns every conversation's ordered message sequence and
// per-message read state. Each mutation pushes the derived directory
// fields (preview, activity, unread count) through a single sync path so
// the two stores cannot diverge.
type Timelines struct {
	mu         sync.RWMutex
	messages   map[string][]Message
	userID     string // Messages from this sender never count as unread
	dir        *Directory
	outOfOrder int // Appends observed with a timestamp before the tail
}

// NewTimelines creates an empty store bound to the given directory and
// the authenticated user's ID.
func NewTimelines(dir *Directory, userID string) *Timelines {
	return &Timelines{
		messages: make(map[string][]Message),
		userID:   userID,
		dir:      dir,
	}
}

// Append inserts the message at the end of its conversation's sequence.
// The sequence is kept sorted by (SentAt, ID) no matter the arrival
// order; nothing is dropped. Only arrivals with a SentAt strictly before
// the tail count as out of order.
func (t *Timelines) Append(convID string, msg Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg.ConversationID = convID
	seq := append(t.messages[convID], msg)

	if n := len(seq); n > 1 {
		tail := seq[n-2]
		if msg.SentAt.Before(tail.SentAt) {
			t.outOfOrder++
			logger.Warn("Timelines: out-of-order append in %s (msg %s), re-sorting", convID, msg.ID)
			sortBySentAtID(seq)
		} else if msg.SentAt.Equal(tail.SentAt) && msg.ID < tail.ID {
			// Same instant, lower ID: the tie-break reorders, but the
			// timestamp itself is not late
			sortBySentAtID(seq)
		}
	}

	t.messages[convID] = seq
	t.syncDirectoryLocked(convID)
}

func sortBySentAtID(seq []Message) {
	sort.SliceStable(seq, func(i, j int) bool {
		if !seq[i].SentAt.Equal(seq[j].SentAt) {
			return seq[i].SentAt.Before(seq[j].SentAt)
		}
		return seq[i].ID < seq[j].ID
	})
}

// MessagesFor returns the conversation's messages oldest first. The
// returned slice is a copy; mutating it does not affect the store.
func (t *Timelines) MessagesFor(convID string) []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seq := t.messages[convID]
	out := make([]Message, len(seq))
	copy(out, seq)
	return out
}

// LastMessage returns the newest message in the conversation, if any.
func (t *Timelines) LastMessage(convID string) (Message, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seq := t.messages[convID]
	if len(seq) == 0 {
		return Message{}, false
	}
	return seq[len(seq)-1], true
}

// MarkRead transitions every message with SentAt at or before the target
// message's SentAt, and not authored by the current user, from unread to
// read. Re-invoking with an already-read target is a no-op. Read state
// never moves backward.
func (t *Timelines) MarkRead(convID, upToMessageID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seq := t.messages[convID]
	var cutoff Message
	found := false
	for _, m := range seq {
		if m.ID == upToMessageID {
			cutoff = m
			found = true
			break
		}
	}
	if !found {
		return errors.MessageNotFound(convID, upToMessageID)
	}

	changed := 0
	for i := range seq {
		if seq[i].SentAt.After(cutoff.SentAt) {
			continue
		}
		if seq[i].SenderID == t.userID || seq[i].ReadState == Read {
			continue
		}
		seq[i].ReadState = Read
		changed++
	}

	if changed > 0 {
		logger.Debug("Timelines: marked %d messages read in %s", changed, convID)
		t.syncDirectoryLocked(convID)
	}
	return nil
}

// MarkAllRead acknowledges every message in the conversation. Used when
// the user opens a conversation. A missing or empty timeline is a no-op.
func (t *Timelines) MarkAllRead(convID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seq := t.messages[convID]
	changed := 0
	for i := range seq {
		if seq[i].SenderID == t.userID || seq[i].ReadState == Read {
			continue
		}
		seq[i].ReadState = Read
		changed++
	}
	if changed > 0 {
		t.syncDirectoryLocked(convID)
	}
}

// UnreadCount returns the number of messages in the conversation that are
// unread and not authored by the current user.
func (t *Timelines) UnreadCount(convID string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unreadCountLocked(convID)
}

func (t *Timelines) unreadCountLocked(convID string) int {
	count := 0
	for _, m := range t.messages[convID] {
		if m.ReadState == Unread && m.SenderID != t.userID {
			count++
		}
	}
	return count
}

// SetDelivery records the transport outcome for a sent message. Read
// state is deliberately untouched: a failed send is a delivery status,
// not a read-state rollback.
func (t *Timelines) SetDelivery(convID, msgID string, state DeliveryState) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	seq := t.messages[convID]
	for i := range seq {
		if seq[i].ID == msgID {
			seq[i].Delivery = state
			logger.Debug("Timelines: message %s in %s delivery=%s", msgID, convID, state)
			return nil
		}
	}
	return errors.MessageNotFound(convID, msgID)
}

// OutOfOrderCount reports how many appends arrived with a timestamp
// before the conversation tail. Surfaced as a metric, not an error.
func (t *Timelines) OutOfOrderCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.outOfOrder
}

// Clear releases all timelines. Called on logout.
func (t *Timelines) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = make(map[string][]Message)
	t.outOfOrder = 0
	logger.Debug("Timelines: cleared")
}

// syncDirectoryLocked pushes the derived fields for one conversation into
// the directory. This is the single update path for the denormalized
// Conversation fields; the directory never computes them itself.
// Callers must hold t.mu.
func (t *Timelines) syncDirectoryLocked(convID string) {
	conv, err := t.dir.Get(convID)
	if err != nil {
		// The conversation was removed from the directory (or never
		// seeded). Timeline data is kept; there is just no entry to
		// update.
		logger.Warn("Timelines: no directory entry for %s, skipping sync", convID)
		return
	}

	seq := t.messages[convID]
	if len(seq) > 0 {
		last := seq[len(seq)-1]
		conv.LastMessagePreview = previewFor(conv, last, t.userID)
		conv.LastActivityAt = last.SentAt
	}
	conv.UnreadCount = t.unreadCountLocked(convID)

	t.dir.Upsert(conv)
}

// previewFor builds the denormalized one-line summary of the newest
// message. Group conversations prefix the sender's name, matching how
// multi-party threads are summarized in the conversation list.
func previewFor(conv Conversation, last Message, userID string) string {
	body := truncateGraphemes(last.Body, MaxPreviewGraphemes)
	if conv.Kind == KindGroup && last.SenderID != userID {
		return last.SenderName + ": " + body
	}
	return body
}

// truncateGraphemes shortens s to at most max grapheme clusters,
// appending an ellipsis when truncated.
func truncateGraphemes(s string, max int) string {
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	gr := uniseg.NewGraphemes(s)
	var out []byte
	n := 0
	for gr.Next() && n < max {
		out = append(out, gr.Bytes()...)
		n++
	}
	return string(out) + "…"
}
