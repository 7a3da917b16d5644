// Package session binds the authenticated user, the conversation
// directory and the timeline store into a single coordinator that
// mediates selection changes and their derived effects.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/errors"
	"github.com/parleychat/parley/internal/logger"
)

// Coordinator is the top-level holder of session-scoped chat state. It
// exclusively owns the selection and layout state; the directory and
// timeline store are shared with read-only query paths in the UI, but
// only the coordinator (and the store's own sync path) mutate them.
//
// The coordinator is single-threaded by contract: every operation runs
// to completion on the UI event loop before the next is accepted.
type Coordinator struct {
	user      chat.User
	directory *chat.Directory
	timelines *chat.Timelines
	layout    *Layout

	selected string // Selected conversation ID; empty means none
	epoch    uint64 // Bumped on every selection change and logout
	narrow   bool   // Narrow-viewport presentation active

	now   func() time.Time
	newID func() string
}

// SelectResult reports the derived effects of a selection change. The
// epoch lets async consumers (scroll, read acks) discard signals that
// belong to a superseded selection.
type SelectResult struct {
	ConversationID string
	Epoch          uint64
	SidebarClosed  bool
}

// NewCoordinator creates a coordinator for the authenticated user with
// fresh, empty stores. The user record is read-only for the session.
func NewCoordinator(user chat.User) *Coordinator {
	dir := chat.NewDirectory()
	return &Coordinator{
		user:      user,
		directory: dir,
		timelines: chat.NewTimelines(dir, user.ID),
		layout:    NewLayout(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// User returns the authenticated user.
func (c *Coordinator) User() chat.User {
	return c.user
}

// Directory exposes the conversation directory for read-only queries and
// transport seeding.
func (c *Coordinator) Directory() *chat.Directory {
	return c.directory
}

// Timelines exposes the timeline store for read-only queries and
// transport appends.
func (c *Coordinator) Timelines() *chat.Timelines {
	return c.timelines
}

// Layout exposes the sidebar visibility state machine.
func (c *Coordinator) Layout() *Layout {
	return c.layout
}

// SetNarrow tells the coordinator whether the narrow-viewport
// presentation is active. Viewport width itself is not engine state;
// the rendering collaborator reports only the regime.
func (c *Coordinator) SetNarrow(narrow bool) {
	c.narrow = narrow
}

// Narrow reports whether the narrow-viewport presentation is active.
func (c *Coordinator) Narrow() bool {
	return c.narrow
}

// Selected returns the selected conversation ID, if any.
func (c *Coordinator) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Epoch returns the current selection generation. Signals carrying an
// older epoch are stale and must be ignored.
func (c *Coordinator) Epoch() uint64 {
	return c.epoch
}

// SelectConversation makes the conversation current. Entering a
// conversation acknowledges all of its messages as read, closes the
// sidebar in narrow mode, and schedules a scroll-to-end for the timeline
// view. An unknown ID leaves the selection unchanged.
func (c *Coordinator) SelectConversation(id string) (SelectResult, error) {
	if _, err := c.directory.Get(id); err != nil {
		logger.Warn("Coordinator: select of unknown conversation %s", id)
		return SelectResult{}, err
	}

	c.selected = id
	c.epoch++
	// Acknowledge the backlog up to its newest message. Anything arriving
	// after this point is handled by Receive while the conversation stays
	// selected.
	if last, ok := c.timelines.LastMessage(id); ok {
		if err := c.timelines.MarkRead(id, last.ID); err != nil {
			logger.Warn("Coordinator: mark read up to %s failed: %v", last.ID, err)
		}
	}

	closed := false
	if c.narrow && c.layout.SidebarOpen() {
		c.layout.CloseSidebar()
		closed = true
	}

	logger.Debug("Coordinator: selected %s (epoch %d)", id, c.epoch)
	return SelectResult{ConversationID: id, Epoch: c.epoch, SidebarClosed: closed}, nil
}

// ClearSelection returns to the no-selection state without tearing down
// the stores. Used when the selected conversation disappears.
func (c *Coordinator) ClearSelection() {
	c.selected = ""
	c.epoch++
}

// SendMessage validates and appends an outgoing message. The append is
// optimistic: the message lands in the timeline immediately with a
// pending delivery status, already read (a sender's own messages are
// never unread to themselves). The transport's later ack resolves the
// delivery status via ResolveDelivery.
func (c *Coordinator) SendMessage(conversationID, body string) (chat.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return chat.Message{}, errors.EmptyMessageBody()
	}
	if conversationID == "" || conversationID != c.selected {
		return chat.Message{}, errors.NotSelected(conversationID)
	}

	msg := chat.Message{
		ID:             c.newID(),
		ConversationID: conversationID,
		SenderID:       c.user.ID,
		SenderName:     c.user.DisplayName,
		Body:           body,
		SentAt:         c.now(),
		ReadState:      chat.Read,
		Delivery:       chat.DeliveryPending,
	}
	c.timelines.Append(conversationID, msg)
	logger.Debug("Coordinator: sent %s to %s", msg.ID, conversationID)
	return msg, nil
}

// ResolveDelivery records the transport outcome for a previously sent
// message. A failed send becomes a delivery status on the message; read
// state is never rolled back.
func (c *Coordinator) ResolveDelivery(conversationID, messageID string, delivered bool) error {
	state := chat.DeliverySent
	if !delivered {
		state = chat.DeliveryFailed
	}
	return c.timelines.SetDelivery(conversationID, messageID, state)
}

// Receive appends an incoming message from the transport. If it lands in
// the selected conversation it is acknowledged as read immediately (the
// user is looking at it) and the caller should scroll the timeline;
// otherwise it accrues to the conversation's unread badge.
func (c *Coordinator) Receive(msg chat.Message) (selected bool) {
	c.timelines.Append(msg.ConversationID, msg)
	if msg.ConversationID == c.selected {
		c.timelines.MarkAllRead(msg.ConversationID)
		return true
	}
	return false
}

// ToggleSidebar flips the narrow-mode sidebar overlay.
func (c *Coordinator) ToggleSidebar() {
	c.layout.ToggleSidebar()
}

// CloseSidebar hides the narrow-mode sidebar overlay. Idempotent.
func (c *Coordinator) CloseSidebar() {
	c.layout.CloseSidebar()
}

// Logout tears down all session-scoped state: selection, layout, and
// both stores. Chat state has session lifetime and is never persisted.
func (c *Coordinator) Logout() {
	c.selected = ""
	c.epoch++
	c.layout.Reset()
	c.directory.Clear()
	c.timelines.Clear()
	logger.Info("Coordinator: logged out %s", c.user.ID)
}
