package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/notification"
)

// feedListeners returns the listener commands for the transport feed.
// This bundles the incoming, ack, and typing listeners together so
// adding a new event type only requires changing this one function.
func (m *Model) feedListeners() []tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return []tea.Cmd{
		m.listenForIncoming(),
		m.listenForAcks(),
		m.listenForTyping(),
	}
}

// listenForIncoming creates a command that waits for the next message
// from a remote party
func (m *Model) listenForIncoming() tea.Cmd {
	ch := m.feed.Incoming()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return IncomingMsg{Message: msg}
	}
}

// listenForAcks creates a command that waits for the next delivery outcome
func (m *Model) listenForAcks() tea.Cmd {
	ch := m.feed.Acks()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ack, ok := <-ch
		if !ok {
			return nil
		}
		return AckMsg{Ack: ack}
	}
}

// listenForTyping creates a command that waits for the next typing signal
func (m *Model) listenForTyping() tea.Cmd {
	ch := m.feed.Typing()
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return TypingMsg{Event: ev}
	}
}

// handleIncoming appends a received message. If it lands in the open
// conversation the timeline refreshes in place; otherwise the unread
// badge accrues and a desktop notification fires.
func (m *Model) handleIncoming(msg IncomingMsg) (tea.Model, tea.Cmd) {
	if m.coordinator == nil {
		return m, nil
	}

	selected := m.coordinator.Receive(msg.Message)
	if selected {
		m.refreshChat()
	} else if m.config.GetNotificationsEnabled() {
		conv, err := m.coordinator.Directory().Get(msg.Message.ConversationID)
		if err == nil {
			if err := notification.NewMessage(conv.DisplayName, msg.Message.Body); err != nil {
				logger.Debug("App: Notification failed: %v", err)
			}
		}
	}

	return m, m.listenForIncoming()
}

// handleAck records the transport outcome for a previously sent message
func (m *Model) handleAck(msg AckMsg) (tea.Model, tea.Cmd) {
	if m.coordinator == nil {
		return m, nil
	}

	if err := m.coordinator.ResolveDelivery(msg.Ack.ConversationID, msg.Ack.MessageID, msg.Ack.Delivered); err != nil {
		logger.Warn("App: Ack for unknown message %s/%s: %v", msg.Ack.ConversationID, msg.Ack.MessageID, err)
		return m, m.listenForAcks()
	}

	if id, ok := m.coordinator.Selected(); ok && id == msg.Ack.ConversationID {
		m.refreshChat()
	}

	var flash tea.Cmd
	if !msg.Ack.Delivered {
		flash = m.ShowFlashError("Message failed to deliver")
	}

	return m, tea.Batch(m.listenForAcks(), flash)
}

// handleTyping updates the composing indicators in the sidebar and,
// for the open conversation, the chat panel
func (m *Model) handleTyping(msg TypingMsg) (tea.Model, tea.Cmd) {
	if m.coordinator == nil {
		return m, nil
	}

	m.sidebar.SetTyping(msg.Event.ConversationID, msg.Event.Active)
	if id, ok := m.coordinator.Selected(); ok && id == msg.Event.ConversationID {
		m.chat.SetTyping(msg.Event.SenderName, msg.Event.Active)
	}

	return m, m.listenForTyping()
}
