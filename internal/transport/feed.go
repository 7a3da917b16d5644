// Package transport is the remote-service collaborator. It feeds
// Conversation and Message records into the directory and timeline store
// and acknowledges sends. This implementation simulates a remote peer
// in-process; a production system would replace it with a real
// fetch/subscribe client speaking the same shapes.
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/logger"
)

// Ack reports the transport outcome for a message sent by the local user.
type Ack struct {
	ConversationID string
	MessageID      string
	Delivered      bool
}

// TypingEvent signals that a remote party started or stopped composing.
type TypingEvent struct {
	ConversationID string
	SenderName     string
	Active         bool
}

// DefaultSendLatency approximates a round trip to the chat service.
const DefaultSendLatency = 300 * time.Millisecond

// DefaultServerURL names the in-process simulated service, used when the
// config carries no endpoint.
const DefaultServerURL = "sim://local"

// Feed is a simulated subscription to the chat service. Incoming
// messages, typing signals and send acks are delivered over channels;
// the UI event loop pumps them with listener commands.
type Feed struct {
	user      chat.User
	serverURL string

	incoming chan chat.Message
	acks     chan Ack
	typing   chan TypingEvent

	// SendLatency is the simulated round-trip delay for Send acks.
	SendLatency time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFeed creates a feed for the authenticated user against the given
// service endpoint (empty means DefaultServerURL). Call Seed to populate
// the stores, then Start to begin delivering events.
func NewFeed(user chat.User, serverURL string) *Feed {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Feed{
		user:        user,
		serverURL:   serverURL,
		incoming:    make(chan chat.Message, 16),
		acks:        make(chan Ack, 16),
		typing:      make(chan TypingEvent, 16),
		SendLatency: DefaultSendLatency,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Incoming returns the channel of messages from remote parties.
func (f *Feed) Incoming() <-chan chat.Message {
	return f.incoming
}

// Acks returns the channel of send acknowledgments.
func (f *Feed) Acks() <-chan Ack {
	return f.acks
}

// Typing returns the channel of remote typing signals.
func (f *Feed) Typing() <-chan TypingEvent {
	return f.typing
}

// Send forwards a locally appended message to the chat service. The
// outcome arrives later on the Acks channel; the caller has already
// appended the message optimistically.
func (f *Feed) Send(msg chat.Message) {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		select {
		case <-f.ctx.Done():
			// Feed torn down before the round trip finished: surface the
			// failure if the ack channel still has room, otherwise the
			// message stays pending locally. Must not block Close.
			select {
			case f.acks <- Ack{ConversationID: msg.ConversationID, MessageID: msg.ID, Delivered: false}:
			default:
			}
		case <-time.After(f.SendLatency):
			f.tryAck(Ack{ConversationID: msg.ConversationID, MessageID: msg.ID, Delivered: true})
		}
	}()
}

func (f *Feed) tryAck(a Ack) {
	select {
	case f.acks <- a:
	case <-f.ctx.Done():
	}
}

// Close stops the feed and releases its goroutines.
func (f *Feed) Close() {
	f.cancel()
	f.wg.Wait()
}

// Start begins replaying the scripted incoming traffic. It returns
// immediately; events arrive on the channels until the script ends or
// the feed is closed.
func (f *Feed) Start() {
	logger.ComponentLogger("transport").Info("feed started", "server", f.serverURL, "user", f.user.ID)
	script := incomingScript()
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for _, step := range script {
			select {
			case <-f.ctx.Done():
				return
			case <-time.After(step.delay):
			}

			if step.typingFor > 0 {
				f.emitTyping(TypingEvent{ConversationID: step.conversationID, SenderName: step.senderName, Active: true})
				select {
				case <-f.ctx.Done():
					return
				case <-time.After(step.typingFor):
				}
				f.emitTyping(TypingEvent{ConversationID: step.conversationID, SenderName: step.senderName, Active: false})
			}

			msg := chat.Message{
				ID:             uuid.NewString(),
				ConversationID: step.conversationID,
				SenderID:       step.senderID,
				SenderName:     step.senderName,
				Body:           step.body,
				SentAt:         time.Now(),
				ReadState:      chat.Unread,
			}
			select {
			case f.incoming <- msg:
			case <-f.ctx.Done():
				return
			}
		}
		logger.ComponentLogger("transport").Debug("incoming script finished")
	}()
}

func (f *Feed) emitTyping(ev TypingEvent) {
	select {
	case f.typing <- ev:
	case <-f.ctx.Done():
	}
}

// scriptStep is one scripted remote message, optionally preceded by a
// typing signal.
type scriptStep struct {
	delay          time.Duration
	typingFor      time.Duration
	conversationID string
	senderID       string
	senderName     string
	body           string
}

func incomingScript() []scriptStep {
	return []scriptStep{
		{
			delay:          15 * time.Second,
			typingFor:      3 * time.Second,
			conversationID: ConvJohn,
			senderID:       "u-john",
			senderName:     "John Doe",
			body:           "Did you get a chance to look at the designs?",
		},
		{
			delay:          25 * time.Second,
			conversationID: ConvTeam,
			senderID:       "u-bob",
			senderName:     "Bob",
			body:           "Standup moved to 10:30 tomorrow.",
		},
		{
			delay:          40 * time.Second,
			typingFor:      2 * time.Second,
			conversationID: ConvSarah,
			senderID:       "u-sarah",
			senderName:     "Sarah Wilson",
			body:           "One more thing - can you review my PR when you have a minute?",
		},
	}
}
