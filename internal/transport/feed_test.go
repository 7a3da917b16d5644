package transport

import (
	"testing"
	"time"

	"github.com/parleychat/parley/internal/chat"
)

var feedUser = chat.User{ID: "u-me", DisplayName: "Test User"}

func TestSeed(t *testing.T) {
	f := NewFeed(feedUser, "")
	defer f.Close()

	dir := chat.NewDirectory()
	tl := chat.NewTimelines(dir, feedUser.ID)
	f.Seed(dir, tl)

	if dir.Len() != 3 {
		t.Fatalf("seeded %d conversations, want 3", dir.Len())
	}

	tests := []struct {
		convID      string
		displayName string
		kind        chat.ConversationKind
		unread      int
	}{
		{ConvJohn, "John Doe", chat.KindDirect, 3},
		{ConvTeam, "Team Chat", chat.KindGroup, 0},
		{ConvSarah, "Sarah Wilson", chat.KindDirect, 0},
	}

	for _, tt := range tests {
		t.Run(tt.displayName, func(t *testing.T) {
			conv, err := dir.Get(tt.convID)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", tt.convID, err)
			}
			if conv.DisplayName != tt.displayName {
				t.Errorf("DisplayName = %q, want %q", conv.DisplayName, tt.displayName)
			}
			if conv.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", conv.Kind, tt.kind)
			}
			if conv.UnreadCount != tt.unread {
				t.Errorf("UnreadCount = %d, want %d", conv.UnreadCount, tt.unread)
			}
			if got := tl.UnreadCount(tt.convID); got != tt.unread {
				t.Errorf("store UnreadCount = %d, want %d", got, tt.unread)
			}
		})
	}
}

func TestSeed_DirectoryOrdering(t *testing.T) {
	f := NewFeed(feedUser, "")
	defer f.Close()

	dir := chat.NewDirectory()
	tl := chat.NewTimelines(dir, feedUser.ID)
	f.Seed(dir, tl)

	got := dir.List("")
	wantOrder := []string{ConvJohn, ConvTeam, ConvSarah}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("List order[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSeed_Previews(t *testing.T) {
	f := NewFeed(feedUser, "")
	defer f.Close()

	dir := chat.NewDirectory()
	tl := chat.NewTimelines(dir, feedUser.ID)
	f.Seed(dir, tl)

	john, _ := dir.Get(ConvJohn)
	if john.LastMessagePreview != "Hey, how are you doing?" {
		t.Errorf("John preview = %q", john.LastMessagePreview)
	}

	team, _ := dir.Get(ConvTeam)
	if team.LastMessagePreview != "Alice: The project is almost ready" {
		t.Errorf("Team preview = %q (group previews carry the sender)", team.LastMessagePreview)
	}
}

func TestSend_Acks(t *testing.T) {
	f := NewFeed(feedUser, "")
	f.SendLatency = time.Millisecond
	defer f.Close()

	f.Send(chat.Message{ID: "m1", ConversationID: ConvJohn, Body: "hello"})

	select {
	case ack := <-f.Acks():
		if ack.MessageID != "m1" || ack.ConversationID != ConvJohn {
			t.Errorf("ack = %+v", ack)
		}
		if !ack.Delivered {
			t.Error("ack should report delivered")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ack")
	}
}

func TestSend_FailedAckOnClose(t *testing.T) {
	f := NewFeed(feedUser, "")
	f.SendLatency = time.Minute

	f.Send(chat.Message{ID: "m1", ConversationID: ConvJohn, Body: "doomed"})
	f.Close()

	select {
	case ack := <-f.Acks():
		if ack.MessageID != "m1" {
			t.Errorf("ack message = %s, want m1", ack.MessageID)
		}
		if ack.Delivered {
			t.Error("teardown before the round trip should surface a failed ack")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for failure ack")
	}
}

func TestNewFeed_ServerURL(t *testing.T) {
	f := NewFeed(feedUser, "")
	defer f.Close()
	if f.serverURL != DefaultServerURL {
		t.Errorf("serverURL = %q, want default %q", f.serverURL, DefaultServerURL)
	}

	g := NewFeed(feedUser, "wss://chat.example.com")
	defer g.Close()
	if g.serverURL != "wss://chat.example.com" {
		t.Errorf("serverURL = %q, want configured endpoint", g.serverURL)
	}
}

func TestClose_StopsFeed(t *testing.T) {
	f := NewFeed(feedUser, "")
	f.Start()
	f.Close()
	// Close must return with all goroutines joined; a second Close would
	// panic if the cancel path weren't idempotent via context.
	f.cancel()
}
