package chat

import (
	"testing"
	"time"

	"github.com/parleychat/parley/internal/errors"
)

func testDirectory(t *testing.T) *Directory {
	t.Helper()

	d := NewDirectory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d.Upsert(Conversation{
		ID:                  "c-john",
		Kind:                KindDirect,
		DisplayName:         "John Doe",
		LastActivityAt:      base.Add(-2 * time.Minute),
		CounterpartPresence: PresenceOnline,
	})
	d.Upsert(Conversation{
		ID:             "c-team",
		Kind:           KindGroup,
		DisplayName:    "Team Chat",
		LastActivityAt: base.Add(-1 * time.Hour),
		MemberCount:    5,
	})
	d.Upsert(Conversation{
		ID:                  "c-sarah",
		Kind:                KindDirect,
		DisplayName:         "Sarah Wilson",
		LastActivityAt:      base.Add(-3 * time.Hour),
		CounterpartPresence: PresenceOffline,
	})
	return d
}

func TestDirectory_List_Ordering(t *testing.T) {
	d := testDirectory(t)

	got := d.List("")
	if len(got) != 3 {
		t.Fatalf("List(\"\") returned %d conversations, want 3", len(got))
	}

	wantOrder := []string{"c-john", "c-team", "c-sarah"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("List order[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestDirectory_List_TieBreakByID(t *testing.T) {
	d := NewDirectory()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	d.Upsert(Conversation{ID: "b", DisplayName: "Beta", LastActivityAt: at})
	d.Upsert(Conversation{ID: "a", DisplayName: "Alpha", LastActivityAt: at})

	got := d.List("")
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("tie broken wrong: got [%s %s], want [a b]", got[0].ID, got[1].ID)
	}
}

func TestDirectory_List_Filter(t *testing.T) {
	d := testDirectory(t)

	tests := []struct {
		name    string
		filter  string
		wantIDs []string
	}{
		{"case-insensitive substring", "jo", []string{"c-john"}},
		{"matches anywhere in name", "wil", []string{"c-sarah"}},
		{"uppercase filter", "TEAM", []string{"c-team"}},
		{"no match", "zzz", nil},
		{"empty returns all", "", []string{"c-john", "c-team", "c-sarah"}},
		{"whitespace treated as empty", "  ", []string{"c-john", "c-team", "c-sarah"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.List(tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("List(%q) returned %d entries, want %d", tt.filter, len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("List(%q)[%d] = %s, want %s", tt.filter, i, got[i].ID, id)
				}
			}
		})
	}
}

func TestDirectory_Get(t *testing.T) {
	d := testDirectory(t)

	c, err := d.Get("c-john")
	if err != nil {
		t.Fatalf("Get(c-john) failed: %v", err)
	}
	if c.DisplayName != "John Doe" {
		t.Errorf("DisplayName = %q, want %q", c.DisplayName, "John Doe")
	}

	_, err = d.Get("missing")
	if err == nil {
		t.Fatal("Get(missing) should fail")
	}
	if !errors.Is(err, errors.KindNotFound) {
		t.Errorf("Get(missing) error kind = %v, want KindNotFound", errors.GetKind(err))
	}
}

func TestDirectory_Upsert_Replaces(t *testing.T) {
	d := testDirectory(t)

	c, _ := d.Get("c-john")
	c.UnreadCount = 7
	c.LastMessagePreview = "updated"
	d.Upsert(c)

	got, _ := d.Get("c-john")
	if got.UnreadCount != 7 {
		t.Errorf("UnreadCount = %d, want 7", got.UnreadCount)
	}
	if got.LastMessagePreview != "updated" {
		t.Errorf("LastMessagePreview = %q, want %q", got.LastMessagePreview, "updated")
	}
	if d.Len() != 3 {
		t.Errorf("Len = %d after upsert of existing, want 3", d.Len())
	}
}

func TestDirectory_Clear(t *testing.T) {
	d := testDirectory(t)

	d.Clear()
	if d.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", d.Len())
	}
	if _, err := d.Get("c-john"); err == nil {
		t.Error("Get should fail after Clear")
	}
}
