package chat

import (
	"sort"
	"strings"
	"sync"

	"github.com/parleychat/parley/internal/errors"
	"github.com/parleychat/parley/internal/logger"
)

// Directory holds the set of conversations visible to the current user.
// It owns the conversation entries exclusively; the timeline store pushes
// denormalized fields (preview, activity, unread count) into it via Upsert.
type Directory struct {
	mu    sync.RWMutex
	convs map[string]Conversation
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		convs: make(map[string]Conversation),
	}
}

// List returns conversations whose display name contains filter as a
// case-insensitive substring; an empty filter returns all. Ordering is by
// LastActivityAt descending, with ID ascending as a deterministic tiebreak.
func (d *Directory) List(filter string) []Conversation {
	d.mu.RLock()
	defer d.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter))

	result := make([]Conversation, 0, len(d.convs))
	for _, c := range d.convs {
		if needle != "" && !strings.Contains(strings.ToLower(c.DisplayName), needle) {
			continue
		}
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].LastActivityAt.Equal(result[j].LastActivityAt) {
			return result[i].LastActivityAt.After(result[j].LastActivityAt)
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the conversation with the given ID, or a NotFound error.
// Callers treat NotFound as non-fatal and fall back to a cleared selection.
func (d *Directory) Get(id string) (Conversation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.convs[id]
	if !ok {
		return Conversation{}, errors.ConversationNotFound(id)
	}
	return c, nil
}

// Upsert replaces an existing entry with the same ID or inserts a new one.
func (d *Directory) Upsert(c Conversation) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.convs[c.ID]; !exists {
		logger.Debug("Directory: inserting conversation %s (%s)", c.ID, c.DisplayName)
	}
	d.convs[c.ID] = c
}

// Len returns the number of conversations in the directory.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.convs)
}

// Clear releases all conversations. Called on logout; chat state has
// session lifetime and is never persisted.
func (d *Directory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.convs = make(map[string]Conversation)
	logger.Debug("Directory: cleared")
}
