// Package auth is the authentication collaborator. It supplies the
// read-only User record at session start; the chat engine never sees or
// stores credentials.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/errors"
	"github.com/parleychat/parley/internal/logger"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 4

// Authenticator validates credentials and mints session users. The
// local implementation accepts any well-formed credentials; a production
// system would swap in a remote identity provider behind the same method.
type Authenticator struct {
	now func() time.Time
}

// New creates an Authenticator.
func New() *Authenticator {
	return &Authenticator{now: time.Now}
}

// Login validates the credentials and returns the session user. The
// returned User is read-only for the duration of the session.
func (a *Authenticator) Login(displayName, password string) (chat.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return chat.User{}, errors.LoginFailed("display name is required")
	}
	if len(password) < MinPasswordLength {
		return chat.User{}, errors.LoginFailed(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	user := chat.User{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		AvatarRef:   AvatarRef(displayName),
		Presence:    chat.PresenceOnline,
	}
	logger.Info("Auth: login for %s (%s)", user.DisplayName, user.ID)
	return user, nil
}

// AvatarRef derives an opaque avatar resource reference from a name.
// The seed is normalized so the same name always maps to the same image.
func AvatarRef(name string) string {
	seed := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}
