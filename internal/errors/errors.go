// Package errors provides structured error types for the parley application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindAuth
	KindConfig
	KindIO
	KindTransport
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindAuth:
		return "authentication failed"
	case KindConfig:
		return "configuration error"
	case KindIO:
		return "I/O error"
	case KindTransport:
		return "transport error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for parley.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Directory errors

// ConversationNotFound reports a conversation ID absent from the directory.
// Callers must treat this as non-fatal: the conversation may have been
// removed, and the correct recovery is a cleared selection.
func ConversationNotFound(id string) error {
	return E(Op("chat.Directory.Get"), KindNotFound, fmt.Sprintf("conversation %s not found", id))
}

// MessageNotFound reports a message ID absent from a conversation's timeline.
func MessageNotFound(convID, msgID string) error {
	return E(Op("chat.Timelines"), KindNotFound, fmt.Sprintf("message %s not found in conversation %s", msgID, convID))
}

// Coordinator errors

// EmptyMessageBody rejects a send with no body. The operation is a no-op.
func EmptyMessageBody() error {
	return E(Op("session.SendMessage"), KindInvalid, "message body is empty")
}

// NotSelected rejects a send against a conversation that is not the
// current selection.
func NotSelected(convID string) error {
	return E(Op("session.SendMessage"), KindInvalid, fmt.Sprintf("conversation %s is not selected", convID))
}

// Auth errors

func LoginFailed(reason string) error {
	return E(Op("auth.Login"), KindAuth, reason)
}

// Config errors

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Transport errors

// SendFailed reports that the remote transport rejected or lost a message.
// The message stays in the timeline with a failed delivery status; it is
// never rolled back.
func SendFailed(msgID string, err error) error {
	return E(Op("transport.Send"), KindTransport, fmt.Sprintf("failed to deliver message %s", msgID), err)
}
