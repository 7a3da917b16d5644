package notification

import (
	"errors"
	"testing"
)

// swapNotify replaces the delivery function for the duration of a test.
func swapNotify(t *testing.T, fn func(title, message string, icon any) error) {
	t.Helper()
	orig := notify
	notify = fn
	t.Cleanup(func() { notify = orig })
}

func TestSend(t *testing.T) {
	var gotTitle, gotMessage string
	swapNotify(t, func(title, message string, icon any) error {
		gotTitle, gotMessage = title, message
		return nil
	})

	if err := Send("Title", "Message"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotTitle != "Title" || gotMessage != "Message" {
		t.Errorf("delivered %q/%q, want Title/Message", gotTitle, gotMessage)
	}
}

func TestSend_Error(t *testing.T) {
	wantErr := errors.New("notification failed")
	swapNotify(t, func(title, message string, icon any) error {
		return wantErr
	})

	if err := Send("Title", "Message"); !errors.Is(err, wantErr) {
		t.Errorf("Send returned %v, want %v", err, wantErr)
	}
}

func TestNewMessage(t *testing.T) {
	var gotTitle, gotMessage string
	swapNotify(t, func(title, message string, icon any) error {
		gotTitle, gotMessage = title, message
		return nil
	})

	if err := NewMessage("John Doe", "Hey, how are you doing?"); err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	if gotTitle != "John Doe" {
		t.Errorf("title = %q", gotTitle)
	}
	if gotMessage != "Hey, how are you doing?" {
		t.Errorf("message = %q", gotMessage)
	}
}
