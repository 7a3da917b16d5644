// Package modals provides modal dialog state types for the UI.
// Each modal type implements the ModalState interface with its own state
// struct, ensuring type-safe access to modal-specific fields.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is a discriminated union interface for modal-specific state.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}
