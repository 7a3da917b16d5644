package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/logger"
)

// Chat represents the right panel with the message timeline and composer
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	messages         []chat.Message
	conversationName string
	hasConversation  bool
	isGroup          bool
	selfID           string

	// Name of the counterpart currently typing, empty when idle
	typingName string
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	// Timeline panel height excludes the composer below it
	chatPanelHeight := height - InputTotalHeight

	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Composer width accounts for its own border AND padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	ctx.Log("Chat.SetSize: outer=%dx%d, panel=%d, input=%d", width, height, chatPanelHeight, InputTotalHeight)
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetSelf sets the current user's ID, used to align message styling
func (c *Chat) SetSelf(userID string) {
	c.selfID = userID
}

// SetConversation switches the panel to a conversation's timeline
func (c *Chat) SetConversation(name string, isGroup bool, messages []chat.Message) {
	c.conversationName = name
	c.isGroup = isGroup
	c.messages = messages
	c.hasConversation = true
	c.typingName = ""
	c.updateContent()
}

// SetMessages replaces the displayed timeline without changing the
// conversation identity
func (c *Chat) SetMessages(messages []chat.Message) {
	c.messages = messages
	c.updateContent()
}

// ClearConversation clears the current conversation
func (c *Chat) ClearConversation() {
	c.conversationName = ""
	c.messages = nil
	c.hasConversation = false
	c.isGroup = false
	c.typingName = ""
	c.updateContent()
}

// SetTyping shows or hides the typing indicator
func (c *Chat) SetTyping(senderName string, active bool) {
	if active {
		c.typingName = senderName
	} else {
		c.typingName = ""
	}
	c.updateContent()
}

// GetInput returns the current composer text
func (c *Chat) GetInput() string {
	val := strings.TrimSpace(c.input.Value())
	logger.Log("Chat.GetInput: len=%d", len(val))
	return val
}

// ClearInput clears the composer
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the composer value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// LastMessageBody returns the body of the newest message, or empty
// string when the timeline is empty
func (c *Chat) LastMessageBody() string {
	if len(c.messages) == 0 {
		return ""
	}
	return c.messages[len(c.messages)-1].Body
}

// deliveryTick renders the delivery marker for a message sent by the
// current user
func deliveryTick(state chat.DeliveryState) string {
	switch state {
	case chat.DeliverySent:
		return DeliverySentStyle.Render("✓")
	case chat.DeliveryFailed:
		return DeliveryFailedStyle.Render("✕")
	case chat.DeliveryPending:
		return DeliveryPendingStyle.Render("○")
	default:
		return ""
	}
}

// renderNoConversationMessage renders the placeholder when nothing is selected
func (c *Chat) renderNoConversationMessage() string {
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	var sb strings.Builder
	sb.WriteString(msgStyle.Italic(true).Render("Select a conversation to start messaging"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("↑/↓"))
	sb.WriteString(msgStyle.Render(" to browse conversations"))
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("  • Press "))
	sb.WriteString(keyStyle.Render("/"))
	sb.WriteString(msgStyle.Render(" to search"))
	return sb.String()
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if !c.hasConversation {
		sb.WriteString(c.renderNoConversationMessage())
	} else if len(c.messages) == 0 {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No messages yet. Say hello."))
	} else {
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}

			isSelf := msg.SenderID == c.selfID
			senderStyle := ChatPeerStyle
			senderName := msg.SenderName
			if isSelf {
				senderStyle = ChatSelfStyle
				senderName = "You"
			}

			sb.WriteString(senderStyle.Render(senderName))
			sb.WriteString("  ")
			sb.WriteString(ChatTimeStyle.Render(msg.SentAt.Local().Format("15:04")))
			if isSelf {
				if tick := deliveryTick(msg.Delivery); tick != "" {
					sb.WriteString("  ")
					sb.WriteString(tick)
				}
			}
			sb.WriteString("\n")
			sb.WriteString(renderBody(strings.TrimSpace(msg.Body), wrapWidth))
		}

		if c.typingName != "" {
			sb.WriteString("\n\n")
			sb.WriteString(ChatTypingStyle.Render(c.typingName + " is typing…"))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	if c.focused && c.hasConversation {
		// Scroll keys go to the viewport, never the composer
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case "pgup", "pgdown", "ctrl+up", "ctrl+down", "home", "end",
				"page up", "page down", "ctrl+u", "ctrl+d":
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				cmds = append(cmds, cmd)
				return c, tea.Batch(cmds...)
			}
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)

		// Other key events stop here so typing never scrolls the timeline
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			return c, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if !c.hasConversation {
		return panelStyle.Width(c.width).Height(c.height).Render(c.renderNoConversationMessage())
	}

	// Timeline panel on top, composer below it
	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
