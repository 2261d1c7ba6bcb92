// Package keymap provides key binding definitions and lookup for the
// interactive prompts. Each prompt runs in one mode and resolves key presses
// to commands through the keymap instead of matching keys inline.
package keymap

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the input mode of a prompt.
// Different modes have different key bindings active.
type Mode string

const (
	ModeSelect    Mode = "select"     // Single-choice list
	ModeTagBrowse Mode = "tag_browse" // Tag picker list
	ModeTagEntry  Mode = "tag_entry"  // Typing a new tag
	ModeConfirm   Mode = "confirm"    // Yes/no dialog
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// List navigation commands, shared by the selector and the tag picker
const (
	CmdUp     Command = "up"
	CmdDown   Command = "down"
	CmdFirst  Command = "first"
	CmdLast   Command = "last"
	CmdSubmit Command = "submit"
	CmdCancel Command = "cancel"
)

// Tag picker commands
const (
	CmdToggle     Command = "toggle"
	CmdDelete     Command = "delete"
	CmdEnterEntry Command = "enter_entry"
	CmdAddTag     Command = "add_tag"
	CmdDiscard    Command = "discard"
)

// Confirmation dialog commands
const (
	CmdSwitch Command = "switch"
	CmdYes    Command = "yes"
	CmdNo     Command = "no"
)

// Modifier represents keyboard modifiers.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For rune keys use tea.KeyRunes
	// and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys.
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is shown in the prompt's help line.
	Description string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// A zero Rune matches any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	if kb.KeyType != tea.KeyRunes {
		switch kb.KeyType {
		case tea.KeyUp:
			return prefix + "↑"
		case tea.KeyDown:
			return prefix + "↓"
		case tea.KeyLeft:
			return prefix + "←"
		case tea.KeyRight:
			return prefix + "→"
		case tea.KeySpace:
			return prefix + "space"
		}
		return prefix + kb.KeyType.String()
	}

	if kb.Rune == ' ' {
		return prefix + "space"
	}
	return prefix + string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	// Name identifies this keymap.
	Name string

	// Description provides a human-readable description.
	Description string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// HelpEntry is one item of a prompt's help line.
type HelpEntry struct {
	Keys        string
	Description string
}

// Help returns one entry per command of mode, in binding order, joining the
// keys that trigger it. Bindings without a description are left out.
func (km *Keymap) Help(mode Mode) []HelpEntry {
	var entries []HelpEntry
	index := make(map[Command]int)
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Description == "" {
			continue
		}
		if i, ok := index[binding.Command]; ok {
			entries[i].Keys += "/" + binding.String()
			continue
		}
		index[binding.Command] = len(entries)
		entries = append(entries, HelpEntry{Keys: binding.String(), Description: binding.Description})
	}
	return entries
}

// HelpLine renders Help(mode) as a single line.
func (km *Keymap) HelpLine(mode Mode) string {
	entries := km.Help(mode)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Keys + " " + e.Description
	}
	return strings.Join(parts, " · ")
}
