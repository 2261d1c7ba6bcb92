package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the key bindings of every prompt.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default bookminer key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeSelect:    defaultSelectBindings(),
			ModeTagBrowse: defaultTagBrowseBindings(),
			ModeTagEntry:  defaultTagEntryBindings(),
			ModeConfirm:   defaultConfirmBindings(),
		},
	}
}

func defaultSelectBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeSelect,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyUp, Command: CmdUp, Description: "up"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdUp, Description: "up"},
			{KeyType: tea.KeyDown, Command: CmdDown, Description: "down"},
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdDown, Description: "down"},
			{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "choose"},
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: "back"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCancel, Description: "back"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel},
		},
	}
}

func defaultTagBrowseBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeTagBrowse,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyUp, Command: CmdUp, Description: "up"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdUp, Description: "up"},
			{KeyType: tea.KeyDown, Command: CmdDown, Description: "down"},
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdDown, Description: "down"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdFirst, Description: "first"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdLast, Description: "last"},
			{KeyType: tea.KeySpace, Command: CmdToggle, Description: "toggle"},
			{KeyType: tea.KeyRunes, Rune: 'd', Command: CmdDelete, Description: "delete"},
			{KeyType: tea.KeyRunes, Rune: 'i', Command: CmdEnterEntry, Description: "new tag"},
			{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "done"},
			{KeyType: tea.KeyEsc, Command: CmdCancel, Description: "back"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCancel, Description: "back"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel},
		},
	}
}

// Keys without a binding in tag entry mode go to the text input.
func defaultTagEntryBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeTagEntry,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdAddTag, Description: "add"},
			{KeyType: tea.KeyEsc, Command: CmdDiscard, Description: "discard"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel},
		},
	}
}

func defaultConfirmBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeConfirm,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyLeft, Command: CmdSwitch, Description: "switch"},
			{KeyType: tea.KeyRight, Command: CmdSwitch, Description: "switch"},
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdSwitch},
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdSwitch},
			{KeyType: tea.KeyTab, Command: CmdSwitch},
			{KeyType: tea.KeyRunes, Rune: 'y', Command: CmdYes, Description: "yes"},
			{KeyType: tea.KeyRunes, Rune: 'Y', Command: CmdYes},
			{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdNo, Description: "no"},
			{KeyType: tea.KeyRunes, Rune: 'N', Command: CmdNo},
			{KeyType: tea.KeyEsc, Command: CmdNo},
			{KeyType: tea.KeyEnter, Command: CmdSubmit, Description: "confirm"},
			{KeyType: tea.KeyCtrlC, Command: CmdCancel},
		},
	}
}
