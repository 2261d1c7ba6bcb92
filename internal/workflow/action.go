package workflow

// MenuAction is one entry of the main menu.
type MenuAction int

const (
	ActionSendCard MenuAction = iota
	ActionEditFront
	ActionEditBack
	ActionEditSettings
	ActionEditTags
	ActionCancel
)

// MenuActions returns every action in menu order.
func MenuActions() []MenuAction {
	return []MenuAction{
		ActionSendCard,
		ActionEditFront,
		ActionEditBack,
		ActionEditSettings,
		ActionEditTags,
		ActionCancel,
	}
}

// String returns the menu label.
func (a MenuAction) String() string {
	switch a {
	case ActionSendCard:
		return "Send Card"
	case ActionEditFront:
		return "Edit Front"
	case ActionEditBack:
		return "Edit Back"
	case ActionEditSettings:
		return "Edit Anki Settings"
	case ActionEditTags:
		return "Edit Tags"
	case ActionCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// ShouldTerminate reports whether the session ends once the action
// succeeds.
func (a MenuAction) ShouldTerminate() bool {
	return a == ActionSendCard || a == ActionCancel
}

func menuLabels() []string {
	actions := MenuActions()
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = a.String()
	}
	return labels
}

// settingsItem is one entry of the settings menu.
type settingsItem int

const (
	settingDeck settingsItem = iota
	settingNoteType
	settingMapping
	settingDone
)

var settingsLabels = []string{"deck", "note type", "mapping", "cancel"}
