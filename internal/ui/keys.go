package ui

import tea "github.com/charmbracelet/bubbletea"

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "q", "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "ctrl+[")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isSpace(msg tea.KeyMsg) bool {
	return isKey(msg, " ", "space")
}

func isBackspace(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyBackspace || isKey(msg, "backspace", "ctrl+h")
}

// typed returns the printable text of a key press, or "".
func typed(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes)
	case tea.KeySpace:
		return " "
	}
	return ""
}

// navKeys maps list movement. With vim keys on, j/k/g/G also move.
type navKeys struct {
	vim bool
}

func (k navKeys) up(msg tea.KeyMsg) bool {
	return isKey(msg, "up") || (k.vim && isKey(msg, "k"))
}

func (k navKeys) down(msg tea.KeyMsg) bool {
	return isKey(msg, "down") || (k.vim && isKey(msg, "j"))
}

func (k navKeys) top(msg tea.KeyMsg) bool {
	return isKey(msg, "home") || (k.vim && isKey(msg, "g"))
}

func (k navKeys) bottom(msg tea.KeyMsg) bool {
	return isKey(msg, "end") || (k.vim && isKey(msg, "G"))
}
