package app

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings handled outside the focused widget.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Focus     key.Binding
	Open      key.Binding
	StartDown key.Binding
	StartUp   key.Binding
	EndDown   key.Binding
	EndUp     key.Binding
	StepDown  key.Binding
	StepUp    key.Binding
	CatNext   key.Binding
	CatPrev   key.Binding
	Add       key.Binding
	PlaySel   key.Binding
	PlayAll   key.Binding
	Save      key.Binding
	Dismiss   key.Binding
}

var defaultKeyMap = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "Q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "focus"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	StartDown: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h/l", "start"),
	),
	StartUp: key.NewBinding(
		key.WithKeys("l"),
	),
	EndDown: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H/L", "end"),
	),
	EndUp: key.NewBinding(
		key.WithKeys("L"),
	),
	StepDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[/]", "step"),
	),
	StepUp: key.NewBinding(
		key.WithKeys("]"),
	),
	CatNext: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c/C", "category"),
	),
	CatPrev: key.NewBinding(
		key.WithKeys("C"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	PlaySel: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play sel"),
	),
	PlayAll: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	Save: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
}

// focusHelp adapts keyMap to help.KeyMap for the focused panel.
type focusHelp struct {
	keys  keyMap
	focus Focus
}

func (h focusHelp) ShortHelp() []key.Binding {
	k := h.keys
	switch h.focus {
	case FocusFiles:
		return []key.Binding{k.Open, k.PlayAll, k.Save, k.Focus, k.Quit}
	case FocusEditor:
		return []key.Binding{k.Focus, k.Dismiss, k.ForceQuit}
	default:
		return []key.Binding{
			k.StartDown, k.EndDown, k.StepDown, k.CatNext, k.Add,
			k.PlaySel, k.PlayAll, k.Save, k.Focus, k.Quit,
		}
	}
}

func (h focusHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
