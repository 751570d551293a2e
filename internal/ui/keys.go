package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/TimelordUK/vtail/internal/config"
)

// KeyMap defines the keybindings
type KeyMap struct {
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	ToggleVendor key.Binding
	ToggleWrap   key.Binding
	ToggleFollow key.Binding
	Truncate     key.Binding
	Search       key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
}

// NewKeyMap builds bindings from the configured keys
func NewKeyMap(cfg config.KeybindingConfig) KeyMap {
	return KeyMap{
		Quit:         binding(cfg.Quit, "quit"),
		Up:           binding(cfg.ScrollUp, "up"),
		Down:         binding(cfg.ScrollDown, "down"),
		PageUp:       binding(cfg.PageUp, "page up"),
		PageDown:     binding(cfg.PageDown, "page down"),
		Top:          binding(cfg.Top, "top"),
		Bottom:       binding(cfg.Bottom, "bottom"),
		ToggleVendor: binding(cfg.ToggleVendor, "hide vendor"),
		ToggleWrap:   binding(cfg.ToggleWrap, "disable wrapping"),
		ToggleFollow: binding(cfg.ToggleFollow, "follow"),
		Truncate:     binding(cfg.Truncate, "truncate file"),
		Search:       binding(cfg.Search, "search"),
		NextMatch:    binding(cfg.NextMatch, "next match"),
		PrevMatch:    binding(cfg.PrevMatch, "prev match"),
	}
}

func binding(keys []string, desc string) key.Binding {
	if len(keys) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey(keys[0]), desc))
}

func helpKey(k string) string {
	switch k {
	case " ":
		return "space"
	case "up":
		return "↑"
	case "down":
		return "↓"
	}
	return strings.Replace(k, "ctrl+", "^", 1)
}

// setState relabels the toggles so the hotkey bar names what a key press
// will do next.
func (k *KeyMap) setState(hideVendor, wrapLines, following bool) {
	relabel(&k.ToggleVendor, choose(hideVendor, "show vendor", "hide vendor"))
	relabel(&k.ToggleWrap, choose(wrapLines, "disable wrapping", "enable wrapping"))
	relabel(&k.ToggleFollow, choose(following, "unfollow", "follow"))
}

func relabel(b *key.Binding, desc string) {
	b.SetHelp(b.Help().Key, desc)
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// ShortHelp is the hotkey bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleVendor, k.ToggleWrap, k.Truncate, k.ToggleFollow, k.Search, k.Quit}
}

// FullHelp lists every binding
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.ToggleVendor, k.ToggleWrap, k.ToggleFollow, k.Truncate},
		{k.Search, k.NextMatch, k.PrevMatch, k.Quit},
	}
}
