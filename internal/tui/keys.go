package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps key names to actions per input scope. Lookups fall back
// to the global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal  = "global"
	scopeBoard   = "board"
	scopeInput   = "input"
	scopeSearch  = "search"
	scopeHistory = "history"
)

const (
	actionQuit       Action = "quit"
	actionHelp       Action = "help"
	actionSearch     Action = "search"
	actionNewCard    Action = "new_card"
	actionToggleLock Action = "toggle_lock"
	actionDelete     Action = "delete"
	actionHistory    Action = "history"
	actionUp         Action = "up"
	actionDown       Action = "down"
	actionLeft       Action = "left"
	actionRight      Action = "right"
	actionMoveLeft   Action = "move_left"
	actionMoveRight  Action = "move_right"
	actionCancel     Action = "cancel"
	actionConfirm    Action = "confirm"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(scopeGlobal, actionQuit, []string{"ctrl+c"}, "quit")

	reg(scopeBoard, actionQuit, []string{"q"}, "quit")
	reg(scopeBoard, actionUp, []string{"k", "up"}, "up")
	reg(scopeBoard, actionDown, []string{"j", "down"}, "down")
	reg(scopeBoard, actionLeft, []string{"left"}, "prev column")
	reg(scopeBoard, actionRight, []string{"right"}, "next column")
	reg(scopeBoard, actionMoveLeft, []string{"["}, "move card left")
	reg(scopeBoard, actionMoveRight, []string{"]"}, "move card right")
	reg(scopeBoard, actionSearch, []string{"/"}, "search")
	reg(scopeBoard, actionNewCard, []string{"n"}, "new card")
	reg(scopeBoard, actionToggleLock, []string{"l"}, "lock")
	reg(scopeBoard, actionDelete, []string{"x"}, "delete")
	reg(scopeBoard, actionHistory, []string{"h"}, "history")
	reg(scopeBoard, actionCancel, []string{"esc"}, "cancel drag")
	reg(scopeBoard, actionHelp, []string{"?"}, "help")

	reg(scopeInput, actionConfirm, []string{"enter"}, "save")
	reg(scopeInput, actionCancel, []string{"esc"}, "cancel")

	reg(scopeSearch, actionUp, []string{"up", "ctrl+p"}, "prev")
	reg(scopeSearch, actionDown, []string{"down", "ctrl+n"}, "next")
	reg(scopeSearch, actionConfirm, []string{"enter"}, "jump")
	reg(scopeSearch, actionCancel, []string{"esc"}, "close")

	reg(scopeHistory, actionCancel, []string{"esc", "h", "q"}, "close")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		// Single runes keep their case so "l" and "L" can differ.
		return trimmed
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	return s
}

// helpKeyMap adapts a scope's bindings to help.KeyMap.
type helpKeyMap struct {
	bindings []key.Binding
}

func (h helpKeyMap) ShortHelp() []key.Binding { return h.bindings }

func (h helpKeyMap) FullHelp() [][]key.Binding {
	var out [][]key.Binding
	for i := 0; i < len(h.bindings); i += 4 {
		out = append(out, h.bindings[i:min(i+4, len(h.bindings))])
	}
	return out
}
