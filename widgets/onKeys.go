package widgets

import (
	"fmt"
	"slices"
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
)

type filter struct {
	Required key.Modifiers
	Optional key.Modifiers
	names    []key.Name
}

type Shortcut struct {
	Key  filter
	Desc string
	F    func(key.Name, key.Modifiers)
}

type Shortcuts struct {
	receiver     any
	eventFilters []event.Filter
	shortcuts    map[key.Name]Shortcut
	order        []Shortcut
}

func NewShortcut(required, optional key.Modifiers, names ...key.Name) filter {
	return filter{
		Required: required,
		Optional: optional,
		names:    names,
	}
}

// NewShortcuts does not allow multiple identical non-modifying keys
// cause it uses map for matching internally.
func NewShortcuts(receiver any, shortcuts ...Shortcut) (ss Shortcuts) {
	if len(shortcuts) == 0 {
		panic("no shortcut provided")
	}

	ss.receiver = receiver
	ss.eventFilters = []event.Filter{}
	ss.shortcuts = make(map[key.Name]Shortcut, len(shortcuts))
	ss.order = shortcuts
	for _, s := range shortcuts {
		for _, keyName := range s.Key.names {
			ss.eventFilters = append(ss.eventFilters,
				key.Filter{
					Required: s.Key.Required,
					Optional: s.Key.Optional,
					Name:     keyName,
				},
			)
			if _, ok := ss.shortcuts[keyName]; ok {
				panic(fmt.Errorf("repeated key: %s", keyName))
			}
			ss.shortcuts[keyName] = s
		}
	}

	return
}

// Help returns one "keys: description" line per shortcut, in declaration order.
func (ss *Shortcuts) Help() []string {
	lines := make([]string, 0, len(ss.order))
	for _, s := range ss.order {
		names := make([]string, 0, len(s.Key.names))
		for _, n := range s.Key.names {
			n := string(n)
			if len(n) == 1 {
				n = strings.ToUpper(n)
			}
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
		keys := strings.Join(names, "/")
		if s.Key.Required != 0 {
			keys = s.Key.Required.String() + "-" + keys
		}
		lines = append(lines, keys+": "+s.Desc)
	}
	return lines
}

// Trigger runs the shortcut bound to name as if it was pressed.
func (ss *Shortcuts) Trigger(name key.Name, mod key.Modifiers) bool {
	shortcut, ok := ss.shortcuts[name]
	if !ok || !mod.Contain(shortcut.Key.Required) {
		return false
	}
	shortcut.F(name, mod)
	return true
}

func (ss *Shortcuts) Match(gtx layout.Context) error {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	defer area.Pop()
	event.Op(gtx.Ops, ss.receiver)

	for {
		ev, ok := gtx.Event(ss.eventFilters...)
		if !ok {
			break
		}
		switch e := ev.(type) {
		case key.Event:
			if e.State != key.Press {
				continue
			}
			ss.Trigger(e.Name, e.Modifiers)

		default:
			return fmt.Errorf("unknown key event[%T]: %v", ev, ev)
		}
	}

	return nil
}
