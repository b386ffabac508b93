// Package menu holds the open/closed state of the mobile navigation drawer.
package menu

import "sync"

// View reflects menu state into the page: the drawer class and the
// button's aria-expanded attribute.
type View interface {
	SetOpen(open bool)
	SetExpanded(expanded bool)
}

// Menu is a two-state toggle driven by the menu button, navigation links and
// clicks elsewhere on the document.
type Menu struct {
	mu   sync.Mutex
	view View
	open bool
}

// New returns a closed menu. The view is not touched until the first event.
func New(view View) *Menu {
	return &Menu{view: view}
}

// ToggleButton handles a click on the menu button.
func (m *Menu) ToggleButton() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(!m.open)
}

// LinkClicked closes the menu after a navigation link is followed.
func (m *Menu) LinkClicked() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(false)
}

// DocumentClicked closes an open menu when the click landed outside the
// navigation region. Clicks inside it are left to the other handlers.
func (m *Menu) DocumentClicked(insideNav bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if insideNav || !m.open {
		return
	}
	m.set(false)
}

func (m *Menu) Open() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *Menu) set(open bool) {
	m.open = open
	if m.view == nil {
		return
	}
	m.view.SetOpen(open)
	m.view.SetExpanded(open)
}
