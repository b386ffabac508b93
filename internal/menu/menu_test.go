package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeView struct {
	open     bool
	expanded bool
	calls    int
}

func (v *fakeView) SetOpen(open bool)         { v.open = open; v.calls++ }
func (v *fakeView) SetExpanded(expanded bool) { v.expanded = expanded }

func TestMenu_ButtonThenLink(t *testing.T) {
	view := &fakeView{}
	m := New(view)

	m.ToggleButton()
	assert.True(t, m.Open())
	assert.True(t, view.open)
	assert.True(t, view.expanded)

	m.LinkClicked()
	assert.False(t, m.Open())
	assert.False(t, view.open)
	assert.False(t, view.expanded)
}

func TestMenu_ButtonToggles(t *testing.T) {
	view := &fakeView{}
	m := New(view)

	m.ToggleButton()
	m.ToggleButton()
	assert.False(t, m.Open())
	assert.False(t, view.expanded)
	assert.Equal(t, 2, view.calls)
}

func TestMenu_DocumentClick(t *testing.T) {
	tests := []struct {
		name      string
		startOpen bool
		insideNav bool
		wantOpen  bool
		wantCalls int
	}{
		{"outside while open closes", true, false, false, 2},
		{"inside while open stays open", true, true, true, 1},
		{"outside while closed is ignored", false, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := &fakeView{}
			m := New(view)
			if tt.startOpen {
				m.ToggleButton()
			}

			m.DocumentClicked(tt.insideNav)

			assert.Equal(t, tt.wantOpen, m.Open())
			assert.Equal(t, tt.wantOpen, view.expanded)
			assert.Equal(t, tt.wantCalls, view.calls)
		})
	}
}

func TestMenu_NilViewIsSafe(t *testing.T) {
	m := New(nil)
	assert.NotPanics(t, func() {
		m.ToggleButton()
		m.DocumentClicked(false)
	})
	assert.False(t, m.Open())
}
