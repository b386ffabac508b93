//go:build js && wasm

package webui

import (
	"syscall/js"

	"github.com/circa/reservations/internal/booking"
)

func present(v js.Value) bool { return !v.IsNull() && !v.IsUndefined() }

// listen attaches fn to target for event and keeps the callback alive for
// the lifetime of the page.
func listen(target js.Value, event string, fn func(ev js.Value)) {
	target.Call("addEventListener", event, js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	}))
}

// menuView toggles the navbar's nav-open class and the button's
// aria-expanded attribute.
type menuView struct {
	navbar js.Value
	button js.Value
}

func (v menuView) SetOpen(open bool) {
	v.navbar.Get("classList").Call("toggle", "nav-open", open)
}

func (v menuView) SetExpanded(expanded bool) {
	value := "false"
	if expanded {
		value = "true"
	}
	v.button.Call("setAttribute", "aria-expanded", value)
}

// bannerView is the #formMessage paragraph.
type bannerView struct {
	el js.Value
}

func (b bannerView) Show(text string, kind booking.Kind) {
	b.el.Set("textContent", text)
	b.el.Set("className", "form-message "+string(kind))
}

func (b bannerView) Hide() {
	b.el.Set("className", "form-message")
}

// formView wraps the reservation <form>.
type formView struct {
	form js.Value
}

func (f formView) Reset() { f.form.Call("reset") }

func (f formView) field(name string) string {
	el := f.form.Get("elements").Call("namedItem", name)
	if !present(el) {
		return ""
	}
	return el.Get("value").String()
}

func (f formView) values() booking.Form {
	return booking.Form{
		Name:    f.field("name"),
		Email:   f.field("email"),
		Phone:   f.field("phone"),
		Date:    f.field("date"),
		Time:    f.field("time"),
		Guests:  f.field("guests"),
		Message: f.field("message"),
	}
}
