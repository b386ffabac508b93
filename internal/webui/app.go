//go:build js && wasm

package webui

import (
	"context"
	"log/slog"
	"syscall/js"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/circa/reservations/internal/booking"
	"github.com/circa/reservations/internal/hero"
	"github.com/circa/reservations/internal/menu"
)

const submitTimeout = 30 * time.Second

// Options configures Mount.
type Options struct {
	Endpoint string // reservation API, e.g. "/reservations"
	Hero     hero.Config
	Logger   *slog.Logger
}

// Mount wires every feature found on the page. It returns immediately;
// the features live as long as the page.
func Mount(opts Options) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	window := js.Global()
	doc := window.Get("document")

	mountHero(window, doc, opts)
	mountMenu(doc)
	mountForm(doc, opts)
}

func mountHero(window, doc js.Value, opts Options) {
	canvas := doc.Call("getElementById", "heroCanvas")
	if !present(canvas) {
		return
	}
	surface := NewCanvasSurface(canvas)
	if surface == nil {
		opts.Logger.Warn("Canvas has no 2D context, hero animation disabled")
		return
	}

	loop, err := hero.NewLoop(surface, NewFrameScheduler(window),
		hero.WithConfig(opts.Hero),
		hero.WithLogger(opts.Logger),
	)
	if err != nil {
		opts.Logger.Warn("Hero animation disabled", "error", err)
		return
	}

	if section := doc.Call("getElementById", "hero"); present(section) && present(window.Get("IntersectionObserver")) {
		observer := window.Get("IntersectionObserver").New(js.FuncOf(func(this js.Value, args []js.Value) any {
			entries := args[0]
			if entries.Length() > 0 {
				loop.SetVisible(entries.Index(0).Get("isIntersecting").Bool())
			}
			return nil
		}), map[string]any{"threshold": opts.Hero.VisibilityThreshold})
		observer.Call("observe", section)
	}

	listen(window, "resize", func(js.Value) {
		loop.Resize(window.Get("innerWidth").Int(), window.Get("innerHeight").Int())
	})

	loop.Start(window.Get("innerWidth").Int(), window.Get("innerHeight").Int())
}

func mountMenu(doc js.Value) {
	button := doc.Call("querySelector", ".mobile-menu-btn")
	navbar := doc.Call("querySelector", ".navbar")
	if !present(button) || !present(navbar) {
		return
	}
	m := menu.New(menuView{navbar: navbar, button: button})

	listen(button, "click", func(ev js.Value) {
		ev.Call("stopPropagation")
		m.ToggleButton()
	})

	links := doc.Call("querySelectorAll", ".nav-links a")
	for i := 0; i < links.Length(); i++ {
		listen(links.Index(i), "click", func(js.Value) { m.LinkClicked() })
	}

	listen(doc, "click", func(ev js.Value) {
		m.DocumentClicked(navbar.Call("contains", ev.Get("target")).Bool())
	})
}

func mountForm(doc js.Value, opts Options) {
	el := doc.Call("getElementById", "reservationForm")
	if !present(el) {
		return
	}
	form := formView{form: el}

	var banner booking.Banner
	if box := doc.Call("getElementById", "formMessage"); present(box) {
		banner = bannerView{el: box}
	}
	submitter := booking.NewSubmitter(
		booking.NewClient(opts.Endpoint, nil),
		booking.NewNotifier(banner, clockwork.NewRealClock()),
		form,
		opts.Logger,
	)

	listen(el, "submit", func(ev js.Value) {
		ev.Call("preventDefault")
		values := form.values()
		// fetch blocks; it must not run on the event callback goroutine.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			submitter.Submit(ctx, values)
		}()
	})
}
