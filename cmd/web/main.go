//go:build js && wasm

// Command web is the browser frontend, compiled to WebAssembly and served
// as /app.wasm next to the page.
package main

import (
	"github.com/circa/reservations/internal/hero"
	"github.com/circa/reservations/internal/logging"
	"github.com/circa/reservations/internal/webui"
)

// endpoint may be overridden at build time with
// -ldflags "-X main.endpoint=https://api.example.com/reservations".
var endpoint = "/reservations"

func main() {
	logger := logging.InitLogger("info", "text")

	webui.Mount(webui.Options{
		Endpoint: endpoint,
		Hero:     hero.DefaultConfig(),
		Logger:   logger,
	})

	select {}
}
