// Package web holds the public site: the HTML page, its stylesheet and,
// after `make web`, the compiled frontend (app.wasm + wasm_exec.js).
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var files embed.FS

// Site returns the static files rooted at the site directory.
func Site() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err) // the embedded directory always exists
	}
	return sub
}
