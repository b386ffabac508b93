// Package webui binds the page's DOM to the hero animation, the mobile menu
// and the reservation form when the frontend runs as WebAssembly in a
// browser. Every feature mounts independently: a missing element disables
// only that feature.
package webui
