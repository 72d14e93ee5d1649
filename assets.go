// Package accountsui embeds the front end so release binaries are
// self-contained. With DEV=true the HTTP layer reads frontend/ from disk
// instead and these filesystems go unused.
package accountsui

import "embed"

// StaticFS holds the CSS and other files served under /static/.
//
//go:embed all:frontend/static
var StaticFS embed.FS

// TemplateFS holds the layout, page and partial templates.
//
//go:embed all:frontend/templates
var TemplateFS embed.FS
