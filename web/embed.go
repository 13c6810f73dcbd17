// Package web holds the embedded templates and static assets of the canvas UI.
package web

import "embed"

// TemplatesFS contains the layout, page and partial templates.
//
//go:embed all:templates
var TemplatesFS embed.FS

// StaticFS contains the stylesheet.
//
//go:embed all:static
var StaticFS embed.FS
