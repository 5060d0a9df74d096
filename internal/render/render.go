// Package render turns a read of the log file into HTML, JSON or terminal
// text.
package render

import (
	"fmt"
	"io"
	"strings"

	"raspview/internal/structs"
)

// Renderer writes a page to w.
type Renderer interface {
	Render(w io.Writer, page *structs.Page) error
}

// ForFormat returns the renderer for html, json or text.
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", "html":
		return NewHTMLRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "text":
		return NewTextRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q: want html, json or text", name)
	}
}
