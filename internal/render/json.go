package render

import (
	"encoding/json"
	"io"

	"raspview/internal/structs"
)

type jsonPage struct {
	Exists  bool          `json:"exists"`
	Notice  string        `json:"notice,omitempty"`
	Total   int           `json:"total"`
	Skipped int           `json:"skipped"`
	Entries []structs.Row `json:"entries"`
}

// JSONRenderer writes the display rows, not the raw entries, so consumers
// see the same N/A, Yes and No values as the HTML table.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, p *structs.Page) error {
	out := jsonPage{
		Exists:  p.Exists,
		Total:   p.Total,
		Skipped: p.Skipped,
		Entries: p.Rows(),
	}
	if !p.Exists {
		out.Notice = structs.NoLogsNotice
	}
	return json.NewEncoder(w).Encode(out)
}
