package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"raspview/internal/logfile"
	"raspview/internal/structs"
)

func pageOf(t *testing.T, lines ...string) *structs.Page {
	t.Helper()
	page := &structs.Page{Exists: true}
	for _, line := range lines {
		page.Total++
		entry, ok := logfile.Decode(line)
		if !ok {
			page.Skipped++
			continue
		}
		page.Entries = append(page.Entries, entry)
	}
	return page
}

func renderHTML(t *testing.T, page *structs.Page) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewHTMLRenderer().Render(&buf, page); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

// cells returns the text of every <td> in document order.
func cells(html string) []string {
	var out []string
	for _, part := range strings.Split(html, "<td>")[1:] {
		out = append(out, part[:strings.Index(part, "</td>")])
	}
	return out
}

func TestHTMLRendererHeader(t *testing.T) {
	out := renderHTML(t, pageOf(t))

	last := 0
	for _, col := range structs.Columns {
		idx := strings.Index(out, "<th>"+col+"</th>")
		if idx < 0 {
			t.Fatalf("want header %q in output", col)
		}
		if idx < last {
			t.Errorf("want header %q after the previous column", col)
		}
		last = idx
	}
}

func TestHTMLRendererExampleRow(t *testing.T) {
	out := renderHTML(t, pageOf(t, `{"timestamp":"2024-01-01T00:00:00Z","type":"alert","ip":"10.0.0.1"}`))

	want := []string{
		"2024-01-01T00:00:00Z", "alert", "N/A", "N/A", "N/A", "N/A",
		"N/A", "N/A", "N/A", "N/A", "10.0.0.1",
	}
	got := cells(out)
	if len(got) != len(want) {
		t.Fatalf("want %d cells, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %s: want %q, got %q", structs.Columns[i], want[i], got[i])
		}
	}
}

func TestHTMLRendererFlags(t *testing.T) {
	out := renderHTML(t, pageOf(t, `{"is-eval":false,"was-blocked":true}`))

	got := cells(out)
	if got[7] != "No" {
		t.Errorf("want From Eval() %q, got %q", "No", got[7])
	}
	if got[8] != "Yes" {
		t.Errorf("want Was Blocked %q, got %q", "Yes", got[8])
	}
}

func TestHTMLRendererEscapes(t *testing.T) {
	out := renderHTML(t, pageOf(t,
		`{"details":"<script>alert(\"x\")</script>","caller":"a&b","filename":"it's.php"}`,
	))

	if strings.Contains(out, "<script>") {
		t.Fatal("want script tag escaped")
	}
	got := cells(out)
	if got[2] != "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;" {
		t.Errorf("unexpected escaped details: %q", got[2])
	}
	if got[3] != "a&amp;b" {
		t.Errorf("unexpected escaped caller: %q", got[3])
	}
	if got[4] != "it&#39;s.php" {
		t.Errorf("unexpected escaped filename: %q", got[4])
	}
}

func TestHTMLRendererOrderAndMalformed(t *testing.T) {
	out := renderHTML(t, pageOf(t, `{"type":"one"}`, `not json`, `{"type":"two"}`))

	if n := strings.Count(out, "<tr>"); n != 3 {
		t.Errorf("want header plus 2 rows, got %d <tr>", n)
	}
	if strings.Index(out, "<td>one</td>") > strings.Index(out, "<td>two</td>") {
		t.Error("want rows in input order")
	}
	if strings.Contains(out, "not json") || strings.Contains(strings.ToLower(out), "error") {
		t.Error("want malformed lines dropped without any message")
	}
}

func TestHTMLRendererMissingFile(t *testing.T) {
	out := renderHTML(t, &structs.Page{Exists: false})

	if !strings.Contains(out, structs.NoLogsNotice) {
		t.Errorf("want notice %q in output", structs.NoLogsNotice)
	}
	if n := strings.Count(out, "<tr>"); n != 1 {
		t.Errorf("want only the header row, got %d <tr>", n)
	}
	if strings.Contains(out, "<td>") {
		t.Error("want no data cells")
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	page := pageOf(t, `{"type":"alert","was-blocked":false}`, `oops`)
	if err := NewJSONRenderer().Render(&buf, page); err != nil {
		t.Fatal(err)
	}

	var got jsonPage
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, buf.String())
	}
	if !got.Exists || got.Notice != "" {
		t.Errorf("want exists without notice, got %+v", got)
	}
	if got.Total != 2 || got.Skipped != 1 {
		t.Errorf("want total 2 skipped 1, got total %d skipped %d", got.Total, got.Skipped)
	}
	if len(got.Entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(got.Entries))
	}
	if got.Entries[0].Type != "alert" || got.Entries[0].WasBlocked != "No" || got.Entries[0].IP != "N/A" {
		t.Errorf("unexpected entry: %+v", got.Entries[0])
	}
}

func TestJSONRendererMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONRenderer().Render(&buf, &structs.Page{}); err != nil {
		t.Fatal(err)
	}

	var got jsonPage
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Exists || got.Notice != structs.NoLogsNotice {
		t.Errorf("want notice for missing file, got %+v", got)
	}
	if !strings.Contains(buf.String(), `"entries":[]`) {
		t.Errorf("want empty entries array, got %s", buf.String())
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	page := pageOf(t, `{"type":"alert","details":"line1\nline2\u001b[2J"}`, `{"type":"exec"}`)
	if err := NewTextRenderer().Render(&buf, page); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Timestamp") {
		t.Errorf("want header first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "line1 line2[2J") {
		t.Errorf("want newline and escape byte removed from details, got %q", lines[1])
	}
	if strings.Contains(out, "\x1b[2J") {
		t.Error("want control sequence from log content stripped")
	}
}

func TestTextRendererMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextRenderer().Render(&buf, &structs.Page{}); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != structs.NoLogsNotice {
		t.Errorf("want only the notice, got %q", buf.String())
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"", "html", "JSON", "text"} {
		if _, err := ForFormat(name); err != nil {
			t.Errorf("ForFormat(%q) failed: %v", name, err)
		}
	}
	if _, err := ForFormat("xml"); err == nil {
		t.Error("want error for unknown format")
	}
}
