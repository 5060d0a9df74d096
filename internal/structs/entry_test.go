package structs

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, line string) LogEntry {
	t.Helper()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		t.Fatalf("failed to decode %q: %v", line, err)
	}
	return LogEntry{Fields: fields}
}

func TestLogEntryText(t *testing.T) {
	tests := []struct {
		name string
		line string
		key  string
		want string
	}{
		{name: "string", line: `{"type":"alert"}`, key: KeyType, want: "alert"},
		{name: "missing", line: `{"type":"alert"}`, key: KeyIP, want: NotAvailable},
		{name: "null", line: `{"ip":null}`, key: KeyIP, want: NotAvailable},
		{name: "integer", line: `{"line":42}`, key: KeyLine, want: "42"},
		{name: "float", line: `{"line":1.5}`, key: KeyLine, want: "1.5"},
		{name: "numeric string", line: `{"line":"42"}`, key: KeyLine, want: "42"},
		{name: "empty string", line: `{"details":""}`, key: KeyDetails, want: ""},
		{name: "escaped string", line: `{"details":"a \"quoted\" <b>"}`, key: KeyDetails, want: `a "quoted" <b>`},
		{name: "true", line: `{"details":true}`, key: KeyDetails, want: "1"},
		{name: "false", line: `{"details":false}`, key: KeyDetails, want: ""},
		{name: "object", line: `{"details":{ "a": [1, 2] }}`, key: KeyDetails, want: `{"a":[1,2]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decode(t, tc.line).Text(tc.key)
			if got != tc.want {
				t.Errorf("Text(%q) = %q, want %q", tc.key, got, tc.want)
			}
		})
	}
}

func TestLogEntryFlag(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "true", line: `{"is-eval":true}`, want: Yes},
		{name: "false", line: `{"is-eval":false}`, want: No},
		{name: "missing", line: `{"type":"x"}`, want: NotAvailable},
		{name: "null", line: `{"is-eval":null}`, want: NotAvailable},
		{name: "one", line: `{"is-eval":1}`, want: Yes},
		{name: "zero", line: `{"is-eval":0}`, want: No},
		{name: "zero float", line: `{"is-eval":0.0}`, want: No},
		{name: "string zero", line: `{"is-eval":"0"}`, want: No},
		{name: "empty string", line: `{"is-eval":""}`, want: No},
		{name: "string", line: `{"is-eval":"false"}`, want: Yes},
		{name: "empty array", line: `{"is-eval":[]}`, want: No},
		{name: "array", line: `{"is-eval":[0]}`, want: Yes},
		{name: "empty object", line: `{"is-eval":{}}`, want: No},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decode(t, tc.line).Flag(KeyIsEval)
			if got != tc.want {
				t.Errorf("Flag() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLogEntryRow(t *testing.T) {
	entry := decode(t, `{"timestamp":"2024-01-01T00:00:00Z","type":"alert","ip":"10.0.0.1"}`)
	want := []string{
		"2024-01-01T00:00:00Z", "alert", NotAvailable, NotAvailable, NotAvailable, NotAvailable,
		NotAvailable, NotAvailable, NotAvailable, NotAvailable, "10.0.0.1",
	}

	got := entry.Row().Cells()
	if len(got) != len(Columns) {
		t.Fatalf("want %d cells, got %d", len(Columns), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %s: want %q, got %q", Columns[i], want[i], got[i])
		}
	}
}

func TestLogEntryRowFlags(t *testing.T) {
	row := decode(t, `{"is-eval":false,"was-blocked":true}`).Row()

	if row.IsEval != No {
		t.Errorf("want IsEval %q, got %q", No, row.IsEval)
	}
	if row.WasBlocked != Yes {
		t.Errorf("want WasBlocked %q, got %q", Yes, row.WasBlocked)
	}
	for i, cell := range row.Cells() {
		if i == 7 || i == 8 {
			continue
		}
		if cell != NotAvailable {
			t.Errorf("column %s: want %q, got %q", Columns[i], NotAvailable, cell)
		}
	}
}

func TestPageRowsKeepOrder(t *testing.T) {
	page := &Page{Exists: true, Entries: []LogEntry{
		decode(t, `{"type":"first"}`),
		decode(t, `{"type":"second"}`),
		decode(t, `{"type":"third"}`),
	}}

	rows := page.Rows()
	for i, want := range []string{"first", "second", "third"} {
		if rows[i].Type != want {
			t.Errorf("row %d: want type %q, got %q", i, want, rows[i].Type)
		}
	}
}
