package structs

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Keys written by the RASP logger for every event.
const (
	KeyTimestamp    = "timestamp"
	KeyType         = "type"
	KeyDetails      = "details"
	KeyCaller       = "caller"
	KeyFilename     = "filename"
	KeyLine         = "line"
	KeyFileHash     = "file-hash"
	KeyIsEval       = "is-eval"
	KeyWasBlocked   = "was-blocked"
	KeyModifiedTime = "modified-time"
	KeyIP           = "ip"
)

const (
	NotAvailable = "N/A"
	Yes          = "Yes"
	No           = "No"
)

// Columns are the table headers, in display order.
var Columns = []string{
	"Timestamp",
	"Type",
	"Details",
	"Caller",
	"Filename",
	"Line",
	"File Hash",
	"From Eval()",
	"Was Blocked",
	"File Last Modified",
	"IP",
}

// LogEntry is one decoded line of the log file. Values are kept raw so that
// absence, null and the original JSON type can all be told apart at display time.
type LogEntry struct {
	Fields map[string]json.RawMessage
}

// Row is the display projection of a LogEntry. Every value is plain text and
// still needs escaping for the output it is written to.
type Row struct {
	Timestamp    string `json:"timestamp"`
	Type         string `json:"type"`
	Details      string `json:"details"`
	Caller       string `json:"caller"`
	Filename     string `json:"filename"`
	Line         string `json:"line"`
	FileHash     string `json:"file_hash"`
	IsEval       string `json:"is_eval"`
	WasBlocked   string `json:"was_blocked"`
	ModifiedTime string `json:"modified_time"`
	IP           string `json:"ip"`
}

// Row projects the entry onto the eleven display columns.
func (e LogEntry) Row() Row {
	return Row{
		Timestamp:    e.Text(KeyTimestamp),
		Type:         e.Text(KeyType),
		Details:      e.Text(KeyDetails),
		Caller:       e.Text(KeyCaller),
		Filename:     e.Text(KeyFilename),
		Line:         e.Text(KeyLine),
		FileHash:     e.Text(KeyFileHash),
		IsEval:       e.Flag(KeyIsEval),
		WasBlocked:   e.Flag(KeyWasBlocked),
		ModifiedTime: e.Text(KeyModifiedTime),
		IP:           e.Text(KeyIP),
	}
}

// Cells returns the row values in the same order as Columns.
func (r Row) Cells() []string {
	return []string{
		r.Timestamp,
		r.Type,
		r.Details,
		r.Caller,
		r.Filename,
		r.Line,
		r.FileHash,
		r.IsEval,
		r.WasBlocked,
		r.ModifiedTime,
		r.IP,
	}
}

// Text returns the value stored under key as display text, or N/A when the
// key is missing or null. Strings are unquoted and numbers keep their JSON
// literal. Booleans print the way the log producer's runtime echoes them:
// true is "1" and false is empty. Arrays or objects are shown as compact JSON.
func (e LogEntry) Text(key string) string {
	raw, ok := e.lookup(key)
	if !ok {
		return NotAvailable
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case 't':
		return "1"
	case 'f':
		return ""
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}

// Flag renders a boolean-ish field as Yes or No, or N/A when it is missing or
// null. A present false is No, never N/A.
func (e LogEntry) Flag(key string) string {
	raw, ok := e.lookup(key)
	if !ok {
		return NotAvailable
	}
	if truthy(raw) {
		return Yes
	}
	return No
}

func (e LogEntry) lookup(key string) (json.RawMessage, bool) {
	raw, ok := e.Fields[key]
	if !ok {
		return nil, false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, false
	}
	return raw, true
}

// truthy follows the loose truthiness the log producer's runtime uses:
// false, 0, "", "0" and empty containers are false.
func truthy(raw json.RawMessage) bool {
	switch raw[0] {
	case 't':
		return true
	case 'f':
		return false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return false
		}
		return s != "" && s != "0"
	case '[':
		var v []json.RawMessage
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		return len(v) > 0
	case '{':
		var v map[string]json.RawMessage
		if err := json.Unmarshal(raw, &v); err != nil {
			return false
		}
		return len(v) > 0
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			// Out of range numbers are still non-zero.
			return len(raw) > 0
		}
		return f != 0
	}
}
