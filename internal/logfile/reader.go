// Package logfile reads the line-delimited JSON file written by the RASP
// logger. It never writes to the file.
package logfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"raspview/internal/structs"
)

// maxLineSize bounds a single log line. The logger embeds request data in
// details without a limit; longer lines are skipped, not fatal.
const maxLineSize = 1024 * 1024

// Reader reads the log file at a path that may be swapped at runtime.
type Reader struct {
	mu   sync.RWMutex
	path string
}

func NewReader(path string) *Reader {
	return &Reader{path: path}
}

func (r *Reader) Path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.path
}

func (r *Reader) SetPath(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
}

// Read reads the whole file once. A missing file is not an error: the page
// comes back with Exists false and no entries. Blank lines are ignored.
// Lines longer than maxLineSize, or that do not decode to a non-empty JSON
// object, are counted in Skipped and dropped. A writer appending
// concurrently may leave a partial last line, which is dropped the same way.
func (r *Reader) Read(ctx context.Context) (*structs.Page, error) {
	path := r.Path()
	page := &structs.Page{Path: path}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Debugf("[logfile] %s does not exist", path)
			return page, nil
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	page.Exists = true

	br := bufio.NewReaderSize(f, 64*1024)

	lineNo := 0
	for {
		raw, tooLong, readErr := readLine(br)
		if readErr != nil && readErr != io.EOF {
			return nil, errors.Wrapf(readErr, "reading %s", path)
		}
		if readErr == io.EOF && len(raw) == 0 && !tooLong {
			break
		}

		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "reading %s", path)
		}

		if tooLong {
			page.Total++
			page.Skipped++
			logrus.Debugf("[logfile] skipping line %d of %s: longer than %d bytes", lineNo, path, maxLineSize)
		} else if line := string(raw); strings.TrimSpace(line) != "" {
			page.Total++
			entry, ok := Decode(line)
			if ok {
				page.Entries = append(page.Entries, entry)
			} else {
				page.Skipped++
				logrus.Debugf("[logfile] skipping line %d of %s: not a JSON object", lineNo, path)
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if page.Skipped > 0 {
		logrus.Debugf("[logfile] read %s: %d entries, %d lines skipped", path, len(page.Entries), page.Skipped)
	}
	return page, nil
}

// readLine returns the next line without its line ending. A line longer
// than maxLineSize is consumed up to its newline and reported as tooLong
// with no content. err is io.EOF on the last line of the file.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	var chunk []byte
	for {
		chunk, err = br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > maxLineSize+2 {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if tooLong {
			return nil, true, err
		}
		line = bytes.TrimSuffix(line, []byte("\n"))
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) > maxLineSize {
			return nil, true, err
		}
		return line, false, err
	}
}

// Decode parses one line. It reports false for anything that is not a JSON
// object with at least one key; null and {} are treated as empty.
func Decode(line string) (structs.LogEntry, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return structs.LogEntry{}, false
	}
	if len(fields) == 0 {
		return structs.LogEntry{}, false
	}
	return structs.LogEntry{Fields: fields}, true
}
