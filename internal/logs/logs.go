package logs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"raspview/internal/structs"
)

const serviceName = "raspview"

// InitLogrus configures the standard logger. When forwardURL is set, warnings
// and errors are also posted to it and the installed hook is returned.
func InitLogrus(level, forwardURL string) (*ForwardHook, error) {
	if err := SetLevel(level); err != nil {
		return nil, err
	}
	logrus.SetReportCaller(true)
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if forwardURL == "" {
		return nil, nil
	}
	hook := NewForwardHook(forwardURL)
	logrus.AddHook(hook)
	return hook, nil
}

// SetLevel changes the level of the standard logger.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	return nil
}

type ForwardHook struct {
	URL     string
	Service string

	client *http.Client

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewForwardHook(url string) *ForwardHook {
	return &ForwardHook{
		URL:     url,
		Service: serviceName,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Fire posts the entry in the background. Failures are written to stderr
// rather than logged, so a dead collector cannot feed back into the hook.
// After Close, entries are dropped.
func (h *ForwardHook) Fire(entry *logrus.Entry) error {
	record := structs.LogRecord{
		Service: h.Service,
		Level:   entry.Level.String(),
		Message: entry.Message,
		Time:    entry.Time,
	}
	if entry.HasCaller() {
		record.Caller = entry.Caller.Function
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		if err := h.send(record); err != nil {
			fmt.Fprintf(os.Stderr, "[logs] failed to forward log event: %v\n", err)
		}
	}()

	return nil
}

// Levels define on which log levels this ForwardHook would trigger
func (h *ForwardHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.WarnLevel, logrus.ErrorLevel}
}

// Close stops accepting entries and blocks until every pending record has
// been sent or has failed.
func (h *ForwardHook) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	h.wg.Wait()
}

func (h *ForwardHook) send(record structs.LogRecord) error {
	b := new(bytes.Buffer)
	if err := json.NewEncoder(b).Encode(record); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, h.URL, b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}
