package loadlog

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Event types written to the log.
const (
	TypeLoadStart = "load_start"
	TypeEntry     = "entry"
	TypeSkip      = "skip"
	TypeLoadDone  = "load_done"
	TypeLoadError = "load_error"
	TypeReset     = "reset"
)

// Record is one NDJSON line. Values are never recorded, only keys.
type Record struct {
	RunID     string `json:"run_id"`
	Timestamp string `json:"ts"`
	Type      string `json:"type"`
	Path      string `json:"path,omitempty"`
	Line      int    `json:"line,omitempty"`
	Key       string `json:"key,omitempty"`
	Entries   int    `json:"entries,omitempty"`
	Skipped   int    `json:"skipped,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Logger struct {
	mu    sync.Mutex
	runID string
	f     *os.File
	w     *bufio.Writer
}

func New(path, runID string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{
		runID: runID,
		f:     f,
		w:     bufio.NewWriterSize(f, 64*1024),
	}, nil
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w != nil {
		_ = l.w.Flush()
		l.w = nil
	}
	if l.f != nil {
		err := l.f.Close()
		l.f = nil
		return err
	}
	return nil
}

// Log writes rec, filling in RunID and Timestamp when empty. A nil Logger
// discards everything.
func (l *Logger) Log(rec Record) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.w == nil {
		return
	}
	if rec.RunID == "" {
		rec.RunID = l.runID
	}
	if rec.Timestamp == "" {
		rec.Timestamp = NowTS()
	}
	line, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_, _ = l.w.Write(append(line, '\n'))
	_ = l.w.Flush()
}

func NowTS() string { return time.Now().UTC().Format(time.RFC3339Nano) }
