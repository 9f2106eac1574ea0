package dotenv

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"envstore/internal/loadlog"
	"envstore/internal/state"
)

const (
	DefaultInitialCapacity = 10
	DefaultMaxLineLength   = 1024
)

// ErrIO reports that a file could not be opened or read.
var ErrIO = errors.New("io error")

type Config struct {
	InitialCapacity int
	// MaxLineLength is in bytes; the remainder of a longer line is discarded.
	MaxLineLength    int
	KeepUnterminated bool
}

func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultInitialCapacity,
		MaxLineLength:   DefaultMaxLineLength,
	}
}

// Stats summarizes a single load. Skipped counts blank, comment and
// malformed lines alike.
type Stats struct {
	Lines     int
	Entries   int
	Skipped   int
	Truncated int
}

// Env is the application's handle on one shared store.
type Env struct {
	cfg      Config
	store    *state.VarStore
	resolver Resolver
	events   *loadlog.Logger
}

// New returns an Env over store. events may be nil.
func New(cfg Config, store *state.VarStore, events *loadlog.Logger) *Env {
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = DefaultMaxLineLength
	}
	return &Env{
		cfg:      cfg,
		store:    store,
		resolver: Resolver{KeepUnterminated: cfg.KeepUnterminated},
		events:   events,
	}
}

// Load reads path line by line into the store. Entries committed before a
// failure stay in the store.
func (e *Env) Load(path string) error {
	_, err := e.LoadFile(path)
	return err
}

func (e *Env) LoadFile(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, e.fail(path, Stats{}, fmt.Errorf("%w: open %s: %w", ErrIO, path, err))
	}
	defer func() { _ = f.Close() }()
	return e.LoadReader(path, f)
}

// LoadReader loads entries from r; name identifies the source in logs and errors.
func (e *Env) LoadReader(name string, r io.Reader) (Stats, error) {
	var st Stats
	if err := e.store.Initialize(e.cfg.InitialCapacity); err != nil {
		return st, e.fail(name, st, fmt.Errorf("initialize store: %w", err))
	}
	e.events.Log(loadlog.Record{Type: loadlog.TypeLoadStart, Path: name})

	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if raw != "" {
			st.Lines++
			if err := e.loadLine(name, st.Lines, raw, &st); err != nil {
				return st, e.fail(name, st, err)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return st, e.fail(name, st, fmt.Errorf("%w: read %s: %w", ErrIO, name, readErr))
		}
	}

	slog.Info("env loaded", "path", name, "lines", st.Lines, "entries", st.Entries, "skipped", st.Skipped)
	e.events.Log(loadlog.Record{Type: loadlog.TypeLoadDone, Path: name, Entries: st.Entries, Skipped: st.Skipped})
	return st, nil
}

func (e *Env) loadLine(name string, lineNo int, raw string, st *Stats) error {
	line := StripTerminator(raw)
	if len(line) > e.cfg.MaxLineLength {
		line = line[:e.cfg.MaxLineLength]
		st.Truncated++
		slog.Debug("line truncated", "path", name, "line", lineNo, "max", e.cfg.MaxLineLength)
	}

	// Full-line comments are detected before any trimming.
	if line == "" || line[0] == '#' {
		st.Skipped++
		return nil
	}

	key, value, ok := Split(StripComment(line))
	if !ok {
		st.Skipped++
		slog.Debug("skipping malformed line", "path", name, "line", lineNo)
		e.events.Log(loadlog.Record{Type: loadlog.TypeSkip, Path: name, Line: lineNo})
		return nil
	}

	if err := e.store.Insert(key, e.resolver.Resolve(value, e.store)); err != nil {
		return fmt.Errorf("insert %s (line %d): %w", key, lineNo, err)
	}
	st.Entries++
	e.events.Log(loadlog.Record{Type: loadlog.TypeEntry, Path: name, Line: lineNo, Key: key})
	return nil
}

func (e *Env) fail(name string, st Stats, err error) error {
	slog.Warn("env load failed", "path", name, "entries", st.Entries, "err", err)
	e.events.Log(loadlog.Record{Type: loadlog.TypeLoadError, Path: name, Entries: st.Entries, Message: err.Error()})
	return err
}

// Get returns the first value loaded for key.
func (e *Env) Get(key string) (string, bool) {
	return e.store.Lookup(key)
}

// Entries returns every loaded entry in load order.
func (e *Env) Entries() []state.Entry {
	return e.store.Entries()
}

// Release drops all entries; a later Load initializes the store again.
func (e *Env) Release() {
	e.store.Reset()
	e.events.Log(loadlog.Record{Type: loadlog.TypeReset})
}
