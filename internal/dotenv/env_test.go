package dotenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"envstore/internal/loadlog"
	"envstore/internal/state"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	return path
}

func newTestEnv() *Env {
	return New(DefaultConfig(), state.NewVarStore(0), nil)
}

func mustGet(t *testing.T, e *Env, key, want string) {
	t.Helper()
	got, ok := e.Get(key)
	if !ok {
		t.Fatalf("%s absent", key)
	}
	if got != want {
		t.Fatalf("%s=%q want %q", key, got, want)
	}
}

func TestEnv_LoadBasicFile(t *testing.T) {
	path := writeEnvFile(t, strings.Join([]string{
		"# full comment",
		"",
		"PLAIN=value",
		"  SPACED  =   padded value   ",
		`QUOTED="  inner  "`,
		"INLINE=value # comment",
		`PROTECTED="value # not comment"`,
		"no separator here",
		"=orphan",
		"EMPTY=",
		"URL=http://example.com/?a=b",
		"CRLF=windows\r",
	}, "\n")+"\n")

	e := newTestEnv()
	st, err := e.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	mustGet(t, e, "PLAIN", "value")
	mustGet(t, e, "SPACED", "padded value")
	mustGet(t, e, "QUOTED", "  inner  ")
	mustGet(t, e, "INLINE", "value")
	mustGet(t, e, "PROTECTED", "value # not comment")
	mustGet(t, e, "EMPTY", "")
	mustGet(t, e, "URL", "http://example.com/?a=b")
	mustGet(t, e, "CRLF", "windows")

	if st.Entries != 8 || st.Skipped != 4 || st.Lines != 12 {
		t.Fatalf("stats=%+v", st)
	}
	if got := len(e.Entries()); got != 8 {
		t.Fatalf("entries=%d", got)
	}
}

func TestEnv_FirstInsertedWins(t *testing.T) {
	e := newTestEnv()
	if _, err := e.LoadReader("dup", strings.NewReader("A=first\nA=second\n")); err != nil {
		t.Fatalf("load: %v", err)
	}
	mustGet(t, e, "A", "first")
	if got := len(e.Entries()); got != 2 {
		t.Fatalf("entries=%d", got)
	}
}

func TestEnv_PlaceholdersResolveInOrder(t *testing.T) {
	e := newTestEnv()
	in := "A=foo\nB=\"${A}\"\nC=${D}\nD=late\nE=${A}-${B}\nF=${A\n"
	if _, err := e.LoadReader("refs", strings.NewReader(in)); err != nil {
		t.Fatalf("load: %v", err)
	}
	mustGet(t, e, "B", "foo")
	mustGet(t, e, "C", "")
	mustGet(t, e, "E", "foo-foo")
	mustGet(t, e, "F", "")
}

func TestEnv_KeepUnterminated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeepUnterminated = true
	e := New(cfg, state.NewVarStore(0), nil)
	if _, err := e.LoadReader("tail", strings.NewReader("A=x${open\n")); err != nil {
		t.Fatalf("load: %v", err)
	}
	mustGet(t, e, "A", "x${open")
}

func TestEnv_OnlySkippableLines(t *testing.T) {
	e := newTestEnv()
	st, err := e.LoadReader("none", strings.NewReader("# c\n\njunk\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Entries != 0 || len(e.Entries()) != 0 {
		t.Fatalf("stats=%+v", st)
	}
}

func TestEnv_GrowsPastInitialCapacity(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&sb, "K%d=v%d\n", i, i)
	}
	e := newTestEnv()
	if err := e.Load(writeEnvFile(t, sb.String())); err != nil {
		t.Fatalf("load: %v", err)
	}
	for i := 0; i < 11; i++ {
		mustGet(t, e, fmt.Sprintf("K%d", i), fmt.Sprintf("v%d", i))
	}
}

func TestEnv_TruncatesLongLines(t *testing.T) {
	long := "LONG=" + strings.Repeat("x", 2000)
	e := newTestEnv()
	st, err := e.LoadReader("long", strings.NewReader(long+"\nNEXT=ok\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	v, _ := e.Get("LONG")
	if len(v) != DefaultMaxLineLength-len("LONG=") {
		t.Fatalf("len=%d", len(v))
	}
	mustGet(t, e, "NEXT", "ok")
	if st.Truncated != 1 {
		t.Fatalf("stats=%+v", st)
	}
}

func TestEnv_MissingFile(t *testing.T) {
	e := newTestEnv()
	err := e.Load(filepath.Join(t.TempDir(), "missing.env"))
	if !errors.Is(err, ErrIO) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v", err)
	}
}

func TestEnv_AllocationFailureKeepsCommittedEntries(t *testing.T) {
	e := New(DefaultConfig(), state.NewVarStore(2), nil)
	_, err := e.LoadReader("full", strings.NewReader("A=1\nB=2\nC=3\n"))
	if !errors.Is(err, state.ErrAllocation) {
		t.Fatalf("err=%v", err)
	}
	mustGet(t, e, "A", "1")
	mustGet(t, e, "B", "2")
	if _, ok := e.Get("C"); ok {
		t.Fatalf("C should not be loaded")
	}
}

func TestEnv_ReleaseAndReload(t *testing.T) {
	path := writeEnvFile(t, "A=1\n")
	e := newTestEnv()
	if err := e.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	e.Release()
	if _, ok := e.Get("A"); ok {
		t.Fatalf("A present after release")
	}
	if err := e.Load(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	mustGet(t, e, "A", "1")
}

func TestEnv_ConcurrentLoadsOfDisjointKeys(t *testing.T) {
	var a, b strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&a, "A%d=a%d\n", i, i)
		fmt.Fprintf(&b, "B%d=b%d\n", i, i)
	}
	pathA := writeEnvFile(t, a.String())
	pathB := writeEnvFile(t, b.String())

	e := newTestEnv()
	var wg sync.WaitGroup
	for _, p := range []string{pathA, pathB} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			if err := e.Load(p); err != nil {
				t.Errorf("load %s: %v", p, err)
			}
		}(p)
	}
	wg.Wait()

	for i := 0; i < 100; i++ {
		mustGet(t, e, fmt.Sprintf("A%d", i), fmt.Sprintf("a%d", i))
		mustGet(t, e, fmt.Sprintf("B%d", i), fmt.Sprintf("b%d", i))
	}
}

func TestEnv_WritesEvents(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "events.ndjson")
	events, err := loadlog.New(logPath, "run-test")
	if err != nil {
		t.Fatalf("loadlog: %v", err)
	}
	e := New(DefaultConfig(), state.NewVarStore(0), events)
	if _, err := e.LoadReader("ev", strings.NewReader("A=secret\njunk\n")); err != nil {
		t.Fatalf("load: %v", err)
	}
	e.Release()
	_ = events.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, typ := range []string{loadlog.TypeLoadStart, loadlog.TypeEntry, loadlog.TypeSkip, loadlog.TypeLoadDone, loadlog.TypeReset} {
		if !strings.Contains(out, `"type":"`+typ+`"`) {
			t.Fatalf("missing %s in %s", typ, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("value leaked into event log")
	}
}
