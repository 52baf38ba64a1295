package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"cclex/internal/diag"
	"cclex/internal/token"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) count(stage Stage, status Status) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.events {
		if ev.Stage == stage && ev.Status == status {
			n++
		}
	}
	return n
}

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.c"), "int b;")
	writeFile(t, filepath.Join(dir, "a.h"), "void a(void);")
	writeFile(t, filepath.Join(dir, "sub", "c.c"), "return 1.;")
	writeFile(t, filepath.Join(dir, "notes.txt"), "@@@")
	writeFile(t, filepath.Join(dir, ".cclex", "cache", "x.c"), "ignored")
	return dir
}

func TestListSourceFiles(t *testing.T) {
	dir := makeTree(t)
	files, err := ListSourceFiles(dir, []string{".c", ".h"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.ToSlash(filepath.Join(dir, "a.h")),
		filepath.ToSlash(filepath.Join(dir, "b.c")),
		filepath.ToSlash(filepath.Join(dir, "sub", "c.c")),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("file %d: got %s, want %s", i, files[i], want[i])
		}
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := makeTree(t)
	sink := &recordingSink{}
	fs, results, err := TokenizeDir(context.Background(), dir, Options{
		MaxDiagnostics: 10,
		Jobs:           2,
		Extensions:     []string{".c", ".h"},
		Progress:       sink,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		f := fs.Get(r.FileID)
		if f.Path != r.Path {
			t.Errorf("result path %q does not match file %q", r.Path, f.Path)
		}
		if last := r.Tokens[len(r.Tokens)-1]; last.Kind != token.EOF {
			t.Errorf("%s: missing EOF", r.Path)
		}
	}
	if items := results[2].Bag.Items(); len(items) != 1 || items[0].Code != diag.LexBadNumber {
		t.Errorf("sub/c.c: unexpected diagnostics %+v", items)
	}
	if got := sink.count(StageLex, StatusDone); got != 3 {
		t.Errorf("expected 3 done events, got %d", got)
	}
	if got := sink.count(StageLoad, StatusQueued); got != 3 {
		t.Errorf("expected 3 queued events, got %d", got)
	}
}

func TestTokenizeDirLoadFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.c"), "int x;")
	if err := os.Symlink(filepath.Join(dir, "missing-target"), filepath.Join(dir, "broken.c")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	fs, results, err := TokenizeDir(context.Background(), dir, Options{MaxDiagnostics: 10, Extensions: []string{".c"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	broken := results[0]
	if broken.Tokens != nil {
		t.Errorf("failed load must have no tokens")
	}
	items := broken.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("expected IO4001, got %+v", items)
	}
	if fs.Get(items[0].Primary.File).Path != broken.Path {
		t.Errorf("diagnostic not attached to the failed path")
	}
	if results[1].Bag.Len() != 0 || len(results[1].Tokens) != 4 {
		t.Errorf("ok.c affected by sibling failure: %+v", results[1])
	}
}

func TestTokenizeDirCancelled(t *testing.T) {
	dir := makeTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := TokenizeDir(ctx, dir, Options{Extensions: []string{".c"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	fs, results, err := TokenizeDir(context.Background(), t.TempDir(), Options{Extensions: []string{".c"}})
	if err != nil || results != nil || fs == nil {
		t.Fatalf("unexpected empty-dir result: %v %v %v", fs, results, err)
	}
}
