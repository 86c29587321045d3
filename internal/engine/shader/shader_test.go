package shader

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

type testUniform int

const (
	uniformModel testUniform = iota
	uniformView
	uniformMissing
)

func TestResolveCachesLocationsByEnum(t *testing.T) {
	calls := map[string]int{}
	lookup := func(name string) int32 {
		calls[name]++
		switch name {
		case "uModel":
			return 3
		case "uView":
			return 7
		default:
			return -1
		}
	}

	p := &Program[testUniform]{
		names: []string{"uModel", "uView", "uMissing"},
	}
	p.locs = resolve(p.names, lookup)

	if got := p.Loc(uniformModel); got != 3 {
		t.Errorf("expected uModel at 3, got %d", got)
	}
	if got := p.Loc(uniformView); got != 7 {
		t.Errorf("expected uView at 7, got %d", got)
	}
	if got := p.Loc(uniformMissing); got != -1 {
		t.Errorf("expected inactive uniform at -1, got %d", got)
	}
	if got := p.Loc(testUniform(42)); got != -1 {
		t.Errorf("expected unknown enum at -1, got %d", got)
	}

	// Repeated lookups hit the cache, not GL.
	for i := 0; i < 10; i++ {
		p.Loc(uniformModel)
	}
	for name, n := range calls {
		if n != 1 {
			t.Errorf("uniform %s looked up %d times", name, n)
		}
	}
}

func TestProgramUses(t *testing.T) {
	p := &Program[testUniform]{vert: "lit.vert", frag: "lit.frag"}
	if !p.Uses("lit.frag") || !p.Uses("lit.vert") {
		t.Error("expected program to use its own sources")
	}
	if p.Uses("sky.frag") {
		t.Error("expected program not to use sky.frag")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "particle.frag")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case name := <-w.Changed():
			if name == "particle.frag" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change notification")
		}
	}
}

func TestWatcherDrainDedups(t *testing.T) {
	w := &Watcher{changed: make(chan string, 8)}
	w.changed <- "a.vert"
	w.changed <- "a.vert"
	w.changed <- "b.frag"

	got := w.Drain()
	if !slices.Equal(got, []string{"a.vert", "b.frag"}) {
		t.Errorf("expected [a.vert b.frag], got %v", got)
	}
	if again := w.Drain(); len(again) != 0 {
		t.Errorf("expected empty drain, got %v", again)
	}
}
