package frontier

import (
	"path/filepath"
	"testing"
)

func frontiers(t *testing.T) map[string]Frontier {
	t.Helper()

	sq, err := NewSQLite(filepath.Join(t.TempDir(), "frontier.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error: %v", err)
	}

	return map[string]Frontier{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestFrontierFIFO(t *testing.T) {
	for name, f := range frontiers(t) {
		t.Run(name, func(t *testing.T) {
			defer f.Close()

			urls := []string{"https://x.test/a", "https://x.test/b", "https://x.test/c"}
			for i, u := range urls {
				if err := f.Push(Entry{URL: u, Depth: i}); err != nil {
					t.Fatalf("Push(%s) error: %v", u, err)
				}
			}

			n, err := f.Len()
			if err != nil {
				t.Fatalf("Len() error: %v", err)
			}
			if n != 3 {
				t.Fatalf("Len() = %d, want 3", n)
			}

			for i, want := range urls {
				e, ok, err := f.Pop()
				if err != nil {
					t.Fatalf("Pop() error: %v", err)
				}
				if !ok {
					t.Fatalf("Pop() empty at %d", i)
				}
				if e.URL != want || e.Depth != i {
					t.Errorf("Pop() = %+v, want {%s %d}", e, want, i)
				}
			}

			if _, ok, _ := f.Pop(); ok {
				t.Error("Pop() on drained frontier returned an entry")
			}
		})
	}
}

func TestFrontierDuplicatesTolerated(t *testing.T) {
	for name, f := range frontiers(t) {
		t.Run(name, func(t *testing.T) {
			defer f.Close()

			f.Push(Entry{URL: "https://x.test/a", Depth: 1})
			f.Push(Entry{URL: "https://x.test/a", Depth: 2})

			n, _ := f.Len()
			if n != 2 {
				t.Errorf("Len() = %d, want 2 (queue keeps duplicates)", n)
			}
		})
	}
}

func TestFrontierVisited(t *testing.T) {
	for name, f := range frontiers(t) {
		t.Run(name, func(t *testing.T) {
			defer f.Close()

			seen, err := f.Visited("https://x.test/a")
			if err != nil {
				t.Fatalf("Visited() error: %v", err)
			}
			if seen {
				t.Error("fresh frontier reports URL as visited")
			}

			if err := f.MarkVisited("https://x.test/a"); err != nil {
				t.Fatalf("MarkVisited() error: %v", err)
			}
			// marking twice is fine
			if err := f.MarkVisited("https://x.test/a"); err != nil {
				t.Fatalf("MarkVisited() repeat error: %v", err)
			}

			seen, _ = f.Visited("https://x.test/a")
			if !seen {
				t.Error("Visited() = false after MarkVisited")
			}
			seen, _ = f.Visited("https://x.test/b")
			if seen {
				t.Error("Visited() = true for unmarked URL")
			}
		})
	}
}

func TestFrontierPushEmptyURL(t *testing.T) {
	for name, f := range frontiers(t) {
		t.Run(name, func(t *testing.T) {
			defer f.Close()
			if err := f.Push(Entry{}); err == nil {
				t.Error("Push() with empty URL succeeded")
			}
		})
	}
}
