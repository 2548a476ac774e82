// Package frontier manages the pending queue and visited set of one crawl
// invocation. The queue is FIFO so traversal stays breadth-first, and the
// visited set is marked at pop-processing time, never at discovery: the
// same URL may sit in the queue more than once but is fetched at most once.
package frontier

import (
	"fmt"
	"sync"
)

// Entry is one queued unit of crawl work.
type Entry struct {
	URL   string
	Depth int
}

// Frontier is a FIFO crawl queue with a separate visited set. All state is
// local to one invocation and discarded on Close.
type Frontier interface {
	// Push appends an entry to the back of the queue. Duplicates are
	// tolerated; dedup happens against the visited set at processing time.
	Push(e Entry) error

	// Pop removes and returns the front entry. ok is false when the queue
	// is empty.
	Pop() (e Entry, ok bool, err error)

	// MarkVisited records that a URL has been taken for processing.
	MarkVisited(url string) error

	// Visited reports whether MarkVisited was called for url.
	Visited(url string) (bool, error)

	// Len returns the number of pending entries.
	Len() (int, error)

	// Close releases any resources held by the frontier.
	Close() error
}

// Memory is the default in-process Frontier.
type Memory struct {
	mu      sync.Mutex
	pending []Entry
	visited map[string]bool
}

// NewMemory returns an empty in-memory frontier.
func NewMemory() *Memory {
	return &Memory{visited: make(map[string]bool)}
}

func (m *Memory) Push(e Entry) error {
	if e.URL == "" {
		return fmt.Errorf("frontier: empty URL")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, e)
	return nil
}

func (m *Memory) Pop() (Entry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return Entry{}, false, nil
	}
	e := m.pending[0]
	m.pending = m.pending[1:]
	return e, true, nil
}

func (m *Memory) MarkVisited(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visited[url] = true
	return nil
}

func (m *Memory) Visited(url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visited[url], nil
}

func (m *Memory) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending), nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = nil
	m.visited = make(map[string]bool)
	return nil
}
