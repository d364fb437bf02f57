package store

import (
	"sync"
	"time"

	"github.com/mkessler/stemtutor/internal/logger"
)

// CommitQueue serializes read-modify-write cycles against the underlying
// store, one single-writer goroutine per collection. Without it, two
// in-flight requests against the same collection can both read the
// pre-mutation document and the second write silently discards the first.
// Callers block until their commit ran, so every operation stays
// synchronous from the caller's perspective.
type CommitQueue struct {
	store  Store
	buffer int

	mu     sync.Mutex
	lanes  map[string]chan commit
	closed bool
	wg     sync.WaitGroup
	log    *logger.Logger
}

type commit struct {
	fn   func(Store) error
	done chan error
}

// NewCommitQueue wraps a store. buffer is the per-collection channel
// capacity; submissions beyond it block until the writer catches up.
func NewCommitQueue(s Store, buffer int) *CommitQueue {
	if buffer <= 0 {
		buffer = 16
	}
	return &CommitQueue{
		store:  s,
		buffer: buffer,
		lanes:  make(map[string]chan commit),
		log:    logger.Default().WithPrefix("commit_queue"),
	}
}

// Do runs fn on the collection's writer goroutine and returns its error.
// All access to a collection, reads included, goes through Do: a read
// overlapping a file rewrite would otherwise observe a torn document.
func (q *CommitQueue) Do(collection string, fn func(Store) error) error {
	lane, err := q.lane(collection)
	if err != nil {
		return err
	}
	c := commit{fn: fn, done: make(chan error, 1)}
	lane <- c
	return <-c.done
}

func (q *CommitQueue) lane(collection string) (chan commit, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	if ch, ok := q.lanes[collection]; ok {
		return ch, nil
	}

	ch := make(chan commit, q.buffer)
	q.lanes[collection] = ch
	q.wg.Add(1)
	go q.run(collection, ch)
	q.log.Debug("started writer for collection %s", collection)
	return ch, nil
}

func (q *CommitQueue) run(collection string, ch chan commit) {
	defer q.wg.Done()
	log := q.log.WithField("collection", collection)
	for c := range ch {
		start := time.Now()
		err := c.fn(q.store)
		if err != nil {
			log.Warn("commit failed after %v: %v", time.Since(start), err)
		}
		c.done <- err
	}
	log.Debug("writer stopped")
}

// Close stops all collection writers after draining pending commits.
func (q *CommitQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for _, ch := range q.lanes {
		close(ch)
	}
	q.mu.Unlock()
	q.wg.Wait()
	q.log.Debug("all writers stopped")
}
