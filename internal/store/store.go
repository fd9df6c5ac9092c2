package store

import (
	"bytes"
	"sync"
	"sync/atomic"
	"time"

	"github.com/strandkv/strand/internal/command"
)

// Entry is one stored unit: a byte-string value and an optional absolute
// expiration in milliseconds since the unix epoch. An entry without a TTL
// never expires.
type Entry struct {
	Val      []byte
	ExpireAt int64
	HasTTL   bool
}

// expired reports whether the entry is logically dead at nowMS.
func (e Entry) expired(nowMS int64) bool {
	return e.HasTTL && e.ExpireAt < nowMS
}

// Store owns the table. All external access goes through Get and Set;
// entries are never handed out by reference.
type Store struct {
	// mu is the single writer lock. Serialization is global, not
	// per-key: a write on one key waits for any in-flight write on any
	// other key to finish publishing.
	mu sync.Mutex

	// snap is the currently published snapshot. Readers load it without
	// taking mu and may observe a just-slightly-stale table relative to
	// a write that has not published yet.
	snap atomic.Pointer[map[string]Entry]

	now func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	empty := make(map[string]Entry)
	s.snap.Store(&empty)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the value stored under key. The read path does
// not evaluate expiration; a logically expired entry that was never
// re-written stays visible here.
func (s *Store) Get(key []byte) ([]byte, bool) {
	entry, ok := (*s.snap.Load())[string(key)]
	if !ok {
		return nil, false
	}
	return bytes.Clone(entry.Val), true
}

// SetResult reports the outcome of a Set.
type SetResult struct {
	// Written is false when an NX/XX condition rejected the write; the
	// table was not mutated beyond a possible expired-entry eviction.
	Written bool

	// Prev is the value the key held before this call, captured after
	// the expiration check. HadPrev distinguishes "held no value" from
	// an empty value.
	Prev    []byte
	HadPrev bool
}

// Set executes one SET against the table.
//
// The current entry is read from the published snapshot before the
// writer lock is taken, so it may be stale relative to a concurrent
// write that publishes in between; the condition and the KEEPTTL carry
// are evaluated against that captured entry. An entry found expired is
// removed from the table as its own published step, then treated as
// absent for the rest of the call. This is the system's only
// expiration-eviction path.
func (s *Store) Set(opts command.Set) SetResult {
	nowMS := s.now().UnixMilli()
	key := string(opts.Key)

	old, hadOld := (*s.snap.Load())[key]
	if hadOld && old.expired(nowMS) {
		s.publish(func(next map[string]Entry) {
			delete(next, key)
		})
		old, hadOld = Entry{}, false
	}

	if (opts.Cond == command.CondNX && hadOld) || (opts.Cond == command.CondXX && !hadOld) {
		return SetResult{}
	}

	entry := Entry{Val: bytes.Clone(opts.Val)}
	switch opts.Expire.Kind {
	case command.ExpireEX:
		entry.ExpireAt, entry.HasTTL = nowMS+opts.Expire.Value*1000, true
	case command.ExpirePX:
		entry.ExpireAt, entry.HasTTL = nowMS+opts.Expire.Value, true
	case command.ExpireEXAT:
		entry.ExpireAt, entry.HasTTL = opts.Expire.Value*1000, true
	case command.ExpirePXAT:
		entry.ExpireAt, entry.HasTTL = opts.Expire.Value, true
	case command.ExpireKeepTTL:
		entry.ExpireAt, entry.HasTTL = old.ExpireAt, old.HasTTL
	}

	// Replacing the old entry and inserting the new one become visible
	// as a single published unit.
	s.publish(func(next map[string]Entry) {
		next[key] = entry
	})

	res := SetResult{Written: true}
	if hadOld {
		res.Prev, res.HadPrev = old.Val, true
	}
	return res
}

// Len returns the number of published entries, expired or not.
func (s *Store) Len() int {
	return len(*s.snap.Load())
}

// publish builds the next snapshot from the current one under the writer
// lock and swaps it in atomically.
func (s *Store) publish(mutate func(next map[string]Entry)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := *s.snap.Load()
	next := make(map[string]Entry, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	mutate(next)
	s.snap.Store(&next)
}
