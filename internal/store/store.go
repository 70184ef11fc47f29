// Package store holds the single source of truth for the dashboard data
// layer. A Store serializes actions through a reducer, publishes immutable
// state snapshots, and mirrors committed state to a persistence adapter
// asynchronously. In-memory state is the authority; storage is a mirror.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"compdash/internal/core"
	"compdash/internal/storage"
	"compdash/internal/views"
)

// ImportReport summarizes one ImportCSV action: how many rows were admitted
// and which rows were rejected, with 1-based row numbers and reasons.
type ImportReport struct {
	Admitted int
	Rejects  []core.ImportRowError
}

// Result is the outcome of a committed action.
type Result struct {
	// State is the committed snapshot.
	State *State
	// Import is set for ImportCSV actions.
	Import *ImportReport
	// CSV is set for ExportCSV actions.
	CSV string
	// Warnings holds non-fatal persistence problems encountered
	// synchronously (corrupt slice on load).
	Warnings []*core.PersistenceWarning
	// Persisted delivers the outcome of the asynchronous mirror write: at
	// most one PersistenceWarning per dirty slice, then close. Awaiting it
	// is optional; the committed state never depends on it.
	Persisted <-chan error
}

// Subscriber receives every committed snapshot.
type Subscriber func(*State)

// Store is the reducer-driven state machine. One action is processed to
// completion before the next is accepted; concurrent readers always see a
// consistent snapshot.
type Store struct {
	mu      sync.Mutex
	state   *State
	adapter storage.Adapter
	logger  core.Logger

	subMu sync.RWMutex
	subs  map[string]Subscriber

	rev  uint64 // collections revision, bumped on every collection mutation
	memo viewMemo
}

// viewMemo caches the last derived-view computation keyed on the collections
// revision and criteria, so re-dispatching the same criteria does not
// recompute. The revision bumps on every committed action that touches a
// collection, including content-only changes like an update or a link edit.
type viewMemo struct {
	rev      uint64
	criteria views.Criteria
	view     DerivedView
	valid    bool
}

// New creates a store over the given adapter. A nil logger disables logging.
func New(adapter storage.Adapter, logger core.Logger) *Store {
	if logger == nil {
		logger = core.NopLogger()
	}
	s := &Store{
		state:   NewState(),
		adapter: adapter,
		logger:  logger,
		subs:    make(map[string]Subscriber),
	}
	s.state.View = s.deriveView(s.state)
	return s
}

// Snapshot returns the current committed state. The returned value is
// immutable by contract; callers must not modify it.
func (s *Store) Snapshot() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a callback invoked after every committed action, and
// returns its token plus a cancel function. Callbacks run synchronously on
// the dispatching goroutine, after the snapshot swap.
func (s *Store) Subscribe(fn Subscriber) (string, func()) {
	token := uuid.NewString()

	s.subMu.Lock()
	s.subs[token] = fn
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		delete(s.subs, token)
		s.subMu.Unlock()
	}
	return token, cancel
}

// Dispatch applies one action. On error the previous snapshot is untouched
// (atomic per action); on success the new snapshot is committed, mirrored to
// storage asynchronously, and fanned out to subscribers.
func (s *Store) Dispatch(action Action) (*Result, error) {
	s.mu.Lock()

	next := s.state.Clone()
	result := &Result{}

	ops, err := s.reduce(next, action, result)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("action rejected", "action", action.ActionType(), "error", err)
		return nil, err
	}

	if collectionsDirty(action, ops) {
		s.rev++
	}
	next.View = s.deriveView(next)
	s.state = next
	result.State = next
	result.Persisted = s.persist(next, ops)
	s.mu.Unlock()

	s.logger.Debug("action committed", "action", action.ActionType())
	s.notify(next)
	return result, nil
}

func (s *Store) notify(snapshot *State) {
	s.subMu.RLock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// collectionsDirty reports whether the action changed a record collection.
// Every collection mutation mirrors requirements or capabilities (or is a
// LoadCollections, which replaces both without mirroring), so the persist ops
// are an exact dirtiness signal.
func collectionsDirty(action Action, ops []persistOp) bool {
	if _, ok := action.(LoadCollections); ok {
		return true
	}
	for _, op := range ops {
		if op.key == storage.KeyRequirements || op.key == storage.KeyCapabilities {
			return true
		}
	}
	return false
}

// deriveView computes (or reuses) the filtered/sorted list and aggregates.
func (s *Store) deriveView(state *State) DerivedView {
	if s.memo.valid && s.memo.rev == s.rev && s.memo.criteria.Equal(state.Criteria) {
		return s.memo.view
	}

	view := DerivedView{
		Requirements: views.Apply(state.Requirements, state.Criteria),
		Aggregates:   views.Aggregate(state.Requirements),
	}
	s.memo = viewMemo{
		rev:      s.rev,
		criteria: state.Criteria.Clone(),
		view:     view,
		valid:    true,
	}
	return view
}

// persistOp is one pending mirror write (or delete) for a slice key.
type persistOp struct {
	key    string
	delete bool
}

// persist mirrors the dirty slices to the adapter in the background.
// Failures surface as PersistenceWarnings on the returned channel and in the
// log; they never roll back the committed state.
func (s *Store) persist(state *State, ops []persistOp) <-chan error {
	ch := make(chan error, len(ops))
	if len(ops) == 0 || s.adapter == nil {
		close(ch)
		return ch
	}

	// Marshal on the dispatching goroutine so the background write never
	// touches the (shared) snapshot.
	type write struct {
		persistOp
		data []byte
	}
	writes := make([]write, 0, len(ops))
	for _, op := range ops {
		w := write{persistOp: op}
		if !op.delete {
			data, err := s.marshalSlice(state, op.key)
			if err != nil {
				warn := &core.PersistenceWarning{Operation: "save", Key: op.key, Err: err}
				s.logger.Warn("marshal slice failed", "key", op.key, "error", err)
				ch <- warn
				continue
			}
			w.data = data
		}
		writes = append(writes, w)
	}

	go func() {
		defer close(ch)
		for _, w := range writes {
			var err error
			op := "save"
			if w.delete {
				op = "delete"
				err = s.adapter.Delete(w.key)
			} else {
				err = s.adapter.Save(w.key, w.data)
			}
			if err != nil {
				warn := &core.PersistenceWarning{Operation: op, Key: w.key, Err: err}
				s.logger.Warn("mirror write failed", "key", w.key, "operation", op, "error", err)
				ch <- warn
			}
		}
	}()
	return ch
}

func (s *Store) marshalSlice(state *State, key string) ([]byte, error) {
	var v any
	switch key {
	case storage.KeyRequirements:
		v = state.Requirements
	case storage.KeyCapabilities:
		v = state.Capabilities
	case storage.KeyCompanyProfile:
		v = state.Profile
	case storage.KeySettings:
		v = state.Settings
	case storage.KeyTheme:
		v = state.UI.Theme
	case storage.KeySidebar:
		v = state.UI.SidebarOpen
	default:
		return nil, fmt.Errorf("unknown slice key %q", key)
	}
	return yaml.Marshal(v)
}

// loadSlice reads and unmarshals one slice into out. It reports whether out
// now holds a cleanly loaded value; absence and corruption both return false
// so the caller keeps its defaults, with corruption additionally reported as
// a warning.
func (s *Store) loadSlice(key string, out any, result *Result) bool {
	data, err := s.adapter.Load(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			warn := &core.PersistenceWarning{Operation: "load", Key: key, Err: err}
			s.logger.Warn("load slice failed", "key", key, "error", err)
			result.Warnings = append(result.Warnings, warn)
		}
		return false
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		warn := &core.PersistenceWarning{Operation: "load", Key: key, Err: err}
		s.logger.Warn("corrupt slice, using defaults", "key", key, "error", err)
		result.Warnings = append(result.Warnings, warn)
		return false
	}
	return true
}
