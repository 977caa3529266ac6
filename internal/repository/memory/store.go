// Package memory is an in-process backend for the content repositories.
// A transaction holds the store lock and writes the live state directly,
// journaling the prior value of every record it touches; a failed
// transaction replays the journal, so it leaves no trace.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models/content"
	"coursehub/internal/domain/repositories"
)

type state struct {
	courses   map[string]*content.Course
	folders   map[string]*content.Folder
	files     map[string]*content.File
	reviews   map[string]*content.Review
	favorites map[string][]content.NodeRef
	order     map[string]int64 // insertion sequence per record id
	seq       int64

	undo *undoLog // set while a transaction runs
}

func newState() *state {
	return &state{
		courses:   make(map[string]*content.Course),
		folders:   make(map[string]*content.Folder),
		files:     make(map[string]*content.File),
		reviews:   make(map[string]*content.Review),
		favorites: make(map[string][]content.NodeRef),
		order:     make(map[string]int64),
	}
}

func (st *state) track(id string) {
	st.saveOrder(id)
	st.seq++
	st.order[id] = st.seq
}

func (st *state) untrack(id string) {
	st.saveOrder(id)
	delete(st.order, id)
}

// save* record a value before the running transaction changes it.
// Outside a transaction they do nothing.

func (st *state) saveCourse(id string) {
	if st.undo != nil {
		remember(st.undo.courses, st.courses, id, cloneCourse)
	}
}

func (st *state) saveFolder(id string) {
	if st.undo != nil {
		remember(st.undo.folders, st.folders, id, cloneFolder)
	}
}

func (st *state) saveFile(id string) {
	if st.undo != nil {
		remember(st.undo.files, st.files, id, cloneFile)
	}
}

func (st *state) saveReview(id string) {
	if st.undo != nil {
		remember(st.undo.reviews, st.reviews, id, cloneReview)
	}
}

func (st *state) saveFavorites(userID string) {
	if st.undo != nil {
		remember(st.undo.favorites, st.favorites, userID, func(refs []content.NodeRef) []content.NodeRef {
			return slices.Clone(refs)
		})
	}
}

func (st *state) saveOrder(id string) {
	if st.undo != nil {
		remember(st.undo.order, st.order, id, func(n int64) int64 { return n })
	}
}

type prior[V any] struct {
	value   V
	present bool
}

// undoLog holds the first-seen value of each record a transaction wrote
type undoLog struct {
	courses   map[string]prior[*content.Course]
	folders   map[string]prior[*content.Folder]
	files     map[string]prior[*content.File]
	reviews   map[string]prior[*content.Review]
	favorites map[string]prior[[]content.NodeRef]
	order     map[string]prior[int64]
	seq       int64
}

func newUndoLog(seq int64) *undoLog {
	return &undoLog{
		courses:   make(map[string]prior[*content.Course]),
		folders:   make(map[string]prior[*content.Folder]),
		files:     make(map[string]prior[*content.File]),
		reviews:   make(map[string]prior[*content.Review]),
		favorites: make(map[string]prior[[]content.NodeRef]),
		order:     make(map[string]prior[int64]),
		seq:       seq,
	}
}

func (u *undoLog) rollback(st *state) {
	restore(u.courses, st.courses)
	restore(u.folders, st.folders)
	restore(u.files, st.files)
	restore(u.reviews, st.reviews)
	restore(u.favorites, st.favorites)
	restore(u.order, st.order)
	st.seq = u.seq
}

func remember[V any](saved map[string]prior[V], live map[string]V, id string, clone func(V) V) {
	if _, ok := saved[id]; ok {
		return
	}
	v, ok := live[id]
	if ok {
		v = clone(v)
	}
	saved[id] = prior[V]{value: v, present: ok}
}

func restore[V any](saved map[string]prior[V], live map[string]V) {
	for id, p := range saved {
		if p.present {
			live[id] = p.value
		} else {
			delete(live, id)
		}
	}
}

func cloneCourse(c *content.Course) *content.Course {
	out := *c
	out.FolderIDs = slices.Clone(c.FolderIDs)
	out.FileIDs = slices.Clone(c.FileIDs)
	return &out
}

func cloneFolder(f *content.Folder) *content.Folder {
	out := *f
	out.SubfolderIDs = slices.Clone(f.SubfolderIDs)
	out.FileIDs = slices.Clone(f.FileIDs)
	return &out
}

func cloneFile(f *content.File) *content.File {
	out := *f
	return &out
}

func cloneReview(r *content.Review) *content.Review {
	out := *r
	return &out
}

// Store is the shared state behind the memory repositories
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

type txKey struct{}

type txState struct {
	store *Store
	state *state
}

// NewTransactionManager returns a transaction manager backed by store
func NewTransactionManager(store *Store) repositories.TransactionManager {
	return store
}

// ExecTx executes a function within a transaction
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	if s.txState(ctx) != nil {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return &domain.DependencyError{Dependency: "store", Op: "begin transaction", Retryable: true, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	undo := newUndoLog(s.state.seq)
	s.state.undo = undo
	committed := false
	defer func() {
		if !committed {
			undo.rollback(s.state)
		}
		s.state.undo = nil
	}()

	txCtx := context.WithValue(ctx, txKey{}, &txState{store: s, state: s.state})
	if err := fn(txCtx); err != nil {
		return err
	}

	committed = true
	return nil
}

func (s *Store) txState(ctx context.Context) *state {
	ts, ok := ctx.Value(txKey{}).(*txState)
	if !ok || ts.store != s {
		return nil
	}
	return ts.state
}

// do runs fn against the transaction carried by ctx, or against the
// committed state under the store lock.
func (s *Store) do(ctx context.Context, fn func(st *state) error) error {
	if st := s.txState(ctx); st != nil {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// sortByOrder sorts records by insertion sequence
func sortByOrder[T any](st *state, items []T, id func(T) string) {
	slices.SortFunc(items, func(a, b T) int {
		return cmp.Compare(st.order[id(a)], st.order[id(b)])
	})
}

func appendUnique(ids []string, id string) []string {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}
