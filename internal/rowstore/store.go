package rowstore

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
)

// Default counts and stride used when callers have no preference.
const (
	DefaultCount      = 1000
	DefaultLargeCount = 10000
	DefaultStride     = 10
)

// ErrIndexOutOfRange is returned by DeleteByIndex for an index outside
// [0, Len()).
var ErrIndexOutOfRange = errors.New("row index out of range")

// Store owns the rows, the selection and the id counter.
type Store struct {
	rows        []*Row
	selected    ID
	hasSelected bool
	nextID      ID
	labels      *Labeler
	log         *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithRand makes label generation draw from rng.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.labels = NewLabeler(rng) }
}

// WithSeed makes label generation reproducible for a given seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithLogger sets the logger used for debug-level operation logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty store whose first generated row gets ID 1.
func New(opts ...Option) *Store {
	s := &Store{
		nextID: 1,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	if s.labels == nil {
		s.labels = NewLabeler(nil)
	}
	return s
}

// GenerateRows builds count new unselected rows, consuming one ID each.
// It does not touch the stored rows or the selection.
func (s *Store) GenerateRows(count int) []*Row {
	if count < 0 {
		count = 0
	}
	rows := make([]*Row, count)
	for i := range rows {
		rows[i] = &Row{ID: s.nextID, Label: s.labels.Label()}
		s.nextID++
	}
	return rows
}

// Create replaces all rows with count generated rows and clears the selection.
func (s *Store) Create(count int) {
	s.rows = s.GenerateRows(count)
	s.clearSelection()
	s.log.Debug("create", "count", count, "next_id", int(s.nextID))
}

// RunLarge is Create under another name; callers pass DefaultLargeCount.
func (s *Store) RunLarge(count int) {
	s.Create(count)
}

// Append adds count generated rows after the existing ones and returns the
// new rows. The selection is kept.
func (s *Store) Append(count int) []*Row {
	added := s.GenerateRows(count)
	s.rows = append(s.rows, added...)
	s.log.Debug("append", "count", count, "len", len(s.rows))
	return added
}

// UpdateEvery appends " !!!" to the label of rows at indices 0, stride,
// 2*stride and so on. Each touched row is replaced by a new Row value.
// A stride below 1 is treated as 1.
func (s *Store) UpdateEvery(stride int) {
	if stride < 1 {
		stride = 1
	}
	for i := 0; i < len(s.rows); i += stride {
		r := *s.rows[i]
		r.Label += " !!!"
		s.rows[i] = &r
	}
	s.log.Debug("update", "stride", stride, "len", len(s.rows))
}

// Select records id as the selection, clears the selected flag on the
// previously flagged row and sets it on the row with that id. An unknown id
// leaves no row flagged while Selected still reports it.
func (s *Store) Select(id ID) {
	s.selected, s.hasSelected = id, true
	for _, r := range s.rows {
		if r.Selected {
			r.Selected = false
			break
		}
	}
	if i := s.IndexOf(id); i >= 0 {
		s.rows[i].Selected = true
	}
	s.log.Debug("select", "id", int(id))
}

// DeleteRow removes the first row with the given id. It reports whether a
// row was removed. Deleting the selected row clears the selection.
func (s *Store) DeleteRow(id ID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.removeAt(i)
	s.log.Debug("delete", "id", int(id), "len", len(s.rows))
	return true
}

// DeleteByIndex removes the row at index. Out-of-range indices return
// ErrIndexOutOfRange and leave the store unchanged. Deleting the selected
// row clears the selection, as DeleteRow does.
func (s *Store) DeleteByIndex(index int) error {
	if index < 0 || index >= len(s.rows) {
		return fmt.Errorf("delete index %d of %d: %w", index, len(s.rows), ErrIndexOutOfRange)
	}
	s.removeAt(index)
	s.log.Debug("delete index", "index", index, "len", len(s.rows))
	return nil
}

func (s *Store) removeAt(i int) {
	id := s.rows[i].ID
	s.rows = slices.Delete(s.rows, i, i+1)
	if s.hasSelected && s.selected == id {
		s.clearSelection()
	}
}

// SwapRows exchanges the rows at n and m when both are valid indices and is
// a no-op otherwise.
func (s *Store) SwapRows(n, m int) {
	if n < 0 || m < 0 || n >= len(s.rows) || m >= len(s.rows) {
		return
	}
	s.rows[n], s.rows[m] = s.rows[m], s.rows[n]
	s.log.Debug("swap", "n", n, "m", m)
}

// Clear drops all rows and the selection. The id counter keeps going.
func (s *Store) Clear() {
	s.rows = nil
	s.clearSelection()
	s.log.Debug("clear", "next_id", int(s.nextID))
}

func (s *Store) clearSelection() {
	s.selected, s.hasSelected = 0, false
}

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Rows returns the rows in display order. The slice is a copy; the Row
// pointers are shared with the store and must be treated as read-only.
func (s *Store) Rows() []*Row { return slices.Clone(s.rows) }

// At returns the row at index i. It panics if i is out of range.
func (s *Store) At(i int) *Row { return s.rows[i] }

// IndexOf returns the position of the first row with id, or -1.
func (s *Store) IndexOf(id ID) int {
	return slices.IndexFunc(s.rows, func(r *Row) bool { return r.ID == id })
}

// Selected returns the recorded selection. The id may name a row that is
// no longer present if it was selected while absent.
func (s *Store) Selected() (ID, bool) { return s.selected, s.hasSelected }

// NextID returns the id the next generated row will receive.
func (s *Store) NextID() ID { return s.nextID }
