package rowstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(s *Store) []ID {
	out := make([]ID, 0, s.Len())
	for _, r := range s.Rows() {
		out = append(out, r.ID)
	}
	return out
}

func labels(s *Store) []string {
	out := make([]string, 0, s.Len())
	for _, r := range s.Rows() {
		out = append(out, r.Label)
	}
	return out
}

func flagged(s *Store) []ID {
	var out []ID
	for _, r := range s.Rows() {
		if r.Selected {
			out = append(out, r.ID)
		}
	}
	return out
}

func TestNew_Empty(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, ID(1), s.NextID())
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestCreate(t *testing.T) {
	for _, count := range []int{0, 1, 3, 1000} {
		s := New(WithSeed(1))
		s.Select(1)
		s.Create(count)

		require.Equal(t, count, s.Len())
		seen := make(map[ID]bool)
		for _, id := range ids(s) {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		_, ok := s.Selected()
		assert.False(t, ok, "create must clear selection")
		assert.Empty(t, flagged(s))
	}
}

func TestCreate_NegativeCountIsEmpty(t *testing.T) {
	s := New()
	s.Create(-5)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, ID(1), s.NextID())
}

func TestCreate_IDsContinueAcrossCalls(t *testing.T) {
	s := New()
	s.Create(3)
	assert.Equal(t, []ID{1, 2, 3}, ids(s))
	s.Create(2)
	assert.Equal(t, []ID{4, 5}, ids(s))
	assert.Equal(t, ID(6), s.NextID())
}

func TestRunLarge(t *testing.T) {
	s := New()
	s.Create(5)
	s.Select(2)
	s.RunLarge(DefaultLargeCount)
	assert.Equal(t, DefaultLargeCount, s.Len())
	assert.Equal(t, ID(6), s.At(0).ID)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestGenerateRows_DoesNotTouchRows(t *testing.T) {
	s := New()
	s.Create(2)
	s.Select(2)

	got := s.GenerateRows(3)
	require.Len(t, got, 3)
	assert.Equal(t, ID(3), got[0].ID)
	assert.Equal(t, ID(5), got[2].ID)
	for _, r := range got {
		assert.False(t, r.Selected)
	}
	assert.Equal(t, []ID{1, 2}, ids(s))
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(2), sel)
	assert.Equal(t, ID(6), s.NextID())
}

func TestAppend(t *testing.T) {
	s := New()
	s.Create(4)
	before := s.Rows()
	s.Select(3)

	added := s.Append(5)
	require.Len(t, added, 5)
	require.Equal(t, 9, s.Len())
	for i, r := range before {
		assert.Same(t, r, s.At(i), "prior row %d replaced", i)
	}
	assert.Equal(t, added[0], s.At(4))
	assert.Equal(t, ID(5), added[0].ID)

	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(3), sel)
	assert.Equal(t, []ID{3}, flagged(s))
}

func TestAppend_Empty(t *testing.T) {
	s := New()
	s.Append(DefaultCount)
	assert.Equal(t, DefaultCount, s.Len())
	assert.Equal(t, ID(1), s.At(0).ID)
}

func TestUpdateEvery(t *testing.T) {
	s := New(WithSeed(7))
	s.Create(25)
	s.Select(11)
	before := s.Rows()
	oldLabels := labels(s)

	s.UpdateEvery(DefaultStride)

	for i, r := range s.Rows() {
		if i%10 == 0 {
			assert.Equal(t, oldLabels[i]+" !!!", r.Label, "index %d", i)
			assert.NotSame(t, before[i], r, "index %d should be a new row", i)
			assert.Equal(t, before[i].ID, r.ID)
		} else {
			assert.Equal(t, oldLabels[i], r.Label, "index %d", i)
			assert.Same(t, before[i], r, "index %d should be untouched", i)
		}
	}
	// Selected flag carried into the replacement row.
	assert.True(t, s.At(10).Selected)
	assert.Equal(t, oldLabels[0], before[0].Label, "old row must not be edited in place")
}

func TestUpdateEvery_Repeated(t *testing.T) {
	s := New()
	s.Create(3)
	s.UpdateEvery(2)
	s.UpdateEvery(2)
	assert.True(t, strings.HasSuffix(s.At(0).Label, " !!! !!!"))
	assert.False(t, strings.HasSuffix(s.At(1).Label, "!!!"))
	assert.True(t, strings.HasSuffix(s.At(2).Label, " !!! !!!"))
}

func TestUpdateEvery_EmptyAndBadStride(t *testing.T) {
	s := New()
	s.UpdateEvery(DefaultStride)
	assert.Equal(t, 0, s.Len())

	s.Create(3)
	s.UpdateEvery(0)
	for _, l := range labels(s) {
		assert.True(t, strings.HasSuffix(l, " !!!"))
	}
}

func TestSelect(t *testing.T) {
	s := New()
	s.Create(5)

	s.Select(2)
	assert.Equal(t, []ID{2}, flagged(s))
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(2), sel)

	s.Select(4)
	assert.Equal(t, []ID{4}, flagged(s))
	sel, _ = s.Selected()
	assert.Equal(t, ID(4), sel)
}

func TestSelect_UnknownIDKeepsStaleSelection(t *testing.T) {
	s := New()
	s.Create(3)
	s.Select(1)

	s.Select(99)
	assert.Empty(t, flagged(s), "flag clear still runs")
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(99), sel)
}

func TestDeleteRow(t *testing.T) {
	s := New()
	s.Create(3)
	require.True(t, s.DeleteRow(2))
	assert.Equal(t, []ID{1, 3}, ids(s))

	s.SwapRows(0, 1)
	assert.Equal(t, []ID{3, 1}, ids(s))
}

func TestDeleteRow_Missing(t *testing.T) {
	s := New()
	s.Create(3)
	s.Select(2)
	assert.False(t, s.DeleteRow(42))
	assert.Equal(t, []ID{1, 2, 3}, ids(s))
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(2), sel)
}

func TestDeleteRow_ClearsSelection(t *testing.T) {
	s := New()
	s.Create(3)
	s.Select(2)
	require.True(t, s.DeleteRow(2))
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, -1, s.IndexOf(2))
	assert.Equal(t, 2, s.Len())
}

func TestDeleteRow_OtherRowKeepsSelection(t *testing.T) {
	s := New()
	s.Create(3)
	s.Select(2)
	require.True(t, s.DeleteRow(3))
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(2), sel)
}

func TestDeleteByIndex(t *testing.T) {
	s := New()
	s.Create(4)
	require.NoError(t, s.DeleteByIndex(1))
	assert.Equal(t, []ID{1, 3, 4}, ids(s))
	require.NoError(t, s.DeleteByIndex(2))
	assert.Equal(t, []ID{1, 3}, ids(s))
}

func TestDeleteByIndex_OutOfRange(t *testing.T) {
	s := New()
	s.Create(2)
	for _, idx := range []int{-1, 2, 100} {
		err := s.DeleteByIndex(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
	assert.Equal(t, []ID{1, 2}, ids(s))
}

func TestDeleteByIndex_ClearsSelection(t *testing.T) {
	s := New()
	s.Create(3)
	s.Select(2)
	require.NoError(t, s.DeleteByIndex(1))
	_, ok := s.Selected()
	assert.False(t, ok)

	s.Select(3)
	require.NoError(t, s.DeleteByIndex(0))
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, ID(3), sel)
}

func TestSwapRows(t *testing.T) {
	s := New()
	s.Create(5)
	before := s.Rows()

	s.SwapRows(1, 3)
	assert.Equal(t, []ID{1, 4, 3, 2, 5}, ids(s))
	assert.Same(t, before[1], s.At(3))
	assert.Same(t, before[3], s.At(1))
}

func TestSwapRows_NoOps(t *testing.T) {
	tests := []struct {
		name string
		n, m int
	}{
		{"same index", 2, 2},
		{"n out of range", 5, 1},
		{"m out of range", 1, 5},
		{"benchmark swap on short table", 998, 1},
		{"negative", -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Create(5)
			s.SwapRows(tt.n, tt.m)
			assert.Equal(t, []ID{1, 2, 3, 4, 5}, ids(s))
		})
	}
}

func TestSwapRows_BenchmarkPositions(t *testing.T) {
	s := New()
	s.Create(DefaultCount)
	s.SwapRows(1, 998)
	assert.Equal(t, ID(999), s.At(1).ID)
	assert.Equal(t, ID(2), s.At(998).ID)
}

func TestClear(t *testing.T) {
	s := New()
	s.Create(10)
	s.Select(5)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	_, ok := s.Selected()
	assert.False(t, ok)

	s.Create(2)
	assert.Equal(t, []ID{11, 12}, ids(s))
}

func TestRows_IsCopy(t *testing.T) {
	s := New()
	s.Create(3)
	rows := s.Rows()
	rows[0], rows[2] = rows[2], rows[0]
	assert.Equal(t, []ID{1, 2, 3}, ids(s))
}

func TestSeed_Reproducible(t *testing.T) {
	a := New(WithSeed(42))
	b := New(WithSeed(42))
	a.Create(100)
	b.Create(100)
	assert.Equal(t, labels(a), labels(b))
}

func TestRow_String(t *testing.T) {
	assert.Equal(t, "7 odd red car", Row{ID: 7, Label: "odd red car"}.String())
	assert.Equal(t, "7 odd red car *", Row{ID: 7, Label: "odd red car", Selected: true}.String())
}
