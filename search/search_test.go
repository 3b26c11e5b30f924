package search

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/btree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCmp(key int, record int) int {
	return cmp.Compare(key, record)
}

// positioned orders list elements by value and then by position, so the first element at or
// after (t, -1) is the lower bound of t and the last at or before (t, len) is its upper bound.
type positioned struct {
	value    int
	position int
}

func newOracle(list []int) *btree.BTreeG[positioned] {
	tree := btree.NewG(4, func(a, b positioned) bool {
		if a.value != b.value {
			return a.value < b.value
		}
		return a.position < b.position
	})
	for i, v := range list {
		tree.ReplaceOrInsert(positioned{value: v, position: i})
	}
	return tree
}

func oracleLowerBound(tree *btree.BTreeG[positioned], n, target int) (found bool, index int) {
	index = n
	tree.AscendGreaterOrEqual(positioned{value: target, position: -1}, func(item positioned) bool {
		index = item.position
		found = item.value == target
		return false
	})
	return found, index
}

func oracleUpperBound(tree *btree.BTreeG[positioned], n, target int) (found bool, index int) {
	index = -1
	tree.DescendLessOrEqual(positioned{value: target, position: n}, func(item positioned) bool {
		index = item.position
		found = item.value == target
		return false
	})
	return found, index
}

func TestLowerBound(t *testing.T) {
	list := Slice[int]{2, 4, 4, 4, 7}

	for _, tc := range []struct {
		name   string
		target int

		expectFound bool
		expectIndex int
	}{
		{name: "first of duplicates", target: 4, expectFound: true, expectIndex: 1},
		{name: "first element", target: 2, expectFound: true, expectIndex: 0},
		{name: "last element", target: 7, expectFound: true, expectIndex: 4},
		{name: "between elements", target: 5, expectFound: false, expectIndex: 4},
		{name: "smaller than all", target: 1, expectFound: false, expectIndex: 0},
		{name: "larger than all", target: 9, expectFound: false, expectIndex: 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			found, index := LowerBound(tc.target, list, 0, len(list)-1, intCmp)
			assert.Equal(t, tc.expectFound, found)
			assert.Equal(t, tc.expectIndex, index)
		})
	}
}

func TestUpperBound(t *testing.T) {
	list := Slice[int]{2, 4, 4, 4, 7}

	for _, tc := range []struct {
		name   string
		target int

		expectFound bool
		expectIndex int
	}{
		{name: "last of duplicates", target: 4, expectFound: true, expectIndex: 3},
		{name: "first element", target: 2, expectFound: true, expectIndex: 0},
		{name: "last element", target: 7, expectFound: true, expectIndex: 4},
		{name: "between elements", target: 5, expectFound: false, expectIndex: 3},
		{name: "smaller than all", target: 1, expectFound: false, expectIndex: -1},
		{name: "larger than all", target: 9, expectFound: false, expectIndex: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			found, index := UpperBound(tc.target, list, 0, len(list)-1, intCmp)
			assert.Equal(t, tc.expectFound, found)
			assert.Equal(t, tc.expectIndex, index)
		})
	}
}

func TestSearch_emptyWindow(t *testing.T) {
	list := Slice[int]{1, 2, 3}

	found, index := LowerBound(2, list, 2, 1, intCmp)
	assert.False(t, found)
	assert.Equal(t, 2, index)

	found, index = LowerBound(2, Slice[int]{}, 0, -1, intCmp)
	assert.False(t, found)
	assert.Equal(t, 0, index)

	found, index = UpperBound(2, Slice[int]{}, 0, -1, intCmp)
	assert.False(t, found)
	assert.Equal(t, -1, index)
}

func TestSearch_window(t *testing.T) {
	// only [2, 4] is searched; the 1s and 9s outside the window are never compared
	list := Slice[int]{1, 1, 3, 5, 5, 9, 9}

	found, index := LowerBound(5, list, 2, 4, intCmp)
	assert.True(t, found)
	assert.Equal(t, 3, index)

	found, index = UpperBound(5, list, 2, 4, intCmp)
	assert.True(t, found)
	assert.Equal(t, 4, index)

	found, index = LowerBound(9, list, 2, 4, intCmp)
	assert.False(t, found)
	assert.Equal(t, 5, index)

	found, index = UpperBound(0, list, 2, 4, intCmp)
	assert.False(t, found)
	assert.Equal(t, 1, index)
}

func TestSearch_allDuplicates(t *testing.T) {
	for n := 1; n <= 9; n++ {
		list := make(Slice[int], n)
		for i := range list {
			list[i] = 3
		}

		found, index := LowerBound(3, list, 0, n-1, intCmp)
		assert.True(t, found)
		assert.Equal(t, 0, index, "n=%d", n)

		found, index = UpperBound(3, list, 0, n-1, intCmp)
		assert.True(t, found)
		assert.Equal(t, n-1, index, "n=%d", n)
	}
}

func TestSearch_againstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := range 200 {
		n := rng.Intn(40)
		list := make(Slice[int], n)
		for i := range list {
			list[i] = rng.Intn(20)
		}
		slices.Sort(list)
		tree := newOracle(list)

		for target := -1; target <= 21; target++ {
			expectFound, expectLow := oracleLowerBound(tree, n, target)
			found, index := LowerBound(target, list, 0, n-1, intCmp)
			require.Equal(t, expectFound, found, "round %d lower %d in %v", round, target, list)
			require.Equal(t, expectLow, index, "round %d lower %d in %v", round, target, list)

			upperExpectFound, expectHigh := oracleUpperBound(tree, n, target)
			found, index = UpperBound(target, list, 0, n-1, intCmp)
			require.Equal(t, upperExpectFound, found, "round %d upper %d in %v", round, target, list)
			require.Equal(t, expectHigh, index, "round %d upper %d in %v", round, target, list)

			// both searches agree on whether the target is present
			require.Equal(t, expectFound, upperExpectFound)
		}
	}
}

func TestSearch_doesNotMutate(t *testing.T) {
	list := Slice[int]{2, 4, 4, 4, 7}
	before := slices.Clone(list)

	for range 3 {
		found, index := LowerBound(4, list, 0, len(list)-1, intCmp)
		assert.True(t, found)
		assert.Equal(t, 1, index)

		found, index = UpperBound(4, list, 0, len(list)-1, intCmp)
		assert.True(t, found)
		assert.Equal(t, 3, index)
	}

	assert.Equal(t, before, list)
}

func TestFindAll(t *testing.T) {
	list := Slice[int]{2, 4, 4, 4, 7}

	first, last := FindAll(4, list, intCmp)
	assert.Equal(t, 1, first)
	assert.Equal(t, 4, last)

	first, last = FindAll(5, list, intCmp)
	assert.Equal(t, 4, first)
	assert.Equal(t, 4, last)

	first, last = FindAll(5, Slice[int]{}, intCmp)
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, last)

	found, index := FindLast(7, list, intCmp)
	assert.True(t, found)
	assert.Equal(t, 4, index)
}

func TestSearch_structKeys(t *testing.T) {
	type record struct {
		key       string
		satellite int
	}

	list := Slice[record]{
		{key: "apple", satellite: 1},
		{key: "banana", satellite: 2},
		{key: "banana", satellite: 3},
		{key: "cherry", satellite: 4},
	}
	byKey := func(key string, r record) int {
		return cmp.Compare(key, r.key)
	}

	found, index := Find("banana", list, byKey)
	assert.True(t, found)
	assert.Equal(t, 2, list[index].satellite)

	found, index = FindLast("banana", list, byKey)
	assert.True(t, found)
	assert.Equal(t, 3, list[index].satellite)

	found, index = Find("blueberry", list, byKey)
	assert.False(t, found)
	assert.Equal(t, 3, index)
}
