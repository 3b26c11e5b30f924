package search

import "sync"

// LowerBoundList resolves every key of targets against list[low..high] and returns the
// lower bound index of each, aligned with targets. targets must be sorted with the same
// ordering as list; the result is identical to calling LowerBound once per target.
func LowerBoundList[K, R any](
	targets Sequence[K], list Sequence[R], low, high int, cmp func(K, R) int,
) []int {
	indices := make([]int, targets.Len())
	LowerBoundListInto(indices, targets, list, low, high, cmp)
	return indices
}

// LowerBoundListInto is LowerBoundList writing into a caller-owned slice of at least
// targets.Len() entries.
func LowerBoundListInto[K, R any](
	indices []int, targets Sequence[K], list Sequence[R], low, high int, cmp func(K, R) int,
) {
	splitter := listSplitter[K, R]{
		targets: targets,
		list:    list,
		cmp:     cmp,
		indices: indices,
	}
	splitter.split(0, targets.Len(), low, high)
}

// ParallelLowerBoundList is LowerBoundList with both halves of each split searched on their
// own goroutine until maxDepth levels of splitting have been forked. A maxDepth of zero runs
// sequentially.
func ParallelLowerBoundList[K, R any](
	targets Sequence[K], list Sequence[R], low, high int, cmp func(K, R) int, maxDepth int,
) []int {
	indices := make([]int, targets.Len())
	splitter := listSplitter[K, R]{
		targets: targets,
		list:    list,
		cmp:     cmp,
		indices: indices,
	}
	splitter.splitParallel(0, targets.Len(), low, high, maxDepth)
	return indices
}

// listSplitter carries the inputs shared by every level of the recursive batched search.
// Sub-ranges of targets are addressed by offset so the output stays aligned with targets.
type listSplitter[K, R any] struct {
	targets Sequence[K]
	list    Sequence[R]
	cmp     Comparator[K, R]
	indices []int
}

// search resolves the median of targets[start:start+num] and returns its index and the
// split point for the two halves. ok is false when there is nothing left to recurse into.
func (me *listSplitter[K, R]) search(start, num, low, high int) (mid, split int, ok bool) {
	if num <= 0 {
		return 0, 0, false
	}

	if low > high {
		// empty window; every remaining target inserts at low
		for i := start; i < start+num; i++ {
			me.indices[i] = low
		}
		return 0, 0, false
	}

	mid = num / 2
	_, index := LowerBound(me.targets.At(start+mid), me.list, low, high, me.cmp)
	me.indices[start+mid] = index

	// one past the end is a valid result but not a valid window bound
	split = min(index, high)
	return mid, split, true
}

func (me *listSplitter[K, R]) split(start, num, low, high int) {
	mid, split, ok := me.search(start, num, low, high)
	if !ok {
		return
	}

	me.split(start, mid, low, split)

	upper := mid + 1
	me.split(start+upper, num-upper, split, high)
}

func (me *listSplitter[K, R]) splitParallel(start, num, low, high, depth int) {
	if depth <= 0 {
		me.split(start, num, low, high)
		return
	}

	mid, split, ok := me.search(start, num, low, high)
	if !ok {
		return
	}

	// the halves write disjoint entries of indices and only read the sequences
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		me.splitParallel(start, mid, low, split, depth-1)
	}()

	upper := mid + 1
	me.splitParallel(start+upper, num-upper, split, high, depth-1)
	wg.Wait()
}
