// Package search implements binary searches over sorted, read-only sequences of records.
//
// Keys and records are opaque to the searches; ordering is delegated to a Comparator that
// compares a standalone key against a record. All windows are inclusive index ranges
// [low, high] into the sequence, and an empty window is expressed as low > high.
package search

// Sequence is random access to a sorted run of records (or keys).
type Sequence[T any] interface {
	Len() int
	At(i int) T
}

// Comparator returns a negative number, zero or a positive number when key is less than,
// equal to, or greater than the key embedded in record.
type Comparator[K, R any] func(key K, record R) int

// Slice adapts a plain slice to a Sequence.
type Slice[T any] []T

func (me Slice[T]) Len() int {
	return len(me)
}

func (me Slice[T]) At(i int) T {
	return me[i]
}

// LowerBound searches list[low..high] for target. index is the lowest position at which
// target could be inserted with the list still in order, which is the first duplicate when
// target is present.
func LowerBound[K, R any](
	target K, list Sequence[R], low, high int, cmp func(K, R) int,
) (found bool, index int) {
	for low <= high {
		mid := (low + high) / 2

		result := cmp(target, list.At(mid))
		switch {
		case result == 0:
			// pin the match and keep looking left for an earlier duplicate
			found = true
			high = mid
			if low == high {
				return true, high
			}
		case result < 0:
			high = mid - 1
		default:
			low = mid + 1
		}
	}

	if found {
		return true, high
	}
	return false, high + 1
}

// UpperBound searches list[low..high] for target. index is the highest position after which
// target could be inserted with the list still in order, which is the last duplicate when
// target is present and low-1 when every record is greater.
func UpperBound[K, R any](
	target K, list Sequence[R], low, high int, cmp func(K, R) int,
) (found bool, index int) {
	for low <= high {
		// round toward high so that a two element window still makes progress when low matches
		mid := (low+high)/2 + ((high - low) & 1)

		result := cmp(target, list.At(mid))
		switch {
		case result == 0:
			found = true
			low = mid
			if low == high {
				return true, low
			}
		case result < 0:
			high = mid - 1
		default:
			low = mid + 1
		}
	}

	if found {
		return true, low
	}
	return false, low - 1
}

// Find runs LowerBound over the whole list.
func Find[K, R any](target K, list Sequence[R], cmp func(K, R) int) (found bool, index int) {
	return LowerBound(target, list, 0, list.Len()-1, cmp)
}

// FindLast runs UpperBound over the whole list.
func FindLast[K, R any](target K, list Sequence[R], cmp func(K, R) int) (found bool, index int) {
	return UpperBound(target, list, 0, list.Len()-1, cmp)
}

// FindAll returns the half-open range [first, last) of records equal to target. The range is
// empty, with first at the insertion point, when target is absent.
func FindAll[K, R any](target K, list Sequence[R], cmp func(K, R) int) (first, last int) {
	found, first := Find(target, list, cmp)
	if !found {
		return first, first
	}
	_, last = UpperBound(target, list, first, list.Len()-1, cmp)
	return first, last + 1
}
