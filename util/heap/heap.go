// Package heap is a typed min-heap over container/heap, shaped for k-way merges.
package heap

import "container/heap"

// Heap pops the item that compares lowest first. Ties pop in no particular order, so callers
// that need stability break them in the comparator.
type Heap[T any] struct {
	items items[T]
}

func NewHeap[T any](comparator func(a, b T) int, initial ...T) Heap[T] {
	out := Heap[T]{items: items[T]{less: comparator, values: initial}}
	heap.Init(&out.items)
	return out
}

func (me *Heap[T]) Len() int {
	return len(me.items.values)
}

// Peek panics on an empty heap.
func (me *Heap[T]) Peek() T {
	return me.items.values[0]
}

func (me *Heap[T]) Pop() T {
	return heap.Pop(&me.items).(T)
}

func (me *Heap[T]) Push(value T) {
	heap.Push(&me.items, value)
}

// ReplaceTop swaps the lowest item for value and restores heap order, returning the item it
// replaced. It costs one sift where Pop followed by Push costs two. Panics on an empty heap.
func (me *Heap[T]) ReplaceTop(value T) T {
	out := me.items.values[0]
	me.items.values[0] = value
	heap.Fix(&me.items, 0)
	return out
}

var _ heap.Interface = (*items[any])(nil)

type items[T any] struct {
	less   func(a, b T) int
	values []T
}

func (me *items[T]) Len() int           { return len(me.values) }
func (me *items[T]) Swap(i, j int)      { me.values[i], me.values[j] = me.values[j], me.values[i] }
func (me *items[T]) Less(i, j int) bool { return me.less(me.values[i], me.values[j]) < 0 }

func (me *items[T]) Push(x any) {
	me.values = append(me.values, x.(T))
}

func (me *items[T]) Pop() any {
	last := len(me.values) - 1
	out := me.values[last]
	var zero T
	me.values[last] = zero
	me.values = me.values[:last]
	return out
}
