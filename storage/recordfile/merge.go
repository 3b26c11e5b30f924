package recordfile

import (
	"iter"

	"github.com/navijation/dtsearch/util/heap"
	"github.com/pkg/errors"
)

type MergeArgs struct {
	Srcs []*RecordFile
}

// MergeFiles appends the records of every source, which must share the receiver's layout, in
// key order. Equal keys keep the order of Srcs and no record is dropped.
func (me *RecordFile) MergeFiles(args MergeArgs) error {
	for _, src := range args.Srcs {
		if src.Layout() != me.Layout() {
			return errors.Wrapf(ErrLayoutMismatch, "%q holds %s, %q holds %s",
				src.Path(), src.Layout(), me.Path(), me.Layout())
		}
	}

	mux := newRecordMux(me.cmp, me.Layout().KeySize)
	for _, src := range args.Srcs {
		next, stop := iter.Pull2(src.Records())
		defer stop()

		if err := mux.AddSource(next); err != nil {
			return errors.Wrapf(err, "failed to read %q", src.Path())
		}
	}

	return me.appendRecords(func(yield func([]byte, error) bool) {
		for {
			next, hasNext, err := mux.Next()
			if err != nil {
				yield(nil, errors.Wrap(err, "failed to read merge source"))
				return
			}
			if !hasNext {
				return
			}
			if !yield(next, nil) {
				return
			}
		}
	})
}

type recordMuxEntry struct {
	current      []byte
	sourceNumber int
	next         func() ([]byte, error, bool)
}

type recordMux struct {
	heap        heap.Heap[recordMuxEntry]
	sourceCount int
}

func newRecordMux(cmp func(key, record []byte) int, keySize int) recordMux {
	return recordMux{
		heap: heap.NewHeap(func(a, b recordMuxEntry) int {
			// lower keys first, earlier sources first on ties
			if result := cmp(a.current[:keySize], b.current); result != 0 {
				return result
			}
			return a.sourceNumber - b.sourceNumber
		}),
	}
}

func (me *recordMux) AddSource(next func() ([]byte, error, bool)) error {
	current, err, exists := next()
	if err != nil {
		return err
	}
	sourceNumber := me.sourceCount
	me.sourceCount++
	if !exists {
		return nil
	}

	me.heap.Push(recordMuxEntry{
		current:      current,
		sourceNumber: sourceNumber,
		next:         next,
	})
	return nil
}

func (me *recordMux) Next() (out []byte, hasNext bool, _ error) {
	if me.heap.Len() == 0 {
		return out, false, nil
	}

	entry := me.heap.Peek()

	following, err, exists := entry.next()
	if err != nil {
		return nil, false, err
	}
	if exists {
		me.heap.ReplaceTop(recordMuxEntry{
			current:      following,
			sourceNumber: entry.sourceNumber,
			next:         entry.next,
		})
	} else {
		me.heap.Pop()
	}

	return entry.current, true, nil
}
