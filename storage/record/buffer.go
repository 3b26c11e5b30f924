package record

import (
	"iter"

	"github.com/pkg/errors"
)

var ErrFieldTooLarge = errors.New("field larger than layout allows")

// Buffer is a contiguous arena of fixed-size records. Record views returned by At, Key and
// Satellite alias the arena and have their capacity clipped, so appending to a view never
// overwrites the record after it.
type Buffer struct {
	layout Layout
	data   []byte
}

func NewBuffer(data []byte, layout Layout) (out Buffer, _ error) {
	if err := layout.Validate(); err != nil {
		return out, err
	}
	if extent := layout.Extent(); len(data)%extent != 0 {
		return out, errors.Errorf(
			"buffer of %d bytes is not a whole number of %d byte records", len(data), extent,
		)
	}
	return Buffer{layout: layout, data: data}, nil
}

func (me Buffer) Layout() Layout {
	return me.layout
}

func (me Buffer) Len() int {
	if me.data == nil {
		return 0
	}
	return len(me.data) / me.layout.Extent()
}

// At returns the full record at index i, padding included.
func (me Buffer) At(i int) []byte {
	start := i * me.layout.Extent()
	end := start + me.layout.Extent()
	return me.data[start:end:end]
}

func (me Buffer) Key(i int) []byte {
	start := i * me.layout.Extent()
	end := start + me.layout.KeySize
	return me.data[start:end:end]
}

func (me Buffer) Satellite(i int) []byte {
	start := i*me.layout.Extent() + me.layout.KeySize
	end := start + me.layout.SatelliteSize
	return me.data[start:end:end]
}

// Keys returns the record keys over the same arena, suitable as the target list of a batched
// search.
func (me Buffer) Keys() KeyView {
	return KeyView{buffer: me}
}

// Records yields every record view in order.
func (me Buffer) Records() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for i := range me.Len() {
			if !yield(me.At(i)) {
				return
			}
		}
	}
}

func (me Buffer) Bytes() []byte {
	return me.data
}

// KeyView exposes the keys of a Buffer as a sequence of their own.
type KeyView struct {
	buffer Buffer
}

func (me KeyView) Len() int {
	return me.buffer.Len()
}

func (me KeyView) At(i int) []byte {
	return me.buffer.Key(i)
}

// Builder assembles a Buffer record by record. Short keys and satellites are zero-padded.
type Builder struct {
	layout Layout
	data   []byte
}

func NewBuilder(layout Layout) Builder {
	return Builder{layout: layout}
}

func (me *Builder) Append(key, satellite []byte) error {
	if len(key) > me.layout.KeySize {
		return errors.Wrapf(ErrFieldTooLarge, "key of %d bytes in %s", len(key), me.layout)
	}
	if len(satellite) > me.layout.SatelliteSize {
		return errors.Wrapf(
			ErrFieldTooLarge, "satellite of %d bytes in %s", len(satellite), me.layout,
		)
	}

	record := make([]byte, me.layout.Extent())
	copy(record, key)
	copy(record[me.layout.KeySize:], satellite)
	me.data = append(me.data, record...)
	return nil
}

func (me *Builder) Len() int {
	return len(me.data) / me.layout.Extent()
}

// Buffer returns the records appended so far. The builder must not be appended to while the
// returned buffer is still in use.
func (me *Builder) Buffer() Buffer {
	return Buffer{layout: me.layout, data: me.data}
}
