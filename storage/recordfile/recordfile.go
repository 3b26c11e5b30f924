package recordfile

import (
	"bufio"
	"io"
	"iter"
	"log"
	"os"
	"slices"

	"github.com/navijation/dtsearch/compare"
	"github.com/navijation/dtsearch/search"
	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/util"
	"github.com/pkg/errors"
)

var (
	ErrOutOfOrder     = errors.New("out of order record append attempt")
	ErrRecordSize     = errors.New("record size does not match layout extent")
	ErrLayoutMismatch = errors.New("record layouts do not match")
	ErrTruncated      = errors.New("file is shorter than its header claims")
)

// RecordFile is a file of fixed-size records kept sorted by key. The header is only rewritten
// after the records it counts have been synced, so a crash mid-append leaves the previous
// contents intact and the next Open discards the partial tail.
type RecordFile struct {
	path string

	header Header

	file *os.File
	cmp  compare.Comparator

	// last record on disk, used to reject out-of-order appends
	lastRecord []byte
	// records loaded by Load; dropped whenever the file grows
	loaded *record.Buffer
}

type OpenArgs struct {
	Path    string
	Create  bool
	Version uint64
	// Layout is required when creating; when opening it must match the header if set.
	Layout     util.Optional[record.Layout]
	Comparator util.Optional[compare.Comparator]
}

func Open(args OpenArgs) (out RecordFile, err error) {
	flags := os.O_RDWR
	if args.Create {
		flags |= (os.O_CREATE | os.O_EXCL)
	}
	file, err := os.OpenFile(args.Path, flags, 0o644)
	if err != nil {
		return out, errors.Wrapf(err, "failed to open %q", args.Path)
	}

	defer func() {
		if err == nil {
			return
		}
		_ = file.Close()
		if args.Create {
			_ = os.Remove(args.Path)
		}
	}()

	out = RecordFile{
		path: args.Path,
		file: file,
	}

	layout, hasLayout := args.Layout.Unpack()
	if args.Create {
		if !hasLayout {
			return out, errors.Wrap(record.ErrInvalidLayout, "layout is required to create a file")
		}
		if err := layout.Validate(); err != nil {
			return out, err
		}
		out.header = Header{
			ID:      util.NewRandomUUIDBytes(),
			Version: args.Version,
			Layout:  layout,
		}
		if _, err := out.header.WriteTo(util.Ptr(out.fileWrapperAt(0))); err != nil {
			return out, errors.Wrap(err, "failed to write header")
		}
		if err := out.file.Sync(); err != nil {
			return out, err
		}
	} else {
		if _, err := out.header.ReadFrom(out.readBufferAt(0)); err != nil {
			return out, errors.Wrapf(err, "failed to read header of %q", args.Path)
		}
		if err := out.header.Layout.Validate(); err != nil {
			return out, errors.Wrapf(err, "corrupt header in %q", args.Path)
		}
		if hasLayout && layout != out.header.Layout {
			return out, errors.Wrapf(
				ErrLayoutMismatch, "%q holds %s, expected %s", args.Path, out.header.Layout, layout,
			)
		}
		if err := out.discardTail(); err != nil {
			return out, err
		}
	}

	out.cmp = args.Comparator.Or(compare.Bytes(out.header.Layout.KeySize))

	if out.header.NumRecords > 0 {
		last, err := out.readRecord(out.header.NumRecords - 1)
		if err != nil {
			return out, err
		}
		out.lastRecord = last
	}

	return out, nil
}

func (me *RecordFile) Close() error {
	return me.file.Close()
}

func (me *RecordFile) Path() string {
	return me.path
}

func (me *RecordFile) Header() Header {
	return me.header
}

func (me *RecordFile) Layout() record.Layout {
	return me.header.Layout
}

func (me *RecordFile) Len() int {
	return int(me.header.NumRecords)
}

// Records streams the records of the file in order without loading them all.
func (me *RecordFile) Records() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		reader := me.readBufferAt(int64(me.header.SizeOf()))
		extent := me.header.Layout.Extent()

		for range me.header.NumRecords {
			next := make([]byte, extent)
			_, err := io.ReadFull(reader, next)
			if !yield(next, err) || err != nil {
				return
			}
		}
	}
}

// AppendRecords appends full records, each exactly one extent long, in non-decreasing key
// order. Nothing is appended if any record is rejected.
func (me *RecordFile) AppendRecords(records iter.Seq[[]byte]) error {
	return me.appendRecords(func(yield func([]byte, error) bool) {
		for next := range records {
			if !yield(next, nil) {
				return
			}
		}
	})
}

// appendRecords commits records only if the stream ends without an error.
func (me *RecordFile) appendRecords(records iter.Seq2[[]byte, error]) (err error) {
	fileWrapper := me.fileWrapperAt(me.header.FileSize())

	defer func() {
		if err != nil {
			_ = me.truncateToHeader()
		}
	}()

	var (
		extent     = me.header.Layout.Extent()
		keySize    = me.header.Layout.KeySize
		added      uint64
		lastRecord = me.lastRecord
	)
	writer := bufio.NewWriter(&fileWrapper)
	for next, err := range records {
		if err != nil {
			return err
		}
		if len(next) != extent {
			return errors.Wrapf(ErrRecordSize, "got %d bytes, extent is %d", len(next), extent)
		}
		if lastRecord != nil && me.cmp(next[:keySize], lastRecord) < 0 {
			log.Printf("tried to append %x after last key %x", next[:keySize], lastRecord[:keySize])
			return ErrOutOfOrder
		}

		if _, err := writer.Write(next); err != nil {
			return err
		}
		added++
		lastRecord = slices.Clone(next)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	// records first, then the header that makes them visible
	if err := me.file.Sync(); err != nil {
		return err
	}
	if err := me.writeNumRecords(me.header.NumRecords + added); err != nil {
		return err
	}

	me.lastRecord = lastRecord
	if added > 0 {
		me.loaded = nil
	}
	return nil
}

// AppendBuffer appends every record of buffer.
func (me *RecordFile) AppendBuffer(buffer record.Buffer) error {
	if buffer.Layout() != me.header.Layout {
		return errors.Wrapf(ErrLayoutMismatch, "buffer holds %s, file holds %s",
			buffer.Layout(), me.header.Layout)
	}
	return me.AppendRecords(buffer.Records())
}

// Load reads every record into memory. The buffer is cached until the next append and must
// not be modified.
func (me *RecordFile) Load() (record.Buffer, error) {
	if me.loaded != nil {
		return *me.loaded, nil
	}

	data := make([]byte, int64(me.header.NumRecords)*int64(me.header.Layout.Extent()))
	if _, err := me.file.ReadAt(data, int64(me.header.SizeOf())); err != nil {
		return record.Buffer{}, errors.Wrapf(err, "failed to load records of %q", me.path)
	}

	buffer, err := record.NewBuffer(data, me.header.Layout)
	if err != nil {
		return buffer, err
	}
	me.loaded = &buffer
	return buffer, nil
}

// LowerBound returns whether key is present and the lowest index at which it could be
// inserted.
func (me *RecordFile) LowerBound(key []byte) (found bool, index int, _ error) {
	buffer, err := me.Load()
	if err != nil {
		return false, 0, err
	}
	found, index = search.Find(me.searchKey(key), buffer, me.cmp)
	return found, index, nil
}

// UpperBound returns whether key is present and the highest index after which it could be
// inserted.
func (me *RecordFile) UpperBound(key []byte) (found bool, index int, _ error) {
	buffer, err := me.Load()
	if err != nil {
		return false, 0, err
	}
	found, index = search.FindLast(me.searchKey(key), buffer, me.cmp)
	return found, index, nil
}

// LowerBoundList resolves a sorted list of keys in one batched search.
func (me *RecordFile) LowerBoundList(keys search.Sequence[[]byte]) ([]int, error) {
	buffer, err := me.Load()
	if err != nil {
		return nil, err
	}
	targets := paddedKeys{keys: keys, keySize: me.header.Layout.KeySize}
	return search.LowerBoundList(targets, buffer, 0, buffer.Len()-1, me.cmp), nil
}

func (me *RecordFile) searchKey(key []byte) []byte {
	return padKey(key, me.header.Layout.KeySize)
}

// padKey zero-pads short keys so that comparators can read the full key width.
func padKey(key []byte, keySize int) []byte {
	if len(key) >= keySize {
		return key
	}
	padded := make([]byte, keySize)
	copy(padded, key)
	return padded
}

// paddedKeys pads every key of a target list the way single-key searches do.
type paddedKeys struct {
	keys    search.Sequence[[]byte]
	keySize int
}

func (me paddedKeys) Len() int {
	return me.keys.Len()
}

func (me paddedKeys) At(i int) []byte {
	return padKey(me.keys.At(i), me.keySize)
}

func (me *RecordFile) readRecord(i uint64) ([]byte, error) {
	extent := int64(me.header.Layout.Extent())
	out := make([]byte, extent)
	if _, err := me.file.ReadAt(out, int64(me.header.SizeOf())+int64(i)*extent); err != nil {
		return nil, errors.Wrapf(err, "failed to read record %d of %q", i, me.path)
	}
	return out, nil
}

// discardTail drops bytes past the last counted record, left behind by an interrupted append.
func (me *RecordFile) discardTail() error {
	info, err := me.file.Stat()
	if err != nil {
		return err
	}

	expected := me.header.FileSize()
	switch {
	case info.Size() < expected:
		return errors.Wrapf(ErrTruncated, "%q is %d bytes, expected %d", me.path, info.Size(), expected)
	case info.Size() > expected:
		log.Printf("Discarding %d trailing bytes of %q\n", info.Size()-expected, me.path)
		// not a big issue if this fails; the header decides what is visible
		_ = me.truncateToHeader()
	}
	return nil
}

func (me *RecordFile) readBufferAt(offset int64) *bufio.Reader {
	return bufio.NewReader(util.Ptr(me.fileWrapperAt(offset)))
}

func (me *RecordFile) fileWrapperAt(offset int64) util.FileWrapper {
	return util.NewFileWrapperAt(me.file, offset)
}

func (me *RecordFile) truncateToHeader() error {
	return me.file.Truncate(me.header.FileSize())
}

func (me *RecordFile) writeNumRecords(numRecords uint64) error {
	fileWrapper := me.fileWrapperAt(0)
	newHeader := me.header.WithNumRecords(numRecords)

	if _, err := newHeader.WriteTo(&fileWrapper); err != nil {
		return err
	}

	if err := me.file.Sync(); err != nil {
		return err
	}

	me.header = newHeader
	return nil
}
