package recordfile

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/util"
	testing_util "github.com/navijation/dtsearch/util/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFile_MergeFiles(t *testing.T) {
	dir := testing_util.MkdirTemp(t, "TestRecordFile_MergeFiles")

	t.Run("no files", func(t *testing.T) {
		dst := createFile(t, filepath.Join(dir, "none.rec"))

		require.NoError(t, dst.MergeFiles(MergeArgs{}))
		assert.Equal(t, 0, dst.Len())
	})

	t.Run("interleaved with duplicates", func(t *testing.T) {
		dst := createFile(t, filepath.Join(dir, "interleaved.rec"))
		src1 := createFile(t, filepath.Join(dir, "interleaved_1.rec"),
			testRecord(1, "s1"), testRecord(3, "s1"), testRecord(5, "s1"),
		)
		src2 := createFile(t, filepath.Join(dir, "interleaved_2.rec"),
			testRecord(2, "s2"), testRecord(3, "s2"), testRecord(6, "s2"),
		)
		empty := createFile(t, filepath.Join(dir, "interleaved_3.rec"))

		require.NoError(t, dst.MergeFiles(MergeArgs{Srcs: []*RecordFile{&src1, &empty, &src2}}))

		records, err := util.Collect2(dst.Records())
		require.NoError(t, err)
		assert.Equal(t, [][]byte{
			testRecord(1, "s1"),
			testRecord(2, "s2"),
			testRecord(3, "s1"),
			testRecord(3, "s2"),
			testRecord(5, "s1"),
			testRecord(6, "s2"),
		}, records)

		found, index, err := dst.UpperBound(record.Uint64Key(3))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 3, index)
	})

	t.Run("large", func(t *testing.T) {
		dst := createFile(t, filepath.Join(dir, "large.rec"))

		var evens, odds [][]byte
		for i := range 300 {
			if i%2 == 0 {
				evens = append(evens, testRecord(uint64(i), "even"))
			} else {
				odds = append(odds, testRecord(uint64(i), "odd"))
			}
		}
		src1 := createFile(t, filepath.Join(dir, "large_1.rec"), evens...)
		src2 := createFile(t, filepath.Join(dir, "large_2.rec"), odds...)

		require.NoError(t, dst.MergeFiles(MergeArgs{Srcs: []*RecordFile{&src1, &src2}}))
		assert.Equal(t, 300, dst.Len())

		buffer, err := dst.Load()
		require.NoError(t, err)
		for i := range buffer.Len() {
			require.Equal(t, uint64(i), record.Uint64FromKey(buffer.Key(i)))
		}
	})

	t.Run("source read failure rolls back", func(t *testing.T) {
		dst := createFile(t, filepath.Join(dir, "failure.rec"), testRecord(0, "dst"))
		sizeBefore := dst.Header().FileSize()

		src1 := createFile(t, filepath.Join(dir, "failure_1.rec"),
			testRecord(1, "s1"), testRecord(2, "s1"), testRecord(3, "s1"),
		)
		src2 := createFile(t, filepath.Join(dir, "failure_2.rec"), testRecord(4, "s2"))

		// the header still counts three records, but the third is cut short
		extent := int64(testLayout.Extent())
		require.NoError(t, os.Truncate(src1.Path(), int64(src1.Header().SizeOf())+2*extent+1))

		err := dst.MergeFiles(MergeArgs{Srcs: []*RecordFile{&src1, &src2}})
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, 1, dst.Len())

		info, err := os.Stat(dst.Path())
		require.NoError(t, err)
		assert.Equal(t, sizeBefore, info.Size())

		records, err := util.Collect2(dst.Records())
		require.NoError(t, err)
		assert.Equal(t, [][]byte{testRecord(0, "dst")}, records)

		// nothing from the failed merge blocks later appends
		require.NoError(t, dst.AppendRecords(util.SeqOf(testRecord(1, "next"))))
		assert.Equal(t, 2, dst.Len())
	})

	t.Run("layout mismatch", func(t *testing.T) {
		dst := createFile(t, filepath.Join(dir, "mismatch.rec"))
		other, err := Open(OpenArgs{
			Path:   filepath.Join(dir, "mismatch_1.rec"),
			Create: true,
			Layout: util.Some(record.KeyLayout(4)),
		})
		require.NoError(t, err)
		defer other.Close()

		assert.ErrorIs(t, dst.MergeFiles(MergeArgs{Srcs: []*RecordFile{&other}}), ErrLayoutMismatch)
	})
}
