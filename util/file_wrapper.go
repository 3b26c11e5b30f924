package util

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

var _ io.ReadWriteSeeker = (*FileWrapper)(nil)

// FileWrapper reads and writes a file from its own offset using ReadAt and WriteAt, so any
// number of wrappers can share one file descriptor without disturbing each other.
type FileWrapper struct {
	file   *os.File
	offset int64
}

func NewFileWrapperAt(file *os.File, offset int64) FileWrapper {
	return FileWrapper{
		file:   file,
		offset: offset,
	}
}

func (me *FileWrapper) Read(b []byte) (n int, err error) {
	n, err = me.file.ReadAt(b, me.offset)
	me.offset += int64(n)
	return n, err
}

func (me *FileWrapper) Write(b []byte) (n int, err error) {
	n, err = me.file.WriteAt(b, me.offset)
	me.offset += int64(n)
	return n, err
}

func (me *FileWrapper) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekCurrent:
		me.offset += offset
	case io.SeekStart:
		me.offset = offset
	default:
		return -1, errors.New("unsupported operation")
	}
	return me.offset, nil
}
