// Package compare provides ternary comparators between a standalone key and a record whose
// key occupies the record's leading bytes.
package compare

import (
	"bytes"
	"cmp"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/navijation/dtsearch/search"
	"github.com/pkg/errors"
)

var ErrUnknownComparator = errors.New("unknown comparator")

// Comparator compares a key view against a record view.
type Comparator = search.Comparator[[]byte, []byte]

const descSuffix = "-desc"

func Uint64(key, record []byte) int {
	return cmp.Compare(binary.BigEndian.Uint64(key), binary.BigEndian.Uint64(record))
}

func Int64(key, record []byte) int {
	return cmp.Compare(
		int64(binary.BigEndian.Uint64(key)), int64(binary.BigEndian.Uint64(record)),
	)
}

// Bytes compares the first size bytes of key and record lexicographically.
func Bytes(size int) Comparator {
	return func(key, record []byte) int {
		return bytes.Compare(key[:size], record[:size])
	}
}

// Reverse inverts the order of c.
func Reverse(c Comparator) Comparator {
	return func(key, record []byte) int {
		return -c(key, record)
	}
}

// Field is one component of a composite key.
type Field struct {
	Offset int
	Size   int
	Cmp    Comparator
}

// Series compares composite keys field by field; the first field that differs decides. Field
// offsets are relative to the start of the key, which is also the start of the record.
func Series(first Field, rest ...Field) Comparator {
	fields := append([]Field{first}, rest...)
	return func(key, record []byte) int {
		for _, field := range fields {
			end := field.Offset + field.Size
			if result := field.Cmp(key[field.Offset:end], record[field.Offset:end]); result != 0 {
				return result
			}
		}
		return 0
	}
}

// ByName resolves a comparator for a key of keySize bytes. Accepted names are "uint64",
// "int64" and "bytes" (keySize bytes) or "bytes:N", each optionally suffixed with "-desc".
func ByName(name string, keySize int) (Comparator, error) {
	base, desc := strings.CutSuffix(name, descSuffix)

	var out Comparator
	switch {
	case base == "uint64":
		out = Uint64
	case base == "int64":
		out = Int64
	case base == "bytes":
		if keySize <= 0 {
			return nil, errors.Wrapf(ErrUnknownComparator, "%q over a %d byte key", name, keySize)
		}
		out = Bytes(keySize)
	case strings.HasPrefix(base, "bytes:"):
		size, err := strconv.Atoi(strings.TrimPrefix(base, "bytes:"))
		if err != nil || size <= 0 {
			return nil, errors.Wrapf(ErrUnknownComparator, "bad byte width in %q", name)
		}
		out = Bytes(size)
	default:
		return nil, errors.Wrapf(ErrUnknownComparator, "%q", name)
	}

	if width := fixedWidth(base); width > keySize {
		return nil, errors.Errorf("comparator %q needs %d key bytes, key has %d", name, width, keySize)
	}

	if desc {
		out = Reverse(out)
	}
	return out, nil
}

func fixedWidth(base string) int {
	switch {
	case base == "uint64", base == "int64":
		return 8
	case strings.HasPrefix(base, "bytes:"):
		size, _ := strconv.Atoi(strings.TrimPrefix(base, "bytes:"))
		return size
	default:
		return 0
	}
}
