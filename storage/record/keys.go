package record

import (
	"encoding/binary"

	"github.com/navijation/dtsearch/util"
)

const Word64Size = 8

// Uint64Key encodes v big-endian so that byte-wise order matches numeric order.
func Uint64Key(v uint64) []byte {
	word := util.Uint64ToWord64(v)
	return word[:]
}

func Uint64FromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[:Word64Size])
}

// Int64Key encodes v as big-endian two's complement. Byte-wise order puts negative values
// last, so these keys need a signed comparator.
func Int64Key(v int64) []byte {
	return Uint64Key(uint64(v))
}

func Int64FromKey(key []byte) int64 {
	return int64(Uint64FromKey(key))
}
