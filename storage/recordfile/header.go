package recordfile

import (
	"io"

	"github.com/navijation/dtsearch/storage/record"
	"github.com/navijation/dtsearch/util"
)

// ____________________________________________________________________________________
// | 16 bytes | 8 bytes | 8 bytes  | 8 bytes        | 8 bytes | 8 bytes     | ...      |
// |----------------------------------------------------------------------------------|
// |    ID    | version | key size | satellite size | padding | num records | records  |
// |----------------------------------------------------------------------------------|
type Header struct {
	ID         [16]byte
	Version    uint64
	Layout     record.Layout
	NumRecords uint64
}

func (me Header) WithNumRecords(numRecords uint64) Header {
	me.NumRecords = numRecords
	return me
}

// FileSize is the size of a file holding exactly the records the header counts.
func (me Header) FileSize() int64 {
	return int64(me.SizeOf()) + int64(me.NumRecords)*int64(me.Layout.Extent())
}

func (me *Header) WriteTo(writer io.Writer) (n int64, _ error) {
	dn, err := writer.Write(me.ID[:])
	n += int64(dn)
	if err != nil {
		return n, err
	}

	dn, err = util.WriteUint64s(writer,
		me.Version,
		uint64(me.Layout.KeySize),
		uint64(me.Layout.SatelliteSize),
		uint64(me.Layout.Padding),
		me.NumRecords,
	)
	return n + int64(dn), err
}

func (me *Header) ReadFrom(reader io.Reader) (n int64, _ error) {
	dn, err := io.ReadFull(reader, me.ID[:])
	n += int64(dn)
	if err != nil {
		return n, err
	}

	var keySize, satelliteSize, padding uint64
	dn, err = util.ReadUint64s(reader, &me.Version, &keySize, &satelliteSize, &padding, &me.NumRecords)
	n += int64(dn)
	if err != nil {
		return n, err
	}

	me.Layout = record.Layout{
		KeySize:       int(keySize),
		SatelliteSize: int(satelliteSize),
		Padding:       int(padding),
	}
	return n, nil
}

func (me Header) SizeOf() uint64 {
	return 16 + 5*8
}
