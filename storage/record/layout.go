package record

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInvalidLayout = errors.New("invalid record layout")

// Layout describes a fixed-size record. Every record starts with its key and is followed by
// satellite payload and then padding, so consecutive records are Extent() bytes apart.
// ______________________________________________________
// | (key size) bytes | (satellite size) bytes | padding |
// |----------------------------------------------------|
// |       key        |       satellite        |         |
// |----------------------------------------------------|
type Layout struct {
	KeySize       int
	SatelliteSize int
	Padding       int
}

// KeyLayout returns the layout of a standalone key with no payload.
func KeyLayout(keySize int) Layout {
	return Layout{KeySize: keySize}
}

// Extent is the byte stride between the starts of two consecutive records.
func (me Layout) Extent() int {
	return me.KeySize + me.SatelliteSize + me.Padding
}

// Keys returns the layout of the keys embedded in this layout's records.
func (me Layout) Keys() Layout {
	return KeyLayout(me.KeySize)
}

func (me Layout) Validate() error {
	if me.KeySize < 0 || me.SatelliteSize < 0 || me.Padding < 0 {
		return errors.Wrapf(ErrInvalidLayout, "negative field in %s", me)
	}
	if me.Extent() == 0 {
		return errors.Wrap(ErrInvalidLayout, "zero extent")
	}
	return nil
}

func (me Layout) String() string {
	return fmt.Sprintf("key=%d satellite=%d padding=%d", me.KeySize, me.SatelliteSize, me.Padding)
}
