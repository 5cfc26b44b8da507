package utils

import (
	"io"

	_ "unsafe"
)

// These functions allow defeat of the escape analysis to prevent heap allocations.
// It is the caller responsibility to ensure this is safe

func _read(reader io.Reader, buf []byte) (n int, err error) {
	return reader.Read(buf)
}

//go:noescape
//go:linkname ReadNoEscape git.gammaspectra.live/Salvium/ringct/utils._read
func ReadNoEscape(reader io.Reader, buf []byte) (n int, err error)

// ReadFullNoEscape io.ReadFull without buf escaping to the heap
func ReadFullNoEscape(reader io.Reader, buf []byte) (n int, err error) {
	for n < len(buf) && err == nil {
		var nn int
		nn, err = ReadNoEscape(reader, buf[n:])
		n += nn
	}
	if n >= len(buf) {
		err = nil
	} else if n > 0 && err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return
}
