package utils

import (
	"io"
)

// ReaderAndByteReader is the reader shape required by FromReader
// deserializers: sequential byte access for varints plus bulk reads.
type ReaderAndByteReader interface {
	io.Reader
	io.ByteReader
}

type Serializable interface {
	AppendBinary(preAllocatedBuf []byte) (data []byte, err error)
	FromReader(reader ReaderAndByteReader) (err error)
	BufferLength() (n int)
}
