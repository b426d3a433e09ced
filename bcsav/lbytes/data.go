// Package lbytes is the stream layer of the save codec: typed little-endian reads and writes
// over a byte buffer with a single forward cursor.
package lbytes

type (
	Reader struct {
		bs  []byte
		pos int
	}
	Writer struct {
		bs []byte
	}
)

const (
	SizeUint8  = 1
	SizeUint16 = 2
	SizeUint32 = 4
	SizeUint64 = 8
	// SizeLength is the width of every length prefix in a save, strings and containers alike.
	SizeLength = SizeUint32
)
