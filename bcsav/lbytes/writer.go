package lbytes

import (
	"encoding/binary"
	"math"
)

func NewBytesWriter(capacity int) *Writer {
	return &Writer{
		bs: make([]byte, 0, capacity),
	}
}

func (w *Writer) Bytes() []byte {
	return w.bs
}

func (w *Writer) Position() int {
	return len(w.bs)
}

func (w *Writer) WriteBytes(bs []byte) {
	w.bs = append(w.bs, bs...)
}

func (w *Writer) WriteUint8(v uint8) {
	w.bs = append(w.bs, v)
}

func (w *Writer) WriteInt8(v int8) {
	w.WriteUint8(uint8(v))
}

func (w *Writer) WriteUint16(v uint16) {
	w.bs = binary.LittleEndian.AppendUint16(w.bs, v)
}

func (w *Writer) WriteInt16(v int16) {
	w.WriteUint16(uint16(v))
}

func (w *Writer) WriteUint32(v uint32) {
	w.bs = binary.LittleEndian.AppendUint32(w.bs, v)
}

func (w *Writer) WriteInt(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteUint64(v uint64) {
	w.bs = binary.LittleEndian.AppendUint64(w.bs, v)
}

func (w *Writer) WriteLong(v int64) {
	w.WriteUint64(uint64(v))
}

func (w *Writer) WriteFloat(v float32) {
	w.WriteUint32(math.Float32bits(v))
}

func (w *Writer) WriteDouble(v float64) {
	w.WriteUint64(math.Float64bits(v))
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *Writer) WriteLength(n int) {
	w.WriteUint32(uint32(n))
}

// WriteString writes the byte length followed by the raw UTF-8 bytes; no terminator.
func (w *Writer) WriteString(s string) {
	w.WriteLength(len(s))
	w.WriteStringFixed(s)
}

func (w *Writer) WriteStringFixed(s string) {
	w.bs = append(w.bs, s...)
}
