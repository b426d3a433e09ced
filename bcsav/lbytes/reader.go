package lbytes

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		bs:  bs,
		pos: 0,
	}
}

func (b *Reader) Position() int {
	return b.pos
}

func (b *Reader) Len() int {
	return len(b.bs)
}

func (b *Reader) Remaining() int {
	return len(b.bs) - b.pos
}

// Seek moves the cursor to an absolute position. Decoding never calls it; it exists for the
// integrity layer, which reads the trailer before the payload is walked.
func (b *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(b.bs) {
		return ErrUnexpectedEOF{Offset: b.pos, Needed: pos - len(b.bs)}
	}
	b.pos = pos
	return nil
}

// Require fails with ErrUnexpectedEOF unless n more bytes are available.
func (b *Reader) Require(n int) error {
	if n < 0 || b.Remaining() < n {
		return ErrUnexpectedEOF{Offset: b.pos, Needed: n - b.Remaining()}
	}
	return nil
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	if err := b.Require(n); err != nil {
		return nil, err
	}
	bs := make([]byte, n)
	copy(bs, b.bs[b.pos:b.pos+n])
	b.pos += n
	return bs, nil
}

func (b *Reader) next(n int) ([]byte, error) {
	if err := b.Require(n); err != nil {
		return nil, err
	}
	bs := b.bs[b.pos : b.pos+n]
	b.pos += n
	return bs, nil
}

func (b *Reader) ReadUint8() (uint8, error) {
	bs, err := b.next(SizeUint8)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs, err := b.next(SizeUint16)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs, err := b.next(SizeUint32)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadInt() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

func (b *Reader) ReadUint64() (uint64, error) {
	bs, err := b.next(SizeUint64)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bs), nil
}

func (b *Reader) ReadLong() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

func (b *Reader) ReadFloat() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

func (b *Reader) ReadDouble() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

func (b *Reader) ReadBool() (bool, error) {
	v, err := b.ReadUint8()
	return v != 0, err
}

// ReadLength reads a u32 length prefix. The game writes it from a signed counter, so a value
// with the top bit set is rejected instead of being treated as a huge count.
func (b *Reader) ReadLength() (int, error) {
	offset := b.pos
	v, err := b.ReadInt()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, ErrNegativeLength{Offset: offset, Value: v}
	}
	return int(v), nil
}

func (b *Reader) ReadString() (string, error) {
	n, err := b.ReadLength()
	if err != nil {
		return "", err
	}
	return b.ReadStringFixed(n)
}

func (b *Reader) ReadStringFixed(n int) (string, error) {
	offset := b.pos
	bs, err := b.next(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bs) {
		b.pos = offset
		return "", ErrInvalidUTF8{Offset: offset}
	}
	return string(bs), nil
}
