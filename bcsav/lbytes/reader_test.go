package lbytes

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadInt(t *testing.T) {
	reader := NewBytesReader(
		[]byte{
			3, 1, 4, 3,
			12, 34, 56, 78,
		},
	)

	resultInt1, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(50594051), resultInt1)

	resultInt2, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(1312301580), resultInt2)
	assert.Equal(t, 0, reader.Remaining())
}

func TestReader_Primitives(t *testing.T) {
	writer := NewBytesWriter(64)
	writer.WriteUint8(0xFE)
	writer.WriteInt8(-2)
	writer.WriteUint16(0xBEEF)
	writer.WriteInt16(-300)
	writer.WriteUint32(0xDEADBEEF)
	writer.WriteUint64(math.MaxUint64 - 1)
	writer.WriteLong(-5)
	writer.WriteFloat(1.5)
	writer.WriteDouble(-2.25)
	writer.WriteBool(true)
	writer.WriteString("nyanko")

	reader := NewBytesReader(writer.Bytes())
	u8, _ := reader.ReadUint8()
	i8, _ := reader.ReadInt8()
	u16, _ := reader.ReadUint16()
	i16, _ := reader.ReadInt16()
	u32, _ := reader.ReadUint32()
	u64, _ := reader.ReadUint64()
	i64, _ := reader.ReadLong()
	f32, _ := reader.ReadFloat()
	f64, _ := reader.ReadDouble()
	b, _ := reader.ReadBool()
	s, err := reader.ReadString()
	require.NoError(t, err)

	assert.Equal(t, uint8(0xFE), u8)
	assert.Equal(t, int8(-2), i8)
	assert.Equal(t, uint16(0xBEEF), u16)
	assert.Equal(t, int16(-300), i16)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	assert.Equal(t, uint64(math.MaxUint64-1), u64)
	assert.Equal(t, int64(-5), i64)
	assert.Equal(t, float32(1.5), f32)
	assert.Equal(t, -2.25, f64)
	assert.True(t, b)
	assert.Equal(t, "nyanko", s)
	assert.Equal(t, 0, reader.Remaining())
}

func TestReader_UnexpectedEOF(t *testing.T) {
	reader := NewBytesReader([]byte{1, 2, 3, 4, 5})
	_, err := reader.ReadUint32()
	require.NoError(t, err)

	_, err = reader.ReadUint32()
	var eof ErrUnexpectedEOF
	require.True(t, errors.As(err, &eof))
	assert.Equal(t, 4, eof.Offset)
	assert.Equal(t, 3, eof.Needed)
	// a failed read does not move the cursor
	assert.Equal(t, 4, reader.Position())
}

func TestReader_NegativeLength(t *testing.T) {
	reader := NewBytesReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 'a'})
	_, err := reader.ReadString()

	var negative ErrNegativeLength
	require.True(t, errors.As(err, &negative))
	assert.Equal(t, 0, negative.Offset)
	assert.Equal(t, int32(-1), negative.Value)
}

func TestReader_InvalidUTF8(t *testing.T) {
	reader := NewBytesReader([]byte{2, 0, 0, 0, 0xC3, 0x28})
	_, err := reader.ReadString()

	var invalid ErrInvalidUTF8
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 4, invalid.Offset)
}

func TestReader_EmptyString(t *testing.T) {
	writer := NewBytesWriter(4)
	writer.WriteString("")
	assert.Equal(t, []byte{0, 0, 0, 0}, writer.Bytes())

	s, err := NewBytesReader(writer.Bytes()).ReadString()
	assert.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestReader_Seek(t *testing.T) {
	reader := NewBytesReader([]byte{1, 2, 3})
	assert.NoError(t, reader.Seek(2))
	v, err := reader.ReadUint8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(3), v)
	assert.Error(t, reader.Seek(4))
}
