package dfield

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"

	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/lbytes"
	"battlecats-savior/ds"
)

// NewDecoder reads from r. The context revision is usually unknown at this point; the driver
// fills it in with SetContext once the first field is read.
func NewDecoder(r *lbytes.Reader, ctx dgate.Context) *Walker {
	return &Walker{
		mode:    ModeDecode,
		ctx:     ctx,
		reader:  r,
		dstIn:   ds.NewQueue[bool](),
		dstOut:  ds.NewQueue[bool](),
		boolOut: map[string]uint8{},
	}
}

// NewEncoder writes to w. dst holds the flags captured on decode, consumed in the same order.
func NewEncoder(w *lbytes.Writer, ctx dgate.Context, dst []bool) *Walker {
	return &Walker{
		mode:    ModeEncode,
		ctx:     ctx,
		writer:  w,
		dstIn:   ds.NewQueue(dst...),
		dstOut:  ds.NewQueue[bool](),
		boolOut: map[string]uint8{},
	}
}

// NewClamper neither reads nor writes. It fits every value into its declared width and every
// fixed shape into its declared size.
func NewClamper(ctx dgate.Context, dst []bool) *Walker {
	return &Walker{
		mode:    ModeClamp,
		ctx:     ctx,
		dstIn:   ds.NewQueue(dst...),
		dstOut:  ds.NewQueue[bool](),
		boolOut: map[string]uint8{},
	}
}

func (w *Walker) Mode() Mode {
	return w.mode
}

func (w *Walker) Context() dgate.Context {
	return w.ctx
}

func (w *Walker) SetContext(ctx dgate.Context) {
	w.ctx = ctx
}

func (w *Walker) Open(gate dgate.Gate) bool {
	return gate.Open(w.ctx)
}

func (w *Walker) OnField(fn func(name string, offset int, length int)) {
	w.onField = fn
}

func (w *Walker) Err() error {
	return w.err
}

// SetBoolBytes hands the walk the bytes BoolBytes reported for an earlier walk of the record.
func (w *Walker) SetBoolBytes(bytes map[string]uint8) {
	w.boolIn = bytes
}

// BoolBytes returns, by field path, every true flag whose byte was not 1. It is nil when all of
// them were canonical.
func (w *Walker) BoolBytes() map[string]uint8 {
	if len(w.boolOut) == 0 {
		return nil
	}
	return w.boolOut
}

// DSTFlags returns the flags met so far, in walk order.
func (w *Walker) DSTFlags() []bool {
	return w.dstOut.Items()
}

func (w *Walker) Position() int {
	switch w.mode {
	case ModeDecode:
		return w.reader.Position()
	case ModeEncode:
		return w.writer.Position()
	}
	return 0
}

func (w *Walker) Path() string {
	return strings.Join(w.path, ".")
}

func (w *Walker) enter(name string) int {
	w.path = append(w.path, name)
	return w.Position()
}

func (w *Walker) leave(start int) {
	name := w.path[len(w.path)-1]
	w.path = w.path[:len(w.path)-1]
	if len(w.path) == 0 && w.err == nil && w.onField != nil {
		w.onField(name, start, w.Position()-start)
	}
}

func (w *Walker) fail(err error) {
	if w.err != nil {
		return
	}
	w.err = FieldError{
		Field:  w.Path(),
		Offset: w.Position(),
		Err:    err,
	}
}

func (w *Walker) drift(offset int, reason string) {
	if w.err != nil {
		return
	}
	w.err = ErrSchemaDrift{
		Field:  w.Path(),
		Offset: offset,
		Reason: reason,
	}
}

// Group walks body as one named field. Only top level names reach the trace.
func (w *Walker) Group(name string, body func()) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)
	body()
}

func primitive[T any](
	w *Walker,
	name string,
	v *T,
	read func(*lbytes.Reader) (T, error),
	write func(*lbytes.Writer, T),
) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)

	switch w.mode {
	case ModeDecode:
		value, err := read(w.reader)
		if err != nil {
			w.fail(err)
			return
		}
		*v = value
	case ModeEncode:
		write(w.writer, *v)
	}
}

func (w *Walker) U8(name string, v *uint8) {
	primitive(w, name, v, (*lbytes.Reader).ReadUint8, (*lbytes.Writer).WriteUint8)
}

func (w *Walker) U16(name string, v *uint16) {
	primitive(w, name, v, (*lbytes.Reader).ReadUint16, (*lbytes.Writer).WriteUint16)
}

func (w *Walker) I16(name string, v *int16) {
	primitive(w, name, v, (*lbytes.Reader).ReadInt16, (*lbytes.Writer).WriteInt16)
}

func (w *Walker) U32(name string, v *uint32) {
	primitive(w, name, v, (*lbytes.Reader).ReadUint32, (*lbytes.Writer).WriteUint32)
}

func (w *Walker) I32(name string, v *int32) {
	primitive(w, name, v, (*lbytes.Reader).ReadInt, (*lbytes.Writer).WriteInt)
}

func (w *Walker) U64(name string, v *uint64) {
	primitive(w, name, v, (*lbytes.Reader).ReadUint64, (*lbytes.Writer).WriteUint64)
}

func (w *Walker) I64(name string, v *int64) {
	primitive(w, name, v, (*lbytes.Reader).ReadLong, (*lbytes.Writer).WriteLong)
}

func (w *Walker) F64(name string, v *float64) {
	primitive(w, name, v, (*lbytes.Reader).ReadDouble, (*lbytes.Writer).WriteDouble)
}

// Bool reads any nonzero byte as true. A true byte other than 1 is kept under the field path and
// written back unchanged while the flag stays true.
func (w *Walker) Bool(name string, v *bool) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)
	w.flag(v)
}

func (w *Walker) flag(v *bool) {
	path := w.Path()
	raw, kept := w.boolIn[path]
	kept = kept && raw > 1 && *v

	switch w.mode {
	case ModeDecode:
		b, err := w.reader.ReadUint8()
		if err != nil {
			w.fail(err)
			return
		}
		*v = b != 0
		if b > 1 {
			w.boolOut[path] = b
		}
	case ModeEncode:
		switch {
		case kept:
			w.writer.WriteUint8(raw)
		default:
			w.writer.WriteBool(*v)
		}
	case ModeClamp:
		if kept {
			w.boolOut[path] = raw
		}
	}
}

func (w *Walker) String(name string, v *string) {
	primitive(w, name, v, (*lbytes.Reader).ReadString, (*lbytes.Writer).WriteString)
}

func widthMax(width dgate.Width) uint32 {
	switch width {
	case dgate.Width8:
		return math.MaxUint8
	case dgate.Width16:
		return math.MaxUint16
	}
	return math.MaxUint32
}

// Uint walks an unsigned value whose width depends on the walk context. The value is held as
// uint32 in memory whatever its width on the wire. Encoding refuses a value wider than the
// wire; Clamp is what narrows it.
func (w *Walker) Uint(name string, rules dgate.WidthRules, v *uint32) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)

	width, ok := rules.Select(w.ctx)
	if !ok {
		w.drift(start, fmt.Sprintf("no width rule is open for %+v", w.ctx))
		return
	}

	switch w.mode {
	case ModeDecode:
		var value uint32
		var err error
		switch width {
		case dgate.Width8:
			var u8 uint8
			u8, err = w.reader.ReadUint8()
			value = uint32(u8)
		case dgate.Width16:
			var u16 uint16
			u16, err = w.reader.ReadUint16()
			value = uint32(u16)
		default:
			value, err = w.reader.ReadUint32()
		}
		if err != nil {
			w.fail(err)
			return
		}
		*v = value
	case ModeEncode:
		if *v > widthMax(width) {
			w.drift(start, fmt.Sprintf("value %d does not fit in %d bits", *v, int(width)*8))
			return
		}
		switch width {
		case dgate.Width8:
			w.writer.WriteUint8(uint8(*v))
		case dgate.Width16:
			w.writer.WriteUint16(uint16(*v))
		default:
			w.writer.WriteUint32(*v)
		}
	case ModeClamp:
		*v = lo.Min([]uint32{*v, widthMax(width)})
	}
}

// Checkpoint walks the gv_<gate> marker that closes a gated section. Its value is the gate
// itself, so any other value means the schema and the bytes went out of step.
func (w *Walker) Checkpoint(gate uint32) {
	if w.err != nil {
		return
	}
	start := w.enter(fmt.Sprintf("gv_%d", gate))
	defer w.leave(start)

	switch w.mode {
	case ModeDecode:
		value, err := w.reader.ReadUint32()
		if err != nil {
			w.fail(err)
			return
		}
		if value != gate {
			w.drift(start, fmt.Sprintf("checkpoint holds %d, expected %d", value, gate))
		}
	case ModeEncode:
		w.writer.WriteUint32(gate)
	}
}

// DST walks one daylight saving flag. Decoding queues the flag; encoding consumes the queue in
// the same order, writing false once it runs dry.
func (w *Walker) DST(name string) {
	if w.err != nil {
		return
	}
	start := w.enter(name)
	defer w.leave(start)

	var flag bool
	if w.mode != ModeDecode {
		flag, _ = w.dstIn.Pop()
	}
	w.flag(&flag)
	if w.err == nil && w.mode != ModeEncode {
		w.dstOut.Push(flag)
	}
}
