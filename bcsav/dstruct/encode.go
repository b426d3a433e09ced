package dstruct

import (
	"github.com/pkg/errors"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/lbytes"
)

// Encode writes the payload of a record: every field its revision carries, then the opaque
// tail. Sealing is left to the caller.
func Encode(record *Record) ([]byte, error) {
	ctx, err := dgate.NewContext(record.FormatRevision, record.Country)
	if err != nil {
		return nil, errors.Wrap(err, "dstruct.Encode error")
	}

	writer := lbytes.NewBytesWriter(estimateSize(record))
	walker := dfield.NewEncoder(writer, *ctx, record.DSTFlags)
	walker.SetBoolBytes(record.BoolBytes)
	walker.U32("format_revision", &record.FormatRevision)
	walkSections(walker, record, nil)
	if err := walker.Err(); err != nil {
		return nil, errors.Wrap(err, "dstruct.Encode error")
	}
	writer.WriteBytes(record.OpaqueTail)

	return writer.Bytes(), nil
}

// Clamp fits every value of the record into its declared width and every fixed shape into its
// declared size, leaving the record encodable. Fields of sections the revision does not carry
// are left alone; Encode never writes them.
func Clamp(record *Record) error {
	ctx, err := dgate.NewContext(record.FormatRevision, record.Country)
	if err != nil {
		return errors.Wrap(err, "dstruct.Clamp error")
	}

	walker := dfield.NewClamper(*ctx, record.DSTFlags)
	walker.SetBoolBytes(record.BoolBytes)
	walkSections(walker, record, nil)
	if err := walker.Err(); err != nil {
		return errors.Wrap(err, "dstruct.Clamp error")
	}
	record.DSTFlags = walker.DSTFlags()
	record.BoolBytes = walker.BoolBytes()

	return nil
}

// NewRecord returns an empty record with every fixed shape sized for the revision.
func NewRecord(revision uint32, country dgate.Country) (*Record, error) {
	record := Record{
		FormatRevision: revision,
		Country:        country,
	}
	if err := Clamp(&record); err != nil {
		return nil, errors.Wrap(err, "dstruct.NewRecord error")
	}
	return &record, nil
}

func estimateSize(record *Record) int {
	const baseline = 8192
	return baseline + len(record.OpaqueTail)
}
