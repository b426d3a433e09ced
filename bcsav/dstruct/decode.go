package dstruct

import (
	"github.com/pkg/errors"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/dhash"
	"battlecats-savior/bcsav/lbytes"
	"battlecats-savior/ds"
)

// Trace maps every top level field walked during decode to where it sits in the payload.
type Trace = ds.LinkedHashMap[string, TraceEntry]

// walkSections is the single pass shared by decode, encode and clamp.
func walkSections(w *dfield.Walker, r *Record, onSection func(Section)) {
	for _, section := range Sections {
		if !w.Open(section.Gate) {
			return
		}
		if onSection != nil {
			onSection(section)
		}
		section.Walk(w, r)
		if section.Gate.Since > 0 {
			w.Checkpoint(section.Gate.Since)
		}
		if w.Err() != nil {
			return
		}
	}
}

// Decode reads a whole save, digest included. It does not check the digest; see dhash.Check.
func Decode(bs []byte, country dgate.Country) (*Record, error) {
	record, err := decode(bs, country, nil)
	if err != nil {
		return nil, errors.Wrap(err, "dstruct.Decode error")
	}
	return record, nil
}

// DecodeTrace is Decode that also reports the position of every top level field.
func DecodeTrace(bs []byte, country dgate.Country) (*Record, *Trace, error) {
	trace := ds.NewLinkedHashMap[string, TraceEntry]()
	record, err := decode(bs, country, trace)
	if err != nil {
		return nil, nil, errors.Wrap(err, "dstruct.DecodeTrace error")
	}
	return record, trace, nil
}

func decode(bs []byte, country dgate.Country, trace *Trace) (*Record, error) {
	if !country.Valid() {
		return nil, dgate.ErrUnknownCountry{Value: string(country)}
	}
	payload, digest, err := dhash.Split(bs)
	if err != nil {
		return nil, err
	}

	reader := lbytes.NewBytesReader(payload)
	walker := dfield.NewDecoder(reader, dgate.Context{Country: country})
	record := Record{Country: country}

	section := Sections[0]
	if trace != nil {
		walker.OnField(func(name string, offset int, length int) {
			trace.Put(name, TraceEntry{
				Offset:  offset,
				Length:  length,
				Section: section.Name,
				Gate:    section.Gate.String(),
			})
		})
	}

	walker.U32("format_revision", &record.FormatRevision)
	if err := walker.Err(); err != nil {
		return nil, err
	}
	ctx, err := dgate.NewContext(record.FormatRevision, country)
	if err != nil {
		return nil, err
	}
	walker.SetContext(*ctx)

	walkSections(walker, &record, func(next Section) {
		section = next
	})
	if err := walker.Err(); err != nil {
		return nil, err
	}

	// Anything the schema did not claim belongs to a revision newer than the codec knows.
	tailOffset := reader.Position()
	record.OpaqueTail, err = reader.ReadBytes(reader.Remaining())
	if err != nil {
		return nil, err
	}
	if trace != nil && len(record.OpaqueTail) > 0 {
		trace.Put("opaque_tail", TraceEntry{
			Offset:  tailOffset,
			Length:  len(record.OpaqueTail),
			Section: "opaque_tail",
			Gate:    dgate.Always().String(),
		})
	}
	record.DSTFlags = walker.DSTFlags()
	record.BoolBytes = walker.BoolBytes()
	record.Digest = string(digest)

	return &record, nil
}
