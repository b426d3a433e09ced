package bcsav

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/dhash"
	"battlecats-savior/bcsav/dstruct"
)

// Load verifies the digest against the country's salt, then decodes.
func Load(bs []byte, country Country) (*Record, error) {
	if !country.Valid() {
		return nil, ErrUnknownCountry{Value: string(country)}
	}
	if err := dhash.Check(bs, country); err != nil {
		return nil, errors.Wrap(err, "bcsav.Load error")
	}
	record, err := dstruct.Decode(bs, country)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Load error")
	}
	return record, nil
}

// LoadTrace is Load that also returns where each top level field sits in the payload.
func LoadTrace(bs []byte, country Country) (*Record, *Trace, error) {
	if !country.Valid() {
		return nil, nil, ErrUnknownCountry{Value: string(country)}
	}
	if err := dhash.Check(bs, country); err != nil {
		return nil, nil, errors.Wrap(err, "bcsav.LoadTrace error")
	}
	record, trace, err := dstruct.DecodeTrace(bs, country)
	if err != nil {
		return nil, nil, errors.Wrap(err, "bcsav.LoadTrace error")
	}
	return record, trace, nil
}

// LoadAuto tries every country's salt and decodes with the first that verifies. The decoder
// never runs when none does.
func LoadAuto(bs []byte) (*Record, error) {
	country, err := dhash.Detect(bs)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.LoadAuto error")
	}
	return Load(bs, country)
}

// Dump encodes a clamped copy of the record and appends a fresh digest. The record itself is
// left as it was.
func Dump(record *Record) ([]byte, error) {
	clamped, err := Clone(record)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Dump error")
	}
	if err := dstruct.Clamp(clamped); err != nil {
		return nil, errors.Wrap(err, "bcsav.Dump error")
	}
	payload, err := dstruct.Encode(clamped)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Dump error")
	}
	return dhash.Seal(payload, record.Country), nil
}

// Verify checks the digest only; the payload is not decoded.
func Verify(bs []byte, country Country) bool {
	return dhash.Verify(bs, country)
}

// VerifyAny reports whether any country's salt verifies the digest.
func VerifyAny(bs []byte) bool {
	_, err := dhash.Detect(bs)
	return err == nil
}

func Detect(bs []byte) (Country, error) {
	return dhash.Detect(bs)
}

// New returns an empty record ready to be filled and dumped.
func New(revision uint32, country Country) (*Record, error) {
	return dstruct.NewRecord(revision, country)
}

// Sections lists the schema sections a record of this revision and country carries.
func Sections(record *Record) []string {
	return lo.Map(dstruct.OpenSections(record.Context()), func(section dstruct.Section, _ int) string {
		return section.Name
	})
}

// RequireSection fails with ErrUnsupportedRevision when the record's revision does not carry
// the named section.
func RequireSection(record *Record, name string) error {
	section, ok := dstruct.FindSection(name)
	if !ok {
		return ErrUnsupportedRevision{
			Revision: record.FormatRevision,
			Reason:   "section " + name + " is not described by the schema",
		}
	}
	if !section.Gate.Open(record.Context()) {
		return ErrUnsupportedRevision{
			Revision: record.FormatRevision,
			Reason:   "section " + name + " requires " + section.Gate.String(),
		}
	}
	return nil
}

// RequireField is RequireSection for the section that owns a top level field.
func RequireField(record *Record, field string) error {
	section, ok := dstruct.FieldSection(field)
	if !ok {
		return nil
	}
	if !section.Gate.Open(record.Context()) {
		return ErrUnsupportedRevision{
			Revision: record.FormatRevision,
			Reason:   "field " + field + " requires " + section.Gate.String(),
		}
	}
	return nil
}

func ParseCountry(s string) (Country, error) {
	return dgate.ParseCountry(s)
}
