// Package bcsav loads, edits and seals Battle Cats save files.
package bcsav

import (
	"fmt"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/dhash"
	"battlecats-savior/bcsav/dstruct"
	"battlecats-savior/bcsav/lbytes"
)

type (
	Record  = dstruct.Record
	Country = dgate.Country
	Trace   = dstruct.Trace

	ErrUnexpectedEOF       = lbytes.ErrUnexpectedEOF
	ErrInvalidUTF8         = lbytes.ErrInvalidUTF8
	ErrNegativeLength      = lbytes.ErrNegativeLength
	ErrIntegrityMismatch   = dhash.ErrIntegrityMismatch
	ErrCannotDetectCountry = dhash.ErrCannotDetectCountry
	ErrUnsupportedRevision = dgate.ErrUnsupportedRevision
	ErrUnknownCountry      = dgate.ErrUnknownCountry
	ErrSchemaDrift         = dfield.ErrSchemaDrift
	FieldError             = dfield.FieldError

	ErrInvalidJSON struct {
		Reason string
	}
	ErrMissingKey struct {
		Key string
	}
	ErrImmutableField struct {
		Key string
	}
	ErrUnknownPath struct {
		Path string
	}
)

const (
	KeyCountry        = "country"
	KeyFormatRevision = "format_revision"
	KeyOpaqueTail     = "opaque_tail"
	KeyDigest         = "digest"
)

var (
	RequiredKeys  = []string{KeyCountry, KeyFormatRevision}
	ImmutableKeys = []string{KeyCountry, KeyFormatRevision, KeyDigest}
)

func (r ErrInvalidJSON) Error() string {
	return fmt.Sprintf("invalid record JSON: %s", r.Reason)
}

func (r ErrMissingKey) Error() string {
	return fmt.Sprintf(`record JSON is missing the required key "%s"`, r.Key)
}

func (r ErrImmutableField) Error() string {
	return fmt.Sprintf(`"%s" is fixed when the save is decoded and cannot be edited`, r.Key)
}

func (r ErrUnknownPath) Error() string {
	return fmt.Sprintf(`no value at path "%s"`, r.Path)
}
