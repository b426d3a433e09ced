package dfield

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	// FieldError attaches the schema path of the failing field to a stream error.
	FieldError struct {
		Field  string
		Offset int
		Err    error
	}
	// ErrSchemaDrift means the bytes disagree with what the schema expects at a position that
	// should be unambiguous, such as a revision checkpoint.
	ErrSchemaDrift struct {
		Field  string
		Offset int
		Reason string
	}
)

func (r FieldError) Error() string {
	return fmt.Sprintf("field %s at offset %d: %s", r.Field, r.Offset, r.Err.Error())
}

func (r FieldError) Unwrap() error {
	return r.Err
}

func (r ErrSchemaDrift) Error() string {
	return fmt.Sprintf("schema drift at field %s (offset %d): %s", r.Field, r.Offset, r.Reason)
}

func (k ChapterGroupKind) String() string {
	if k < 0 || int(k) >= len(chapterGroupKindNames) {
		return fmt.Sprintf("chapter_group_%d", int(k))
	}
	return chapterGroupKindNames[k]
}

func (k ChapterGroupKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ChapterGroupKind) UnmarshalText(bs []byte) error {
	for i, name := range chapterGroupKindNames {
		if name == string(bs) {
			*k = ChapterGroupKind(i)
			return nil
		}
	}
	return errors.Errorf(`unknown chapter group kind "%s"`, string(bs))
}

// Timed reports whether the group carries a timed score block after the clear counts.
func (k ChapterGroupKind) Timed() bool {
	return k == ChapterGroupTower || k == ChapterGroupZeroLegend
}
