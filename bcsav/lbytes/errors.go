package lbytes

import (
	"fmt"
)

type (
	ErrUnexpectedEOF struct {
		Offset int
		Needed int
	}
	ErrInvalidUTF8 struct {
		Offset int
	}
	ErrNegativeLength struct {
		Offset int
		Value  int32
	}
)

func (r ErrUnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of input at offset %d: %d more bytes needed", r.Offset, r.Needed)
}

func (r ErrInvalidUTF8) Error() string {
	return fmt.Sprintf("invalid UTF-8 string at offset %d", r.Offset)
}

func (r ErrNegativeLength) Error() string {
	return fmt.Sprintf("negative length %d at offset %d", r.Value, r.Offset)
}
