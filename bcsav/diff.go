package bcsav

import (
	"fmt"

	"github.com/gabstv/go-bsdiff/pkg/bsdiff"
	"github.com/gabstv/go-bsdiff/pkg/bspatch"
	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// Diff builds a binary patch that turns one save into another.
func Diff(from []byte, to []byte) ([]byte, error) {
	patch, err := bsdiff.Bytes(from, to)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Diff error")
	}
	return patch, nil
}

func Patch(from []byte, patch []byte) ([]byte, error) {
	to, err := bspatch.Bytes(from, patch)
	if err != nil {
		return nil, errors.Wrap(err, "bcsav.Patch error")
	}
	return to, nil
}

// Fingerprint identifies a save by content; backups are named after it.
func Fingerprint(bs []byte) uint64 {
	return xxh3.Hash(bs)
}

func FingerprintHex(bs []byte) string {
	return fmt.Sprintf("%016x", Fingerprint(bs))
}
