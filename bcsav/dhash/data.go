// Package dhash seals and verifies saves. The trailer is the lowercase hex MD5 of the payload
// prefixed with a salt derived from the country tag.
package dhash

import (
	"battlecats-savior/bcsav/dgate"
)

type (
	ErrIntegrityMismatch struct {
		Country  dgate.Country
		Expected string
		Actual   string
	}
	ErrCannotDetectCountry struct {
		Tried []dgate.Country
	}
)

const (
	DigestSize = 32
	SaltPrefix = "battlecats"
)
