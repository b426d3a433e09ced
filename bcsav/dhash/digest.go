package dhash

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/lbytes"
	"github.com/samber/lo"
)

func (r ErrIntegrityMismatch) Error() string {
	return fmt.Sprintf(
		`integrity mismatch for country "%s": trailer "%s", computed "%s"`,
		r.Country, r.Actual, r.Expected,
	)
}

func (r ErrCannotDetectCountry) Error() string {
	tried := lo.Map(
		r.Tried,
		func(country dgate.Country, _ int) string {
			return string(country)
		},
	)
	return fmt.Sprintf("cannot detect country: no salt among [%s] verifies the trailer", strings.Join(tried, ", "))
}

// Salt is "battlecats" for JP saves and "battlecats" followed by the lowercase tag otherwise.
func Salt(country dgate.Country) []byte {
	if country.IsJP() {
		return []byte(SaltPrefix)
	}
	return []byte(SaltPrefix + string(country))
}

func Digest(payload []byte, country dgate.Country) []byte {
	hasher := md5.New()
	hasher.Write(Salt(country))
	hasher.Write(payload)
	sum := hasher.Sum(nil)
	digest := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(digest, sum)
	return digest
}

// Split separates the payload from the 32-byte trailer.
func Split(bs []byte) ([]byte, []byte, error) {
	if len(bs) < DigestSize {
		return nil, nil, lbytes.ErrUnexpectedEOF{Offset: 0, Needed: DigestSize - len(bs)}
	}
	cut := len(bs) - DigestSize
	return bs[:cut], bs[cut:], nil
}

func Verify(bs []byte, country dgate.Country) bool {
	return Check(bs, country) == nil
}

// Check is Verify with the reason attached.
func Check(bs []byte, country dgate.Country) error {
	payload, trailer, err := Split(bs)
	if err != nil {
		return err
	}
	expected := Digest(payload, country)
	if !bytes.Equal(expected, trailer) {
		return ErrIntegrityMismatch{
			Country:  country,
			Expected: string(expected),
			Actual:   string(trailer),
		}
	}
	return nil
}

func Seal(payload []byte, country dgate.Country) []byte {
	sealed := make([]byte, 0, len(payload)+DigestSize)
	sealed = append(sealed, payload...)
	sealed = append(sealed, Digest(payload, country)...)
	return sealed
}

// Detect returns the first country whose salt verifies the trailer.
func Detect(bs []byte) (dgate.Country, error) {
	country, found := lo.Find(
		dgate.Countries,
		func(country dgate.Country) bool {
			return Verify(bs, country)
		},
	)
	if !found {
		return "", ErrCannotDetectCountry{Tried: dgate.Countries}
	}
	return country, nil
}
