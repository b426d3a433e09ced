package bcsav

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/dhash"
	"battlecats-savior/bcsav/dstruct"
)

type sample struct {
	Name     string
	Country  Country
	Revision uint32
	Bytes    []byte
}

type EndToEndTestSuite struct {
	Samples []sample
	R       *require.Assertions
	suite.Suite
}

func newFilledRecord(r *require.Assertions, revision uint32, country Country) *Record {
	record, err := New(revision, country)
	r.NoError(err)

	record.CatFood = 1000
	record.XP = 50_000_000
	record.Story[0].ClearProgress = 1
	record.Cats = []uint32{1, 1, 1, 0, 1}
	record.CatUpgrades = []dfield.Upgrade{{Plus: 2, Base: 19}}
	record.InquiryCode = "7f3a9c1d2"
	record.PlayerID = lo.Ternary(country.IsJP(), "", "p-0042")
	record.TransferCode = "ab12c"
	record.ConfirmationCode = "0420"
	record.EventStages = dfield.ChapterGroup{
		Stars:    3,
		Stages:   2,
		Chapters: []dfield.ChapterStars{{}},
	}
	record.Talents = []dstruct.Talent{{CatID: 44, Items: []dfield.GatyaItem{{ID: 1, Value: 10}}}}
	record.SlotNames = []string{"main", "sub"}
	record.ZeroLegends = dfield.ChapterGroup{Stars: 1, Stages: 1, Chapters: []dfield.ChapterStars{{}}}
	r.NoError(dstruct.Clamp(record))
	return record
}

func (suite *EndToEndTestSuite) SetupSuite() {
	suite.R = suite.Require()
	revisions := []uint32{20}
	for _, gate := range dgate.Boundaries() {
		revisions = append(revisions, gate-1, gate)
	}
	revisions = append(revisions, 130000)

	for _, country := range dgate.Countries {
		for _, revision := range revisions {
			record := newFilledRecord(suite.R, revision, country)
			if revision > dstruct.LastKnownGate() {
				record.OpaqueTail = []byte{0xde, 0xad, 0xbe, 0xef}
			}
			bs, err := Dump(record)
			suite.R.NoError(err)
			suite.Samples = append(suite.Samples, sample{
				Name:     fmt.Sprintf("%s@%d", country, revision),
				Country:  country,
				Revision: revision,
				Bytes:    bs,
			})
		}
	}
}

func (suite *EndToEndTestSuite) TestRoundTrip() {
	for _, s := range suite.Samples {
		record, err := Load(s.Bytes, s.Country)
		suite.R.NoErrorf(err, s.Name)
		suite.R.Equalf(s.Revision, record.FormatRevision, s.Name)

		bs, err := Dump(record)
		suite.R.NoErrorf(err, s.Name)
		suite.R.Equalf(s.Bytes, bs, s.Name)
	}
}

func (suite *EndToEndTestSuite) TestDigestAfterSeal() {
	for _, s := range suite.Samples {
		record, err := Load(s.Bytes, s.Country)
		suite.R.NoError(err)
		bs, err := Dump(record)
		suite.R.NoError(err)

		payload := bs[:len(bs)-dhash.DigestSize]
		sum := md5.Sum(append([]byte(dhash.SaltPrefix+lo.Ternary(s.Country.IsJP(), "", string(s.Country))), payload...))
		suite.R.Equalf(hex.EncodeToString(sum[:]), string(bs[len(bs)-dhash.DigestSize:]), s.Name)
	}
}

func (suite *EndToEndTestSuite) TestAutodetect() {
	for _, s := range suite.Samples {
		record, err := LoadAuto(s.Bytes)
		suite.R.NoErrorf(err, s.Name)
		suite.R.Equalf(s.Country, record.Country, s.Name)
		suite.R.True(VerifyAny(s.Bytes))
	}
}

func (suite *EndToEndTestSuite) TestAutodetectRejection() {
	for _, s := range suite.Samples {
		corrupted := append([]byte{}, s.Bytes...)
		for i := len(corrupted) - dhash.DigestSize; i < len(corrupted); i++ {
			corrupted[i] = 'x'
		}

		_, err := Load(corrupted, s.Country)
		suite.R.True(errors.As(err, &ErrIntegrityMismatch{}), s.Name)
		_, err = LoadAuto(corrupted)
		suite.R.True(errors.As(err, &ErrCannotDetectCountry{}), s.Name)
	}
}

func (suite *EndToEndTestSuite) TestOpaqueTail() {
	for _, s := range suite.Samples {
		record, err := Load(s.Bytes, s.Country)
		suite.R.NoError(err)
		if s.Revision > dstruct.LastKnownGate() {
			suite.R.Equalf([]byte{0xde, 0xad, 0xbe, 0xef}, record.OpaqueTail, s.Name)
		} else {
			suite.R.Emptyf(record.OpaqueTail, s.Name)
		}
	}
}

func (suite *EndToEndTestSuite) TestJSONRoundTrip() {
	for _, s := range suite.Samples {
		record, err := Load(s.Bytes, s.Country)
		suite.R.NoError(err)

		bs, err := ToJSON(record, "  ")
		suite.R.NoError(err)
		restored, err := FromJSON(bs)
		suite.R.NoErrorf(err, s.Name)

		dumped, err := Dump(restored)
		suite.R.NoError(err)
		suite.R.Equalf(s.Bytes, dumped, s.Name)
	}
}

func (suite *EndToEndTestSuite) TestClone() {
	for _, s := range suite.Samples {
		record, err := Load(s.Bytes, s.Country)
		suite.R.NoError(err)

		clone, err := Clone(record)
		suite.R.NoError(err)
		dumped, err := Dump(clone)
		suite.R.NoError(err)
		suite.R.Equalf(s.Bytes, dumped, s.Name)

		clone.Cats[0] = 0
		clone.Story[0].ClearProgress = 9
		suite.R.Equal(uint32(1), record.Cats[0])
		suite.R.Equal(uint32(1), record.Story[0].ClearProgress)
	}
}

func (suite *EndToEndTestSuite) TestEditCatFood() {
	record := newFilledRecord(suite.R, dgate.RevisionTailScalars, dgate.CountryJP)
	input, err := Dump(record)
	suite.R.NoError(err)
	_, trace, err := dstruct.DecodeTrace(input, dgate.CountryJP)
	suite.R.NoError(err)
	entry, ok := trace.Get("cat_food")
	suite.R.True(ok)

	loaded, err := Load(input, dgate.CountryJP)
	suite.R.NoError(err)
	suite.R.Equal(uint32(1000), loaded.CatFood)
	suite.R.Equal(uint32(50_000_000), loaded.XP)

	edited, err := Set(loaded, "cat_food", 45000)
	suite.R.NoError(err)
	output, err := Dump(edited)
	suite.R.NoError(err)

	suite.R.Equal(len(input), len(output))
	suite.R.Equal(uint32(45000), binary.LittleEndian.Uint32(output[entry.Offset:entry.Offset+4]))
	payloadEnd := len(input) - dhash.DigestSize
	for i := 0; i < payloadEnd; i++ {
		if i >= entry.Offset && i < entry.Offset+4 {
			continue
		}
		suite.R.Equalf(input[i], output[i], "byte %d", i)
	}
	suite.R.NotEqual(input[payloadEnd:], output[payloadEnd:])
	suite.R.True(Verify(output, dgate.CountryJP))
}

func (suite *EndToEndTestSuite) TestUnknownTrailingBytes() {
	record := newFilledRecord(suite.R, dgate.RevisionLabyrinth, dgate.CountryEN)
	record.OpaqueTail = []byte{1, 2, 3, 4, 5, 6, 7}
	input, err := Dump(record)
	suite.R.NoError(err)

	loaded, err := Load(input, dgate.CountryEN)
	suite.R.NoError(err)
	suite.R.Len(loaded.OpaqueTail, 7)
	output, err := Dump(loaded)
	suite.R.NoError(err)
	suite.R.Equal(input, output)
}

func (suite *EndToEndTestSuite) TestFlippedDigest() {
	record := newFilledRecord(suite.R, dgate.RevisionTailScalars, dgate.CountryEN)
	input, err := Dump(record)
	suite.R.NoError(err)
	input[len(input)-1] ^= 0x01

	suite.R.False(Verify(input, dgate.CountryEN))
	_, err = Load(input, dgate.CountryEN)
	suite.R.True(errors.As(err, &ErrIntegrityMismatch{}))
	_, err = LoadAuto(input)
	suite.R.True(errors.As(err, &ErrCannotDetectCountry{}))
}

func (suite *EndToEndTestSuite) TestMinimalBaseline() {
	record, err := New(20, dgate.CountryEN)
	suite.R.NoError(err)
	record.CatFood = 30
	record.XP = 500
	record.NormalTickets = 1
	record.Story[0].ClearProgress = 1
	input, err := Dump(record)
	suite.R.NoError(err)

	loaded, err := Load(input, dgate.CountryEN)
	suite.R.NoError(err)
	suite.R.Equal(uint32(1), loaded.Story[0].ClearProgress)
	output, err := Dump(loaded)
	suite.R.NoError(err)
	suite.R.Equal(input, output)
}

func (suite *EndToEndTestSuite) TestTransferCodeShift() {
	record := newFilledRecord(suite.R, dgate.RevisionTailScalars, dgate.CountryEN)
	input, err := Dump(record)
	suite.R.NoError(err)
	_, before, err := dstruct.DecodeTrace(input, dgate.CountryEN)
	suite.R.NoError(err)

	loaded, err := Load(input, dgate.CountryEN)
	suite.R.NoError(err)
	suite.R.Equal("ab12c", loaded.TransferCode)
	edited, err := Set(loaded, "transfer_code", "abcdefg")
	suite.R.NoError(err)
	output, err := Dump(edited)
	suite.R.NoError(err)
	_, after, err := dstruct.DecodeTrace(output, dgate.CountryEN)
	suite.R.NoError(err)

	suite.R.Equal(len(input)+2, len(output))
	entry, ok := before.Get("transfer_code")
	suite.R.True(ok)
	suite.R.Equal(uint32(5), binary.LittleEndian.Uint32(input[entry.Offset:]))
	suite.R.Equal(uint32(7), binary.LittleEndian.Uint32(output[entry.Offset:]))
	suite.R.Equal("abcdefg", string(output[entry.Offset+4:entry.Offset+11]))

	suite.R.Equal(before.Keys(), after.Keys())
	for _, key := range before.Keys() {
		old, _ := before.Get(key)
		shifted, _ := after.Get(key)
		if old.Offset <= entry.Offset {
			suite.R.Equalf(old.Offset, shifted.Offset, key)
		} else {
			suite.R.Equalf(old.Offset+2, shifted.Offset, key)
		}
	}
	suite.R.Equal(
		input[entry.Offset+9:len(input)-dhash.DigestSize],
		output[entry.Offset+11:len(output)-dhash.DigestSize],
	)
	suite.R.True(Verify(output, dgate.CountryEN))
}

func TestEndToEndTestSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}
