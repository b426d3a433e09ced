package dstruct

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
	"battlecats-savior/bcsav/dhash"
	"battlecats-savior/bcsav/lbytes"
)

func newSampleRecord(t *testing.T, revision uint32, country dgate.Country) *Record {
	r, err := NewRecord(revision, country)
	require.NoError(t, err)

	r.CatFood = 1000
	r.XP = 50000000
	r.LastPlayed = dfield.Timestamp{Year: 2024, Year2: 2024, Month: 5, Month2: 5, Day: 1, Day2: 1, Seconds: 12.5}
	r.Story[0].ClearProgress = 1
	r.Story[0].Clears[0] = 3
	r.Lineups = [][]int32{{0, 1, 2, -1, -1, -1, -1, -1, -1, -1}}
	r.Cats = []uint32{1, 1, 0, 1}
	r.CatUpgrades = []dfield.Upgrade{{Plus: 0, Base: 9}, {Plus: 10, Base: 29}}
	r.InquiryCode = "a1b2c3d4e"
	if !country.IsJP() {
		r.PlayerID = "p-0042"
	}
	r.EventStages = dfield.ChapterGroup{
		Stars:  1,
		Stages: 2,
		Chapters: []dfield.ChapterStars{
			{Stars: []dfield.Chapter{{ClearProgress: 1, Clears: []uint32{1, 0}}}},
		},
	}
	r.GatyaEvents = []GatyaEvent{{Kind: GatyaEventRare, Banner: 602, Pulls: 11}}
	r.TransferCode = "abcde"
	r.ConfirmationCode = "1234"
	r.PurchasedPacks = []dfield.Pair[uint32, bool]{{Key: 3, Value: true}}
	r.Outbreaks = []dfield.Pair[uint32, []dfield.Pair[uint32, bool]]{
		{Key: 0, Value: []dfield.Pair[uint32, bool]{{Key: 1, Value: true}}},
	}
	r.Tower = dfield.ChapterGroup{
		Stars:    1,
		Stages:   3,
		Chapters: []dfield.ChapterStars{{Stars: []dfield.Chapter{{TimedScores: []uint32{120}}}}},
	}
	r.Unknown112 = &Unknown112{A: 1, B: 2, Stamp: 3.5}
	r.Talents = []Talent{{CatID: 25, Items: []dfield.GatyaItem{{ID: 1, Value: 10}}}}
	r.Unknown58 = 70000
	r.Medals.New = []dfield.Pair[uint16, uint8]{{Key: 4, Value: 1}}
	r.ClearedSlots = []ClearedSlot{{Index: 1, Cats: []int16{0, 1, -1}}}
	r.CatShrine.Flags = []uint8{1, 0, 1}
	r.SlotNames = []string{"main", "ユーバー"}
	r.ManagedItems = []ManagedItem{{Kind: ManagedItemPlatinumTicket, Amount: -1, Timestamp: 1700000000}}
	r.MapResets = []dfield.Pair[uint32, float64]{{Key: 7, Value: 1.25}}
	r.LabyrinthMedals = []uint16{1, 2}
	r.ZeroLegends = dfield.ChapterGroup{Stars: 2, Stages: 1}
	r.Unknown161 = -7

	require.NoError(t, Clamp(r))
	for i := range r.DSTFlags {
		r.DSTFlags[i] = i%2 == 0
	}
	return r
}

func seal(t *testing.T, r *Record) []byte {
	payload, err := Encode(r)
	require.NoError(t, err)
	return dhash.Seal(payload, r.Country)
}

func roundTrip(t *testing.T, r *Record) (*Record, *Trace, []byte) {
	bs := seal(t, r)
	decoded, trace, err := DecodeTrace(bs, r.Country)
	require.NoError(t, err)

	again := seal(t, decoded)
	require.Equal(t, bs, again)
	return decoded, trace, bs
}

func hasCheckpoint(trace *Trace) bool {
	return lo.SomeBy(trace.Keys(), func(key string) bool {
		return strings.HasPrefix(key, "gv_")
	})
}

func TestDecode_GateCoverage(t *testing.T) {
	for _, country := range dgate.Countries {
		for _, section := range Sections[1:] {
			gate := section.Gate.Since
			checkpoint := fmt.Sprintf("gv_%d", gate)

			_, before, _ := roundTrip(t, newSampleRecord(t, gate-1, country))
			_, ok := before.Get(checkpoint)
			assert.False(t, ok, "%s present below %d for %s", checkpoint, gate, country)

			_, at, _ := roundTrip(t, newSampleRecord(t, gate, country))
			entry, ok := at.Get(checkpoint)
			assert.True(t, ok, "%s missing at %d for %s", checkpoint, gate, country)
			assert.Equal(t, section.Name, entry.Section)
		}
	}
}

func TestDecode_Fields(t *testing.T) {
	in := newSampleRecord(t, dgate.RevisionTailScalars, dgate.CountryEN)
	out, _, bs := roundTrip(t, in)

	assert.Equal(t, in.CatFood, out.CatFood)
	assert.Equal(t, in.XP, out.XP)
	assert.Equal(t, in.LastPlayed, out.LastPlayed)
	assert.Equal(t, in.Story, out.Story)
	assert.Equal(t, in.Lineups, out.Lineups)
	assert.Equal(t, in.PlayerID, out.PlayerID)
	assert.Equal(t, in.EventStages, out.EventStages)
	assert.Equal(t, in.Tower, out.Tower)
	assert.Equal(t, in.Unknown112, out.Unknown112)
	assert.Equal(t, in.Outbreaks, out.Outbreaks)
	assert.Equal(t, in.SlotNames, out.SlotNames)
	assert.Equal(t, in.ManagedItems, out.ManagedItems)
	assert.Equal(t, in.Unknown161, out.Unknown161)
	assert.Equal(t, []bool{true, false, true, false}, out.DSTFlags)
	assert.Empty(t, out.OpaqueTail)
	assert.Equal(t, string(bs[len(bs)-dhash.DigestSize:]), out.Digest)
}

func TestDecode_CountryGates(t *testing.T) {
	_, jp, _ := roundTrip(t, newSampleRecord(t, dgate.RevisionTailScalars, dgate.CountryJP))
	_, en, _ := roundTrip(t, newSampleRecord(t, dgate.RevisionTailScalars, dgate.CountryEN))

	for _, name := range []string{"player_id", "dst_1", "dst_2", "unknown_112", "dst_3"} {
		_, ok := jp.Get(name)
		assert.False(t, ok, name)
		_, ok = en.Get(name)
		assert.True(t, ok, name)
	}

	jpUnknown58, _ := jp.Get("unknown_58")
	enUnknown58, _ := en.Get("unknown_58")
	assert.Equal(t, 2, jpUnknown58.Length)
	assert.Equal(t, 4, enUnknown58.Length)
}

func TestDecode_Baseline(t *testing.T) {
	in := newSampleRecord(t, 20, dgate.CountryEN)
	out, trace, _ := roundTrip(t, in)

	assert.False(t, hasCheckpoint(trace))
	assert.Equal(t, uint32(1), out.Story[0].ClearProgress)
	assert.Equal(t, "rare_tickets", lo.Must(lo.Last(trace.Keys())))
}

func TestDecode_OpaqueTail(t *testing.T) {
	tail := []byte{1, 2, 3, 4, 5, 6, 7}
	for _, revision := range []uint32{dgate.RevisionLabyrinth, 130000} {
		in := newSampleRecord(t, revision, dgate.CountryEN)
		in.OpaqueTail = tail

		out, trace, bs := roundTrip(t, in)
		assert.Equal(t, tail, out.OpaqueTail)

		entry, ok := trace.Get("opaque_tail")
		require.True(t, ok)
		assert.Equal(t, len(tail), entry.Length)
		assert.Equal(t, len(bs)-dhash.DigestSize-len(tail), entry.Offset)
	}
}

func TestDecode_RawBoolBytes(t *testing.T) {
	in := newSampleRecord(t, dgate.RevisionTailScalars, dgate.CountryEN)
	_, trace, bs := roundTrip(t, in)

	payload := append([]byte{}, bs[:len(bs)-dhash.DigestSize]...)
	mute, ok := trace.Get("mute_music")
	require.True(t, ok)
	payload[mute.Offset] = 2
	optional, ok := trace.Get("unknown_112")
	require.True(t, ok)
	payload[optional.Offset] = 9
	patched := dhash.Seal(payload, dgate.CountryEN)

	out, err := Decode(patched, dgate.CountryEN)
	require.NoError(t, err)
	assert.True(t, out.MuteMusic)
	assert.Equal(t, in.Unknown112, out.Unknown112)
	assert.Equal(t, map[string]uint8{"mute_music": 2, "unknown_112.present": 9}, out.BoolBytes)
	assert.Equal(t, patched, seal(t, out))

	require.NoError(t, Clamp(out))
	assert.Equal(t, patched, seal(t, out))

	out.MuteMusic = false
	require.NoError(t, Clamp(out))
	assert.Equal(t, map[string]uint8{"unknown_112.present": 9}, out.BoolBytes)
	again := seal(t, out)
	assert.Equal(t, uint8(0), again[mute.Offset])
	assert.Equal(t, uint8(9), again[optional.Offset])
}

func TestDecode_SchemaDrift(t *testing.T) {
	in := newSampleRecord(t, dgate.RevisionEvents, dgate.CountryEN)
	_, trace, bs := roundTrip(t, in)

	entry, ok := trace.Get("gv_20100")
	require.True(t, ok)
	payload := append([]byte{}, bs[:len(bs)-dhash.DigestSize]...)
	payload[entry.Offset] ^= 0xff

	_, err := Decode(dhash.Seal(payload, dgate.CountryEN), dgate.CountryEN)
	driftErr := dfield.ErrSchemaDrift{}
	require.True(t, errors.As(err, &driftErr))
	assert.Equal(t, "gv_20100", driftErr.Field)
	assert.Equal(t, entry.Offset, driftErr.Offset)
}

func TestDecode_StopsBeforeDigest(t *testing.T) {
	payload, err := Encode(newSampleRecord(t, 20, dgate.CountryKR))
	require.NoError(t, err)
	truncated := dhash.Seal(payload[:len(payload)-1], dgate.CountryKR)

	_, err = Decode(truncated, dgate.CountryKR)
	fieldErr := dfield.FieldError{}
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "rare_tickets", fieldErr.Field)

	eofErr := lbytes.ErrUnexpectedEOF{}
	require.True(t, errors.As(err, &eofErr))
	assert.Equal(t, 1, eofErr.Needed)
	assert.Equal(t, len(payload)-4, eofErr.Offset)
}

func TestDecode_UnsupportedRevision(t *testing.T) {
	for _, revision := range []uint32{0, dgate.MaxRevision + 1} {
		writer := lbytes.NewBytesWriter(0)
		writer.WriteUint32(revision)

		_, err := Decode(dhash.Seal(writer.Bytes(), dgate.CountryJP), dgate.CountryJP)
		revisionErr := dgate.ErrUnsupportedRevision{}
		require.True(t, errors.As(err, &revisionErr))
		assert.Equal(t, revision, revisionErr.Revision)
	}
}

func TestDecode_UnknownCountry(t *testing.T) {
	_, err := Decode(make([]byte, 64), dgate.Country("fr"))
	countryErr := dgate.ErrUnknownCountry{}
	assert.True(t, errors.As(err, &countryErr))
}
