package dgate

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	ErrUnsupportedRevision struct {
		Revision uint32
		Reason   string
	}
	ErrUnknownCountry struct {
		Value string
	}
)

func (r ErrUnsupportedRevision) Error() string {
	return fmt.Sprintf("unsupported revision %d: %s", r.Revision, r.Reason)
}

func (r ErrUnknownCountry) Error() string {
	return fmt.Sprintf(`unknown country tag "%s"; expected one of jp, en, kr, tw`, r.Value)
}

func ParseCountry(s string) (Country, error) {
	country := Country(strings.ToLower(strings.TrimSpace(s)))
	if !country.Valid() {
		return "", ErrUnknownCountry{Value: s}
	}
	return country, nil
}

func (c Country) Valid() bool {
	return lo.Contains(Countries, c)
}

func (c Country) IsJP() bool {
	return c == CountryJP
}

// CheckRevision rejects revisions that cannot belong to a real save. Anything inside the bounds
// decodes: sections the codec does not know end up in the opaque tail.
func CheckRevision(revision uint32) error {
	switch {
	case revision < MinRevision:
		return ErrUnsupportedRevision{Revision: revision, Reason: "below the oldest save format"}
	case revision > MaxRevision:
		return ErrUnsupportedRevision{Revision: revision, Reason: "not a game version"}
	}
	return nil
}

func NewContext(revision uint32, country Country) (*Context, error) {
	if !country.Valid() {
		return nil, ErrUnknownCountry{Value: string(country)}
	}
	if err := CheckRevision(revision); err != nil {
		return nil, errors.Wrap(err, "dgate.NewContext error")
	}
	return &Context{
		Revision: revision,
		Country:  country,
	}, nil
}

func Always() Gate {
	return Gate{}
}

func Since(revision uint32) Gate {
	return Gate{Since: revision}
}

func NotJP() Gate {
	return Gate{NotJP: true}
}

// And composes two gates as a logical AND.
func (g Gate) And(other Gate) Gate {
	return Gate{
		Since: lo.Max([]uint32{g.Since, other.Since}),
		NotJP: g.NotJP || other.NotJP,
	}
}

func (g Gate) Open(ctx Context) bool {
	if ctx.Revision < g.Since {
		return false
	}
	if g.NotJP && ctx.Country.IsJP() {
		return false
	}
	return true
}

func (g Gate) String() string {
	parts := make([]string, 0, 2)
	if g.Since > 0 {
		parts = append(parts, fmt.Sprintf("revision >= %d", g.Since))
	}
	if g.NotJP {
		parts = append(parts, "country != jp")
	}
	if len(parts) == 0 {
		return "always"
	}
	return strings.Join(parts, " && ")
}

// Select returns the width of the first rule whose gate is open, so rules are listed from the
// most specific to the least.
func (rules WidthRules) Select(ctx Context) (Width, bool) {
	rule, ok := lo.Find(
		rules,
		func(rule WidthRule) bool {
			return rule.Gate.Open(ctx)
		},
	)
	return rule.Width, ok
}

// Boundaries lists every revision gate known to the schema, oldest first.
func Boundaries() []uint32 {
	return []uint32{
		RevisionEvents,
		RevisionTreasureFestival,
		RevisionGatya,
		RevisionInventory,
		RevisionItemPack,
		RevisionOutbreaks,
		RevisionMissions,
		RevisionTower,
		RevisionChallenge,
		RevisionDojo,
		RevisionUncanny,
		RevisionGamatoto,
		RevisionTalents,
		RevisionNP,
		RevisionLeadership,
		RevisionMedals,
		RevisionGauntlets,
		RevisionCollabGauntlets,
		RevisionEnigma,
		RevisionClearedSlots,
		RevisionTalentOrbs,
		RevisionCatShrine,
		RevisionSlotNames,
		RevisionPlatinum,
		RevisionAku,
		RevisionZeroLegendsPrep,
		RevisionMiscMaps,
		RevisionBehemoth,
		RevisionExtraDialogs,
		RevisionLabyrinth,
		RevisionZeroLegends,
		RevisionVolume,
		RevisionTailScalars,
	}
}
