package dstruct

import (
	"fmt"

	"github.com/samber/lo"

	"battlecats-savior/bcsav/dfield"
	"battlecats-savior/bcsav/dgate"
)

var (
	managedItemKindNames = map[ManagedItemKind]string{
		ManagedItemCatFood:        "cat_food",
		ManagedItemRareTicket:     "rare_ticket",
		ManagedItemPlatinumTicket: "platinum_ticket",
		ManagedItemLegendTicket:   "legend_ticket",
	}
	gatyaEventKindNames = map[GatyaEventKind]string{
		GatyaEventNormal:      "normal",
		GatyaEventRare:        "rare",
		GatyaEventCollab:      "collab",
		GatyaEventFirstRare:   "first_rare",
		GatyaEventFirstRare10: "first_rare_10",
	}
)

// Kinds the game does not define yet keep their number, so they still round trip.
func (k ManagedItemKind) String() string {
	if name, ok := managedItemKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("managed_item_%d", uint32(k))
}

func (k GatyaEventKind) String() string {
	if name, ok := gatyaEventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("gatya_event_%d", uint8(k))
}

func (r *Record) Context() dgate.Context {
	return dgate.Context{
		Revision: r.FormatRevision,
		Country:  r.Country,
	}
}

// FindSection looks a section up by name.
func FindSection(name string) (Section, bool) {
	return lo.Find(Sections, func(section Section) bool {
		return section.Name == name
	})
}

// OpenSections returns the sections a save with this context carries, in wire order.
func OpenSections(ctx dgate.Context) []Section {
	open := make([]Section, 0, len(Sections))
	for _, section := range Sections {
		if !section.Gate.Open(ctx) {
			break
		}
		open = append(open, section)
	}
	return open
}

// LastKnownGate is the newest revision the schema describes.
func LastKnownGate() uint32 {
	return Sections[len(Sections)-1].Gate.Since
}

var (
	fieldSections = indexFieldSections()
)

// indexFieldSections walks an empty record at the newest revision to learn which section owns
// each top level field name.
func indexFieldSections() map[string]Section {
	index := make(map[string]Section)
	ctx := dgate.Context{Revision: dgate.MaxRevision, Country: dgate.CountryEN}
	walker := dfield.NewClamper(ctx, nil)

	current := Sections[0]
	walker.OnField(func(name string, _ int, _ int) {
		index[name] = current
	})
	walkSections(walker, &Record{}, func(section Section) {
		current = section
	})
	return index
}

// FieldSection returns the section that carries a top level field.
func FieldSection(name string) (Section, bool) {
	section, ok := fieldSections[name]
	return section, ok
}
