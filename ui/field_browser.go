package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/iancoleman/orderedmap"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"battlecats-savior/bcsav"
)

const (
	ModeBrowse = "browse"
	ModeFilter = "filter"
	ModeEdit   = "edit"
	PageSize   = 20
)

// SaveFunc persists an edited record; the CLI supplies one that keeps a backup.
type SaveFunc func(path string, record *bcsav.Record) error

type FieldBrowser struct {
	path   string
	record *bcsav.Record
	rows   *orderedmap.OrderedMap
	keys   []string
	cursor int
	filter string
	mode   string
	input  string
	status string
	dirty  bool
	save   SaveFunc
}

func NewFieldBrowser(path string, record *bcsav.Record, save SaveFunc) (*FieldBrowser, error) {
	browser := FieldBrowser{
		path:   path,
		record: record,
		mode:   ModeBrowse,
		save:   save,
	}
	if err := browser.refresh(); err != nil {
		return nil, err
	}
	return &browser, nil
}

func (b *FieldBrowser) Record() *bcsav.Record {
	return b.record
}

func (b *FieldBrowser) Mode() string {
	return b.mode
}

func (b *FieldBrowser) Keys() []string {
	return b.keys
}

func (b *FieldBrowser) Selected() (string, bool) {
	if len(b.keys) == 0 {
		return "", false
	}
	return b.keys[b.cursor], true
}

func (b *FieldBrowser) refresh() error {
	rows, err := Flatten(b.record)
	if err != nil {
		return err
	}
	b.rows = rows
	b.applyFilter()
	return nil
}

func (b *FieldBrowser) applyFilter() {
	b.keys = lo.Filter(b.rows.Keys(), func(key string, _ int) bool {
		return strings.Contains(key, b.filter)
	})
	b.cursor = lo.Clamp(b.cursor, 0, lo.Max([]int{len(b.keys) - 1, 0}))
}

func (b *FieldBrowser) commitEdit() {
	key, ok := b.Selected()
	if !ok {
		return
	}

	var updated *bcsav.Record
	var err error
	if gjson.Valid(b.input) {
		updated, err = bcsav.SetRaw(b.record, key, b.input)
	} else {
		updated, err = bcsav.Set(b.record, key, b.input)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", key).Msg("edit rejected")
		b.status = "Edit rejected: " + err.Error()
		return
	}

	b.record = updated
	b.dirty = true
	if err := b.refresh(); err != nil {
		b.status = "Refresh failed: " + err.Error()
		return
	}
	value, _ := b.rows.Get(key)
	b.status = fmt.Sprintf("%s = %v", key, value)
}

func (b *FieldBrowser) commitSave() {
	if b.save == nil {
		b.status = "Saving is disabled"
		return
	}
	if err := b.save(b.path, b.record); err != nil {
		log.Error().Err(err).Str("path", b.path).Msg("save failed")
		b.status = "Save failed: " + err.Error()
		return
	}
	b.dirty = false
	b.status = "Saved to " + b.path
}

func (b *FieldBrowser) updateInput(key tea.KeyMsg, done func()) {
	switch key.Type {
	case tea.KeyEnter:
		done()
		b.mode = ModeBrowse
	case tea.KeyEsc:
		b.mode = ModeBrowse
	case tea.KeyBackspace:
		if len(b.input) > 0 {
			runes := []rune(b.input)
			b.input = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		b.input += string(key.Runes)
	}
}

func (b *FieldBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch b.mode {
	case ModeFilter:
		b.updateInput(key, func() {})
		b.filter = b.input
		b.applyFilter()
		return b, nil
	case ModeEdit:
		b.updateInput(key, b.commitEdit)
		return b, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return b, tea.Quit
	case "up", "k":
		b.cursor = lo.Max([]int{b.cursor - 1, 0})
	case "down", "j":
		b.cursor = lo.Min([]int{b.cursor + 1, lo.Max([]int{len(b.keys) - 1, 0})})
	case "pgup":
		b.cursor = lo.Max([]int{b.cursor - PageSize, 0})
	case "pgdown":
		b.cursor = lo.Min([]int{b.cursor + PageSize, lo.Max([]int{len(b.keys) - 1, 0})})
	case "/":
		b.mode = ModeFilter
		b.input = b.filter
	case "e", "enter":
		if _, ok := b.Selected(); ok {
			b.mode = ModeEdit
			b.input = ""
		}
	case "s":
		b.commitSave()
	}
	return b, nil
}

func (b *FieldBrowser) View() string {
	output := "BATTLECATS SAVIOR\n\n"
	output += fmt.Sprintf(
		"File: %s (country %s, revision %d)%s\n\n",
		b.path,
		b.record.Country,
		b.record.FormatRevision,
		lo.Ternary(b.dirty, " [modified]", ""),
	)

	start := b.cursor - b.cursor%PageSize
	end := lo.Min([]int{start + PageSize, len(b.keys)})
	for i := start; i < end; i++ {
		value, _ := b.rows.Get(b.keys[i])
		marker := lo.Ternary(i == b.cursor, "> ", "  ")
		output += fmt.Sprintf("%s%s = %v\n", marker, b.keys[i], value)
	}
	if len(b.keys) == 0 {
		output += "  (no field matches the filter)\n"
	}

	output += "\n"
	switch b.mode {
	case ModeFilter:
		output += "Filter: " + b.input + "\n"
	case ModeEdit:
		key, _ := b.Selected()
		output += "New value for " + key + ": " + b.input + "\n"
	default:
		output += "j/k move  / filter  e edit  s save  q quit\n"
	}
	if b.status != "" {
		output += b.status + "\n"
	}
	return output
}

func (b *FieldBrowser) Init() tea.Cmd {
	return nil
}
