package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"battlecats-savior/bcsav"
	"battlecats-savior/config"
	"battlecats-savior/ds"
	"battlecats-savior/ui"
)

type (
	App struct {
		config *config.Config
		out    io.Writer
	}
	ErrDestinationExists struct {
		Path string
	}
	ErrSourceMissing struct {
		Path string
	}
	ErrVerifyFailed struct {
		Path string
	}
)

func (r ErrDestinationExists) Error() string {
	return fmt.Sprintf(`destination "%s" exists; pass --force to overwrite it`, r.Path)
}

func (r ErrSourceMissing) Error() string {
	return fmt.Sprintf(`source "%s" does not exist`, r.Path)
}

func (r ErrVerifyFailed) Error() string {
	return fmt.Sprintf(`digest of "%s" does not verify`, r.Path)
}

func NewApp(config *config.Config, out io.Writer) *App {
	return &App{
		config: config,
		out:    out,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// country resolves a --country flag, then the configured country. ok is false when the digest
// should decide.
func (a *App) country(flag string) (bcsav.Country, bool, error) {
	if flag != "" {
		country, err := bcsav.ParseCountry(flag)
		if err != nil {
			return "", false, err
		}
		return country, true, nil
	}
	country, ok := a.config.CountryTag()
	return country, ok, nil
}

func (a *App) readSource(path string) ([]byte, error) {
	if !CheckExistence(path) {
		return nil, ErrSourceMissing{Path: path}
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cli.readSource error")
	}
	return bs, nil
}

func (a *App) load(path string, countryFlag string) (*bcsav.Record, []byte, error) {
	bs, err := a.readSource(path)
	if err != nil {
		return nil, nil, err
	}
	country, ok, err := a.country(countryFlag)
	if err != nil {
		return nil, nil, err
	}
	var record *bcsav.Record
	if ok {
		record, err = bcsav.Load(bs, country)
	} else {
		record, err = bcsav.LoadAuto(bs)
	}
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Str("path", path).
		Str("context", ds.DumpJSON(record.Context())).
		Int("opaque_tail", len(record.OpaqueTail)).
		Msg("loaded save")
	return record, bs, nil
}

func (a *App) writeDestination(path string, bs []byte, force bool) error {
	if CheckExistence(path) && !force {
		return ErrDestinationExists{Path: path}
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return errors.Wrap(err, "cli.writeDestination error")
	}
	return nil
}

// backup copies the current bytes of path into the backup folder, named after their
// fingerprint so repeated backups of the same content collapse into one file.
func (a *App) backup(path string) (string, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "cli.backup error")
	}
	if err := os.MkdirAll(a.config.BackupDir, 0o755); err != nil {
		return "", errors.Wrap(err, "cli.backup error")
	}
	name := fmt.Sprintf("%s.%s.bak", filepath.Base(path), bcsav.FingerprintHex(bs))
	backupPath := filepath.Join(a.config.BackupDir, name)
	if err := os.WriteFile(backupPath, bs, 0o644); err != nil {
		return "", errors.Wrap(err, "cli.backup error")
	}
	return backupPath, nil
}

// SaveRecord seals the record and replaces path with it, keeping a backup of the old bytes.
func (a *App) SaveRecord(path string, record *bcsav.Record) error {
	bs, err := bcsav.Dump(record)
	if err != nil {
		return err
	}
	if CheckExistence(path) {
		backupPath, err := a.backup(path)
		if err != nil {
			return err
		}
		log.Info().Str("path", path).Str("backup", backupPath).Msg("backed up save")
	}
	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return errors.Wrap(err, "cli.SaveRecord error")
	}
	log.Info().Str("path", path).Str("fingerprint", bcsav.FingerprintHex(bs)).Msg("saved")
	return nil
}

func (a *App) Inspect(cmd InspectCmd) error {
	var record *bcsav.Record
	var trace *bcsav.Trace
	bs, err := a.readSource(cmd.File)
	if err != nil {
		return err
	}
	country, ok, err := a.country(cmd.Country)
	if err != nil {
		return err
	}
	if !ok {
		if country, err = bcsav.Detect(bs); err != nil {
			return err
		}
	}
	if record, trace, err = bcsav.LoadTrace(bs, country); err != nil {
		return err
	}

	sections := bcsav.Sections(record)
	a.printf("file:        %s\n", cmd.File)
	a.printf("country:     %s\n", record.Country)
	a.printf("revision:    %d\n", record.FormatRevision)
	a.printf("sections:    %d (last %s)\n", len(sections), sections[len(sections)-1])
	a.printf("digest:      %s\n", record.Digest)
	a.printf("fingerprint: %s\n", bcsav.FingerprintHex(bs))
	a.printf("opaque tail: %d bytes\n", len(record.OpaqueTail))
	if len(record.OpaqueTail) > 0 {
		a.printf("%s", HexDump(record.OpaqueTail))
	}

	if cmd.Trace {
		a.printf("\n")
		for _, name := range trace.Keys() {
			entry, _ := trace.Get(name)
			a.printf("%08x %8d  %-32s %s\n", entry.Offset, entry.Length, name, entry.Section)
		}
	}
	if cmd.Debug {
		a.printf("\n%s", spew.Sdump(record))
	}
	return nil
}

func (a *App) Verify(cmd VerifyCmd) error {
	bs, err := a.readSource(cmd.File)
	if err != nil {
		return err
	}
	country, ok, err := a.country(cmd.Country)
	if err != nil {
		return err
	}
	if !ok {
		if !bcsav.VerifyAny(bs) {
			return ErrVerifyFailed{Path: cmd.File}
		}
		a.printf("ok\n")
		return nil
	}
	if !bcsav.Verify(bs, country) {
		return ErrVerifyFailed{Path: cmd.File}
	}
	a.printf("ok (%s)\n", country)
	return nil
}

func (a *App) Detect(cmd DetectCmd) error {
	bs, err := a.readSource(cmd.File)
	if err != nil {
		return err
	}
	country, err := bcsav.Detect(bs)
	if err != nil {
		return err
	}
	a.printf("%s\n", country)
	return nil
}

// Convert goes from a save to JSON when the source carries a valid digest, and from JSON to a
// sealed save otherwise.
func (a *App) Convert(cmd ConvertCmd) error {
	bs, err := a.readSource(cmd.From)
	if err != nil {
		return err
	}
	if CheckExistence(cmd.To) && !cmd.Force {
		return ErrDestinationExists{Path: cmd.To}
	}

	var converted []byte
	if gjson.ValidBytes(bs) && strings.HasPrefix(strings.TrimSpace(string(bs)), "{") {
		record, err := bcsav.FromJSON(bs)
		if err != nil {
			return err
		}
		if converted, err = bcsav.Dump(record); err != nil {
			return err
		}
	} else {
		record, _, err := a.load(cmd.From, cmd.Country)
		if err != nil {
			return err
		}
		if converted, err = bcsav.ToJSON(record, a.config.Indent()); err != nil {
			return err
		}
	}

	if err := a.writeDestination(cmd.To, converted, cmd.Force); err != nil {
		return err
	}
	a.printf("Done converting. Please check your result file at: %s\n", cmd.To)
	return nil
}

func (a *App) New(cmd NewCmd) error {
	country, err := bcsav.ParseCountry(cmd.Country)
	if err != nil {
		return err
	}
	record, err := bcsav.New(cmd.Revision, country)
	if err != nil {
		return err
	}
	bs, err := bcsav.Dump(record)
	if err != nil {
		return err
	}
	return a.writeDestination(cmd.To, bs, cmd.Force)
}

func (a *App) Get(cmd GetCmd) error {
	record, _, err := a.load(cmd.File, cmd.Country)
	if err != nil {
		return err
	}
	value, err := bcsav.Get(record, cmd.Path)
	if err != nil {
		return err
	}
	a.printf("%s\n", value.Raw)
	return nil
}

func (a *App) Set(cmd SetCmd) error {
	record, _, err := a.load(cmd.File, cmd.Country)
	if err != nil {
		return err
	}
	var updated *bcsav.Record
	if gjson.Valid(cmd.Value) && !cmd.String {
		updated, err = bcsav.SetRaw(record, cmd.Path, cmd.Value)
	} else {
		updated, err = bcsav.Set(record, cmd.Path, cmd.Value)
	}
	if err != nil {
		return err
	}
	return a.SaveRecord(cmd.File, updated)
}

func (a *App) Diff(cmd DiffCmd) error {
	from, err := a.readSource(cmd.From)
	if err != nil {
		return err
	}
	to, err := a.readSource(cmd.To)
	if err != nil {
		return err
	}
	patch, err := bcsav.Diff(from, to)
	if err != nil {
		return err
	}
	if err := a.writeDestination(cmd.Out, patch, cmd.Force); err != nil {
		return err
	}
	a.printf("%d byte patch written to %s\n", len(patch), cmd.Out)
	return nil
}

// Patch refuses to write a result whose digest does not verify.
func (a *App) Patch(cmd PatchCmd) error {
	from, err := a.readSource(cmd.From)
	if err != nil {
		return err
	}
	patch, err := a.readSource(cmd.Patch)
	if err != nil {
		return err
	}
	patched, err := bcsav.Patch(from, patch)
	if err != nil {
		return err
	}
	if !bcsav.VerifyAny(patched) {
		return ErrVerifyFailed{Path: cmd.To}
	}
	return a.writeDestination(cmd.To, patched, cmd.Force)
}

func (a *App) Interactive(cmd InteractiveCmd) error {
	path := cmd.Path
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "cli.Interactive error")
		}
		path = cwd
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "cli.Interactive error")
	}
	if info.IsDir() {
		return ui.Start(path, a.SaveRecord)
	}
	record, _, err := a.load(path, "")
	if err != nil {
		return err
	}
	return ui.StartBrowser(path, record, a.SaveRecord)
}
