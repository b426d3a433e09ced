package cli

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"battlecats-savior/bcsav"
)

// Watch reports on the save once, then again after every write to it, until ctx is done. The
// folder is watched rather than the file since the game replaces the file on save.
func (a *App) Watch(ctx context.Context, cmd WatchCmd) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "cli.Watch error")
	}
	defer watcher.Close()

	target := filepath.Clean(cmd.File)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrap(err, "cli.Watch error")
	}
	a.report(cmd)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				a.report(cmd)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", target).Msg("watcher error")
		}
	}
}

func (a *App) report(cmd WatchCmd) {
	record, bs, err := a.load(cmd.File, cmd.Country)
	if err != nil {
		log.Warn().Err(err).Str("path", cmd.File).Msg("save does not load")
		a.printf("invalid: %v\n", err)
		return
	}
	a.printf(
		"valid: country %s, revision %d, cat food %d, fingerprint %s\n",
		record.Country,
		record.FormatRevision,
		record.CatFood,
		bcsav.FingerprintHex(bs),
	)
}
