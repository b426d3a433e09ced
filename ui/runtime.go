package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"battlecats-savior/bcsav"
)

// Start lists the saves under cwd and lets the user pick one to browse.
func Start(cwd string, save SaveFunc) error {
	fileSelector, err := CreateFileSelector(cwd, save)
	if err != nil {
		return err
	}
	if err := tea.NewProgram(&fileSelector).Start(); err != nil {
		return errors.Wrap(err, "ui.Start error")
	}
	return nil
}

// StartBrowser skips the file list and opens an already loaded record.
func StartBrowser(path string, record *bcsav.Record, save SaveFunc) error {
	browser, err := NewFieldBrowser(path, record, save)
	if err != nil {
		return err
	}
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "ui.StartBrowser error")
	}
	return nil
}
