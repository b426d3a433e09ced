package ui

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"battlecats-savior/bcsav"
	"battlecats-savior/ds"
)

const (
	CwdStateCorrect   = "correct"
	CwdStateIncorrect = "incorrect"
	CwdStateBlank     = ""

	// MaxSaveSize skips files that cannot be a save before they are hashed.
	MaxSaveSize = 16 << 20
)

type (
	SaveFile struct {
		Name    string
		Country bcsav.Country
		Valid   bool
	}
	FileSelector struct {
		cwd      string
		cwdState string
		files    []SaveFile
		cursor   int
		status   string
		save     SaveFunc
	}
)

func CreateFileSelector(cwd string, save SaveFunc) (FileSelector, error) {
	files, err := ReadDirectory(cwd)
	if err != nil {
		return FileSelector{}, errors.Wrap(err, "CreateFileSelector read directory error")
	}
	cwdState := CwdStateBlank
	if len(files) > 0 {
		cwdState = lo.Ternary(
			lo.SomeBy(files, func(f SaveFile) bool { return f.Valid }),
			CwdStateCorrect,
			CwdStateIncorrect,
		)
	}
	return FileSelector{
		cwd:      cwd,
		cwdState: cwdState,
		files:    files,
		save:     save,
	}, nil
}

// ReadDirectory lists the regular files of path and marks those whose digest verifies under
// some country's salt.
func ReadDirectory(path string) ([]SaveFile, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	files := make([]SaveFile, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		file := SaveFile{Name: entry.Name()}
		if info.Size() <= MaxSaveSize {
			bs, err := os.ReadFile(filepath.Join(path, entry.Name()))
			if err != nil {
				log.Warn().Err(err).Str("file", entry.Name()).Msg("skipping unreadable file")
				continue
			}
			if country, err := bcsav.Detect(bs); err == nil {
				file.Country = country
				file.Valid = true
			}
		}
		files = append(files, file)
	}
	return files, nil
}

func (s *FileSelector) Files() []SaveFile {
	return s.files
}

func (s *FileSelector) open() (tea.Model, error) {
	file := s.files[s.cursor]
	path := filepath.Join(s.cwd, file.Name)
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "FileSelector.open error")
	}
	record, err := bcsav.Load(bs, file.Country)
	if err != nil {
		return nil, errors.Wrap(err, "FileSelector.open error")
	}
	log.Info().Str("path", path).Str("country", string(record.Country)).Uint32("revision", record.FormatRevision).Msg("opened save")
	return NewFieldBrowser(path, record, s.save)
}

func (s *FileSelector) View() string {
	output := "BATTLECATS SAVIOR\n\n"
	output += "Current directory: " + s.cwd + "\n"

	switch s.cwdState {
	case CwdStateIncorrect, CwdStateBlank:
		output += "Please choose the folder holding your save\n\n"
	case CwdStateCorrect:
		output += "Looks like a valid save folder\n\n"
	default:
		err := ds.ErrUnreachableCode{Caller: "FileSelector.View", State: s.cwdState}
		log.Panic().Err(err).Msg("invalid state of current directory")
	}

	for i, file := range s.files {
		marker := lo.Ternary(i == s.cursor, "> ", "  ")
		tag := lo.Ternary(file.Valid, fmt.Sprintf("[%s]", file.Country), "    ")
		output += fmt.Sprintf("%s%s %s\n", marker, tag, file.Name)
	}
	output += "\nj/k move  enter open  q quit\n"
	if s.status != "" {
		output += s.status + "\n"
	}
	return output
}

func (s *FileSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return s, tea.Quit
	case "up", "k":
		s.cursor = lo.Max([]int{s.cursor - 1, 0})
	case "down", "j":
		s.cursor = lo.Min([]int{s.cursor + 1, lo.Max([]int{len(s.files) - 1, 0})})
	case "enter":
		if len(s.files) == 0 {
			return s, nil
		}
		if !s.files[s.cursor].Valid {
			s.status = "Not a save file: " + s.files[s.cursor].Name
			return s, nil
		}
		browser, err := s.open()
		if err != nil {
			log.Error().Err(err).Msg("failed to open save")
			s.status = "Failed to open: " + err.Error()
			return s, nil
		}
		return browser, nil
	}
	return s, nil
}

func (s *FileSelector) Init() tea.Cmd {
	return nil
}
