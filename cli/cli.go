package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"battlecats-savior/config"
	"battlecats-savior/logger"
)

type (
	Args struct {
		Config      string          `help:"path to the INI settings file" placeholder:"FILE" default:"battlecats-savior.ini"`
		Inspect     *InspectCmd     `arg:"subcommand:inspect" help:"print a summary of a save"`
		Verify      *VerifyCmd      `arg:"subcommand:verify" help:"check the digest of a save"`
		Detect      *DetectCmd      `arg:"subcommand:detect" help:"find the country whose salt verifies a save"`
		Convert     *ConvertCmd     `arg:"subcommand:convert" help:"convert a save to JSON and back"`
		New         *NewCmd         `arg:"subcommand:new" help:"write an empty save of a revision"`
		Get         *GetCmd         `arg:"subcommand:get" help:"print one field of a save"`
		Set         *SetCmd         `arg:"subcommand:set" help:"change one field of a save in place"`
		Diff        *DiffCmd        `arg:"subcommand:diff" help:"write a binary patch between two saves"`
		Patch       *PatchCmd       `arg:"subcommand:patch" help:"apply a binary patch to a save"`
		Watch       *WatchCmd       `arg:"subcommand:watch" help:"re-check a save every time it changes"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive" help:"browse and edit saves in the terminal"`
	}
	InspectCmd struct {
		File    string `arg:"positional,required" placeholder:"SAVE"`
		Country string `help:"country tag, autodetected when empty" placeholder:"CC"`
		Trace   bool   `help:"list every top level field with its offset"`
		Debug   bool   `help:"dump the whole decoded record"`
	}
	VerifyCmd struct {
		File    string `arg:"positional,required" placeholder:"SAVE"`
		Country string `help:"country tag, autodetected when empty" placeholder:"CC"`
	}
	DetectCmd struct {
		File string `arg:"positional,required" placeholder:"SAVE"`
	}
	ConvertCmd struct {
		// the underlying library puts help on another line when the placeholder is too long,
		// so the placeholders stay short
		From    string `arg:"required" help:"path to source file" placeholder:"SAVE_DATA"`
		To      string `arg:"required" help:"path to destination file" placeholder:"save.json"`
		Country string `help:"country tag, autodetected when empty" placeholder:"CC"`
		Force   bool   `help:"overwrite the destination file"`
	}
	NewCmd struct {
		To       string `arg:"required" help:"path to destination file" placeholder:"SAVE_DATA"`
		Revision uint32 `arg:"required" help:"format revision, e.g. 120600"`
		Country  string `arg:"required" help:"country tag" placeholder:"CC"`
		Force    bool   `help:"overwrite the destination file"`
	}
	GetCmd struct {
		File    string `arg:"positional,required" placeholder:"SAVE"`
		Path    string `arg:"positional,required" placeholder:"PATH"`
		Country string `help:"country tag, autodetected when empty" placeholder:"CC"`
	}
	SetCmd struct {
		File    string `arg:"positional,required" placeholder:"SAVE"`
		Path    string `arg:"positional,required" placeholder:"PATH"`
		Value   string `arg:"positional,required" placeholder:"VALUE"`
		Country string `help:"country tag, autodetected when empty" placeholder:"CC"`
		String  bool   `help:"store VALUE as a JSON string even when it parses as JSON"`
	}
	DiffCmd struct {
		From  string `arg:"required" help:"original save" placeholder:"OLD"`
		To    string `arg:"required" help:"edited save" placeholder:"NEW"`
		Out   string `arg:"required" help:"path to the patch file" placeholder:"PATCH"`
		Force bool   `help:"overwrite the patch file"`
	}
	PatchCmd struct {
		From  string `arg:"required" help:"original save" placeholder:"OLD"`
		Patch string `arg:"required" help:"patch made by diff" placeholder:"PATCH"`
		To    string `arg:"required" help:"path to destination file" placeholder:"NEW"`
		Force bool   `help:"overwrite the destination file"`
	}
	WatchCmd struct {
		File    string `arg:"positional,required" placeholder:"SAVE"`
		Country string `help:"country tag, autodetected when empty" placeholder:"CC"`
	}
	InteractiveCmd struct {
		Path string `arg:"positional" help:"save file or folder, the current folder when empty" placeholder:"PATH"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"The cats have come to our command line.\n",
			"A CLI utility to check, convert and edit The Battle Cats save files",
			"(SAVE_DATA) without breaking their digest.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

// Run dispatches one parsed command line. Commands without their own subcommand fall back to
// the interactive browser.
func (a *App) Run(ctx context.Context, args Args) error {
	switch {
	case args.Inspect != nil:
		return a.Inspect(*args.Inspect)
	case args.Verify != nil:
		return a.Verify(*args.Verify)
	case args.Detect != nil:
		return a.Detect(*args.Detect)
	case args.Convert != nil:
		return a.Convert(*args.Convert)
	case args.New != nil:
		return a.New(*args.New)
	case args.Get != nil:
		return a.Get(*args.Get)
	case args.Set != nil:
		return a.Set(*args.Set)
	case args.Diff != nil:
		return a.Diff(*args.Diff)
	case args.Patch != nil:
		return a.Patch(*args.Patch)
	case args.Watch != nil:
		return a.Watch(ctx, *args.Watch)
	case args.Interactive != nil:
		return a.Interactive(*args.Interactive)
	}
	return a.Interactive(InteractiveCmd{})
}

func Start() {
	args := Args{}
	arg.MustParse(&args)

	cfg, err := config.Load(args.Config)
	if err != nil {
		log.Fatal().Err(err).Str("path", args.Config).Msg("failed to load config")
	}
	closer, err := logger.Configure(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = NewApp(cfg, os.Stdout).Run(ctx, args)
	stop()
	closer.Close()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
