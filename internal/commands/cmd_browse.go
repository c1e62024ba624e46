package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/x/input"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sshdeck/internal/profiler"
	"github.com/hay-kot/sshdeck/internal/tui"
	"github.com/hay-kot/sshdeck/internal/tui/terminal"
	"github.com/hay-kot/sshdeck/internal/tui/view"
)

type BrowseCmd struct {
	flags *Flags

	profilerPort int
}

// NewBrowseCmd creates a new browse command
func NewBrowseCmd(flags *Flags) *BrowseCmd {
	return &BrowseCmd{flags: flags}
}

// Register adds the browse command to the application
func (cmd *BrowseCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "browse",
		Usage:     "Open the interactive host browser",
		UsageText: "sshdeck browse",
		Description: `Lists every Host from the configured ssh_config files.

Navigate with j/k or the arrow keys, press / to filter by host or HostName,
enter to show an entry's options and h for all key bindings. q quits.`,
		Action: cmd.run,
	})

	return app
}

// Flags returns the browser flags for registration on the root command,
// where they apply to the default action.
func (cmd *BrowseCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "serve pprof on 127.0.0.1 at this port while browsing (e.g., 6060)",
			Sources:     cli.EnvVars("SSHDECK_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Run executes the browser. Exported for use as default command.
func (cmd *BrowseCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *BrowseCmd) run(ctx context.Context, _ *cli.Command) (err error) {
	if !terminal.IsTerminal(os.Stdin) || !terminal.IsTerminal(os.Stdout) {
		return fmt.Errorf("browse needs an interactive terminal: %w", terminal.ErrNotTerminal)
	}

	store, err := cmd.flags.LoadStore()
	if err != nil {
		return fmt.Errorf("load hosts: %w", err)
	}
	log.Info().Int("entries", store.Len()).Strs("tags", store.Tags()).Msg("hosts loaded")

	if cmd.profilerPort > 0 {
		prof := profiler.New(cmd.profilerPort)
		if err := prof.Start(ctx); err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := prof.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	cfg := cmd.flags.Config.TUI

	reader, err := input.NewReader(os.Stdin, os.Getenv("TERM"), 0)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = reader.Close() }()

	inputLog := log.With().Str("component", "input-reader").Logger()
	reader.SetLogger(&inputLog)

	// Subscribed before the terminal is acquired and stopped after it is
	// restored, so a signal in between cannot leave the terminal raw.
	signals := tui.Subscribe(tui.OSSignals())
	defer signals.Stop()

	term := terminal.New(os.Stdout, terminal.NewFileRawMode(os.Stdin), terminal.Options{
		Mouse: cfg.MouseEnabled() && !cmd.flags.NoMouse,
	})
	if err := term.Acquire(); err != nil {
		return fmt.Errorf("acquire terminal: %w", err)
	}
	// Runs on return and while unwinding a panic.
	defer func() {
		if rerr := term.Release(); rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore terminal: %w", rerr))
		}
	}()

	keys := tui.DefaultKeyMap()
	browser := tui.New(store, view.NewPainter(os.Stdout, "sshdeck", keys), reader, tui.Options{
		Tick:      cfg.Tick,
		QueueSize: cfg.QueueSize,
		Keys:      keys,
		Size:      terminal.SizeOf(os.Stdout),

		Subscription: signals,
	})

	err = browser.Run(ctx)
	log.Info().Err(err).Msg("browser closed")
	return err
}
